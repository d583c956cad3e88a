package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/market"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// SimulationService runs the calculation engine behind the validation gate.
type SimulationService struct {
	tables   *engine.TableStore
	provider market.Provider
	logger   *slog.Logger
	now      func() time.Time
}

// NewSimulationService creates a new SimulationService. provider may be nil,
// in which case market data is never fetched and the local tables are used.
func NewSimulationService(tables *engine.TableStore, provider market.Provider, logger *slog.Logger) *SimulationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulationService{
		tables:   tables,
		provider: provider,
		logger:   logger.With("component", "simulation"),
		now:      time.Now,
	}
}

// SimulateInput is one simulation request. When MarketData is nil and
// FetchMarketData is set, the market provider is asked for a payload.
type SimulateInput struct {
	Config          model.SimulationConfig
	MarketData      model.MarketData
	FetchMarketData bool
}

// CompareInput is a comparison request. Config's exploitation mode is ignored.
type CompareInput struct {
	Config          model.SimulationConfig
	LongTermData    model.MarketData
	ShortTermData   model.MarketData
	FetchMarketData bool
}

// Simulate validates the configuration, resolves the monthly revenue and
// computes the profitability report. Returns a *validation.Error when the
// configuration is invalid; the engine is not run in that case.
func (s *SimulationService) Simulate(ctx context.Context, in SimulateInput) (model.SimulationReport, error) {
	if err := validation.ValidateSimulationConfig(in.Config); err != nil {
		return model.SimulationReport{}, err
	}

	data := in.MarketData
	if data == nil && in.FetchMarketData {
		data = s.fetchMarketData(ctx, in.Config)
	}

	result, res := engine.Evaluate(in.Config, data, s.tables.Load())

	report := model.SimulationReport{
		ReportID:       uuid.New().String(),
		GeneratedAt:    s.now().UTC(),
		Config:         in.Config,
		Result:         result,
		DataSource:     res.Source,
		Recommendation: engine.Recommend(result.GrossReturn),
	}
	if in.Config.ExploitationMode == model.ShortTerm {
		if st, ok := engine.ShortTermData(data); ok {
			report.SeasonalRevenues = st.SeasonalRevenues
		}
	}

	s.logger.DebugContext(ctx, "simulation computed",
		"city", in.Config.City,
		"mode", in.Config.ExploitationMode,
		"source", res.Source,
		"grossReturn", result.GrossReturn,
	)
	return report, nil
}

// Compare evaluates the same property under both exploitation modes against a
// single tables snapshot. Missing payloads are fetched concurrently when requested.
func (s *SimulationService) Compare(ctx context.Context, in CompareInput) (model.ComparisonResult, error) {
	if err := validation.ValidateComparisonConfig(in.Config); err != nil {
		return model.ComparisonResult{}, err
	}

	longCfg := in.Config.WithMode(model.LongTerm)
	shortCfg := in.Config.WithMode(model.ShortTerm)
	longData, shortData := in.LongTermData, in.ShortTermData

	if in.FetchMarketData {
		g, gctx := errgroup.WithContext(ctx)
		if longData == nil {
			g.Go(func() error {
				longData = s.fetchMarketData(gctx, longCfg)
				return nil
			})
		}
		if shortData == nil {
			g.Go(func() error {
				shortData = s.fetchMarketData(gctx, shortCfg)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return model.ComparisonResult{}, err
		}
	}

	tables := s.tables.Load()
	longResult, _ := engine.Evaluate(longCfg, longData, tables)
	shortResult, _ := engine.Evaluate(shortCfg, shortData, tables)

	return engine.CompareModes(longResult, shortResult), nil
}

// Taxes simulates the property and compares the micro and réel regimes.
// A nil marginal rate uses the default.
func (s *SimulationService) Taxes(ctx context.Context, in SimulateInput, marginalRate *float64) (model.TaxComparison, error) {
	if err := validation.ValidateMarginalTaxRate(marginalRate); err != nil {
		return model.TaxComparison{}, err
	}
	report, err := s.Simulate(ctx, in)
	if err != nil {
		return model.TaxComparison{}, err
	}

	rate := engine.DefaultMarginalTaxRate
	if marginalRate != nil {
		rate = *marginalRate
	}
	return engine.TaxesForResult(report.Result, in.Config.ExploitationMode, rate), nil
}

// Projections simulates the property and projects it over several years.
func (s *SimulationService) Projections(ctx context.Context, in SimulateInput, params engine.ProjectionParams) ([]model.YearlyProjection, error) {
	if err := validation.ValidateProjectionParams(params.Years, params.RentGrowth, params.PropertyGrowth); err != nil {
		return nil, err
	}
	report, err := s.Simulate(ctx, in)
	if err != nil {
		return nil, err
	}
	return engine.ProjectYears(in.Config, report.Result, params), nil
}

// LoanPayment is the monthly payment on a fully amortizing loan.
func (s *SimulationService) LoanPayment(principal float64, years int, annualRate float64) float64 {
	return engine.AmortizedPayment(principal, years, annualRate)
}

// Financing returns the financed amount and its monthly payment under the
// current fee schedule.
func (s *SimulationService) Financing(cfg model.SimulationConfig) (loanAmount, monthlyPayment float64) {
	tables := s.tables.Load()
	fees := tables.Fees()
	loanAmount = engine.TotalInvestmentCost(cfg, tables) * fees.FinancingRatio
	return loanAmount, s.LoanPayment(loanAmount, fees.LoanYears, fees.MortgageRate)
}

// fetchMarketData asks the provider for the mode's payload. Provider failures
// are logged and yield nil so the resolver falls back to the local tables.
func (s *SimulationService) fetchMarketData(ctx context.Context, cfg model.SimulationConfig) model.MarketData {
	if s.provider == nil {
		return nil
	}
	q := model.MarketQuery{City: cfg.City, UnitType: cfg.UnitType, Surface: cfg.Surface}

	if cfg.ExploitationMode == model.ShortTerm {
		est, err := s.provider.ShortTermData(ctx, q)
		if err != nil {
			s.logger.WarnContext(ctx, "short-term market data unavailable, using local tables", "city", cfg.City, "error", err)
			return nil
		}
		return est.Data
	}

	est, err := s.provider.RentData(ctx, q)
	if err != nil {
		s.logger.WarnContext(ctx, "rent market data unavailable, using local tables", "city", cfg.City, "error", err)
		return nil
	}
	return est.Data
}
