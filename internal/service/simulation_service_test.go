package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/testutil"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

func TestSimulationService_Simulate(t *testing.T) {
	ctx := context.Background()

	t.Run("computes the report from local tables", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)

		report, err := svc.Simulate(ctx, service.SimulateInput{Config: testutil.NewSimulation().Config()})
		if err != nil {
			t.Fatalf("Simulate() returned unexpected error: %v", err)
		}

		if report.Result.TotalCosts != 239500 {
			t.Errorf("Expected total costs 239500, got %d", report.Result.TotalCosts)
		}
		if report.Result.GrossReturn != 8.77 {
			t.Errorf("Expected gross return 8.77, got %v", report.Result.GrossReturn)
		}
		if report.DataSource != model.SourceLocal {
			t.Errorf("Expected source local, got %s", report.DataSource)
		}
		if report.Recommendation.Level != engine.LevelExcellent {
			t.Errorf("Expected excellent, got %s", report.Recommendation.Level)
		}
		if report.ReportID == "" || report.GeneratedAt.IsZero() {
			t.Error("Expected report id and timestamp to be set")
		}
	})

	t.Run("rejects an invalid configuration", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)
		cfg := testutil.NewSimulation().WithPrice(10000).WithSurface(5).Config()

		_, err := svc.Simulate(ctx, service.SimulateInput{Config: cfg})

		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		msgs := verr.Messages()
		if len(msgs) != 2 || msgs[0] != validation.MsgPriceRange || msgs[1] != validation.MsgSurfaceRange {
			t.Errorf("Unexpected messages: %v", msgs)
		}
	})

	t.Run("uses supplied market data", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)

		report, err := svc.Simulate(ctx, service.SimulateInput{
			Config:     testutil.NewSimulation().Config(),
			MarketData: model.LongTermMarketData{TotalMonthlyRent: 1200},
		})
		if err != nil {
			t.Fatalf("Simulate() returned unexpected error: %v", err)
		}
		if report.Result.MonthlyRent != 1200 || report.DataSource != model.SourceAPIRent {
			t.Errorf("Expected 1200 from api-rent, got %d from %s", report.Result.MonthlyRent, report.DataSource)
		}
	})

	t.Run("ignores market data of the other mode", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)

		report, err := svc.Simulate(ctx, service.SimulateInput{
			Config:     testutil.NewSimulation().Config(),
			MarketData: model.ShortTermMarketData{MonthlyRevenue: 5000},
		})
		if err != nil {
			t.Fatalf("Simulate() returned unexpected error: %v", err)
		}
		if report.Result.MonthlyRent != 1750 || report.DataSource != model.SourceLocal {
			t.Errorf("Expected local 1750, got %d from %s", report.Result.MonthlyRent, report.DataSource)
		}
	})

	t.Run("fetches market data when asked", func(t *testing.T) {
		provider := testutil.NewMockMarketProvider()
		svc := testutil.NewTestSimulationService(t, provider)

		report, err := svc.Simulate(ctx, service.SimulateInput{Config: testutil.NewSimulation().Config(), FetchMarketData: true})
		if err != nil {
			t.Fatalf("Simulate() returned unexpected error: %v", err)
		}
		if report.Result.MonthlyRent != 1000 {
			t.Errorf("Expected provider rent 1000, got %d", report.Result.MonthlyRent)
		}
		if provider.Queries() != 1 {
			t.Errorf("Expected 1 provider query, got %d", provider.Queries())
		}
	})

	t.Run("falls back to local tables when the provider fails", func(t *testing.T) {
		provider := testutil.NewMockMarketProvider().WithError(errors.New("upstream timeout"))
		svc := testutil.NewTestSimulationService(t, provider)

		report, err := svc.Simulate(ctx, service.SimulateInput{Config: testutil.NewSimulation().Config(), FetchMarketData: true})
		if err != nil {
			t.Fatalf("Simulate() returned unexpected error: %v", err)
		}
		if report.Result.MonthlyRent != 1750 || report.DataSource != model.SourceLocal {
			t.Errorf("Expected local 1750, got %d from %s", report.Result.MonthlyRent, report.DataSource)
		}
	})

	t.Run("short-term report carries seasonal revenues", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)
		data := model.ShortTermMarketData{
			MonthlyRevenue:   3000,
			SeasonalRevenues: []model.SeasonalRevenue{{Month: 7, Revenue: 4500, Occupancy: 95}},
		}

		report, err := svc.Simulate(ctx, service.SimulateInput{Config: testutil.NewSimulation().ShortTerm().Config(), MarketData: data})
		if err != nil {
			t.Fatalf("Simulate() returned unexpected error: %v", err)
		}
		if len(report.SeasonalRevenues) != 1 || report.SeasonalRevenues[0].Month != 7 {
			t.Errorf("Expected July seasonal revenue, got %+v", report.SeasonalRevenues)
		}
	})
}

func TestSimulationService_Compare(t *testing.T) {
	ctx := context.Background()
	cfg := testutil.NewSimulation().Config()

	t.Run("compares local estimates", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)

		cmp, err := svc.Compare(ctx, service.CompareInput{Config: cfg})
		if err != nil {
			t.Fatalf("Compare() returned unexpected error: %v", err)
		}
		if cmp.LongTerm.MonthlyRent != 1750 {
			t.Errorf("Expected long-term rent 1750, got %d", cmp.LongTerm.MonthlyRent)
		}
		if cmp.ShortTerm.MonthlyRent != 3675 {
			t.Errorf("Expected short-term rent 3675, got %d", cmp.ShortTerm.MonthlyRent)
		}
		if cmp.Difference.MonthlyRentDiff != 1925 {
			t.Errorf("Expected rent difference 1925, got %d", cmp.Difference.MonthlyRentDiff)
		}
	})

	t.Run("ignores the configured mode", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)
		withShort := testutil.NewSimulation().ShortTerm().Config()

		a, err := svc.Compare(ctx, service.CompareInput{Config: cfg})
		if err != nil {
			t.Fatalf("Compare() returned unexpected error: %v", err)
		}
		b, err := svc.Compare(ctx, service.CompareInput{Config: withShort})
		if err != nil {
			t.Fatalf("Compare() returned unexpected error: %v", err)
		}
		if a != b {
			t.Errorf("Expected identical comparisons, got %+v and %+v", a, b)
		}
	})

	t.Run("fetches both payloads", func(t *testing.T) {
		provider := testutil.NewMockMarketProvider()
		svc := testutil.NewTestSimulationService(t, provider)

		cmp, err := svc.Compare(ctx, service.CompareInput{Config: cfg, FetchMarketData: true})
		if err != nil {
			t.Fatalf("Compare() returned unexpected error: %v", err)
		}
		if cmp.LongTerm.MonthlyRent != 1000 || cmp.ShortTerm.MonthlyRent != 3000 {
			t.Errorf("Expected provider rents 1000/3000, got %d/%d", cmp.LongTerm.MonthlyRent, cmp.ShortTerm.MonthlyRent)
		}
		if provider.Queries() != 2 {
			t.Errorf("Expected 2 provider queries, got %d", provider.Queries())
		}
	})

	t.Run("supplied payloads are not refetched", func(t *testing.T) {
		provider := testutil.NewMockMarketProvider()
		svc := testutil.NewTestSimulationService(t, provider)

		cmp, err := svc.Compare(ctx, service.CompareInput{
			Config:          cfg,
			LongTermData:    model.LongTermMarketData{MonthlyRent: 1500},
			FetchMarketData: true,
		})
		if err != nil {
			t.Fatalf("Compare() returned unexpected error: %v", err)
		}
		if cmp.LongTerm.MonthlyRent != 1500 {
			t.Errorf("Expected supplied rent 1500, got %d", cmp.LongTerm.MonthlyRent)
		}
		if provider.Queries() != 1 {
			t.Errorf("Expected 1 provider query, got %d", provider.Queries())
		}
	})

	t.Run("rejects an invalid configuration", func(t *testing.T) {
		svc := testutil.NewTestSimulationService(t, nil)
		bad := testutil.NewSimulation().WithCity("").Config()

		var verr *validation.Error
		if _, err := svc.Compare(ctx, service.CompareInput{Config: bad}); !errors.As(err, &verr) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestSimulationService_Taxes(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestSimulationService(t, nil)
	in := service.SimulateInput{Config: testutil.NewSimulation().Config()}

	t.Run("uses the default marginal rate", func(t *testing.T) {
		taxes, err := svc.Taxes(ctx, in, nil)
		if err != nil {
			t.Fatalf("Taxes() returned unexpected error: %v", err)
		}
		report, _ := svc.Simulate(ctx, in)
		want := engine.TaxesForResult(report.Result, model.LongTerm, engine.DefaultMarginalTaxRate)
		if taxes != want {
			t.Errorf("Expected %+v, got %+v", want, taxes)
		}
	})

	t.Run("higher rate raises the tax", func(t *testing.T) {
		low, high := 0.11, 0.45
		a, err := svc.Taxes(ctx, in, &low)
		if err != nil {
			t.Fatalf("Taxes() returned unexpected error: %v", err)
		}
		b, err := svc.Taxes(ctx, in, &high)
		if err != nil {
			t.Fatalf("Taxes() returned unexpected error: %v", err)
		}
		if b.Micro.TaxAmount <= a.Micro.TaxAmount {
			t.Errorf("Expected more tax at 45%% than 11%%, got %d and %d", b.Micro.TaxAmount, a.Micro.TaxAmount)
		}
	})

	t.Run("zero rate is not replaced by the default", func(t *testing.T) {
		zero := 0.0
		taxes, err := svc.Taxes(ctx, in, &zero)
		if err != nil {
			t.Fatalf("Taxes() returned unexpected error: %v", err)
		}
		if taxes.Micro.TaxAmount != 0 || taxes.Reel.TaxAmount != 0 {
			t.Errorf("Expected no tax at 0%%, got micro %d reel %d", taxes.Micro.TaxAmount, taxes.Reel.TaxAmount)
		}
	})

	t.Run("rejects a rate above the maximum", func(t *testing.T) {
		rate := 0.75
		var verr *validation.Error
		if _, err := svc.Taxes(ctx, in, &rate); !errors.As(err, &verr) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestSimulationService_Projections(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewTestSimulationService(t, nil)
	in := service.SimulateInput{Config: testutil.NewSimulation().Config()}

	t.Run("defaults to ten years", func(t *testing.T) {
		years, err := svc.Projections(ctx, in, engine.ProjectionParams{})
		if err != nil {
			t.Fatalf("Projections() returned unexpected error: %v", err)
		}
		if len(years) != engine.DefaultProjectionYears {
			t.Fatalf("Expected %d years, got %d", engine.DefaultProjectionYears, len(years))
		}
		if years[0].Year != 1 || years[len(years)-1].PropertyValue <= years[0].PropertyValue {
			t.Errorf("Expected growing property value, got %+v", years)
		}
	})

	t.Run("honours the requested horizon", func(t *testing.T) {
		years, err := svc.Projections(ctx, in, engine.ProjectionParams{Years: 5})
		if err != nil {
			t.Fatalf("Projections() returned unexpected error: %v", err)
		}
		if len(years) != 5 {
			t.Errorf("Expected 5 years, got %d", len(years))
		}
	})

	t.Run("keeps an explicit zero growth", func(t *testing.T) {
		zero := 0.0
		years, err := svc.Projections(ctx, in, engine.ProjectionParams{Years: 3, RentGrowth: &zero, PropertyGrowth: &zero})
		if err != nil {
			t.Fatalf("Projections() returned unexpected error: %v", err)
		}
		for _, y := range years {
			if y.Rent != years[0].Rent || y.PropertyValue != 200000 {
				t.Errorf("Expected flat projections, got %+v", years)
				break
			}
		}
	})

	t.Run("rejects out of range parameters", func(t *testing.T) {
		var verr *validation.Error
		growth := 0.5
		_, err := svc.Projections(ctx, in, engine.ProjectionParams{Years: 31, RentGrowth: &growth})
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		if len(verr.Fields) != 2 {
			t.Errorf("Expected 2 invalid fields, got %v", verr.Fields)
		}
	})
}

func TestSimulationService_Financing(t *testing.T) {
	svc := testutil.NewTestSimulationService(t, nil)
	cfg := testutil.NewSimulation().Config()

	loan, payment := svc.Financing(cfg)
	if want := engine.TotalInvestmentCost(cfg, engine.DefaultTables()) * 0.8; loan != want {
		t.Errorf("Expected loan %v, got %v", want, loan)
	}
	if loan < 191599 || loan > 191601 {
		t.Errorf("Expected loan about 191600, got %v", loan)
	}
	if want := engine.AmortizedPayment(loan, 20, 0.048); payment != want {
		t.Errorf("Expected payment %v, got %v", want, payment)
	}
}

func TestSimulationReport_JSON(t *testing.T) {
	svc := testutil.NewTestSimulationService(t, nil)

	report, err := svc.Simulate(context.Background(), service.SimulateInput{Config: testutil.NewSimulation().Config()})
	if err != nil {
		t.Fatalf("Simulate() returned unexpected error: %v", err)
	}

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Failed to marshal report: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Failed to unmarshal report: %v", err)
	}
	for _, key := range []string{"reportId", "generatedAt", "config", "result", "dataSource", "recommendation"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected key %q in report JSON", key)
		}
	}
	if _, ok := fields["seasonalRevenues"]; ok {
		t.Error("Expected seasonalRevenues to be omitted for long-term reports")
	}
}
