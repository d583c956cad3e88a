// Package market produces market-data payloads for simulations. No live
// provider is wired in: Estimator derives deterministic figures from the
// reference tables, and CachedProvider fronts any Provider with a TTL cache.
package market

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// Provider supplies market payloads for a property.
type Provider interface {
	RentData(ctx context.Context, q model.MarketQuery) (model.RentEstimate, error)
	ShortTermData(ctx context.Context, q model.MarketQuery) (model.ShortTermEstimate, error)
}

// SourceEstimate tags payloads computed locally by Estimator.
const SourceEstimate = "estimate"

// Short-term estimate constants.
const (
	OccupancyPercent   = 70.0
	CleaningPerSqm     = 2.0 // per turnover
	CleaningsPerMonth  = 4
	MonthlySupplies    = 50.0
	MonthlyUtilities   = 100.0
	maxOccupancyPerMon = 100.0
)

// Seasonality is the revenue factor for each calendar month, January first.
var Seasonality = [12]float64{0.7, 0.75, 0.85, 0.95, 1.1, 1.3, 1.5, 1.5, 1.2, 0.95, 0.8, 0.9}

// Estimator derives market payloads from the current reference tables.
// It is deterministic: the same query against the same tables always yields
// the same payload.
type Estimator struct {
	tables *engine.TableStore
}

// NewEstimator creates an Estimator reading from store.
func NewEstimator(store *engine.TableStore) *Estimator {
	return &Estimator{tables: store}
}

// RentData estimates long-term rent: city rent per m² scaled by the unit coefficient.
func (e *Estimator) RentData(_ context.Context, q model.MarketQuery) (model.RentEstimate, error) {
	if err := validateQuery(q); err != nil {
		return model.RentEstimate{}, err
	}
	tables := e.tables.Load()
	profile := tables.City(q.City)
	coefficient := tables.Coefficient(q.UnitType)

	perSqm := profile.RentPerSquareMeter * coefficient
	total := float64(engine.RoundCurrency(perSqm * q.Surface))

	return model.RentEstimate{
		City:        profile.Slug,
		UnitType:    q.UnitType,
		Surface:     q.Surface,
		Coefficient: coefficient,
		Data: model.LongTermMarketData{
			TotalMonthlyRent:   total,
			MonthlyRent:        total,
			RentPerSquareMeter: engine.RoundRate(perSqm),
		},
		DataSource: SourceEstimate,
	}, nil
}

// ShortTermData estimates nightly-rental revenue from the long-term rent,
// the base short-term multiplier and the city's market multiplier, at a fixed
// occupancy. Platform fees are reported as an annual total.
func (e *Estimator) ShortTermData(_ context.Context, q model.MarketQuery) (model.ShortTermEstimate, error) {
	if err := validateQuery(q); err != nil {
		return model.ShortTermEstimate{}, err
	}
	tables := e.tables.Load()
	profile := tables.City(q.City)
	fees := tables.Fees()

	longTermRent := engine.LocalMonthlyRent(model.SimulationConfig{
		Surface:  q.Surface,
		UnitType: q.UnitType,
		City:     profile.Slug,
	}, tables)

	multiplier := fees.ShortTermMultiplier * profile.MarketMultiplier
	nightly := float64(engine.RoundCurrency(longTermRent * multiplier / 30))
	monthly := float64(engine.RoundCurrency(nightly * 30 * OccupancyPercent / 100))

	cleaning := float64(engine.RoundCurrency(q.Surface * CleaningPerSqm))
	monthlyFees := cleaning*CleaningsPerMonth + MonthlySupplies + MonthlyUtilities

	seasonal := make([]model.SeasonalRevenue, 0, len(Seasonality))
	for i, factor := range Seasonality {
		seasonal = append(seasonal, model.SeasonalRevenue{
			Month:     i + 1,
			Revenue:   float64(engine.RoundCurrency(monthly * factor)),
			Occupancy: math.Min(maxOccupancyPerMon, float64(engine.RoundCurrency(OccupancyPercent*factor))),
		})
	}

	return model.ShortTermEstimate{
		City:       profile.Slug,
		UnitType:   q.UnitType,
		Surface:    q.Surface,
		Multiplier: engine.RoundRate(multiplier),
		Data: model.ShortTermMarketData{
			MonthlyRevenue:    monthly,
			NetMonthlyRevenue: monthly - monthlyFees,
			NightlyRate:       nightly,
			OccupancyRate:     OccupancyPercent,
			Fees: &model.PlatformFees{
				Cleaning:  cleaning,
				Supplies:  MonthlySupplies,
				Utilities: MonthlyUtilities,
				Total:     monthlyFees * 12,
			},
			SeasonalRevenues: seasonal,
		},
		DataSource: SourceEstimate,
	}, nil
}

func validateQuery(q model.MarketQuery) error {
	if strings.TrimSpace(q.City) == "" {
		return fmt.Errorf("%w: city is required", apperrors.ErrInvalidMarketQuery)
	}
	if q.Surface <= 0 || math.IsNaN(q.Surface) || math.IsInf(q.Surface, 0) {
		return fmt.Errorf("%w: surface must be positive", apperrors.ErrInvalidMarketQuery)
	}
	return nil
}

// CacheKey identifies a query for caching. City and unit type are normalized
// so equivalent spellings share an entry.
func CacheKey(kind string, q model.MarketQuery) string {
	return fmt.Sprintf("%s:%s:%s:%g", kind, engine.NormalizeCity(q.City), model.ParseUnitType(string(q.UnitType)), q.Surface)
}
