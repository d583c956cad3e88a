package engine

import (
	"math"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// ProjectionParams drives ProjectYears. A zero Years and nil growth rates
// take the defaults; an explicit zero growth rate is kept.
type ProjectionParams struct {
	Years          int
	RentGrowth     *float64
	PropertyGrowth *float64
}

// Horizon is the number of projected years.
func (p ProjectionParams) Horizon() int {
	if p.Years <= 0 {
		return DefaultProjectionYears
	}
	return p.Years
}

// Rates returns the rent and property growth rates in effect.
func (p ProjectionParams) Rates() (rentGrowth, propertyGrowth float64) {
	rentGrowth, propertyGrowth = DefaultRentGrowth, DefaultPropertyGrowth
	if p.RentGrowth != nil {
		rentGrowth = *p.RentGrowth
	}
	if p.PropertyGrowth != nil {
		propertyGrowth = *p.PropertyGrowth
	}
	return rentGrowth, propertyGrowth
}

// ProjectYears grows rent and charges at the rent growth rate and the
// property value at the property growth rate, compounding from year one.
// CumulativeReturn accumulates unrounded net income.
func ProjectYears(cfg model.SimulationConfig, r model.CalculationResult, params ProjectionParams) []model.YearlyProjection {
	years := params.Horizon()
	rentGrowth, propertyGrowth := params.Rates()

	out := make([]model.YearlyProjection, 0, years)
	cumulative := 0.0
	for year := 1; year <= years; year++ {
		rentFactor := math.Pow(1+rentGrowth, float64(year))
		propertyFactor := math.Pow(1+propertyGrowth, float64(year))

		rent := float64(r.MonthlyRent) * 12 * rentFactor
		charges := float64(r.MonthlyCharges) * 12 * rentFactor
		net := rent - charges
		cumulative += net

		out = append(out, model.YearlyProjection{
			Year:             year,
			Rent:             RoundCurrency(rent),
			Charges:          RoundCurrency(charges),
			NetIncome:        RoundCurrency(net),
			CumulativeReturn: RoundCurrency(cumulative),
			PropertyValue:    RoundCurrency(cfg.Price * propertyFactor),
		})
	}
	return out
}
