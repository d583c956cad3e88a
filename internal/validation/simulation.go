package validation

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// User-facing messages. The site is French-only.
const (
	MsgPriceRange     = "Le prix doit être entre 50 000€ et 1 000 000€"
	MsgSurfaceRange   = "La surface doit être entre 10m² et 200m²"
	MsgInvalidUnit    = "Type de bien invalide"
	MsgInvalidMode    = "Type d'exploitation invalide"
	MsgCityRequired   = "Ville requise"
	MsgInvalidYears   = "La durée de projection doit être entre 1 et 30 ans"
	MsgInvalidGrowth  = "Le taux de croissance doit être entre -10% et 20%"
	MsgInvalidTaxRate = "Le taux marginal d'imposition doit être entre 0% et 60%"
)

// Projection and tax bounds.
const (
	MaxProjectionYears = 30
	MinGrowthRate      = -0.10
	MaxGrowthRate      = 0.20
	MaxMarginalTaxRate = 0.60
)

// ValidateSimulationConfig checks every SimulationConfig domain and returns a
// *Error listing all failures, or nil. The calculation engine must not run on
// a config that fails here.
func ValidateSimulationConfig(cfg model.SimulationConfig) error {
	errs := &Error{}

	if !inRange(cfg.Price, model.MinPrice, model.MaxPrice) {
		errs.add("price", MsgPriceRange)
	}
	if !inRange(cfg.Surface, model.MinSurface, model.MaxSurface) {
		errs.add("surface", MsgSurfaceRange)
	}
	if !model.ValidUnitTypes[cfg.UnitType] {
		errs.add("unitType", MsgInvalidUnit)
	}
	if !model.ValidExploitationModes[cfg.ExploitationMode] {
		errs.add("exploitationMode", MsgInvalidMode)
	}
	validateCity(errs, cfg.City)

	if errs.empty() {
		return nil
	}
	return errs
}

// ValidateComparisonConfig is ValidateSimulationConfig without the mode check,
// since a comparison evaluates both modes.
func ValidateComparisonConfig(cfg model.SimulationConfig) error {
	return ValidateSimulationConfig(cfg.WithMode(model.LongTerm))
}

// ValidateMarketQuery checks the parameters of a market-data lookup.
func ValidateMarketQuery(q model.MarketQuery) error {
	errs := &Error{}

	validateCity(errs, q.City)
	if !model.ValidUnitTypes[q.UnitType] {
		errs.add("unitType", MsgInvalidUnit)
	}
	if !inRange(q.Surface, model.MinSurface, model.MaxSurface) {
		errs.add("surface", MsgSurfaceRange)
	}

	if errs.empty() {
		return nil
	}
	return errs
}

// ValidateProjectionParams checks optional projection overrides. A zero
// years and nil growth rates mean "use the default" and always pass.
func ValidateProjectionParams(years int, rentGrowth, propertyGrowth *float64) error {
	errs := &Error{}

	if years < 0 || years > MaxProjectionYears {
		errs.add("years", MsgInvalidYears)
	}
	if rentGrowth != nil && !inRange(*rentGrowth, MinGrowthRate, MaxGrowthRate) {
		errs.add("rentGrowth", MsgInvalidGrowth)
	}
	if propertyGrowth != nil && !inRange(*propertyGrowth, MinGrowthRate, MaxGrowthRate) {
		errs.add("propertyGrowth", MsgInvalidGrowth)
	}

	if errs.empty() {
		return nil
	}
	return errs
}

// ValidateMarginalTaxRate checks an optional marginal rate. Nil means default.
func ValidateMarginalTaxRate(rate *float64) error {
	if rate == nil {
		return nil
	}
	if !inRange(*rate, 0, MaxMarginalTaxRate) {
		errs := &Error{}
		errs.add("marginalTaxRate", MsgInvalidTaxRate)
		return errs
	}
	return nil
}

func validateCity(errs *Error, city string) {
	if utf8.RuneCountInString(strings.TrimSpace(city)) < 2 {
		errs.add("city", MsgCityRequired)
	}
}

func inRange(v, lo, hi float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= lo && v <= hi
}
