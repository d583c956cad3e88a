// Package engine implements the rental investment calculation core: the
// market-rate resolver, the return calculator and the reference tables they
// read. Every function here is pure; the only shared state is the immutable
// Tables snapshot handed in by the caller.
package engine

import "github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"

// FeeSchedule groups the static acquisition, recurring and financing constants.
// Rates are fractions (0.09 == 9%).
type FeeSchedule struct {
	NotaryRate          float64
	CommissionRate      float64
	ArchitectLongTerm   float64 // per m²
	ArchitectShortTerm  float64 // per m²
	ManagementRate      float64 // of monthly revenue
	VacancyRate         float64 // of monthly revenue, long-term only
	AnnualInsurance     float64
	PropertyTaxRate     float64 // annual, of price
	MaintenanceRate     float64 // annual, of price
	MortgageRate        float64
	FinancingRatio      float64 // loan share of total cost
	EquityRatio         float64 // cash share of total cost
	LoanYears           int
	ShortTermMultiplier float64
	ShortTermOccupancy  float64
}

// DefaultFeeSchedule is compiled in and never reloaded.
var DefaultFeeSchedule = FeeSchedule{
	NotaryRate:          0.09,
	CommissionRate:      0.085,
	ArchitectLongTerm:   90,
	ArchitectShortTerm:  120,
	ManagementRate:      0.08,
	VacancyRate:         0.05,
	AnnualInsurance:     400,
	PropertyTaxRate:     0.015,
	MaintenanceRate:     0.02,
	MortgageRate:        0.048,
	FinancingRatio:      0.8,
	EquityRatio:         0.2,
	LoanYears:           20,
	ShortTermMultiplier: 3.0,
	ShortTermOccupancy:  0.7,
}

// ArchitectRate returns the per-m² architect fee for the given mode.
func (f FeeSchedule) ArchitectRate(mode model.ExploitationMode) float64 {
	if mode == model.LongTerm {
		return f.ArchitectLongTerm
	}
	return f.ArchitectShortTerm
}

// DefaultUnitCoefficients reflect smaller units commanding a higher rent per m².
// t2 is the reference unit.
var DefaultUnitCoefficients = map[model.UnitType]float64{
	model.UnitStudio: 1.39,
	model.UnitT2:     1.00,
	model.UnitT3:     0.81,
	model.UnitT4:     0.80,
}

// DefaultCity is used whenever a city cannot be resolved.
const DefaultCity = "paris"

// Tax and projection defaults.
const (
	DefaultMarginalTaxRate   = 0.3
	MicroAllowanceLongTerm   = 0.3
	MicroAllowanceShortTerm  = 0.5
	DefaultProjectionYears   = 10
	DefaultRentGrowth        = 0.02
	DefaultPropertyGrowth    = 0.03
	ComparisonEqualThreshold = 1.0 // net return points
)

// defaultCityProfiles is the compiled-in reference table. The database seed
// carries the same rows.
var defaultCityProfiles = []model.CityMarketProfile{
	{Slug: "paris", DisplayName: "Paris", RentPerSquareMeter: 35, MarketMultiplier: 1.2},
	{Slug: "lyon", DisplayName: "Lyon", RentPerSquareMeter: 18, MarketMultiplier: 1.1},
	{Slug: "marseille", DisplayName: "Marseille", RentPerSquareMeter: 15, MarketMultiplier: 1.0},
	{Slug: "toulouse", DisplayName: "Toulouse", RentPerSquareMeter: 16, MarketMultiplier: 1.05},
	{Slug: "nice", DisplayName: "Nice", RentPerSquareMeter: 22, MarketMultiplier: 1.15},
	{Slug: "nantes", DisplayName: "Nantes", RentPerSquareMeter: 14, MarketMultiplier: 1.0},
	{Slug: "montpellier", DisplayName: "Montpellier", RentPerSquareMeter: 16, MarketMultiplier: 1.0},
	{Slug: "strasbourg", DisplayName: "Strasbourg", RentPerSquareMeter: 15, MarketMultiplier: 0.95},
	{Slug: "bordeaux", DisplayName: "Bordeaux", RentPerSquareMeter: 17, MarketMultiplier: 1.08},
	{Slug: "lille", DisplayName: "Lille", RentPerSquareMeter: 13, MarketMultiplier: 0.95},
	{Slug: "rennes", DisplayName: "Rennes", RentPerSquareMeter: 13, MarketMultiplier: 1.0},
	{Slug: "reims", DisplayName: "Reims", RentPerSquareMeter: 11, MarketMultiplier: 0.9},
	{Slug: "saint-etienne", DisplayName: "Saint-Étienne", RentPerSquareMeter: 9, MarketMultiplier: 0.85},
	{Slug: "toulon", DisplayName: "Toulon", RentPerSquareMeter: 14, MarketMultiplier: 1.0},
	{Slug: "grenoble", DisplayName: "Grenoble", RentPerSquareMeter: 14, MarketMultiplier: 1.0},
	{Slug: "dijon", DisplayName: "Dijon", RentPerSquareMeter: 12, MarketMultiplier: 0.95},
	{Slug: "angers", DisplayName: "Angers", RentPerSquareMeter: 11, MarketMultiplier: 0.9},
	{Slug: "nimes", DisplayName: "Nîmes", RentPerSquareMeter: 12, MarketMultiplier: 0.95},
	{Slug: "villeurbanne", DisplayName: "Villeurbanne", RentPerSquareMeter: 16, MarketMultiplier: 1.05},
	{Slug: "clermont-ferrand", DisplayName: "Clermont-Ferrand", RentPerSquareMeter: 11, MarketMultiplier: 0.9},
	{Slug: "cannes", DisplayName: "Cannes", RentPerSquareMeter: 28, MarketMultiplier: 1.3},
	{Slug: "antibes", DisplayName: "Antibes", RentPerSquareMeter: 24, MarketMultiplier: 1.2},
	{Slug: "biarritz", DisplayName: "Biarritz", RentPerSquareMeter: 20, MarketMultiplier: 1.15},
	{Slug: "la-rochelle", DisplayName: "La Rochelle", RentPerSquareMeter: 16, MarketMultiplier: 1.1},
	{Slug: "saint-malo", DisplayName: "Saint-Malo", RentPerSquareMeter: 18, MarketMultiplier: 1.1},
	{Slug: "deauville", DisplayName: "Deauville", RentPerSquareMeter: 22, MarketMultiplier: 1.2},
	{Slug: "arcachon", DisplayName: "Arcachon", RentPerSquareMeter: 19, MarketMultiplier: 1.15},
	{Slug: "poitiers", DisplayName: "Poitiers", RentPerSquareMeter: 10, MarketMultiplier: 0.85},
	{Slug: "tours", DisplayName: "Tours", RentPerSquareMeter: 12, MarketMultiplier: 0.9},
	{Slug: "orleans", DisplayName: "Orléans", RentPerSquareMeter: 12, MarketMultiplier: 0.9},
	{Slug: "caen", DisplayName: "Caen", RentPerSquareMeter: 12, MarketMultiplier: 0.9},
	{Slug: "limoges", DisplayName: "Limoges", RentPerSquareMeter: 9, MarketMultiplier: 0.8},
	{Slug: "besancon", DisplayName: "Besançon", RentPerSquareMeter: 11, MarketMultiplier: 0.85},
}
