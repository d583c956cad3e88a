package model

import "time"

// DataSource tags where the resolved monthly revenue came from.
type DataSource string

const (
	SourceAPIRent           DataSource = "api-rent"
	SourceAPIRentBase       DataSource = "api-rent-base"
	SourceAPIRentCalculated DataSource = "api-rent-calculated"
	SourceAPIAirbnb         DataSource = "api-airbnb"
	SourceAPIAirbnbNet      DataSource = "api-airbnb-net"
	SourceLocal             DataSource = "local"
)

// CalculationResult is the flat profitability record produced by the calculator.
// Currency fields are rounded to whole units; rate fields to two decimals.
type CalculationResult struct {
	MonthlyRent       int64   `json:"monthlyRent"`
	GrossReturn       float64 `json:"grossReturn"`
	NetReturn         float64 `json:"netReturn"`
	Cashflow          int64   `json:"cashflow"`
	TotalCosts        int64   `json:"totalCosts"`
	NotaryFees        int64   `json:"notaryFees"`
	CommissionFees    int64   `json:"commissionFees"`
	ArchitectFees     int64   `json:"architectFees"`
	MonthlyCharges    int64   `json:"monthlyCharges"`
	TaxesAndInsurance int64   `json:"taxesAndInsurance"`
	ManagementFees    int64   `json:"managementFees"`
	VacancyLoss       int64   `json:"vacancyLoss"`
	ROI               float64 `json:"roi"`
	PaybackPeriod     float64 `json:"paybackPeriod"`
}

// SimulationReport wraps a calculation with report metadata.
type SimulationReport struct {
	ReportID         string            `json:"reportId"`
	GeneratedAt      time.Time         `json:"generatedAt"`
	Config           SimulationConfig  `json:"config"`
	Result           CalculationResult `json:"result"`
	DataSource       DataSource        `json:"dataSource"`
	Recommendation   Recommendation    `json:"recommendation"`
	SeasonalRevenues []SeasonalRevenue `json:"seasonalRevenues,omitempty"`
}

// Recommendation is the headline verdict derived from the gross return.
type Recommendation struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ModeSummary is the subset of a CalculationResult compared across modes.
type ModeSummary struct {
	MonthlyRent int64   `json:"monthlyRent"`
	GrossReturn float64 `json:"grossReturn"`
	NetReturn   float64 `json:"netReturn"`
	Cashflow    int64   `json:"cashflow"`
}

// ModeDifference is short-term minus long-term for each compared metric.
type ModeDifference struct {
	MonthlyRentDiff int64   `json:"monthlyRentDiff"`
	GrossReturnDiff float64 `json:"grossReturnDiff"`
	NetReturnDiff   float64 `json:"netReturnDiff"`
	CashflowDiff    int64   `json:"cashflowDiff"`
}

// ComparisonResult contrasts long-term and short-term exploitation of the same property.
type ComparisonResult struct {
	LongTerm       ModeSummary    `json:"longTerm"`
	ShortTerm      ModeSummary    `json:"shortTerm"`
	Difference     ModeDifference `json:"difference"`
	Recommendation string         `json:"recommendation"` // long_term, short_term or equal
}

// TaxRegime is a French rental income tax regime.
type TaxRegime string

const (
	RegimeMicro TaxRegime = "micro"
	RegimeReel  TaxRegime = "reel"
)

// TaxCalculation is the tax outcome under one regime.
type TaxCalculation struct {
	Regime            TaxRegime `json:"regime"`
	TaxableIncome     int64     `json:"taxableIncome"`
	TaxAmount         int64     `json:"taxAmount"`
	NetIncomeAfterTax int64     `json:"netIncomeAfterTax"`
	EffectiveRate     float64   `json:"effectiveRate"`
}

// TaxComparison holds both regimes and the one yielding the higher net income.
type TaxComparison struct {
	Micro          TaxCalculation `json:"micro"`
	Reel           TaxCalculation `json:"reel"`
	Recommendation TaxRegime      `json:"recommendation"`
}

// YearlyProjection is one year of a multi-year rent/value projection.
type YearlyProjection struct {
	Year             int   `json:"year"`
	Rent             int64 `json:"rent"`
	Charges          int64 `json:"charges"`
	NetIncome        int64 `json:"netIncome"`
	CumulativeReturn int64 `json:"cumulativeReturn"`
	PropertyValue    int64 `json:"propertyValue"`
}
