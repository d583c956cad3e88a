package engine

import (
	"math"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// CalculateReturns computes the full profitability record for cfg at the given
// monthly revenue. cfg is assumed valid; the calculator does no validation.
// data is only read for short-term platform fees (fees.total, annual).
//
// Cash-flow and ROI keep their sign. Currency fields are rounded to whole
// units and rates to two decimals.
func CalculateReturns(cfg model.SimulationConfig, monthlyRevenue float64, data model.MarketData, t *Tables) model.CalculationResult {
	fees := t.Fees()
	longTerm := cfg.ExploitationMode == model.LongTerm

	notaryFees := cfg.Price * fees.NotaryRate
	commissionFees := cfg.Price * fees.CommissionRate
	architectFees := cfg.Surface * fees.ArchitectRate(cfg.ExploitationMode)
	totalCosts := TotalInvestmentCost(cfg, t)

	managementFees := monthlyRevenue * fees.ManagementRate
	vacancyLoss := 0.0
	if longTerm {
		vacancyLoss = monthlyRevenue * fees.VacancyRate
	}
	monthlyInsurance := fees.AnnualInsurance / 12
	monthlyPropertyTax := cfg.Price * fees.PropertyTaxRate / 12
	monthlyMaintenance := cfg.Price * fees.MaintenanceRate / 12
	additionalFees := 0.0
	if cfg.ExploitationMode == model.ShortTerm {
		if d, ok := ShortTermData(data); ok && d.Fees != nil && d.Fees.Total > 0 {
			additionalFees = d.Fees.Total / 12
		}
	}
	monthlyCharges := managementFees + vacancyLoss + monthlyInsurance +
		monthlyPropertyTax + monthlyMaintenance + additionalFees
	taxesAndInsurance := monthlyInsurance + monthlyPropertyTax

	annualRent := monthlyRevenue * 12
	annualNetRent := (monthlyRevenue - monthlyCharges) * 12
	grossReturn := annualRent / totalCosts * 100
	netReturn := annualNetRent / totalCosts * 100

	loanPayment := AmortizedPayment(totalCosts*fees.FinancingRatio, fees.LoanYears, fees.MortgageRate)
	cashflow := monthlyRevenue - monthlyCharges - loanPayment

	initialEquity := totalCosts * fees.EquityRatio
	roi := cashflow * 12 / initialEquity * 100
	paybackPeriod := initialEquity / math.Max(1, annualNetRent)

	return model.CalculationResult{
		MonthlyRent:       RoundCurrency(monthlyRevenue),
		GrossReturn:       RoundRate(grossReturn),
		NetReturn:         RoundRate(netReturn),
		Cashflow:          RoundCurrency(cashflow),
		TotalCosts:        RoundCurrency(totalCosts),
		NotaryFees:        RoundCurrency(notaryFees),
		CommissionFees:    RoundCurrency(commissionFees),
		ArchitectFees:     RoundCurrency(architectFees),
		MonthlyCharges:    RoundCurrency(monthlyCharges),
		TaxesAndInsurance: RoundCurrency(taxesAndInsurance),
		ManagementFees:    RoundCurrency(managementFees),
		VacancyLoss:       RoundCurrency(vacancyLoss),
		ROI:               RoundRate(roi),
		PaybackPeriod:     RoundRate(paybackPeriod),
	}
}

// Evaluate resolves the monthly revenue and runs the calculator against a
// single Tables snapshot.
func Evaluate(cfg model.SimulationConfig, data model.MarketData, t *Tables) (model.CalculationResult, Resolution) {
	res := ResolveMonthlyRevenue(cfg, data, t)
	return CalculateReturns(cfg, res.MonthlyRevenue, data, t), res
}

// TotalInvestmentCost is price plus notary, commission and architect fees.
func TotalInvestmentCost(cfg model.SimulationConfig, t *Tables) float64 {
	fees := t.Fees()
	return cfg.Price +
		cfg.Price*fees.NotaryRate +
		cfg.Price*fees.CommissionRate +
		cfg.Surface*fees.ArchitectRate(cfg.ExploitationMode)
}

// AmortizedPayment is the fixed monthly payment on a fully amortizing loan.
// A zero rate divides the principal evenly; a non-positive term yields 0.
func AmortizedPayment(principal float64, years int, annualRate float64) float64 {
	n := float64(years * 12)
	if n <= 0 {
		return 0
	}
	r := annualRate / 12
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}
