package engine

import (
	"math"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// CalculateTaxes compares the micro and réel regimes on annual figures.
// Micro applies a flat allowance (30% long-term, 50% short-term); réel deducts
// actual charges, floored at zero taxable income. Both net incomes are after
// charges and tax, so réel wins once charges exceed the micro allowance.
// A zero marginal rate means no tax; a negative one uses DefaultMarginalTaxRate.
func CalculateTaxes(annualRent, annualCharges, marginalRate float64, mode model.ExploitationMode) model.TaxComparison {
	if marginalRate < 0 {
		marginalRate = DefaultMarginalTaxRate
	}
	allowance := MicroAllowanceLongTerm
	if mode == model.ShortTerm {
		allowance = MicroAllowanceShortTerm
	}

	microTaxable := annualRent * (1 - allowance)
	microTax := microTaxable * marginalRate
	microNet := annualRent - annualCharges - microTax

	reelTaxable := math.Max(0, annualRent-annualCharges)
	reelTax := reelTaxable * marginalRate
	reelNet := annualRent - annualCharges - reelTax

	recommendation := model.RegimeMicro
	if reelNet > microNet {
		recommendation = model.RegimeReel
	}

	return model.TaxComparison{
		Micro:          taxCalculation(model.RegimeMicro, microTaxable, microTax, microNet, annualRent),
		Reel:           taxCalculation(model.RegimeReel, reelTaxable, reelTax, reelNet, annualRent),
		Recommendation: recommendation,
	}
}

// TaxesForResult runs CalculateTaxes on a calculation's rounded monthly figures.
func TaxesForResult(r model.CalculationResult, mode model.ExploitationMode, marginalRate float64) model.TaxComparison {
	return CalculateTaxes(float64(r.MonthlyRent)*12, float64(r.MonthlyCharges)*12, marginalRate, mode)
}

func taxCalculation(regime model.TaxRegime, taxable, tax, net, annualRent float64) model.TaxCalculation {
	effective := 0.0
	if annualRent > 0 {
		effective = tax / annualRent * 100
	}
	return model.TaxCalculation{
		Regime:            regime,
		TaxableIncome:     RoundCurrency(taxable),
		TaxAmount:         RoundCurrency(tax),
		NetIncomeAfterTax: RoundCurrency(net),
		EffectiveRate:     RoundRate(effective),
	}
}
