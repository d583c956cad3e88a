package engine

import "github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"

// Comparison recommendations.
const (
	RecommendLongTerm  = "long_term"
	RecommendShortTerm = "short_term"
	RecommendEqual     = "equal"
)

// CompareModes contrasts a long-term and a short-term result for the same
// property. Differences are short-term minus long-term; a net return gap
// within one point either way is reported as equal.
func CompareModes(longTerm, shortTerm model.CalculationResult) model.ComparisonResult {
	netDiff := RoundRate(shortTerm.NetReturn - longTerm.NetReturn)

	recommendation := RecommendEqual
	switch {
	case netDiff > ComparisonEqualThreshold:
		recommendation = RecommendShortTerm
	case netDiff < -ComparisonEqualThreshold:
		recommendation = RecommendLongTerm
	}

	return model.ComparisonResult{
		LongTerm:  summarize(longTerm),
		ShortTerm: summarize(shortTerm),
		Difference: model.ModeDifference{
			MonthlyRentDiff: shortTerm.MonthlyRent - longTerm.MonthlyRent,
			GrossReturnDiff: RoundRate(shortTerm.GrossReturn - longTerm.GrossReturn),
			NetReturnDiff:   netDiff,
			CashflowDiff:    shortTerm.Cashflow - longTerm.Cashflow,
		},
		Recommendation: recommendation,
	}
}

func summarize(r model.CalculationResult) model.ModeSummary {
	return model.ModeSummary{
		MonthlyRent: r.MonthlyRent,
		GrossReturn: r.GrossReturn,
		NetReturn:   r.NetReturn,
		Cashflow:    r.Cashflow,
	}
}
