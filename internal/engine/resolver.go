package engine

import "github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"

// Resolution is the monthly revenue chosen for a simulation and where it came from.
type Resolution struct {
	MonthlyRevenue float64          `json:"monthlyRevenue"`
	Source         model.DataSource `json:"source"`
}

// ResolveMonthlyRevenue picks the monthly revenue for cfg. Supplied market data
// wins over the local tables, most aggregate field first. Zero fields, a nil
// payload and a payload for the other exploitation mode all count as absent.
// It never fails: unknown cities and unit types fall back to defaults.
func ResolveMonthlyRevenue(cfg model.SimulationConfig, data model.MarketData, t *Tables) Resolution {
	if cfg.ExploitationMode == model.ShortTerm {
		return resolveShortTerm(cfg, data, t)
	}
	return resolveLongTerm(cfg, data, t)
}

func resolveLongTerm(cfg model.SimulationConfig, data model.MarketData, t *Tables) Resolution {
	if d, ok := LongTermData(data); ok {
		switch {
		case d.TotalMonthlyRent > 0:
			return Resolution{MonthlyRevenue: d.TotalMonthlyRent, Source: model.SourceAPIRent}
		case d.MonthlyRent > 0:
			return Resolution{MonthlyRevenue: d.MonthlyRent, Source: model.SourceAPIRentBase}
		case d.RentPerSquareMeter > 0:
			return Resolution{MonthlyRevenue: d.RentPerSquareMeter * cfg.Surface, Source: model.SourceAPIRentCalculated}
		}
	}
	return Resolution{MonthlyRevenue: LocalMonthlyRent(cfg, t), Source: model.SourceLocal}
}

func resolveShortTerm(cfg model.SimulationConfig, data model.MarketData, t *Tables) Resolution {
	if d, ok := ShortTermData(data); ok {
		switch {
		case d.MonthlyRevenue > 0:
			return Resolution{MonthlyRevenue: d.MonthlyRevenue, Source: model.SourceAPIAirbnb}
		case d.NetMonthlyRevenue > 0:
			return Resolution{MonthlyRevenue: d.NetMonthlyRevenue, Source: model.SourceAPIAirbnbNet}
		}
	}
	fees := t.Fees()
	revenue := LocalMonthlyRent(cfg, t) * fees.ShortTermMultiplier * fees.ShortTermOccupancy
	return Resolution{MonthlyRevenue: revenue, Source: model.SourceLocal}
}

// LocalMonthlyRent is the table-based long-term rent:
// city rent per m² × surface × unit coefficient.
func LocalMonthlyRent(cfg model.SimulationConfig, t *Tables) float64 {
	return t.City(cfg.City).RentPerSquareMeter * cfg.Surface * t.Coefficient(cfg.UnitType)
}

// LongTermData unwraps a long-term payload. Both value and pointer forms are accepted.
func LongTermData(data model.MarketData) (model.LongTermMarketData, bool) {
	switch d := data.(type) {
	case model.LongTermMarketData:
		return d, true
	case *model.LongTermMarketData:
		if d != nil {
			return *d, true
		}
	}
	return model.LongTermMarketData{}, false
}

// ShortTermData unwraps a short-term payload. Both value and pointer forms are accepted.
func ShortTermData(data model.MarketData) (model.ShortTermMarketData, bool) {
	switch d := data.(type) {
	case model.ShortTermMarketData:
		return d, true
	case *model.ShortTermMarketData:
		if d != nil {
			return *d, true
		}
	}
	return model.ShortTermMarketData{}, false
}
