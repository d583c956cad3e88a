package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// SimulationRequest represents the request body for a single-mode simulation.
// MarketData is kept raw until the exploitation mode is known.
type SimulationRequest struct {
	Price            float64         `json:"price"`
	Surface          float64         `json:"surface"`
	UnitType         string          `json:"unitType"`
	ExploitationMode string          `json:"exploitationMode"`
	City             string          `json:"city"`
	MarketData       json.RawMessage `json:"marketData,omitempty"`
	FetchMarketData  bool            `json:"fetchMarketData,omitempty"`
}

// Config normalizes the request into a SimulationConfig. It does not validate.
func (r SimulationRequest) Config() model.SimulationConfig {
	return model.SimulationConfig{
		Price:            r.Price,
		Surface:          r.Surface,
		UnitType:         model.ParseUnitType(r.UnitType),
		ExploitationMode: model.ParseExploitationMode(r.ExploitationMode),
		City:             r.City,
	}
}

// DecodeMarketData decodes the optional market payload for the request's mode.
func (r SimulationRequest) DecodeMarketData() (model.MarketData, error) {
	return DecodeMarketData(r.MarketData, r.Config().ExploitationMode)
}

// CompareRequest represents the request body for a long-term vs short-term comparison.
// ExploitationMode is ignored.
type CompareRequest struct {
	Price           float64         `json:"price"`
	Surface         float64         `json:"surface"`
	UnitType        string          `json:"unitType"`
	City            string          `json:"city"`
	LongTermData    json.RawMessage `json:"longTermData,omitempty"`
	ShortTermData   json.RawMessage `json:"shortTermData,omitempty"`
	FetchMarketData bool            `json:"fetchMarketData,omitempty"`
}

// Config normalizes the request into a long-term SimulationConfig.
func (r CompareRequest) Config() model.SimulationConfig {
	return model.SimulationConfig{
		Price:            r.Price,
		Surface:          r.Surface,
		UnitType:         model.ParseUnitType(r.UnitType),
		ExploitationMode: model.LongTerm,
		City:             r.City,
	}
}

// TaxRequest represents the request body for the tax regime comparison.
type TaxRequest struct {
	SimulationRequest
	MarginalTaxRate *float64 `json:"marginalTaxRate,omitempty"`
}

// ProjectionRequest represents the request body for multi-year projections.
// Omitted fields select the defaults; an explicit 0 growth rate is kept.
type ProjectionRequest struct {
	SimulationRequest
	Years          int      `json:"years,omitempty"`
	RentGrowth     *float64 `json:"rentGrowth,omitempty"`
	PropertyGrowth *float64 `json:"propertyGrowth,omitempty"`
}

// marketPayload is the union of both market data variants as sent by clients.
// rentPerSqm is an older spelling of rentPerSquareMeter.
type marketPayload struct {
	TotalMonthlyRent   float64 `json:"totalMonthlyRent"`
	MonthlyRent        float64 `json:"monthlyRent"`
	RentPerSquareMeter float64 `json:"rentPerSquareMeter"`
	RentPerSqm         float64 `json:"rentPerSqm"`

	MonthlyRevenue    float64                 `json:"monthlyRevenue"`
	NetMonthlyRevenue float64                 `json:"netMonthlyRevenue"`
	NightlyRate       float64                 `json:"nightlyRate"`
	OccupancyRate     float64                 `json:"occupancyRate"`
	Fees              *model.PlatformFees     `json:"fees"`
	SeasonalRevenues  []model.SeasonalRevenue `json:"seasonalRevenues"`
}

func (p marketPayload) longTerm() (model.LongTermMarketData, bool) {
	d := model.LongTermMarketData{
		TotalMonthlyRent:   p.TotalMonthlyRent,
		MonthlyRent:        p.MonthlyRent,
		RentPerSquareMeter: p.RentPerSquareMeter,
	}
	if d.RentPerSquareMeter == 0 {
		d.RentPerSquareMeter = p.RentPerSqm
	}
	ok := d.TotalMonthlyRent != 0 || d.MonthlyRent != 0 || d.RentPerSquareMeter != 0
	return d, ok
}

func (p marketPayload) shortTerm() (model.ShortTermMarketData, bool) {
	d := model.ShortTermMarketData{
		MonthlyRevenue:    p.MonthlyRevenue,
		NetMonthlyRevenue: p.NetMonthlyRevenue,
		NightlyRate:       p.NightlyRate,
		OccupancyRate:     p.OccupancyRate,
		Fees:              p.Fees,
		SeasonalRevenues:  p.SeasonalRevenues,
	}
	ok := d.MonthlyRevenue != 0 || d.NetMonthlyRevenue != 0 || d.NightlyRate != 0 ||
		d.OccupancyRate != 0 || d.Fees != nil || len(d.SeasonalRevenues) > 0
	return d, ok
}

// DecodeMarketData turns a raw payload into the MarketData variant matching
// mode. A payload carrying only the other variant's fields decodes to that
// variant; the resolver then ignores it. An empty or null payload yields nil.
func DecodeMarketData(raw json.RawMessage, mode model.ExploitationMode) (model.MarketData, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var p marketPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: marketData: %v", apperrors.ErrInvalidRequestBody, err)
	}

	long, hasLong := p.longTerm()
	short, hasShort := p.shortTerm()

	switch {
	case mode == model.ShortTerm && hasShort:
		return short, nil
	case mode == model.LongTerm && hasLong:
		return long, nil
	case hasShort:
		return short, nil
	case hasLong:
		return long, nil
	default:
		return nil, nil
	}
}
