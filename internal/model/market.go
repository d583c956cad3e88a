package model

// MarketData is an optional, already-fetched market payload. It is a closed
// union: only LongTermMarketData and ShortTermMarketData implement it, and the
// variant must match the simulated exploitation mode to be used.
type MarketData interface {
	Mode() ExploitationMode
	isMarketData()
}

// LongTermMarketData carries lease-market figures. Zero means absent.
type LongTermMarketData struct {
	TotalMonthlyRent   float64 `json:"totalMonthlyRent,omitempty"`
	MonthlyRent        float64 `json:"monthlyRent,omitempty"`
	RentPerSquareMeter float64 `json:"rentPerSquareMeter,omitempty"`
}

func (LongTermMarketData) Mode() ExploitationMode { return LongTerm }
func (LongTermMarketData) isMarketData()          {}

// ShortTermMarketData carries nightly-rental figures. Zero means absent.
type ShortTermMarketData struct {
	MonthlyRevenue    float64           `json:"monthlyRevenue,omitempty"`
	NetMonthlyRevenue float64           `json:"netMonthlyRevenue,omitempty"`
	NightlyRate       float64           `json:"nightlyRate,omitempty"`
	OccupancyRate     float64           `json:"occupancyRate,omitempty"` // percent
	Fees              *PlatformFees     `json:"fees,omitempty"`
	SeasonalRevenues  []SeasonalRevenue `json:"seasonalRevenues,omitempty"`
}

func (ShortTermMarketData) Mode() ExploitationMode { return ShortTerm }
func (ShortTermMarketData) isMarketData()          {}

// PlatformFees are short-term specific costs. Total is an annual amount.
type PlatformFees struct {
	Cleaning  float64 `json:"cleaning,omitempty"`
	Supplies  float64 `json:"supplies,omitempty"`
	Utilities float64 `json:"utilities,omitempty"`
	Total     float64 `json:"total"`
}

// SeasonalRevenue is the expected revenue and occupancy for one calendar month (1-12).
type SeasonalRevenue struct {
	Month     int     `json:"month"`
	Revenue   float64 `json:"revenue"`
	Occupancy float64 `json:"occupancy"`
}

// MarketQuery identifies the property a market estimate is requested for.
type MarketQuery struct {
	City     string   `json:"city"`
	UnitType UnitType `json:"unitType"`
	Surface  float64  `json:"surface"`
}

// RentEstimate is the long-term market payload plus its provenance metadata.
type RentEstimate struct {
	City        string             `json:"city"`
	UnitType    UnitType           `json:"unitType"`
	Surface     float64            `json:"surface"`
	Coefficient float64            `json:"coefficient"`
	Data        LongTermMarketData `json:"data"`
	DataSource  string             `json:"dataSource"`
}

// ShortTermEstimate is the short-term market payload plus its provenance metadata.
type ShortTermEstimate struct {
	City       string              `json:"city"`
	UnitType   UnitType            `json:"unitType"`
	Surface    float64             `json:"surface"`
	Multiplier float64             `json:"multiplierVsLongTerm"`
	Data       ShortTermMarketData `json:"data"`
	DataSource string              `json:"dataSource"`
}
