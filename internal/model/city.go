package model

// CityMarketProfile is the static per-city rent reference.
// Slug is lower-case, hyphenated and accent-free.
type CityMarketProfile struct {
	Slug               string  `json:"slug"`
	DisplayName        string  `json:"displayName"`
	RentPerSquareMeter float64 `json:"rentPerSquareMeter"`
	MarketMultiplier   float64 `json:"marketMultiplier"`
}
