package model

import "strings"

// UnitType is the room-count category of the simulated property.
type UnitType string

const (
	UnitStudio UnitType = "studio"
	UnitT2     UnitType = "t2"
	UnitT3     UnitType = "t3"
	UnitT4     UnitType = "t4"
)

// ValidUnitTypes lists the unit types accepted by validation.
var ValidUnitTypes = map[UnitType]bool{
	UnitStudio: true, UnitT2: true, UnitT3: true, UnitT4: true,
}

// ParseUnitType lower-cases and trims the raw value. It does not validate.
func ParseUnitType(s string) UnitType {
	return UnitType(strings.ToLower(strings.TrimSpace(s)))
}

// ExploitationMode selects between a traditional lease and nightly/seasonal rental.
type ExploitationMode string

const (
	LongTerm  ExploitationMode = "long_term"
	ShortTerm ExploitationMode = "short_term"
)

// ValidExploitationModes lists the exploitation modes accepted by validation.
var ValidExploitationModes = map[ExploitationMode]bool{
	LongTerm: true, ShortTerm: true,
}

// ParseExploitationMode normalizes the raw value. The short spellings "long"
// and "short" used by older clients map to the canonical modes.
func ParseExploitationMode(s string) ExploitationMode {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "long", "long-term":
		return LongTerm
	case "short", "short-term":
		return ShortTerm
	default:
		return ExploitationMode(v)
	}
}

// SimulationConfig is the user-supplied description of a hypothetical purchase.
// It is treated as immutable for the duration of a calculation.
type SimulationConfig struct {
	Price            float64          `json:"price"`
	Surface          float64          `json:"surface"`
	UnitType         UnitType         `json:"unitType"`
	ExploitationMode ExploitationMode `json:"exploitationMode"`
	City             string           `json:"city"`
}

// WithMode returns a copy of the config using the given exploitation mode.
func (c SimulationConfig) WithMode(mode ExploitationMode) SimulationConfig {
	c.ExploitationMode = mode
	return c
}

// Domain bounds for SimulationConfig.
const (
	MinPrice   = 50000
	MaxPrice   = 1000000
	MinSurface = 10
	MaxSurface = 200
)
