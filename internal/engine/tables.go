package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// Tables is an immutable snapshot of the reference data read by the engine.
// Build one with NewTables or DefaultTables; never modify it afterwards.
type Tables struct {
	cities       map[string]model.CityMarketProfile
	slugs        []string
	coefficients map[model.UnitType]float64
	fees         FeeSchedule
}

// NewTables builds a snapshot from city profiles. Slugs are normalized, and a
// missing display name is derived from the slug. The default city must be
// present since every unknown lookup falls back to it.
func NewTables(profiles []model.CityMarketProfile) (*Tables, error) {
	if len(profiles) == 0 {
		return nil, apperrors.ErrReferenceDataEmpty
	}

	cities := make(map[string]model.CityMarketProfile, len(profiles))
	for _, p := range profiles {
		slug := NormalizeCity(p.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: empty city slug", apperrors.ErrInvalidReferenceData)
		}
		if p.RentPerSquareMeter <= 0 {
			return nil, fmt.Errorf("%w: %s has non-positive rent", apperrors.ErrInvalidReferenceData, slug)
		}
		p.Slug = slug
		if strings.TrimSpace(p.DisplayName) == "" {
			p.DisplayName = DisplayName(slug)
		}
		if p.MarketMultiplier <= 0 {
			p.MarketMultiplier = 1.0
		}
		cities[slug] = p
	}
	if _, ok := cities[DefaultCity]; !ok {
		return nil, fmt.Errorf("%w: missing default city %q", apperrors.ErrInvalidReferenceData, DefaultCity)
	}

	slugs := make([]string, 0, len(cities))
	for slug := range cities {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	coefficients := make(map[model.UnitType]float64, len(DefaultUnitCoefficients))
	for k, v := range DefaultUnitCoefficients {
		coefficients[k] = v
	}

	return &Tables{
		cities:       cities,
		slugs:        slugs,
		coefficients: coefficients,
		fees:         DefaultFeeSchedule,
	}, nil
}

// DefaultTables returns the compiled-in reference tables.
func DefaultTables() *Tables {
	t, err := NewTables(defaultCityProfiles)
	if err != nil {
		panic(fmt.Sprintf("engine: invalid compiled-in city table: %v", err))
	}
	return t
}

// DefaultCityProfiles returns a copy of the compiled-in city rows.
func DefaultCityProfiles() []model.CityMarketProfile {
	out := make([]model.CityMarketProfile, len(defaultCityProfiles))
	copy(out, defaultCityProfiles)
	return out
}

// LookupCity returns the profile for a city name, normalizing it first.
func (t *Tables) LookupCity(name string) (model.CityMarketProfile, bool) {
	p, ok := t.cities[NormalizeCity(name)]
	return p, ok
}

// City returns the profile for a city name, or the default city's profile.
func (t *Tables) City(name string) model.CityMarketProfile {
	if p, ok := t.LookupCity(name); ok {
		return p
	}
	return t.cities[DefaultCity]
}

// Cities returns all profiles ordered by slug.
func (t *Tables) Cities() []model.CityMarketProfile {
	out := make([]model.CityMarketProfile, 0, len(t.slugs))
	for _, slug := range t.slugs {
		out = append(out, t.cities[slug])
	}
	return out
}

// Len is the number of known cities.
func (t *Tables) Len() int {
	return len(t.slugs)
}

// Coefficient returns the rent coefficient of a unit type; unknown types use 1.0.
func (t *Tables) Coefficient(u model.UnitType) float64 {
	if c, ok := t.coefficients[u]; ok {
		return c
	}
	return 1.0
}

// Fees returns the fee schedule.
func (t *Tables) Fees() FeeSchedule {
	return t.fees
}

// TableStore publishes the current Tables snapshot. Readers call Load once per
// calculation; writers replace the whole snapshot with Swap.
type TableStore struct {
	current atomic.Pointer[Tables]
}

// NewTableStore creates a store holding initial, or DefaultTables when nil.
func NewTableStore(initial *Tables) *TableStore {
	if initial == nil {
		initial = DefaultTables()
	}
	s := &TableStore{}
	s.current.Store(initial)
	return s
}

// Load returns the current snapshot.
func (s *TableStore) Load() *Tables {
	return s.current.Load()
}

// Swap installs next and returns the previous snapshot. A nil next is ignored.
func (s *TableStore) Swap(next *Tables) *Tables {
	if next == nil {
		return s.current.Load()
	}
	return s.current.Swap(next)
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// NormalizeCity turns free-form input into a table key: lower-case, accents
// removed, words joined with single hyphens.
// "  Saint Étienne " and "saint_etienne" both become "saint-etienne".
func NormalizeCity(name string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_' || r == '\'' || r == '’'
	})
	return strings.Join(fields, "-")
}

// DisplayName derives a presentable name from a slug ("la-rochelle" -> "La Rochelle").
func DisplayName(slug string) string {
	return cases.Title(language.French).String(strings.ReplaceAll(slug, "-", " "))
}
