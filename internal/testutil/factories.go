package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/request"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/repository"
)

// SimulationBuilder provides a fluent interface for creating simulation requests.
//
// Example usage:
//
//	// Paris T2, 50 m², 200 000 €, long-term
//	req := testutil.NewSimulation().Build()
//
//	// Customized request
//	req := testutil.NewSimulation().
//	    WithCity("lyon").
//	    ShortTerm().
//	    WithMarketData(`{"monthlyRevenue": 2800}`).
//	    Build()
type SimulationBuilder struct {
	req request.SimulationRequest
}

// NewSimulation creates a SimulationBuilder with sensible defaults.
func NewSimulation() *SimulationBuilder {
	return &SimulationBuilder{req: request.SimulationRequest{
		Price:            200000,
		Surface:          50,
		UnitType:         string(model.UnitT2),
		ExploitationMode: string(model.LongTerm),
		City:             "paris",
	}}
}

// WithPrice sets the purchase price.
func (b *SimulationBuilder) WithPrice(price float64) *SimulationBuilder {
	b.req.Price = price
	return b
}

// WithSurface sets the surface in m².
func (b *SimulationBuilder) WithSurface(surface float64) *SimulationBuilder {
	b.req.Surface = surface
	return b
}

// WithUnitType sets the unit type.
func (b *SimulationBuilder) WithUnitType(unit string) *SimulationBuilder {
	b.req.UnitType = unit
	return b
}

// WithCity sets the city.
func (b *SimulationBuilder) WithCity(city string) *SimulationBuilder {
	b.req.City = city
	return b
}

// ShortTerm switches the request to short-term rental.
func (b *SimulationBuilder) ShortTerm() *SimulationBuilder {
	b.req.ExploitationMode = string(model.ShortTerm)
	return b
}

// WithMarketData attaches a raw JSON market payload.
func (b *SimulationBuilder) WithMarketData(raw string) *SimulationBuilder {
	b.req.MarketData = json.RawMessage(raw)
	return b
}

// FetchMarketData asks the server to query its market provider.
func (b *SimulationBuilder) FetchMarketData() *SimulationBuilder {
	b.req.FetchMarketData = true
	return b
}

// Build returns the request.
func (b *SimulationBuilder) Build() request.SimulationRequest {
	return b.req
}

// Config returns the normalized configuration of the request.
func (b *SimulationBuilder) Config() model.SimulationConfig {
	return b.req.Config()
}

// NewContact returns a valid contact form submission.
func NewContact() request.ContactRequest {
	return request.ContactRequest{
		FirstName:   "Camille",
		LastName:    "Martin",
		Email:       "Camille.Martin@Example.fr",
		Phone:       "06 12 34 56 78",
		Message:     "Je souhaite investir dans un T2 à Lyon.",
		ProjectType: string(model.ProjectInvestment),
		Budget:      "200k-300k",
	}
}

// InsertCity writes a city profile through the repository.
func InsertCity(t *testing.T, db *sql.DB, p model.CityMarketProfile) {
	t.Helper()

	if err := repository.NewCityRepository(db).UpsertCityProfile(context.Background(), p); err != nil {
		t.Fatalf("Failed to insert city %s: %v", p.Slug, err)
	}
}
