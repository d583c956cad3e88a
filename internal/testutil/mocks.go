package testutil

import (
	"context"
	"sync"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// MockMarketProvider is a market.Provider returning canned payloads.
type MockMarketProvider struct {
	mu sync.Mutex

	// RentResponse and ShortTermResponse are returned on success.
	RentResponse      model.RentEstimate
	ShortTermResponse model.ShortTermEstimate
	// MockError is returned by both methods when set.
	MockError error
	// QueryCount tracks how many times a method was called.
	QueryCount int
}

// NewMockMarketProvider creates a provider returning 1 000 €/month long-term
// and 3 000 €/month short-term.
func NewMockMarketProvider() *MockMarketProvider {
	return &MockMarketProvider{
		RentResponse: model.RentEstimate{
			Data:       model.LongTermMarketData{TotalMonthlyRent: 1000},
			DataSource: "mock",
		},
		ShortTermResponse: model.ShortTermEstimate{
			Data:       model.ShortTermMarketData{MonthlyRevenue: 3000},
			DataSource: "mock",
		},
	}
}

func (m *MockMarketProvider) RentData(_ context.Context, _ model.MarketQuery) (model.RentEstimate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	if m.MockError != nil {
		return model.RentEstimate{}, m.MockError
	}
	return m.RentResponse, nil
}

func (m *MockMarketProvider) ShortTermData(_ context.Context, _ model.MarketQuery) (model.ShortTermEstimate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	if m.MockError != nil {
		return model.ShortTermEstimate{}, m.MockError
	}
	return m.ShortTermResponse, nil
}

// Queries returns QueryCount under the lock.
func (m *MockMarketProvider) Queries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

// WithError configures the mock to return the specified error.
func (m *MockMarketProvider) WithError(err error) *MockMarketProvider {
	m.MockError = err
	return m
}

// WithRentResponse configures the long-term payload.
func (m *MockMarketProvider) WithRentResponse(data model.LongTermMarketData) *MockMarketProvider {
	m.RentResponse.Data = data
	return m
}

// WithShortTermResponse configures the short-term payload.
func (m *MockMarketProvider) WithShortTermResponse(data model.ShortTermMarketData) *MockMarketProvider {
	m.ShortTermResponse.Data = data
	return m
}

// RecordingPublisher is a lead publisher that keeps what it was given.
type RecordingPublisher struct {
	mu    sync.Mutex
	leads []model.Lead
	err   error
}

// NewRecordingPublisher creates a publisher that accepts every lead.
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// WithError makes Publish fail with err.
func (p *RecordingPublisher) WithError(err error) *RecordingPublisher {
	p.err = err
	return p
}

func (p *RecordingPublisher) Publish(_ context.Context, lead model.Lead) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.leads = append(p.leads, lead)
	return nil
}

// Leads returns a copy of the published leads.
func (p *RecordingPublisher) Leads() []model.Lead {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Lead(nil), p.leads...)
}
