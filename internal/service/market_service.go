package service

import (
	"context"
	"fmt"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/market"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// MarketService exposes market-data estimates to the HTTP layer.
type MarketService struct {
	provider market.Provider
}

// NewMarketService creates a new MarketService
func NewMarketService(provider market.Provider) *MarketService {
	return &MarketService{
		provider: provider,
	}
}

// RentEstimate returns the long-term rent estimate for a property.
func (s *MarketService) RentEstimate(ctx context.Context, q model.MarketQuery) (model.RentEstimate, error) {
	if err := validation.ValidateMarketQuery(q); err != nil {
		return model.RentEstimate{}, err
	}
	est, err := s.provider.RentData(ctx, q)
	if err != nil {
		return model.RentEstimate{}, fmt.Errorf("%w: %w", apperrors.ErrMarketDataUnavailable, err)
	}
	return est, nil
}

// ShortTermEstimate returns the nightly-rental revenue estimate for a property.
func (s *MarketService) ShortTermEstimate(ctx context.Context, q model.MarketQuery) (model.ShortTermEstimate, error) {
	if err := validation.ValidateMarketQuery(q); err != nil {
		return model.ShortTermEstimate{}, err
	}
	est, err := s.provider.ShortTermData(ctx, q)
	if err != nil {
		return model.ShortTermEstimate{}, fmt.Errorf("%w: %w", apperrors.ErrMarketDataUnavailable, err)
	}
	return est, nil
}
