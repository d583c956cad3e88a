package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// CityRepository provides read access to the city_market_profile reference table.
type CityRepository struct {
	db *sql.DB
}

// NewCityRepository creates a new CityRepository with the provided database connection.
func NewCityRepository(db *sql.DB) *CityRepository {
	return &CityRepository{db: db}
}

// GetCityProfiles retrieves every city profile ordered by slug.
// Returns an empty slice if the table has no rows.
func (r *CityRepository) GetCityProfiles(ctx context.Context) ([]model.CityMarketProfile, error) {
	query := `
		SELECT slug, display_name, rent_per_sqm, market_multiplier
		FROM city_market_profile
		ORDER BY slug ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query city profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.CityMarketProfile{}
	for rows.Next() {
		var p model.CityMarketProfile
		if err := rows.Scan(&p.Slug, &p.DisplayName, &p.RentPerSquareMeter, &p.MarketMultiplier); err != nil {
			return nil, fmt.Errorf("failed to scan city profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city profiles: %w", err)
	}

	return profiles, nil
}

// UpsertCityProfile inserts or replaces a single profile.
func (r *CityRepository) UpsertCityProfile(ctx context.Context, p model.CityMarketProfile) error {
	query := `
		INSERT INTO city_market_profile (slug, display_name, rent_per_sqm, market_multiplier, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slug) DO UPDATE SET
			display_name = excluded.display_name,
			rent_per_sqm = excluded.rent_per_sqm,
			market_multiplier = excluded.market_multiplier,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, p.Slug, p.DisplayName, p.RentPerSquareMeter, p.MarketMultiplier); err != nil {
		return fmt.Errorf("failed to upsert city profile %s: %w", p.Slug, err)
	}
	return nil
}
