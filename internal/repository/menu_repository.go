package repository

import (
	"context"
	"fmt"

	"tabletap/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

const menuColumns = `id, restaurant_id, name, localized_name, description, price,
		category, station, available, fasting, pairs_with, order_count, image_url, created_at`

// scanMenuItem maps one raw row into the domain type. Mapping happens once
// here, at the data-access boundary; the integrity validation on top of it
// lives in the service layer.
func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var m model.MenuItem
	err := row.Scan(
		&m.ID,
		&m.RestaurantID,
		&m.Name,
		&m.LocalizedName,
		&m.Description,
		&m.Price,
		&m.Category,
		&m.Station,
		&m.Available,
		&m.Fasting,
		&m.PairsWith,
		&m.OrderCount,
		&m.ImageURL,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByRestaurant retrieves all menu items for a restaurant ordered by
// category and name.
func (r *menuRepository) GetByRestaurant(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY category, name
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("restaurant_id", restaurantID).
			Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single menu item by its ID.
func (r *menuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE id = $1
	`

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("item_id", id).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return item, nil
}

// SetAvailability flips the availability flag for an item.
func (r *menuRepository) SetAvailability(ctx context.Context, restaurantID, id string, available bool) error {
	query := `
		UPDATE menu_items
		SET available = $3
		WHERE restaurant_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query, restaurantID, id, available)
	if err != nil {
		r.logger.Error().Err(err).
			Str("restaurant_id", restaurantID).
			Str("item_id", id).
			Msg("failed to update menu item availability")
		return fmt.Errorf("failed to update menu item availability: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("restaurant_id", restaurantID).
			Str("item_id", id).
			Msg("menu item not found for availability update")
		return model.ErrItemNotFound
	}

	r.logger.Info().
		Str("restaurant_id", restaurantID).
		Str("item_id", id).
		Bool("available", available).
		Msg("menu item availability updated")

	return nil
}
