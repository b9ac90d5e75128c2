package repository

import (
	"context"
	"fmt"

	"tabletap/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction. The order
// number comes from a database sequence and is written back onto the order
// as ORD-%06d.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, restaurant_id, table_number, total_price, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING order_seq
	`

	var seq int64
	err := tx.QueryRow(ctx, query,
		order.ID,
		order.RestaurantID,
		order.TableNumber,
		order.TotalPrice,
		order.Notes,
		order.Status,
		order.CreatedAt,
	).Scan(&seq)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	order.OrderNumber = FormatOrderNumber(seq)

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// FormatOrderNumber renders a sequence value as the customer-facing order
// number.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("ORD-%06d", seq)
}

// CreateOrderLines inserts the order's line items within the provided
// transaction.
func (r *orderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	query := `
		INSERT INTO order_items (id, order_id, item_id, name, price, quantity, station, notes, modifiers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.ID,
			line.OrderID,
			line.ItemID,
			line.Name,
			line.Price,
			line.Quantity,
			line.Station,
			line.Notes,
			line.Modifiers,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range lines {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int("line_count", len(lines)).
				Msg("failed to create order lines")
			return fmt.Errorf("failed to create order lines: %w", err)
		}
	}

	return nil
}

// GetByID retrieves an order by its ID along with its line items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, order_seq, restaurant_id, table_number, total_price, notes, status, created_at
		FROM orders
		WHERE id = $1
	`

	var (
		order model.Order
		seq   int64
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&seq,
		&order.RestaurantID,
		&order.TableNumber,
		&order.TotalPrice,
		&order.Notes,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	order.OrderNumber = FormatOrderNumber(seq)

	lineQuery := `
		SELECT id, order_id, item_id, name, price, quantity, station, notes, modifiers
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, lineQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order lines")
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line model.OrderLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ItemID,
			&line.Name,
			&line.Price,
			&line.Quantity,
			&line.Station,
			&line.Notes,
			&line.Modifiers,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line row")
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		order.Items = append(order.Items, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order line rows")
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return &order, nil
}
