package service

import (
	"context"
	"fmt"
	"time"

	"tabletap/internal/model"
	"tabletap/internal/notify"
	"tabletap/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notifyDispatchTimeout bounds the whole asynchronous notification dispatch,
// retries included.
const notifyDispatchTimeout = 30 * time.Second

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	notifier  notify.Notifier
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	notifier notify.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Submit validates, persists and announces a new order.
//
// Validation failures reject the request before any persistence attempt.
// Persistence failures surface as server errors with no partial order
// exposed. The notification fan-out is dispatched asynchronously after
// commit and its outcome never affects the returned result: by then the
// order is already durably recorded.
func (s *orderService) Submit(ctx context.Context, req *model.OrderRequest) (*model.OrderConfirmation, error) {
	if err := model.ValidateOrderSubmission(req); err != nil {
		s.logger.Warn().Err(err).Msg("order submission failed validation")
		return nil, err
	}

	order := &model.Order{
		ID:           uuid.New(),
		RestaurantID: req.RestaurantID,
		TableNumber:  req.TableNumber,
		TotalPrice:   req.TotalPrice,
		Notes:        req.Notes,
		Status:       model.OrderStatusPending,
		CreatedAt:    time.Now(),
	}

	lines := make([]model.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = model.OrderLine{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ItemID:    item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Station:   item.Station,
			Notes:     item.Notes,
			Modifiers: item.Modifiers,
		}
	}
	order.Items = lines

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderLines(ctx, tx, lines); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("line_count", len(lines)).
			Msg("failed to create order lines")
		return nil, fmt.Errorf("failed to create order lines: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Str("restaurant_id", order.RestaurantID).
		Str("table_number", order.TableNumber).
		Int("line_count", len(lines)).
		Msg("order created successfully")

	// Fire-and-forget fan-out: the request context may end as soon as the
	// response is written, so dispatch runs on its own bounded context.
	go s.dispatchNotification(order)

	return &model.OrderConfirmation{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
	}, nil
}

// dispatchNotification announces the order to the external channel. Failures
// are logged and swallowed; the order already succeeded.
func (s *orderService) dispatchNotification(order *model.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyDispatchTimeout)
	defer cancel()

	n := &model.OrderNotification{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Restaurant:  order.RestaurantID,
		TableNumber: order.TableNumber,
		Items:       order.Items,
		TotalPrice:  order.TotalPrice,
		Notes:       order.Notes,
		CreatedAt:   order.CreatedAt,
	}

	if err := s.notifier.NotifyOrderCreated(ctx, n); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("order_number", order.OrderNumber).
			Msg("order notification failed, order remains recorded")
	}
}
