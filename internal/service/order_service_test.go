package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tabletap/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	// Return a MockTx interface value, not a pointer
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	args := m.Called(ctx, tx, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockNotifier is a mock implementation of notify.Notifier. Each call signals
// the done channel so tests can wait for the asynchronous dispatch.
type MockNotifier struct {
	mock.Mock
	done chan *model.OrderNotification
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{done: make(chan *model.OrderNotification, 1)}
}

func (m *MockNotifier) NotifyOrderCreated(ctx context.Context, n *model.OrderNotification) error {
	args := m.Called(ctx, n)
	m.done <- n
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func validOrderRequest() *model.OrderRequest {
	return &model.OrderRequest{
		RestaurantID: "addis-kitchen",
		TableNumber:  "7",
		Items: []model.CartItem{
			{ID: "doro-wat", Name: "Doro Wat", Price: decimal.NewFromFloat(12.50), Quantity: 2, Station: model.StationKitchen},
			{ID: "tej", Name: "Tej", Price: decimal.NewFromFloat(5.00), Quantity: 1, Station: model.StationBar},
		},
		TotalPrice: decimal.NewFromFloat(30.00),
	}
}

func TestOrderService_Submit_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := validOrderRequest()

	mockRepo := new(MockOrderRepository)
	mockNotifier := NewMockNotifier()
	mockTx := new(MockTx)

	service := NewOrderService(mockRepo, mockNotifier, logger)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(2).(*model.Order)
			order.OrderNumber = "ORD-000042"
		}).
		Return(nil)
	mockRepo.On("CreateOrderLines", ctx, mockTx, mock.AnythingOfType("[]model.OrderLine")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	// The dispatch runs on its own context, not the request context.
	mockNotifier.On("NotifyOrderCreated", mock.Anything, mock.AnythingOfType("*model.OrderNotification")).Return(nil)

	conf, err := service.Submit(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.NotEqual(t, uuid.Nil, conf.ID)
	assert.Equal(t, "ORD-000042", conf.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, conf.Status)

	select {
	case n := <-mockNotifier.done:
		assert.Equal(t, conf.ID, n.OrderID)
		assert.Equal(t, "ORD-000042", n.OrderNumber)
		assert.Equal(t, "addis-kitchen", n.Restaurant)
		assert.Equal(t, "7", n.TableNumber)
		assert.Len(t, n.Items, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}

	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestOrderService_Submit_NotifierFailureDoesNotAffectResult(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := validOrderRequest()

	mockRepo := new(MockOrderRepository)
	mockNotifier := NewMockNotifier()
	mockTx := new(MockTx)

	service := NewOrderService(mockRepo, mockNotifier, logger)

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockRepo.On("CreateOrderLines", ctx, mockTx, mock.AnythingOfType("[]model.OrderLine")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockNotifier.On("NotifyOrderCreated", mock.Anything, mock.AnythingOfType("*model.OrderNotification")).
		Return(errors.New("webhook unreachable"))

	conf, err := service.Submit(ctx, req)

	// The order is already committed; the failed fan-out is logged and
	// swallowed.
	require.NoError(t, err)
	require.NotNil(t, conf)

	select {
	case <-mockNotifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}

	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_Submit_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		mutate      func(req *model.OrderRequest) *model.OrderRequest
		expectedErr error
	}{
		{
			name:   "Nil request",
			mutate: func(req *model.OrderRequest) *model.OrderRequest { return nil },
		},
		{
			name: "Missing restaurant",
			mutate: func(req *model.OrderRequest) *model.OrderRequest {
				req.RestaurantID = ""
				return req
			},
		},
		{
			name: "Missing table number",
			mutate: func(req *model.OrderRequest) *model.OrderRequest {
				req.TableNumber = ""
				return req
			},
		},
		{
			name: "Empty items",
			mutate: func(req *model.OrderRequest) *model.OrderRequest {
				req.Items = nil
				return req
			},
			expectedErr: model.ErrEmptyOrder,
		},
		{
			name: "Zero quantity item",
			mutate: func(req *model.OrderRequest) *model.OrderRequest {
				req.Items[0].Quantity = 0
				return req
			},
			expectedErr: model.ErrInvalidQuantity,
		},
		{
			name: "Non-positive total",
			mutate: func(req *model.OrderRequest) *model.OrderRequest {
				req.TotalPrice = decimal.Zero
				return req
			},
			expectedErr: model.ErrInvalidTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			mockNotifier := NewMockNotifier()

			service := NewOrderService(mockRepo, mockNotifier, logger)

			conf, err := service.Submit(ctx, tt.mutate(validOrderRequest()))

			require.Error(t, err)
			assert.Nil(t, conf)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}

			// Nothing is persisted or announced on a validation failure.
			mockRepo.AssertNotCalled(t, "BeginTx")
			mockNotifier.AssertNotCalled(t, "NotifyOrderCreated")
		})
	}
}

func TestOrderService_Submit_BeginTxFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockOrderRepository)
	mockNotifier := NewMockNotifier()

	service := NewOrderService(mockRepo, mockNotifier, logger)

	mockRepo.On("BeginTx", ctx).Return(nil, errors.New("pool exhausted"))

	conf, err := service.Submit(ctx, validOrderRequest())

	require.Error(t, err)
	assert.Nil(t, conf)

	mockRepo.AssertExpectations(t)
	mockNotifier.AssertNotCalled(t, "NotifyOrderCreated")
}

func TestOrderService_Submit_TransactionRollback(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(mockRepo *MockOrderRepository, mockTx *MockTx)
	}{
		{
			name: "CreateOrder fails",
			setup: func(mockRepo *MockOrderRepository, mockTx *MockTx) {
				mockRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).
					Return(errors.New("database error"))
			},
		},
		{
			name: "CreateOrderLines fails",
			setup: func(mockRepo *MockOrderRepository, mockTx *MockTx) {
				mockRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
				mockRepo.On("CreateOrderLines", ctx, mockTx, mock.AnythingOfType("[]model.OrderLine")).
					Return(errors.New("database error"))
			},
		},
		{
			name: "Commit fails",
			setup: func(mockRepo *MockOrderRepository, mockTx *MockTx) {
				mockRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
				mockRepo.On("CreateOrderLines", ctx, mockTx, mock.AnythingOfType("[]model.OrderLine")).Return(nil)
				mockTx.On("Commit", ctx).Return(errors.New("commit failed"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			mockNotifier := NewMockNotifier()
			mockTx := new(MockTx)

			service := NewOrderService(mockRepo, mockNotifier, logger)

			mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
			mockTx.On("Rollback", ctx).Return(nil)
			tt.setup(mockRepo, mockTx)

			conf, err := service.Submit(ctx, validOrderRequest())

			require.Error(t, err)
			assert.Nil(t, conf)
			assert.True(t, mockTx.rolledBack)

			mockRepo.AssertExpectations(t)
			mockTx.AssertExpectations(t)
			mockNotifier.AssertNotCalled(t, "NotifyOrderCreated")
		})
	}
}
