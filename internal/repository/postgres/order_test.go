package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishek8094/storefront/internal/domain"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
	"github.com/abhishek8094/storefront/pkg/database"
)

func newTestOrderRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewOrderRepository(mock)
	return repo, mock
}

func sampleOrder() *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:                "7b9a1f4e-5c2d-4b8a-9e6f-1a2b3c4d5e6f",
		UserID:            "user-001",
		Status:            domain.OrderStatusPending,
		PaymentMethod:     domain.PaymentMethodCard,
		PaymentStatus:     domain.PaymentStatusPending,
		TotalAmount:       2500,
		ShippingAddressID: "addr-001",
		CreatedAt:         now,
		UpdatedAt:         now,
		Items: []domain.OrderLine{
			{
				ID:        "line-001",
				OrderID:   "7b9a1f4e-5c2d-4b8a-9e6f-1a2b3c4d5e6f",
				ProductID: "prod-001",
				Quantity:  2,
				UnitPrice: 1000,
			},
			{
				ID:        "line-002",
				OrderID:   "7b9a1f4e-5c2d-4b8a-9e6f-1a2b3c4d5e6f",
				ProductID: "prod-002",
				Quantity:  1,
				UnitPrice: 500,
			},
		},
	}
}

func TestOrderRepository_Create_Success(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.UserID, o.Status, o.PaymentMethod, o.PaymentStatus,
			o.TotalAmount, o.ShippingAddressID, o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	for i, line := range o.Items {
		mock.ExpectExec("INSERT INTO order_lines").
			WithArgs(line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice, i).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	mock.ExpectCommit()

	err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_DuplicateID(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.UserID, o.Status, o.PaymentMethod, o.PaymentStatus,
			o.TotalAmount, o.ShippingAddressID, o.CreatedAt, o.UpdatedAt,
		).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "orders_pkey" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), o)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	o := sampleOrder()
	linesJSON, err := json.Marshal(o.Items)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "status", "payment_method", "payment_status",
		"total_amount", "shipping_address_id", "created_at", "updated_at", "lines",
	}).AddRow(
		o.ID, o.UserID, o.Status, o.PaymentMethod, o.PaymentStatus,
		o.TotalAmount, o.ShippingAddressID, o.CreatedAt, o.UpdatedAt, linesJSON,
	)

	mock.ExpectQuery("SELECT").WithArgs(o.ID).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, o.TotalAmount, got.TotalAmount)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "prod-001", got.Items[0].ProductID)
	assert.Equal(t, int64(1000), got.Items[0].UnitPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectQuery("SELECT").
		WithArgs("unknown").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "unknown")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUserID(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	o := sampleOrder()

	orderRows := pgxmock.NewRows([]string{
		"id", "user_id", "status", "payment_method", "payment_status",
		"total_amount", "shipping_address_id", "created_at", "updated_at",
	}).AddRow(
		o.ID, o.UserID, o.Status, o.PaymentMethod, o.PaymentStatus,
		o.TotalAmount, o.ShippingAddressID, o.CreatedAt, o.UpdatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(o.UserID).
		WillReturnRows(orderRows)

	lineRows := pgxmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "unit_price"})
	for _, line := range o.Items {
		lineRows.AddRow(line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice)
	}

	mock.ExpectQuery("SELECT (.+) FROM order_lines").
		WithArgs([]string{o.ID}).
		WillReturnRows(lineRows)

	orders, err := repo.ListByUserID(context.Background(), o.UserID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUserID_Empty(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs("user-empty").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "status", "payment_method", "payment_status",
			"total_amount", "shipping_address_id", "created_at", "updated_at",
		}))

	orders, err := repo.ListByUserID(context.Background(), "user-empty")
	require.NoError(t, err)
	assert.Empty(t, orders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_Success(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	paid := domain.PaymentStatusPaid
	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusShipped, &paid, pgxmock.AnyArg(), "order-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), "order-1", domain.OrderStatusShipped, &paid)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusShipped, (*string)(nil), pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.OrderStatusShipped, nil)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
