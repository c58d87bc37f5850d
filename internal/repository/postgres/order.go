package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abhishek8094/storefront/internal/domain"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
	"github.com/abhishek8094/storefront/pkg/database"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order and its lines atomically within a transaction.
// A duplicate order id reports as invalid input, not a conflict.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderQuery := `
		INSERT INTO orders (id, user_id, status, payment_method, payment_status, total_amount, shipping_address_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = tx.Exec(ctx, orderQuery,
		o.ID,
		o.UserID,
		o.Status,
		o.PaymentMethod,
		o.PaymentStatus,
		o.TotalAmount,
		o.ShippingAddressID,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.InvalidInput("order id already exists")
		}
		return fmt.Errorf("insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price, position)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for i, line := range o.Items {
		_, err = tx.Exec(ctx, lineQuery,
			line.ID,
			line.OrderID,
			line.ProductID,
			line.Quantity,
			line.UnitPrice,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its external id, loading its lines in the
// same query via JSONB_AGG to avoid a second round trip.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT
			o.id, o.user_id, o.status, o.payment_method, o.payment_status,
			o.total_amount, o.shipping_address_id, o.created_at, o.updated_at,
			COALESCE(
				JSONB_AGG(
					JSONB_BUILD_OBJECT(
						'id', ol.id,
						'order_id', ol.order_id,
						'product_id', ol.product_id,
						'quantity', ol.quantity,
						'unit_price', ol.unit_price
					) ORDER BY ol.position
				) FILTER (WHERE ol.id IS NOT NULL),
				'[]'::jsonb
			) AS lines
		FROM orders o
		LEFT JOIN order_lines ol ON o.id = ol.order_id
		WHERE o.id = $1
		GROUP BY o.id, o.user_id, o.status, o.payment_method, o.payment_status,
			o.total_amount, o.shipping_address_id, o.created_at, o.updated_at`

	var (
		o         domain.Order
		linesJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.TotalAmount,
		&o.ShippingAddressID,
		&o.CreatedAt,
		&o.UpdatedAt,
		&linesJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := unmarshalLines(linesJSON, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

// ListByUserID returns the user's orders newest first, batch-loading lines
// for all returned orders in a single query.
func (r *OrderRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	query := `
		SELECT id, user_id, status, payment_method, payment_status, total_amount, shipping_address_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Status,
			&o.PaymentMethod,
			&o.PaymentStatus,
			&o.TotalAmount,
			&o.ShippingAddressID,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]string, len(orders))
	for i := range orders {
		orderIDs[i] = orders[i].ID
	}

	linesQuery := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY position`

	lineRows, err := r.pool.Query(ctx, linesQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("batch load order lines: %w", err)
	}
	defer lineRows.Close()

	linesByOrderID := make(map[string][]domain.OrderLine, len(orders))
	for lineRows.Next() {
		var line domain.OrderLine
		if err := lineRows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.Quantity,
			&line.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		linesByOrderID[line.OrderID] = append(linesByOrderID[line.OrderID], line)
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order line rows: %w", err)
	}

	for i := range orders {
		if lines, ok := linesByOrderID[orders[i].ID]; ok {
			orders[i].Items = lines
		} else {
			orders[i].Items = []domain.OrderLine{}
		}
	}

	return orders, nil
}

// UpdateStatus changes the order status and, when paymentStatus is non-nil,
// the payment status as well.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status string, paymentStatus *string) error {
	query := `
		UPDATE orders
		SET status = $1, payment_status = COALESCE($2, payment_status), updated_at = $3
		WHERE id = $4`

	ct, err := r.pool.Exec(ctx, query, status, paymentStatus, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

func unmarshalLines(linesJSON []byte, o *domain.Order) error {
	if len(linesJSON) > 0 && string(linesJSON) != "null" && string(linesJSON) != "[]" {
		if err := json.Unmarshal(linesJSON, &o.Items); err != nil {
			return fmt.Errorf("unmarshal order lines: %w", err)
		}
	} else {
		o.Items = []domain.OrderLine{}
	}
	return nil
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
