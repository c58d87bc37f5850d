package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek8094/storefront/internal/domain"
	"github.com/abhishek8094/storefront/internal/event"
	"github.com/abhishek8094/storefront/internal/repository"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
)

// OrderService implements the order placement and pricing workflow. Unit
// prices are resolved from the catalog at creation time and stored on the
// order lines; they are never recomputed afterward.
type OrderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	addresses repository.AddressRepository
	users     repository.UserRepository
	carts     repository.CartRepository
	producer  *event.Producer
	media     *MediaResolver
	logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	addresses repository.AddressRepository,
	users repository.UserRepository,
	carts repository.CartRepository,
	producer *event.Producer,
	media *MediaResolver,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		addresses: addresses,
		users:     users,
		carts:     carts,
		producer:  producer,
		media:     media,
		logger:    logger,
	}
}

// OrderLineInput holds the parameters for one order line. Only the product
// reference and quantity are accepted; the unit price always comes from the
// catalog.
type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput holds the parameters for creating an order.
type CreateOrderInput struct {
	UserID            string
	Items             []OrderLineInput
	ShippingAddressID string
	PaymentMethod     string
}

// CreateOrder validates the input, captures authoritative catalog prices,
// and persists the order. Validation is fail-fast: the first violation, in
// input order, terminates the request. On success the user's cart is cleared.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one product")
	}
	if input.ShippingAddressID == "" {
		return nil, apperrors.InvalidInput("shipping address is required")
	}

	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		return nil, apperrors.InvalidInput("payment method is required")
	}
	if !domain.IsValidPaymentMethod(paymentMethod) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid payment method %q, must be one of: %s",
			paymentMethod, strings.Join(domain.ValidPaymentMethods(), ", ")))
	}

	address, err := s.addresses.GetByID(ctx, input.ShippingAddressID)
	if err != nil {
		return nil, fmt.Errorf("resolve shipping address: %w", err)
	}
	if address.UserID != input.UserID {
		return nil, apperrors.NotFound("address", input.ShippingAddressID)
	}

	now := time.Now().UTC()
	orderID := uuid.New().String()

	// Validate each line in input order and capture the catalog price. The
	// first failing line wins; nothing is persisted on failure.
	lines := make([]domain.OrderLine, len(input.Items))
	productsByID := make(map[string]*domain.Product, len(input.Items))
	var total int64
	for i, item := range input.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product: %w", err)
		}
		if item.Quantity < 1 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid quantity for product %s", item.ProductID))
		}

		lines[i] = domain.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}
		total += lines[i].LineTotal()
		productsByID[product.ID] = product
	}

	order := &domain.Order{
		ID:                orderID,
		UserID:            input.UserID,
		Status:            domain.OrderStatusPending,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     domain.PaymentStatusPending,
		Items:             lines,
		TotalAmount:       total,
		ShippingAddressID: address.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.carts.Delete(ctx, input.UserID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after order",
			slog.String("order_id", order.ID),
			slog.String("user_id", input.UserID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	order.ShippingAddress = address
	for i := range order.Items {
		if p, ok := productsByID[order.Items[i].ProductID]; ok {
			order.Items[i].Product = s.productSummary(p)
		}
	}
	if user, err := s.users.GetByID(ctx, input.UserID); err == nil {
		order.User = user.Summary()
	}

	return order, nil
}

// GetOrder retrieves an order by its external id with products, address, and
// user expanded. The requester must own the order or hold the admin role.
func (s *OrderService) GetOrder(ctx context.Context, orderID, requesterID, requesterRole string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	if order.UserID != requesterID && requesterRole != domain.RoleAdmin {
		return nil, apperrors.Forbidden("you do not have access to this order")
	}

	if err := s.expandOrder(ctx, order, true); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders returns the requester's orders newest first, with products and
// address expanded. The user view is not expanded in lists.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i := range orders {
		if err := s.expandOrder(ctx, &orders[i], false); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// UpdateStatusInput holds the parameters for an order status transition.
type UpdateStatusInput struct {
	Status        string
	PaymentStatus *string
}

// UpdateStatus transitions the order to a new status. Any valid status may
// follow any other; only enum membership is checked. Administrator only,
// enforced at the transport layer.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, input UpdateStatusInput) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(input.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s",
			input.Status, strings.Join(domain.ValidOrderStatuses(), ", ")))
	}
	if input.PaymentStatus != nil && !domain.IsValidPaymentStatus(*input.PaymentStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid payment status %q, must be one of: %s",
			*input.PaymentStatus, strings.Join(domain.ValidPaymentStatuses(), ", ")))
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	oldStatus := order.Status

	if err := s.orders.UpdateStatus(ctx, orderID, input.Status, input.PaymentStatus); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := s.producer.PublishOrderStatusChanged(ctx, orderID, oldStatus, input.Status, input.PaymentStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", input.Status),
	)

	order.Status = input.Status
	if input.PaymentStatus != nil {
		order.PaymentStatus = *input.PaymentStatus
	}

	if err := s.expandOrder(ctx, order, true); err != nil {
		return nil, err
	}

	return order, nil
}

// expandOrder resolves the order's references at read time: product
// summaries per line, the shipping address, and optionally the owning user.
// A product or address deleted after the order was placed leaves the stored
// reference unexpanded rather than failing the read.
func (s *OrderService) expandOrder(ctx context.Context, order *domain.Order, includeUser bool) error {
	for i := range order.Items {
		product, err := s.products.GetByID(ctx, order.Items[i].ProductID)
		if err != nil {
			if apperrors.HTTPStatus(err) == 404 {
				continue
			}
			return fmt.Errorf("expand order product: %w", err)
		}
		order.Items[i].Product = s.productSummary(product)
	}

	address, err := s.addresses.GetByID(ctx, order.ShippingAddressID)
	if err != nil {
		if apperrors.HTTPStatus(err) != 404 {
			return fmt.Errorf("expand order address: %w", err)
		}
	} else {
		order.ShippingAddress = address
	}

	if includeUser {
		user, err := s.users.GetByID(ctx, order.UserID)
		if err != nil {
			if apperrors.HTTPStatus(err) != 404 {
				return fmt.Errorf("expand order user: %w", err)
			}
		} else {
			order.User = user.Summary()
		}
	}

	return nil
}

// productSummary builds the embedded product view with its image URL shaped
// against the configured media base. Summary copies the image, so resolving
// here never rewrites the catalog record.
func (s *OrderService) productSummary(p *domain.Product) *domain.ProductSummary {
	summary := p.Summary()
	if summary.Image != nil {
		summary.Image.URL = s.media.Resolve(summary.Image.URL)
	}
	return summary
}
