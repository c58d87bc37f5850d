package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abhishek8094/storefront/internal/domain"
	"github.com/abhishek8094/storefront/internal/event"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
	pkgkafka "github.com/abhishek8094/storefront/pkg/kafka"
)

// --- Mock Repositories ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, status string, paymentStatus *string) error {
	args := m.Called(ctx, id, status, paymentStatus)
	return args.Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockAddressRepository) Update(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *mockAddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Helpers ---

type orderServiceMocks struct {
	orders    *mockOrderRepository
	products  *mockProductRepository
	addresses *mockAddressRepository
	users     *mockUserRepository
	carts     *mockCartRepository
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestOrderService() (*OrderService, *orderServiceMocks) {
	logger := newTestLogger()
	// Kafka producer without a real broker; publish failures are logged,
	// never surfaced.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger)
	producer := event.NewProducer(kafkaProducer, logger)

	m := &orderServiceMocks{
		orders:    new(mockOrderRepository),
		products:  new(mockProductRepository),
		addresses: new(mockAddressRepository),
		users:     new(mockUserRepository),
		carts:     new(mockCartRepository),
	}
	svc := NewOrderService(m.orders, m.products, m.addresses, m.users, m.carts, producer, NewMediaResolver("https://cdn.example.com"), logger)
	return svc, m
}

func testAddress(userID string) *domain.Address {
	return &domain.Address{
		ID:           "addr-1",
		UserID:       userID,
		FirstName:    "Asha",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		PostalCode:   "560001",
		CountryCode:  "IN",
		IsDefault:    true,
		CreatedAt:    time.Now().UTC(),
	}
}

func testProduct(id string, price int64) *domain.Product {
	return &domain.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: price,
		Images: []domain.Image{
			{ID: "img-" + id, URL: "https://cdn.example.com/" + id + ".jpg"},
		},
	}
}

func strPtr(s string) *string {
	return &s
}

// --- CreateOrder ---

func TestCreateOrder_Success(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "prod-1").Return(testProduct("prod-1", 1000), nil)
	m.products.On("GetByID", ctx, "prod-2").Return(testProduct("prod-2", 500), nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	m.carts.On("Delete", ctx, "user-1").Return(nil)
	m.users.On("GetByID", ctx, "user-1").Return(&domain.User{
		ID: "user-1", Email: "asha@example.com", FirstName: "Asha", LastName: "Verma",
	}, nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
		Items: []OrderLineInput{
			{ProductID: "prod-1", Quantity: 2},
			{ProductID: "prod-2", Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "card", order.PaymentMethod)
	assert.Equal(t, int64(2500), order.TotalAmount) // 2*1000 + 1*500
	assert.Equal(t, order.TotalAmount, order.Total())

	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(1000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(500), order.Items[1].UnitPrice)
	for _, line := range order.Items {
		assert.Equal(t, order.ID, line.OrderID)
		assert.NotEmpty(t, line.ID)
	}

	// Expanded response: products, address, and user resolved.
	require.NotNil(t, order.Items[0].Product)
	assert.Equal(t, "Product prod-1", order.Items[0].Product.Name)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "addr-1", order.ShippingAddress.ID)
	require.NotNil(t, order.User)
	assert.Equal(t, "asha@example.com", order.User.Email)

	m.orders.AssertExpectations(t)
	m.carts.AssertExpectations(t)
}

func TestCreateOrder_TrimsPaymentMethod(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "prod-1").Return(testProduct("prod-1", 1000), nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	m.carts.On("Delete", ctx, "user-1").Return(nil)
	m.users.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "  upi  ",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, "upi", order.PaymentMethod)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestCreateOrder_MissingAddress(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:        "user-1",
		PaymentMethod: "card",
		Items:         []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestCreateOrder_MissingPaymentMethod(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "   ",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestCreateOrder_UnknownPaymentMethod(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "cheque",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestCreateOrder_AddressNotFound(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.addresses.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("address", "missing"))

	_, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "missing",
		PaymentMethod:     "card",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
}

func TestCreateOrder_AddressOwnedByOtherUser(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("someone-else"), nil)

	_, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "ghost-product").Return(nil, apperrors.NotFound("product", "ghost-product"))

	_, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
		Items:             []OrderLineInput{{ProductID: "ghost-product", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
	assert.Contains(t, err.Error(), "ghost-product")
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "prod-1").Return(testProduct("prod-1", 1000), nil)

	for _, qty := range []int{0, -3} {
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:            "user-1",
			ShippingAddressID: "addr-1",
			PaymentMethod:     "card",
			Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: qty}},
		})

		require.Error(t, err)
		assert.Equal(t, 400, apperrors.HTTPStatus(err))
		assert.Contains(t, err.Error(), "prod-1")
	}
}

func TestCreateOrder_FirstViolationWins(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	// The first line's missing product must short-circuit; the second
	// line's bad quantity is never reached.
	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "ghost-product").Return(nil, apperrors.NotFound("product", "ghost-product"))

	_, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
		Items: []OrderLineInput{
			{ProductID: "ghost-product", Quantity: 1},
			{ProductID: "prod-2", Quantity: 0},
		},
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
	m.products.AssertNotCalled(t, "GetByID", ctx, "prod-2")
}

func TestCreateOrder_PriceCapturedFromCatalog(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	product := testProduct("prod-1", 7700)
	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "prod-1").Return(product, nil)
	m.carts.On("Delete", ctx, "user-1").Return(nil)
	m.users.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)

	var persisted *domain.Order
	m.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.Order)
		}).
		Return(nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "cod",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 3}},
	})

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, int64(7700), persisted.Items[0].UnitPrice)
	assert.Equal(t, int64(23100), persisted.TotalAmount)

	// A later catalog price change must not affect the created order.
	product.Price = 9900
	assert.Equal(t, int64(7700), order.Items[0].UnitPrice)
	assert.Equal(t, int64(23100), order.TotalAmount)
}

func TestCreateOrder_ExpandedImageResolvedWithoutMutatingCatalog(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	product := testProduct("prod-1", 1000)
	product.Images = []domain.Image{{ID: "img-1", URL: "products/prod-1.jpg"}}

	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "prod-1").Return(product, nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	m.carts.On("Delete", ctx, "user-1").Return(nil)
	m.users.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.NoError(t, err)
	require.NotNil(t, order.Items[0].Product)
	require.NotNil(t, order.Items[0].Product.Image)
	assert.Equal(t, "https://cdn.example.com/products/prod-1.jpg", order.Items[0].Product.Image.URL)
	// The catalog record keeps its stored reference.
	assert.Equal(t, "products/prod-1.jpg", product.Images[0].URL)
}

func TestCreateOrder_RepoFailureSurfaces(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.products.On("GetByID", ctx, "prod-1").Return(testProduct("prod-1", 1000), nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Return(apperrors.InvalidInput("order id already exists"))

	_, err := svc.CreateOrder(ctx, CreateOrderInput{
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
		Items:             []OrderLineInput{{ProductID: "prod-1", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
	m.carts.AssertNotCalled(t, "Delete", ctx, "user-1")
}

// --- GetOrder ---

func TestGetOrder_OwnerAllowed(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	stored := &domain.Order{
		ID:                "order-1",
		UserID:            "user-1",
		Status:            domain.OrderStatusPending,
		ShippingAddressID: "addr-1",
		Items:             []domain.OrderLine{{ProductID: "prod-1", Quantity: 1, UnitPrice: 1000}},
		TotalAmount:       1000,
	}
	m.orders.On("GetByID", ctx, "order-1").Return(stored, nil)
	m.products.On("GetByID", ctx, "prod-1").Return(testProduct("prod-1", 1000), nil)
	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.users.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)

	order, err := svc.GetOrder(ctx, "order-1", "user-1", domain.RoleCustomer)
	require.NoError(t, err)
	assert.NotNil(t, order.ShippingAddress)
	assert.NotNil(t, order.Items[0].Product)
}

func TestGetOrder_NonOwnerForbidden(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.orders.On("GetByID", ctx, "order-1").Return(&domain.Order{
		ID:     "order-1",
		UserID: "user-1",
	}, nil)

	_, err := svc.GetOrder(ctx, "order-1", "intruder", domain.RoleCustomer)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.HTTPStatus(err))
}

func TestGetOrder_AdminAllowed(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.orders.On("GetByID", ctx, "order-1").Return(&domain.Order{
		ID:                "order-1",
		UserID:            "user-1",
		ShippingAddressID: "addr-1",
	}, nil)
	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.users.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)

	_, err := svc.GetOrder(ctx, "order-1", "admin-9", domain.RoleAdmin)
	require.NoError(t, err)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.orders.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("order", "missing"))

	_, err := svc.GetOrder(ctx, "missing", "user-1", domain.RoleCustomer)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
}

// --- UpdateStatus ---

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, _ := newTestOrderService()

	for _, status := range []string{"confirmed", "canceled", "PENDING", ""} {
		_, err := svc.UpdateStatus(context.Background(), "order-1", UpdateStatusInput{Status: status})
		require.Error(t, err, status)
		assert.Equal(t, 400, apperrors.HTTPStatus(err))
	}
}

func TestUpdateStatus_InvalidPaymentStatus(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.UpdateStatus(context.Background(), "order-1", UpdateStatusInput{
		Status:        domain.OrderStatusShipped,
		PaymentStatus: strPtr("settled"),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	// No transition graph: delivered back to pending is accepted.
	m.orders.On("GetByID", ctx, "order-1").Return(&domain.Order{
		ID:                "order-1",
		UserID:            "user-1",
		Status:            domain.OrderStatusDelivered,
		ShippingAddressID: "addr-1",
	}, nil)
	m.orders.On("UpdateStatus", ctx, "order-1", domain.OrderStatusPending, (*string)(nil)).Return(nil)
	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)
	m.users.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)

	order, err := svc.UpdateStatus(ctx, "order-1", UpdateStatusInput{Status: domain.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.orders.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("order", "missing"))

	_, err := svc.UpdateStatus(ctx, "missing", UpdateStatusInput{Status: domain.OrderStatusShipped})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
}

// --- ListOrders ---

func TestListOrders_ExpandsProductsAndAddress(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.orders.On("ListByUserID", ctx, "user-1").Return([]domain.Order{
		{
			ID:                "order-1",
			UserID:            "user-1",
			ShippingAddressID: "addr-1",
			Items:             []domain.OrderLine{{ProductID: "prod-1", Quantity: 1, UnitPrice: 1000}},
		},
	}, nil)
	m.products.On("GetByID", ctx, "prod-1").Return(testProduct("prod-1", 1000), nil)
	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)

	orders, err := svc.ListOrders(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.NotNil(t, orders[0].Items[0].Product)
	assert.NotNil(t, orders[0].ShippingAddress)
	// The user view is not expanded in lists.
	assert.Nil(t, orders[0].User)
	m.users.AssertNotCalled(t, "GetByID", ctx, "user-1")
}

func TestListOrders_SkipsDeletedProductExpansion(t *testing.T) {
	svc, m := newTestOrderService()
	ctx := context.Background()

	m.orders.On("ListByUserID", ctx, "user-1").Return([]domain.Order{
		{
			ID:                "order-1",
			UserID:            "user-1",
			ShippingAddressID: "addr-1",
			Items:             []domain.OrderLine{{ProductID: "gone", Quantity: 1, UnitPrice: 1000}},
		},
	}, nil)
	m.products.On("GetByID", ctx, "gone").Return(nil, apperrors.NotFound("product", "gone"))
	m.addresses.On("GetByID", ctx, "addr-1").Return(testAddress("user-1"), nil)

	orders, err := svc.ListOrders(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	// The stored line survives with its captured price even though the
	// product is gone from the catalog.
	assert.Nil(t, orders[0].Items[0].Product)
	assert.Equal(t, int64(1000), orders[0].Items[0].UnitPrice)
}
