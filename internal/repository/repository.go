package repository

import (
	"context"

	"github.com/abhishek8094/storefront/internal/domain"
)

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order and its lines into the store atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its external identifier, including lines.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByUserID returns the user's orders newest first, including lines.
	ListByUserID(ctx context.Context, userID string) ([]domain.Order, error)

	// UpdateStatus changes the order status and optionally the payment status.
	UpdateStatus(ctx context.Context, id string, status string, paymentStatus *string) error
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// AccessoryRepository defines the interface for accessory persistence operations.
type AccessoryRepository interface {
	// Create inserts a new accessory into the store.
	Create(ctx context.Context, accessory *domain.Accessory) error

	// GetByID retrieves an accessory by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Accessory, error)

	// List returns all accessories, newest first.
	List(ctx context.Context) ([]domain.Accessory, error)

	// Update modifies an existing accessory in the store.
	Update(ctx context.Context, accessory *domain.Accessory) error

	// Delete removes an accessory from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category into the store.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// GetBySlug retrieves a category by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// List returns all categories ordered by name.
	List(ctx context.Context) ([]domain.Category, error)

	// Update modifies an existing category in the store.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// CollectionRepository defines the interface for image collection persistence.
type CollectionRepository interface {
	// Create inserts a new collection into the store.
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByID retrieves a collection by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Collection, error)

	// ListByPosition returns active collections for the given storefront
	// position, ordered by sort order.
	ListByPosition(ctx context.Context, position string) ([]domain.Collection, error)

	// Update modifies an existing collection, including its image sequence.
	Update(ctx context.Context, collection *domain.Collection) error

	// Delete removes a collection from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error
}

// AddressRepository defines the interface for address persistence operations.
type AddressRepository interface {
	// Create inserts a new address, clearing the user's previous default in
	// the same transaction when the new address is marked default.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves an address by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Address, error)

	// ListByUserID returns all addresses for the given user, default first.
	ListByUserID(ctx context.Context, userID string) ([]domain.Address, error)

	// Update modifies an existing address in the store.
	Update(ctx context.Context, address *domain.Address) error

	// Delete removes an address. If the deleted address was the user's
	// default and others remain, one of them is promoted to default within
	// the same transaction.
	Delete(ctx context.Context, userID, id string) error

	// SetDefault marks the specified address as the default for the user,
	// unsetting the user's previous default in the same transaction.
	SetDefault(ctx context.Context, userID, addressID string) error
}

// ContactRepository defines the interface for contact message persistence.
type ContactRepository interface {
	// Create inserts a new contact message into the store.
	Create(ctx context.Context, contact *domain.Contact) error

	// List returns a page of contact messages, newest first, together with
	// the total count.
	List(ctx context.Context, limit, offset int) ([]domain.Contact, int, error)

	// Delete removes a contact message from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves the cart for the given user.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists the cart, refreshing its TTL.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for the given user.
	Delete(ctx context.Context, userID string) error
}
