package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhishek8094/storefront/internal/auth"
	"github.com/abhishek8094/storefront/internal/domain"
	"github.com/abhishek8094/storefront/internal/event"
	"github.com/abhishek8094/storefront/internal/repository"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// AccountService implements the business logic for accounts, authentication,
// and the user's address book.
type AccountService struct {
	users      repository.UserRepository
	addresses  repository.AddressRepository
	jwtManager *auth.JWTManager
	producer   *event.Producer
	logger     *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	users repository.UserRepository,
	addresses repository.AddressRepository,
	jwtManager *auth.JWTManager,
	producer *event.Producer,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:      users,
		addresses:  addresses,
		jwtManager: jwtManager,
		producer:   producer,
		logger:     logger,
	}
}

// RegisterInput holds the parameters for registering a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// LoginInput holds the parameters for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Register creates a new account with a bcrypt password hash and returns
// the user together with a signed access token.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, "", apperrors.InvalidInput("email is required")
	}
	if input.FirstName == "" {
		return nil, "", apperrors.InvalidInput("first name is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         domain.RoleCustomer,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed access
// token. Unknown email and wrong password report identically.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, "", apperrors.InvalidInput("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.HTTPStatus(err) == 404 {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if !user.IsActive {
		return nil, "", apperrors.Unauthorized("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return user, token, nil
}

// GetProfile returns the account for the given user id.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// CreateAddressInput holds the parameters for creating a new address.
type CreateAddressInput struct {
	FirstName    string
	LastName     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	CountryCode  string
	Phone        string
	IsDefault    bool
}

// UpdateAddressInput holds the parameters for updating an address. Nil
// fields are left unchanged.
type UpdateAddressInput struct {
	FirstName    *string
	LastName     *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	CountryCode  *string
	Phone        *string
}

// CreateAddress adds an address to the user's address book. The first
// address a user creates becomes their default automatically.
func (s *AccountService) CreateAddress(ctx context.Context, userID string, input CreateAddressInput) (*domain.Address, error) {
	if input.FirstName == "" || input.AddressLine1 == "" || input.City == "" || input.PostalCode == "" || input.CountryCode == "" {
		return nil, apperrors.InvalidInput("first name, address line, city, postal code, and country are required")
	}

	existing, err := s.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	address := &domain.Address{
		ID:           uuid.New().String(),
		UserID:       userID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		CountryCode:  strings.ToUpper(input.CountryCode),
		Phone:        input.Phone,
		IsDefault:    input.IsDefault || len(existing) == 0,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	return address, nil
}

// ListAddresses returns the user's address book, default first.
func (s *AccountService) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	addresses, err := s.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// UpdateAddress applies a partial update to one of the user's addresses.
func (s *AccountService) UpdateAddress(ctx context.Context, userID, addressID string, input UpdateAddressInput) (*domain.Address, error) {
	address, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("get address for update: %w", err)
	}
	if address.UserID != userID {
		return nil, apperrors.NotFound("address", addressID)
	}

	if input.FirstName != nil {
		address.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		address.LastName = *input.LastName
	}
	if input.AddressLine1 != nil {
		address.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		address.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.State != nil {
		address.State = *input.State
	}
	if input.PostalCode != nil {
		address.PostalCode = *input.PostalCode
	}
	if input.CountryCode != nil {
		address.CountryCode = strings.ToUpper(*input.CountryCode)
	}
	if input.Phone != nil {
		address.Phone = *input.Phone
	}

	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	return address, nil
}

// DeleteAddress removes one of the user's addresses. Deleting the default
// promotes a remaining address to default.
func (s *AccountService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if err := s.addresses.Delete(ctx, userID, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

// SetDefaultAddress marks one of the user's addresses as the default,
// clearing the previous default atomically.
func (s *AccountService) SetDefaultAddress(ctx context.Context, userID, addressID string) error {
	if err := s.addresses.SetDefault(ctx, userID, addressID); err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	return nil
}
