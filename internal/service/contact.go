package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek8094/storefront/internal/domain"
	"github.com/abhishek8094/storefront/internal/repository"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
	"github.com/abhishek8094/storefront/pkg/pagination"
)

// ContactService implements the business logic for contact messages.
type ContactService struct {
	contacts repository.ContactRepository
	logger   *slog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(contacts repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{
		contacts: contacts,
		logger:   logger,
	}
}

// SubmitInput holds the parameters for a contact-form submission.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit stores a contact message.
func (s *ContactService) Submit(ctx context.Context, input SubmitInput) (*domain.Contact, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Message == "" {
		return nil, apperrors.InvalidInput("message is required")
	}

	contact := &domain.Contact{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.logger.InfoContext(ctx, "contact message received", slog.String("contact_id", contact.ID))

	return contact, nil
}

// List returns a page of contact messages, newest first, together with the
// total count.
func (s *ContactService) List(ctx context.Context, page pagination.Params) ([]domain.Contact, int, error) {
	contacts, total, err := s.contacts.List(ctx, page.PerPage, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, total, nil
}

// Delete removes a contact message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
