package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek8094/storefront/internal/domain"
	"github.com/abhishek8094/storefront/internal/repository"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
)

// CollectionService implements the business logic for the carousel,
// trending, and explore image collections.
type CollectionService struct {
	collections repository.CollectionRepository
	media       *MediaResolver
	logger      *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(collections repository.CollectionRepository, media *MediaResolver, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		collections: collections,
		media:       media,
		logger:      logger,
	}
}

// CreateCollectionInput holds the parameters for creating a collection.
type CreateCollectionInput struct {
	Title     string
	Position  string
	ImageURLs []string
	SortOrder int
	IsActive  *bool
}

// UpdateCollectionInput holds the parameters for updating a collection.
type UpdateCollectionInput struct {
	Title     *string
	Position  *string
	ImageURLs []string
	SortOrder *int
	IsActive  *bool
}

// CreateCollection creates a collection at a storefront position.
func (s *CollectionService) CreateCollection(ctx context.Context, input CreateCollectionInput) (*domain.Collection, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("collection title is required")
	}
	if !domain.IsValidCollectionPosition(input.Position) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid position %q, must be one of: %s",
			input.Position, strings.Join(domain.ValidCollectionPositions(), ", ")))
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	collection := &domain.Collection{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Position:  input.Position,
		Images:    newImageSequence(input.ImageURLs),
		SortOrder: input.SortOrder,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.logger.InfoContext(ctx, "collection created",
		slog.String("collection_id", collection.ID),
		slog.String("position", collection.Position),
	)

	s.media.ResolveImages(collection.Images)
	return collection, nil
}

// GetCollection retrieves a collection by its ID.
func (s *CollectionService) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	collection, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection by id: %w", err)
	}
	s.media.ResolveImages(collection.Images)
	return collection, nil
}

// ListByPosition returns active collections for a storefront position.
func (s *CollectionService) ListByPosition(ctx context.Context, position string) ([]domain.Collection, error) {
	if !domain.IsValidCollectionPosition(position) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid position %q, must be one of: %s",
			position, strings.Join(domain.ValidCollectionPositions(), ", ")))
	}

	collections, err := s.collections.ListByPosition(ctx, position)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	for i := range collections {
		s.media.ResolveImages(collections[i].Images)
	}
	return collections, nil
}

// UpdateCollection applies a partial update to a collection. Replacing
// ImageURLs rewrites the whole sequence.
func (s *CollectionService) UpdateCollection(ctx context.Context, id string, input UpdateCollectionInput) (*domain.Collection, error) {
	collection, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("collection title must not be empty")
		}
		collection.Title = *input.Title
	}
	if input.Position != nil {
		if !domain.IsValidCollectionPosition(*input.Position) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid position %q, must be one of: %s",
				*input.Position, strings.Join(domain.ValidCollectionPositions(), ", ")))
		}
		collection.Position = *input.Position
	}
	if input.ImageURLs != nil {
		collection.Images = newImageSequence(input.ImageURLs)
	}
	if input.SortOrder != nil {
		collection.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		collection.IsActive = *input.IsActive
	}

	if err := s.collections.Update(ctx, collection); err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}

	s.media.ResolveImages(collection.Images)
	return collection, nil
}

// DeleteCollection removes a collection.
func (s *CollectionService) DeleteCollection(ctx context.Context, id string) error {
	if err := s.collections.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

// DeleteImage removes one image from a collection's sequence by its id.
func (s *CollectionService) DeleteImage(ctx context.Context, collectionID, imageID string) (*domain.Collection, error) {
	collection, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("get collection for image delete: %w", err)
	}

	if !collection.RemoveImage(imageID) {
		return nil, apperrors.NotFound("image", imageID)
	}

	if err := s.collections.Update(ctx, collection); err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}

	s.logger.InfoContext(ctx, "collection image deleted",
		slog.String("collection_id", collectionID),
		slog.String("image_id", imageID),
	)

	s.media.ResolveImages(collection.Images)
	return collection, nil
}
