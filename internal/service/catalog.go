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
	"github.com/abhishek8094/storefront/pkg/slug"
)

// CatalogService implements the business logic for products, accessories,
// and categories.
type CatalogService struct {
	products    repository.ProductRepository
	accessories repository.AccessoryRepository
	categories  repository.CategoryRepository
	media       *MediaResolver
	logger      *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	accessories repository.AccessoryRepository,
	categories repository.CategoryRepository,
	media *MediaResolver,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products:    products,
		accessories: accessories,
		categories:  categories,
		media:       media,
		logger:      logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	CategoryID  *string
	Size        string
	ImageURLs   []string
}

// UpdateProductInput holds the parameters for updating a product. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	CategoryID  *string
	Size        *string
	ImageURLs   []string
}

// CreateProduct creates a catalog product. Image URLs become an ordered
// sequence of independently addressable images.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("product price must not be negative")
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Size:        input.Size,
		Images:      newImageSequence(input.ImageURLs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	s.media.ResolveImages(product.Images)
	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	s.media.ResolveImages(product.Images)
	return product, nil
}

// ListProducts returns all products, newest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	for i := range products {
		s.media.ResolveImages(products[i].Images)
	}
	return products, nil
}

// UpdateProduct applies a partial update to a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("product name must not be empty")
		}
		product.Name = *input.Name
		product.Slug = slug.Generate(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("product price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		product.CategoryID = input.CategoryID
	}
	if input.Size != nil {
		product.Size = *input.Size
	}
	if input.ImageURLs != nil {
		product.Images = newImageSequence(input.ImageURLs)
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.media.ResolveImages(product.Images)
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// CreateAccessoryInput holds the parameters for creating an accessory.
type CreateAccessoryInput struct {
	Name        string
	Description string
	Price       int64
	CategoryID  *string
	ImageURLs   []string
}

// UpdateAccessoryInput holds the parameters for updating an accessory.
type UpdateAccessoryInput struct {
	Name        *string
	Description *string
	Price       *int64
	CategoryID  *string
	ImageURLs   []string
}

// CreateAccessory creates a catalog accessory.
func (s *CatalogService) CreateAccessory(ctx context.Context, input CreateAccessoryInput) (*domain.Accessory, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("accessory name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("accessory price must not be negative")
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
	}

	now := time.Now().UTC()
	accessory := &domain.Accessory{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Images:      newImageSequence(input.ImageURLs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.accessories.Create(ctx, accessory); err != nil {
		return nil, fmt.Errorf("create accessory: %w", err)
	}

	s.media.ResolveImages(accessory.Images)
	return accessory, nil
}

// GetAccessory retrieves an accessory by its ID.
func (s *CatalogService) GetAccessory(ctx context.Context, id string) (*domain.Accessory, error) {
	accessory, err := s.accessories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get accessory by id: %w", err)
	}
	s.media.ResolveImages(accessory.Images)
	return accessory, nil
}

// ListAccessories returns all accessories, newest first.
func (s *CatalogService) ListAccessories(ctx context.Context) ([]domain.Accessory, error) {
	accessories, err := s.accessories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}
	for i := range accessories {
		s.media.ResolveImages(accessories[i].Images)
	}
	return accessories, nil
}

// UpdateAccessory applies a partial update to an accessory.
func (s *CatalogService) UpdateAccessory(ctx context.Context, id string, input UpdateAccessoryInput) (*domain.Accessory, error) {
	accessory, err := s.accessories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get accessory for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("accessory name must not be empty")
		}
		accessory.Name = *input.Name
		accessory.Slug = slug.Generate(*input.Name)
	}
	if input.Description != nil {
		accessory.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("accessory price must not be negative")
		}
		accessory.Price = *input.Price
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		accessory.CategoryID = input.CategoryID
	}
	if input.ImageURLs != nil {
		accessory.Images = newImageSequence(input.ImageURLs)
	}

	if err := s.accessories.Update(ctx, accessory); err != nil {
		return nil, fmt.Errorf("update accessory: %w", err)
	}

	s.media.ResolveImages(accessory.Images)
	return accessory, nil
}

// DeleteAccessory removes an accessory from the catalog.
func (s *CatalogService) DeleteAccessory(ctx context.Context, id string) error {
	if err := s.accessories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete accessory: %w", err)
	}
	return nil
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name        string
	Description string
	ImageURL    string
}

// UpdateCategoryInput holds the parameters for updating a category.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// CreateCategory creates a category with a URL-friendly slug derived from
// its name.
func (s *CatalogService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("category name is required")
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		ImageURL:    s.media.Resolve(input.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

// GetCategory retrieves a category by id or slug. The id column is a UUID,
// so anything that does not parse as one is looked up as a slug.
func (s *CatalogService) GetCategory(ctx context.Context, idOrSlug string) (*domain.Category, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		category, err := s.categories.GetByID(ctx, idOrSlug)
		if err != nil {
			return nil, fmt.Errorf("get category by id: %w", err)
		}
		return category, nil
	}

	category, err := s.categories.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies a partial update to a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("category name must not be empty")
		}
		category.Name = *input.Name
		category.Slug = slug.Generate(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = s.media.Resolve(*input.ImageURL)
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// newImageSequence converts raw URLs into an ordered image sequence with a
// fresh id per image.
func newImageSequence(urls []string) []domain.Image {
	images := make([]domain.Image, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		images = append(images, domain.Image{ID: uuid.New().String(), URL: u})
	}
	return images
}
