package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abhishek8094/storefront/internal/domain"
	apperrors "github.com/abhishek8094/storefront/pkg/errors"
	"github.com/abhishek8094/storefront/pkg/database"
)

// AccessoryRepository implements repository.AccessoryRepository using PostgreSQL.
type AccessoryRepository struct {
	pool database.DBTX
}

// NewAccessoryRepository creates a new PostgreSQL-backed accessory repository.
func NewAccessoryRepository(pool database.DBTX) *AccessoryRepository {
	return &AccessoryRepository{pool: pool}
}

// Create inserts a new accessory into the database.
func (r *AccessoryRepository) Create(ctx context.Context, a *domain.Accessory) error {
	imagesJSON, err := json.Marshal(a.Images)
	if err != nil {
		return fmt.Errorf("marshal accessory images: %w", err)
	}

	query := `
		INSERT INTO accessories (id, name, slug, description, price, category_id, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Slug,
		a.Description,
		a.Price,
		a.CategoryID,
		imagesJSON,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("accessory", "slug", a.Slug)
		}
		return fmt.Errorf("insert accessory: %w", err)
	}

	return nil
}

// GetByID retrieves an accessory by its ID.
func (r *AccessoryRepository) GetByID(ctx context.Context, id string) (*domain.Accessory, error) {
	query := `
		SELECT id, name, slug, description, price, category_id, images, created_at, updated_at
		FROM accessories
		WHERE id = $1`

	var (
		a         domain.Accessory
		imagesRaw []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Slug,
		&a.Description,
		&a.Price,
		&a.CategoryID,
		&imagesRaw,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("accessory", id)
		}
		return nil, fmt.Errorf("scan accessory: %w", err)
	}

	if a.Images, err = domain.NormalizeImages(imagesRaw); err != nil {
		return nil, fmt.Errorf("normalize accessory images: %w", err)
	}

	return &a, nil
}

// List returns all accessories, newest first.
func (r *AccessoryRepository) List(ctx context.Context) ([]domain.Accessory, error) {
	query := `
		SELECT id, name, slug, description, price, category_id, images, created_at, updated_at
		FROM accessories
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}
	defer rows.Close()

	accessories := make([]domain.Accessory, 0)
	for rows.Next() {
		var (
			a         domain.Accessory
			imagesRaw []byte
		)
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Slug,
			&a.Description,
			&a.Price,
			&a.CategoryID,
			&imagesRaw,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan accessory row: %w", err)
		}
		if a.Images, err = domain.NormalizeImages(imagesRaw); err != nil {
			return nil, fmt.Errorf("normalize accessory images: %w", err)
		}
		accessories = append(accessories, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accessory rows: %w", err)
	}

	return accessories, nil
}

// Update modifies an existing accessory in the database.
func (r *AccessoryRepository) Update(ctx context.Context, a *domain.Accessory) error {
	a.UpdatedAt = time.Now().UTC()

	imagesJSON, err := json.Marshal(a.Images)
	if err != nil {
		return fmt.Errorf("marshal accessory images: %w", err)
	}

	query := `
		UPDATE accessories
		SET name = $1, slug = $2, description = $3, price = $4, category_id = $5, images = $6, updated_at = $7
		WHERE id = $8`

	ct, err := r.pool.Exec(ctx, query,
		a.Name,
		a.Slug,
		a.Description,
		a.Price,
		a.CategoryID,
		imagesJSON,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("accessory", "slug", a.Slug)
		}
		return fmt.Errorf("update accessory: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("accessory", a.ID)
	}

	return nil
}

// Delete removes an accessory from the database by its ID.
func (r *AccessoryRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM accessories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete accessory: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("accessory", id)
	}

	return nil
}
