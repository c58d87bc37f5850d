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

// CollectionRepository implements repository.CollectionRepository using
// PostgreSQL. The image sequence is stored as a JSONB array; records written
// by older versions of the system may still hold legacy encodings, which are
// normalized on read.
type CollectionRepository struct {
	pool database.DBTX
}

// NewCollectionRepository creates a new PostgreSQL-backed collection repository.
func NewCollectionRepository(pool database.DBTX) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

// Create inserts a new collection into the database.
func (r *CollectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	imagesJSON, err := json.Marshal(c.Images)
	if err != nil {
		return fmt.Errorf("marshal collection images: %w", err)
	}

	query := `
		INSERT INTO collections (id, title, position, images, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		c.ID,
		c.Title,
		c.Position,
		imagesJSON,
		c.SortOrder,
		c.IsActive,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}

	return nil
}

// GetByID retrieves a collection by its ID.
func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	query := `
		SELECT id, title, position, images, sort_order, is_active, created_at, updated_at
		FROM collections
		WHERE id = $1`

	var (
		c         domain.Collection
		imagesRaw []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Title,
		&c.Position,
		&imagesRaw,
		&c.SortOrder,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("collection", id)
		}
		return nil, fmt.Errorf("scan collection: %w", err)
	}

	if c.Images, err = domain.NormalizeImages(imagesRaw); err != nil {
		return nil, fmt.Errorf("normalize collection images: %w", err)
	}

	return &c, nil
}

// ListByPosition returns active collections for a storefront position,
// ordered by sort order.
func (r *CollectionRepository) ListByPosition(ctx context.Context, position string) ([]domain.Collection, error) {
	query := `
		SELECT id, title, position, images, sort_order, is_active, created_at, updated_at
		FROM collections
		WHERE position = $1 AND is_active = true
		ORDER BY sort_order, created_at`

	rows, err := r.pool.Query(ctx, query, position)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]domain.Collection, 0)
	for rows.Next() {
		var (
			c         domain.Collection
			imagesRaw []byte
		)
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Position,
			&imagesRaw,
			&c.SortOrder,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan collection row: %w", err)
		}
		if c.Images, err = domain.NormalizeImages(imagesRaw); err != nil {
			return nil, fmt.Errorf("normalize collection images: %w", err)
		}
		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection rows: %w", err)
	}

	return collections, nil
}

// Update modifies an existing collection, rewriting its image sequence.
func (r *CollectionRepository) Update(ctx context.Context, c *domain.Collection) error {
	c.UpdatedAt = time.Now().UTC()

	imagesJSON, err := json.Marshal(c.Images)
	if err != nil {
		return fmt.Errorf("marshal collection images: %w", err)
	}

	query := `
		UPDATE collections
		SET title = $1, position = $2, images = $3, sort_order = $4, is_active = $5, updated_at = $6
		WHERE id = $7`

	ct, err := r.pool.Exec(ctx, query,
		c.Title,
		c.Position,
		imagesJSON,
		c.SortOrder,
		c.IsActive,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("collection", c.ID)
	}

	return nil
}

// Delete removes a collection from the database by its ID.
func (r *CollectionRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("collection", id)
	}

	return nil
}
