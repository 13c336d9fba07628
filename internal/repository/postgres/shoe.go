package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/thalha-dev/vouge-vista/internal/domain"
	"github.com/thalha-dev/vouge-vista/pkg/database"
	apperrors "github.com/thalha-dev/vouge-vista/pkg/errors"
)

// ShoeRepository implements repository.ShoeRepository using PostgreSQL.
// The image set is stored as a JSONB column; it is always written wholesale,
// matching the replace-not-merge image policy.
type ShoeRepository struct {
	pool database.DBTX
}

// NewShoeRepository creates a new PostgreSQL-backed shoe repository.
func NewShoeRepository(pool database.DBTX) *ShoeRepository {
	return &ShoeRepository{pool: pool}
}

const shoeColumns = `id, name, brand, price, size, color, available_count, rating, images, created_at, updated_at`

// Create inserts a new shoe into the database.
func (r *ShoeRepository) Create(ctx context.Context, s *domain.Shoe) error {
	imagesJSON, err := json.Marshal(s.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	query := `
		INSERT INTO shoes (id, name, brand, price, size, color, available_count, rating, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Brand,
		s.Price,
		s.Size,
		s.Color,
		s.AvailableCount,
		s.Rating,
		imagesJSON,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shoe: %w", err)
	}

	return nil
}

// GetByID retrieves a shoe by its ID.
func (r *ShoeRepository) GetByID(ctx context.Context, id string) (*domain.Shoe, error) {
	query := `SELECT ` + shoeColumns + ` FROM shoes WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	s, err := scanShoe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("shoe", id)
		}
		return nil, fmt.Errorf("get shoe by id: %w", err)
	}

	return s, nil
}

// List returns every shoe, newest first. An empty catalog yields an empty
// slice, not an error.
func (r *ShoeRepository) List(ctx context.Context) ([]domain.Shoe, error) {
	query := `SELECT ` + shoeColumns + ` FROM shoes ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	defer rows.Close()

	shoes := []domain.Shoe{}
	for rows.Next() {
		s, err := scanShoe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shoe row: %w", err)
		}
		shoes = append(shoes, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shoe rows: %w", err)
	}

	return shoes, nil
}

// Update replaces the stored record for an existing shoe.
func (r *ShoeRepository) Update(ctx context.Context, s *domain.Shoe) error {
	imagesJSON, err := json.Marshal(s.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	query := `
		UPDATE shoes
		SET name = $2, brand = $3, price = $4, size = $5, color = $6,
			available_count = $7, rating = $8, images = $9, updated_at = $10
		WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Brand,
		s.Price,
		s.Size,
		s.Color,
		s.AvailableCount,
		s.Rating,
		imagesJSON,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shoe: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("shoe", s.ID)
	}

	return nil
}

// Delete removes a shoe and returns the deleted record. The row is gone
// before any external asset cleanup begins.
func (r *ShoeRepository) Delete(ctx context.Context, id string) (*domain.Shoe, error) {
	query := `DELETE FROM shoes WHERE id = $1 RETURNING ` + shoeColumns

	row := r.pool.QueryRow(ctx, query, id)
	s, err := scanShoe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("shoe", id)
		}
		return nil, fmt.Errorf("delete shoe: %w", err)
	}

	return s, nil
}

// scanShoe reads one shoe from a row, decoding the JSONB image set.
func scanShoe(row pgx.Row) (*domain.Shoe, error) {
	var (
		s          domain.Shoe
		imagesJSON []byte
	)

	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Brand,
		&s.Price,
		&s.Size,
		&s.Color,
		&s.AvailableCount,
		&s.Rating,
		&imagesJSON,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if imagesJSON != nil {
		if err := json.Unmarshal(imagesJSON, &s.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}
	if s.Images == nil {
		s.Images = []domain.ImageRef{}
	}

	return &s, nil
}
