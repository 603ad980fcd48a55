package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pagination"
)

const imageColumns = `id, uid, format, media_type, size, width, height, created_at`

type ImageRepo struct {
	pool *pgxpool.Pool
}

func NewImageRepo(pool *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{pool: pool}
}

func (r *ImageRepo) Create(ctx context.Context, image *entity.Image) error {
	query := `
		INSERT INTO images (id, uid, format, media_type, size, width, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		image.ID, image.UID, image.Format, image.MediaType,
		image.Size, image.Width, image.Height, image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting image: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetByID(ctx context.Context, id string) (*entity.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`

	image, err := scanImage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("querying image: %w", err)
	}
	return image, nil
}

func (r *ImageRepo) List(ctx context.Context, params pagination.Params) ([]entity.Image, *pagination.Info, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM images`).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("counting images: %w", err)
	}

	query := `
		SELECT ` + imageColumns + `
		FROM images
		ORDER BY created_at DESC, id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, nil, fmt.Errorf("querying images: %w", err)
	}
	defer rows.Close()

	images := make([]entity.Image, 0, params.Limit())
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, *image)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating images: %w", err)
	}

	return images, pagination.NewInfo(params.Page, params.PerPage, total), nil
}

func (r *ImageRepo) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (*entity.Image, error) {
	var image entity.Image
	if err := row.Scan(
		&image.ID, &image.UID, &image.Format, &image.MediaType,
		&image.Size, &image.Width, &image.Height, &image.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &image, nil
}
