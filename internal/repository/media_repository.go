package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanscolte/twitter/internal/domain"
)

type MediaRepository struct {
	conn *pgxpool.Pool
}

func NewMediaRepository(conn *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{conn: conn}
}

// CreateMedia stores the file body and metadata. The stored filename gets a
// uuid prefix so repeated uploads of the same client filename stay distinct.
func (r *MediaRepository) CreateMedia(ctx context.Context, filename, contentType string, body []byte) (int64, error) {
	storedName := uuid.NewString() + "_" + filename

	var id int64
	err := r.conn.QueryRow(ctx,
		"INSERT INTO media (filename, content_type, body) VALUES ($1, $2, $3) RETURNING id",
		storedName, contentType, body,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *MediaRepository) MediaByID(ctx context.Context, mediaID int64) (*domain.Media, error) {
	var media domain.Media
	err := r.conn.QueryRow(ctx,
		"SELECT id, filename, content_type, body, tweet_id FROM media WHERE id = $1",
		mediaID,
	).Scan(&media.ID, &media.Filename, &media.ContentType, &media.Body, &media.TweetID)
	if err == pgx.ErrNoRows {
		return nil, ErrMediaNotFound
	} else if err != nil {
		return nil, err
	}

	return &media, nil
}
