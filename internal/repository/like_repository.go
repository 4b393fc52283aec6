package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepository struct {
	conn *pgxpool.Pool
}

func NewLikeRepository(conn *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{conn: conn}
}

// CreateLike inserts the (user, tweet) like edge. A duplicate pair or a
// missing tweet trips a constraint and is reported as false, not an error.
func (r *LikeRepository) CreateLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	_, err := r.conn.Exec(ctx,
		"INSERT INTO tweet_like (user_id, tweet_id) VALUES ($1, $2)",
		userID, tweetID,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *LikeRepository) DeleteLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	tag, err := r.conn.Exec(ctx,
		"DELETE FROM tweet_like WHERE user_id = $1 AND tweet_id = $2",
		userID, tweetID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
