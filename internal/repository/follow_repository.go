package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FollowRepository struct {
	conn *pgxpool.Pool
}

func NewFollowRepository(conn *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{conn: conn}
}

// CreateFollow inserts the directional follower -> following edge. A missing
// target user or an existing edge trips a constraint and is reported as
// false. Self-follow is not prevented.
func (r *FollowRepository) CreateFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	_, err := r.conn.Exec(ctx,
		"INSERT INTO follower (follower_id, following_id) VALUES ($1, $2)",
		followerID, followingID,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *FollowRepository) DeleteFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	tag, err := r.conn.Exec(ctx,
		"DELETE FROM follower WHERE follower_id = $1 AND following_id = $2",
		followerID, followingID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
