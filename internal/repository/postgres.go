package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres bundles the per-entity repositories into one Store.
type Postgres struct {
	*UserRepository
	*TweetRepository
	*LikeRepository
	*FollowRepository
	*MediaRepository
}

var _ Store = (*Postgres)(nil)

func NewPostgres(conn *pgxpool.Pool) *Postgres {
	return &Postgres{
		UserRepository:   NewUserRepository(conn),
		TweetRepository:  NewTweetRepository(conn),
		LikeRepository:   NewLikeRepository(conn),
		FollowRepository: NewFollowRepository(conn),
		MediaRepository:  NewMediaRepository(conn),
	}
}
