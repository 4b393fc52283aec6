package repository

import (
	"context"

	"github.com/sanscolte/twitter/internal/domain"
)

type UserStore interface {
	UserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)
	ProfileByAPIKey(ctx context.Context, apiKey string) (*domain.Profile, error)
	ProfileByID(ctx context.Context, userID int64) (*domain.Profile, error)
}

type TweetStore interface {
	CreateTweet(ctx context.Context, authorID int64, content string, mediaIDs []int64) (*domain.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, authorID int64) (bool, error)
	Feed(ctx context.Context, userID int64) ([]domain.TweetDetail, error)
}

type LikeStore interface {
	CreateLike(ctx context.Context, userID, tweetID int64) (bool, error)
	DeleteLike(ctx context.Context, userID, tweetID int64) (bool, error)
}

type FollowStore interface {
	CreateFollow(ctx context.Context, followerID, followingID int64) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID int64) (bool, error)
}

type MediaStore interface {
	CreateMedia(ctx context.Context, filename, contentType string, body []byte) (int64, error)
	MediaByID(ctx context.Context, mediaID int64) (*domain.Media, error)
}

// Store is the full surface the HTTP layer is wired against.
type Store interface {
	UserStore
	TweetStore
	LikeStore
	FollowStore
	MediaStore
}
