package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanscolte/twitter/internal/domain"
)

type UserRepository struct {
	conn *pgxpool.Pool
}

func NewUserRepository(conn *pgxpool.Pool) *UserRepository {
	return &UserRepository{conn: conn}
}

// UserByAPIKey resolves the opaque credential to its owner. Pure lookup.
func (r *UserRepository) UserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	var user domain.User
	err := r.conn.QueryRow(ctx,
		`SELECT id, api_key, name FROM "user" WHERE api_key = $1`,
		apiKey,
	).Scan(&user.ID, &user.APIKey, &user.Name)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) userByID(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	err := r.conn.QueryRow(ctx,
		`SELECT id, api_key, name FROM "user" WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.APIKey, &user.Name)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	return &user, nil
}

// ProfileByAPIKey loads the user plus both sides of the follow graph. One
// query per shape: the user row, its followers, its followees.
func (r *UserRepository) ProfileByAPIKey(ctx context.Context, apiKey string) (*domain.Profile, error) {
	user, err := r.UserByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return r.loadProfile(ctx, user)
}

func (r *UserRepository) ProfileByID(ctx context.Context, userID int64) (*domain.Profile, error) {
	user, err := r.userByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.loadProfile(ctx, user)
}

func (r *UserRepository) loadProfile(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	followers, err := r.followEdge(ctx,
		`SELECT u.id, u.api_key, u.name
		 FROM "user" u
		 INNER JOIN follower f ON u.id = f.follower_id
		 WHERE f.following_id = $1
		 ORDER BY u.id`,
		user.ID,
	)
	if err != nil {
		return nil, err
	}

	following, err := r.followEdge(ctx,
		`SELECT u.id, u.api_key, u.name
		 FROM "user" u
		 INNER JOIN follower f ON u.id = f.following_id
		 WHERE f.follower_id = $1
		 ORDER BY u.id`,
		user.ID,
	)
	if err != nil {
		return nil, err
	}

	return &domain.Profile{User: *user, Followers: followers, Following: following}, nil
}

func (r *UserRepository) followEdge(ctx context.Context, query string, userID int64) ([]domain.User, error) {
	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.APIKey, &user.Name); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
