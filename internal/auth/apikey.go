package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sanscolte/twitter/internal/domain"
	"github.com/sanscolte/twitter/internal/repository"
)

const HeaderAPIKey = "api-key"

type contextKey string

const userKey contextKey = "authUser"

// Gate resolves the api-key header to a user before routing. A missing
// header passes through unauthenticated; a header that resolves to no user
// is rejected with 401 before any handler runs.
func Gate(users repository.UserStore, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(HeaderAPIKey)
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.UserByAPIKey(r.Context(), apiKey)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					reject(w, http.StatusUnauthorized, "Invalid API Key")
					return
				}
				logger.Error("resolve api key", zap.Error(err))
				reject(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the identity bound by Gate, if any.
func UserFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func reject(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.DetailResponse{Detail: detail})
}
