package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sanscolte/twitter/internal/auth"
	"github.com/sanscolte/twitter/internal/monitoring"
	"github.com/sanscolte/twitter/internal/repository"
	"github.com/sanscolte/twitter/internal/view"
)

func (h *Handler) GetUserMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondDetail(w, http.StatusNotFound, "User not found")
		return
	}

	profile, err := h.users.ProfileByAPIKey(r.Context(), user.APIKey)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.respondDetail(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("load own profile", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, view.User(profile))
}

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r)
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "User not found")
		return
	}

	profile, err := h.users.ProfileByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.respondDetail(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("load profile", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, view.User(profile))
}

func (h *Handler) FollowUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondDetail(w, http.StatusUnauthorized, "api-key required")
		return
	}

	targetID, err := idParam(r)
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "User you can subscribe not found")
		return
	}

	followed, err := h.follows.CreateFollow(r.Context(), user.ID, targetID)
	if err != nil {
		h.logger.Error("follow user", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !followed {
		h.respondDetail(w, http.StatusNotFound, "User you can subscribe not found")
		return
	}

	monitoring.FollowsTotal.Inc()
	h.respondJSON(w, http.StatusCreated, view.Result(true))
}

func (h *Handler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondDetail(w, http.StatusUnauthorized, "api-key required")
		return
	}

	targetID, err := idParam(r)
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "You were not subscribed to this user")
		return
	}

	unfollowed, err := h.follows.DeleteFollow(r.Context(), user.ID, targetID)
	if err != nil {
		h.logger.Error("unfollow user", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !unfollowed {
		h.respondDetail(w, http.StatusNotFound, "You were not subscribed to this user")
		return
	}

	h.respondJSON(w, http.StatusOK, view.Result(true))
}
