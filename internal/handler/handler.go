package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sanscolte/twitter/internal/domain"
	"github.com/sanscolte/twitter/internal/repository"
)

type Handler struct {
	users    repository.UserStore
	tweets   repository.TweetStore
	likes    repository.LikeStore
	follows  repository.FollowStore
	media    repository.MediaStore
	validate *validator.Validate
	logger   *zap.Logger
}

func New(store repository.Store, logger *zap.Logger) *Handler {
	return &Handler{
		users:    store,
		tweets:   store,
		likes:    store,
		follows:  store,
		media:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Routes wires the API surface. The api-key gate is applied by the caller,
// ahead of routing.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/medias", h.CreateMedia)
	r.Get("/medias/{id}", h.GetMedia)

	r.Post("/tweets", h.CreateTweet)
	r.Get("/tweets", h.GetTweets)
	r.Delete("/tweets/{id}", h.DeleteTweet)
	r.Post("/tweets/{id}/likes", h.LikeTweet)
	r.Delete("/tweets/{id}/likes", h.UnlikeTweet)

	r.Get("/users/me", h.GetUserMe)
	r.Get("/users/{id}", h.GetUserByID)
	r.Post("/users/{id}/follow", h.FollowUser)
	r.Delete("/users/{id}/follow", h.UnfollowUser)

	return r
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) respondDetail(w http.ResponseWriter, status int, detail string) {
	h.respondJSON(w, status, domain.DetailResponse{Detail: detail})
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
