package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sanscolte/twitter/internal/auth"
	"github.com/sanscolte/twitter/internal/domain"
	"github.com/sanscolte/twitter/internal/monitoring"
	"github.com/sanscolte/twitter/internal/view"
)

func (h *Handler) CreateTweet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondDetail(w, http.StatusUnauthorized, "api-key required")
		return
	}

	var req domain.CreateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDetail(w, http.StatusBadRequest, "Tweet validation failed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondDetail(w, http.StatusBadRequest, "Tweet validation failed")
		return
	}

	tweet, err := h.tweets.CreateTweet(r.Context(), user.ID, req.TweetData, req.TweetMediaIDs)
	if err != nil {
		h.logger.Error("create tweet", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	monitoring.TweetsPosted.Inc()
	h.respondJSON(w, http.StatusCreated, view.TweetCreated(tweet))
}

// GetTweets returns the requester's feed. Anonymous requests are not
// rejected; they simply see no tweets.
func (h *Handler) GetTweets(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondJSON(w, http.StatusOK, view.Error("404", "There are no tweets yet"))
		return
	}

	feed, err := h.tweets.Feed(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("load feed", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(feed) == 0 {
		h.respondJSON(w, http.StatusOK, view.Error("404", "There are no tweets yet"))
		return
	}

	h.respondJSON(w, http.StatusOK, view.Tweets(feed))
}

func (h *Handler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondDetail(w, http.StatusUnauthorized, "api-key required")
		return
	}

	tweetID, err := idParam(r)
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "Tweet you can delete not found")
		return
	}

	deleted, err := h.tweets.DeleteTweet(r.Context(), tweetID, user.ID)
	if err != nil {
		h.logger.Error("delete tweet", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		// not-owner and not-found are the same signal
		h.respondDetail(w, http.StatusNotFound, "Tweet you can delete not found")
		return
	}

	monitoring.TweetsDeleted.Inc()
	h.respondJSON(w, http.StatusOK, view.Result(true))
}

func (h *Handler) LikeTweet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondDetail(w, http.StatusUnauthorized, "api-key required")
		return
	}

	tweetID, err := idParam(r)
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "Tweet you can like not found")
		return
	}

	liked, err := h.likes.CreateLike(r.Context(), user.ID, tweetID)
	if err != nil {
		h.logger.Error("like tweet", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !liked {
		h.respondDetail(w, http.StatusNotFound, "Tweet you can like not found")
		return
	}

	monitoring.LikesTotal.Inc()
	h.respondJSON(w, http.StatusCreated, view.Result(true))
}

func (h *Handler) UnlikeTweet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		h.respondDetail(w, http.StatusUnauthorized, "api-key required")
		return
	}

	tweetID, err := idParam(r)
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "Tweet's like not found")
		return
	}

	unliked, err := h.likes.DeleteLike(r.Context(), user.ID, tweetID)
	if err != nil {
		h.logger.Error("unlike tweet", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !unliked {
		h.respondDetail(w, http.StatusNotFound, "Tweet's like not found")
		return
	}

	h.respondJSON(w, http.StatusOK, view.Result(true))
}
