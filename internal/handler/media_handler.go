package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/sanscolte/twitter/internal/auth"
	"github.com/sanscolte/twitter/internal/repository"
	"github.com/sanscolte/twitter/internal/view"
)

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// CreateMedia accepts a multipart upload and stores the file body. The
// content-type allow-list is checked at this boundary.
func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFrom(r.Context()); !ok {
		h.respondDetail(w, http.StatusUnauthorized, "api-key required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondDetail(w, http.StatusBadRequest, "Media validation failed")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMediaTypes[contentType] {
		h.respondDetail(w, http.StatusBadRequest, "Media validation failed")
		return
	}

	body, err := io.ReadAll(file)
	if err != nil {
		h.respondDetail(w, http.StatusBadRequest, "Media validation failed")
		return
	}

	mediaID, err := h.media.CreateMedia(r.Context(), header.Filename, contentType, body)
	if err != nil {
		h.logger.Error("create media", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondJSON(w, http.StatusCreated, view.MediaCreated(mediaID))
}

func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, err := idParam(r)
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "Media not found")
		return
	}

	media, err := h.media.MediaByID(r.Context(), mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			h.respondDetail(w, http.StatusNotFound, "Media not found")
			return
		}
		h.logger.Error("get media", zap.Error(err))
		h.respondDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", media.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(media.Body)
}
