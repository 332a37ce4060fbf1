package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/pkordes/itinerary-api/internal/domain"
)

// UploadAvatar handles POST /api/upload-avatar (multipart: email, avatar).
// The whole request body is capped at the configured upload size.
func (s *Server) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "Avatar file is too large.")
			return
		}
		badRequest(w, "Expected a multipart form with email and avatar.")
		return
	}

	email := r.FormValue("email")

	var (
		data        []byte
		contentType string
	)
	file, header, err := r.FormFile("avatar")
	switch {
	case err == nil:
		defer file.Close()
		contentType = header.Header.Get("Content-Type")
		if data, err = io.ReadAll(file); err != nil {
			s.internalError(w, r, err, "Failed to upload avatar.")
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// Left empty; the service reports the missing file.
	default:
		badRequest(w, "Missing avatar file.")
		return
	}

	result, err := s.avatars.Upload(r.Context(), email, data, contentType)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			validationFailed(w, err)
			return
		}
		s.internalError(w, r, err, "Failed to upload avatar.")
		return
	}
	s.metrics.AvatarUploaded(result.PublishErr == nil)

	writeJSON(w, http.StatusOK, messageResponse{Message: "Avatar uploaded."})
}
