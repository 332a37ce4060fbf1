package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/itinerary-api/internal/domain"
)

type registerRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type registerResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Register handles POST /api/register.
// A new email yields 201; an already registered email yields 409 carrying the
// existing traveller, which clients treat as a successful login.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Email and name are required.")
		return
	}

	t, created, err := s.travellers.Register(r.Context(), req.Email, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			badRequest(w, "Email and name are required.")
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, "conflict", "Email already exists.")
		default:
			s.internalError(w, r, err, "Server error during registration.")
		}
		return
	}
	s.metrics.TravellerRegistered(created)

	resp := registerResponse{ID: t.ID, Email: t.Email, Name: t.Name}
	if created {
		resp.Message = "Registration successful."
		writeJSON(w, http.StatusCreated, resp)
		return
	}
	resp.Message = "Email already exists. Logged in successfully."
	writeJSON(w, http.StatusConflict, resp)
}
