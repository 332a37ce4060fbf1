package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary-api/internal/datefmt"
	"github.com/pkordes/itinerary-api/internal/domain"
)

// itineraryRequest is the body of POST /api/itineraries and PUT /api/itineraries/{id}.
// Dates arrive as "YYYY-MM-DD". Pointer fields stay nil when absent so the
// service can report them as missing.
type itineraryRequest struct {
	TravellerEmail    string              `json:"traveller_email"`
	Title             string              `json:"title"`
	Destination       string              `json:"destination"`
	StartDate         *openapi_types.Date `json:"start_date"`
	EndDate           *openapi_types.Date `json:"end_date"`
	ShortDescription  *string             `json:"short_description"`
	DetailDescription *string             `json:"detail_description"`
}

type deleteItineraryRequest struct {
	TravellerEmail string `json:"traveller_email"`
}

type createItineraryResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// itinerarySummaryResponse is one element of the list response.
// Dates are rendered "YYYY/MM/DD".
type itinerarySummaryResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	ShortDescription string  `json:"short_description"`
}

type itineraryResponse struct {
	ID                int64   `json:"id"`
	TravellerEmail    string  `json:"traveller_email"`
	Title             string  `json:"title"`
	Destination       string  `json:"destination"`
	StartDate         *string `json:"start_date"`
	EndDate           *string `json:"end_date"`
	ShortDescription  string  `json:"short_description"`
	DetailDescription string  `json:"detail_description"`
}

// CreateItinerary handles POST /api/itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body.")
		return
	}

	id, err := s.itineraries.Create(r.Context(), requestToInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			validationFailed(w, err)
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "Traveller not found with this email.")
		default:
			s.internalError(w, r, err, "Server error during itinerary creation.")
		}
		return
	}
	s.metrics.ItineraryMutated("create")

	writeJSON(w, http.StatusCreated, createItineraryResponse{ID: id, Message: "Itinerary created successfully."})
}

// ListItinerariesByEmail handles GET /api/itineraries/by-email/{email}.
// Only the itineraries of that traveller are returned, newest start date first.
func (s *Server) ListItinerariesByEmail(w http.ResponseWriter, r *http.Request) {
	var email string
	if err := pathParam(r, "email", &email); err != nil {
		badRequest(w, "Invalid email.")
		return
	}

	list, err := s.itineraries.ListByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "Traveller not found with this email.")
			return
		}
		s.internalError(w, r, err, "Server error retrieving itineraries by email.")
		return
	}

	out := make([]itinerarySummaryResponse, len(list))
	for i, it := range list {
		out[i] = summaryToResponse(it)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetItinerary handles GET /api/itineraries/detail/{id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	var id int64
	if err := pathParam(r, "id", &id); err != nil {
		badRequest(w, "Invalid itinerary id.")
		return
	}

	it, err := s.itineraries.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "Itinerary not found.")
			return
		}
		s.internalError(w, r, err, "Server error retrieving itinerary detail.")
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// UpdateItinerary handles PUT /api/itineraries/{id}.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	var id int64
	if err := pathParam(r, "id", &id); err != nil {
		badRequest(w, "Invalid itinerary id.")
		return
	}
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body.")
		return
	}

	err := s.itineraries.Update(r.Context(), id, requestToInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			validationFailed(w, err)
		case errors.Is(err, domain.ErrForbidden):
			forbidden(w, "You are not the owner of this itinerary.")
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "Itinerary not found.")
		default:
			s.internalError(w, r, err, "Server error during itinerary update.")
		}
		return
	}
	s.metrics.ItineraryMutated("update")

	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Itinerary ID %d updated successfully.", id)})
}

// DeleteItinerary handles DELETE /api/itineraries/{id}.
// The body must carry the owner's traveller_email.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	var id int64
	if err := pathParam(r, "id", &id); err != nil {
		badRequest(w, "Invalid itinerary id.")
		return
	}
	var req deleteItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Missing traveller_email for authorization.")
		return
	}

	err := s.itineraries.Delete(r.Context(), id, req.TravellerEmail)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			badRequest(w, "Missing traveller_email for authorization.")
		case errors.Is(err, domain.ErrForbidden):
			forbidden(w, "You are not authorized to delete this itinerary.")
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "Itinerary not found.")
		default:
			s.internalError(w, r, err, "Server error during itinerary deletion.")
		}
		return
	}
	s.metrics.ItineraryMutated("delete")

	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Itinerary ID %d deleted successfully.", id)})
}

// --- mapping helpers --------------------------------------------------------

func requestToInput(req itineraryRequest) domain.ItineraryInput {
	in := domain.ItineraryInput{
		TravellerEmail:   req.TravellerEmail,
		Title:            req.Title,
		Destination:      req.Destination,
		StartDate:        dateToTime(req.StartDate),
		EndDate:          dateToTime(req.EndDate),
		ShortDescription: req.ShortDescription,
	}
	if req.DetailDescription != nil {
		in.DetailDescription = *req.DetailDescription
	}
	return in
}

func dateToTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func summaryToResponse(it domain.ItinerarySummary) itinerarySummaryResponse {
	return itinerarySummaryResponse{
		ID:               it.ID,
		Title:            it.Title,
		StartDate:        datefmt.Format(&it.StartDate),
		EndDate:          datefmt.Format(&it.EndDate),
		ShortDescription: it.ShortDescription,
	}
}

func itineraryToResponse(it domain.Itinerary) itineraryResponse {
	return itineraryResponse{
		ID:                it.ID,
		TravellerEmail:    it.TravellerEmail,
		Title:             it.Title,
		Destination:       it.Destination,
		StartDate:         datefmt.Format(&it.StartDate),
		EndDate:           datefmt.Format(&it.EndDate),
		ShortDescription:  it.ShortDescription,
		DetailDescription: it.DetailDescription,
	}
}
