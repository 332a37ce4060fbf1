// Package handler implements the HTTP handlers for the itinerary API.
// All handlers are methods on Server. Methods are split into resource files
// (traveller.go, itinerary.go, avatar.go, health.go) but share the Server
// struct so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/itinerary-api/internal/domain"
	"github.com/pkordes/itinerary-api/internal/metrics"
)

// TravellerServicer defines the traveller operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// a mock without touching the database or service layer.
type TravellerServicer interface {
	Register(ctx context.Context, email, name string) (domain.Traveller, bool, error)
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	Create(ctx context.Context, in domain.ItineraryInput) (int64, error)
	ListByEmail(ctx context.Context, email string) ([]domain.ItinerarySummary, error)
	Detail(ctx context.Context, id int64) (domain.Itinerary, error)
	Update(ctx context.Context, id int64, in domain.ItineraryInput) error
	Delete(ctx context.Context, id int64, email string) error
}

// AvatarUploader stores traveller avatars.
type AvatarUploader interface {
	Upload(ctx context.Context, email string, data []byte, contentType string) (domain.AvatarUpload, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything a Server needs. Metrics and DB may be nil.
type Deps struct {
	Travellers  TravellerServicer
	Itineraries ItineraryServicer
	Avatars     AvatarUploader
	DB          Pinger
	Metrics     *metrics.Metrics
	Logger      *slog.Logger

	// MaxUploadBytes bounds the in-memory part of a multipart avatar upload.
	MaxUploadBytes int64
}

// Server serves every API endpoint.
type Server struct {
	travellers  TravellerServicer
	itineraries ItineraryServicer
	avatars     AvatarUploader
	db          Pinger
	metrics     *metrics.Metrics
	log         *slog.Logger
	maxUpload   int64
}

const defaultMaxUploadBytes = 5 << 20

// NewServer constructs the Server from its dependencies.
func NewServer(d Deps) *Server {
	s := &Server{
		travellers:  d.Travellers,
		itineraries: d.Itineraries,
		avatars:     d.Avatars,
		db:          d.DB,
		metrics:     d.Metrics,
		log:         d.Logger,
		maxUpload:   d.MaxUploadBytes,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = defaultMaxUploadBytes
	}
	return s
}

// Routes returns a router with every endpoint registered. Cross-cutting
// middleware (logging, CORS, recovery, metrics) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/upload-avatar", s.UploadAvatar)

		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/", s.CreateItinerary)
			r.Get("/by-email/{email}", s.ListItinerariesByEmail)
			r.Get("/detail/{id}", s.GetItinerary)
			r.Put("/{id}", s.UpdateItinerary)
			r.Delete("/{id}", s.DeleteItinerary)
		})
	})

	return r
}
