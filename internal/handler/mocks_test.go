package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-api/internal/domain"
	"github.com/pkordes/itinerary-api/internal/handler"
)

// Test doubles for the handler's service interfaces.
// Set only the method fields a test needs.

type mockTravellerServicer struct {
	register func(ctx context.Context, email, name string) (domain.Traveller, bool, error)
}

func (m *mockTravellerServicer) Register(ctx context.Context, email, name string) (domain.Traveller, bool, error) {
	return m.register(ctx, email, name)
}

type mockItineraryServicer struct {
	create      func(ctx context.Context, in domain.ItineraryInput) (int64, error)
	listByEmail func(ctx context.Context, email string) ([]domain.ItinerarySummary, error)
	detail      func(ctx context.Context, id int64) (domain.Itinerary, error)
	update      func(ctx context.Context, id int64, in domain.ItineraryInput) error
	delete      func(ctx context.Context, id int64, email string) error
}

func (m *mockItineraryServicer) Create(ctx context.Context, in domain.ItineraryInput) (int64, error) {
	return m.create(ctx, in)
}
func (m *mockItineraryServicer) ListByEmail(ctx context.Context, email string) ([]domain.ItinerarySummary, error) {
	return m.listByEmail(ctx, email)
}
func (m *mockItineraryServicer) Detail(ctx context.Context, id int64) (domain.Itinerary, error) {
	return m.detail(ctx, id)
}
func (m *mockItineraryServicer) Update(ctx context.Context, id int64, in domain.ItineraryInput) error {
	return m.update(ctx, id, in)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, id int64, email string) error {
	return m.delete(ctx, id, email)
}

type mockAvatarUploader struct {
	upload func(ctx context.Context, email string, data []byte, contentType string) (domain.AvatarUpload, error)
}

func (m *mockAvatarUploader) Upload(ctx context.Context, email string, data []byte, contentType string) (domain.AvatarUpload, error) {
	return m.upload(ctx, email, data, contentType)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// compile-time checks.
var (
	_ handler.TravellerServicer = (*mockTravellerServicer)(nil)
	_ handler.ItineraryServicer = (*mockItineraryServicer)(nil)
	_ handler.AvatarUploader    = (*mockAvatarUploader)(nil)
	_ handler.Pinger            = pingerFunc(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given deps the same way main.go does,
// minus the cross-cutting middleware.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return handler.NewServer(d).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorBody mirrors the handler's error payload.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e
}
