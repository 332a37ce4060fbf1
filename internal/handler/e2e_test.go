package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-api/internal/domain"
	"github.com/pkordes/itinerary-api/internal/handler"
	"github.com/pkordes/itinerary-api/internal/repo"
	"github.com/pkordes/itinerary-api/internal/service"
)

// memStore is an in-memory stand-in for both Postgres repos, so the full
// handler → service → repo path can run without a database.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	travellers  map[string]domain.Traveller
	itineraries map[int64]domain.Itinerary
}

func newMemStore() *memStore {
	return &memStore{
		travellers:  map[string]domain.Traveller{},
		itineraries: map[int64]domain.Itinerary{},
	}
}

type memTravellers struct{ *memStore }
type memItineraries struct{ *memStore }

var (
	_ repo.TravellerRepo = memTravellers{}
	_ repo.ItineraryRepo = memItineraries{}
)

func (m memTravellers) Create(_ context.Context, email, name string) (domain.Traveller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.travellers[email]; ok {
		return domain.Traveller{}, domain.ErrConflict
	}
	m.nextID++
	t := domain.Traveller{ID: m.nextID, Email: email, Name: name}
	m.travellers[email] = t
	return t, nil
}

func (m memTravellers) GetByEmail(_ context.Context, email string) (domain.Traveller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.travellers[email]
	if !ok {
		return domain.Traveller{}, domain.ErrNotFound
	}
	return t, nil
}

func (m memItineraries) Create(_ context.Context, it domain.Itinerary) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	it.ID = m.nextID
	m.itineraries[it.ID] = it
	return it.ID, nil
}

func (m memItineraries) ListByTraveller(_ context.Context, travellerID int64) ([]domain.ItinerarySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.ItinerarySummary{}
	for _, it := range m.itineraries {
		if it.TravellerID != travellerID {
			continue
		}
		out = append(out, domain.ItinerarySummary{
			ID:               it.ID,
			Title:            it.Title,
			StartDate:        it.StartDate,
			EndDate:          it.EndDate,
			ShortDescription: it.ShortDescription,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (m memItineraries) GetByID(_ context.Context, id int64) (domain.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.itineraries[id]
	if !ok {
		return domain.Itinerary{}, domain.ErrNotFound
	}
	for _, t := range m.travellers {
		if t.ID == it.TravellerID {
			it.TravellerEmail = t.Email
		}
	}
	return it, nil
}

func (m memItineraries) OwnerEmail(ctx context.Context, id int64) (string, error) {
	it, err := m.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return it.TravellerEmail, nil
}

func (m memItineraries) Update(_ context.Context, it domain.Itinerary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.itineraries[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	it.TravellerID = old.TravellerID
	m.itineraries[it.ID] = it
	return nil
}

func (m memItineraries) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.itineraries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.itineraries, id)
	return nil
}

// apiClient drives the router in-process.
type apiClient struct {
	t *testing.T
	h http.Handler
}

func newAPIClient(t *testing.T) *apiClient {
	st := newMemStore()
	travellers, itineraries := memTravellers{st}, memItineraries{st}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := handler.NewServer(handler.Deps{
		Travellers:  service.NewTravellerService(travellers),
		Itineraries: service.NewItineraryService(travellers, itineraries),
		Logger:      log,
	}).Routes()
	return &apiClient{t: t, h: h}
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, jsonBody(c.t, body))
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(c.t, json.NewDecoder(rec.Body).Decode(out), rec.Body.String())
	}
	return rec.Code
}

func TestEndToEnd_RegisterCreateList(t *testing.T) {
	c := newAPIClient(t)

	var reg registerBody
	require.Equal(t, http.StatusCreated,
		c.do(http.MethodPost, "/api/register", map[string]any{"email": "a@x.com", "name": "Alice"}, &reg))

	var created struct{ ID int64 }
	require.Equal(t, http.StatusCreated,
		c.do(http.MethodPost, "/api/itineraries", itineraryPayload(), &created))

	var list []map[string]any
	require.Equal(t, http.StatusOK,
		c.do(http.MethodGet, "/api/itineraries/by-email/a@x.com", nil, &list))

	require.Len(t, list, 1)
	assert.Equal(t, "Trip", list[0]["title"])
	assert.Equal(t, "2024/01/01", list[0]["start_date"])
	assert.Equal(t, "2024/01/10", list[0]["end_date"])
	assert.EqualValues(t, created.ID, list[0]["id"])
}

func TestEndToEnd_DuplicateRegisterKeepsOriginal(t *testing.T) {
	c := newAPIClient(t)

	var first, second registerBody
	require.Equal(t, http.StatusCreated,
		c.do(http.MethodPost, "/api/register", map[string]any{"email": "a@x.com", "name": "Alice"}, &first))
	require.Equal(t, http.StatusConflict,
		c.do(http.MethodPost, "/api/register", map[string]any{"email": "a@x.com", "name": "Impostor"}, &second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Alice", second.Name)
}

func TestEndToEnd_OwnershipAndDeleteTwice(t *testing.T) {
	c := newAPIClient(t)
	c.do(http.MethodPost, "/api/register", map[string]any{"email": "a@x.com", "name": "Alice"}, nil)
	c.do(http.MethodPost, "/api/register", map[string]any{"email": "b@x.com", "name": "Bob"}, nil)

	var created struct{ ID int64 }
	require.Equal(t, http.StatusCreated,
		c.do(http.MethodPost, "/api/itineraries", itineraryPayload(), &created))
	path := fmt.Sprintf("/api/itineraries/%d", created.ID)

	update := itineraryPayload()
	update["traveller_email"] = "b@x.com"
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPut, path, update, nil))
	assert.Equal(t, http.StatusForbidden,
		c.do(http.MethodDelete, path, map[string]any{"traveller_email": "b@x.com"}, nil))

	update["traveller_email"] = "a@x.com"
	update["short_description"] = strings.Repeat("x", 81)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, path, update, nil))
	update["short_description"] = strings.Repeat("x", 80)
	assert.Equal(t, http.StatusOK, c.do(http.MethodPut, path, update, nil))

	owner := map[string]any{"traveller_email": "a@x.com"}
	assert.Equal(t, http.StatusOK, c.do(http.MethodDelete, path, owner, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, path, owner, nil))
}

func TestEndToEnd_ListWithNoItinerariesIsEmptyArray(t *testing.T) {
	c := newAPIClient(t)
	c.do(http.MethodPost, "/api/register", map[string]any{"email": "a@x.com", "name": "Alice"}, nil)

	var list []map[string]any
	require.Equal(t, http.StatusOK,
		c.do(http.MethodGet, "/api/itineraries/by-email/a@x.com", nil, &list))

	assert.NotNil(t, list)
	assert.Empty(t, list)
}
