package service_test

import (
	"context"

	"github.com/pkordes/itinerary-api/internal/domain"
	"github.com/pkordes/itinerary-api/internal/repo"
	"github.com/pkordes/itinerary-api/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Calling an unset one panics, which flags an unexpected call.

type mockTravellerRepo struct {
	create     func(ctx context.Context, email, name string) (domain.Traveller, error)
	getByEmail func(ctx context.Context, email string) (domain.Traveller, error)
}

func (m *mockTravellerRepo) Create(ctx context.Context, email, name string) (domain.Traveller, error) {
	return m.create(ctx, email, name)
}
func (m *mockTravellerRepo) GetByEmail(ctx context.Context, email string) (domain.Traveller, error) {
	return m.getByEmail(ctx, email)
}

type mockItineraryRepo struct {
	create          func(ctx context.Context, it domain.Itinerary) (int64, error)
	listByTraveller func(ctx context.Context, travellerID int64) ([]domain.ItinerarySummary, error)
	getByID         func(ctx context.Context, id int64) (domain.Itinerary, error)
	ownerEmail      func(ctx context.Context, id int64) (string, error)
	update          func(ctx context.Context, it domain.Itinerary) error
	delete          func(ctx context.Context, id int64) error
}

func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (int64, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryRepo) ListByTraveller(ctx context.Context, travellerID int64) ([]domain.ItinerarySummary, error) {
	return m.listByTraveller(ctx, travellerID)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, id int64) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryRepo) OwnerEmail(ctx context.Context, id int64) (string, error) {
	return m.ownerEmail(ctx, id)
}
func (m *mockItineraryRepo) Update(ctx context.Context, it domain.Itinerary) error {
	return m.update(ctx, it)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockAvatarStore struct {
	put        func(ctx context.Context, key string, data []byte, contentType, cacheControl string) error
	makePublic func(ctx context.Context, key string) error
}

func (m *mockAvatarStore) Put(ctx context.Context, key string, data []byte, contentType, cacheControl string) error {
	return m.put(ctx, key, data, contentType, cacheControl)
}
func (m *mockAvatarStore) MakePublic(ctx context.Context, key string) error {
	return m.makePublic(ctx, key)
}

// compile-time checks.
var (
	_ repo.TravellerRepo  = (*mockTravellerRepo)(nil)
	_ repo.ItineraryRepo  = (*mockItineraryRepo)(nil)
	_ service.AvatarStore = (*mockAvatarStore)(nil)
)
