package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/itinerary-api/internal/domain"
	"github.com/pkordes/itinerary-api/internal/repo"
)

// ItineraryService implements business logic for Itinerary operations.
// It holds the traveller repo because every write resolves or checks the
// owning traveller by email.
type ItineraryService struct {
	travellers  repo.TravellerRepo
	itineraries repo.ItineraryRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(travellers repo.TravellerRepo, itineraries repo.ItineraryRepo) *ItineraryService {
	return &ItineraryService{travellers: travellers, itineraries: itineraries}
}

// Create validates the input, resolves the owner by email and persists the
// itinerary. Returns the new itinerary ID.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound if no
// traveller has the given email.
func (s *ItineraryService) Create(ctx context.Context, in domain.ItineraryInput) (int64, error) {
	if err := validateItinerary(in); err != nil {
		return 0, err
	}

	owner, err := s.travellers.GetByEmail(ctx, in.TravellerEmail)
	if err != nil {
		return 0, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}

	it := toItinerary(in)
	it.TravellerID = owner.ID

	id, err := s.itineraries.Create(ctx, it)
	if err != nil {
		return 0, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return id, nil
}

// ListByEmail returns the itineraries owned by the traveller with the given
// email, most recent start date first. The result is never nil.
// Returns domain.ErrNotFound if no traveller has that email.
func (s *ItineraryService) ListByEmail(ctx context.Context, email string) ([]domain.ItinerarySummary, error) {
	owner, err := s.travellers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListByEmail: %w", err)
	}

	list, err := s.itineraries.ListByTraveller(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListByEmail: %w", err)
	}
	if list == nil {
		return []domain.ItinerarySummary{}, nil
	}
	return list, nil
}

// Detail returns a single itinerary by ID. Reads are not ownership-checked.
func (s *ItineraryService) Detail(ctx context.Context, id int64) (domain.Itinerary, error) {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Detail: %w", err)
	}
	return it, nil
}

// Update overwrites itinerary id with in after checking that in.TravellerEmail owns it.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// itinerary does not exist (or vanished before the write), and
// domain.ErrForbidden if it belongs to someone else.
func (s *ItineraryService) Update(ctx context.Context, id int64, in domain.ItineraryInput) error {
	if err := validateItinerary(in); err != nil {
		return err
	}
	if err := s.checkOwner(ctx, id, in.TravellerEmail); err != nil {
		return fmt.Errorf("service.ItineraryService.Update: %w", err)
	}

	it := toItinerary(in)
	it.ID = id
	if err := s.itineraries.Update(ctx, it); err != nil {
		return fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return nil
}

// Delete removes itinerary id after checking that email owns it.
// Error semantics match Update.
func (s *ItineraryService) Delete(ctx context.Context, id int64, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: traveller_email is required", domain.ErrValidation)
	}
	if err := s.checkOwner(ctx, id, email); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// checkOwner distinguishes a missing itinerary (ErrNotFound) from one owned by
// a different traveller (ErrForbidden).
func (s *ItineraryService) checkOwner(ctx context.Context, id int64, email string) error {
	owner, err := s.itineraries.OwnerEmail(ctx, id)
	if err != nil {
		return err
	}
	if owner != email {
		return fmt.Errorf("%w: itinerary %d is not owned by the given traveller", domain.ErrForbidden, id)
	}
	return nil
}

// validateItinerary enforces the rules shared by Create and Update.
//   - traveller_email, title, destination and short_description must be non-blank.
//   - start_date and end_date must be present; their order is not checked.
//   - short_description must be at most 80 characters.
//
// Presence of short_description is checked before its length.
func validateItinerary(in domain.ItineraryInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"traveller_email", in.TravellerEmail},
		{"title", in.Title},
		{"destination", in.Destination},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if in.StartDate == nil {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if in.EndDate == nil {
		return fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	}
	if in.ShortDescription == nil || strings.TrimSpace(*in.ShortDescription) == "" {
		return fmt.Errorf("%w: short_description is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(*in.ShortDescription) > domain.MaxShortDescriptionLen {
		return fmt.Errorf("%w: short_description must be at most %d characters",
			domain.ErrValidation, domain.MaxShortDescriptionLen)
	}
	return nil
}

// toItinerary copies validated input into a domain.Itinerary.
// Callers must run validateItinerary first; the pointer fields are dereferenced.
func toItinerary(in domain.ItineraryInput) domain.Itinerary {
	return domain.Itinerary{
		TravellerEmail:    in.TravellerEmail,
		Title:             in.Title,
		Destination:       in.Destination,
		StartDate:         *in.StartDate,
		EndDate:           *in.EndDate,
		ShortDescription:  *in.ShortDescription,
		DetailDescription: in.DetailDescription,
	}
}
