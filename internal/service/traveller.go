// Package service contains the business logic for the itinerary API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/itinerary-api/internal/domain"
	"github.com/pkordes/itinerary-api/internal/repo"
)

// TravellerService implements register-or-login by email.
type TravellerService struct {
	repo repo.TravellerRepo
}

// NewTravellerService constructs a TravellerService backed by the provided TravellerRepo.
func NewTravellerService(r repo.TravellerRepo) *TravellerService {
	return &TravellerService{repo: r}
}

// Register creates a traveller, or returns the existing one when the email is
// already registered. created reports which of the two happened.
// Returns domain.ErrValidation if email or name is blank, and
// domain.ErrConflict if the email collided but no row could be read back.
func (s *TravellerService) Register(ctx context.Context, email, name string) (domain.Traveller, bool, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(name) == "" {
		return domain.Traveller{}, false, fmt.Errorf("%w: email and name are required", domain.ErrValidation)
	}

	t, err := s.repo.Create(ctx, email, name)
	if err == nil {
		return t, true, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return domain.Traveller{}, false, fmt.Errorf("service.TravellerService.Register: %w", err)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Traveller{}, false, fmt.Errorf("service.TravellerService.Register: %w", domain.ErrConflict)
		}
		return domain.Traveller{}, false, fmt.Errorf("service.TravellerService.Register: %w", err)
	}
	return existing, false, nil
}
