package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/itinerary-api/internal/domain"
)

// TravellerRepo defines the persistence operations for Travellers.
type TravellerRepo interface {
	// Create inserts a new traveller and returns it with its generated ID.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, email, name string) (domain.Traveller, error)

	// GetByEmail looks a traveller up by its unique email.
	// Returns domain.ErrNotFound if no traveller has that email.
	GetByEmail(ctx context.Context, email string) (domain.Traveller, error)
}

type pgTravellerRepo struct {
	db db
}

// NewTravellerRepo constructs a TravellerRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravellerRepo(db db) TravellerRepo {
	return &pgTravellerRepo{db: db}
}

// Create inserts a traveller row. The unique constraint on email is the only
// guard against duplicates; no pre-check is done.
func (r *pgTravellerRepo) Create(ctx context.Context, email, name string) (domain.Traveller, error) {
	const q = `
		INSERT INTO travellers (email, name)
		VALUES (@email, @name)
		RETURNING id, email, name`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email, "name": name})
	t, err := scanTraveller(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Traveller{}, fmt.Errorf("repo.TravellerRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Traveller{}, fmt.Errorf("repo.TravellerRepo.Create: %w", err)
	}
	return t, nil
}

// GetByEmail retrieves a traveller by email.
func (r *pgTravellerRepo) GetByEmail(ctx context.Context, email string) (domain.Traveller, error) {
	const q = `
		SELECT id, email, name
		FROM travellers
		WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	t, err := scanTraveller(row)
	if err != nil {
		return domain.Traveller{}, fmt.Errorf("repo.TravellerRepo.GetByEmail: %w", err)
	}
	return t, nil
}

func scanTraveller(s scanner) (domain.Traveller, error) {
	var t domain.Traveller
	if err := s.Scan(&t.ID, &t.Email, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Traveller{}, domain.ErrNotFound
		}
		return domain.Traveller{}, err
	}
	return t, nil
}
