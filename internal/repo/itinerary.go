package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-api/internal/domain"
)

// ItineraryRepo defines the persistence operations for Itineraries.
type ItineraryRepo interface {
	// Create inserts a new itinerary for it.TravellerID and returns its ID.
	// Returns domain.ErrNotFound if the traveller row no longer exists.
	Create(ctx context.Context, it domain.Itinerary) (int64, error)

	// ListByTraveller returns the summaries of one traveller's itineraries,
	// ordered by start_date descending. Never returns a nil slice.
	ListByTraveller(ctx context.Context, travellerID int64) ([]domain.ItinerarySummary, error)

	// GetByID returns a single itinerary with its owner's email populated.
	// Returns domain.ErrNotFound if no itinerary has that ID.
	GetByID(ctx context.Context, id int64) (domain.Itinerary, error)

	// OwnerEmail returns the email of the traveller owning itinerary id.
	// Returns domain.ErrNotFound if no itinerary has that ID.
	OwnerEmail(ctx context.Context, id int64) (string, error)

	// Update overwrites every mutable field of itinerary it.ID.
	// Returns domain.ErrNotFound if no row was updated.
	Update(ctx context.Context, it domain.Itinerary) error

	// Delete removes an itinerary by ID.
	// Returns domain.ErrNotFound if no row was deleted.
	Delete(ctx context.Context, id int64) error
}

type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

// Create inserts an itinerary row linked to it.TravellerID.
func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (int64, error) {
	const q = `
		INSERT INTO itineraries
			(traveller_id, title, destination, start_date, end_date, short_description, detail_description)
		VALUES
			(@traveller_id, @title, @destination, @start_date, @end_date, @short_description, @detail_description)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, q, itineraryArgs(it)).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("repo.ItineraryRepo.Create: %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return id, nil
}

// ListByTraveller returns the itinerary summaries of one traveller, most recent first.
func (r *pgItineraryRepo) ListByTraveller(ctx context.Context, travellerID int64) ([]domain.ItinerarySummary, error) {
	const q = `
		SELECT id, title, start_date, end_date, short_description
		FROM itineraries
		WHERE traveller_id = @traveller_id
		ORDER BY start_date DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"traveller_id": travellerID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTraveller: %w", err)
	}
	defer rows.Close()

	out := []domain.ItinerarySummary{}
	for rows.Next() {
		var (
			s          domain.ItinerarySummary
			start, end pgtype.Date
		)
		if err := rows.Scan(&s.ID, &s.Title, &start, &end, &s.ShortDescription); err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListByTraveller: scan: %w", err)
		}
		s.StartDate = start.Time
		s.EndDate = end.Time
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTraveller: rows: %w", err)
	}
	return out, nil
}

// GetByID retrieves an itinerary joined with its owner's email.
func (r *pgItineraryRepo) GetByID(ctx context.Context, id int64) (domain.Itinerary, error) {
	const q = `
		SELECT i.id, i.traveller_id, t.email, i.title, i.destination,
		       i.start_date, i.end_date, i.short_description, i.detail_description
		FROM itineraries i
		JOIN travellers t ON t.id = i.traveller_id
		WHERE i.id = @id`

	var (
		it         domain.Itinerary
		start, end pgtype.Date
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(
		&it.ID, &it.TravellerID, &it.TravellerEmail, &it.Title, &it.Destination,
		&start, &end, &it.ShortDescription, &it.DetailDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	it.StartDate = start.Time
	it.EndDate = end.Time
	return it, nil
}

// OwnerEmail resolves the owning traveller's email for an itinerary.
func (r *pgItineraryRepo) OwnerEmail(ctx context.Context, id int64) (string, error) {
	const q = `
		SELECT t.email
		FROM itineraries i
		JOIN travellers t ON t.id = i.traveller_id
		WHERE i.id = @id`

	var email string
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.ItineraryRepo.OwnerEmail: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.ItineraryRepo.OwnerEmail: %w", err)
	}
	return email, nil
}

// Update overwrites the mutable fields of an itinerary. Ownership is not
// changed here; traveller_id is left as it was.
func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) error {
	const q = `
		UPDATE itineraries
		SET title              = @title,
		    destination        = @destination,
		    start_date         = @start_date,
		    end_date           = @end_date,
		    short_description  = @short_description,
		    detail_description = @detail_description,
		    updated_at         = now()
		WHERE id = @id`

	args := itineraryArgs(it)
	args["id"] = it.ID

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes an itinerary by primary key.
func (r *pgItineraryRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func itineraryArgs(it domain.Itinerary) pgx.NamedArgs {
	return pgx.NamedArgs{
		"traveller_id":       it.TravellerID,
		"title":              it.Title,
		"destination":        it.Destination,
		"start_date":         it.StartDate,
		"end_date":           it.EndDate,
		"short_description":  it.ShortDescription,
		"detail_description": it.DetailDescription,
	}
}
