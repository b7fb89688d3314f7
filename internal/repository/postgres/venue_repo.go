package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kanzie/internal/domain"

	"github.com/lib/pq"
)

const venueSelect = `
	SELECT v.id, COALESCE(v.external_id, ''), v.name, v.description, v.address,
	       v.latitude, v.longitude, v.image_url, v.category_id, COALESCE(c.name, '')
	FROM venues v
	LEFT JOIN categories c ON c.id = v.category_id
`

type venueRepository struct {
	DB *sql.DB
}

// NewVenueRepository returns a domain.VenueRepository implemented with Postgres.
func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func (r *venueRepository) ListExcluding(ctx context.Context, excludeIDs []int64, limit int) ([]*domain.Venue, error) {
	if excludeIDs == nil {
		// A NULL array would make the NOT ANY predicate NULL and filter every row.
		excludeIDs = []int64{}
	}
	query := venueSelect + `
		WHERE NOT (v.id = ANY($1))
		ORDER BY v.id
		LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(excludeIDs), limit)
	if err != nil {
		return nil, err
	}
	return scanVenues(rows)
}

func (r *venueRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error) {
	if len(ids) == 0 {
		return []*domain.Venue{}, nil
	}
	rows, err := r.DB.QueryContext(ctx, venueSelect+` WHERE v.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanVenues(rows)
}

func (r *venueRepository) ExistingExternalIDs(ctx context.Context, externalIDs []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(externalIDs) == 0 {
		return existing, nil
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT external_id FROM venues WHERE external_id = ANY($1)`, pq.Array(externalIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *venueRepository) CreateBatch(ctx context.Context, venues []*domain.Venue) (int, error) {
	if len(venues) == 0 {
		return 0, nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin venue batch: %w", domain.ErrPersistence, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO venues (external_id, name, description, address, latitude, longitude, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id
	`
	inserted := 0
	for _, v := range venues {
		err := tx.QueryRowContext(ctx, query,
			nullString(v.ExternalID), v.Name, v.Description, v.Address, v.Latitude, v.Longitude, v.ImageURL, v.CategoryID,
		).Scan(&v.ID)
		if errors.Is(err, sql.ErrNoRows) {
			// Another backfill stored this external id first.
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("%w: insert venue %q: %w", domain.ErrPersistence, v.Name, err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit venue batch: %w", domain.ErrPersistence, err)
	}
	return inserted, nil
}

func scanVenues(rows *sql.Rows) ([]*domain.Venue, error) {
	defer rows.Close()
	venues := []*domain.Venue{}
	for rows.Next() {
		v := &domain.Venue{}
		if err := rows.Scan(&v.ID, &v.ExternalID, &v.Name, &v.Description, &v.Address,
			&v.Latitude, &v.Longitude, &v.ImageURL, &v.CategoryID, &v.CategoryName); err != nil {
			return nil, err
		}
		if v.CategoryName == "" {
			v.CategoryName = domain.DefaultCategoryName
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
