package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kanzie/internal/domain"

	"github.com/lib/pq"
)

type swipeRepository struct {
	DB *sql.DB
}

// NewSwipeRepository returns a domain.SwipeRepository implemented with Postgres.
func NewSwipeRepository(db *sql.DB) domain.SwipeRepository {
	return &swipeRepository{DB: db}
}

func (r *swipeRepository) Create(ctx context.Context, s *domain.Swipe) error {
	query := `
		INSERT INTO swipes (user_id, venue_id, is_liked, is_super_like, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.UserID, s.VenueID, s.IsLiked, s.IsSuperLike, s.CreatedAt).Scan(&s.ID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: swipe insert affected no rows", domain.ErrPersistence)
	case hasPQCode(err, pqForeignKeyViolation):
		return fmt.Errorf("%w: swipe references unknown user %d or venue %d", domain.ErrPersistence, s.UserID, s.VenueID)
	default:
		return fmt.Errorf("%w: insert swipe: %w", domain.ErrPersistence, err)
	}
}

func (r *swipeRepository) ListVenueIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT venue_id FROM swipes WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *swipeRepository) TopLikedByUsers(ctx context.Context, userIDs []int64, limit int) ([]domain.VenueLikeCount, error) {
	if len(userIDs) == 0 {
		return []domain.VenueLikeCount{}, nil
	}
	query := `
		SELECT venue_id, COUNT(*) AS like_count
		FROM swipes
		WHERE user_id = ANY($1) AND is_liked
		GROUP BY venue_id
		ORDER BY like_count DESC, venue_id
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(userIDs), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := []domain.VenueLikeCount{}
	for rows.Next() {
		var c domain.VenueLikeCount
		if err := rows.Scan(&c.VenueID, &c.LikeCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
