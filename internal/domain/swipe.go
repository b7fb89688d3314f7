package domain

import (
	"context"
	"time"
)

// Swipe is one user's decision on one venue. Rows are append-only; a repeated
// swipe on the same venue adds a new row rather than replacing the old one.
// swagger:model Swipe
type Swipe struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	VenueID     int64     `json:"venue_id"`
	IsLiked     bool      `json:"is_liked"`
	IsSuperLike bool      `json:"is_super_like"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSwipe returns a new Swipe. ID is set by the repository on create.
func NewSwipe(userID, venueID int64, liked, superLike bool, createdAt time.Time) *Swipe {
	return &Swipe{
		UserID:      userID,
		VenueID:     venueID,
		IsLiked:     liked,
		IsSuperLike: superLike,
		CreatedAt:   createdAt,
	}
}

// RecordSwipeInput is the input for VenueService.RecordSwipe.
type RecordSwipeInput struct {
	UserID      int64
	VenueID     int64
	IsLiked     bool
	IsSuperLike bool
}

// VenueLikeCount is the number of likes a venue received from a set of users.
type VenueLikeCount struct {
	VenueID   int64
	LikeCount int
}

// SwipeRepository defines storage for the swipe log.
type SwipeRepository interface {
	// Create appends a swipe. A write that affects no rows, or that the store rejects, returns ErrPersistence.
	Create(ctx context.Context, swipe *Swipe) error
	// ListVenueIDsByUser returns the ids of every venue the user has swiped, liked or not.
	ListVenueIDsByUser(ctx context.Context, userID int64) ([]int64, error)
	// TopLikedByUsers counts liked swipes by the given users per venue, most liked first.
	TopLikedByUsers(ctx context.Context, userIDs []int64, limit int) ([]VenueLikeCount, error)
}
