package domain

import "context"

// DefaultCategoryName is reported for venues whose category cannot be resolved.
const DefaultCategoryName = "General"

// Category is static reference data; venues belong to exactly one category.
// PlaceType is the external places type this category is backfilled from.
// swagger:model Category
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	PlaceType string `json:"place_type"`
}

// Venue is a discoverable place a user can like or skip.
// ExternalID is empty for seeded venues and set once for backfilled ones.
// swagger:model Venue
type Venue struct {
	ID           int64   `json:"id"`
	ExternalID   string  `json:"external_id,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ImageURL     string  `json:"image_url"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
}

// NewVenue returns a new Venue. ID is set by the repository on create.
func NewVenue(externalID, name, description, address string, lat, lng float64, imageURL string, categoryID int64) *Venue {
	return &Venue{
		ExternalID:  externalID,
		Name:        name,
		Description: description,
		Address:     address,
		Latitude:    lat,
		Longitude:   lng,
		ImageURL:    imageURL,
		CategoryID:  categoryID,
	}
}

// VenueRepository defines storage for venues.
type VenueRepository interface {
	// ListExcluding returns up to limit venues whose id is not in excludeIDs, ordered by id ascending.
	ListExcluding(ctx context.Context, excludeIDs []int64, limit int) ([]*Venue, error)
	// ListByIDs returns the venues with the given ids in no particular order. Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []int64) ([]*Venue, error)
	// ExistingExternalIDs returns the subset of externalIDs already stored.
	ExistingExternalIDs(ctx context.Context, externalIDs []string) (map[string]struct{}, error)
	// CreateBatch inserts all venues in one transaction and returns how many rows were written.
	// Venues whose external id already exists are skipped. Either every insert commits or none does.
	CreateBatch(ctx context.Context, venues []*Venue) (int, error)
}

// CategoryRepository defines read access to category reference data.
type CategoryRepository interface {
	GetByPlaceType(ctx context.Context, placeType string) (*Category, error)
}

// VenueService is the recommendation feed, swipe recorder and group suggestion aggregator.
type VenueService interface {
	GetNextVenues(ctx context.Context, userID int64, count int) ([]*Venue, error)
	RecordSwipe(ctx context.Context, in RecordSwipeInput) error
	GetGroupSuggestions(ctx context.Context, groupID int64) ([]*Venue, error)
}
