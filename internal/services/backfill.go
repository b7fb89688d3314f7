package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"kanzie/internal/domain"
)

// BackfillConfig controls where and how far the feed looks for new venues.
type BackfillConfig struct {
	// Origin is the fixed search centre; per-user location is not used.
	Origin        domain.GeoPoint
	RadiusMeters  int
	PhotoMaxWidth int
	// Timeout bounds a shared backfill run, which outlives any single request.
	Timeout time.Duration
}

// venueBackfiller fetches nearby places and stores the ones not seen before.
// Concurrent backfills for the same place type share a single run.
type venueBackfiller struct {
	venueRepo    domain.VenueRepository
	categoryRepo domain.CategoryRepository
	places       domain.PlacesSource
	cfg          BackfillConfig
	group        singleflight.Group
	logger       *slog.Logger
}

func newVenueBackfiller(venueRepo domain.VenueRepository, categoryRepo domain.CategoryRepository, places domain.PlacesSource, cfg BackfillConfig, logger *slog.Logger) *venueBackfiller {
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = 5000
	}
	if cfg.PhotoMaxWidth <= 0 {
		cfg.PhotoMaxWidth = 800
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &venueBackfiller{
		venueRepo:    venueRepo,
		categoryRepo: categoryRepo,
		places:       places,
		cfg:          cfg,
		logger:       logger,
	}
}

// Backfill searches for venues matching the user's first interest and returns how many were stored.
// The run is shared by concurrent callers, so it is detached from the first caller's cancellation.
func (b *venueBackfiller) Backfill(ctx context.Context, user *domain.User) (int, error) {
	placeType := placeTypeForInterest(user.FirstInterest())
	ch := b.group.DoChan(placeType, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.Timeout)
		defer cancel()
		return b.backfill(runCtx, placeType)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return 0, res.Err
	}
	v, shared := res.Val, res.Shared
	if shared {
		b.logger.DebugContext(ctx, "backfill shared with concurrent request", "type", placeType)
	}
	return v.(int), nil
}

func (b *venueBackfiller) backfill(ctx context.Context, placeType string) (int, error) {
	candidates := b.places.SearchNearby(ctx, b.cfg.Origin.Lat, b.cfg.Origin.Lng, placeType, b.cfg.RadiusMeters)
	if len(candidates) == 0 {
		return 0, nil
	}

	category, err := b.categoryRepo.GetByPlaceType(ctx, placeType)
	if errors.Is(err, domain.ErrNotFound) {
		b.logger.WarnContext(ctx, "no category for place type, skipping backfill", "type", placeType)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve category for %q: %w", placeType, err)
	}

	externalIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		externalIDs = append(externalIDs, c.ExternalID)
	}
	existing, err := b.venueRepo.ExistingExternalIDs(ctx, externalIDs)
	if err != nil {
		return 0, fmt.Errorf("load existing external ids: %w", err)
	}

	venues := make([]*domain.Venue, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := existing[c.ExternalID]; ok {
			continue
		}
		// Mark it so a candidate repeated within one response is stored once.
		existing[c.ExternalID] = struct{}{}
		venues = append(venues, b.toVenue(c, category.ID))
	}
	if len(venues) == 0 {
		return 0, nil
	}

	inserted, err := b.venueRepo.CreateBatch(ctx, venues)
	if err != nil {
		return 0, fmt.Errorf("store backfilled venues: %w", err)
	}
	b.logger.InfoContext(ctx, "venues backfilled", "type", placeType, "candidates", len(candidates), "inserted", inserted)
	return inserted, nil
}

func (b *venueBackfiller) toVenue(c domain.PlaceCandidate, categoryID int64) *domain.Venue {
	description := c.Summary
	if description == "" {
		description = fmt.Sprintf("%s is a popular spot worth discovering.", c.Name)
	}
	imageURL := ""
	if len(c.PhotoNames) > 0 {
		imageURL = b.places.PhotoURL(c.PhotoNames[0], b.cfg.PhotoMaxWidth)
	}
	return domain.NewVenue(c.ExternalID, c.Name, description, c.Address, c.Latitude, c.Longitude, imageURL, categoryID)
}
