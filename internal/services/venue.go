package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kanzie/internal/domain"
)

const (
	// DefaultFeedSize is the number of venues returned by GetNextVenues when count is not positive.
	DefaultFeedSize      = 10
	groupSuggestionLimit = 5
)

type venueService struct {
	venueRepo      domain.VenueRepository
	swipeRepo      domain.SwipeRepository
	userRepo       domain.UserRepository
	groupRepo      domain.GroupRepository
	backfiller     *venueBackfiller
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewVenueService creates the VenueService. places may return no candidates; the feed then serves local venues only.
func NewVenueService(
	venueRepo domain.VenueRepository,
	categoryRepo domain.CategoryRepository,
	swipeRepo domain.SwipeRepository,
	userRepo domain.UserRepository,
	groupRepo domain.GroupRepository,
	places domain.PlacesSource,
	backfillCfg BackfillConfig,
	logger *slog.Logger,
	timeout time.Duration,
) domain.VenueService {
	return &venueService{
		venueRepo:      venueRepo,
		swipeRepo:      swipeRepo,
		userRepo:       userRepo,
		groupRepo:      groupRepo,
		backfiller:     newVenueBackfiller(venueRepo, categoryRepo, places, backfillCfg, logger),
		logger:         logger,
		contextTimeout: timeout,
	}
}

// GetNextVenues returns up to count venues the user has not swiped, ordered by venue id.
// When fewer than count/2 remain it backfills from the places source and queries again.
// An unknown user gets the unfiltered local feed and no backfill.
func (s *venueService) GetNextVenues(ctx context.Context, userID int64, count int) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if count <= 0 {
		count = DefaultFeedSize
	}
	venues, err := s.unswipedVenues(ctx, userID, count)
	if err != nil {
		return nil, err
	}
	if len(venues) >= count/2 {
		return venues, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return venues, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if _, err := s.backfiller.Backfill(ctx, user); err != nil {
		return nil, fmt.Errorf("backfill venues: %w", err)
	}
	return s.unswipedVenues(ctx, userID, count)
}

func (s *venueService) unswipedVenues(ctx context.Context, userID int64, count int) ([]*domain.Venue, error) {
	swiped, err := s.swipeRepo.ListVenueIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list swiped venues: %w", err)
	}
	venues, err := s.venueRepo.ListExcluding(ctx, swiped, count)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// RecordSwipe appends one swipe. Neither the user nor the venue is looked up first;
// the store's foreign keys reject unknown ids as ErrPersistence.
func (s *venueService) RecordSwipe(ctx context.Context, in domain.RecordSwipeInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.UserID <= 0 || in.VenueID <= 0 {
		return fmt.Errorf("%w: userId and venueId are required", domain.ErrValidation)
	}
	swipe := domain.NewSwipe(in.UserID, in.VenueID, in.IsLiked, in.IsSuperLike, time.Now().UTC())
	if err := s.swipeRepo.Create(ctx, swipe); err != nil {
		return fmt.Errorf("record swipe: %w", err)
	}
	s.logger.DebugContext(ctx, "swipe recorded", "user_id", in.UserID, "venue_id", in.VenueID, "liked", in.IsLiked)
	return nil
}

// GetGroupSuggestions ranks the venues liked by the group's members, most liked first, capped at five.
func (s *venueService) GetGroupSuggestions(ctx context.Context, groupID int64) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	memberIDs, err := s.groupRepo.ListMemberIDs(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	counts, err := s.swipeRepo.TopLikedByUsers(ctx, memberIDs, groupSuggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("count group likes: %w", err)
	}
	if len(counts) == 0 {
		return []*domain.Venue{}, nil
	}

	ids := make([]int64, len(counts))
	for i, c := range counts {
		ids[i] = c.VenueID
	}
	venues, err := s.venueRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load suggested venues: %w", err)
	}
	byID := make(map[int64]*domain.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}
	ranked := make([]*domain.Venue, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ranked = append(ranked, v)
		}
	}
	return ranked, nil
}
