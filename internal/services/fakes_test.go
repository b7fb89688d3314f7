package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"kanzie/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeVenueRepo is an in-memory VenueRepository for tests.
type fakeVenueRepo struct {
	mu         sync.Mutex
	venues     []*domain.Venue
	nextID     int64
	listCalls  int
	batchCalls int
	batchErr   error
	listErr    error
	lastBatch  []*domain.Venue
}

func newFakeVenueRepo(venues ...*domain.Venue) *fakeVenueRepo {
	f := &fakeVenueRepo{nextID: 1}
	for _, v := range venues {
		f.add(v)
	}
	return f
}

func (f *fakeVenueRepo) add(v *domain.Venue) {
	if v.ID == 0 {
		v.ID = f.nextID
	}
	if v.ID >= f.nextID {
		f.nextID = v.ID + 1
	}
	f.venues = append(f.venues, v)
}

func (f *fakeVenueRepo) ListExcluding(ctx context.Context, excludeIDs []int64, limit int) ([]*domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	excluded := make(map[int64]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	sorted := append([]*domain.Venue(nil), f.venues...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	out := []*domain.Venue{}
	for _, v := range sorted {
		if excluded[v.ID] {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVenueRepo) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*domain.Venue
	// Reverse order so callers cannot rely on it.
	for i := len(f.venues) - 1; i >= 0; i-- {
		if want[f.venues[i].ID] {
			out = append(out, f.venues[i])
		}
	}
	return out, nil
}

func (f *fakeVenueRepo) ExistingExternalIDs(ctx context.Context, externalIDs []string) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]struct{})
	for _, want := range externalIDs {
		for _, v := range f.venues {
			if v.ExternalID != "" && v.ExternalID == want {
				out[want] = struct{}{}
			}
		}
	}
	return out, nil
}

func (f *fakeVenueRepo) CreateBatch(ctx context.Context, venues []*domain.Venue) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	f.lastBatch = venues
	if f.batchErr != nil {
		return 0, f.batchErr
	}
	for _, v := range venues {
		v.ID = 0
		f.add(v)
	}
	return len(venues), nil
}

// fakeCategoryRepo resolves place types to categories.
type fakeCategoryRepo struct {
	byType map[string]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byType: map[string]*domain.Category{
		"cafe":             {ID: 1, Name: "Kafe", PlaceType: "cafe"},
		"bar":              {ID: 2, Name: "Bar", PlaceType: "bar"},
		"amusement_center": {ID: 3, Name: "Aktivite", PlaceType: "amusement_center"},
		"restaurant":       {ID: 4, Name: "Restoran", PlaceType: "restaurant"},
	}}
}

func (f *fakeCategoryRepo) GetByPlaceType(ctx context.Context, placeType string) (*domain.Category, error) {
	if c, ok := f.byType[placeType]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

// fakeSwipeRepo is an in-memory append-only swipe log.
type fakeSwipeRepo struct {
	mu        sync.Mutex
	swipes    []*domain.Swipe
	createErr error
}

func (f *fakeSwipeRepo) Create(ctx context.Context, s *domain.Swipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = int64(len(f.swipes) + 1)
	f.swipes = append(f.swipes, s)
	return nil
}

func (f *fakeSwipeRepo) ListVenueIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, s := range f.swipes {
		if s.UserID == userID {
			out = append(out, s.VenueID)
		}
	}
	return out, nil
}

func (f *fakeSwipeRepo) TopLikedByUsers(ctx context.Context, userIDs []int64, limit int) ([]domain.VenueLikeCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		members[id] = true
	}
	counts := map[int64]int{}
	for _, s := range f.swipes {
		if s.IsLiked && members[s.UserID] {
			counts[s.VenueID]++
		}
	}
	out := make([]domain.VenueLikeCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.VenueLikeCount{VenueID: id, LikeCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LikeCount != out[j].LikeCount {
			return out[i].LikeCount > out[j].LikeCount
		}
		return out[i].VenueID < out[j].VenueID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSwipeRepo) like(userID, venueID int64) {
	f.swipes = append(f.swipes, domain.NewSwipe(userID, venueID, true, false, fixedNow))
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	createErr error
	getErr    error
	swipes    int
	groups    int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: map[int64]*domain.User{}, nextID: 1}
	for _, u := range users {
		f.byID[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateOnboarding(ctx context.Context, id int64, in domain.OnboardingInput) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.City = in.City
	u.Interests = in.Interests
	u.IsOnboardingCompleted = true
	return nil
}

func (f *fakeUserRepo) CountActivity(ctx context.Context, id int64) (int, int, error) {
	return f.swipes, f.groups, nil
}

// fakeGroupRepo is an in-memory GroupRepository.
type fakeGroupRepo struct {
	byID      map[int64]*domain.Group
	nextID    int64
	createErr error
	addCalls  int
}

func newFakeGroupRepo(groups ...*domain.Group) *fakeGroupRepo {
	f := &fakeGroupRepo{byID: map[int64]*domain.Group{}, nextID: 1}
	for _, g := range groups {
		f.byID[g.ID] = g
		if g.ID >= f.nextID {
			f.nextID = g.ID + 1
		}
	}
	return f
}

func (f *fakeGroupRepo) Create(ctx context.Context, g *domain.Group) error {
	if f.createErr != nil {
		return f.createErr
	}
	g.ID = f.nextID
	f.nextID++
	f.byID[g.ID] = g
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrGroupNotFound
}

func (f *fakeGroupRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	for _, g := range f.byID {
		if g.InviteCode == code {
			return g, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (f *fakeGroupRepo) AddMember(ctx context.Context, groupID, userID int64) error {
	f.addCalls++
	g, ok := f.byID[groupID]
	if !ok {
		return domain.ErrGroupNotFound
	}
	g.MemberIDs = append(g.MemberIDs, userID)
	return nil
}

func (f *fakeGroupRepo) ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	if g, ok := f.byID[groupID]; ok {
		return g.MemberIDs, nil
	}
	return []int64{}, nil
}

// fakePlaces returns canned candidates and records each search.
// When release is set, a search signals started and blocks until release is closed.
type fakePlaces struct {
	mu         sync.Mutex
	candidates []domain.PlaceCandidate
	searches   []placesSearch
	started    chan struct{}
	release    chan struct{}
}

type placesSearch struct {
	lat, lng  float64
	placeType string
	radius    int
}

func (f *fakePlaces) SearchNearby(ctx context.Context, lat, lng float64, placeType string, radiusMeters int) []domain.PlaceCandidate {
	if f.release != nil {
		f.started <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, placesSearch{lat: lat, lng: lng, placeType: placeType, radius: radiusMeters})
	return f.candidates
}

func (f *fakePlaces) PhotoURL(photoName string, maxWidth int) string {
	if photoName == "" {
		return ""
	}
	return fmt.Sprintf("https://photos.test/%s?w=%d", photoName, maxWidth)
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(userID int64, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.token != "" {
		return f.token, nil
	}
	return fmt.Sprintf("token-%d", userID), nil
}
