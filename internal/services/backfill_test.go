package services

import (
	"context"
	"testing"

	"kanzie/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackfiller(venues *fakeVenueRepo, places *fakePlaces) *venueBackfiller {
	return newVenueBackfiller(venues, newFakeCategoryRepo(), places, BackfillConfig{Origin: testOrigin}, testLogger)
}

func TestVenueBackfiller_Dedup(t *testing.T) {
	existing := &domain.Venue{ID: 1, ExternalID: "places/1", Name: "Already here"}
	venues := newFakeVenueRepo(existing)
	places := &fakePlaces{candidates: []domain.PlaceCandidate{
		{ExternalID: "places/1", Name: "Already here"},
		{ExternalID: "places/2", Name: "New"},
		{ExternalID: "places/2", Name: "New again"},
	}}
	b := newTestBackfiller(venues, places)

	n, err := b.Backfill(context.Background(), &domain.User{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, venues.lastBatch, 1)
	assert.Equal(t, "places/2", venues.lastBatch[0].ExternalID)
	assert.Equal(t, "New", venues.lastBatch[0].Name)
}

func TestVenueBackfiller_RepeatedRunStoresOnce(t *testing.T) {
	venues := newFakeVenueRepo()
	places := &fakePlaces{candidates: placeCandidates(3)}
	b := newTestBackfiller(venues, places)
	user := &domain.User{ID: 1, Interests: []string{"bar"}}

	n, err := b.Backfill(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = b.Backfill(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	seen := map[string]int{}
	for _, v := range venues.venues {
		seen[v.ExternalID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, id)
	}
	assert.Len(t, venues.venues, 3)
}

func TestVenueBackfiller_AllKnownSkipsInsert(t *testing.T) {
	venues := newFakeVenueRepo(&domain.Venue{ID: 1, ExternalID: "places/1"})
	places := &fakePlaces{candidates: []domain.PlaceCandidate{{ExternalID: "places/1", Name: "x"}}}
	b := newTestBackfiller(venues, places)

	n, err := b.Backfill(context.Background(), &domain.User{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, venues.batchCalls)
}

func TestVenueBackfiller_VenueFields(t *testing.T) {
	venues := newFakeVenueRepo()
	places := &fakePlaces{candidates: []domain.PlaceCandidate{
		{ExternalID: "places/a", Name: "Moda Cafe", Address: "Kadikoy", Latitude: 40.98, Longitude: 29.02, PhotoNames: []string{"places/a/photos/p1", "places/a/photos/p2"}},
		{ExternalID: "places/b", Name: "Summit", Summary: "Rooftop views."},
	}}
	b := newTestBackfiller(venues, places)

	_, err := b.Backfill(context.Background(), &domain.User{ID: 1, Interests: []string{"coffee"}})
	require.NoError(t, err)
	require.Len(t, venues.lastBatch, 2)

	a := venues.lastBatch[0]
	assert.Equal(t, "Moda Cafe is a popular spot worth discovering.", a.Description)
	assert.Equal(t, "https://photos.test/places/a/photos/p1?w=800", a.ImageURL)
	assert.Equal(t, "Kadikoy", a.Address)
	assert.Equal(t, int64(1), a.CategoryID)
	assert.InDelta(t, 40.98, a.Latitude, 1e-9)

	bv := venues.lastBatch[1]
	assert.Equal(t, "Rooftop views.", bv.Description)
	assert.Empty(t, bv.ImageURL)
}

func TestVenueBackfiller_PlaceTypeFromFirstInterest(t *testing.T) {
	tests := []struct {
		name      string
		interests []string
		want      string
	}{
		{"coffee", []string{"coffee", "bar"}, "cafe"},
		{"nightlife", []string{"Nightlife"}, "bar"},
		{"activity", []string{"activity"}, "amusement_center"},
		{"food", []string{"food"}, "restaurant"},
		{"unmapped", []string{"museum", "coffee"}, "restaurant"},
		{"none", nil, "restaurant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			places := &fakePlaces{}
			b := newTestBackfiller(newFakeVenueRepo(), places)
			_, err := b.Backfill(context.Background(), &domain.User{ID: 1, Interests: tt.interests})
			require.NoError(t, err)
			require.Len(t, places.searches, 1)
			assert.Equal(t, tt.want, places.searches[0].placeType)
			assert.Equal(t, 5000, places.searches[0].radius)
		})
	}
}

func TestVenueBackfiller_MissingCategorySkips(t *testing.T) {
	venues := newFakeVenueRepo()
	cats := &fakeCategoryRepo{byType: map[string]*domain.Category{}}
	b := newVenueBackfiller(venues, cats, &fakePlaces{candidates: placeCandidates(2)}, BackfillConfig{}, testLogger)

	inserted, err := b.Backfill(context.Background(), &domain.User{ID: 1})
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Zero(t, venues.batchCalls)
}

func TestVenueBackfiller_CancelledCallerDoesNotFailSharedRun(t *testing.T) {
	venues := newFakeVenueRepo()
	places := &fakePlaces{
		candidates: placeCandidates(3),
		started:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	b := newVenueBackfiller(venues, newFakeCategoryRepo(), places, BackfillConfig{}, testLogger)
	user := &domain.User{ID: 1, Interests: []string{"coffee"}}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := b.Backfill(firstCtx, user)
		firstErr <- err
	}()
	<-places.started

	secondDone := make(chan struct{})
	var secondInserted int
	var secondErr error
	go func() {
		defer close(secondDone)
		secondInserted, secondErr = b.Backfill(context.Background(), user)
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)
	close(places.release)
	<-secondDone

	require.NoError(t, secondErr)
	assert.Len(t, venues.venues, 3)
	// The second caller either joined the shared run or ran after it and found everything stored.
	assert.Contains(t, []int{0, 3}, secondInserted)
}

func TestNormalizeInterests(t *testing.T) {
	assert.Equal(t, []string{"coffee", "bar"}, normalizeInterests([]string{" Coffee", "", "bar", "COFFEE"}))
	assert.Empty(t, normalizeInterests(nil))
}
