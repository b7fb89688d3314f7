package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"kanzie/internal/delivery/http/helpers"
	"kanzie/internal/domain"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeData decodes the envelope and unmarshals its data into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if dest != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}
	return envelope
}

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	venues      []*domain.Venue
	err         error
	lastUserID  int64
	lastCount   int
	lastGroupID int64
	lastSwipe   domain.RecordSwipeInput
}

func (f *fakeVenueService) GetNextVenues(ctx context.Context, userID int64, count int) ([]*domain.Venue, error) {
	f.lastUserID, f.lastCount = userID, count
	return f.venues, f.err
}

func (f *fakeVenueService) RecordSwipe(ctx context.Context, in domain.RecordSwipeInput) error {
	f.lastSwipe = in
	return f.err
}

func (f *fakeVenueService) GetGroupSuggestions(ctx context.Context, groupID int64) ([]*domain.Venue, error) {
	f.lastGroupID = groupID
	return f.venues, f.err
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user           *domain.User
	profile        *domain.UserProfile
	token          string
	err            error
	lastProfileID  int64
	lastOnboarding domain.OnboardingInput
}

func (f *fakeUserService) Register(ctx context.Context, email, fullName string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserService) Login(ctx context.Context, email string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeUserService) GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	f.lastProfileID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeUserService) CompleteOnboarding(ctx context.Context, id int64, in domain.OnboardingInput) error {
	f.lastOnboarding = in
	return f.err
}

// fakeGroupService implements domain.GroupService for handler tests.
type fakeGroupService struct {
	group *domain.Group
	err   error
}

func (f *fakeGroupService) Create(ctx context.Context, name string, memberIDs []int64) (*domain.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.group, nil
}

func (f *fakeGroupService) Join(ctx context.Context, userID int64, inviteCode string) (*domain.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.group, nil
}

func (f *fakeGroupService) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.group, nil
}
