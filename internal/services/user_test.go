package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kanzie/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo, &fakeTokenIssuer{}, time.Hour)

		u, err := svc.Register(ctx, "  Ayse@Example.COM ", " Ayse Yilmaz ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "ayse@example.com", u.Email)
		assert.Equal(t, "Ayse Yilmaz", u.FullName)
		assert.False(t, u.IsOnboardingCompleted)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), &fakeTokenIssuer{}, time.Hour)

		_, err := svc.Register(ctx, "not-an-email", "Name")
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.Register(ctx, "a@b.co", "  ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo(&domain.User{ID: 1, Email: "a@b.co"})
		svc := NewUserService(repo, &fakeTokenIssuer{}, time.Hour)

		_, err := svc.Register(ctx, "a@b.co", "Other")
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(&domain.User{ID: 3, Email: "a@b.co"})

	t.Run("known email gets token", func(t *testing.T) {
		svc := NewUserService(repo, &fakeTokenIssuer{}, time.Hour)
		token, u, err := svc.Login(ctx, "A@B.co")
		require.NoError(t, err)
		assert.Equal(t, "token-3", token)
		assert.Equal(t, int64(3), u.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewUserService(repo, &fakeTokenIssuer{}, time.Hour)
		_, _, err := svc.Login(ctx, "nobody@b.co")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("issuer failure", func(t *testing.T) {
		svc := NewUserService(repo, &fakeTokenIssuer{err: errors.New("boom")}, time.Hour)
		_, _, err := svc.Login(ctx, "a@b.co")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to sign token")
	})
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(&domain.User{ID: 3, Email: "a@b.co"})
	repo.swipes, repo.groups = 12, 2
	svc := NewUserService(repo, &fakeTokenIssuer{}, time.Hour)

	p, err := svc.GetProfile(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, p.SwipesCount)
	assert.Equal(t, 2, p.GroupsCount)

	_, err = svc.GetProfile(ctx, 4)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_CompleteOnboarding(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(&domain.User{ID: 3, Email: "a@b.co"})
	svc := NewUserService(repo, &fakeTokenIssuer{}, time.Hour)

	err := svc.CompleteOnboarding(ctx, 3, domain.OnboardingInput{City: " Istanbul ", Interests: []string{"Coffee", "bar", "coffee"}})
	require.NoError(t, err)
	u := repo.byID[3]
	assert.Equal(t, "Istanbul", u.City)
	assert.Equal(t, []string{"coffee", "bar"}, u.Interests)
	assert.True(t, u.IsOnboardingCompleted)
	assert.Equal(t, "coffee", u.FirstInterest())

	err = svc.CompleteOnboarding(ctx, 3, domain.OnboardingInput{Interests: []string{" "}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.CompleteOnboarding(ctx, 9, domain.OnboardingInput{Interests: []string{"bar"}})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
