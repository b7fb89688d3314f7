package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User represents a registered user.
// Interests are kept in the order they were chosen at onboarding.
// swagger:model User
type User struct {
	ID                    int64     `json:"id"`
	Email                 string    `json:"email"`
	FullName              string    `json:"full_name"`
	Bio                   string    `json:"bio"`
	AvatarURL             string    `json:"avatar_url"`
	City                  string    `json:"city"`
	Interests             []string  `json:"interests"`
	IsOnboardingCompleted bool      `json:"is_onboarding_completed"`
	CreatedAt             time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, fullName string, createdAt time.Time) *User {
	return &User{
		Email:     email,
		FullName:  fullName,
		Interests: []string{},
		CreatedAt: createdAt,
	}
}

// FirstInterest returns the first interest tag, or "" if the user has none.
func (u *User) FirstInterest() string {
	if u == nil || len(u.Interests) == 0 {
		return ""
	}
	return u.Interests[0]
}

// UserProfile is a user together with activity counters.
// swagger:model UserProfile
type UserProfile struct {
	User        *User `json:"user"`
	SwipesCount int   `json:"swipes_count"`
	GroupsCount int   `json:"groups_count"`
}

// OnboardingInput carries the preferences captured at onboarding.
type OnboardingInput struct {
	City      string
	Interests []string
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdateOnboarding(ctx context.Context, id int64, in OnboardingInput) error
	CountActivity(ctx context.Context, id int64) (swipes, groups int, err error)
}

// UserService defines the business logic for registration, email-only login and profiles.
type UserService interface {
	Register(ctx context.Context, email, fullName string) (*User, error)
	Login(ctx context.Context, email string) (token string, user *User, err error)
	GetProfile(ctx context.Context, id int64) (*UserProfile, error)
	CompleteOnboarding(ctx context.Context, id int64, in OnboardingInput) error
}
