package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"kanzie/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo    domain.UserRepository
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewUserService creates a UserService with the given repository and token issuer.
func NewUserService(userRepo domain.UserRepository, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.UserService {
	return &userService{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *userService) Register(ctx context.Context, email, fullName string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	user := domain.NewUser(email, fullName, time.Now().UTC())
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login signs in by email alone. Unknown addresses return ErrUserNotFound.
func (s *userService) Login(ctx context.Context, email string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return "", nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	swipes, groups, err := s.userRepo.CountActivity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}
	return &domain.UserProfile{User: user, SwipesCount: swipes, GroupsCount: groups}, nil
}

// CompleteOnboarding stores the user's city and interests and marks onboarding done.
// The first interest drives which place type the feed backfills.
func (s *userService) CompleteOnboarding(ctx context.Context, id int64, in domain.OnboardingInput) error {
	in.City = strings.TrimSpace(in.City)
	in.Interests = normalizeInterests(in.Interests)
	if len(in.Interests) == 0 {
		return fmt.Errorf("%w: at least one interest is required", domain.ErrValidation)
	}
	if err := s.userRepo.UpdateOnboarding(ctx, id, in); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to update onboarding: %w", err)
	}
	return nil
}
