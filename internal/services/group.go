package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"kanzie/internal/domain"
)

const inviteCodeBytes = 4

type groupService struct {
	groupRepo domain.GroupRepository
}

// NewGroupService creates a GroupService.
func NewGroupService(groupRepo domain.GroupRepository) domain.GroupService {
	return &groupService{groupRepo: groupRepo}
}

func (s *groupService) Create(ctx context.Context, name string, memberIDs []int64) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrValidation)
	}
	members := dedupeIDs(memberIDs)
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: at least one member is required", domain.ErrValidation)
	}
	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}
	group := domain.NewGroup(name, code, members, time.Now().UTC())
	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// Join adds the user to the group behind inviteCode. Joining twice is a no-op.
func (s *groupService) Join(ctx context.Context, userID int64, inviteCode string) (*domain.Group, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, fmt.Errorf("%w: invite code is required", domain.ErrValidation)
	}
	group, err := s.groupRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	for _, id := range group.MemberIDs {
		if id == userID {
			return group, nil
		}
	}
	if err := s.groupRepo.AddMember(ctx, group.ID, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join group: %w", err)
	}
	return s.GetByID(ctx, group.ID)
}

func (s *groupService) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// generateInviteCode returns eight upper-case hex characters.
func generateInviteCode() (string, error) {
	b := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
