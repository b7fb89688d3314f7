package domain

import (
	"context"
	"errors"
	"time"
)

// ErrGroupNotFound is returned when a group id or invite code does not resolve.
var ErrGroupNotFound = errors.New("group not found")

// Group is a set of users who plan outings together.
// swagger:model Group
type Group struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	MemberIDs  []int64   `json:"member_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewGroup returns a new Group. ID is set by the repository on create.
func NewGroup(name, inviteCode string, memberIDs []int64, createdAt time.Time) *Group {
	return &Group{
		Name:       name,
		InviteCode: inviteCode,
		MemberIDs:  memberIDs,
		CreatedAt:  createdAt,
	}
}

// GroupRepository defines storage for groups and their membership.
type GroupRepository interface {
	// Create inserts the group and its initial members in one transaction.
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetByInviteCode(ctx context.Context, code string) (*Group, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	// ListMemberIDs returns the ids of the group's members. An unknown group has no members.
	ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// GroupService manages groups and membership.
type GroupService interface {
	Create(ctx context.Context, name string, memberIDs []int64) (*Group, error)
	Join(ctx context.Context, userID int64, inviteCode string) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
}
