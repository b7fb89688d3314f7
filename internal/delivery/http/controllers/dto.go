package controllers

import (
	"time"

	"kanzie/internal/domain"
)

// VenueResponse is the venue card shape consumed by the mobile client.
// swagger:model VenueResponse
type VenueResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	ImageURL     string `json:"imageUrl"`
	CategoryName string `json:"categoryName"`
}

func toVenueResponses(venues []*domain.Venue) []VenueResponse {
	out := make([]VenueResponse, 0, len(venues))
	for _, v := range venues {
		categoryName := v.CategoryName
		if categoryName == "" {
			categoryName = domain.DefaultCategoryName
		}
		out = append(out, VenueResponse{
			ID:           v.ID,
			Name:         v.Name,
			Description:  v.Description,
			Address:      v.Address,
			ImageURL:     v.ImageURL,
			CategoryName: categoryName,
		})
	}
	return out
}

// UserResponse is the public view of a user.
// swagger:model UserResponse
type UserResponse struct {
	ID                    int64     `json:"id"`
	Email                 string    `json:"email"`
	FullName              string    `json:"fullName"`
	Bio                   string    `json:"bio"`
	AvatarURL             string    `json:"avatarUrl"`
	City                  string    `json:"city"`
	Interests             []string  `json:"interests"`
	IsOnboardingCompleted bool      `json:"isOnboardingCompleted"`
	CreatedAt             time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) UserResponse {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return UserResponse{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		Bio:                   u.Bio,
		AvatarURL:             u.AvatarURL,
		City:                  u.City,
		Interests:             interests,
		IsOnboardingCompleted: u.IsOnboardingCompleted,
		CreatedAt:             u.CreatedAt,
	}
}

// ProfileResponse is a user with activity counters.
// swagger:model ProfileResponse
type ProfileResponse struct {
	UserResponse
	SwipesCount int `json:"swipesCount"`
	GroupsCount int `json:"groupsCount"`
}

func toProfileResponse(p *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		UserResponse: toUserResponse(p.User),
		SwipesCount:  p.SwipesCount,
		GroupsCount:  p.GroupsCount,
	}
}

// GroupResponse is the public view of a group.
// swagger:model GroupResponse
type GroupResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"inviteCode"`
	MemberIDs  []int64   `json:"memberIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toGroupResponse(g *domain.Group) GroupResponse {
	members := g.MemberIDs
	if members == nil {
		members = []int64{}
	}
	return GroupResponse{
		ID:         g.ID,
		Name:       g.Name,
		InviteCode: g.InviteCode,
		MemberIDs:  members,
		CreatedAt:  g.CreatedAt,
	}
}
