package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"kanzie/internal/delivery/http/helpers"
	"kanzie/internal/domain"
)

// CreateGroupRequest is the request body for POST /Groups
type CreateGroupRequest struct {
	Name      string  `json:"name"`
	MemberIDs []int64 `json:"memberIds"`
}

// Validate implements Validator.
func (g CreateGroupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, "name is required")
	}
	if len(g.MemberIDs) == 0 {
		errs = append(errs, "memberIds must not be empty")
	}
	return errs
}

// JoinGroupRequest is the request body for POST /Groups/join
type JoinGroupRequest struct {
	UserID     int64  `json:"userId"`
	InviteCode string `json:"inviteCode"`
}

// Validate implements Validator.
func (j JoinGroupRequest) Validate() []string {
	var errs []string
	if j.UserID <= 0 {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(j.InviteCode) == "" {
		errs = append(errs, "inviteCode is required")
	}
	return errs
}

// GroupSuccessResponse is the success response envelope for group endpoints.
type GroupSuccessResponse struct {
	Data  GroupResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GroupController handles group creation and membership.
type GroupController struct {
	Logger  *slog.Logger
	Service domain.GroupService
}

// NewGroupController creates a GroupController with the given logger and service.
func NewGroupController(logger *slog.Logger, svc domain.GroupService) *GroupController {
	return &GroupController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a group
// @Description Creates a group with an eight character invite code and adds the given members.
// @Tags groups
// @Accept json
// @Produce json
// @Param body body CreateGroupRequest true "Group"
// @Success 201 {object} controllers.GroupSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Groups [post]
func (c *GroupController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	group, err := c.Service.Create(r.Context(), req.Name, req.MemberIDs)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toGroupResponse(group))
}

// Join godoc
// @Summary Join a group
// @Description Adds the user to the group with the invite code. Joining twice has no effect.
// @Tags groups
// @Accept json
// @Produce json
// @Param body body JoinGroupRequest true "Invite"
// @Success 200 {object} controllers.GroupSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Groups/join [post]
func (c *GroupController) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	group, err := c.Service.Join(r.Context(), req.UserID, req.InviteCode)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toGroupResponse(group))
}

// Get godoc
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param groupId path int true "Group ID"
// @Success 200 {object} controllers.GroupSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Groups/{groupId} [get]
func (c *GroupController) Get(w http.ResponseWriter, r *http.Request) {
	groupID, err := helpers.PathID(r, "groupId")
	if err != nil {
		helpers.WriteBadRequest(w, err)
		return
	}
	group, err := c.Service.GetByID(r.Context(), groupID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toGroupResponse(group))
}
