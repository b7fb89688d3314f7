package controllers

import (
	"log/slog"
	"net/http"

	"kanzie/internal/delivery/http/helpers"
	"kanzie/internal/domain"
)

// SwipeRequest is the request body for POST /Venues/swipe
type SwipeRequest struct {
	UserID      int64 `json:"userId"`
	VenueID     int64 `json:"venueId"`
	IsLike      bool  `json:"isLike"`
	IsSuperLike bool  `json:"isSuperLike"`
}

// Validate implements Validator.
func (s SwipeRequest) Validate() []string {
	var errs []string
	if s.UserID <= 0 {
		errs = append(errs, "userId is required")
	}
	if s.VenueID <= 0 {
		errs = append(errs, "venueId is required")
	}
	return errs
}

// SwipeResponse is the data returned by POST /Venues/swipe.
type SwipeResponse struct {
	Message string `json:"message"`
}

// VenueListSuccessResponse is the success response envelope for venue lists (200).
type VenueListSuccessResponse struct {
	Data  []VenueResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SwipeSuccessResponse is the success response envelope for POST /Venues/swipe (200).
type SwipeSuccessResponse struct {
	Data  SwipeResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VenueController handles the swipe feed, swipes and group suggestions.
type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

// NewVenueController creates a VenueController with the given logger and service.
func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// GetNext godoc
// @Summary Next venues to swipe
// @Description Returns venues the user has not swiped yet, ordered by id. When fewer than half of count remain, nearby places matching the user's first interest are fetched and stored first.
// @Tags venues
// @Produce json
// @Param userId query int true "User ID"
// @Param count query int false "Number of venues (default 10, max 50)"
// @Success 200 {object} controllers.VenueListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Venues/next [get]
func (c *VenueController) GetNext(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.QueryID(r, "userId")
	if err != nil {
		helpers.WriteBadRequest(w, err)
		return
	}
	venues, err := c.Service.GetNextVenues(r.Context(), userID, helpers.ParseFeedCount(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toVenueResponses(venues))
}

// Swipe godoc
// @Summary Record a swipe
// @Description Appends a like, dislike or super-like for a venue. Repeated swipes are recorded again.
// @Tags venues
// @Accept json
// @Produce json
// @Param body body SwipeRequest true "Swipe"
// @Success 200 {object} controllers.SwipeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Venues/swipe [post]
func (c *VenueController) Swipe(w http.ResponseWriter, r *http.Request) {
	var req SwipeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.Service.RecordSwipe(r.Context(), domain.RecordSwipeInput{
		UserID:      req.UserID,
		VenueID:     req.VenueID,
		IsLiked:     req.IsLike,
		IsSuperLike: req.IsSuperLike,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SwipeResponse{Message: "Swipe recorded successfully"})
}

// GroupSuggestions godoc
// @Summary Group suggestions
// @Description Up to five venues most liked by the group's members, most liked first. An unknown or empty group yields an empty list.
// @Tags venues
// @Produce json
// @Param groupId path int true "Group ID"
// @Success 200 {object} controllers.VenueListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Venues/group-suggestions/{groupId} [get]
func (c *VenueController) GroupSuggestions(w http.ResponseWriter, r *http.Request) {
	groupID, err := helpers.PathID(r, "groupId")
	if err != nil {
		helpers.WriteBadRequest(w, err)
		return
	}
	venues, err := c.Service.GetGroupSuggestions(r.Context(), groupID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toVenueResponses(venues))
}
