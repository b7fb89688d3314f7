package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"kanzie/internal/delivery/http/helpers"
	"kanzie/internal/delivery/http/middleware"
	"kanzie/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) []string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return []string{"email is required"}
	}
	if !emailRegexp.MatchString(email) {
		return []string{"invalid email format"}
	}
	return nil
}

// RegisterRequest is the request body for POST /Users/register
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Validate implements Validator.
func (req RegisterRequest) Validate() []string {
	errs := validateEmail(req.Email)
	if strings.TrimSpace(req.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	return errs
}

// LoginRequest is the request body for POST /Users/login
type LoginRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	return validateEmail(l.Email)
}

// LoginResponse is the response body for POST /Users/login
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	User      UserResponse `json:"user"`
}

// OnboardingRequest is the request body for POST /Onboarding/{userId}/complete
type OnboardingRequest struct {
	City      string   `json:"city"`
	Interests []string `json:"interests"`
}

// Validate implements Validator.
func (o OnboardingRequest) Validate() []string {
	for _, tag := range o.Interests {
		if strings.TrimSpace(tag) != "" {
			return nil
		}
	}
	return []string{"at least one interest is required"}
}

// RegisterSuccessResponse is the success response envelope for POST /Users/register (201).
type RegisterSuccessResponse struct {
	Data  UserResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LoginSuccessResponse is the success response envelope for POST /Users/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProfileSuccessResponse is the success response envelope for profile reads (200).
type ProfileSuccessResponse struct {
	Data  ProfileResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles registration, email-only login, profiles and onboarding.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a user
// @Description Create a user with email and full name. Emails are stored lower-case.
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} controllers.RegisterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Users/register [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Register(r.Context(), req.Email, req.FullName)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "email already registered")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toUserResponse(user))
}

// Login godoc
// @Summary Log in
// @Description Email-only login. Returns a JWT and the user.
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login"
// @Success 200 {object} controllers.LoginSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Users/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unknown email")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", User: toUserResponse(user)})
}

// GetByID godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Users/{id} [get]
func (c *UserController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		helpers.WriteBadRequest(w, err)
		return
	}
	c.writeProfile(w, r, id)
}

// GetMe godoc
// @Summary Get current user profile
// @Description Returns the authenticated user's profile. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok || userID <= 0 {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing user context")
		return
	}
	c.writeProfile(w, r, userID)
}

func (c *UserController) writeProfile(w http.ResponseWriter, r *http.Request, id int64) {
	profile, err := c.Service.GetProfile(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toProfileResponse(profile))
}

// CompleteOnboarding godoc
// @Summary Complete onboarding
// @Description Stores city and interests in the order given. The first interest selects which places the feed fetches.
// @Tags onboarding
// @Accept json
// @Param userId path int true "User ID"
// @Param body body OnboardingRequest true "Onboarding data"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /Onboarding/{userId}/complete [post]
func (c *UserController) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		helpers.WriteBadRequest(w, err)
		return
	}
	var req OnboardingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.CompleteOnboarding(r.Context(), userID, domain.OnboardingInput{City: req.City, Interests: req.Interests}); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
