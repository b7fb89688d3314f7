package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"kanzie/internal/delivery/http/controllers"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Venue  *controllers.VenueController
	User   *controllers.UserController
	Group  *controllers.GroupController
	Health *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps the handlers that need a Bearer token.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Feed
	mux.HandleFunc("GET /Venues/next", c.Venue.GetNext)
	mux.HandleFunc("POST /Venues/swipe", c.Venue.Swipe)
	mux.HandleFunc("GET /Venues/group-suggestions/{groupId}", c.Venue.GroupSuggestions)

	// Users
	mux.HandleFunc("POST /Users/register", c.User.Register)
	mux.HandleFunc("POST /Users/login", c.User.Login)
	mux.HandleFunc("GET /Users/me", requireAuth(c.User.GetMe))
	mux.HandleFunc("GET /Users/{id}", c.User.GetByID)
	mux.HandleFunc("POST /Onboarding/{userId}/complete", c.User.CompleteOnboarding)

	// Groups
	mux.HandleFunc("POST /Groups", c.Group.Create)
	mux.HandleFunc("POST /Groups/join", c.Group.Join)
	mux.HandleFunc("GET /Groups/{groupId}", c.Group.Get)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
