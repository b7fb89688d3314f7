package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"kanzie/internal/domain"
)

const (
	// DefaultBaseURL is the Places API (New) endpoint.
	DefaultBaseURL = "https://places.googleapis.com/v1"
	// DefaultPhotoMaxWidth is the width requested for venue images.
	DefaultPhotoMaxWidth = 800

	maxResultCount = 20
	fieldMask      = "places.id,places.displayName,places.formattedAddress,places.location,places.photos,places.types,places.editorialSummary"
	defaultTimeout = 8 * time.Second
)

// Config holds configuration for the Google Places client.
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout bounds a single nearby search. Timing out counts as an unavailable source.
	Timeout time.Duration
}

type googleClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[[]domain.PlaceCandidate]
	logger  *slog.Logger
}

// NewGoogleClient returns a PlacesSource backed by the Google Places API.
// Without an API key every search returns no candidates and no request is made.
func NewGoogleClient(cfg Config, client *http.Client, logger *slog.Logger) domain.PlacesSource {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &googleClient{
		client:  client,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		logger:  logger,
	}
	c.cb = gobreaker.NewCircuitBreaker[[]domain.PlaceCandidate](gobreaker.Settings{
		Name:        "google-places",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A caller hanging up says nothing about the health of the API.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// SearchNearby returns place candidates of placeType within radiusMeters of (lat, lng).
// Any failure (missing key, open circuit, timeout, non-2xx, bad payload) yields nil.
func (c *googleClient) SearchNearby(ctx context.Context, lat, lng float64, placeType string, radiusMeters int) []domain.PlaceCandidate {
	if c.apiKey == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	candidates, err := c.cb.Execute(func() ([]domain.PlaceCandidate, error) {
		return c.searchNearby(ctx, lat, lng, placeType, radiusMeters)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.WarnContext(ctx, "places search rejected by circuit breaker", "type", placeType, "err", err)
		} else {
			c.logger.WarnContext(ctx, "places search failed", "type", placeType, "err", err)
		}
		return nil
	}
	return candidates
}

func (c *googleClient) searchNearby(ctx context.Context, lat, lng float64, placeType string, radiusMeters int) ([]domain.PlaceCandidate, error) {
	body, err := json.Marshal(searchNearbyRequest{
		IncludedTypes:  []string{placeType},
		MaxResultCount: maxResultCount,
		LocationRestriction: locationRestriction{
			Circle: circle{
				Center: latLng{Latitude: lat, Longitude: lng},
				Radius: float64(radiusMeters),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchNearby", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call places api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("places api returned status %d: %s", resp.StatusCode, snippet)
	}

	var data searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}
	return toCandidates(data.Places), nil
}

// toCandidates converts places to candidates, dropping any without id, display name or location.
func toCandidates(places []place) []domain.PlaceCandidate {
	out := make([]domain.PlaceCandidate, 0, len(places))
	for _, p := range places {
		if p.ID == "" || p.DisplayName == nil || p.DisplayName.Text == "" || p.Location == nil {
			continue
		}
		cand := domain.PlaceCandidate{
			ExternalID: p.ID,
			Name:       p.DisplayName.Text,
			Address:    p.FormattedAddress,
			Latitude:   p.Location.Latitude,
			Longitude:  p.Location.Longitude,
			Types:      p.Types,
		}
		for _, ph := range p.Photos {
			if ph.Name != "" {
				cand.PhotoNames = append(cand.PhotoNames, ph.Name)
			}
		}
		if p.EditorialSummary != nil {
			cand.Summary = p.EditorialSummary.Text
		}
		out = append(out, cand)
	}
	return out
}

// PhotoURL returns a fetchable URL for a photo resource, or "" without a name or API key.
func (c *googleClient) PhotoURL(photoName string, maxWidth int) string {
	if photoName == "" || c.apiKey == "" {
		return ""
	}
	if maxWidth <= 0 {
		maxWidth = DefaultPhotoMaxWidth
	}
	return fmt.Sprintf("%s/%s/media?key=%s&maxWidthPx=%d", c.baseURL, photoName, c.apiKey, maxWidth)
}
