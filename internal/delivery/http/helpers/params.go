package helpers

import (
	"fmt"
	"net/http"
	"strconv"
)

// Feed size query parameter defaults and limits.
const (
	DefaultFeedCount = 10
	MaxFeedCount     = 50
)

// ParseFeedCount reads count from the request query string and clamps it to [1, MaxFeedCount].
// Missing, invalid or non-positive values fall back to DefaultFeedCount.
func ParseFeedCount(r *http.Request) int {
	count := DefaultFeedCount
	if s := r.URL.Query().Get("count"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			count = v
			if count > MaxFeedCount {
				count = MaxFeedCount
			}
		}
	}
	return count
}

// PathID parses the named path value as a positive int64.
func PathID(r *http.Request, name string) (int64, error) {
	return parseID(name, r.PathValue(name))
}

// QueryID parses the named query parameter as a positive int64.
func QueryID(r *http.Request, name string) (int64, error) {
	return parseID(name, r.URL.Query().Get(name))
}

func parseID(name, raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
