package places

// searchNearbyRequest is the body of places:searchNearby.
type searchNearbyRequest struct {
	IncludedTypes       []string            `json:"includedTypes"`
	MaxResultCount      int                 `json:"maxResultCount"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// searchNearbyResponse is the subset of the places:searchNearby response selected by fieldMask.
type searchNearbyResponse struct {
	Places []place `json:"places"`
}

type place struct {
	ID               string         `json:"id"`
	DisplayName      *localizedText `json:"displayName"`
	FormattedAddress string         `json:"formattedAddress"`
	Location         *latLng        `json:"location"`
	Photos           []photo        `json:"photos"`
	Types            []string       `json:"types"`
	EditorialSummary *localizedText `json:"editorialSummary"`
}

type localizedText struct {
	Text string `json:"text"`
}

type photo struct {
	// Name is the photo resource name, places/{placeId}/photos/{photoId}.
	Name string `json:"name"`
}
