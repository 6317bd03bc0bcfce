package places

import (
	"encoding/json"
	"fmt"
	"strings"

	"nearby-places/pkg/geo"
)

// Vendor status values.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusUnknownError   = "UNKNOWN_ERROR"
)

// PlaceResult is one entry of a search response.
type PlaceResult struct {
	Name     string     `json:"name"`
	Location geo.LatLng `json:"location"`
	PlaceID  string     `json:"place_id,omitempty"`
	Vicinity string     `json:"vicinity,omitempty"`
	Types    []string   `json:"types,omitempty"`
}

// SearchResponse is the decoded vendor response.
type SearchResponse struct {
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	Results       []PlaceResult `json:"results"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

func (r *SearchResponse) Denied() bool {
	return r.Status == StatusRequestDenied
}

// Renderable returns the results that may be drawn; none when denied.
func (r *SearchResponse) Renderable() []PlaceResult {
	if r.Denied() {
		return nil
	}
	return r.Results
}

// Err returns ErrRequestDenied wrapped with the vendor message for denied
// responses and nil otherwise.
func (r *SearchResponse) Err() error {
	if !r.Denied() {
		return nil
	}
	if r.ErrorMessage == "" {
		return ErrRequestDenied
	}
	return fmt.Errorf("%w: %s", ErrRequestDenied, r.ErrorMessage)
}

type wireLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type wireResult struct {
	Name     string   `json:"name"`
	PlaceID  string   `json:"place_id"`
	Vicinity string   `json:"vicinity"`
	Types    []string `json:"types"`
	Geometry *struct {
		Location *wireLocation `json:"location"`
	} `json:"geometry"`
}

type wireResponse struct {
	Status        *string      `json:"status"`
	ErrorMessage  string       `json:"error_message"`
	Results       []wireResult `json:"results"`
	NextPageToken string       `json:"next_page_token"`
}

// Parse decodes a Nearby Search JSON body. Empty or malformed input, a
// missing status, and results without geometry.location yield *ParseError.
func Parse(text string) (*SearchResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Reason: "empty response body"}
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Cause: err}
	}

	if wire.Status == nil {
		return nil, &ParseError{Reason: "missing status"}
	}

	resp := &SearchResponse{
		Status:        *wire.Status,
		ErrorMessage:  wire.ErrorMessage,
		NextPageToken: wire.NextPageToken,
		Results:       make([]PlaceResult, 0, len(wire.Results)),
	}

	for i, r := range wire.Results {
		if r.Geometry == nil || r.Geometry.Location == nil {
			return nil, &ParseError{Reason: fmt.Sprintf("result %d (%q) has no geometry.location", i, r.Name)}
		}
		resp.Results = append(resp.Results, PlaceResult{
			Name:     r.Name,
			Location: geo.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			PlaceID:  r.PlaceID,
			Vicinity: r.Vicinity,
			Types:    r.Types,
		})
	}

	return resp, nil
}
