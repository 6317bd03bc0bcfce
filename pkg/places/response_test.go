package places

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearby-places/pkg/geo"
)

func TestParse_SingleResult(t *testing.T) {
	resp, err := Parse(`{"status":"OK","results":[{"name":"Cafe","geometry":{"location":{"lat":1.0,"lng":2.0}}}]}`)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, resp.Status)
	assert.False(t, resp.Denied())
	assert.NoError(t, resp.Err())
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Cafe", resp.Results[0].Name)
	assert.Equal(t, geo.LatLng{Lat: 1.0, Lng: 2.0}, resp.Results[0].Location)
	assert.Equal(t, resp.Results, resp.Renderable())
}

func TestParse_OptionalFields(t *testing.T) {
	resp, err := Parse(`{
		"html_attributions": [],
		"next_page_token": "tok",
		"status": "OK",
		"results": [{
			"name": "Hotel Pune",
			"place_id": "ChIJ123",
			"vicinity": "Main Road",
			"types": ["lodging", "point_of_interest"],
			"geometry": {"location": {"lat": 18.5, "lng": 73.9}, "viewport": {}}
		}]
	}`)
	require.NoError(t, err)

	assert.Equal(t, "tok", resp.NextPageToken)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "ChIJ123", resp.Results[0].PlaceID)
	assert.Equal(t, "Main Road", resp.Results[0].Vicinity)
	assert.Equal(t, []string{"lodging", "point_of_interest"}, resp.Results[0].Types)
}

func TestParse_RequestDenied(t *testing.T) {
	resp, err := Parse(`{"status":"REQUEST_DENIED","error_message":"bad key"}`)
	require.NoError(t, err)

	assert.True(t, resp.Denied())
	assert.Empty(t, resp.Renderable())
	assert.Equal(t, "bad key", resp.ErrorMessage)
	assert.True(t, errors.Is(resp.Err(), ErrRequestDenied))
	assert.Contains(t, resp.Err().Error(), "bad key")
	assert.Equal(t, FailureDenied, Classify(resp.Err()))
}

func TestParse_DeniedResultsAreNotRenderable(t *testing.T) {
	resp, err := Parse(`{"status":"REQUEST_DENIED","results":[{"name":"x","geometry":{"location":{"lat":0,"lng":0}}}]}`)
	require.NoError(t, err)

	assert.Len(t, resp.Results, 1)
	assert.Empty(t, resp.Renderable())
	assert.Equal(t, ErrRequestDenied, resp.Err())
}

func TestParse_ZeroResults(t *testing.T) {
	resp, err := Parse(`{"status":"ZERO_RESULTS","results":[]}`)
	require.NoError(t, err)

	assert.Equal(t, StatusZeroResults, resp.Status)
	assert.Empty(t, resp.Renderable())
	assert.NoError(t, resp.Err())
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty string", "", "empty response body"},
		{"whitespace", " \n\t", "empty response body"},
		{"not json", "<html>502</html>", "invalid JSON"},
		{"truncated", `{"status":"OK","results":[`, "invalid JSON"},
		{"array", `[]`, "invalid JSON"},
		{"null", `null`, "missing status"},
		{"no status", `{"results":[]}`, "missing status"},
		{"no geometry", `{"status":"OK","results":[{"name":"A"}]}`, "has no geometry.location"},
		{"no location", `{"status":"OK","results":[{"name":"A","geometry":{}}]}`, "has no geometry.location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Parse(tt.input)
			assert.Nil(t, resp)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected *ParseError, got %v", err)
			assert.Contains(t, parseErr.Error(), tt.reason)
			assert.Equal(t, FailureParse, Classify(err))
		})
	}
}
