package places

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place/nearbysearch/json", NearbySearchURL)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place/textsearch/xml", BaseURL("", TextSearch, FormatXML))
	assert.Equal(t, "http://127.0.0.1:8080/maps/api/place/radarsearch/json", BaseURL("http://127.0.0.1:8080/", RadarSearch, FormatJSON))
}

func TestSearchQuery_URLParameterOrder(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  string
	}{
		{
			name:  "defaults",
			query: SearchQuery{Latitude: 18.55, Longitude: 73.94, RadiusMeters: 10000, PlaceType: "Hospitality", APIKey: "abc"},
			want:  "location=18.55,73.94&radius=10000&type=Hospitality&key=abc",
		},
		{
			name:  "negative coordinates",
			query: SearchQuery{Latitude: -33.8670522, Longitude: -151.1957362, RadiusMeters: 1500, PlaceType: "restaurant", APIKey: "AIza-xyz_1"},
			want:  "location=-33.8670522,-151.1957362&radius=1500&type=restaurant&key=AIza-xyz_1",
		},
		{
			name:  "integral coordinates",
			query: SearchQuery{Latitude: 1, Longitude: 2, RadiusMeters: 5, PlaceType: "cafe", APIKey: "k"},
			want:  "location=1,2&radius=5&type=cafe&key=k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.URL(NearbySearchURL)
			assert.Equal(t, NearbySearchURL+"?"+tt.want, got)
		})
	}
}

func TestSearchQuery_URLEachParameterOnce(t *testing.T) {
	q := SearchQuery{Latitude: 10.5, Longitude: -20.25, RadiusMeters: 300, PlaceType: "gas_station", APIKey: "secret"}

	u, err := url.Parse(q.URL(NearbySearchURL))
	require.NoError(t, err)

	values := u.Query()
	for _, name := range []string{"location", "radius", "type", "key"} {
		assert.Len(t, values[name], 1, name)
	}
	assert.Equal(t, "10.5,-20.25", values.Get("location"))
	assert.Equal(t, "300", values.Get("radius"))
	assert.Equal(t, "gas_station", values.Get("type"))
	assert.Equal(t, "secret", values.Get("key"))
	assert.Len(t, values, 4)
}

func TestSearchQuery_URLEscapesValues(t *testing.T) {
	q := SearchQuery{Latitude: 1, Longitude: 2, RadiusMeters: 5, PlaceType: "night club&x=1", APIKey: "a/b+c"}

	u, err := url.Parse(q.URL(NearbySearchURL))
	require.NoError(t, err)

	assert.Equal(t, "night club&x=1", u.Query().Get("type"))
	assert.Equal(t, "a/b+c", u.Query().Get("key"))
	assert.Empty(t, u.Query().Get("x"))
}

func TestSearchQuery_URLLanguageAfterKey(t *testing.T) {
	q := SearchQuery{Latitude: 1, Longitude: 2, RadiusMeters: 5, PlaceType: "cafe", APIKey: "k", Language: "pt-br"}

	got := q.URL(NearbySearchURL)

	assert.True(t, strings.HasSuffix(got, "&key=k&language=pt-BR"), got)
}

func TestSearchQuery_Validate(t *testing.T) {
	valid := SearchQuery{Latitude: 18.55, Longitude: 73.94, RadiusMeters: 10000, PlaceType: "Hospitality"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(q *SearchQuery)
	}{
		{"latitude out of range", func(q *SearchQuery) { q.Latitude = 91 }},
		{"longitude out of range", func(q *SearchQuery) { q.Longitude = -181 }},
		{"zero radius", func(q *SearchQuery) { q.RadiusMeters = 0 }},
		{"blank type", func(q *SearchQuery) { q.PlaceType = "  " }},
		{"bad language", func(q *SearchQuery) { q.Language = "not a tag" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			assert.Error(t, q.Validate())
		})
	}
}
