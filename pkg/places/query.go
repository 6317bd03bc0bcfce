package places

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"nearby-places/pkg/geo"
)

// DefaultHost serves every Places web service search mode.
const DefaultHost = "https://maps.googleapis.com"

// SearchOption selects the Places search mode.
type SearchOption string

const (
	NearbySearch SearchOption = "nearbysearch"
	TextSearch   SearchOption = "textsearch"
	RadarSearch  SearchOption = "radarsearch"
)

// OutputFormat selects the response encoding of the web service.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatXML  OutputFormat = "xml"
)

// BaseURL returns "<host>/maps/api/place/<option>/<format>".
func BaseURL(host string, option SearchOption, format OutputFormat) string {
	if host == "" {
		host = DefaultHost
	}
	return strings.TrimRight(host, "/") + "/maps/api/place/" + string(option) + "/" + string(format)
}

// NearbySearchURL is the endpoint used for every search.
var NearbySearchURL = BaseURL(DefaultHost, NearbySearch, FormatJSON)

// SearchQuery holds the parameters of one nearby search. It is a value type;
// build a new one per search.
type SearchQuery struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	PlaceType    string
	APIKey       string
	// Language is an optional BCP 47 tag appended after key when set.
	Language string
}

func (q SearchQuery) Location() geo.LatLng {
	return geo.LatLng{Lat: q.Latitude, Lng: q.Longitude}
}

func (q SearchQuery) Validate() error {
	if err := q.Location().Validate(); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}
	if q.RadiusMeters <= 0 {
		return fmt.Errorf("radius must be positive, got %d", q.RadiusMeters)
	}
	if strings.TrimSpace(q.PlaceType) == "" {
		return fmt.Errorf("place type cannot be empty")
	}
	if q.Language != "" {
		if _, err := language.Parse(q.Language); err != nil {
			return fmt.Errorf("invalid language %q: %w", q.Language, err)
		}
	}
	return nil
}

// URL appends the query parameters to base in the order location, radius,
// type, key. The comma inside location is left literal.
func (q SearchQuery) URL(base string) string {
	var b strings.Builder
	b.WriteString(base)
	if strings.Contains(base, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}

	b.WriteString("location=")
	b.WriteString(url.QueryEscape(geo.FormatDegrees(q.Latitude)))
	b.WriteByte(',')
	b.WriteString(url.QueryEscape(geo.FormatDegrees(q.Longitude)))
	b.WriteString("&radius=")
	b.WriteString(strconv.Itoa(q.RadiusMeters))
	b.WriteString("&type=")
	b.WriteString(url.QueryEscape(q.PlaceType))
	b.WriteString("&key=")
	b.WriteString(url.QueryEscape(q.APIKey))

	if q.Language != "" {
		lang := q.Language
		if tag, err := language.Parse(q.Language); err == nil {
			lang = tag.String()
		}
		b.WriteString("&language=")
		b.WriteString(url.QueryEscape(lang))
	}
	return b.String()
}
