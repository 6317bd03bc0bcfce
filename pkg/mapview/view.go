// Package mapview defines the rendering and notification boundaries of a
// search and ships a few implementations of them.
package mapview

import (
	"nearby-places/pkg/geo"
)

// View is the map surface a search renders into.
type View interface {
	AddMarker(position geo.LatLng, title string)
	MoveCamera(position geo.LatLng)
	SetZoom(level float64)
}

// Notifier surfaces messages to the user.
type Notifier interface {
	NotifyUser(message string)
}

// Camera is the viewport applied after markers are placed.
type Camera struct {
	Center geo.LatLng `json:"center" mapstructure:"center"`
	Zoom   float64    `json:"zoom" mapstructure:"zoom"`
}

// Default viewport: Pune, zoom 15.
const (
	DefaultLatitude  = 18.55
	DefaultLongitude = 73.94
	DefaultZoom      = 15.0
	MinZoom          = 0.0
	MaxZoom          = 21.0
)

func DefaultCamera() Camera {
	return Camera{
		Center: geo.LatLng{Lat: DefaultLatitude, Lng: DefaultLongitude},
		Zoom:   DefaultZoom,
	}
}

// Marker is a labeled pin.
type Marker struct {
	Position geo.LatLng `json:"position"`
	Title    string     `json:"title"`
}

// Multi fans every call out to several views in order.
type Multi []View

func (m Multi) AddMarker(position geo.LatLng, title string) {
	for _, v := range m {
		v.AddMarker(position, title)
	}
}

func (m Multi) MoveCamera(position geo.LatLng) {
	for _, v := range m {
		v.MoveCamera(position)
	}
}

func (m Multi) SetZoom(level float64) {
	for _, v := range m {
		v.SetZoom(level)
	}
}
