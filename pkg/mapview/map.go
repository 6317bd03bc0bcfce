package mapview

import (
	"sync"

	"nearby-places/pkg/geo"
)

// Map keeps rendered state in memory. Readers may take snapshots while a
// search renders.
type Map struct {
	mu      sync.RWMutex
	markers []Marker
	camera  Camera
	moved   bool
	zoomed  bool
}

func NewMap() *Map {
	return &Map{}
}

func (m *Map) AddMarker(position geo.LatLng, title string) {
	m.mu.Lock()
	m.markers = append(m.markers, Marker{Position: position, Title: title})
	m.mu.Unlock()
}

func (m *Map) MoveCamera(position geo.LatLng) {
	m.mu.Lock()
	m.camera.Center = position
	m.moved = true
	m.mu.Unlock()
}

func (m *Map) SetZoom(level float64) {
	m.mu.Lock()
	m.camera.Zoom = level
	m.zoomed = true
	m.mu.Unlock()
}

// Snapshot is a copy of the map state.
type Snapshot struct {
	Markers []Marker `json:"markers"`
	Camera  Camera   `json:"camera"`
	// Positioned is false until both the camera and zoom were set.
	Positioned bool `json:"positioned"`
}

func (m *Map) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	markers := make([]Marker, len(m.markers))
	copy(markers, m.markers)
	return Snapshot{
		Markers:    markers,
		Camera:     m.camera,
		Positioned: m.moved && m.zoomed,
	}
}

func (m *Map) Clear() {
	m.mu.Lock()
	m.markers = nil
	m.camera = Camera{}
	m.moved = false
	m.zoomed = false
	m.mu.Unlock()
}
