package service

import (
	"io"

	"nearby-places/pkg/mapview"
	"nearby-places/pkg/search"
)

// SearchService exposes the startup search.
type SearchService interface {
	Status() search.Status
	Done() <-chan struct{}
}

// MapService exposes the rendered map.
type MapService interface {
	Snapshot() mapview.Snapshot
}

// NotificationService exposes messages shown to the user.
type NotificationService interface {
	Messages() []string
}

// RenderService draws a map snapshot as an image.
type RenderService interface {
	WritePNG(w io.Writer, s mapview.Snapshot) error
}
