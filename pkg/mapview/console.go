package mapview

import (
	"fmt"
	"io"

	"nearby-places/pkg/geo"
)

// Console prints every rendering call as one line. It also acts as a
// Notifier.
type Console struct {
	out    io.Writer
	count  int
	center *geo.LatLng
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// WithOrigin makes AddMarker lines include the distance from origin.
func (c *Console) WithOrigin(origin geo.LatLng) *Console {
	c.center = &origin
	return c
}

func (c *Console) AddMarker(position geo.LatLng, title string) {
	c.count++
	if c.center != nil {
		fmt.Fprintf(c.out, "marker %d: %s @ %s (%.0f m)\n", c.count, title, position, geo.DistanceMeters(*c.center, position))
		return
	}
	fmt.Fprintf(c.out, "marker %d: %s @ %s\n", c.count, title, position)
}

func (c *Console) MoveCamera(position geo.LatLng) {
	fmt.Fprintf(c.out, "camera: %s\n", position)
}

func (c *Console) SetZoom(level float64) {
	fmt.Fprintf(c.out, "zoom: %g\n", level)
}

func (c *Console) NotifyUser(message string) {
	fmt.Fprintf(c.out, "!! %s\n", message)
}
