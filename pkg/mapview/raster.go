package mapview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"nearby-places/pkg/geo"
)

const tileSize = 256.0

var (
	backgroundColor = color.RGBA{R: 0xe8, G: 0xea, B: 0xed, A: 0xff}
	gridColor       = color.RGBA{R: 0xd0, G: 0xd4, B: 0xd9, A: 0xff}
	markerColor     = color.RGBA{R: 0xdb, G: 0x44, B: 0x37, A: 0xff}
	labelColor      = color.RGBA{R: 0x20, G: 0x21, B: 0x24, A: 0xff}
)

// Raster draws a map snapshot into an image using Web Mercator projection
// around the snapshot camera.
type Raster struct {
	Width  int
	Height int
	Face   font.Face
	Radius int
}

func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Face:   basicfont.Face7x13,
		Radius: 6,
	}
}

// Project returns the pixel position of p in an image centered on camera.
func (r *Raster) Project(camera Camera, p geo.LatLng) (float64, float64) {
	cx, cy := worldPixel(camera.Center, camera.Zoom)
	px, py := worldPixel(p, camera.Zoom)
	return float64(r.Width)/2 + (px - cx), float64(r.Height)/2 + (py - cy)
}

func worldPixel(p geo.LatLng, zoom float64) (float64, float64) {
	scale := tileSize * math.Pow(2, zoom)
	lat := math.Max(math.Min(p.Lat, 85.05112878), -85.05112878) * math.Pi / 180
	x := (p.Lng + 180) / 360 * scale
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * scale
	return x, y
}

// Render draws the snapshot and reports how many markers fell inside the
// frame.
func (r *Raster) Render(s Snapshot) (*image.RGBA, int) {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	r.drawGrid(img)

	visible := 0
	for _, m := range s.Markers {
		x, y := r.Project(s.Camera, m.Position)
		if x < 0 || y < 0 || x >= float64(r.Width) || y >= float64(r.Height) {
			continue
		}
		visible++
		r.drawPin(img, int(x), int(y))
		r.drawLabel(img, int(x)+r.Radius+2, int(y)+4, m.Title)
	}

	caption := fmt.Sprintf("%s z%g  %d/%d markers", s.Camera.Center, s.Camera.Zoom, visible, len(s.Markers))
	r.drawLabel(img, 4, r.Height-4, caption)
	return img, visible
}

func (r *Raster) WritePNG(w io.Writer, s Snapshot) error {
	img, _ := r.Render(s)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func (r *Raster) drawGrid(img *image.RGBA) {
	const step = 64
	for x := 0; x < r.Width; x += step {
		for y := 0; y < r.Height; y++ {
			img.SetRGBA(x, y, gridColor)
		}
	}
	for y := 0; y < r.Height; y += step {
		for x := 0; x < r.Width; x++ {
			img.SetRGBA(x, y, gridColor)
		}
	}
}

func (r *Raster) drawPin(img *image.RGBA, cx, cy int) {
	rad := r.Radius
	for dy := -rad; dy <= rad; dy++ {
		for dx := -rad; dx <= rad; dx++ {
			if dx*dx+dy*dy <= rad*rad {
				img.SetRGBA(cx+dx, cy+dy, markerColor)
			}
		}
	}
}

func (r *Raster) drawLabel(img *image.RGBA, x, y int, text string) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: r.Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
