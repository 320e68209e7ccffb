package capture

import (
	"errors"
	"fmt"
	"image"
	"time"
)

var (
	ErrNoDisplays     = errors.New("capture: no active displays")
	ErrInvalidMonitor = errors.New("capture: invalid monitor")
	ErrEmptyRegion    = errors.New("capture: empty region")
)

const (
	// HideDelay lets the desktop repaint after the app hides itself,
	// before a full-screen or region capture.
	HideDelay = 200 * time.Millisecond
	// MonitorHideDelay is the same wait before a single-monitor capture.
	MonitorHideDelay = 300 * time.Millisecond
)

// Screen is one monitor in virtual-screen coordinates.
type Screen struct {
	Index   int
	Bounds  image.Rectangle
	Primary bool
}

// Capturer grabs pixels from the screen. Returned images have their
// origin at (0, 0).
type Capturer interface {
	CaptureRegion(r image.Rectangle) (*image.RGBA, error)
	CaptureFullVirtualScreen() (*image.RGBA, error)
	// Screens lists monitors in enumeration order.
	Screens() ([]Screen, error)
}

// VirtualBounds is the smallest rectangle covering every screen.
func VirtualBounds(screens []Screen) image.Rectangle {
	var r image.Rectangle
	for _, s := range screens {
		r = r.Union(s.Bounds)
	}
	return r
}

// CaptureMonitor captures screen n, counted from 1 as in the tray menu.
func CaptureMonitor(c Capturer, n int) (*image.RGBA, error) {
	screens, err := c.Screens()
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(screens) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidMonitor, n, len(screens))
	}
	return c.CaptureRegion(screens[n-1].Bounds)
}

// MonitorLabel is the tray caption for screen s. The primary marker is
// only shown when there is more than one screen.
func MonitorLabel(s Screen, count int) string {
	label := fmt.Sprintf("Capture Monitor %d", s.Index+1)
	if s.Primary && count > 1 {
		label += " (Primary)"
	}
	return label
}

// BytesPerPixel is the RGBA pixel size.
const BytesPerPixel = 4

// CropImage copies r, clamped to img's bounds, into a new image with
// origin (0, 0). An empty intersection yields an empty image.
func CropImage(img *image.RGBA, r image.Rectangle) *image.RGBA {
	r = r.Canon().Intersect(img.Bounds())
	if r.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}

	cropped := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	rowBytes := r.Dx() * BytesPerPixel
	for y := 0; y < r.Dy(); y++ {
		src := img.PixOffset(r.Min.X, r.Min.Y+y)
		dst := y * cropped.Stride
		copy(cropped.Pix[dst:dst+rowBytes], img.Pix[src:src+rowBytes])
	}
	return cropped
}
