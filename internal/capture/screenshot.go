package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Screenshot captures through the platform screen APIs.
type Screenshot struct{}

func NewCapturer() Capturer { return Screenshot{} }

func (Screenshot) Screens() ([]Screen, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoDisplays
	}
	screens := make([]Screen, n)
	for i := range screens {
		b := screenshot.GetDisplayBounds(i)
		// The primary monitor holds the virtual-screen origin.
		screens[i] = Screen{Index: i, Bounds: b, Primary: b.Min == image.Point{}}
	}
	return screens, nil
}

func (Screenshot) CaptureRegion(r image.Rectangle) (*image.RGBA, error) {
	r = r.Canon()
	if r.Empty() {
		return nil, ErrEmptyRegion
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	img.Rect = img.Rect.Sub(img.Rect.Min)
	return img, nil
}

func (s Screenshot) CaptureFullVirtualScreen() (*image.RGBA, error) {
	screens, err := s.Screens()
	if err != nil {
		return nil, err
	}
	return s.CaptureRegion(VirtualBounds(screens))
}
