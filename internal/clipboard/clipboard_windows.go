//go:build windows

package clipboard

import (
	"fmt"
	"image"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// System is the Windows clipboard.
type System struct{}

func New() Clipboard { return System{} }

// WriteImage places img on the clipboard as a bitmap.
func (System) WriteImage(img image.Image) error {
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, initErr)
	}

	data, err := encodePNG(img)
	if err != nil {
		return fmt.Errorf("clipboard: encode: %w", err)
	}
	// Write returns a channel that fires when another owner replaces the data.
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
