//go:build !windows

package capture

import (
	"errors"
	"image"
)

// ErrNoSelector is returned where no interactive selector exists.
var ErrNoSelector = errors.New("capture: region selection not supported on this platform")

type unsupportedSelector struct{}

func NewSelector() Selector { return unsupportedSelector{} }

func (unsupportedSelector) SelectRegion(*image.RGBA) (image.Rectangle, bool, error) {
	return image.Rectangle{}, false, ErrNoSelector
}
