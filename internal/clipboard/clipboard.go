package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

// ErrUnavailable is returned when the system clipboard cannot be used.
var ErrUnavailable = errors.New("clipboard: unavailable")

// Clipboard writes screenshots to the system clipboard.
type Clipboard interface {
	WriteImage(img image.Image) error
}

// encodePNG is the payload format handed to the clipboard.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
