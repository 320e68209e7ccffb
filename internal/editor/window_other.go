//go:build !windows

package editor

import "image"

// Open is only implemented on Windows.
func Open(img *image.RGBA, opts Options) error {
	return ErrUnsupported
}
