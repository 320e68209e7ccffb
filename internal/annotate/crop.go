package annotate

import (
	"errors"
	"image"
	"image/draw"
)

var (
	ErrNoPendingCrop   = errors.New("annotate: no crop awaiting confirmation")
	ErrCropTooSmall    = errors.New("annotate: crop rectangle too small")
	ErrCropOutOfBounds = errors.New("annotate: crop rectangle outside the image")
)

// CommitCrop replaces the base image with the pending crop rectangle,
// clears every annotation and the undo stack, restarts label numbering
// at 1 and returns to the Cursor tool. On error the crop is discarded
// and the session is otherwise unchanged.
func (s *Session) CommitCrop() error {
	if !s.cropPending || s.crop == nil {
		return ErrNoPendingCrop
	}
	box := *s.crop
	s.DiscardCrop()

	// The threshold applies to the part that lies on the image.
	r := box.Rect().Intersect(s.base.Bounds())
	if r.Empty() {
		return ErrCropOutOfBounds
	}
	if r.Dx() <= CropMinSize || r.Dy() <= CropMinSize {
		return ErrCropTooSmall
	}

	s.base = cropRGBA(s.base, r)
	s.anns = nil
	s.undo.Clear()
	s.selected = 0
	s.live = nil
	s.nextNumber = 1
	s.tool = ToolCursor
	return nil
}

// DiscardCrop drops the crop rectangle.
func (s *Session) DiscardCrop() {
	s.crop = nil
	s.cropPending = false
}

// cropRGBA copies r out of src into a new image with origin (0, 0).
func cropRGBA(src *image.RGBA, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}
