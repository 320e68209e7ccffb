package annotate

import (
	"image"
	"image/color"
)

// PixelateRegion hides the area under it with a mosaic sampled from the
// unannotated base image. The mosaic is taken once, on Bake, and then
// travels with the region.
type PixelateRegion struct {
	boxShape
	mosaic *image.RGBA
}

func (r *PixelateRegion) Kind() Kind { return KindPixelate }

// SetColor is ignored: the region has no stroke color.
func (r *PixelateRegion) SetColor(color.RGBA) {}

// Bake samples the mosaic for the current box from src.
func (r *PixelateRegion) Bake(src image.Image) {
	r.mosaic = Pixelate(src, r.box.Rect(), PixelBlock)
}

func (r *PixelateRegion) Baked() bool { return r.mosaic != nil }

// Mosaic returns the baked blocks, origin at (0, 0), or nil before Bake.
func (r *PixelateRegion) Mosaic() *image.RGBA { return r.mosaic }

func (r *PixelateRegion) Clone() Annotation {
	c := *r
	return &c
}

// Pixelate partitions area into block x block tiles, truncating the tiles
// on the right and bottom edges, and fills each tile with the src pixel
// at the tile center clamped to src bounds. The result has area's size
// with its origin at (0, 0).
func Pixelate(src image.Image, area image.Rectangle, block int) *image.RGBA {
	if block <= 0 {
		block = PixelBlock
	}
	area = area.Canon()
	out := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	sb := src.Bounds()
	if sb.Empty() {
		return out
	}
	rgba, fast := src.(*image.RGBA)

	for by := area.Min.Y; by < area.Max.Y; by += block {
		by1 := min(by+block, area.Max.Y)
		for bx := area.Min.X; bx < area.Max.X; bx += block {
			bx1 := min(bx+block, area.Max.X)

			sx := clampInt((bx+bx1)/2, sb.Min.X, sb.Max.X-1)
			sy := clampInt((by+by1)/2, sb.Min.Y, sb.Max.Y-1)
			var c color.RGBA
			if fast {
				c = rgba.RGBAAt(sx, sy)
			} else {
				c = color.RGBAModel.Convert(src.At(sx, sy)).(color.RGBA)
			}

			for y := by; y < by1; y++ {
				off := (y-area.Min.Y)*out.Stride + (bx-area.Min.X)*4
				for x := bx; x < bx1; x++ {
					out.Pix[off+0] = c.R
					out.Pix[off+1] = c.G
					out.Pix[off+2] = c.B
					out.Pix[off+3] = c.A
					off += 4
				}
			}
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
