package annotate

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFlattenRectangle(t *testing.T) {
	base := solid(60, 60, white)
	r := newAnnotation(KindRectangle, 1, Pt(10, 10), Style{Color: red, Thickness: 3})
	r.(Extender).Extend(Pt(50, 50))

	out := Flatten(base, []Annotation{r})

	assert.Equal(t, red, out.RGBAAt(30, 10))
	assert.Equal(t, red, out.RGBAAt(10, 30))
	assert.Equal(t, white, out.RGBAAt(30, 30))
	assert.Equal(t, white, base.RGBAAt(30, 10), "base must not be modified")
}

func TestFlattenKeepsOrder(t *testing.T) {
	blue := color.RGBA{0, 0, 255, 255}
	base := solid(40, 40, white)

	a := newAnnotation(KindLine, 1, Pt(0, 20), Style{Color: red, Thickness: 5})
	a.(Extender).Extend(Pt(39, 20))
	b := newAnnotation(KindLine, 2, Pt(20, 0), Style{Color: blue, Thickness: 5})
	b.(Extender).Extend(Pt(20, 39))

	out := Flatten(base, []Annotation{a, b})
	assert.Equal(t, blue, out.RGBAAt(20, 20))

	out = Flatten(base, []Annotation{b, a})
	assert.Equal(t, red, out.RGBAAt(20, 20))
}

func TestRenderLabelBackground(t *testing.T) {
	base := solid(80, 80, color.RGBA{0, 0, 0, 255})
	n := newNumberLabel(1, Pt(10, 10), DefaultStyle(), 1)

	out := Flatten(base, []Annotation{n})

	// Inside the padding, away from the glyph.
	assert.Equal(t, white, out.RGBAAt(11, 11))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(5, 5))
}

func TestRenderPixelatePlaceholder(t *testing.T) {
	base := solid(40, 40, white)
	p := newAnnotation(KindPixelate, 1, Pt(0, 0), DefaultStyle()).(*PixelateRegion)
	p.Extend(Pt(20, 20))

	out := Flatten(base, []Annotation{p})
	px := out.RGBAAt(5, 5)
	assert.Less(t, px.R, uint8(255))
	assert.Equal(t, px.R, px.G)

	p.Bake(gradient(40, 40))
	out = Flatten(base, []Annotation{p})
	assert.Equal(t, gradient(40, 40).RGBAAt(5, 5), out.RGBAAt(5, 5))
}

func TestRenderPixelateScalesAfterResize(t *testing.T) {
	src := gradient(40, 40)
	p := newAnnotation(KindPixelate, 1, Pt(0, 0), DefaultStyle()).(*PixelateRegion)
	p.Extend(Pt(20, 20))
	p.Bake(src)

	p.Resize(HandleBottomRight, 20, 20)
	out := Flatten(solid(40, 40, white), []Annotation{p})

	// The first block doubles in size.
	assert.Equal(t, src.RGBAAt(5, 5), out.RGBAAt(19, 19))
	assert.Equal(t, src.RGBAAt(15, 15), out.RGBAAt(21, 21))
}
