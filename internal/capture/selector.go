package capture

import "image"

// MinSelection is the size a drag must exceed on both axes to count.
const MinSelection = 10

// Selector lets the user drag a rectangle over a frozen screenshot.
type Selector interface {
	// SelectRegion shows frozen full screen and returns the chosen
	// rectangle in frozen's coordinates. ok is false when the user
	// cancelled or the drag was too small.
	SelectRegion(frozen *image.RGBA) (r image.Rectangle, ok bool, err error)
}

// ResolveSelection normalizes a drag from start to end and clamps it
// into frozen. Drags not larger than MinSelection on both axes are
// rejected.
func ResolveSelection(start, end image.Point, frozen image.Rectangle) (image.Rectangle, bool) {
	r := image.Rectangle{Min: start, Max: end}.Canon()
	if r.Dx() <= MinSelection || r.Dy() <= MinSelection {
		return image.Rectangle{}, false
	}
	r = r.Intersect(frozen)
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

// ---------- overlay ----------

const (
	crosshairArm = 15
	crosshairGap = 3
	borderWidth  = 3
)

// Overlay composes the selector frame in BGRA, the layout of a 32-bit
// top-down DIB.
type Overlay struct {
	width, height int
	dark, bright  []byte
}

// NewOverlay precomputes the dimmed and full-brightness copies of bg.
func NewOverlay(bg *image.RGBA) *Overlay {
	b := bg.Bounds()
	o := &Overlay{
		width:  b.Dx(),
		height: b.Dy(),
		dark:   make([]byte, b.Dx()*b.Dy()*4),
		bright: make([]byte, b.Dx()*b.Dy()*4),
	}
	for y := 0; y < o.height; y++ {
		for x := 0; x < o.width; x++ {
			c := bg.RGBAAt(b.Min.X+x, b.Min.Y+y)
			i := (y*o.width + x) * 4
			o.dark[i+0], o.dark[i+1], o.dark[i+2], o.dark[i+3] = c.B/2, c.G/2, c.R/2, 255
			o.bright[i+0], o.bright[i+1], o.bright[i+2], o.bright[i+3] = c.B, c.G, c.R, 255
		}
	}
	return o
}

func (o *Overlay) Size() image.Point { return image.Pt(o.width, o.height) }

// Render fills pixels (width*height*4 bytes) with the dimmed screenshot,
// the selection at full brightness with a green border, and a crosshair
// at mouse. An empty sel dims everything.
func (o *Overlay) Render(pixels []byte, sel image.Rectangle, mouse image.Point) {
	copy(pixels, o.dark)

	sel = sel.Canon()
	clip := sel.Intersect(image.Rect(0, 0, o.width, o.height))
	if !clip.Empty() {
		for y := clip.Min.Y; y < clip.Max.Y; y++ {
			start := (y*o.width + clip.Min.X) * 4
			end := (y*o.width + clip.Max.X) * 4
			copy(pixels[start:end], o.bright[start:end])
		}
		o.drawBorder(pixels, sel)
	}
	o.drawCrosshair(pixels, mouse)
}

func (o *Overlay) set(pixels []byte, x, y int, b, g, r byte) {
	if x < 0 || x >= o.width || y < 0 || y >= o.height {
		return
	}
	i := (y*o.width + x) * 4
	pixels[i+0], pixels[i+1], pixels[i+2] = b, g, r
}

func (o *Overlay) drawBorder(pixels []byte, sel image.Rectangle) {
	for t := 0; t < borderWidth; t++ {
		for x := sel.Min.X; x < sel.Max.X; x++ {
			o.set(pixels, x, sel.Min.Y+t, 0, 200, 0)
			o.set(pixels, x, sel.Max.Y-1-t, 0, 200, 0)
		}
		for y := sel.Min.Y; y < sel.Max.Y; y++ {
			o.set(pixels, sel.Min.X+t, y, 0, 200, 0)
			o.set(pixels, sel.Max.X-1-t, y, 0, 200, 0)
		}
	}
}

// drawCrosshair draws four red arms with a white outline, leaving a gap
// at the center.
func (o *Overlay) drawCrosshair(pixels []byte, m image.Point) {
	if m.X < 0 || m.X >= o.width || m.Y < 0 || m.Y >= o.height {
		return
	}
	for d := crosshairGap; d <= crosshairGap+crosshairArm; d++ {
		for _, p := range []image.Point{{m.X, m.Y - d}, {m.X, m.Y + d}} {
			o.set(pixels, p.X-1, p.Y, 255, 255, 255)
			o.set(pixels, p.X+1, p.Y, 255, 255, 255)
			o.set(pixels, p.X, p.Y, 0, 0, 255)
		}
		for _, p := range []image.Point{{m.X - d, m.Y}, {m.X + d, m.Y}} {
			o.set(pixels, p.X, p.Y-1, 255, 255, 255)
			o.set(pixels, p.X, p.Y+1, 255, 255, 255)
			o.set(pixels, p.X, p.Y, 0, 0, 255)
		}
	}
}
