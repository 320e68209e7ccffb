package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// pixelatePlaceholder is shown while a pixelate region is still being dragged.
var pixelatePlaceholder = color.RGBA{128, 128, 128, 200}

// Flatten draws annotations over a copy of base at base's native size.
func Flatten(base *image.RGBA, annotations []Annotation) *image.RGBA {
	bounds := base.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, base, bounds.Min, draw.Src)

	for _, a := range annotations {
		Render(result, a)
	}
	return result
}

// Render draws a single annotation onto img.
func Render(img *image.RGBA, a Annotation) {
	switch v := a.(type) {
	case *Rectangle:
		drawRectStroke(img, v.box.Rect(), v.style.Color, v.style.Thickness)
	case *Ellipse:
		renderEllipse(img, v)
	case *Line:
		s, e := v.Start.Image(), v.End.Image()
		drawThickLine(img, s.X, s.Y, e.X, e.Y, v.style.Color, v.style.Thickness)
	case *Arrow:
		renderArrow(img, v)
	case *NumberLabel:
		renderLabel(img, &v.label)
	case *TextLabel:
		renderLabel(img, &v.label)
	case *PixelateRegion:
		renderPixelate(img, v)
	}
}

// ---------- rectangle ----------

func drawRectStroke(img *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	if r.Empty() {
		return
	}
	drawThickLine(img, r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y, c, width)
	drawThickLine(img, r.Min.X, r.Max.Y-1, r.Max.X-1, r.Max.Y-1, c, width)
	drawThickLine(img, r.Min.X, r.Min.Y, r.Min.X, r.Max.Y-1, c, width)
	drawThickLine(img, r.Max.X-1, r.Min.Y, r.Max.X-1, r.Max.Y-1, c, width)
}

// ---------- ellipse ----------

func renderEllipse(img *image.RGBA, e *Ellipse) {
	r := e.box.Rect()
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	rx := (r.Max.X - r.Min.X) / 2
	ry := (r.Max.Y - r.Min.Y) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	strokeEllipse(img, cx, cy, rx, ry, e.style.Color, e.style.Thickness)
}

// strokeEllipse draws an anti-aliased ellipse outline using a distance field.
func strokeEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.RGBA, width int) {
	halfW := float64(width) / 2.0
	if halfW < 0.75 {
		halfW = 0.75
	}
	rxf, ryf := float64(rx), float64(ry)
	cxf, cyf := float64(cx), float64(cy)

	outerRx := rxf + halfW + 1.5
	outerRy := ryf + halfW + 1.5
	innerRx := rxf - halfW - 1.5
	innerRy := ryf - halfW - 1.5

	for py := cy - int(outerRy) - 1; py <= cy+int(outerRy)+1; py++ {
		dyf := float64(py) - cyf
		for px := cx - int(outerRx) - 1; px <= cx+int(outerRx)+1; px++ {
			dxf := float64(px) - cxf

			if (dxf*dxf)/(outerRx*outerRx)+(dyf*dyf)/(outerRy*outerRy) > 1.0 {
				continue
			}
			if innerRx > 0 && innerRy > 0 {
				if (dxf*dxf)/(innerRx*innerRx)+(dyf*dyf)/(innerRy*innerRy) < 1.0 {
					continue
				}
			}

			dist := ellipsePointDist(float64(px), float64(py), cxf, cyf, rxf, ryf)
			renderAAPixel(img, px, py, c, dist, halfW)
		}
	}
}

// ellipsePointDist approximates the distance from a point to the ellipse
// by projecting along the ray from the center.
func ellipsePointDist(px, py, cx, cy, rx, ry float64) float64 {
	dx := (px - cx) / rx
	dy := (py - cy) / ry
	r := math.Hypot(dx, dy)
	if r < 0.001 {
		return math.Min(rx, ry)
	}
	t := 1.0 / r
	ex := cx + rx*dx*t
	ey := cy + ry*dy*t
	return math.Hypot(px-ex, py-ey)
}

// ---------- arrow ----------

func renderArrow(img *image.RGBA, a *Arrow) {
	s, e := a.Start.Image(), a.End.Image()
	drawThickLine(img, s.X, s.Y, e.X, e.Y, a.style.Color, a.style.Thickness)

	l, r := a.Head()
	if math.Hypot(a.End.X-a.Start.X, a.End.Y-a.Start.Y) < 1 {
		return
	}
	drawFilledTriangle(img, e, l.Image(), r.Image(), a.style.Color)
}

// ---------- labels ----------

func renderLabel(img *image.RGBA, l *label) {
	b := l.Bounds()
	fillRect(img, b.Rect(), l.Background)

	face := labelFace(l.Bold, l.FontSize)
	_, _, ascent := MeasureText(l.Text, l.FontSize, l.Bold)
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(l.style.Color),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(math.Round(b.X + LabelPadding))),
			Y: fixed.I(int(math.Round(b.Y + LabelPadding + ascent))),
		},
	}
	d.DrawString(l.Text)
}

// ---------- pixelate ----------

func renderPixelate(img *image.RGBA, p *PixelateRegion) {
	r := p.box.Rect()
	if r.Empty() {
		return
	}
	m := p.Mosaic()
	if m == nil {
		fillRect(img, r, pixelatePlaceholder)
		return
	}
	if m.Bounds().Size() == r.Size() {
		draw.Draw(img, r, m, image.Point{}, draw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(img, r, m, m.Bounds(), draw.Src, nil)
}

// ---------- drawing helpers ----------

// drawThickLine draws an anti-aliased segment with round caps using a
// distance field.
func drawThickLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA, width int) {
	halfW := float64(width) / 2.0
	if halfW < 0.75 {
		halfW = 0.75
	}

	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Hypot(dx, dy)

	if length < 0.5 {
		drawFilledCircleAA(img, float64(x1), float64(y1), halfW, c)
		return
	}

	ux, uy := dx/length, dy/length
	nx, ny := -uy, ux

	margin := int(halfW) + 2
	bx0, bx1 := min(x1, x2)-margin, max(x1, x2)+margin
	by0, by1 := min(y1, y2)-margin, max(y1, y2)+margin

	// Clip the scan to the image.
	b := img.Bounds()
	bx0, by0 = max(bx0, b.Min.X), max(by0, b.Min.Y)
	bx1, by1 = min(bx1, b.Max.X-1), min(by1, b.Max.Y-1)

	x1f, y1f := float64(x1), float64(y1)
	x2f, y2f := float64(x2), float64(y2)

	for py := by0; py <= by1; py++ {
		for px := bx0; px <= bx1; px++ {
			vx := float64(px) - x1f
			vy := float64(py) - y1f
			along := vx*ux + vy*uy

			var dist float64
			switch {
			case along <= 0:
				dist = math.Hypot(vx, vy)
			case along >= length:
				dist = math.Hypot(float64(px)-x2f, float64(py)-y2f)
			default:
				dist = math.Abs(vx*nx + vy*ny)
			}

			renderAAPixel(img, px, py, c, dist, halfW)
		}
	}
}

func renderAAPixel(img *image.RGBA, x, y int, c color.RGBA, dist, halfW float64) {
	if dist > halfW+0.5 {
		return
	}
	if dist <= halfW-0.5 {
		setPixelBlend(img, x, y, c)
		return
	}
	frac := halfW + 0.5 - dist
	setPixelBlend(img, x, y, color.RGBA{c.R, c.G, c.B, uint8(float64(c.A) * frac)})
}

func drawFilledCircleAA(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	ri := int(r) + 2
	cxi, cyi := int(cx), int(cy)
	for py := cyi - ri; py <= cyi+ri; py++ {
		for px := cxi - ri; px <= cxi+ri; px++ {
			dist := math.Hypot(float64(px)-cx, float64(py)-cy)
			renderAAPixel(img, px, py, c, dist, r)
		}
	}
}

// drawFilledTriangle scan-converts the triangle p1 p2 p3.
func drawFilledTriangle(img *image.RGBA, p1, p2, p3 image.Point, c color.RGBA) {
	minY := min(p1.Y, p2.Y, p3.Y)
	maxY := max(p1.Y, p2.Y, p3.Y)

	xs := make([]int, 0, 3)
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		xs = appendEdgeX(xs, y, p1, p2)
		xs = appendEdgeX(xs, y, p2, p3)
		xs = appendEdgeX(xs, y, p3, p1)
		if len(xs) < 2 {
			continue
		}

		xMin, xMax := xs[0], xs[0]
		for _, x := range xs[1:] {
			xMin = min(xMin, x)
			xMax = max(xMax, x)
		}
		for x := xMin; x <= xMax; x++ {
			setPixelBlend(img, x, y, c)
		}
	}
}

// appendEdgeX appends the x where scanline y crosses edge ab.
func appendEdgeX(xs []int, y int, a, b image.Point) []int {
	if a.Y > b.Y {
		a, b = b, a
	}
	if y < a.Y || y > b.Y || a.Y == b.Y {
		return xs
	}
	t := float64(y-a.Y) / float64(b.Y-a.Y)
	x := int(math.Round(float64(a.X) + t*float64(b.X-a.X)))
	return append(xs, x)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			setPixelBlend(img, x, y, c)
		}
	}
}

// setPixelBlend draws c over the pixel at (x, y) with source-over blending.
func setPixelBlend(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if c.A == 0 {
		return
	}

	off := (y-bounds.Min.Y)*img.Stride + (x-bounds.Min.X)*4
	if c.A == 255 {
		img.Pix[off+0] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 255
		return
	}

	srcA := uint32(c.A)
	invA := 255 - srcA
	img.Pix[off+0] = uint8((uint32(c.R)*srcA + uint32(img.Pix[off+0])*invA) / 255)
	img.Pix[off+1] = uint8((uint32(c.G)*srcA + uint32(img.Pix[off+1])*invA) / 255)
	img.Pix[off+2] = uint8((uint32(c.B)*srcA + uint32(img.Pix[off+2])*invA) / 255)
	img.Pix[off+3] = uint8(srcA + uint32(img.Pix[off+3])*invA/255)
}
