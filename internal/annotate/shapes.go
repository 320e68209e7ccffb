package annotate

import (
	"image"
	"image/color"
)

// Annotation is one overlay object on the captured image. Coordinates
// are in canvas-pixel space.
type Annotation interface {
	ID() int
	Kind() Kind
	Bounds() Box
	HitTest(p Point) bool
	Move(dx, dy float64)
	// Resize applies a total delta for handle h to the current geometry.
	// Callers apply it to a clone of the shape taken at resize start.
	Resize(h Handle, dx, dy float64)
	Color() color.RGBA
	SetColor(c color.RGBA)
	Clone() Annotation
}

// Extender is implemented by annotations shaped by a drag gesture.
type Extender interface {
	// Extend moves the far corner or endpoint to p.
	Extend(p Point)
}

// Baker is implemented by annotations whose content is sampled from the
// base image once the gesture completes.
type Baker interface {
	Bake(src image.Image)
	Baked() bool
}

type base struct {
	id    int
	style Style
}

func (b *base) ID() int               { return b.id }
func (b *base) Color() color.RGBA     { return b.style.Color }
func (b *base) SetColor(c color.RGBA) { b.style.Color = c }

// ---------- box shapes ----------

type boxShape struct {
	base
	anchor Point
	box    Box
}

func (s *boxShape) Bounds() Box { return s.box }

func (s *boxShape) HitTest(p Point) bool { return s.box.Contains(p) }

func (s *boxShape) Extend(p Point) { s.box = BoxFromPoints(s.anchor, p) }

func (s *boxShape) Move(dx, dy float64) {
	s.anchor = s.anchor.Add(dx, dy)
	s.box = s.box.Translate(dx, dy)
}

func (s *boxShape) Resize(h Handle, dx, dy float64) {
	s.box = ResizeBox(s.box, h, dx, dy)
}

// Rectangle is a stroked, unfilled rectangle.
type Rectangle struct {
	boxShape
}

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Clone() Annotation {
	c := *r
	return &c
}

// Ellipse is a stroked ellipse inscribed in its box. Hit-testing uses
// the bounding box, not the ellipse equation.
type Ellipse struct {
	boxShape
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

func (e *Ellipse) Clone() Annotation {
	c := *e
	return &c
}

// ---------- segments ----------

type segment struct {
	base
	Start, End Point
}

func (s *segment) Extend(p Point) { s.End = p }

func (s *segment) Move(dx, dy float64) {
	s.Start = s.Start.Add(dx, dy)
	s.End = s.End.Add(dx, dy)
}

func (s *segment) resizeWithin(from Box, h Handle, dx, dy float64) {
	to := ResizeBox(from, h, dx, dy)
	s.Start = mapPoint(s.Start, from, to)
	s.End = mapPoint(s.End, from, to)
}

// Line is a straight stroked segment.
type Line struct {
	segment
}

func (l *Line) Kind() Kind  { return KindLine }
func (l *Line) Bounds() Box { return boundsOf(l.Start, l.End) }

func (l *Line) HitTest(p Point) bool {
	return DistToSegment(p, l.Start, l.End) <= HitTolerance
}

func (l *Line) Resize(h Handle, dx, dy float64) { l.resizeWithin(l.Bounds(), h, dx, dy) }

func (l *Line) Clone() Annotation {
	c := *l
	return &c
}

// Arrow is a shaft with a filled isosceles head at End.
type Arrow struct {
	segment
}

func (a *Arrow) Kind() Kind { return KindArrow }

// Head returns the two back corners of the arrowhead.
func (a *Arrow) Head() (left, right Point) { return ArrowHead(a.Start, a.End) }

func (a *Arrow) Bounds() Box {
	l, r := a.Head()
	return boundsOf(a.Start, a.End, l, r)
}

// HitTest checks the head polygon and the shaft and head outline
// stroked with a pen of ArrowPenWidth.
func (a *Arrow) HitTest(p Point) bool {
	l, r := a.Head()
	if inTriangle(p, a.End, l, r) {
		return true
	}
	tol := ArrowPenWidth / 2
	return DistToSegment(p, a.Start, a.End) <= tol ||
		DistToSegment(p, a.End, l) <= tol ||
		DistToSegment(p, l, r) <= tol ||
		DistToSegment(p, r, a.End) <= tol
}

func (a *Arrow) Resize(h Handle, dx, dy float64) { a.resizeWithin(a.Bounds(), h, dx, dy) }

func (a *Arrow) Clone() Annotation {
	c := *a
	return &c
}

// newAnnotation builds the annotation for kind at p with zero extent.
// Labels are handled by newNumberLabel and newTextLabel.
func newAnnotation(kind Kind, id int, p Point, style Style) Annotation {
	b := base{id: id, style: style}
	switch kind {
	case KindRectangle:
		return &Rectangle{boxShape{base: b, anchor: p, box: Box{X: p.X, Y: p.Y}}}
	case KindEllipse:
		return &Ellipse{boxShape{base: b, anchor: p, box: Box{X: p.X, Y: p.Y}}}
	case KindLine:
		return &Line{segment{base: b, Start: p, End: p}}
	case KindArrow:
		return &Arrow{segment{base: b, Start: p, End: p}}
	case KindPixelate:
		return &PixelateRegion{boxShape: boxShape{base: b, anchor: p, box: Box{X: p.X, Y: p.Y}}}
	}
	return nil
}
