package annotate

import "math"

// Handle identifies one of the eight resize handles of a selection.
// Order is clockwise from the top-left corner.
type Handle int

const (
	HandleNone Handle = iota - 1
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// HandleCount is the number of resize handles.
const HandleCount = 8

// movesLeft reports whether dragging h moves the left edge.
func (h Handle) movesLeft() bool {
	return h == HandleTopLeft || h == HandleBottomLeft || h == HandleLeft
}

func (h Handle) movesRight() bool {
	return h == HandleTopRight || h == HandleBottomRight || h == HandleRight
}

func (h Handle) movesTop() bool {
	return h == HandleTopLeft || h == HandleTop || h == HandleTopRight
}

func (h Handle) movesBottom() bool {
	return h == HandleBottomLeft || h == HandleBottom || h == HandleBottomRight
}

// HandlePoints returns the centers of the eight handles of b, indexed by Handle.
func HandlePoints(b Box) [HandleCount]Point {
	midX := b.X + b.W/2
	midY := b.Y + b.H/2
	return [HandleCount]Point{
		{b.X, b.Y},
		{midX, b.Y},
		{b.Right(), b.Y},
		{b.Right(), midY},
		{b.Right(), b.Bottom()},
		{midX, b.Bottom()},
		{b.X, b.Bottom()},
		{b.X, midY},
	}
}

// HandleAt returns the handle of b whose hit square (half-extent r) contains p.
func HandleAt(b Box, p Point, r float64) Handle {
	for i, h := range HandlePoints(b) {
		if math.Abs(p.X-h.X) <= r && math.Abs(p.Y-h.Y) <= r {
			return Handle(i)
		}
	}
	return HandleNone
}

// ResizeBox applies a total drag delta for handle h to the original box.
// Each dimension is floored at MinResize with the opposite side anchored.
func ResizeBox(orig Box, h Handle, dx, dy float64) Box {
	left, top := orig.X, orig.Y
	right, bottom := orig.Right(), orig.Bottom()

	if h.movesLeft() {
		left += dx
	}
	if h.movesRight() {
		right += dx
	}
	if h.movesTop() {
		top += dy
	}
	if h.movesBottom() {
		bottom += dy
	}

	if right-left < MinResize {
		if h.movesLeft() {
			left = right - MinResize
		} else {
			right = left + MinResize
		}
	}
	if bottom-top < MinResize {
		if h.movesTop() {
			top = bottom - MinResize
		} else {
			bottom = top + MinResize
		}
	}
	return Box{X: left, Y: top, W: right - left, H: bottom - top}
}

// DistToSegment is the distance from p to the segment ab, with the
// projection clamped to the segment.
func DistToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	px := a.X + t*dx
	py := a.Y + t*dy
	return math.Hypot(p.X-px, p.Y-py)
}

const (
	arrowHeadAngle  = math.Pi / 6
	arrowHeadMaxLen = 20.0
)

// ArrowHead returns the two back corners of the arrowhead for a shaft
// from start to end. The head length is min(20, len/3).
func ArrowHead(start, end Point) (left, right Point) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	theta := math.Atan2(dy, dx)
	headLen := math.Min(arrowHeadMaxLen, math.Hypot(dx, dy)/3)

	left = Point{
		X: end.X - headLen*math.Cos(theta-arrowHeadAngle),
		Y: end.Y - headLen*math.Sin(theta-arrowHeadAngle),
	}
	right = Point{
		X: end.X - headLen*math.Cos(theta+arrowHeadAngle),
		Y: end.Y - headLen*math.Sin(theta+arrowHeadAngle),
	}
	return left, right
}

// inTriangle reports whether p lies inside or on the triangle abc.
func inTriangle(p, a, b, c Point) bool {
	d1 := cross(p, a, b)
	d2 := cross(p, b, c)
	d3 := cross(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross(p, a, b Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// boundsOf returns the bounding box of pts.
func boundsOf(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// mapPoint carries p from box from into box to. An axis with zero
// extent in from is left unchanged.
func mapPoint(p Point, from, to Box) Point {
	if from.W > 0 {
		p.X = to.X + (p.X-from.X)*to.W/from.W
	}
	if from.H > 0 {
		p.Y = to.Y + (p.Y-from.Y)*to.H/from.H
	}
	return p
}
