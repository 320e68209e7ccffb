package annotate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxFromPointsNormalizes(t *testing.T) {
	b := BoxFromPoints(Pt(300, 250), Pt(100, 100))
	assert.Equal(t, Box{X: 100, Y: 100, W: 200, H: 150}, b)
}

func TestResizeBox(t *testing.T) {
	orig := Box{X: 100, Y: 100, W: 200, H: 150}

	tests := []struct {
		name   string
		handle Handle
		dx, dy float64
		want   Box
	}{
		{"bottom right grows", HandleBottomRight, 20, 30, Box{100, 100, 220, 180}},
		{"bottom right floors", HandleBottomRight, -250, 20, Box{100, 100, 10, 170}},
		{"top left shrinks", HandleTopLeft, 20, 30, Box{120, 130, 180, 120}},
		{"top left floors with anchor", HandleTopLeft, 195, 149, Box{290, 240, 10, 10}},
		{"top edge only moves top", HandleTop, 50, -20, Box{100, 80, 200, 170}},
		{"right edge only moves right", HandleRight, -40, 99, Box{100, 100, 160, 150}},
		{"bottom left", HandleBottomLeft, -10, 10, Box{90, 100, 210, 160}},
		{"left floors", HandleLeft, 500, 0, Box{290, 100, 10, 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResizeBox(orig, tt.handle, tt.dx, tt.dy))
		})
	}
}

func TestHandleAt(t *testing.T) {
	b := Box{X: 100, Y: 100, W: 200, H: 150}

	assert.Equal(t, HandleTopLeft, HandleAt(b, Pt(102, 98), 6))
	assert.Equal(t, HandleTop, HandleAt(b, Pt(200, 100), 6))
	assert.Equal(t, HandleRight, HandleAt(b, Pt(300, 175), 6))
	assert.Equal(t, HandleBottomRight, HandleAt(b, Pt(305, 255), 6))
	assert.Equal(t, HandleLeft, HandleAt(b, Pt(100, 175), 6))
	assert.Equal(t, HandleNone, HandleAt(b, Pt(200, 175), 6))
}

func TestDistToSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)

	assert.InDelta(t, 5.0, DistToSegment(Pt(5, 5), a, b), 1e-9)
	assert.InDelta(t, 5.0, DistToSegment(Pt(13, 4), a, b), 1e-9)
	assert.InDelta(t, 5.0, DistToSegment(Pt(-3, -4), a, b), 1e-9)
	assert.InDelta(t, 5.0, DistToSegment(Pt(3, 4), a, a), 1e-9)
}

func TestArrowHead(t *testing.T) {
	l, r := ArrowHead(Pt(0, 0), Pt(100, 0))
	assert.InDelta(t, 100-20*math.Cos(math.Pi/6), l.X, 1e-9)
	assert.InDelta(t, 10, l.Y, 1e-9)
	assert.InDelta(t, 100-20*math.Cos(math.Pi/6), r.X, 1e-9)
	assert.InDelta(t, -10, r.Y, 1e-9)

	// Short shafts use a third of the length.
	l, _ = ArrowHead(Pt(0, 0), Pt(30, 0))
	assert.InDelta(t, 10, math.Hypot(30-l.X, l.Y), 1e-9)
}

func TestMapPointKeepsDegenerateAxis(t *testing.T) {
	from := Box{X: 0, Y: 50, W: 100, H: 0}
	to := Box{X: 0, Y: 40, W: 200, H: 10}

	p := mapPoint(Pt(50, 50), from, to)
	assert.Equal(t, Pt(100, 50), p)
}
