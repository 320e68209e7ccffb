package annotate

import (
	"image"
	"image/color"
	"math"
)

// Tool is the active editor tool.
type Tool int

const (
	ToolNone Tool = iota
	ToolCursor
	ToolRectangle
	ToolEllipse
	ToolLine
	ToolArrow
	ToolNumber
	ToolText
	ToolPixelate
	ToolCrop
)

// ToolName is the display name of each tool.
var ToolName = map[Tool]string{
	ToolNone:      "None",
	ToolCursor:    "Select",
	ToolRectangle: "Rectangle",
	ToolEllipse:   "Circle",
	ToolLine:      "Line",
	ToolArrow:     "Arrow",
	ToolNumber:    "Number",
	ToolText:      "Text",
	ToolPixelate:  "Blur",
	ToolCrop:      "Crop",
}

func (t Tool) String() string {
	if n, ok := ToolName[t]; ok {
		return n
	}
	return "Unknown"
}

// Kind is the variant of an annotation.
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
	KindLine
	KindArrow
	KindNumber
	KindText
	KindPixelate
)

// kindForTool maps drawing tools to the annotation they create.
var kindForTool = map[Tool]Kind{
	ToolRectangle: KindRectangle,
	ToolEllipse:   KindEllipse,
	ToolLine:      KindLine,
	ToolArrow:     KindArrow,
	ToolNumber:    KindNumber,
	ToolText:      KindText,
	ToolPixelate:  KindPixelate,
}

// IsDrawing reports whether t creates annotations.
func (t Tool) IsDrawing() bool {
	_, ok := kindForTool[t]
	return ok
}

const (
	// MinResize is the smallest width or height a resize can produce.
	MinResize = 10.0
	// HitTolerance is the distance within which a line counts as hit.
	HitTolerance = 10.0
	// ArrowPenWidth is the pen used for arrow containment tests.
	ArrowPenWidth = 10.0
	// PixelBlock is the edge length of a pixelation block.
	PixelBlock = 10
	// CropMinSize must be exceeded by both crop dimensions to ask for confirmation.
	CropMinSize = 10.0
	// HandleHitSize is the half-extent of a handle hit box in display pixels.
	HandleHitSize = 6.0

	MinZoom  = 0.25
	MaxZoom  = 4.0
	ZoomStep = 0.25

	MinThickness     = 1
	MaxThickness     = 20
	DefaultThickness = 3
)

// Point is a position in canvas-pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Image rounds p to the nearest pixel.
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// Box is an axis-aligned rectangle given by its top-left corner and size.
type Box struct {
	X, Y, W, H float64
}

// BoxFromPoints returns the normalized box spanned by two corners.
func BoxFromPoints(a, b Point) Box {
	return Box{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(a.X - b.X),
		H: math.Abs(a.Y - b.Y),
	}
}

func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Bottom() float64 { return b.Y + b.H }

// Area is W*H.
func (b Box) Area() float64 { return b.W * b.H }

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom()
}

// Translate returns b moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Rect rounds b to whole pixels.
func (b Box) Rect() image.Rectangle {
	x0 := int(math.Round(b.X))
	y0 := int(math.Round(b.Y))
	x1 := int(math.Round(b.Right()))
	y1 := int(math.Round(b.Bottom()))
	return image.Rect(x0, y0, x1, y1)
}

// Style is the stroke style applied to new annotations.
type Style struct {
	Color     color.RGBA
	Thickness int
}

// DefaultColors is the editor palette. Red is the default.
var DefaultColors = []color.RGBA{
	{255, 0, 0, 255},     // red
	{0, 180, 0, 255},     // green
	{0, 120, 255, 255},   // blue
	{255, 200, 0, 255},   // yellow
	{255, 128, 0, 255},   // orange
	{180, 0, 255, 255},   // purple
	{0, 0, 0, 255},       // black
	{255, 255, 255, 255}, // white
}

// DefaultStyle is red at the default thickness.
func DefaultStyle() Style {
	return Style{Color: DefaultColors[0], Thickness: DefaultThickness}
}

// ClampThickness limits t to [MinThickness, MaxThickness].
func ClampThickness(t int) int {
	if t < MinThickness {
		return MinThickness
	}
	if t > MaxThickness {
		return MaxThickness
	}
	return t
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
