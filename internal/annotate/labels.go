package annotate

import (
	"image/color"
	"math"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	NumberFontSize = 20.0
	TextFontSize   = 16.0
	LabelPadding   = 5.0
	// DefaultLabelText is used when text entry is cancelled or blank.
	DefaultLabelText = "Text"

	minLabelFontSize = 6.0
)

var (
	numberBackground = color.RGBA{255, 255, 255, 255}
	textBackground   = color.RGBA{255, 255, 255, 200}
)

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	faceCache   sync.Map
)

type faceKey struct {
	bold bool
	size float64
}

func loadFonts() {
	fontsOnce.Do(func() {
		regularFont, _ = opentype.Parse(goregular.TTF)
		boldFont, _ = opentype.Parse(gobold.TTF)
	})
}

// labelFace returns a cached face for the given weight and pixel size.
func labelFace(bold bool, size float64) font.Face {
	key := faceKey{bold: bold, size: math.Round(size*4) / 4}
	if f, ok := faceCache.Load(key); ok {
		return f.(font.Face)
	}
	loadFonts()
	src := regularFont
	if bold {
		src = boldFont
	}
	if src == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	actual, _ := faceCache.LoadOrStore(key, face)
	return actual.(font.Face)
}

// MeasureText returns the advance width, line height and ascent of text.
func MeasureText(text string, size float64, bold bool) (w, h, ascent float64) {
	face := labelFace(bold, size)
	m := face.Metrics()
	w = float64(font.MeasureString(face, text).Ceil())
	ascent = float64(m.Ascent.Ceil())
	h = ascent + float64(m.Descent.Ceil())
	return w, h, ascent
}

// label is a text block with a padded background.
type label struct {
	base
	Pos        Point
	Text       string
	FontSize   float64
	Bold       bool
	Background color.RGBA
}

func (l *label) Bounds() Box {
	w, h, _ := MeasureText(l.Text, l.FontSize, l.Bold)
	return Box{X: l.Pos.X, Y: l.Pos.Y, W: w + 2*LabelPadding, H: h + 2*LabelPadding}
}

func (l *label) HitTest(p Point) bool { return l.Bounds().Contains(p) }

func (l *label) Move(dx, dy float64) { l.Pos = l.Pos.Add(dx, dy) }

// Resize scales the font so the label height follows the dragged box,
// keeping the edges opposite the handle in place.
func (l *label) Resize(h Handle, dx, dy float64) {
	from := l.Bounds()
	to := ResizeBox(from, h, dx, dy)
	if from.H > 0 && (h.movesTop() || h.movesBottom()) {
		l.FontSize = math.Max(minLabelFontSize, l.FontSize*to.H/from.H)
	} else if from.W > 0 {
		l.FontSize = math.Max(minLabelFontSize, l.FontSize*to.W/from.W)
	}
	got := l.Bounds()
	l.Pos.X = to.X
	if h.movesLeft() {
		l.Pos.X = from.Right() - got.W
	}
	l.Pos.Y = to.Y
	if h.movesTop() {
		l.Pos.Y = from.Bottom() - got.H
	}
}

// NumberLabel shows a running integer in bold on a white background.
type NumberLabel struct {
	label
	Number int
}

func newNumberLabel(id int, p Point, style Style, n int) *NumberLabel {
	return &NumberLabel{
		label: label{
			base:       base{id: id, style: style},
			Pos:        p,
			Text:       strconv.Itoa(n),
			FontSize:   NumberFontSize,
			Bold:       true,
			Background: numberBackground,
		},
		Number: n,
	}
}

func (n *NumberLabel) Kind() Kind { return KindNumber }

func (n *NumberLabel) Clone() Annotation {
	c := *n
	return &c
}

// TextLabel is free text on a translucent white background.
type TextLabel struct {
	label
}

func newTextLabel(id int, p Point, style Style, text string) *TextLabel {
	return &TextLabel{label{
		base:       base{id: id, style: style},
		Pos:        p,
		Text:       text,
		FontSize:   TextFontSize,
		Background: textBackground,
	}}
}

func (t *TextLabel) Kind() Kind { return KindText }

func (t *TextLabel) Clone() Annotation {
	c := *t
	return &c
}
