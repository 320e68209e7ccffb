package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"moneyshot/internal/annotate"
)

// ---------- toolbar layout ----------

const (
	ToolbarHeight = 36

	buttonHeight  = 28
	buttonMinW    = 28
	buttonGap     = 4
	separatorW    = 12
	toolbarPad    = 4
	swatchSize    = 20
	charWidth     = 7 // basicfont.Face7x13
	labelPaddingX = 10
)

var (
	colorToolbarBg  = color.RGBA{58, 58, 60, 255}
	colorButtonBg   = color.RGBA{76, 76, 78, 255}
	colorAccent     = color.RGBA{10, 132, 255, 255}
	colorIcon       = color.RGBA{224, 224, 224, 255}
	colorIconOff    = color.RGBA{120, 120, 122, 255}
	colorCanvasBg   = color.RGBA{32, 32, 32, 255}
	colorHandleFill = color.RGBA{255, 255, 255, 255}
)

// Button is one toolbar entry. Color buttons have an empty label and
// are drawn as a swatch.
type Button struct {
	Rect   image.Rectangle
	Label  string
	Action Action
}

// Toolbar is the single row of buttons above the canvas.
type Toolbar struct {
	buttons []Button
	width   int
}

type buttonSpec struct {
	label  string
	action Action
}

// toolbarLayout lists the buttons left to right. A zero spec is a separator.
func toolbarLayout() []buttonSpec {
	specs := []buttonSpec{
		{"Select", toolAction(annotate.ToolCursor)},
		{"Rect", toolAction(annotate.ToolRectangle)},
		{"Circle", toolAction(annotate.ToolEllipse)},
		{"Line", toolAction(annotate.ToolLine)},
		{"Arrow", toolAction(annotate.ToolArrow)},
		{"1", toolAction(annotate.ToolNumber)},
		{"Text", toolAction(annotate.ToolText)},
		{"Blur", toolAction(annotate.ToolPixelate)},
		{"Crop", toolAction(annotate.ToolCrop)},
		{},
	}
	for i := range annotate.DefaultColors {
		specs = append(specs, buttonSpec{action: Action{Cmd: CmdColor, Color: i}})
	}
	return append(specs,
		buttonSpec{},
		buttonSpec{"-", Action{Cmd: CmdThinner}},
		buttonSpec{"+", Action{Cmd: CmdThicker}},
		buttonSpec{},
		buttonSpec{"Zoom-", Action{Cmd: CmdZoomOut}},
		buttonSpec{"100%", Action{Cmd: CmdZoomReset}},
		buttonSpec{"Zoom+", Action{Cmd: CmdZoomIn}},
		buttonSpec{},
		buttonSpec{"Undo", Action{Cmd: CmdUndo}},
		buttonSpec{"Copy", Action{Cmd: CmdCopy}},
		buttonSpec{"Save", Action{Cmd: CmdSave}},
	)
}

func NewToolbar() *Toolbar {
	t := &Toolbar{}
	x := toolbarPad
	y := (ToolbarHeight - buttonHeight) / 2
	for _, spec := range toolbarLayout() {
		if spec.action.Cmd == CmdNone {
			x += separatorW - buttonGap
			continue
		}
		w := buttonMinW
		if spec.label != "" {
			w = max(w, len(spec.label)*charWidth+labelPaddingX)
		}
		t.buttons = append(t.buttons, Button{
			Rect:   image.Rect(x, y, x+w, y+buttonHeight),
			Label:  spec.label,
			Action: spec.action,
		})
		x += w + buttonGap
	}
	t.width = x - buttonGap + toolbarPad
	return t
}

func (t *Toolbar) Buttons() []Button { return t.buttons }
func (t *Toolbar) Width() int         { return t.width }

// Hit returns the action of the button under p.
func (t *Toolbar) Hit(p image.Point) (Action, bool) {
	for _, b := range t.buttons {
		if p.In(b.Rect) {
			return b.Action, true
		}
	}
	return Action{}, false
}

// active reports whether b reflects the current tool or color.
func active(b Button, s *annotate.Session) bool {
	switch b.Action.Cmd {
	case CmdTool:
		return b.Action.Tool == s.Tool()
	case CmdColor:
		return annotate.DefaultColors[b.Action.Color] == s.Style().Color
	}
	return false
}

// enabled reports whether pressing b would do anything. Disabled
// buttons are drawn greyed out.
func enabled(b Button, s *annotate.Session) bool {
	if b.Action.Cmd == CmdUndo {
		return s.CanUndo()
	}
	return true
}

// ---------- frame ----------

// Render draws the complete window frame into dst: the zoomed canvas,
// selection and crop overlays, then the toolbar.
func (c *Controller) Render(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colorCanvasBg), image.Point{}, draw.Src)

	canvasArea := image.Rect(0, ToolbarHeight, dst.Bounds().Dx(), dst.Bounds().Dy())
	if !canvasArea.Empty() {
		canvas := dst.SubImage(canvasArea).(*image.RGBA)
		c.renderCanvas(canvas)
		c.renderSelection(canvas)
		c.renderCrop(canvas)
	}
	c.renderToolbar(dst)
}

func (c *Controller) renderCanvas(dst *image.RGBA) {
	flat := annotate.Flatten(c.session.Base(), c.session.Annotations())
	size := c.contentSize()
	origin := image.Pt(-c.pan.X, ToolbarHeight-c.pan.Y)
	dr := image.Rectangle{Min: origin, Max: origin.Add(size)}

	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if c.session.Zoom() < 1 {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(dst, dr, flat, flat.Bounds(), xdraw.Src, nil)
}

func (c *Controller) renderSelection(dst *image.RGBA) {
	sel := c.session.Selected()
	if sel == nil {
		return
	}
	b := sel.Bounds()
	r := image.Rectangle{
		Min: c.toClient(annotate.Pt(b.X, b.Y)),
		Max: c.toClient(annotate.Pt(b.Right(), b.Bottom())),
	}
	dashedRect(dst, r, colorAccent, colorHandleFill)

	h := int(annotate.HandleHitSize) - 2
	for _, p := range annotate.HandlePoints(b) {
		cp := c.toClient(p)
		box := image.Rect(cp.X-h, cp.Y-h, cp.X+h+1, cp.Y+h+1)
		draw.Draw(dst, box.Intersect(dst.Bounds()), image.NewUniform(colorAccent), image.Point{}, draw.Src)
		draw.Draw(dst, box.Inset(1).Intersect(dst.Bounds()), image.NewUniform(colorHandleFill), image.Point{}, draw.Src)
	}
}

func (c *Controller) renderCrop(dst *image.RGBA) {
	box, ok := c.session.CropRect()
	if !ok {
		return
	}
	r := image.Rectangle{
		Min: c.toClient(annotate.Pt(box.X, box.Y)),
		Max: c.toClient(annotate.Pt(box.Right(), box.Bottom())),
	}
	dashedRect(dst, r, color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
}

// dashedRect outlines r with alternating 4 px dashes of a and b.
func dashedRect(dst *image.RGBA, r image.Rectangle, a, b color.RGBA) {
	r = r.Canon()
	pick := func(i int) color.RGBA {
		if (i/4)%2 == 0 {
			return a
		}
		return b
	}
	clip := dst.Bounds()
	set := func(x, y int, c color.RGBA) {
		if image.Pt(x, y).In(clip) {
			dst.SetRGBA(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y, pick(x-r.Min.X))
		set(x, r.Max.Y-1, pick(x-r.Min.X))
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y, pick(y-r.Min.Y))
		set(r.Max.X-1, y, pick(y-r.Min.Y))
	}
}

func (c *Controller) renderToolbar(dst *image.RGBA) {
	bar := image.Rect(0, 0, dst.Bounds().Dx(), ToolbarHeight).Intersect(dst.Bounds())
	draw.Draw(dst, bar, image.NewUniform(colorToolbarBg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(colorIcon), Face: basicfont.Face7x13}
	for _, b := range c.toolbar.buttons {
		bg := colorButtonBg
		if active(b, c.session) {
			bg = colorAccent
		}
		draw.Draw(dst, b.Rect, image.NewUniform(bg), image.Point{}, draw.Src)

		if b.Action.Cmd == CmdColor {
			sw := image.Rect(0, 0, swatchSize, swatchSize).
				Add(b.Rect.Min).
				Add(image.Pt((b.Rect.Dx()-swatchSize)/2, (b.Rect.Dy()-swatchSize)/2))
			draw.Draw(dst, sw, image.NewUniform(annotate.DefaultColors[b.Action.Color]), image.Point{}, draw.Src)
			continue
		}

		d.Src = image.NewUniform(colorIcon)
		if !enabled(b, c.session) {
			d.Src = image.NewUniform(colorIconOff)
		}
		w := d.MeasureString(b.Label).Ceil()
		d.Dot = fixed.P(b.Rect.Min.X+(b.Rect.Dx()-w)/2, b.Rect.Min.Y+(b.Rect.Dy()+basicfont.Face7x13.Ascent-3)/2)
		d.DrawString(b.Label)
	}

	// Status text after the last button.
	if n := len(c.toolbar.buttons); n > 0 {
		last := c.toolbar.buttons[n-1].Rect
		d.Src = image.NewUniform(colorIcon)
		d.Dot = fixed.P(last.Max.X+separatorW, last.Min.Y+(last.Dy()+basicfont.Face7x13.Ascent-3)/2)
		d.DrawString(c.status())
	}
}

func (c *Controller) status() string {
	st := c.session.Style()
	return fmt.Sprintf("%s  %dpx  %.0f%%", c.session.Tool(), st.Thickness, c.session.Zoom()*100)
}

// ---------- pixel format ----------

// ToBGRA writes src as top-down BGRA rows into dst, which must hold
// width*height*4 bytes.
func ToBGRA(dst []byte, src *image.RGBA) {
	b := src.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		out := dst[y*w*4:]
		for x := 0; x < w; x++ {
			i := x * 4
			out[i+0], out[i+1], out[i+2], out[i+3] = row[i+2], row[i+1], row[i+0], 255
		}
	}
}
