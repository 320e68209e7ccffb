package editor

import (
	"errors"
	"image"
	"math"

	"github.com/rs/zerolog"

	"moneyshot/internal/annotate"
	"moneyshot/internal/storage"
)

// ErrUnsupported is returned by Open on platforms without an editor window.
var ErrUnsupported = errors.New("editor: not supported on this platform")

// Dialogs are the modal prompts the editor needs. Each call blocks until
// the user answers.
type Dialogs interface {
	Confirm(title, message string) bool
	PromptText(title string) (text string, ok bool)
	Alert(title, message string)
}

// Saver persists the flattened image.
type Saver interface {
	Save(img image.Image) (storage.Result, error)
	SaveToClipboard(img image.Image) error
}

// Notifier shows non-blocking success messages.
type Notifier interface {
	Show(title, message string) error
}

// Options configure an editor window.
type Options struct {
	Title    string
	Style    annotate.Style
	Saver    Saver
	Notifier Notifier
	Log      zerolog.Logger
}

const (
	// wheelPan is the pan distance of one wheel notch in display pixels.
	wheelPan = 48
	// WheelNotch is the raw wheel rotation of one notch. Precision
	// touchpads report fractions of it.
	WheelNotch = 120
)

// Cursor is the pointer shape the window should show.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorCross
	CursorMove
	CursorSizeNWSE
	CursorSizeNESW
	CursorSizeNS
	CursorSizeWE
)

// Controller routes window input to an annotate.Session. Points passed
// to it are window client coordinates; the toolbar occupies the top
// ToolbarHeight pixels and the canvas is drawn below it, zoomed and
// panned.
type Controller struct {
	session  *annotate.Session
	toolbar  *Toolbar
	dialogs  Dialogs
	saver    Saver
	notifier Notifier
	log      zerolog.Logger

	viewport image.Point
	pan      image.Point

	// wheelRest holds rotation not yet worth a whole notch.
	wheelRest int

	// pointer is set while a canvas gesture is in progress.
	pointer bool
	closed  bool
}

// NewController opens a session over base with the given default style.
func NewController(base *image.RGBA, style annotate.Style, d Dialogs, s Saver, n Notifier, log zerolog.Logger) *Controller {
	c := &Controller{
		session:  annotate.NewSession(base, style),
		toolbar:  NewToolbar(),
		dialogs:  d,
		saver:    s,
		notifier: n,
		log:      log.With().Str("component", "editor").Logger(),
	}
	c.session.SetTextPrompt(func() (string, bool) {
		return c.dialogs.PromptText("Enter text")
	})
	return c
}

func (c *Controller) Session() *annotate.Session { return c.session }
func (c *Controller) Toolbar() *Toolbar           { return c.toolbar }

// Closed reports whether the editor asked to be closed.
func (c *Controller) Closed() bool { return c.closed }

// Close marks the editor closed. Window close buttons land here.
func (c *Controller) Close() { c.closed = true }

// PreferredSize is the client size showing the whole image at the
// current zoom, never narrower than the toolbar.
func (c *Controller) PreferredSize() image.Point {
	d := c.contentSize()
	return image.Pt(max(d.X, c.toolbar.Width()), d.Y+ToolbarHeight)
}

// SetViewport records the client size of the window.
func (c *Controller) SetViewport(size image.Point) {
	c.viewport = size
	c.clampPan()
}

func (c *Controller) Pan() image.Point { return c.pan }

// ---------- coordinates ----------

func (c *Controller) contentSize() image.Point {
	b := c.session.Base().Bounds()
	z := c.session.Zoom()
	return image.Pt(int(math.Ceil(float64(b.Dx())*z)), int(math.Ceil(float64(b.Dy())*z)))
}

// toCanvas maps a client point to canvas-pixel space.
func (c *Controller) toCanvas(p image.Point) annotate.Point {
	d := annotate.Pt(float64(p.X+c.pan.X), float64(p.Y-ToolbarHeight+c.pan.Y))
	return c.session.ToCanvas(d)
}

// toClient maps a canvas point to client coordinates.
func (c *Controller) toClient(p annotate.Point) image.Point {
	d := c.session.ToDisplay(p)
	return image.Pt(int(math.Round(d.X))-c.pan.X, int(math.Round(d.Y))+ToolbarHeight-c.pan.Y)
}

func (c *Controller) clampPan() {
	content := c.contentSize()
	view := image.Pt(c.viewport.X, c.viewport.Y-ToolbarHeight)
	c.pan.X = max(0, min(c.pan.X, content.X-view.X))
	c.pan.Y = max(0, min(c.pan.Y, content.Y-view.Y))
}

// ---------- pointer ----------

func (c *Controller) PointerDown(p image.Point) {
	if c.closed {
		return
	}
	if p.Y < ToolbarHeight {
		if a, ok := c.toolbar.Hit(p); ok {
			c.Do(a)
		}
		return
	}
	c.pointer = true
	c.session.PointerDown(c.toCanvas(p))
}

func (c *Controller) PointerMove(p image.Point) {
	if !c.pointer {
		return
	}
	c.session.PointerMove(c.toCanvas(p))
}

func (c *Controller) PointerUp(p image.Point) {
	if !c.pointer {
		return
	}
	c.pointer = false
	if c.session.PointerUp(c.toCanvas(p)) == annotate.OutcomeConfirmCrop {
		c.confirmCrop()
	}
}

// Cancel abandons the gesture in progress, as a right click does.
func (c *Controller) Cancel() bool {
	c.pointer = false
	return c.session.Cancel()
}

func (c *Controller) confirmCrop() {
	if !c.dialogs.Confirm("Crop", "Crop the image to the selected area?") {
		c.session.DiscardCrop()
		return
	}
	box, _ := c.session.CropRect()
	if err := c.session.CommitCrop(); err != nil {
		c.log.Warn().Err(err).Interface("rect", box).Msg("crop rejected")
		c.dialogs.Alert("Crop", "Could not crop the image: "+err.Error())
		return
	}
	c.pan = image.Point{}
	c.log.Debug().Interface("size", c.session.Base().Bounds().Size()).Msg("cropped")
}

// Wheel handles n wheel notches, positive away from the user. With Ctrl
// it zooms, with Shift it pans horizontally, otherwise vertically.
func (c *Controller) Wheel(notches int, ctrl, shift bool) {
	switch {
	case notches == 0:
	case ctrl && notches > 0:
		c.Do(Action{Cmd: CmdZoomIn})
	case ctrl:
		c.Do(Action{Cmd: CmdZoomOut})
	case shift:
		c.pan.X -= notches * wheelPan
		c.clampPan()
	default:
		c.pan.Y -= notches * wheelPan
		c.clampPan()
	}
}

// WheelDelta accumulates raw rotation and runs Wheel for every whole
// notch. A change of direction drops the remainder.
func (c *Controller) WheelDelta(delta int, ctrl, shift bool) {
	if (delta > 0) != (c.wheelRest > 0) && c.wheelRest != 0 {
		c.wheelRest = 0
	}
	c.wheelRest += delta
	notches := c.wheelRest / WheelNotch
	c.wheelRest -= notches * WheelNotch
	c.Wheel(notches, ctrl, shift)
}

// CursorAt is the pointer shape for client point p.
func (c *Controller) CursorAt(p image.Point) Cursor {
	if p.Y < ToolbarHeight {
		return CursorArrow
	}
	if c.session.Tool() != annotate.ToolCursor {
		return CursorCross
	}
	cp := c.toCanvas(p)
	switch c.session.HandleAt(cp) {
	case annotate.HandleTopLeft, annotate.HandleBottomRight:
		return CursorSizeNWSE
	case annotate.HandleTopRight, annotate.HandleBottomLeft:
		return CursorSizeNESW
	case annotate.HandleTop, annotate.HandleBottom:
		return CursorSizeNS
	case annotate.HandleLeft, annotate.HandleRight:
		return CursorSizeWE
	}
	if c.session.HitTest(cp) != nil {
		return CursorMove
	}
	return CursorArrow
}

// ---------- commands ----------

// Key handles a key press and reports whether it was consumed.
func (c *Controller) Key(ev KeyEvent) bool {
	a, ok := Lookup(ev)
	if !ok {
		return false
	}
	c.Do(a)
	return true
}

// Do runs a command.
func (c *Controller) Do(a Action) {
	s := c.session
	switch a.Cmd {
	case CmdTool:
		c.pointer = false
		s.SetTool(a.Tool)
	case CmdColor:
		if a.Color >= 0 && a.Color < len(annotate.DefaultColors) {
			s.SetColor(annotate.DefaultColors[a.Color])
		}
	case CmdThinner:
		s.SetThickness(s.Style().Thickness - 1)
	case CmdThicker:
		s.SetThickness(s.Style().Thickness + 1)
	case CmdClose:
		if c.Cancel() {
			return
		}
		c.closed = true
	case CmdDelete:
		s.Delete()
	case CmdUndo:
		s.Undo()
	case CmdZoomIn:
		c.zoom(s.ZoomIn)
	case CmdZoomOut:
		c.zoom(s.ZoomOut)
	case CmdZoomReset:
		c.zoom(s.ResetZoom)
	case CmdCopy:
		c.Copy()
	case CmdSave:
		c.Save()
	}
}

// zoom applies f and rescales the pan offset so the top-left canvas
// point stays put.
func (c *Controller) zoom(f func() float64) {
	before := c.session.Zoom()
	after := f()
	if before != after {
		c.pan.X = int(math.Round(float64(c.pan.X) * after / before))
		c.pan.Y = int(math.Round(float64(c.pan.Y) * after / before))
		c.clampPan()
	}
}

// Copy puts the flattened image on the clipboard.
func (c *Controller) Copy() {
	if err := c.saver.SaveToClipboard(c.session.Export()); err != nil {
		c.log.Error().Err(err).Msg("copy failed")
		c.dialogs.Alert("Copy failed", err.Error())
		return
	}
	c.notify("Copied to clipboard")
}

// Save writes the flattened image to the configured destination.
func (c *Controller) Save() {
	res, err := c.saver.Save(c.session.Export())
	if err != nil {
		c.log.Error().Err(err).Msg("save failed")
		c.dialogs.Alert("Save failed", err.Error())
		return
	}
	c.log.Info().Str("path", res.Path).Bool("clipboard", res.Clipboard).Msg("saved")
	c.notify(res.String())
}

func (c *Controller) notify(msg string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Show("MoneyShot", msg); err != nil {
		c.log.Warn().Err(err).Msg("notification failed")
	}
}
