package annotate

import (
	"image"
	"image/color"
	"math"
	"strings"
)

// State is the interaction state of a Session.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateDragging
	StateResizing
	StateCropping
)

var stateName = [...]string{"Idle", "Drawing", "Dragging", "Resizing", "Cropping"}

func (s State) String() string {
	if int(s) < len(stateName) {
		return stateName[s]
	}
	return "Unknown"
}

// Outcome tells the caller what a pointer-up requires from it.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeConfirmCrop asks the caller to confirm or discard the crop rectangle.
	OutcomeConfirmCrop
)

// TextPrompt asks the user for label text. ok is false when cancelled.
type TextPrompt func() (text string, ok bool)

// Session owns the annotations, undo stack and interaction state of one
// editor. All methods must be called from the UI thread.
type Session struct {
	base  *image.RGBA
	tool  Tool
	style Style
	zoom  float64

	anns     []Annotation
	undo     *UndoStack
	selected int
	state    State

	live Annotation

	lastPt Point

	resizeHandle Handle
	resizeStart  Point
	resizeOrig   Annotation

	crop        *Box
	cropStart   Point
	cropPending bool

	nextID     int
	nextNumber int

	prompt TextPrompt
}

// NewSession starts a session over base with the Cursor tool selected.
func NewSession(base *image.RGBA, style Style) *Session {
	style.Thickness = ClampThickness(style.Thickness)
	return &Session{
		base:       base,
		tool:       ToolCursor,
		style:      style,
		zoom:       1,
		undo:       NewUndoStack(),
		nextID:     1,
		nextNumber: 1,
	}
}

// SetTextPrompt installs the text entry used by the Text tool.
func (s *Session) SetTextPrompt(p TextPrompt) { s.prompt = p }

// Base is the current base image.
func (s *Session) Base() *image.RGBA { return s.base }

// Annotations returns the annotations in z-order, bottom first.
func (s *Session) Annotations() []Annotation {
	out := make([]Annotation, len(s.anns))
	copy(out, s.anns)
	return out
}

func (s *Session) State() State { return s.state }
func (s *Session) Tool() Tool   { return s.tool }
func (s *Session) Style() Style { return s.style }

// NextNumber is the value the next number label will show.
func (s *Session) NextNumber() int { return s.nextNumber }

// UndoDepth is the number of entries on the undo stack.
func (s *Session) UndoDepth() int { return s.undo.Len() }

// CanUndo reports whether Undo would remove an annotation.
func (s *Session) CanUndo() bool { return s.undo.CanUndo() }

// SetTool switches tools, abandoning any gesture in progress.
// Leaving the Cursor tool clears the selection.
func (s *Session) SetTool(t Tool) {
	s.Cancel()
	if t != ToolCursor {
		s.selected = 0
	}
	if t != ToolCrop {
		s.crop = nil
		s.cropPending = false
	}
	s.tool = t
}

// SetColor changes the stroke color for new annotations and recolors the
// selection.
func (s *Session) SetColor(c color.RGBA) {
	s.style.Color = c
	if sel := s.Selected(); sel != nil {
		sel.SetColor(c)
	}
}

// SetThickness changes the stroke width for new annotations.
func (s *Session) SetThickness(t int) {
	s.style.Thickness = ClampThickness(t)
}

// ---------- zoom ----------

func (s *Session) Zoom() float64 { return s.zoom }

// SetZoom clamps z to [MinZoom, MaxZoom] and returns the applied value.
func (s *Session) SetZoom(z float64) float64 {
	s.zoom = ClampZoom(z)
	return s.zoom
}

func (s *Session) ZoomIn() float64 {
	return s.SetZoom(math.Round(s.zoom/ZoomStep)*ZoomStep + ZoomStep)
}

func (s *Session) ZoomOut() float64 {
	return s.SetZoom(math.Round(s.zoom/ZoomStep)*ZoomStep - ZoomStep)
}

func (s *Session) ResetZoom() float64 { return s.SetZoom(1) }

// ToCanvas converts a point on the zoomed display to canvas space.
func (s *Session) ToCanvas(display Point) Point {
	return Point{X: display.X / s.zoom, Y: display.Y / s.zoom}
}

// ToDisplay converts a canvas point to the zoomed display.
func (s *Session) ToDisplay(p Point) Point {
	return Point{X: p.X * s.zoom, Y: p.Y * s.zoom}
}

// ---------- selection ----------

// Selected returns the selected annotation or nil.
func (s *Session) Selected() Annotation {
	if s.selected == 0 {
		return nil
	}
	_, a := s.find(s.selected)
	return a
}

// HitTest returns the top-most annotation containing p, or nil.
func (s *Session) HitTest(p Point) Annotation {
	for i := len(s.anns) - 1; i >= 0; i-- {
		if s.anns[i].HitTest(p) {
			return s.anns[i]
		}
	}
	return nil
}

// HandleAt returns the selection handle under p.
func (s *Session) HandleAt(p Point) Handle {
	sel := s.Selected()
	if sel == nil {
		return HandleNone
	}
	return HandleAt(sel.Bounds(), p, HandleHitSize/s.zoom)
}

// CropRect returns the crop rectangle being drawn or awaiting confirmation.
func (s *Session) CropRect() (Box, bool) {
	if s.crop == nil {
		return Box{}, false
	}
	return *s.crop, true
}

// CropPending reports whether a crop awaits CommitCrop or DiscardCrop.
func (s *Session) CropPending() bool { return s.cropPending }

// ---------- pointer events ----------

// PointerDown starts a gesture at canvas point p.
func (s *Session) PointerDown(p Point) {
	if s.state != StateIdle || s.cropPending {
		return
	}

	switch {
	case s.tool == ToolCursor:
		s.beginSelect(p)
	case s.tool == ToolCrop:
		s.crop = &Box{X: p.X, Y: p.Y}
		s.cropStart = p
		s.state = StateCropping
	case s.tool == ToolNumber:
		n := newNumberLabel(s.allocID(), p, s.style, s.nextNumber)
		s.nextNumber++
		s.commit(n)
	case s.tool == ToolText:
		s.commit(newTextLabel(s.allocID(), p, s.style, s.promptText()))
	case s.tool.IsDrawing():
		a := newAnnotation(kindForTool[s.tool], s.allocID(), p, s.style)
		s.anns = append(s.anns, a)
		s.live = a
		s.state = StateDrawing
	}
}

func (s *Session) beginSelect(p Point) {
	if sel := s.Selected(); sel != nil {
		if h := s.HandleAt(p); h != HandleNone {
			s.state = StateResizing
			s.resizeHandle = h
			s.resizeStart = p
			s.resizeOrig = sel.Clone()
			return
		}
	}
	if a := s.HitTest(p); a != nil {
		s.selected = a.ID()
		s.state = StateDragging
		s.lastPt = p
		return
	}
	s.selected = 0
}

// PointerMove updates the gesture in progress.
func (s *Session) PointerMove(p Point) {
	switch s.state {
	case StateDrawing:
		if e, ok := s.live.(Extender); ok {
			e.Extend(p)
		}
	case StateDragging:
		if sel := s.Selected(); sel != nil {
			sel.Move(p.X-s.lastPt.X, p.Y-s.lastPt.Y)
		}
		s.lastPt = p
	case StateResizing:
		fresh := s.resizeOrig.Clone()
		fresh.Resize(s.resizeHandle, p.X-s.resizeStart.X, p.Y-s.resizeStart.Y)
		if i, _ := s.find(fresh.ID()); i >= 0 {
			s.anns[i] = fresh
		}
	case StateCropping:
		b := BoxFromPoints(s.cropStart, p)
		s.crop = &b
	}
}

// PointerUp completes the gesture in progress.
func (s *Session) PointerUp(p Point) Outcome {
	s.PointerMove(p)
	prev := s.state
	s.state = StateIdle

	switch prev {
	case StateDrawing:
		if b, ok := s.live.(Baker); ok {
			b.Bake(s.base)
		}
		s.undo.Push(s.live.ID())
		s.live = nil
	case StateResizing:
		s.resizeOrig = nil
	case StateCropping:
		if s.crop != nil && s.crop.W > CropMinSize && s.crop.H > CropMinSize {
			s.cropPending = true
			return OutcomeConfirmCrop
		}
		s.crop = nil
	}
	return OutcomeNone
}

// Cancel abandons the gesture in progress and reports whether there was
// one. A drawn shape is removed, a resize is reverted and a crop
// rectangle is dropped.
func (s *Session) Cancel() bool {
	switch s.state {
	case StateDrawing:
		s.remove(s.live.ID())
		s.live = nil
	case StateResizing:
		if i, _ := s.find(s.resizeOrig.ID()); i >= 0 {
			s.anns[i] = s.resizeOrig
		}
		s.resizeOrig = nil
	case StateCropping:
		s.crop = nil
	case StateDragging:
	default:
		if s.cropPending {
			s.DiscardCrop()
			return true
		}
		return false
	}
	s.state = StateIdle
	return true
}

// ---------- commands ----------

// Delete removes the selected annotation. It does not touch the undo
// stack, so a later undo of that annotation's creation has nothing to
// remove.
func (s *Session) Delete() bool {
	if s.selected == 0 || s.state != StateIdle {
		return false
	}
	ok := s.remove(s.selected)
	s.selected = 0
	return ok
}

// Undo pops the most recent creation and removes that annotation if it
// is still on the canvas. It reports whether anything was removed.
func (s *Session) Undo() bool {
	if s.state != StateIdle {
		return false
	}
	id, ok := s.undo.Pop()
	if !ok {
		return false
	}
	if s.selected == id {
		s.selected = 0
	}
	return s.remove(id)
}

// Export flattens the base image and annotations at native resolution.
// The display zoom has no effect on the result.
func (s *Session) Export() *image.RGBA {
	return Flatten(s.base, s.anns)
}

// ---------- internals ----------

func (s *Session) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Session) commit(a Annotation) {
	s.anns = append(s.anns, a)
	s.undo.Push(a.ID())
}

func (s *Session) promptText() string {
	if s.prompt == nil {
		return DefaultLabelText
	}
	text, ok := s.prompt()
	if !ok || strings.TrimSpace(text) == "" {
		return DefaultLabelText
	}
	return text
}

func (s *Session) find(id int) (int, Annotation) {
	for i, a := range s.anns {
		if a.ID() == id {
			return i, a
		}
	}
	return -1, nil
}

func (s *Session) remove(id int) bool {
	i, _ := s.find(id)
	if i < 0 {
		return false
	}
	s.anns = append(s.anns[:i], s.anns[i+1:]...)
	return true
}
