package editor

import (
	"errors"
	"image"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyshot/internal/annotate"
	"moneyshot/internal/storage"
)

type fakeDialogs struct {
	confirm bool
	text    string
	textOK  bool

	confirms int
	prompts  int
	alerts   []string
}

func (d *fakeDialogs) Confirm(title, message string) bool {
	d.confirms++
	return d.confirm
}

func (d *fakeDialogs) PromptText(title string) (string, bool) {
	d.prompts++
	return d.text, d.textOK
}

func (d *fakeDialogs) Alert(title, message string) {
	d.alerts = append(d.alerts, title+": "+message)
}

type fakeSaver struct {
	res     storage.Result
	err     error
	clipErr error

	saved  image.Image
	copied image.Image
}

func (s *fakeSaver) Save(img image.Image) (storage.Result, error) {
	if s.err != nil {
		return storage.Result{}, s.err
	}
	s.saved = img
	return s.res, nil
}

func (s *fakeSaver) SaveToClipboard(img image.Image) error {
	if s.clipErr != nil {
		return s.clipErr
	}
	s.copied = img
	return nil
}

type fakeNotifier struct{ msgs []string }

func (n *fakeNotifier) Show(title, message string) error {
	n.msgs = append(n.msgs, message)
	return nil
}

type harness struct {
	c       *Controller
	dialogs *fakeDialogs
	saver   *fakeSaver
	notes   *fakeNotifier
}

func newHarness(w, h int) *harness {
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range base.Pix {
		base.Pix[i] = 255
	}
	hs := &harness{dialogs: &fakeDialogs{}, saver: &fakeSaver{}, notes: &fakeNotifier{}}
	hs.c = NewController(base, annotate.DefaultStyle(), hs.dialogs, hs.saver, hs.notes, zerolog.Nop())
	hs.c.SetViewport(hs.c.PreferredSize())
	return hs
}

// client converts a canvas point at zoom 1 without pan to a window point.
func client(x, y int) image.Point { return image.Pt(x, y+ToolbarHeight) }

func (hs *harness) drag(from, to image.Point) {
	hs.c.PointerDown(from)
	hs.c.PointerMove(from.Add(to).Div(2))
	hs.c.PointerUp(to)
}

func TestControllerDrawsInCanvasSpace(t *testing.T) {
	hs := newHarness(800, 600)
	require.True(t, hs.c.Key(KeyEvent{Key: 'R'}))

	hs.drag(client(100, 100), client(300, 250))

	anns := hs.c.Session().Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, annotate.Box{X: 100, Y: 100, W: 200, H: 150}, anns[0].Bounds())
}

func TestControllerHonorsZoomAndPan(t *testing.T) {
	hs := newHarness(400, 300)
	hs.c.Session().SetZoom(2)
	hs.c.SetViewport(image.Pt(400, 300+ToolbarHeight))
	hs.c.Wheel(-2, false, false)
	assert.Equal(t, image.Pt(0, 2*wheelPan), hs.c.Pan())

	hs.c.Do(toolAction(annotate.ToolRectangle))
	hs.drag(client(40, 20), client(240, 220))

	anns := hs.c.Session().Annotations()
	require.Len(t, anns, 1)
	want := annotate.Box{X: 20, Y: 10 + wheelPan, W: 100, H: 100}
	assert.Equal(t, want, anns[0].Bounds())
}

func TestControllerPanIsClamped(t *testing.T) {
	hs := newHarness(400, 300)
	hs.c.Wheel(-10, false, false)
	assert.Equal(t, image.Point{}, hs.c.Pan(), "content fits the viewport")

	hs.c.SetViewport(image.Pt(100, 100+ToolbarHeight))
	hs.c.Wheel(-100, false, true)
	hs.c.Wheel(-100, false, false)
	assert.Equal(t, image.Pt(300, 200), hs.c.Pan())
}

func TestControllerCtrlWheelZooms(t *testing.T) {
	hs := newHarness(100, 100)
	hs.c.Wheel(1, true, false)
	assert.Equal(t, 1.25, hs.c.Session().Zoom())
	hs.c.Wheel(-1, true, false)
	hs.c.Wheel(-1, true, false)
	assert.Equal(t, 0.75, hs.c.Session().Zoom())
}

func TestControllerWheelDeltaAccumulates(t *testing.T) {
	hs := newHarness(400, 300)
	hs.c.SetViewport(image.Pt(100, 100+ToolbarHeight))

	for i := 0; i < 3; i++ {
		hs.c.WheelDelta(-30, false, false)
	}
	assert.Equal(t, image.Point{}, hs.c.Pan(), "less than one notch")
	hs.c.WheelDelta(-30, false, false)
	assert.Equal(t, image.Pt(0, wheelPan), hs.c.Pan())

	hs.c.WheelDelta(-60, false, false)
	hs.c.WheelDelta(40, false, false)
	hs.c.WheelDelta(-60, false, false)
	assert.Equal(t, image.Pt(0, wheelPan), hs.c.Pan(), "reversing drops the remainder")

	hs.c.WheelDelta(2*WheelNotch, false, false)
	assert.Equal(t, image.Point{}, hs.c.Pan())
}

func TestControllerWheelDeltaZoomsOnTouchpad(t *testing.T) {
	hs := newHarness(100, 100)
	for i := 0; i < 4; i++ {
		hs.c.WheelDelta(30, true, false)
	}
	assert.Equal(t, 1.25, hs.c.Session().Zoom())
}

func TestControllerToolbarClick(t *testing.T) {
	hs := newHarness(800, 600)
	var rect Button
	for _, b := range hs.c.Toolbar().Buttons() {
		if b.Action == toolAction(annotate.ToolRectangle) {
			rect = b
		}
	}
	require.False(t, rect.Rect.Empty())

	center := rect.Rect.Min.Add(rect.Rect.Size().Div(2))
	hs.c.PointerDown(center)
	hs.c.PointerUp(center)

	assert.Equal(t, annotate.ToolRectangle, hs.c.Session().Tool())
	assert.Equal(t, annotate.StateIdle, hs.c.Session().State())
	assert.Empty(t, hs.c.Session().Annotations())
}

func TestControllerEscapeCancelsThenCloses(t *testing.T) {
	hs := newHarness(800, 600)
	hs.c.Key(KeyEvent{Key: 'L'})
	hs.c.PointerDown(client(10, 10))
	hs.c.PointerMove(client(50, 50))

	hs.c.Key(KeyEvent{Key: KeyEscape})
	assert.False(t, hs.c.Closed())
	assert.Empty(t, hs.c.Session().Annotations())

	hs.c.PointerUp(client(60, 60))
	assert.Empty(t, hs.c.Session().Annotations(), "pointer-up after cancel is ignored")

	hs.c.Key(KeyEvent{Key: KeyEscape})
	assert.True(t, hs.c.Closed())
}

func TestControllerCropConfirmed(t *testing.T) {
	hs := newHarness(400, 300)
	hs.dialogs.confirm = true
	hs.c.Key(KeyEvent{Key: '1'})
	hs.c.PointerDown(client(50, 50))
	hs.c.PointerUp(client(50, 50))
	require.Len(t, hs.c.Session().Annotations(), 1)

	hs.c.Key(KeyEvent{Key: 'X'})
	hs.drag(client(10, 10), client(110, 90))

	assert.Equal(t, 1, hs.dialogs.confirms)
	assert.Equal(t, image.Rect(0, 0, 100, 80), hs.c.Session().Base().Bounds())
	assert.Empty(t, hs.c.Session().Annotations())
	assert.Equal(t, 1, hs.c.Session().NextNumber())
	assert.Empty(t, hs.dialogs.alerts)
}

func TestControllerCropDeclined(t *testing.T) {
	hs := newHarness(400, 300)
	hs.c.Key(KeyEvent{Key: 'X'})
	hs.drag(client(10, 10), client(110, 90))

	assert.Equal(t, 1, hs.dialogs.confirms)
	assert.Equal(t, image.Rect(0, 0, 400, 300), hs.c.Session().Base().Bounds())
	assert.False(t, hs.c.Session().CropPending())
	_, ok := hs.c.Session().CropRect()
	assert.False(t, ok)
}

func TestControllerCropOutsideImageAlerts(t *testing.T) {
	hs := newHarness(100, 100)
	hs.dialogs.confirm = true
	hs.c.SetViewport(image.Pt(800, 600))
	hs.c.Key(KeyEvent{Key: 'X'})
	hs.drag(client(200, 200), client(300, 300))

	require.Len(t, hs.dialogs.alerts, 1)
	assert.Contains(t, hs.dialogs.alerts[0], "Crop")
	assert.Equal(t, image.Rect(0, 0, 100, 100), hs.c.Session().Base().Bounds())
	assert.False(t, hs.c.Session().CropPending())
}

func TestControllerCropSliverOnImageAlerts(t *testing.T) {
	hs := newHarness(100, 100)
	hs.dialogs.confirm = true
	hs.c.SetViewport(image.Pt(800, 600))
	hs.c.Key(KeyEvent{Key: 'R'})
	hs.drag(client(10, 10), client(60, 60))
	hs.c.Key(KeyEvent{Key: 'X'})
	hs.drag(client(95, 10), client(200, 90))

	require.Len(t, hs.dialogs.alerts, 1)
	assert.Equal(t, image.Rect(0, 0, 100, 100), hs.c.Session().Base().Bounds())
	assert.Len(t, hs.c.Session().Annotations(), 1)
}

func TestControllerCropBelowThresholdNeverAsks(t *testing.T) {
	hs := newHarness(400, 300)
	hs.c.Key(KeyEvent{Key: 'X'})
	hs.drag(client(10, 10), client(20, 100))
	assert.Zero(t, hs.dialogs.confirms)
}

func TestControllerTextPrompt(t *testing.T) {
	hs := newHarness(400, 300)
	hs.dialogs.text, hs.dialogs.textOK = "hello", true
	hs.c.Key(KeyEvent{Key: 'T'})
	hs.c.PointerDown(client(20, 20))
	hs.c.PointerUp(client(20, 20))

	assert.Equal(t, 1, hs.dialogs.prompts)
	anns := hs.c.Session().Annotations()
	require.Len(t, anns, 1)
	label, ok := anns[0].(*annotate.TextLabel)
	require.True(t, ok)
	assert.Equal(t, "hello", label.Text)
}

func TestControllerSave(t *testing.T) {
	hs := newHarness(120, 80)
	hs.saver.res = storage.Result{Path: `C:\shots\a.png`, Clipboard: true}

	hs.c.Key(KeyEvent{Key: 'S', Ctrl: true})

	require.NotNil(t, hs.saver.saved)
	assert.Equal(t, image.Rect(0, 0, 120, 80), hs.saver.saved.Bounds())
	assert.Equal(t, []string{`Saved to C:\shots\a.png and copied to clipboard`}, hs.notes.msgs)
}

func TestControllerSaveFailureAlerts(t *testing.T) {
	hs := newHarness(120, 80)
	hs.saver.err = &storage.SaveError{Op: "file", Path: "x", Err: errors.New("denied")}

	hs.c.Save()

	require.Len(t, hs.dialogs.alerts, 1)
	assert.Contains(t, hs.dialogs.alerts[0], "denied")
	assert.Empty(t, hs.notes.msgs)
	assert.False(t, hs.c.Closed())
}

func TestControllerCopyIgnoresZoom(t *testing.T) {
	hs := newHarness(120, 80)
	hs.c.Key(KeyEvent{Key: KeyPlus, Ctrl: true})
	hs.c.Key(KeyEvent{Key: KeyPlus, Ctrl: true})
	assert.Equal(t, 1.5, hs.c.Session().Zoom())

	hs.c.Key(KeyEvent{Key: 'C', Ctrl: true})
	require.NotNil(t, hs.saver.copied)
	assert.Equal(t, image.Rect(0, 0, 120, 80), hs.saver.copied.Bounds())
	assert.Equal(t, []string{"Copied to clipboard"}, hs.notes.msgs)

	hs.c.Key(KeyEvent{Key: '0', Ctrl: true})
	assert.Equal(t, 1.0, hs.c.Session().Zoom())
}

func TestControllerCopyFailureAlerts(t *testing.T) {
	hs := newHarness(10, 10)
	hs.saver.clipErr = errors.New("clipboard busy")
	hs.c.Copy()
	require.Len(t, hs.dialogs.alerts, 1)
	assert.Contains(t, hs.dialogs.alerts[0], "clipboard busy")
}

func TestControllerThicknessAndColor(t *testing.T) {
	hs := newHarness(10, 10)
	hs.c.Key(KeyEvent{Key: KeyRightBracket})
	assert.Equal(t, annotate.DefaultThickness+1, hs.c.Session().Style().Thickness)

	for i := 0; i < 30; i++ {
		hs.c.Key(KeyEvent{Key: KeyLeftBracket})
	}
	assert.Equal(t, annotate.MinThickness, hs.c.Session().Style().Thickness)

	hs.c.Do(Action{Cmd: CmdColor, Color: 2})
	assert.Equal(t, annotate.DefaultColors[2], hs.c.Session().Style().Color)

	hs.c.Do(Action{Cmd: CmdColor, Color: 99})
	assert.Equal(t, annotate.DefaultColors[2], hs.c.Session().Style().Color)
}

func TestControllerDeleteAndUndo(t *testing.T) {
	hs := newHarness(800, 600)
	hs.c.Key(KeyEvent{Key: 'R'})
	hs.drag(client(100, 100), client(300, 250))
	hs.c.Key(KeyEvent{Key: 'V'})
	hs.c.PointerDown(client(100, 150))
	hs.c.PointerUp(client(100, 150))
	require.NotNil(t, hs.c.Session().Selected())

	hs.c.Key(KeyEvent{Key: KeyDelete})
	assert.Empty(t, hs.c.Session().Annotations())

	hs.c.Key(KeyEvent{Key: 'Z', Ctrl: true})
	assert.Empty(t, hs.c.Session().Annotations())
}

func TestControllerCursorAt(t *testing.T) {
	hs := newHarness(800, 600)
	assert.Equal(t, CursorArrow, hs.c.CursorAt(image.Pt(5, 5)))

	hs.c.Key(KeyEvent{Key: 'R'})
	assert.Equal(t, CursorCross, hs.c.CursorAt(client(50, 50)))
	hs.drag(client(100, 100), client(300, 250))

	hs.c.Key(KeyEvent{Key: 'V'})
	hs.c.PointerDown(client(200, 100))
	hs.c.PointerUp(client(200, 100))
	require.NotNil(t, hs.c.Session().Selected())

	assert.Equal(t, CursorSizeNWSE, hs.c.CursorAt(client(300, 250)))
	assert.Equal(t, CursorSizeNESW, hs.c.CursorAt(client(300, 100)))
	assert.Equal(t, CursorSizeNS, hs.c.CursorAt(client(200, 250)))
	assert.Equal(t, CursorSizeWE, hs.c.CursorAt(client(100, 175)))
	assert.Equal(t, CursorArrow, hs.c.CursorAt(client(600, 500)))
}

func TestControllerIgnoresInputAfterClose(t *testing.T) {
	hs := newHarness(100, 100)
	hs.c.Close()
	hs.c.Key(KeyEvent{Key: 'R'})
	hs.c.PointerDown(client(10, 10))
	hs.c.PointerUp(client(50, 50))
	assert.Empty(t, hs.c.Session().Annotations())
}
