//go:build windows

package editor

import (
	"errors"
	"image"
	"runtime"
	"sync"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"

	"moneyshot/internal/annotate"
	"moneyshot/internal/winapi"
)

var errWindow = errors.New("editor: could not create window")

type window struct {
	hwnd  uintptr
	ctrl  *Controller
	buf   winapi.BackBuffer
	frame *image.RGBA
	log   zerolog.Logger
}

var (
	// One editor at a time: the window procedure reaches it through
	// editorInstance.
	editorMu       sync.Mutex
	editorInstance *window
)

// Open shows img in an editor window and blocks until the user closes
// it. It locks the calling goroutine to its OS thread while the window
// exists.
func Open(img *image.RGBA, opts Options) error {
	editorMu.Lock()
	defer editorMu.Unlock()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w := &window{log: opts.Log}
	dialogs := &winDialogs{owner: func() uintptr { return w.hwnd }, log: opts.Log}
	w.ctrl = NewController(img, opts.Style, dialogs, opts.Saver, opts.Notifier, opts.Log)

	editorInstance = w
	defer func() { editorInstance = nil }()

	winapi.DrainQuitMessages()

	className := winapi.RegisterClass("MoneyShotEditor", editorWndProc, winapi.IDC_ARROW)
	title, _ := windows.UTF16PtrFromString(opts.Title)

	size := w.ctrl.PreferredSize()
	screen := winapi.PrimarySize()
	size.X = min(size.X, screen.X*9/10)
	size.Y = min(size.Y, screen.Y*9/10)
	r := winapi.Rect{Right: int32(size.X), Bottom: int32(size.Y)}
	winapi.AdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&r)), winapi.WS_OVERLAPPEDWINDOW, 0, 0)

	hwnd, _, _ := winapi.CreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		winapi.WS_OVERLAPPEDWINDOW|winapi.WS_VISIBLE,
		winapi.CW_USEDEFAULT, winapi.CW_USEDEFAULT,
		uintptr(r.Right-r.Left), uintptr(r.Bottom-r.Top),
		0, 0, winapi.ModuleHandle(), 0,
	)
	if hwnd == 0 {
		w.log.Error().Msg("editor window creation failed")
		return errWindow
	}
	w.hwnd = hwnd
	w.ctrl.SetViewport(winapi.ClientSize(hwnd))

	winapi.ShowWindow.Call(hwnd, winapi.SW_SHOW)
	winapi.UpdateWindow.Call(hwnd)
	winapi.SetForegroundWindow.Call(hwnd)
	winapi.SetFocus.Call(hwnd)

	w.log.Debug().Interface("image", img.Bounds().Size()).Msg("editor opened")
	winapi.RunLoop(w.ctrl.Closed)

	winapi.DestroyWindow.Call(hwnd)
	w.buf.Release()
	w.hwnd = 0
	w.log.Debug().Msg("editor closed")
	return nil
}

func (w *window) invalidate() {
	winapi.InvalidateRect.Call(w.hwnd, 0, 0)
}

// after runs once per handled message: it repaints and ends the loop
// when the controller closed.
func (w *window) after() {
	if w.ctrl.Closed() {
		winapi.PostQuitMessage.Call(0)
		return
	}
	w.invalidate()
}

func (w *window) paint(hdc uintptr) {
	size := winapi.ClientSize(w.hwnd)
	if !w.buf.Ensure(hdc, size.X, size.Y) {
		return
	}
	if w.frame == nil || w.frame.Bounds().Size() != size {
		w.frame = image.NewRGBA(image.Rectangle{Max: size})
	}
	w.ctrl.Render(w.frame)
	ToBGRA(w.buf.Pixels(), w.frame)
	w.buf.Blit(hdc)
}

var cursorIDs = map[Cursor]uintptr{
	CursorArrow:    winapi.IDC_ARROW,
	CursorCross:    winapi.IDC_CROSS,
	CursorMove:     winapi.IDC_SIZEALL,
	CursorSizeNWSE: winapi.IDC_SIZENWSE,
	CursorSizeNESW: winapi.IDC_SIZENESW,
	CursorSizeNS:   winapi.IDC_SIZENS,
	CursorSizeWE:   winapi.IDC_SIZEWE,
}

func editorWndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	w := editorInstance
	if w == nil || w.hwnd != hwnd {
		ret, _, _ := winapi.DefWindowProcW.Call(hwnd, msg, wParam, lParam)
		return ret
	}

	switch msg {
	case winapi.WM_SETCURSOR:
		if lParam&0xFFFF != winapi.HTCLIENT {
			break
		}
		id := cursorIDs[w.ctrl.CursorAt(winapi.CursorClientPos(hwnd))]
		cur, _, _ := winapi.LoadCursorW.Call(0, id)
		winapi.SetCursor.Call(cur)
		return 1

	case winapi.WM_ERASEBKGND:
		return 1

	case winapi.WM_PAINT:
		var ps winapi.PaintStruct
		hdc, _, _ := winapi.BeginPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))
		w.paint(hdc)
		winapi.EndPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))
		return 0

	case winapi.WM_SIZE:
		w.ctrl.SetViewport(winapi.ClientSize(hwnd))
		w.invalidate()
		return 0

	case winapi.WM_KEYDOWN:
		if key, ok := translateKey(wParam); ok {
			w.ctrl.Key(KeyEvent{
				Key:   key,
				Ctrl:  winapi.KeyDown(winapi.VK_CONTROL),
				Shift: winapi.KeyDown(winapi.VK_SHIFT),
			})
			w.after()
		}
		return 0

	case winapi.WM_LBUTTONDOWN:
		winapi.SetCapture.Call(hwnd)
		w.ctrl.PointerDown(winapi.LParamPoint(lParam))
		w.after()
		return 0

	case winapi.WM_MOUSEMOVE:
		w.ctrl.PointerMove(winapi.LParamPoint(lParam))
		if w.ctrl.Session().State() != annotate.StateIdle {
			w.invalidate()
		}
		return 0

	case winapi.WM_LBUTTONUP:
		winapi.ReleaseCapture.Call()
		w.ctrl.PointerUp(winapi.LParamPoint(lParam))
		w.after()
		return 0

	case winapi.WM_RBUTTONDOWN:
		w.ctrl.Cancel()
		w.after()
		return 0

	case winapi.WM_MOUSEWHEEL:
		// The high word of wParam is the signed rotation.
		delta := int(int16(wParam >> 16))
		w.ctrl.WheelDelta(delta, winapi.KeyDown(winapi.VK_CONTROL), winapi.KeyDown(winapi.VK_SHIFT))
		w.after()
		return 0

	case winapi.WM_CLOSE:
		w.ctrl.Close()
		winapi.PostQuitMessage.Call(0)
		return 0

	case winapi.WM_DESTROY:
		return 0
	}

	ret, _, _ := winapi.DefWindowProcW.Call(hwnd, msg, wParam, lParam)
	return ret
}

// translateKey maps a virtual-key code to a Key.
func translateKey(vk uintptr) (Key, bool) {
	switch {
	case vk >= 'A' && vk <= 'Z', vk >= '0' && vk <= '9':
		return Key(vk), true
	case vk >= winapi.VK_NUMPAD0 && vk <= winapi.VK_NUMPAD0+9:
		return Key('0' + vk - winapi.VK_NUMPAD0), true
	}
	switch vk {
	case winapi.VK_ESCAPE:
		return KeyEscape, true
	case winapi.VK_DELETE:
		return KeyDelete, true
	case winapi.VK_BACK:
		return KeyBackspace, true
	case winapi.VK_OEM_PLUS, winapi.VK_ADD:
		return KeyPlus, true
	case winapi.VK_OEM_MIN, winapi.VK_SUBTRACT:
		return KeyMinus, true
	case winapi.VK_OEM_4:
		return KeyLeftBracket, true
	case winapi.VK_OEM_6:
		return KeyRightBracket, true
	}
	return 0, false
}
