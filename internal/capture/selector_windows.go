//go:build windows

package capture

import (
	"image"
	"runtime"
	"sync"
	"unsafe"

	"moneyshot/internal/winapi"
)

// WindowsSelector is a topmost borderless window over the whole virtual
// screen showing the frozen screenshot dimmed, with the dragged
// rectangle at full brightness.
type WindowsSelector struct {
	hwnd    uintptr
	frozen  *image.RGBA
	overlay *Overlay
	buf     winapi.BackBuffer

	start, end image.Point
	mouse      image.Point
	selecting  bool

	done   bool
	ok     bool
	result image.Rectangle
}

var (
	selectorMu       sync.Mutex
	selectorInstance *WindowsSelector
)

func NewSelector() Selector {
	return &WindowsSelector{}
}

// SelectRegion runs a modal message loop on the calling goroutine,
// which it locks to its OS thread for the duration.
func (s *WindowsSelector) SelectRegion(frozen *image.RGBA) (image.Rectangle, bool, error) {
	selectorMu.Lock()
	defer selectorMu.Unlock()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	*s = WindowsSelector{
		frozen:  frozen,
		overlay: NewOverlay(frozen),
		mouse:   image.Pt(-1, -1),
	}
	selectorInstance = s
	defer func() { selectorInstance = nil }()

	winapi.DrainQuitMessages()

	className := winapi.RegisterClass("MoneyShotSelector", selectorWndProc, winapi.IDC_CROSS)
	vs := winapi.VirtualScreen()
	size := frozen.Bounds().Size()

	hwnd, _, _ := winapi.CreateWindowExW.Call(
		winapi.WS_EX_TOPMOST|winapi.WS_EX_TOOLWINDOW,
		uintptr(unsafe.Pointer(className)),
		0,
		winapi.WS_POPUP|winapi.WS_VISIBLE,
		uintptr(vs.Min.X), uintptr(vs.Min.Y),
		uintptr(size.X), uintptr(size.Y),
		0, 0, winapi.ModuleHandle(), 0,
	)
	if hwnd == 0 {
		return image.Rectangle{}, false, nil
	}
	s.hwnd = hwnd

	winapi.ShowWindow.Call(hwnd, winapi.SW_SHOW)
	winapi.UpdateWindow.Call(hwnd)
	winapi.SetForegroundWindow.Call(hwnd)
	winapi.SetFocus.Call(hwnd)
	winapi.InvalidateRect.Call(hwnd, 0, 0)

	winapi.RunLoop(func() bool { return s.done })

	winapi.DestroyWindow.Call(hwnd)
	s.buf.Release()
	s.hwnd = 0

	arrow, _, _ := winapi.LoadCursorW.Call(0, winapi.IDC_ARROW)
	winapi.SetCursor.Call(arrow)

	return s.result, s.ok, nil
}

func (s *WindowsSelector) finish(ok bool) {
	s.ok = ok
	s.done = true
	winapi.PostQuitMessage.Call(0)
}

func (s *WindowsSelector) current() image.Rectangle {
	if !s.selecting {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: s.start, Max: s.end}
}

func selectorWndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	s := selectorInstance
	if s == nil {
		ret, _, _ := winapi.DefWindowProcW.Call(hwnd, msg, wParam, lParam)
		return ret
	}

	switch msg {
	case winapi.WM_SETCURSOR:
		// The overlay draws its own crosshair.
		winapi.SetCursor.Call(0)
		return 1

	case winapi.WM_ERASEBKGND:
		return 1

	case winapi.WM_PAINT:
		var ps winapi.PaintStruct
		hdc, _, _ := winapi.BeginPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))
		size := s.overlay.Size()
		if s.buf.Ensure(hdc, size.X, size.Y) {
			s.overlay.Render(s.buf.Pixels(), s.current(), s.mouse)
			s.buf.Blit(hdc)
		}
		winapi.EndPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))
		return 0

	case winapi.WM_KEYDOWN:
		if wParam == winapi.VK_ESCAPE {
			s.finish(false)
		}
		return 0

	case winapi.WM_LBUTTONDOWN:
		s.start = winapi.LParamPoint(lParam)
		s.end = s.start
		s.selecting = true
		winapi.SetCapture.Call(hwnd)
		return 0

	case winapi.WM_MOUSEMOVE:
		s.mouse = winapi.LParamPoint(lParam)
		if s.selecting {
			s.end = s.mouse
		}
		winapi.InvalidateRect.Call(hwnd, 0, 0)
		return 0

	case winapi.WM_LBUTTONUP:
		if !s.selecting {
			return 0
		}
		winapi.ReleaseCapture.Call()
		s.selecting = false
		s.end = winapi.LParamPoint(lParam)
		// Window coordinates match the frozen image: both start at the
		// virtual-screen origin.
		s.result, s.ok = ResolveSelection(s.start, s.end, s.frozen.Bounds())
		s.finish(s.ok)
		return 0

	case winapi.WM_RBUTTONDOWN:
		s.finish(false)
		return 0

	case winapi.WM_DESTROY:
		// No PostQuitMessage here: the loop already ended, and a stray
		// WM_QUIT would end the next capture immediately.
		return 0
	}

	ret, _, _ := winapi.DefWindowProcW.Call(hwnd, msg, wParam, lParam)
	return ret
}
