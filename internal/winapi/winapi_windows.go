//go:build windows

package winapi

import (
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ============================================================================
// DLLs and procs
// ============================================================================

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
)

var (
	GetModuleHandle = kernel32.NewProc("GetModuleHandleW")

	RegisterClassExW    = user32.NewProc("RegisterClassExW")
	CreateWindowExW     = user32.NewProc("CreateWindowExW")
	DestroyWindow       = user32.NewProc("DestroyWindow")
	ShowWindow          = user32.NewProc("ShowWindow")
	UpdateWindow        = user32.NewProc("UpdateWindow")
	SetForegroundWindow = user32.NewProc("SetForegroundWindow")
	SetFocus            = user32.NewProc("SetFocus")
	EnableWindow        = user32.NewProc("EnableWindow")
	DefWindowProcW      = user32.NewProc("DefWindowProcW")
	PostQuitMessage     = user32.NewProc("PostQuitMessage")
	GetMessageW         = user32.NewProc("GetMessageW")
	PeekMessageW        = user32.NewProc("PeekMessageW")
	TranslateMessage    = user32.NewProc("TranslateMessage")
	DispatchMessageW    = user32.NewProc("DispatchMessageW")
	SetCapture          = user32.NewProc("SetCapture")
	ReleaseCapture      = user32.NewProc("ReleaseCapture")
	SetCursor           = user32.NewProc("SetCursor")
	LoadCursorW         = user32.NewProc("LoadCursorW")
	InvalidateRect      = user32.NewProc("InvalidateRect")
	BeginPaint          = user32.NewProc("BeginPaint")
	EndPaint            = user32.NewProc("EndPaint")
	GetKeyState         = user32.NewProc("GetKeyState")
	GetSystemMetrics    = user32.NewProc("GetSystemMetrics")
	GetClientRect       = user32.NewProc("GetClientRect")
	AdjustWindowRectEx  = user32.NewProc("AdjustWindowRectEx")
	SetWindowTextW      = user32.NewProc("SetWindowTextW")
	GetCursorPos        = user32.NewProc("GetCursorPos")
	ScreenToClient      = user32.NewProc("ScreenToClient")
	MessageBoxW         = user32.NewProc("MessageBoxW")

	CreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	CreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	SelectObject       = gdi32.NewProc("SelectObject")
	BitBlt             = gdi32.NewProc("BitBlt")
	DeleteDC           = gdi32.NewProc("DeleteDC")
	DeleteObject       = gdi32.NewProc("DeleteObject")
)

// ============================================================================
// Constants
// ============================================================================

const (
	WS_POPUP            = 0x80000000
	WS_VISIBLE          = 0x10000000
	WS_OVERLAPPEDWINDOW = 0x00CF0000
	WS_EX_TOPMOST       = 0x00000008
	WS_EX_TOOLWINDOW    = 0x00000080

	CW_USEDEFAULT = 0x80000000

	SW_SHOW = 5

	WM_DESTROY     = 0x0002
	WM_SIZE        = 0x0005
	WM_PAINT       = 0x000F
	WM_CLOSE       = 0x0010
	WM_QUIT        = 0x0012
	WM_ERASEBKGND  = 0x0014
	WM_SETCURSOR   = 0x0020
	WM_KEYDOWN     = 0x0100
	WM_MOUSEMOVE   = 0x0200
	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONDOWN = 0x0204
	WM_MOUSEWHEEL  = 0x020A

	VK_BACK     = 0x08
	VK_SHIFT    = 0x10
	VK_CONTROL  = 0x11
	VK_ESCAPE   = 0x1B
	VK_DELETE   = 0x2E
	VK_NUMPAD0  = 0x60
	VK_ADD      = 0x6B
	VK_SUBTRACT = 0x6D
	VK_OEM_PLUS = 0xBB
	VK_OEM_MIN  = 0xBD
	VK_OEM_4    = 0xDB // [
	VK_OEM_6    = 0xDD // ]

	IDC_ARROW    = 32512
	IDC_CROSS    = 32515
	IDC_SIZENWSE = 32642
	IDC_SIZENESW = 32643
	IDC_SIZEWE   = 32644
	IDC_SIZENS   = 32645
	IDC_SIZEALL  = 32646

	MB_OK           = 0x00000000
	MB_YESNO        = 0x00000004
	MB_ICONERROR    = 0x00000010
	MB_ICONQUESTION = 0x00000020
	MB_TOPMOST      = 0x00040000
	IDYES           = 6

	HTCLIENT = 1

	PM_REMOVE = 0x0001

	SM_CXSCREEN        = 0
	SM_CYSCREEN        = 1
	SM_XVIRTUALSCREEN  = 76
	SM_YVIRTUALSCREEN  = 77
	SM_CXVIRTUALSCREEN = 78
	SM_CYVIRTUALSCREEN = 79

	SRCCOPY        = 0x00CC0020
	BI_RGB         = 0
	DIB_RGB_COLORS = 0
)

// ============================================================================
// Structs
// ============================================================================

type WndClassExW struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     uintptr
	HIcon         uintptr
	HCursor       uintptr
	HbrBackground uintptr
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       uintptr
}

type Msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      Point
}

type Point struct {
	X int32
	Y int32
}

type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type PaintStruct struct {
	Hdc         uintptr
	FErase      int32
	RcPaint     Rect
	FRestore    int32
	FIncUpdate  int32
	RgbReserved [32]byte
}

type BitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type BitmapInfo struct {
	BmiHeader BitmapInfoHeader
	BmiColors [1]uint32
}

// ============================================================================
// Helpers
// ============================================================================

var (
	classMu    sync.Mutex
	registered = map[string]bool{}
)

// RegisterClass registers a window class once per process and returns
// its name. Callback slots are never freed, so later calls reuse the
// first registration.
func RegisterClass(name string, proc func(hwnd, msg, wParam, lParam uintptr) uintptr, cursor uintptr) *uint16 {
	className, _ := windows.UTF16PtrFromString(name)

	classMu.Lock()
	defer classMu.Unlock()
	if registered[name] {
		return className
	}

	hInstance, _, _ := GetModuleHandle.Call(0)
	var wc WndClassExW
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = windows.NewCallback(proc)
	wc.HInstance = hInstance
	wc.HCursor, _, _ = LoadCursorW.Call(0, cursor)
	wc.LpszClassName = className
	RegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
	registered[name] = true
	return className
}

// ModuleHandle is the executable's HINSTANCE.
func ModuleHandle() uintptr {
	h, _, _ := GetModuleHandle.Call(0)
	return h
}

// VirtualScreen is the rectangle spanning every monitor.
func VirtualScreen() image.Rectangle {
	// GetSystemMetrics returns int; sign-extend through int32.
	x, _, _ := GetSystemMetrics.Call(SM_XVIRTUALSCREEN)
	y, _, _ := GetSystemMetrics.Call(SM_YVIRTUALSCREEN)
	w, _, _ := GetSystemMetrics.Call(SM_CXVIRTUALSCREEN)
	h, _, _ := GetSystemMetrics.Call(SM_CYVIRTUALSCREEN)
	return image.Rect(int(int32(x)), int(int32(y)), int(int32(x))+int(int32(w)), int(int32(y))+int(int32(h)))
}

// PrimarySize is the size of the primary monitor.
func PrimarySize() image.Point {
	w, _, _ := GetSystemMetrics.Call(SM_CXSCREEN)
	h, _, _ := GetSystemMetrics.Call(SM_CYSCREEN)
	return image.Pt(int(int32(w)), int(int32(h)))
}

// LParamPoint unpacks signed client coordinates from a mouse message.
func LParamPoint(lParam uintptr) image.Point {
	return image.Pt(int(int16(lParam&0xFFFF)), int(int16((lParam>>16)&0xFFFF)))
}

// KeyDown reports whether vk is held.
func KeyDown(vk uintptr) bool {
	s, _, _ := GetKeyState.Call(vk)
	return int16(s) < 0
}

// ClientSize is the client area size of hwnd.
func ClientSize(hwnd uintptr) image.Point {
	var r Rect
	GetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return image.Pt(int(r.Right-r.Left), int(r.Bottom-r.Top))
}

// DrainQuitMessages drops WM_QUIT messages left over from a previous
// modal loop, which would otherwise end the next one immediately.
func DrainQuitMessages() {
	var m Msg
	for {
		ret, _, _ := PeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, WM_QUIT, WM_QUIT, PM_REMOVE)
		if ret == 0 {
			return
		}
	}
}

// RunLoop pumps messages until done reports true or WM_QUIT arrives.
func RunLoop(done func() bool) {
	var m Msg
	for !done() {
		ret, _, _ := GetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || ret == ^uintptr(0) {
			return
		}
		TranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		DispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// MessageBox shows a modal message box owned by hwnd and returns the
// button pressed.
func MessageBox(hwnd uintptr, title, text string, flags uintptr) int {
	t, _ := windows.UTF16PtrFromString(text)
	c, _ := windows.UTF16PtrFromString(title)
	ret, _, _ := MessageBoxW.Call(hwnd, uintptr(unsafe.Pointer(t)), uintptr(unsafe.Pointer(c)), flags)
	return int(ret)
}

// CursorClientPos is the mouse position in hwnd's client coordinates.
func CursorClientPos(hwnd uintptr) image.Point {
	var pt Point
	GetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	ScreenToClient.Call(hwnd, uintptr(unsafe.Pointer(&pt)))
	return image.Pt(int(pt.X), int(pt.Y))
}

// ============================================================================
// Back buffer
// ============================================================================

// BackBuffer is an off-screen 32-bit top-down DIB section.
type BackBuffer struct {
	dc, bitmap, bits uintptr
	w, h             int
}

// Ensure (re)creates the buffer when the size changed. It reports
// whether a usable buffer exists.
func (b *BackBuffer) Ensure(hdc uintptr, w, h int) bool {
	if b.dc != 0 && b.w == w && b.h == h {
		return true
	}
	b.Release()
	if w <= 0 || h <= 0 {
		return false
	}

	b.dc, _, _ = CreateCompatibleDC.Call(hdc)
	var bi BitmapInfo
	bi.BmiHeader.BiSize = uint32(unsafe.Sizeof(bi.BmiHeader))
	bi.BmiHeader.BiWidth = int32(w)
	bi.BmiHeader.BiHeight = -int32(h)
	bi.BmiHeader.BiPlanes = 1
	bi.BmiHeader.BiBitCount = 32
	bi.BmiHeader.BiCompression = BI_RGB

	b.bitmap, _, _ = CreateDIBSection.Call(b.dc, uintptr(unsafe.Pointer(&bi)), DIB_RGB_COLORS,
		uintptr(unsafe.Pointer(&b.bits)), 0, 0)
	if b.bitmap == 0 {
		DeleteDC.Call(b.dc)
		b.dc = 0
		return false
	}
	SelectObject.Call(b.dc, b.bitmap)
	b.w, b.h = w, h
	return true
}

// Pixels is the BGRA pixel memory of the buffer.
func (b *BackBuffer) Pixels() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(b.bits)), b.w*b.h*4)
}

// Blit copies the buffer to hdc.
func (b *BackBuffer) Blit(hdc uintptr) {
	BitBlt.Call(hdc, 0, 0, uintptr(b.w), uintptr(b.h), b.dc, 0, 0, SRCCOPY)
}

func (b *BackBuffer) Release() {
	if b.bitmap != 0 {
		DeleteObject.Call(b.bitmap)
		b.bitmap = 0
	}
	if b.dc != 0 {
		DeleteDC.Call(b.dc)
		b.dc = 0
	}
	b.bits = 0
	b.w, b.h = 0, 0
}
