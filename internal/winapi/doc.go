// Package winapi holds the user32/gdi32 calls shared by the selector
// overlay and the editor window. It is empty outside Windows.
package winapi
