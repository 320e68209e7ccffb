package hotkey

import "errors"

// ErrUnsupported is returned where global hotkeys are not available.
var ErrUnsupported = errors.New("hotkey: global hotkeys not supported on this platform")

// Binding is a registered hotkey.
type Binding struct {
	Spec  string
	Combo Combo
}
