package editor

import "moneyshot/internal/annotate"

// Key identifies a keyboard key independent of the windowing system.
// Letters are their upper-case rune, digits their rune.
type Key rune

const (
	KeyBackspace    Key = 0x08
	KeyEscape       Key = 0x1B
	KeyDelete       Key = 0x7F
	KeyPlus         Key = '+'
	KeyMinus        Key = '-'
	KeyLeftBracket  Key = '['
	KeyRightBracket Key = ']'
)

// KeyEvent is a key press with the modifiers held at the time.
type KeyEvent struct {
	Key   Key
	Ctrl  bool
	Shift bool
}

// Command is an editor action triggered by a shortcut or toolbar button.
type Command int

const (
	CmdNone Command = iota
	CmdTool
	CmdColor
	CmdClose
	CmdDelete
	CmdUndo
	CmdCopy
	CmdSave
	CmdZoomIn
	CmdZoomOut
	CmdZoomReset
	CmdThinner
	CmdThicker
)

var commandName = map[Command]string{
	CmdNone:      "none",
	CmdTool:      "tool",
	CmdColor:     "color",
	CmdClose:     "close",
	CmdDelete:    "delete",
	CmdUndo:      "undo",
	CmdCopy:      "copy",
	CmdSave:      "save",
	CmdZoomIn:    "zoom-in",
	CmdZoomOut:   "zoom-out",
	CmdZoomReset: "zoom-reset",
	CmdThinner:   "thinner",
	CmdThicker:   "thicker",
}

func (c Command) String() string {
	if n, ok := commandName[c]; ok {
		return n
	}
	return "unknown"
}

// Action is a Command with its argument.
type Action struct {
	Cmd   Command
	Tool  annotate.Tool // CmdTool
	Color int           // CmdColor, index into annotate.DefaultColors
}

func toolAction(t annotate.Tool) Action { return Action{Cmd: CmdTool, Tool: t} }

var plainKeys = map[Key]Action{
	'R':             toolAction(annotate.ToolRectangle),
	'C':             toolAction(annotate.ToolEllipse),
	'A':             toolAction(annotate.ToolArrow),
	'L':             toolAction(annotate.ToolLine),
	'T':             toolAction(annotate.ToolText),
	'P':             toolAction(annotate.ToolPixelate),
	'1':             toolAction(annotate.ToolNumber),
	'V':             toolAction(annotate.ToolCursor),
	'X':             toolAction(annotate.ToolCrop),
	KeyEscape:       {Cmd: CmdClose},
	KeyDelete:       {Cmd: CmdDelete},
	KeyBackspace:    {Cmd: CmdDelete},
	KeyLeftBracket:  {Cmd: CmdThinner},
	KeyRightBracket: {Cmd: CmdThicker},
}

var ctrlKeys = map[Key]Action{
	'Z':      {Cmd: CmdUndo},
	'C':      {Cmd: CmdCopy},
	'S':      {Cmd: CmdSave},
	KeyPlus:  {Cmd: CmdZoomIn},
	'=':      {Cmd: CmdZoomIn},
	KeyMinus: {Cmd: CmdZoomOut},
	'0':      {Cmd: CmdZoomReset},
}

// Lookup maps a key press to its editor action.
func Lookup(ev KeyEvent) (Action, bool) {
	if ev.Ctrl {
		a, ok := ctrlKeys[ev.Key]
		return a, ok
	}
	a, ok := plainKeys[ev.Key]
	return a, ok
}
