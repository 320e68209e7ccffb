package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moneyshot/internal/annotate"
)

func TestLookupShortcuts(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want Action
	}{
		{KeyEvent{Key: 'R'}, toolAction(annotate.ToolRectangle)},
		{KeyEvent{Key: 'C'}, toolAction(annotate.ToolEllipse)},
		{KeyEvent{Key: 'A'}, toolAction(annotate.ToolArrow)},
		{KeyEvent{Key: 'L'}, toolAction(annotate.ToolLine)},
		{KeyEvent{Key: 'T'}, toolAction(annotate.ToolText)},
		{KeyEvent{Key: 'P'}, toolAction(annotate.ToolPixelate)},
		{KeyEvent{Key: '1'}, toolAction(annotate.ToolNumber)},
		{KeyEvent{Key: KeyEscape}, Action{Cmd: CmdClose}},
		{KeyEvent{Key: KeyDelete}, Action{Cmd: CmdDelete}},
		{KeyEvent{Key: KeyBackspace}, Action{Cmd: CmdDelete}},
		{KeyEvent{Key: 'Z', Ctrl: true}, Action{Cmd: CmdUndo}},
		{KeyEvent{Key: 'C', Ctrl: true}, Action{Cmd: CmdCopy}},
		{KeyEvent{Key: 'S', Ctrl: true}, Action{Cmd: CmdSave}},
		{KeyEvent{Key: KeyPlus, Ctrl: true}, Action{Cmd: CmdZoomIn}},
		{KeyEvent{Key: '=', Ctrl: true}, Action{Cmd: CmdZoomIn}},
		{KeyEvent{Key: KeyMinus, Ctrl: true}, Action{Cmd: CmdZoomOut}},
		{KeyEvent{Key: '0', Ctrl: true}, Action{Cmd: CmdZoomReset}},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.ev)
		assert.True(t, ok, "%+v", tt.ev)
		assert.Equal(t, tt.want, got, "%+v", tt.ev)
	}
}

func TestLookupUnbound(t *testing.T) {
	for _, ev := range []KeyEvent{
		{Key: 'Q'},
		{Key: 'R', Ctrl: true},
		{Key: 0x0D},
		{Key: '0'},
	} {
		_, ok := Lookup(ev)
		assert.False(t, ok, "%+v", ev)
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "zoom-in", CmdZoomIn.String())
	assert.Equal(t, "unknown", Command(99).String())
}
