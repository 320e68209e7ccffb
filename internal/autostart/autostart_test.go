package autostart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCommandQuotesPath(t *testing.T) {
	assert.Equal(t, `"C:\Program Files\MoneyShot\moneyshot.exe"`, RunCommand(`C:\Program Files\MoneyShot\moneyshot.exe`))
}

func TestSnippingFlag(t *testing.T) {
	assert.Equal(t, uint32(0), snippingFlag(true))
	assert.Equal(t, uint32(1), snippingFlag(false))
}

func TestOverridePrintScreen(t *testing.T) {
	on := &Settings{DisablePrintScreen: true}
	off := &Settings{}

	assert.False(t, OverridePrintScreen(*off, nil), "first run with the option off keeps the OS value")
	assert.True(t, OverridePrintScreen(*on, nil))
	assert.False(t, OverridePrintScreen(*off, off), "reload without change")
	assert.True(t, OverridePrintScreen(*off, on), "turned off restores the OS default")
	assert.True(t, OverridePrintScreen(*on, off))
	assert.True(t, OverridePrintScreen(*on, on))
}
