//go:build windows

package editor

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"moneyshot/internal/winapi"
)

// winDialogs implements Dialogs with message boxes owned by the editor
// window.
type winDialogs struct {
	owner func() uintptr
	log   zerolog.Logger
}

func (d *winDialogs) Confirm(title, message string) bool {
	return winapi.MessageBox(d.owner(), title, message, winapi.MB_YESNO|winapi.MB_ICONQUESTION) == winapi.IDYES
}

func (d *winDialogs) Alert(title, message string) {
	winapi.MessageBox(d.owner(), title, message, winapi.MB_OK|winapi.MB_ICONERROR)
}

// PromptText asks for a line of text with the VisualBasic InputBox run
// through PowerShell, which avoids building a dialog template on the UI
// thread. An empty answer counts as cancelled.
func (d *winDialogs) PromptText(title string) (string, bool) {
	script := fmt.Sprintf(`
[Console]::OutputEncoding = [System.Text.Encoding]::UTF8
Add-Type -AssemblyName Microsoft.VisualBasic
$result = [Microsoft.VisualBasic.Interaction]::InputBox(%s, %s, "")
Write-Output $result
`, psQuote(title), psQuote("MoneyShot"))

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	output, err := cmd.Output()
	if err != nil {
		d.log.Warn().Err(err).Msg("text prompt failed")
		return "", false
	}

	text := strings.TrimRight(string(output), "\r\n")
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// psQuote makes s a single-quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
