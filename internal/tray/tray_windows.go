//go:build windows

package tray

import (
	"github.com/getlantern/systray"
)

// Tray is the notification-area icon and its menu.
type Tray struct {
	menu Menu
}

func New(menu Menu) *Tray {
	return &Tray{menu: menu}
}

// Run shows the icon and blocks until an item with Quit is chosen or
// Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit removes the icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle("MoneyShot")
	systray.SetTooltip(t.menu.Tooltip)

	for _, item := range t.menu.Items() {
		if item.Title == "" {
			systray.AddSeparator()
			continue
		}
		mi := systray.AddMenuItem(item.Title, item.Tooltip)
		go t.listen(mi, item)
	}
}

func (t *Tray) listen(mi *systray.MenuItem, item Item) {
	for range mi.ClickedCh {
		if item.OnClick != nil {
			item.OnClick()
		}
		if item.Quit {
			systray.Quit()
			return
		}
	}
}
