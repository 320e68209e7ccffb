package tray

// Item is one tray menu entry. An Item with an empty Title is a separator.
type Item struct {
	Title   string
	Tooltip string
	OnClick func()
	// Quit ends the tray loop after OnClick returns.
	Quit bool
}

// Monitor is a per-monitor capture entry.
type Monitor struct {
	Label   string
	OnClick func()
}

// Menu holds the tray actions.
type Menu struct {
	Tooltip       string
	CaptureHotkey string
	RegionHotkey  string

	OnCaptureFull   func()
	OnCaptureRegion func()
	Monitors        []Monitor
	OnSettings      func()
	OnOpenFolder    func()
	OnExit          func()
}

// Items lays out the menu top to bottom.
func (m Menu) Items() []Item {
	items := []Item{
		{Title: withHotkey("Capture Full Screen", m.CaptureHotkey), Tooltip: "Capture every monitor", OnClick: m.OnCaptureFull},
		{Title: withHotkey("Capture Region", m.RegionHotkey), Tooltip: "Drag a rectangle to capture", OnClick: m.OnCaptureRegion},
	}
	if len(m.Monitors) > 0 {
		items = append(items, Item{})
		for _, mon := range m.Monitors {
			items = append(items, Item{Title: mon.Label, Tooltip: "Capture this monitor", OnClick: mon.OnClick})
		}
	}
	return append(items,
		Item{},
		Item{Title: "Settings", Tooltip: "Edit settings", OnClick: m.OnSettings},
		Item{Title: "Open Save Folder", Tooltip: "Show saved screenshots", OnClick: m.OnOpenFolder},
		Item{},
		Item{Title: "Exit", Tooltip: "Quit MoneyShot", OnClick: m.OnExit, Quit: true},
	)
}

func withHotkey(title, hotkey string) string {
	if hotkey == "" {
		return title
	}
	return title + " (" + hotkey + ")"
}
