//go:build !windows

package tray

// Tray has no icon outside Windows; Run blocks until Quit.
type Tray struct {
	menu Menu
	quit chan struct{}
}

func New(menu Menu) *Tray {
	return &Tray{menu: menu, quit: make(chan struct{})}
}

func (t *Tray) Run() { <-t.quit }

func (t *Tray) Quit() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}
