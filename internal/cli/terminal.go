package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/edvin/dokdash/internal/inventory"
	"github.com/edvin/dokdash/internal/render"
	"github.com/edvin/dokdash/internal/view"
)

// Terminal is a view.View that prints the dashboard as indented text.
// Notifications go to errOut so stdout stays pipeable.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	snapshot *inventory.Snapshot
	message  string

	// Category limits the identifier view to one category when set.
	Category inventory.Category
}

func NewTerminal(out, errOut io.Writer) *Terminal {
	return &Terminal{out: out, errOut: errOut}
}

func (t *Terminal) Show(s view.State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch s {
	case view.StateLoading:
		fmt.Fprintln(t.errOut, "Loading projects...")
	case view.StateError:
		fmt.Fprintln(t.errOut, "Error: "+t.message)
	case view.StateData:
		if t.snapshot != nil {
			render.WriteText(t.out, render.Dashboard(t.snapshot.Projects, t.snapshot.Totals))
		}
	case view.StateIDs:
		if t.snapshot != nil {
			render.WriteText(t.out, render.IDs(t.ids()))
		}
	}
}

func (t *Terminal) ids() inventory.IDs {
	if t.Category == "" {
		return t.snapshot.IDs
	}
	return inventory.IDs{t.Category: t.snapshot.IDs[t.Category]}
}

func (t *Terminal) ShowData(s *inventory.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshot = s
}

func (t *Terminal) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = message
}

func (t *Terminal) Notify(n view.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.errOut, n.Message)
}

// Dismiss is a no-op: printed lines scroll away on their own.
func (t *Terminal) Dismiss(view.Notification) {}
