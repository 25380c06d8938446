// Package view holds the dashboard's view-level state machine. The
// controller talks to the outside world only through the Storage, View,
// Loader and Clipboard capabilities so it runs the same behind a browser
// page, a terminal or a test.
package view

import (
	"context"
	"time"

	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/inventory"
	"github.com/edvin/dokdash/internal/render"
)

type State int

const (
	StateConfig State = iota
	StateLoading
	StateError
	StateData
	StateIDs
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return render.PageLoading
	case StateError:
		return render.PageError
	case StateData:
		return render.PageData
	case StateIDs:
		return render.PageIDs
	default:
		return render.PageConfig
	}
}

// Persisted keys.
const (
	KeyAPIKey           = "dokploy-api-key"
	KeySidebarCollapsed = "dokploy-sidebar-collapsed"
)

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 2 * time.Second

// Notification is a transient message. Failed marks an error notice.
type Notification struct {
	ID      uint64
	Message string
	Failed  bool
}

// View draws controller output. Implementations must not call back into
// the controller.
type View interface {
	Show(State)
	ShowData(*inventory.Snapshot)
	ShowError(message string)
	Notify(Notification)
	Dismiss(Notification)
}

// Storage persists small string values across sessions.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Loader fetches the full project tree.
type Loader func(ctx context.Context, baseURL, apiKey string) ([]dokploy.Project, error)

// Clipboard copies text for the user.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ClipboardError reports a failed copy. It never changes view state.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return "copy to clipboard: " + e.Err.Error()
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}
