package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/inventory"
	"github.com/edvin/dokdash/internal/render"
)

// ErrMissingCredentials is returned by Submit when the URL or key is blank.
var ErrMissingCredentials = errors.New("dokploy url and api key are required")

const defaultLoadError = "Failed to load data from Dokploy server"

// Controller owns the view state and the navigation context. At most one
// state is visible at a time.
type Controller struct {
	view    View
	storage Storage
	load    Loader
	logger  zerolog.Logger
	timeout time.Duration

	afterFunc func(time.Duration, func())

	mu         sync.Mutex
	state      State
	generation uint64
	notifySeq  uint64
	nav        render.NavContext
	snapshot   *inventory.Snapshot
}

type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithTimeout bounds every load. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithAfterFunc replaces the timer used to dismiss notifications.
func WithAfterFunc(f func(time.Duration, func())) Option {
	return func(c *Controller) { c.afterFunc = f }
}

func NewController(v View, s Storage, load Loader, opts ...Option) *Controller {
	c := &Controller{
		view:    v,
		storage: s,
		load:    load,
		logger:  zerolog.Nop(),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		state: StateConfig,
		nav:   render.DefaultNav(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if collapsed, ok := s.Get(KeySidebarCollapsed); ok {
		c.nav.Collapsed = collapsed == "true"
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Nav returns a copy of the navigation context.
func (c *Controller) Nav() render.NavContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	nav := c.nav
	nav.Items = append([]render.NavItem(nil), c.nav.Items...)
	return nav
}

// StoredKey returns the persisted API key, if any.
func (c *Controller) StoredKey() (string, bool) {
	return c.storage.Get(KeyAPIKey)
}

func (c *Controller) show(s State) {
	c.state = s
	switch s {
	case StateData, StateIDs:
		c.nav.Active = s.String()
	}
	c.view.Show(s)
}

// Submit loads the project tree and shows target (StateData or StateIDs)
// on success or StateError on failure. A load superseded by a later
// Submit, Retry or Forget is discarded without touching the view. The load
// error, if any, is returned after it has been shown.
func (c *Controller) Submit(ctx context.Context, baseURL, apiKey string, remember bool, target State) error {
	baseURL = strings.TrimSpace(baseURL)
	apiKey = strings.TrimSpace(apiKey)
	if baseURL == "" || apiKey == "" {
		return ErrMissingCredentials
	}
	if target != StateIDs {
		target = StateData
	}

	if remember {
		if err := c.storage.Set(KeyAPIKey, apiKey); err != nil {
			return fmt.Errorf("persist api key: %w", err)
		}
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.show(StateLoading)
	c.mu.Unlock()

	logger := c.logger.With().Str("load_id", uuid.NewString()).Str("dokploy_url", baseURL).Logger()
	logger.Debug().Msg("loading projects")

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	projects, err := c.load(ctx, baseURL, apiKey)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		fetchTotal.WithLabelValues("stale").Inc()
		logger.Debug().Msg("discarding superseded load")
		return nil
	}
	fetchTotal.WithLabelValues(fetchOutcome(err)).Inc()

	if err != nil {
		logger.Warn().Err(err).Msg("load projects failed")
		msg := err.Error()
		if msg == "" {
			msg = defaultLoadError
		}
		c.snapshot = nil
		c.view.ShowError(msg)
		c.show(StateError)
		return err
	}

	c.snapshot = inventory.NewSnapshot(projects)
	logger.Info().
		Int("projects", c.snapshot.Totals.Projects).
		Int("identifiers", c.snapshot.IDs.Count()).
		Msg("projects loaded")
	c.view.ShowData(c.snapshot)
	c.show(target)
	return nil
}

// Retry leaves the error state for the config form. It reports false when
// the controller is not in the error state.
func (c *Controller) Retry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateError {
		return false
	}
	c.generation++
	c.show(StateConfig)
	return true
}

// ShowIDs switches a loaded dashboard to the identifier view.
func (c *Controller) ShowIDs() bool {
	return c.switchPanel(StateIDs)
}

// ShowDashboard switches the identifier view back to the dashboard.
func (c *Controller) ShowDashboard() bool {
	return c.switchPanel(StateData)
}

func (c *Controller) switchPanel(s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil || (c.state != StateData && c.state != StateIDs) {
		return false
	}
	c.show(s)
	return true
}

// ToggleSidebar flips and persists the sidebar collapsed flag.
func (c *Controller) ToggleSidebar() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	collapsed := !c.nav.Collapsed
	if err := c.storage.Set(KeySidebarCollapsed, strconv.FormatBool(collapsed)); err != nil {
		return c.nav.Collapsed, fmt.Errorf("persist sidebar state: %w", err)
	}
	c.nav.Collapsed = collapsed
	return collapsed, nil
}

// Forget clears the persisted API key and returns to the config form.
func (c *Controller) Forget() error {
	if err := c.storage.Remove(KeyAPIKey); err != nil {
		return fmt.Errorf("remove api key: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.snapshot = nil
	c.show(StateConfig)
	return nil
}

// Copy writes value to the clipboard and shows a notification naming
// label. Both outcomes are dismissed after NotificationTTL.
func (c *Controller) Copy(ctx context.Context, clip Clipboard, value, label string) error {
	if err := clip.WriteText(ctx, value); err != nil {
		cerr := &ClipboardError{Err: err}
		c.logger.Error().Err(err).Str("label", label).Msg("clipboard write failed")
		c.notify("Failed to copy to clipboard", true)
		return cerr
	}
	c.notify("Copied "+label+" to clipboard!", false)
	return nil
}

func (c *Controller) notify(message string, failed bool) {
	c.mu.Lock()
	c.notifySeq++
	n := Notification{ID: c.notifySeq, Message: message, Failed: failed}
	c.view.Notify(n)
	c.mu.Unlock()

	c.afterFunc(NotificationTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.view.Dismiss(n)
	})
}
