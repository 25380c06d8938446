package view

import (
	"sync"

	"github.com/edvin/dokdash/internal/inventory"
)

// MemoryStorage is a Storage kept in process memory.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Recorder is a View that keeps what it was asked to draw. Request-scoped
// handlers read it back to render a page; tests inspect it directly.
type Recorder struct {
	mu       sync.Mutex
	states   []State
	snapshot *inventory.Snapshot
	errMsg   string
	active   []Notification
	notified []Notification
}

func (r *Recorder) Show(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *Recorder) ShowData(s *inventory.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = s
}

func (r *Recorder) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = message
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = append(r.active, n)
	r.notified = append(r.notified, n)
}

func (r *Recorder) Dismiss(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.active {
		if a.ID == n.ID {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}

// Current returns the last state shown, or StateConfig.
func (r *Recorder) Current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return StateConfig
	}
	return r.states[len(r.states)-1]
}

// States returns every state shown, in order.
func (r *Recorder) States() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func (r *Recorder) Snapshot() *inventory.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

func (r *Recorder) Error() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// Active returns the notifications not yet dismissed.
func (r *Recorder) Active() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.active...)
}

// Notified returns every notification ever shown.
func (r *Recorder) Notified() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notified...)
}
