package notify

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

// Recorder keeps the most recent notifications so a client that polls can
// show the ones still on screen.
type Recorder struct {
	clock clockwork.Clock
	limit int

	mu    sync.Mutex
	items []Notification
}

func NewRecorder(clock clockwork.Clock, limit int) *Recorder {
	return &Recorder{clock: clock, limit: limit}
}

func (r *Recorder) Deliver(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, n)
	if r.limit > 0 && len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
}

// All returns every retained notification, oldest first
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Active returns the notifications that have not expired yet
func (r *Recorder) Active() []Notification {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, 0, len(r.items))
	for _, n := range r.items {
		if now.Before(n.ExpiresAt) {
			out = append(out, n)
		}
	}
	return out
}
