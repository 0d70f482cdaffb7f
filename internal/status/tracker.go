package status

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Notice is a transient acknowledgment shown to the user, e.g. "project saved".
type Notice struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Tracker holds at most one active notice per scope and clears each one after
// a fixed interval. Setting a new notice for a scope replaces the previous one
// and restarts its clear timer, so a stale clear never removes a fresh notice.
type Tracker struct {
	mu      sync.Mutex
	ttl     time.Duration
	notices map[string]Notice
	timers  map[string]*time.Timer
}

func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		ttl:     ttl,
		notices: make(map[string]Notice),
		timers:  make(map[string]*time.Timer),
	}
}

func (t *Tracker) Set(scope, message string) Notice {
	t.mu.Lock()
	defer t.mu.Unlock()

	notice := Notice{
		ID:        ulid.Make().String(),
		Scope:     scope,
		Message:   message,
		CreatedAt: time.Now(),
	}
	t.notices[scope] = notice

	if timer, ok := t.timers[scope]; ok {
		timer.Stop()
	}
	id := notice.ID
	t.timers[scope] = time.AfterFunc(t.ttl, func() {
		t.clear(scope, id)
	})
	return notice
}

func (t *Tracker) clear(scope, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// Only clear if the notice has not been replaced in the meantime.
	if notice, ok := t.notices[scope]; ok && notice.ID == id {
		delete(t.notices, scope)
		delete(t.timers, scope)
	}
}

func (t *Tracker) Get(scope string) (Notice, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	notice, ok := t.notices[scope]
	return notice, ok
}

// Active returns all notices that have not yet cleared.
func (t *Tracker) Active() []Notice {
	t.mu.Lock()
	defer t.mu.Unlock()
	notices := make([]Notice, 0, len(t.notices))
	for _, notice := range t.notices {
		notices = append(notices, notice)
	}
	return notices
}
