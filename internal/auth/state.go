package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// loginStates holds one-shot OAuth state values until they expire.
type loginStates struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	expires map[string]time.Time
}

func newLoginStates(ttl time.Duration) *loginStates {
	return &loginStates{ttl: ttl, now: time.Now, expires: make(map[string]time.Time)}
}

// issue returns a fresh state and drops any that already lapsed.
func (l *loginStates) issue() string {
	state := uuid.NewString()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for k, exp := range l.expires {
		if now.After(exp) {
			delete(l.expires, k)
		}
	}
	l.expires[state] = now.Add(l.ttl)
	return state
}

// redeem reports whether state was issued and is still live. A state can be
// redeemed once.
func (l *loginStates) redeem(state string) bool {
	l.mu.Lock()
	exp, ok := l.expires[state]
	delete(l.expires, state)
	l.mu.Unlock()

	return ok && !l.now().After(exp)
}
