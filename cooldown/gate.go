package cooldown

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Clock returns the current time. Injectable for tests.
type Clock func() time.Time

// Wait describes how long until a command becomes available again.
type Wait struct {
	Hours   int
	Minutes int
	Seconds int
}

// TotalSeconds returns the remaining wait rounded up to whole seconds.
func (w Wait) TotalSeconds() int {
	return w.Hours*3600 + w.Minutes*60 + w.Seconds
}

func (w Wait) String() string {
	return fmt.Sprintf("%dh %dm %ds", w.Hours, w.Minutes, w.Seconds)
}

// Gate enforces a minimum elapsed time between successive invocations of the
// same command by the same user. State lives only in process memory, so a
// restart clears every active cooldown.
type Gate struct {
	mu        sync.Mutex
	deadlines map[string]map[string]time.Time
	now       Clock
}

// NewGate creates a gate using the wall clock.
func NewGate() *Gate {
	return NewGateWithClock(time.Now)
}

// NewGateWithClock creates a gate with a caller-supplied clock.
func NewGateWithClock(now Clock) *Gate {
	return &Gate{
		deadlines: make(map[string]map[string]time.Time),
		now:       now,
	}
}

// CheckAndStamp reports whether the user may invoke the command now. If the
// previous window has elapsed (or none exists) the gate records a new stamp
// and returns true. Otherwise it returns false and the remaining wait,
// rounded up to whole seconds. A zero window always allows.
func (g *Gate) CheckAndStamp(command, userID string, window time.Duration) (bool, Wait) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	users := g.deadlines[command]
	if users == nil {
		users = make(map[string]time.Time)
		g.deadlines[command] = users
	}

	if deadline, ok := users[userID]; ok {
		if now.Before(deadline) {
			return false, decompose(deadline.Sub(now))
		}
		delete(users, userID)
	}

	users[userID] = now.Add(window)
	return true, Wait{}
}

// Sweep drops every entry whose window has elapsed. The gate also expires
// entries lazily on check; sweeping just keeps the maps from accumulating
// stamps for users who never return.
func (g *Gate) Sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for command, users := range g.deadlines {
		for userID, deadline := range users {
			if !now.Before(deadline) {
				delete(users, userID)
			}
		}
		if len(users) == 0 {
			delete(g.deadlines, command)
		}
	}
}

func decompose(remaining time.Duration) Wait {
	total := int(math.Ceil(remaining.Seconds()))
	return Wait{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}
