package clock

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TimeoutFunc handles a fired turn timer for one game.
type TimeoutFunc func(gameID string)

// TurnClock owns one timer per active game. Arming replaces any previous
// timer for the same game, so at most one timeout can be pending per match.
// The singleflight group collapses a firing timer racing a manual timeout
// check into a single handler run.
type TurnClock struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	limit  time.Duration
	fire   TimeoutFunc
	group  singleflight.Group
}

func NewTurnClock(limit time.Duration, fire TimeoutFunc) *TurnClock {
	return &TurnClock{
		timers: map[string]*time.Timer{},
		limit:  limit,
		fire:   fire,
	}
}

// Arm starts (or restarts) the turn timer for a game with the full limit.
func (c *TurnClock) Arm(gameID string) {
	c.ArmIn(gameID, c.limit)
}

// ArmIn starts (or restarts) the timer with an explicit delay, so a stale
// fire can re-arm for the remainder of the turn instead of a fresh limit.
func (c *TurnClock) ArmIn(gameID string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[gameID]; ok {
		t.Stop()
	}
	c.timers[gameID] = time.AfterFunc(d, func() {
		c.remove(gameID)
		c.Trigger(gameID)
	})
}

// Disarm cancels any pending timer for a game. Safe to call for games that
// have no timer.
func (c *TurnClock) Disarm(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[gameID]; ok {
		t.Stop()
		delete(c.timers, gameID)
	}
}

// Trigger runs the timeout handler for a game, deduplicating against a
// concurrently firing timer. Used by the client-driven timeout check.
func (c *TurnClock) Trigger(gameID string) {
	c.group.Do(gameID, func() (interface{}, error) {
		c.fire(gameID)
		return nil, nil
	})
}

// Active reports whether a timer is pending for the game.
func (c *TurnClock) Active(gameID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.timers[gameID]
	return ok
}

// Stop cancels every pending timer. Called on shutdown.
func (c *TurnClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

func (c *TurnClock) remove(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.timers, gameID)
}
