package cycle

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/KirkDiggler/lightmatch/internal/common/clock"
)

// State is the lifecycle state of a cycle
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateStopped State = "stopped"
)

// Display draws the highlight
type Display interface {
	HighlightCell(index int)
	ClearHighlights()
}

// Config holds the cycle dependencies
type Config struct {
	Clock   clock.Clock
	Display Display
}

// Cycle advances the highlighted cell on a fixed interval.
//
// Every scheduled tick carries the generation it was scheduled in. Pause and
// Stop bump the generation under the lock, so a tick that was already in
// flight when the cycle left Running finds a stale generation and does nothing.
type Cycle struct {
	mu      sync.Mutex
	clock   clock.Clock
	display Display

	state    State
	gen      uint64
	timer    clockwork.Timer
	interval time.Duration

	cells   []string
	cursor  int
	lit     int
	correct string
}

// Snapshot is the cycle position at a point in time
type Snapshot struct {
	State         State
	Cursor        int
	Highlighted   int
	CorrectAnswer string
}

// New creates an idle cycle
func New(cfg *Config) (*Cycle, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.Display == nil {
		return nil, ErrNilDisplay
	}

	return &Cycle{
		clock:   cfg.Clock,
		display: cfg.Display,
		state:   StateIdle,
		lit:     -1,
	}, nil
}

// Start highlights cells[0] immediately and then advances every interval.
// It may be called from Idle or Paused; a paused cycle takes the new board.
func (c *Cycle) Start(cells []string, interval time.Duration) error {
	if len(cells) == 0 {
		return ErrEmptyBoard
	}
	if interval <= 0 {
		return ErrInvalidInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateRunning:
		return ErrAlreadyRunning
	case StateStopped:
		return ErrStopped
	}

	c.cells = append([]string(nil), cells...)
	c.interval = interval
	c.state = StateRunning
	c.gen++

	c.display.ClearHighlights()
	c.highlight(0)
	c.cursor = 1
	c.schedule()

	return nil
}

// Pause cancels the pending tick and returns the position as it stood at the
// instant of pausing. Pausing a cycle that is not running changes nothing.
func (c *Cycle) Pause() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return c.snapshot()
	}

	snap := c.snapshot()
	c.cancel()
	c.state = StatePaused
	c.display.ClearHighlights()
	c.lit = -1
	snap.State = StatePaused

	return snap
}

// Resume continues a paused cycle on the same board, relighting the cell it was paused on
func (c *Cycle) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePaused {
		return ErrNotPaused
	}

	c.state = StateRunning
	c.gen++
	c.highlight(c.cursor - 1)
	c.schedule()

	return nil
}

// Stop cancels the cycle for good. Stopping twice is a no-op.
func (c *Cycle) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateStopped {
		return
	}
	wasLit := c.lit >= 0

	c.cancel()
	c.state = StateStopped
	c.lit = -1
	if wasLit {
		c.display.ClearHighlights()
	}
}

// Snapshot returns the current position
func (c *Cycle) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// State returns the lifecycle state
func (c *Cycle) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Cycle) snapshot() Snapshot {
	return Snapshot{
		State:         c.state,
		Cursor:        c.cursor,
		Highlighted:   c.lit,
		CorrectAnswer: c.correct,
	}
}

func (c *Cycle) schedule() {
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.interval, func() {
		c.tick(gen)
	})
}

func (c *Cycle) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Cycle) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.state != StateRunning {
		return
	}

	c.display.ClearHighlights()
	if c.cursor < len(c.cells) {
		c.highlight(c.cursor)
		c.cursor++
	} else {
		c.highlight(0)
		c.cursor = 1
	}
	c.schedule()
}

func (c *Cycle) highlight(index int) {
	c.lit = index
	c.correct = c.cells[index]
	c.display.HighlightCell(index)
}
