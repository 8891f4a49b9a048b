package cycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

type recordingDisplay struct {
	mu         sync.Mutex
	lit        map[int]bool
	highlights []int
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{lit: make(map[int]bool)}
}

func (d *recordingDisplay) HighlightCell(index int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lit[index] = true
	d.highlights = append(d.highlights, index)
}

func (d *recordingDisplay) ClearHighlights() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lit = make(map[int]bool)
}

func (d *recordingDisplay) litCells() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	cells := []int{}
	for i := range d.lit {
		cells = append(cells, i)
	}
	return cells
}

func (d *recordingDisplay) history() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.highlights...)
}

type CycleTestSuite struct {
	suite.Suite
	clock    *clockwork.FakeClock
	display  *recordingDisplay
	cycle    *Cycle
	cells    []string
	interval time.Duration
}

func (s *CycleTestSuite) SetupTest() {
	s.clock = clockwork.NewFakeClock()
	s.display = newRecordingDisplay()
	s.cells = []string{"gato", "pato", "sapo", "sapo", "gato", "pato"}
	s.interval = 800 * time.Millisecond

	c, err := New(&Config{
		Clock:   s.clock,
		Display: s.display,
	})
	s.Require().NoError(err)
	s.cycle = c
}

func (s *CycleTestSuite) TearDownTest() {
	s.cycle.Stop()
}

func TestCycleTestSuite(t *testing.T) {
	suite.Run(t, new(CycleTestSuite))
}

// tick advances the fake clock by d and waits for the cycle to re-arm
func (s *CycleTestSuite) tick(d time.Duration) {
	s.clock.Advance(d)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Require().NoError(s.clock.BlockUntilContext(ctx, 1))
}

func (s *CycleTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Display: s.display})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{Clock: s.clock})
	s.ErrorIs(err, ErrNilDisplay)
}

func (s *CycleTestSuite) TestIdleBeforeStart() {
	snap := s.cycle.Snapshot()
	s.Equal(StateIdle, snap.State)
	s.Equal(0, snap.Cursor)
	s.Equal(-1, snap.Highlighted)
	s.Empty(snap.CorrectAnswer)
}

func (s *CycleTestSuite) TestStartHighlightsFirstCellImmediately() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))

	snap := s.cycle.Snapshot()
	s.Equal(StateRunning, snap.State)
	s.Equal(1, snap.Cursor)
	s.Equal(0, snap.Highlighted)
	s.Equal("gato", snap.CorrectAnswer)
	s.Equal([]int{0}, s.display.litCells())
}

func (s *CycleTestSuite) TestStartRejectsBadInput() {
	s.ErrorIs(s.cycle.Start(nil, s.interval), ErrEmptyBoard)
	s.ErrorIs(s.cycle.Start(s.cells, 0), ErrInvalidInterval)
	s.Equal(StateIdle, s.cycle.State())
}

func (s *CycleTestSuite) TestStartWhileRunning() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))
	s.ErrorIs(s.cycle.Start(s.cells, s.interval), ErrAlreadyRunning)
}

func (s *CycleTestSuite) TestTickWaitsForFullInterval() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))

	s.clock.Advance(s.interval - time.Millisecond)
	s.Equal(1, s.cycle.Snapshot().Cursor)

	s.tick(time.Millisecond)
	snap := s.cycle.Snapshot()
	s.Equal(2, snap.Cursor)
	s.Equal(1, snap.Highlighted)
	s.Equal("pato", snap.CorrectAnswer)
}

func (s *CycleTestSuite) TestIntervalPerDifficulty() {
	for difficulty, profile := range models.DefaultDifficultyProfiles() {
		s.Run(string(difficulty), func() {
			fc := clockwork.NewFakeClock()
			c, err := New(&Config{Clock: fc, Display: newRecordingDisplay()})
			s.Require().NoError(err)
			defer c.Stop()

			s.Require().NoError(c.Start(s.cells, profile.Time))
			fc.Advance(profile.Time - time.Millisecond)
			s.Equal(1, c.Snapshot().Cursor)

			fc.Advance(time.Millisecond)
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			s.Require().NoError(fc.BlockUntilContext(ctx, 1))
			s.Equal(2, c.Snapshot().Cursor)
		})
	}
}

func (s *CycleTestSuite) TestCorrectAnswerFollowsHighlight() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))

	for i := 1; i < len(s.cells); i++ {
		s.tick(s.interval)
		snap := s.cycle.Snapshot()
		s.Equal(i, snap.Highlighted)
		s.Equal(i+1, snap.Cursor)
		s.Equal(s.cells[snap.Cursor-1], snap.CorrectAnswer)
		s.Equal([]int{i}, s.display.litCells())
	}
}

func (s *CycleTestSuite) TestWrapsToFirstCell() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))

	// N-1 ticks reach the last cell, one more wraps
	for i := 1; i < len(s.cells); i++ {
		s.tick(s.interval)
	}
	s.Equal(len(s.cells)-1, s.cycle.Snapshot().Highlighted)

	s.tick(s.interval)
	snap := s.cycle.Snapshot()
	s.Equal(0, snap.Highlighted)
	s.Equal(1, snap.Cursor)
	s.Equal("gato", snap.CorrectAnswer)

	s.tick(s.interval)
	s.Equal(1, s.cycle.Snapshot().Highlighted)
}

func (s *CycleTestSuite) TestFullWrapTakesCellCountTicks() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))

	for i := 0; i < len(s.cells); i++ {
		s.tick(s.interval)
	}
	s.Equal([]int{0, 1, 2, 3, 4, 5, 0}, s.display.history())
}

func (s *CycleTestSuite) TestPauseCapturesAnswerAndClears() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))
	s.tick(s.interval)
	s.tick(s.interval)

	snap := s.cycle.Pause()
	s.Equal(StatePaused, snap.State)
	s.Equal(2, snap.Highlighted)
	s.Equal("sapo", snap.CorrectAnswer)
	s.Empty(s.display.litCells())

	s.clock.Advance(s.interval * 5)
	after := s.cycle.Snapshot()
	s.Equal(3, after.Cursor)
	s.Equal("sapo", after.CorrectAnswer)
	s.Equal(-1, after.Highlighted)
}

func (s *CycleTestSuite) TestStaleTickIsIgnored() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))

	s.cycle.mu.Lock()
	staleGen := s.cycle.gen
	s.cycle.mu.Unlock()

	s.cycle.Pause()

	// a tick that was already in flight when the cycle paused
	s.cycle.tick(staleGen)

	snap := s.cycle.Snapshot()
	s.Equal(1, snap.Cursor)
	s.Equal("gato", snap.CorrectAnswer)
	s.Empty(s.display.litCells())
}

func (s *CycleTestSuite) TestPauseWhenNotRunningIsNoop() {
	snap := s.cycle.Pause()
	s.Equal(StateIdle, snap.State)

	s.Require().NoError(s.cycle.Start(s.cells, s.interval))
	s.cycle.Pause()
	snap = s.cycle.Pause()
	s.Equal(StatePaused, snap.State)
}

func (s *CycleTestSuite) TestResume() {
	s.ErrorIs(s.cycle.Resume(), ErrNotPaused)

	s.Require().NoError(s.cycle.Start(s.cells, s.interval))
	s.tick(s.interval)
	s.cycle.Pause()

	s.Require().NoError(s.cycle.Resume())
	snap := s.cycle.Snapshot()
	s.Equal(StateRunning, snap.State)
	s.Equal(1, snap.Highlighted)
	s.Equal([]int{1}, s.display.litCells())

	s.tick(s.interval)
	s.Equal(2, s.cycle.Snapshot().Highlighted)
}

func (s *CycleTestSuite) TestStartAfterPauseTakesNewBoard() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))
	s.tick(s.interval)
	s.cycle.Pause()

	next := []string{"sapo", "sapo", "sapo", "sapo", "sapo", "gato"}
	s.Require().NoError(s.cycle.Start(next, 400*time.Millisecond))

	snap := s.cycle.Snapshot()
	s.Equal(1, snap.Cursor)
	s.Equal("sapo", snap.CorrectAnswer)

	for i := 0; i < 5; i++ {
		s.tick(400 * time.Millisecond)
	}
	s.Equal("gato", s.cycle.Snapshot().CorrectAnswer)
}

func (s *CycleTestSuite) TestStopIsIdempotent() {
	s.Require().NoError(s.cycle.Start(s.cells, s.interval))

	s.cycle.Stop()
	s.cycle.Stop()

	s.Equal(StateStopped, s.cycle.State())
	s.Empty(s.display.litCells())

	s.clock.Advance(s.interval * 10)
	s.Equal(1, s.cycle.Snapshot().Cursor)
	s.Equal([]int{0}, s.display.history())

	s.ErrorIs(s.cycle.Start(s.cells, s.interval), ErrStopped)
}

func (s *CycleTestSuite) TestStopBeforeStart() {
	s.cycle.Stop()
	s.Equal(StateStopped, s.cycle.State())
}
