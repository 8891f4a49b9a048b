package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	boardMocks "github.com/KirkDiggler/lightmatch/internal/board/mocks"
	"github.com/KirkDiggler/lightmatch/internal/catalog"
	"github.com/KirkDiggler/lightmatch/internal/common/uuid"
	"github.com/KirkDiggler/lightmatch/internal/models"
	leaderboardRepo "github.com/KirkDiggler/lightmatch/internal/repositories/leaderboard"
	leaderboardMocks "github.com/KirkDiggler/lightmatch/internal/repositories/leaderboard/mocks"
	settingsRepo "github.com/KirkDiggler/lightmatch/internal/repositories/settings"
	settingsMocks "github.com/KirkDiggler/lightmatch/internal/repositories/settings/mocks"
	audioMocks "github.com/KirkDiggler/lightmatch/internal/services/game/mocks"
)

// recordingRenderer keeps everything drawn so tests can inspect it
type recordingRenderer struct {
	mu         sync.Mutex
	screens    []Screen
	countdowns []int
	headers    []Header
	boards     [][]models.AnswerOption
	highlights []int
	lit        int
	feedback   map[int]models.CellFeedback
	answers    []Feedback
	options    []models.AnswerOption
	onSelect   func(label string)
	controlsOn bool
	results    []*models.Result
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		lit:      -1,
		feedback: make(map[int]models.CellFeedback),
	}
}

func (r *recordingRenderer) ShowScreen(screen Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = append(r.screens, screen)
}

func (r *recordingRenderer) RenderCountdown(value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countdowns = append(r.countdowns, value)
}

func (r *recordingRenderer) RenderHeader(header *Header) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers = append(r.headers, *header)
}

func (r *recordingRenderer) RenderBoard(cells []models.AnswerOption) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = append(r.boards, cells)
}

func (r *recordingRenderer) HighlightCell(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlights = append(r.highlights, index)
	r.lit = index
}

func (r *recordingRenderer) ClearHighlights() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lit = -1
}

func (r *recordingRenderer) MarkCellFeedback(index int, feedback models.CellFeedback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback[index] = feedback
}

func (r *recordingRenderer) RenderFeedback(feedback *Feedback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, *feedback)
}

func (r *recordingRenderer) ClearFeedback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = make(map[int]models.CellFeedback)
	r.lit = -1
}

func (r *recordingRenderer) RenderAnswerOptions(options []models.AnswerOption, onSelect func(label string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options = options
	r.onSelect = onSelect
}

func (r *recordingRenderer) SetControlsEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controlsOn = enabled
}

func (r *recordingRenderer) RenderResults(result *models.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *recordingRenderer) choose(label string) {
	r.mu.Lock()
	onSelect := r.onSelect
	r.mu.Unlock()
	onSelect(label)
}

func (r *recordingRenderer) lastScreen() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.screens) == 0 {
		return ""
	}
	return r.screens[len(r.screens)-1]
}

func (r *recordingRenderer) countdownValues() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.countdowns...)
}

func (r *recordingRenderer) boardCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boards)
}

func (r *recordingRenderer) feedbackAt(index int) models.CellFeedback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.feedback[index]
}

func (r *recordingRenderer) litCell() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lit
}

func (r *recordingRenderer) controlsEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controlsOn
}

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSettings    *settingsMocks.MockRepository
	mockLeaderboard *leaderboardMocks.MockRepository
	mockSampler     *boardMocks.MockSampler
	mockAudio       *audioMocks.MockAudio
	renderer        *recordingRenderer
	clock           *clockwork.FakeClock
	catalog         *catalog.Catalog
	service         *service
	ctx             context.Context
	cells           []string
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSettings = settingsMocks.NewMockRepository(s.mockCtrl)
	s.mockLeaderboard = leaderboardMocks.NewMockRepository(s.mockCtrl)
	s.mockSampler = boardMocks.NewMockSampler(s.mockCtrl)
	s.mockAudio = audioMocks.NewMockAudio(s.mockCtrl)
	s.renderer = newRecordingRenderer()
	s.clock = clockwork.NewFakeClock()
	s.ctx = context.Background()
	s.cells = []string{"gato", "pato", "sapo", "sapo", "gato", "pato"}

	cat, err := catalog.New(nil)
	s.Require().NoError(err)
	s.catalog = cat

	s.mockSampler.EXPECT().Sample(gomock.Any(), models.BoardSize).Return(s.cells).AnyTimes()
	s.mockSampler.EXPECT().Shuffle(gomock.Any()).DoAndReturn(func(labels []string) []string {
		return append([]string(nil), labels...)
	}).AnyTimes()

	s.allowAudio(s.mockAudio)
	s.service = s.newService(s.mockAudio)
}

func (s *GameServiceTestSuite) TearDownTest() {
	if s.service != nil {
		_, _ = s.service.ReturnToMenu(s.ctx, &ReturnToMenuInput{})
	}
	s.mockCtrl.Finish()
}

func (s *GameServiceTestSuite) newService(audio Audio) *service {
	svc, err := New(&Config{
		ProfileID:       "profile-1",
		SettingsRepo:    s.mockSettings,
		LeaderboardRepo: s.mockLeaderboard,
		Sampler:         s.mockSampler,
		Catalog:         s.catalog,
		Renderer:        s.renderer,
		Audio:           audio,
		Clock:           s.clock,
		UUIDGenerator:   uuid.New(),
	})
	s.Require().NoError(err)
	return svc
}

func (s *GameServiceTestSuite) allowAudio(audio *audioMocks.MockAudio) {
	audio.EXPECT().PlayStart().Return(nil).AnyTimes()
	audio.EXPECT().PlayCorrect().Return(nil).AnyTimes()
	audio.EXPECT().PlayWrong().Return(nil).AnyTimes()
	audio.EXPECT().PlayBackgroundMusic().Return(nil).AnyTimes()
	audio.EXPECT().StopBackgroundMusic().Return(nil).AnyTimes()
}

func (s *GameServiceTestSuite) state() *GetStateOutput {
	out, err := s.service.GetState(s.ctx, &GetStateInput{})
	s.Require().NoError(err)
	return out
}

// waitFor polls the state; timer callbacks run on their own goroutines
func (s *GameServiceTestSuite) waitFor(cond func(out *GetStateOutput) bool) {
	s.Require().Eventually(func() bool {
		out, err := s.service.GetState(s.ctx, &GetStateInput{})
		return err == nil && cond(out)
	}, time.Second, time.Millisecond)
}

func (s *GameServiceTestSuite) runCountdown() {
	for n := DefaultCountdownFrom - 1; n >= 1; n-- {
		want := n
		s.clock.Advance(DefaultCountdownTick)
		s.waitFor(func(out *GetStateOutput) bool { return out.Countdown == want })
	}
	s.clock.Advance(DefaultCountdownTick)
	s.waitFor(func(out *GetStateOutput) bool { return out.Phase == models.GamePhasePlaying })
}

func (s *GameServiceTestSuite) start(mode models.GameMode, difficulty models.Difficulty, rounds int, names ...string) *StartGameOutput {
	out, err := s.service.StartGame(s.ctx, &StartGameInput{
		Mode:       mode,
		Names:      names,
		Difficulty: difficulty,
		Rounds:     rounds,
	})
	s.Require().NoError(err)
	return out
}

func (s *GameServiceTestSuite) answer(label string) *SubmitAnswerOutput {
	out, err := s.service.SubmitAnswer(s.ctx, &SubmitAnswerInput{Label: label})
	s.Require().NoError(err)
	return out
}

// finishFeedback lets the feedback delay expire and waits for the next phase
func (s *GameServiceTestSuite) finishFeedback(cond func(out *GetStateOutput) bool) {
	s.clock.Advance(DefaultFeedbackDelay)
	s.waitFor(cond)
}

func (s *GameServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrMissingProfileID)

	_, err = New(&Config{ProfileID: "p"})
	s.ErrorIs(err, ErrNilSettingsRepo)

	_, err = New(&Config{
		ProfileID:       "p",
		SettingsRepo:    s.mockSettings,
		LeaderboardRepo: s.mockLeaderboard,
		Sampler:         s.mockSampler,
		Catalog:         s.catalog,
		Renderer:        s.renderer,
	})
	s.ErrorIs(err, ErrNilAudio)
}

func (s *GameServiceTestSuite) TestStartGameRejectsInvalidSetup() {
	_, err := s.service.StartGame(s.ctx, &StartGameInput{Mode: "coop", Rounds: 1})
	s.ErrorIs(err, ErrInvalidMode)

	_, err = s.service.StartGame(s.ctx, &StartGameInput{Mode: models.GameModeSolo, Rounds: 0})
	s.ErrorIs(err, ErrInvalidRounds)

	_, err = s.service.StartGame(s.ctx, &StartGameInput{Mode: models.GameModeSolo, Rounds: 1, Difficulty: "extreme"})
	s.ErrorIs(err, ErrInvalidDifficulty)

	s.Equal(models.GamePhaseMenu, s.state().Phase)
}

func (s *GameServiceTestSuite) TestStartGameRunsCountdownBeforePlay() {
	out := s.start(models.GameModeSolo, models.DifficultyEasy, 3, "Ana")
	s.NotEmpty(out.SessionID)
	s.Equal([]models.PlayerResult{{Name: "Ana"}}, out.Players)

	st := s.state()
	s.Equal(models.GamePhaseCountdown, st.Phase)
	s.Equal(1, st.CurrentRound)
	s.Equal(3, st.Countdown)
	s.Equal(ScreenGame, s.renderer.lastScreen())
	s.Nil(st.Board)

	// Nothing happens before a full countdown step
	s.clock.Advance(DefaultCountdownTick - time.Millisecond)
	s.Equal(3, s.state().Countdown)
	s.clock.Advance(time.Millisecond)
	s.waitFor(func(out *GetStateOutput) bool { return out.Countdown == 2 })

	s.clock.Advance(DefaultCountdownTick)
	s.waitFor(func(out *GetStateOutput) bool { return out.Countdown == 1 })
	s.clock.Advance(DefaultCountdownTick)
	s.waitFor(func(out *GetStateOutput) bool { return out.Phase == models.GamePhasePlaying })

	st = s.state()
	s.Equal([]int{3, 2, 1}, s.renderer.countdownValues())
	s.Equal(0, st.Countdown)
	s.Require().NotNil(st.Board)
	s.Equal(s.cells, st.Board.Cells)
	s.Equal(1, st.Board.Cursor)
	s.Equal("gato", st.Board.CorrectAnswer)
	s.Equal(0, s.renderer.litCell())
	s.True(s.renderer.controlsEnabled())
}

func (s *GameServiceTestSuite) TestCorrectAnswerAwardsDifficultyPoints() {
	testCases := []struct {
		difficulty models.Difficulty
		points     int
	}{
		{models.DifficultyEasy, 5},
		{models.DifficultyMedium, 10},
		{models.DifficultyHard, 15},
	}

	for _, tc := range testCases {
		s.start(models.GameModeSolo, tc.difficulty, 3)
		s.runCountdown()

		out := s.answer("gato")
		s.True(out.Correct, tc.difficulty)
		s.Equal(tc.points, out.PointsAwarded, tc.difficulty)
		s.Equal(tc.points, out.Score, tc.difficulty)
		s.Equal(DefaultSoloName, out.PlayerName)
	}
}

func (s *GameServiceTestSuite) TestWrongAnswerScoresNothing() {
	s.start(models.GameModeSolo, models.DifficultyEasy, 3)
	s.runCountdown()

	out := s.answer("sapo")
	s.False(out.Correct)
	s.Equal("gato", out.CorrectAnswer)
	s.Equal(0, out.PointsAwarded)
	s.Equal(0, out.Score)
	s.Equal(models.CellFeedbackWrong, s.renderer.feedbackAt(0))

	s.renderer.mu.Lock()
	defer s.renderer.mu.Unlock()
	s.Equal([]Feedback{{PlayerName: DefaultSoloName, CorrectAnswer: "gato"}}, s.renderer.answers)
}

func (s *GameServiceTestSuite) TestAnswerFollowsHighlight() {
	s.start(models.GameModeSolo, models.DifficultyEasy, 3)
	s.runCountdown()

	s.clock.Advance(800 * time.Millisecond)
	s.waitFor(func(out *GetStateOutput) bool { return out.Board.Cursor == 2 })

	st := s.state()
	s.Equal("pato", st.Board.CorrectAnswer)

	out := s.answer("pato")
	s.True(out.Correct)
	s.Equal(models.CellFeedbackCorrect, s.renderer.feedbackAt(1))
}

func (s *GameServiceTestSuite) TestFeedbackFreezesHighlight() {
	s.start(models.GameModeSolo, models.DifficultyEasy, 3)
	s.runCountdown()

	s.answer("gato")
	st := s.state()
	s.Equal(models.GamePhaseFeedback, st.Phase)
	s.False(s.renderer.controlsEnabled())
	s.Equal(-1, s.renderer.litCell())

	// The cycle interval passes without a highlight advance
	s.clock.Advance(800 * time.Millisecond)
	st = s.state()
	s.Equal(models.GamePhaseFeedback, st.Phase)
	s.Equal(1, st.Board.Cursor)
	s.Equal("gato", st.Board.CorrectAnswer)
	s.Equal(-1, s.renderer.litCell())

	_, err := s.service.SubmitAnswer(s.ctx, &SubmitAnswerInput{Label: "gato"})
	s.ErrorIs(err, ErrNotAcceptingAnswers)
	s.Equal(5, s.state().Players[0].Score)
}

func (s *GameServiceTestSuite) TestSubmitAnswerOutsidePlay() {
	_, err := s.service.SubmitAnswer(s.ctx, &SubmitAnswerInput{Label: "gato"})
	s.ErrorIs(err, ErrNoGame)

	s.start(models.GameModeSolo, models.DifficultyEasy, 1)
	_, err = s.service.SubmitAnswer(s.ctx, &SubmitAnswerInput{Label: "gato"})
	s.ErrorIs(err, ErrNotAcceptingAnswers)

	_, err = s.service.SubmitAnswer(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *GameServiceTestSuite) TestAnswerButtonsSubmit() {
	s.start(models.GameModeSolo, models.DifficultyEasy, 3)
	s.runCountdown()

	s.renderer.choose("gato")

	st := s.state()
	s.Equal(models.GamePhaseFeedback, st.Phase)
	s.Equal(5, st.Players[0].Score)
}

func (s *GameServiceTestSuite) TestManualPointsOverrideDifficulty() {
	s.mockSettings.EXPECT().
		UpdateSettings(gomock.Any(), gomock.Any()).
		Return(&settingsRepo.UpdateSettingsOutput{}, nil)

	manual := true
	out, err := s.service.UpdateSettings(s.ctx, &UpdateSettingsInput{
		ManualPoints: &manual,
		Points:       map[models.Difficulty]int{models.DifficultyEasy: 7},
	})
	s.Require().NoError(err)
	s.True(out.Persisted)
	s.Equal(7, out.Settings.Points.Easy)

	s.start(models.GameModeSolo, models.DifficultyEasy, 1)
	s.runCountdown()

	answer := s.answer("gato")
	s.Equal(7, answer.PointsAwarded)
}

func (s *GameServiceTestSuite) TestSoloGameEndsAfterLastRound() {
	var recorded *leaderboardRepo.AddEntriesInput
	s.mockLeaderboard.EXPECT().
		AddEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *leaderboardRepo.AddEntriesInput) error {
			recorded = input
			return nil
		})

	s.start(models.GameModeSolo, models.DifficultyMedium, 2, "Ana")
	s.runCountdown()
	s.answer("gato")

	s.finishFeedback(func(out *GetStateOutput) bool {
		return out.Phase == models.GamePhaseCountdown && out.CurrentRound == 2
	})
	s.runCountdown()
	s.answer("pato")

	s.finishFeedback(func(out *GetStateOutput) bool { return out.Phase == models.GamePhaseResults })

	st := s.state()
	s.Equal(2, st.CurrentRound)
	s.Require().NotNil(st.Result)
	s.Equal(-1, st.Result.WinnerIndex)
	s.False(st.Result.IsDraw)
	s.Equal([]models.PlayerResult{{Name: "Ana", Score: 10}}, st.Result.Players)
	s.Equal(ScreenResults, s.renderer.lastScreen())
	s.Equal([]int{3, 2, 1, 3, 2, 1}, s.renderer.countdownValues())

	s.Require().NotNil(recorded)
	s.Require().Len(recorded.Entries, 1)
	s.Equal("Ana", recorded.Entries[0].Name)
	s.Equal(10, recorded.Entries[0].Score)
	s.Equal(models.DifficultyMedium, recorded.Entries[0].Difficulty)

	// No timers are left behind
	s.clock.Advance(10 * time.Second)
	s.Equal(models.GamePhaseResults, s.state().Phase)
}

func (s *GameServiceTestSuite) TestPvPRotatesPlayersEachRound() {
	s.mockLeaderboard.EXPECT().AddEntries(gomock.Any(), gomock.Any()).Return(nil)

	// Two rounds of two turns draw four boards and four answer orders
	s.mockSampler = boardMocks.NewMockSampler(s.mockCtrl)
	s.mockSampler.EXPECT().Sample(gomock.Any(), models.BoardSize).Return(s.cells).Times(4)
	s.mockSampler.EXPECT().Shuffle(gomock.Any()).DoAndReturn(func(labels []string) []string {
		return append([]string(nil), labels...)
	}).Times(4)
	s.service = s.newService(s.mockAudio)

	out := s.start(models.GameModePvP, models.DifficultyHard, 2, "Ana", "Bia")
	s.Equal(models.DifficultyEasy, out.Difficulty)

	type turn struct {
		round  int
		player int
	}
	var turns []turn
	record := func() {
		st := s.state()
		turns = append(turns, turn{st.CurrentRound, st.CurrentPlayerIndex})
	}

	s.runCountdown()
	record()
	s.answer("gato")

	s.finishFeedback(func(out *GetStateOutput) bool {
		return out.Phase == models.GamePhasePlaying && out.CurrentPlayerIndex == 1
	})
	record()
	s.answer("sapo")

	s.finishFeedback(func(out *GetStateOutput) bool {
		return out.Phase == models.GamePhaseCountdown && out.CurrentRound == 2
	})
	s.runCountdown()
	record()
	s.answer("gato")

	s.finishFeedback(func(out *GetStateOutput) bool {
		return out.Phase == models.GamePhasePlaying && out.CurrentPlayerIndex == 1
	})
	record()
	s.answer("sapo")

	s.finishFeedback(func(out *GetStateOutput) bool { return out.Phase == models.GamePhaseResults })

	s.Equal([]turn{{1, 0}, {1, 1}, {2, 0}, {2, 1}}, turns)
	s.Equal([]int{3, 2, 1, 3, 2, 1}, s.renderer.countdownValues())
	s.Equal(4, s.renderer.boardCount())

	result := s.state().Result
	s.Require().NotNil(result)
	s.Equal(0, result.WinnerIndex)
	s.Equal("Ana", result.Winner().Name)
	s.Equal(10, result.Players[0].Score)
	s.Equal(0, result.Players[1].Score)
}

func (s *GameServiceTestSuite) TestPvPTieIsDraw() {
	s.mockLeaderboard.EXPECT().AddEntries(gomock.Any(), gomock.Any()).Return(nil)

	s.start(models.GameModeTeam, models.DifficultyEasy, 1)
	s.runCountdown()
	s.answer("gato")
	s.finishFeedback(func(out *GetStateOutput) bool {
		return out.Phase == models.GamePhasePlaying && out.CurrentPlayerIndex == 1
	})
	s.answer("gato")
	s.finishFeedback(func(out *GetStateOutput) bool { return out.Phase == models.GamePhaseResults })

	result := s.state().Result
	s.Require().NotNil(result)
	s.True(result.IsDraw)
	s.Equal(-1, result.WinnerIndex)
	s.Nil(result.Winner())
	s.Equal("Team 1", result.Players[0].Name)
	s.Equal("Team 2", result.Players[1].Name)
}

func (s *GameServiceTestSuite) TestLeaderboardFailureStillShowsResults() {
	s.mockLeaderboard.EXPECT().AddEntries(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	s.start(models.GameModeSolo, models.DifficultyEasy, 1)
	s.runCountdown()
	s.answer("gato")
	s.finishFeedback(func(out *GetStateOutput) bool { return out.Phase == models.GamePhaseResults })

	s.renderer.mu.Lock()
	defer s.renderer.mu.Unlock()
	s.Len(s.renderer.results, 1)
}

func (s *GameServiceTestSuite) TestNextRoundCountdownStartsFromFirstCell() {
	s.start(models.GameModeSolo, models.DifficultyEasy, 2, "Ana")
	s.runCountdown()

	s.clock.Advance(s.service.profiles.For(models.DifficultyEasy).Time)
	s.waitFor(func(out *GetStateOutput) bool { return out.Board != nil && out.Board.Cursor == 2 })
	s.Equal("pato", s.answer("pato").CorrectAnswer)

	s.finishFeedback(func(out *GetStateOutput) bool {
		return out.Phase == models.GamePhaseCountdown && out.CurrentRound == 2
	})

	st := s.state()
	s.Require().NotNil(st.Board)
	s.Equal(0, st.Board.Cursor)
	s.Empty(st.Board.CorrectAnswer)

	s.runCountdown()
	st = s.state()
	s.Equal(1, st.Board.Cursor)
	s.Equal("gato", st.Board.CorrectAnswer)
}

func (s *GameServiceTestSuite) TestRetryResetsProgress() {
	s.mockLeaderboard.EXPECT().AddEntries(gomock.Any(), gomock.Any()).Return(nil)

	started := s.start(models.GameModeSolo, models.DifficultyEasy, 1, "Ana")
	s.runCountdown()
	s.answer("gato")
	s.finishFeedback(func(out *GetStateOutput) bool { return out.Phase == models.GamePhaseResults })

	out, err := s.service.RetryGame(s.ctx, &RetryGameInput{})
	s.Require().NoError(err)
	s.Equal(started.SessionID, out.SessionID)

	st := s.state()
	s.Equal(models.GamePhaseCountdown, st.Phase)
	s.Equal(1, st.CurrentRound)
	s.Equal(0, st.Players[0].Score)
	s.Equal("Ana", st.Players[0].Name)
	s.Nil(st.Result)

	s.runCountdown()
	s.Equal("gato", s.state().Board.CorrectAnswer)
}

func (s *GameServiceTestSuite) TestRetryWithoutGame() {
	_, err := s.service.RetryGame(s.ctx, &RetryGameInput{})
	s.ErrorIs(err, ErrNoGame)
}

func (s *GameServiceTestSuite) TestReturnToMenuCancelsPendingWork() {
	s.mockSettings.EXPECT().
		UpdateSettings(gomock.Any(), gomock.Any()).
		Return(&settingsRepo.UpdateSettingsOutput{}, nil)

	hidden := false
	_, err := s.service.UpdateSettings(s.ctx, &UpdateSettingsInput{DisplayScore: &hidden})
	s.Require().NoError(err)

	s.start(models.GameModeSolo, models.DifficultyEasy, 3)
	s.clock.Advance(DefaultCountdownTick)
	s.waitFor(func(out *GetStateOutput) bool { return out.Countdown == 2 })

	_, err = s.service.ReturnToMenu(s.ctx, &ReturnToMenuInput{})
	s.Require().NoError(err)

	s.clock.Advance(10 * time.Second)
	st := s.state()
	s.Equal(models.GamePhaseMenu, st.Phase)
	s.Empty(st.SessionID)
	s.Equal([]int{3, 2}, s.renderer.countdownValues())
	s.Equal(ScreenMenu, s.renderer.lastScreen())
	s.False(st.Settings.DisplayScore)
}

func (s *GameServiceTestSuite) TestReturnToMenuDuringPlayStopsCycle() {
	s.start(models.GameModeSolo, models.DifficultyEasy, 3)
	s.runCountdown()

	_, err := s.service.ReturnToMenu(s.ctx, &ReturnToMenuInput{})
	s.Require().NoError(err)
	s.Equal(-1, s.renderer.litCell())

	s.renderer.mu.Lock()
	highlights := len(s.renderer.highlights)
	s.renderer.mu.Unlock()

	s.clock.Advance(5 * time.Second)
	s.renderer.mu.Lock()
	defer s.renderer.mu.Unlock()
	s.Equal(highlights, len(s.renderer.highlights))
}

func (s *GameServiceTestSuite) TestAudioFailureDoesNotStopGame() {
	s.service = nil
	audio := audioMocks.NewMockAudio(s.mockCtrl)
	audio.EXPECT().PlayStart().Return(errors.New("autoplay blocked"))
	audio.EXPECT().PlayBackgroundMusic().Return(errors.New("autoplay blocked"))
	audio.EXPECT().PlayCorrect().Return(nil)
	audio.EXPECT().StopBackgroundMusic().Return(nil).AnyTimes()

	s.service = s.newService(audio)
	s.start(models.GameModeSolo, models.DifficultyEasy, 3)
	s.runCountdown()

	out := s.answer("gato")
	s.True(out.Correct)
}

func (s *GameServiceTestSuite) TestSelectMode() {
	out, err := s.service.SelectMode(s.ctx, &SelectModeInput{Mode: models.GameModeTeam})
	s.Require().NoError(err)
	s.True(out.DifficultyLocked)
	s.Equal([]string{"Team 1", "Team 2"}, out.DefaultNames)
	s.Equal(ScreenSetup, s.renderer.lastScreen())

	out, err = s.service.SelectMode(s.ctx, &SelectModeInput{Mode: models.GameModeSolo})
	s.Require().NoError(err)
	s.False(out.DifficultyLocked)
	s.Equal(models.GameModeSolo, s.state().SelectedMode)

	_, err = s.service.SelectMode(s.ctx, &SelectModeInput{Mode: "coop"})
	s.ErrorIs(err, ErrInvalidMode)
}

func (s *GameServiceTestSuite) TestBlankNamesTakeDefaults() {
	out := s.start(models.GameModePvP, "", 1, "   ", " Bia ")
	s.Equal("Player 1", out.Players[0].Name)
	s.Equal("Bia", out.Players[1].Name)
}

func (s *GameServiceTestSuite) TestLoadSettingsUsesStoredValues() {
	s.mockSettings.EXPECT().
		GetSettings(gomock.Any(), &settingsRepo.GetSettingsInput{ProfileID: "profile-1"}).
		Return(&settingsRepo.GetSettingsOutput{
			Settings: &models.Settings{
				Language:     "en",
				DisplayScore: false,
				Points:       models.DefaultPointTable(),
			},
			Found: true,
		}, nil)

	out, err := s.service.LoadSettings(s.ctx, &LoadSettingsInput{})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Equal("en", out.Settings.Language)

	s.start(models.GameModeSolo, models.DifficultyEasy, 1)
	s.Equal("en", s.state().Language)
	s.runCountdown()

	s.renderer.mu.Lock()
	defer s.renderer.mu.Unlock()
	s.Require().NotEmpty(s.renderer.boards)
	s.Equal("Cat", s.renderer.boards[0][0].Text)
}

func (s *GameServiceTestSuite) TestLoadSettingsFallsBackOnError() {
	s.mockSettings.EXPECT().
		GetSettings(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	out, err := s.service.LoadSettings(s.ctx, &LoadSettingsInput{})
	s.Require().NoError(err)
	s.False(out.Found)
	s.Equal(models.DefaultSettings(), out.Settings)
}

func (s *GameServiceTestSuite) TestUpdateSettingsValidation() {
	_, err := s.service.UpdateSettings(s.ctx, &UpdateSettingsInput{
		Points: map[models.Difficulty]int{models.DifficultyHard: -1},
	})
	s.ErrorIs(err, ErrInvalidPoints)

	lang := "xx"
	_, err = s.service.UpdateSettings(s.ctx, &UpdateSettingsInput{Language: &lang})
	s.ErrorIs(err, ErrInvalidLanguage)

	s.Equal(models.DefaultSettings(), s.state().Settings)
}

func (s *GameServiceTestSuite) TestUpdateSettingsKeepsValueWhenStoreFails() {
	s.mockSettings.EXPECT().
		UpdateSettings(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("read only"))

	lang := "en"
	out, err := s.service.UpdateSettings(s.ctx, &UpdateSettingsInput{Language: &lang})
	s.Require().NoError(err)
	s.False(out.Persisted)
	s.Equal("en", s.state().Settings.Language)
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func TestDetermineResult(t *testing.T) {
	session := func(mode models.GameMode, scores ...int) *models.Session {
		sess := &models.Session{ID: "s", Mode: mode, DisplayScore: true}
		for _, score := range scores {
			sess.Players = append(sess.Players, &models.Player{Name: "p", Score: score})
		}
		return sess
	}

	testCases := []struct {
		name    string
		session *models.Session
		winner  int
		draw    bool
		top     []int
	}{
		{"solo has no winner", session(models.GameModeSolo, 25), -1, false, []int{0}},
		{"pvp tie", session(models.GameModePvP, 10, 10), -1, true, []int{0, 1}},
		{"pvp first wins", session(models.GameModePvP, 15, 10), 0, false, []int{0}},
		{"team second wins", session(models.GameModeTeam, 0, 5), 1, false, []int{1}},
		{"three way tie", session(models.GameModeTeam, 5, 5, 5), -1, true, []int{0, 1, 2}},
		{"partial top tie", session(models.GameModeTeam, 10, 10, 5), -1, true, []int{0, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := determineResult(tc.session)
			if result.WinnerIndex != tc.winner {
				t.Errorf("winner = %d, want %d", result.WinnerIndex, tc.winner)
			}
			if result.IsDraw != tc.draw {
				t.Errorf("draw = %v, want %v", result.IsDraw, tc.draw)
			}
			if len(result.TopScorers) != len(tc.top) {
				t.Fatalf("top scorers = %v, want %v", result.TopScorers, tc.top)
			}
			for i := range tc.top {
				if result.TopScorers[i] != tc.top[i] {
					t.Errorf("top scorers = %v, want %v", result.TopScorers, tc.top)
				}
			}
		})
	}
}
