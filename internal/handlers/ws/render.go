package ws

import (
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/lightmatch/internal/models"
	"github.com/KirkDiggler/lightmatch/internal/services/game"
	"github.com/KirkDiggler/lightmatch/internal/services/messaging"
)

// renderer turns game drawing calls into events for one connection
type renderer struct {
	conn *Connection
}

func (r *renderer) ShowScreen(screen game.Screen) {
	r.conn.emit(EventScreen, screenPayload{Screen: screen})
}

func (r *renderer) RenderCountdown(value int) {
	r.conn.emit(EventCountdown, countdownPayload{Value: value})
}

func (r *renderer) RenderHeader(header *game.Header) {
	r.conn.emit(EventHeader, headerPayload{
		PlayerName:   header.PlayerName,
		Score:        header.Score,
		CurrentRound: header.CurrentRound,
		TotalRounds:  header.TotalRounds,
	})
}

func (r *renderer) RenderBoard(cells []models.AnswerOption) {
	r.conn.emit(EventBoard, boardPayload{Cells: toOptionPayloads(cells)})
}

func (r *renderer) HighlightCell(index int) {
	r.conn.emit(EventHighlight, cellPayload{Index: index})
}

func (r *renderer) ClearHighlights() {
	r.conn.emit(EventClearHighlights, nil)
}

func (r *renderer) MarkCellFeedback(index int, feedback models.CellFeedback) {
	r.conn.emit(EventCellFeedback, cellPayload{Index: index, Feedback: feedback})
}

func (r *renderer) RenderFeedback(feedback *game.Feedback) {
	payload := feedbackPayload{
		Correct:       feedback.Correct,
		CorrectAnswer: feedback.CorrectAnswer,
		Points:        feedback.Points,
	}

	out, err := r.conn.gateway.messaging.GetFeedbackMessage(r.conn.ctx, &messaging.GetFeedbackMessageInput{
		Language:   r.conn.currentLanguage(),
		PlayerName: feedback.PlayerName,
		Correct:    feedback.Correct,
		Points:     feedback.Points,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to build feedback message")
	} else {
		payload.Message = out.Message
	}

	r.conn.emit(EventFeedback, payload)
}

func (r *renderer) ClearFeedback() {
	r.conn.emit(EventClearFeedback, nil)
}

func (r *renderer) RenderAnswerOptions(options []models.AnswerOption, onSelect func(label string)) {
	r.conn.setAnswerOptions(options, onSelect)
	r.conn.emit(EventOptions, optionsPayload{Options: toOptionPayloads(options)})
}

func (r *renderer) SetControlsEnabled(enabled bool) {
	r.conn.emit(EventControls, controlsPayload{Enabled: enabled})
}

func (r *renderer) RenderResults(result *models.Result) {
	payload := resultsPayload{
		WinnerIndex: result.WinnerIndex,
		IsDraw:      result.IsDraw,
	}

	out, err := r.conn.gateway.messaging.GetResultMessage(r.conn.ctx, &messaging.GetResultMessageInput{
		Language: r.conn.currentLanguage(),
		Result:   result,
	})
	if err != nil {
		log.Error().Err(err).Str("session", result.SessionID).Msg("failed to build result message")
	} else {
		payload.Title = out.Title
		payload.Lines = out.Lines
		payload.Verdict = out.Verdict
	}

	r.conn.emit(EventResults, payload)
}

// Sound names sent to the client
const (
	SoundStart      = "start"
	SoundCorrect    = "correct"
	SoundWrong      = "wrong"
	SoundBackground = "background"
)

// audio asks the client to play sounds; delivery is best effort
type audio struct {
	conn *Connection
}

func (a *audio) play(sound string) error {
	a.conn.emit(EventSound, soundPayload{Sound: sound, Action: "play"})
	return nil
}

func (a *audio) PlayStart() error           { return a.play(SoundStart) }
func (a *audio) PlayCorrect() error         { return a.play(SoundCorrect) }
func (a *audio) PlayWrong() error           { return a.play(SoundWrong) }
func (a *audio) PlayBackgroundMusic() error { return a.play(SoundBackground) }

func (a *audio) StopBackgroundMusic() error {
	a.conn.emit(EventSound, soundPayload{Sound: SoundBackground, Action: "stop"})
	return nil
}
