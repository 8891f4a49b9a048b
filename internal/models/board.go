package models

// BoardSize is the number of cells on every board
const BoardSize = 6

// CellFeedback marks a cell after an answer is evaluated
type CellFeedback string

const (
	// CellFeedbackCorrect marks a correctly answered cell
	CellFeedbackCorrect CellFeedback = "correct"

	// CellFeedbackWrong marks a wrongly answered cell
	CellFeedbackWrong CellFeedback = "wrong"
)

// Board is the grid for a single turn
type Board struct {
	// Cells holds one label id per grid position, duplicates allowed
	Cells []string

	// Options is the shuffled order of answer choices
	Options []string

	// Cursor is the position the next highlight advance will use, 0 before highlighting starts
	Cursor int

	// CorrectAnswer is the label of the highlighted cell, empty before the first advance
	CorrectAnswer string
}

// ResetCursor returns the board to its state before any highlight
func (b *Board) ResetCursor() {
	if b == nil {
		return
	}
	b.Cursor = 0
	b.CorrectAnswer = ""
}

// AnswerOption is a single answer button
type AnswerOption struct {
	// Label is the label id submitted when the option is selected
	Label string

	// Text is the translated display text
	Text string

	// ImagePath is the image shown for the label
	ImagePath string
}
