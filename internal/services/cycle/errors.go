package cycle

// CycleError is a custom error type for highlight cycle errors
type CycleError string

// Error implements the error interface
func (e CycleError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       CycleError = "config cannot be nil"
	ErrNilClock        CycleError = "clock cannot be nil"
	ErrNilDisplay      CycleError = "display cannot be nil"
	ErrEmptyBoard      CycleError = "board has no cells"
	ErrInvalidInterval CycleError = "interval must be positive"
	ErrAlreadyRunning  CycleError = "cycle is already running"
	ErrStopped         CycleError = "cycle has been stopped"
	ErrNotPaused       CycleError = "cycle is not paused"
)
