package sim

import "errors"

// Contract-violation errors. These indicate a caller bug (driving the
// loop outside its state machine), not a recoverable condition.
var (
	// ErrNotRunning indicates Step or Pause was called outside Running.
	ErrNotRunning = errors.New("sim: loop is not running")

	// ErrAlreadyRunning indicates Start was called on a running loop.
	ErrAlreadyRunning = errors.New("sim: loop is already running")

	// ErrNotPaused indicates Resume was called outside Paused.
	ErrNotPaused = errors.New("sim: loop is not paused")
)
