package browser

import "errors"

var (
	// ErrWaitTimeout is returned by Wait when the condition did not hold in time.
	ErrWaitTimeout = errors.New("browser: readiness wait timed out")
	// ErrSessionLost means the browser process or connection is gone and
	// the session cannot be used any more.
	ErrSessionLost = errors.New("browser: session lost")
	// ErrClosed is returned by calls made after Quit.
	ErrClosed = errors.New("browser: session closed")
)
