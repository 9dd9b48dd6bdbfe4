package crawler

import "fmt"

// PageError aborts a run: the links of a listing page could not be collected.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("collect links on page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// DriverError aborts a run: the browser session could not be started or
// stopped working.
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("browser %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// SinkError aborts a run: a snapshot could not be written.
type SinkError struct {
	Page int
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("save snapshot after page %d: %v", e.Page, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
