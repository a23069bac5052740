package pipeline

import "fmt"

// StepFailure marks a pipeline step that returned an error. It aborts
// the remaining steps; the wrapped error carries the step's diagnostic.
type StepFailure struct {
	Step string
	Err  error
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepFailure) Unwrap() error {
	return e.Err
}

// LockedError is returned when another process already holds the
// dataset lock.
type LockedError struct {
	Dataset  string
	LockPath string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("dataset %s is locked by another stitch process (%s)", e.Dataset, e.LockPath)
}
