// Package apperr defines the error kinds from spec §7, each carrying the
// exit code its CLI command should return. cmd/oncall's main function
// type-asserts for the ExitCode() interface rather than switching on
// concrete types, following the pattern the corpus's CLI binaries use for
// the same purpose (see cmd/bureau-viewer/main.go).
package apperr

import "fmt"

// Coder is implemented by every error kind in this package.
type Coder interface {
	error
	ExitCode() int
}

// ConfigError covers missing keys, bad types, unparseable dates, unknown
// weekday tokens, and an unknown weekend_role reference.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
func (e *ConfigError) ExitCode() int { return 1 }

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// CapacityError reports that a pre-solve capacity inequality failed,
// before the solver was ever invoked.
type CapacityError struct {
	Msg string
}

func (e *CapacityError) Error() string { return e.Msg }
func (e *CapacityError) ExitCode() int { return 1 }

func NewCapacityError(format string, args ...any) *CapacityError {
	return &CapacityError{Msg: fmt.Sprintf(format, args...)}
}

// InfeasibleError reports that CP-SAT (or its stand-in, see
// internal/scheduler) proved no satisfying assignment exists.
type InfeasibleError struct {
	Block int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no feasible assignment exists for block %d", e.Block)
}
func (e *InfeasibleError) ExitCode() int { return 2 }

// TimeoutError reports that the solver exhausted its wall-clock budget
// without proving feasibility or infeasibility.
type TimeoutError struct {
	Block   int
	Seconds float64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solver timed out after %.1fs on block %d", e.Seconds, e.Block)
}
func (e *TimeoutError) ExitCode() int { return 3 }

// IOError wraps a filesystem or parse failure encountered while reading
// or writing one of the external file formats in spec §6.
type IOError struct {
	Msg string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s: %v", e.Msg, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }
func (e *IOError) ExitCode() int { return 4 }

func NewIOError(msg string, err error) *IOError {
	return &IOError{Msg: msg, Err: err}
}
