// Package runner supervises external commands: it spawns them through a
// POSIX shell, captures combined output into a bounded buffer, and enforces
// a two-stage escalating timeout so hung processes are always reclaimed.
package runner

import (
	"errors"
	"fmt"
)

// SpawnError means the child process could not be created at all (missing
// interpreter, permission denied). No output exists when this is returned.
type SpawnError struct {
	Command string
	Cause   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn command: %v", e.Cause)
}

func (e *SpawnError) Unwrap() error {
	return e.Cause
}

// ExecutionError means the operating system surfaced a fault while waiting on
// a child that did start.
type ExecutionError struct {
	Command string
	Cause   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed: %v", e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// IsSpawnError reports whether err is a SpawnError.
func IsSpawnError(err error) bool {
	var spawnErr *SpawnError
	return errors.As(err, &spawnErr)
}

// IsExecutionError reports whether err is an ExecutionError.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError
	return errors.As(err, &execErr)
}
