// Package cli carries shared helpers for the chatrelay command tree:
// command error types and signal handling.
package cli

import "fmt"

// ConfigError reports a configuration problem surfaced by a command.
type ConfigError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// NewConfigError creates a configuration error.
func NewConfigError(path, message string) *ConfigError {
	return &ConfigError{Path: path, Message: message}
}

// CommandError wraps a failure from a named command.
type CommandError struct {
	Command string
	Cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// NewCommandError creates a command error.
func NewCommandError(command string, cause error) *CommandError {
	return &CommandError{Command: command, Cause: cause}
}
