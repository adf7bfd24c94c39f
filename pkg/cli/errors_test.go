package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("config.yaml", "missing api key")
	if !strings.Contains(err.Error(), "config.yaml") {
		t.Errorf("error %q does not include the file path", err)
	}

	err = NewConfigError("", "missing api key")
	if !strings.Contains(err.Error(), "missing api key") {
		t.Errorf("error %q does not include the message", err)
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("listener failed")
	err := NewCommandError("run", cause)

	if !errors.Is(err, cause) {
		t.Error("CommandError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), `"run"`) {
		t.Errorf("error %q does not name the command", err)
	}
}
