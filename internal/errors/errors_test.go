package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("habit not found"),
			expected: "Error: habit not found",
		},
		{
			name:     "wrapped error keeps the chain text",
			err:      fmt.Errorf("failed to load store: %w", errors.New("storage not initialized")),
			expected: "Error: failed to load store: storage not initialized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "no account is registered",
			args:     nil,
			expected: "Error: no account is registered",
		},
		{
			name:     "formatted message with string",
			format:   "habit %q not found",
			args:     []interface{}{"Meditate"},
			expected: `Error: habit "Meditate" not found`,
		},
		{
			name:     "formatted message with multiple args",
			format:   "backup %s failed after %d retries",
			args:     []interface{}{"ritual-backup-20240301", 3},
			expected: "Error: backup ritual-backup-20240301 failed after 3 retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

// Fatal exits the process, so it runs in a subprocess via the exec helper
// pattern and the parent checks exit code and stderr.
func TestFatal(t *testing.T) {
	if os.Getenv("RITUAL_TEST_FATAL") == "1" {
		Fatal(errors.New("storage not initialized"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal")
	cmd.Env = append(os.Environ(), "RITUAL_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if got := stderr.String(); !strings.Contains(got, "Error: storage not initialized") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", got, "Error: storage not initialized")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("RITUAL_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "RITUAL_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("RITUAL_TEST_FATALF") == "1" {
		Fatalf("habit %q not found", "Meditate")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "RITUAL_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatalf() exit code = %d, want 1", e.ExitCode())
		}
		if got := stderr.String(); !strings.Contains(got, `Error: habit "Meditate" not found`) {
			t.Errorf("Fatalf() stderr = %q, want to contain %q", got, `Error: habit "Meditate" not found`)
		}
	} else {
		t.Errorf("Fatalf() did not exit with error: %v", err)
	}
}
