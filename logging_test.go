package dynup_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/akarpz/dynup"
)

var linePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z\] `)

func TestLineLoggerFormat(t *testing.T) {
	var buf strings.Builder
	logger := dynup.NewLineLogger(&buf)
	logger.Info("Retrieved public IP address", "addr", "203.0.113.7")

	line := buf.String()
	if !linePattern.MatchString(line) {
		t.Fatalf("Expected line to start with an ISO-8601 UTC timestamp; got %q", line)
	}
	if expected := "Retrieved public IP address addr=203.0.113.7\n"; !strings.HasSuffix(line, expected) {
		t.Fatalf("Expected line to end with %q; got %q", expected, line)
	}
}

func TestLineLoggerError(t *testing.T) {
	var buf strings.Builder
	logger := dynup.NewLineLogger(&buf)
	logger.Error(errors.New("boom"), "Failed to update DNS entry")

	line := buf.String()
	if !linePattern.MatchString(line) {
		t.Fatalf("Expected line to start with an ISO-8601 UTC timestamp; got %q", line)
	}
	if expected := `Failed to update DNS entry error="boom"` + "\n"; !strings.HasSuffix(line, expected) {
		t.Fatalf("Expected line to end with %q; got %q", expected, line)
	}
}
