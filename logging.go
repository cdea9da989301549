package dynup

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// NewLineLogger returns a logr.Logger that writes timestamped lines to w,
// one per message:
//
//	[2024-05-01T09:30:00Z] Retrieved public IP address addr=203.0.113.7
//
// Output is line-oriented plain text, not structured logging.
func NewLineLogger(w io.Writer) logr.Logger {
	return logr.New(&lineSink{w: w})
}

type lineSink struct {
	w      io.Writer
	name   string
	values []any
}

func (s *lineSink) Init(logr.RuntimeInfo) {}

func (s *lineSink) Enabled(int) bool { return true }

func (s *lineSink) Info(_ int, msg string, kv ...any) {
	s.write(msg, nil, kv)
}

func (s *lineSink) Error(err error, msg string, kv ...any) {
	s.write(msg, err, kv)
}

func (s *lineSink) WithValues(kv ...any) logr.LogSink {
	clone := *s
	clone.values = append(append([]any{}, s.values...), kv...)
	return &clone
}

func (s *lineSink) WithName(name string) logr.LogSink {
	clone := *s
	if clone.name != "" {
		clone.name += "/"
	}
	clone.name += name
	return &clone
}

func (s *lineSink) write(msg string, err error, kv []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", time.Now().UTC().Format(time.RFC3339))
	if s.name != "" {
		b.WriteString(s.name)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	appendKV(&b, s.values)
	appendKV(&b, kv)
	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}
	b.WriteByte('\n')
	io.WriteString(s.w, b.String())
}

func appendKV(b *strings.Builder, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(b, " %v=%v", kv[i], kv[i+1])
	}
}
