// Package log provides context-aware logging for gittem.
//
// Diagnostics go to stderr through a [Logger] carried on the context.
// There is no package-level logger; the CLI builds one from [Config]
// and attaches it with [WithLogger].
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/raphi011/gittem/internal/ui/styles"
)

type ctxKey struct{}

// Config selects the logging level and color handling.
type Config struct {
	Verbose bool   `toml:"verbose"`
	Quiet   bool   `toml:"quiet"`
	Color   string `toml:"color"` // auto, always or never
}

// Logger provides output and verbose command logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// FromConfig creates a logger whose writer adapts styled output to out.
func FromConfig(out io.Writer, cfg Config) *Logger {
	return New(styles.Writer(out, cfg.Color), cfg.Verbose, cfg.Quiet)
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output unless quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output unless quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a highlighted warning line unless quiet.
func (l *Logger) Warnf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, styles.WarningStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Errorf writes a highlighted error line unless quiet.
func (l *Logger) Errorf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, styles.ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Debug writes a message with key=value pairs in verbose mode.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Command logs an external command execution in verbose mode.
// The returned func is called with the elapsed time once the command finishes.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := "$ " + strings.TrimSpace(name+" "+strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose mode is enabled and not overridden by quiet.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}
