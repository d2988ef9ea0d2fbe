// Package output provides context-aware output for gittem.
// Stdout is used for primary data output (git output, paths, summaries).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphi011/gittem/internal/ui/styles"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Banner writes the header that precedes work on one repository.
func (p *Printer) Banner(path string) {
	fmt.Fprintln(p.w, styles.Banner(path))
}

// Step writes a "--- <command>" header.
func (p *Printer) Step(command string) {
	fmt.Fprintln(p.w, styles.Step(command))
}

// Block writes command output verbatim, terminated by a newline.
// Empty output writes nothing.
func (p *Printer) Block(text string) {
	if text == "" {
		return
	}
	if strings.HasSuffix(text, "\n") {
		fmt.Fprint(p.w, text)
		return
	}
	fmt.Fprintln(p.w, text)
}
