package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Reporter renders throttled progress notifications. In the default mode it
// keeps a single status line alive, truncated to the terminal width; verbose
// mode prints one full line per notification; silent mode prints nothing.
type Reporter struct {
	writer  io.Writer
	errs    io.Writer
	verbose bool
	silent  bool
	width   func() int
	mu      sync.Mutex
	dirty   bool
}

func New(verbose, silent bool) *Reporter {
	return &Reporter{
		writer:  os.Stdout,
		errs:    os.Stderr,
		verbose: verbose,
		silent:  silent,
		width:   terminalWidth,
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// Notify reports the current completion fraction and a label for whatever is
// being worked on. Safe for concurrent use by worker goroutines.
func (r *Reporter) Notify(fraction float64, label string) {
	if r.silent {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	line := fmt.Sprintf("%6.2f%% %s", fraction*100, label)
	if r.verbose {
		fmt.Fprintln(r.writer, line)
		return
	}

	fmt.Fprintf(r.writer, "\r\x1b[2K%s", runewidth.Truncate(line, r.width(), "…"))
	r.dirty = true
}

// Printf writes a persistent line, clearing any status line first.
func (r *Reporter) Printf(format string, args ...interface{}) {
	if r.silent {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLine()
	fmt.Fprintf(r.writer, format+"\n", args...)
}

// Warnf reports a non-fatal problem to stderr.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	if r.silent {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLine()
	fmt.Fprintf(r.errs, "Warning: "+format+"\n", args...)
}

// Done clears the transient status line when a phase finishes.
func (r *Reporter) Done() {
	if r.silent {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLine()
}

// clearLine must be called with mu already locked.
func (r *Reporter) clearLine() {
	if r.dirty {
		fmt.Fprint(r.writer, "\r\x1b[2K")
		r.dirty = false
	}
}
