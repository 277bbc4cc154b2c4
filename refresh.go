package quill

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// CursorController toggles terminal cursor visibility. Operations are
// idempotent and no-op on non-interactive streams.
type CursorController struct {
	out    *termenv.Output
	tty    bool
	hidden bool
}

// NewCursorController wraps the given stream.
func NewCursorController(w io.Writer) *CursorController {
	return &CursorController{
		out: termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI)),
		tty: isTerminal(w),
	}
}

// Hide makes the cursor invisible.
func (c *CursorController) Hide() {
	if !c.tty || c.hidden {
		return
	}
	c.out.HideCursor()
	c.hidden = true
}

// Show restores the cursor.
func (c *CursorController) Show() {
	if !c.tty || !c.hidden {
		return
	}
	c.out.ShowCursor()
	c.hidden = false
}

// Toggle flips cursor visibility.
func (c *CursorController) Toggle() {
	if c.hidden {
		c.Show()
	} else {
		c.Hide()
	}
}

// Hidden reports whether this controller has hidden the cursor.
func (c *CursorController) Hidden() bool {
	return c.hidden
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Refresher repaints a frame in place between renders: it erases exactly
// the lines it wrote last time and writes the new frame, skipping the
// write entirely when the frame is unchanged. State is per stream and
// must only be touched by one logical render loop at a time.
type Refresher struct {
	out        *termenv.Output
	cursor     *CursorController
	showCursor bool
	lastOutput string
	lineCount  int
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithVisibleCursor leaves the cursor visible while rendering.
func WithVisibleCursor() RefresherOption {
	return func(r *Refresher) { r.showCursor = true }
}

// NewRefresher creates a refresh controller for the given stream.
func NewRefresher(w io.Writer, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		out:    termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI)),
		cursor: NewCursorController(w),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Log paints the frame, replacing the previously painted one. Identical
// consecutive frames produce no terminal writes.
func (r *Refresher) Log(frame string) {
	out := frame + "\n"
	if out == r.lastOutput {
		return
	}
	if !r.showCursor {
		r.cursor.Hide()
	}
	if r.lineCount > 0 {
		r.out.ClearLines(r.lineCount)
	}
	r.out.WriteString(out)
	r.lastOutput = out
	r.lineCount = strings.Count(out, "\n")
}

// Clear erases the last painted frame without writing a new one.
func (r *Refresher) Clear() {
	if r.lineCount > 0 {
		r.out.ClearLines(r.lineCount)
	}
	r.lastOutput = ""
	r.lineCount = 0
}

// Done resets state and restores the cursor if it had been hidden.
// The painted frame is left on screen.
func (r *Refresher) Done() {
	r.lastOutput = ""
	r.lineCount = 0
	r.cursor.Show()
}

// Process-wide refreshers for the standard streams.
var (
	stdoutOnce      sync.Once
	stdoutRefresher *Refresher
	stderrOnce      sync.Once
	stderrRefresher *Refresher
)

// Stdout returns the shared refresher for os.Stdout.
func Stdout() *Refresher {
	stdoutOnce.Do(func() { stdoutRefresher = NewRefresher(os.Stdout) })
	return stdoutRefresher
}

// Stderr returns the shared refresher for os.Stderr.
func Stderr() *Refresher {
	stderrOnce.Do(func() { stderrRefresher = NewRefresher(os.Stderr) })
	return stderrRefresher
}

// TerminalWidth returns the column count of f, or fallback when f is not
// a terminal or its size cannot be read.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
