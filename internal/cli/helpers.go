package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/ringlens/internal/presentation/tui"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// Output writes command results. Markdown is rendered with glamour when
// the destination is a terminal and passed through unchanged otherwise.
type Output struct {
	w      io.Writer
	tty    bool
	render tui.RenderFunc
}

// NewOutput inspects w and picks a renderer.
func NewOutput(w io.Writer) *Output {
	out := &Output{w: w, render: tui.Plain}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return out
	}
	out.tty = true

	width := 100
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && cols < width {
		width = cols
	}
	if r, err := tui.NewRenderer(width); err == nil {
		out.render = r
	}
	return out
}

// Writer returns the underlying writer.
func (o *Output) Writer() io.Writer {
	return o.w
}

// Interactive reports whether output goes to a terminal.
func (o *Output) Interactive() bool {
	return o.tty
}

// Markdown renders and writes a markdown document.
func (o *Output) Markdown(md string) error {
	rendered, err := o.render(md)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	_, err = io.WriteString(o.w, rendered)
	return err
}

// Println writes a raw line.
func (o *Output) Println(a ...any) {
	fmt.Fprintln(o.w, a...)
}

// Printf writes raw formatted text.
func (o *Output) Printf(format string, a ...any) {
	fmt.Fprintf(o.w, format, a...)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
