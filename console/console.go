// Package console provides the ambient input and output used by plugins
// when the host supplies no capabilities of its own.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
)

type readResult struct {
	line string
	err  error
}

// Reader reads lines and converts interrupts and context cancellation
// into errors instead of blocking forever. A read that is still pending
// when its caller gives up keeps running; its line is handed to the next
// ReadLine call, so no input is lost.
type Reader struct {
	mu      sync.Mutex
	scanner *bufio.Scanner
	pending chan readResult
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// ReadLine returns the next line without its terminator. On interrupt or
// context cancellation it returns the context error; on source
// exhaustion it returns io.EOF.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			if !r.scanner.Scan() {
				err := r.scanner.Err()
				if err == nil {
					err = io.EOF
				}
				ch <- readResult{err: err}
				return
			}
			ch <- readResult{line: r.scanner.Text()}
		}()
		r.pending = ch
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	select {
	case res := <-r.pending:
		r.pending = nil
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Emitter writes one line per message.
type Emitter struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// NamedEmitter prefixes every message with a styled attribution, so
// plugin output reads as the plugin speaking in its own name.
func NamedEmitter(w io.Writer, name string) *Emitter {
	return &Emitter{w: w, prefix: Name.Render("["+name+"]") + " "}
}

func (e *Emitter) Emit(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.w, e.prefix+text)
}

var (
	stdinOnce  sync.Once
	stdin      *Reader
	stdoutOnce sync.Once
	stdout     *Emitter
)

// Stdin returns the shared ambient reader. It is shared so that a line
// buffered by one cancelled read is served to whoever reads next.
func Stdin() *Reader {
	stdinOnce.Do(func() { stdin = NewReader(os.Stdin) })
	return stdin
}

func Stdout() *Emitter {
	stdoutOnce.Do(func() { stdout = NewEmitter(os.Stdout) })
	return stdout
}
