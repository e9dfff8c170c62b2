// Package plugintest provides capability fakes and a conformance suite
// for Plugin implementations.
package plugintest

import (
	"context"
	"io"
	"sync"

	"ophelia/plugin"
)

// ScriptReader yields its lines in order and io.EOF once exhausted.
type ScriptReader struct {
	mu    sync.Mutex
	lines []string
	reads int
}

func NewScriptReader(lines ...string) *ScriptReader {
	return &ScriptReader{lines: append([]string(nil), lines...)}
}

func (s *ScriptReader) ReadLine(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.reads++
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// Reads reports how many times the provider was invoked.
func (s *ScriptReader) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// CancelReader simulates a user interrupt on every read.
func CancelReader() plugin.InputProvider {
	return plugin.InputFunc(func(context.Context) (string, error) {
		return "", plugin.ErrInputCancelled
	})
}

// FailReader fails every read with err.
func FailReader(err error) plugin.InputProvider {
	return plugin.InputFunc(func(context.Context) (string, error) {
		return "", err
	})
}

// Recorder is an OutputEmitter that keeps everything it was given.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
