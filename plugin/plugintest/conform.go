package plugintest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ophelia/plugin"
)

// Factory builds a fresh plugin under test. The returned plugin must use
// the given capabilities whenever a lifecycle method receives nil ones,
// so the suite can observe every read and emit.
type Factory func(in plugin.InputProvider, out plugin.OutputEmitter) (plugin.Plugin, error)

// Conform checks a Plugin implementation against the contract: metadata
// validity, the absent-value and pairing results of PrepExecute,
// absorption of cancellation and collection failure, prompt ordering,
// capability isolation of DirectExecute, and CleanUp idempotency.
// Execute is never invoked; its semantics belong to each plugin.
func Conform(t *testing.T, factory Factory) {
	t.Helper()

	build := func(t *testing.T, in plugin.InputProvider, out plugin.OutputEmitter) plugin.Plugin {
		t.Helper()
		p, err := factory(in, out)
		require.NoError(t, err, "factory failed")
		return p
	}

	probe := build(t, NewScriptReader(), NewRecorder())
	meta := probe.Meta()

	t.Run("MetadataValidates", func(t *testing.T) {
		require.NoError(t, meta.Validate())
	})

	t.Run("PrepCollectsArgs", func(t *testing.T) {
		ctx := context.Background()
		switch {
		case !meta.NeedsArgs:
			in := NewScriptReader("unused")
			p := build(t, in, NewRecorder())
			require.Nil(t, p.PrepExecute(ctx, nil, nil))
			require.Zero(t, in.Reads(), "plugin without argument needs must not read input")
		case len(meta.Commands) == 0:
			in := NewScriptReader("origin")
			p := build(t, in, NewRecorder())
			args := p.PrepExecute(ctx, nil, nil)
			require.NotNil(t, args)
			require.Equal(t, "origin", args.Input, "collected input must equal the provided value")
			require.Empty(t, args.Command)
			require.Equal(t, 1, in.Reads())
		default:
			command := meta.Commands[0]
			in := NewScriptReader("origin", command)
			p := build(t, in, NewRecorder())
			args := p.PrepExecute(ctx, nil, nil)
			require.NotNil(t, args)
			require.Equal(t, "origin", args.Input)
			require.Equal(t, command, args.Command)
			require.True(t, meta.HasCommand(args.Command), "selected command must be a declared one")
		}
	})

	t.Run("PrepAbsorbsCancellation", func(t *testing.T) {
		if !meta.NeedsArgs {
			t.Skip("plugin collects no input")
		}
		ctx := context.Background()

		p := build(t, CancelReader(), NewRecorder())
		require.Nil(t, p.PrepExecute(ctx, nil, nil))

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		p = build(t, NewScriptReader("origin"), NewRecorder())
		require.Nil(t, p.PrepExecute(cancelled, nil, nil))

		if len(meta.Commands) > 0 {
			p = build(t, NewScriptReader("origin"), NewRecorder())
			require.Nil(t, p.PrepExecute(ctx, nil, nil), "cancellation after the first value must still yield the absent value")
		}
	})

	t.Run("PrepAbsorbsFailure", func(t *testing.T) {
		if !meta.NeedsArgs {
			t.Skip("plugin collects no input")
		}
		p := build(t, FailReader(errors.New("tty gone")), NewRecorder())
		require.Nil(t, p.PrepExecute(context.Background(), nil, nil))
	})

	t.Run("PrepRejectsUnknownCommand", func(t *testing.T) {
		if !meta.NeedsArgs || len(meta.Commands) == 0 {
			t.Skip("plugin declares no commands")
		}
		in := NewScriptReader("origin", "command-that-is-not-declared")
		p := build(t, in, NewRecorder())
		require.Nil(t, p.PrepExecute(context.Background(), nil, nil))
	})

	t.Run("PromptPrecedesInput", func(t *testing.T) {
		if meta.Prompt == "" || !meta.NeedsArgs {
			t.Skip("no prompt or no input to order against")
		}
		command := ""
		if len(meta.Commands) > 0 {
			command = meta.Commands[0]
		}
		log := &ioLog{}
		p := build(t, log.reader(NewScriptReader("origin", command)), log.emitter())
		p.PrepExecute(context.Background(), nil, nil)

		events := log.list()
		promptAt, readAt := -1, -1
		for i, event := range events {
			if promptAt < 0 && event == "emit:"+meta.Prompt {
				promptAt = i
			}
			if readAt < 0 && event == "read" {
				readAt = i
			}
		}
		require.GreaterOrEqual(t, promptAt, 0, "configured prompt was never emitted")
		require.GreaterOrEqual(t, readAt, 0, "input was never read")
		require.Less(t, promptAt, readAt, "prompt must be emitted before input is read")
	})

	t.Run("DirectExecuteTouchesNoCapability", func(t *testing.T) {
		command := ""
		if len(meta.Commands) > 0 {
			command = meta.Commands[0]
		}
		in := NewScriptReader("unused")
		rec := NewRecorder()
		p := build(t, in, rec)
		_ = p.DirectExecute(context.Background(), plugin.Args{Input: "origin", Command: command})
		require.Zero(t, in.Reads(), "direct execution must not read input")
		require.Empty(t, rec.Messages(), "direct execution must not emit output")
	})

	t.Run("CleanUpIdempotent", func(t *testing.T) {
		ctx := context.Background()
		p := build(t, NewScriptReader(), NewRecorder())
		require.NoError(t, p.CleanUp(ctx))
		require.NoError(t, p.CleanUp(ctx), "second clean up must not fail")
	})
}

// ioLog keeps the relative order of reads and emits across the two
// capabilities.
type ioLog struct {
	mu     sync.Mutex
	events []string
}

func (l *ioLog) record(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *ioLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *ioLog) reader(next plugin.InputProvider) plugin.InputProvider {
	return plugin.InputFunc(func(ctx context.Context) (string, error) {
		l.record("read")
		return next.ReadLine(ctx)
	})
}

func (l *ioLog) emitter() plugin.OutputEmitter {
	return plugin.EmitFunc(func(text string) {
		l.record("emit:" + text)
	})
}
