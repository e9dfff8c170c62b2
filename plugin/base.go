package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"ophelia/console"
)

// CommandFunc handles one named command. The input argument is whatever
// PrepExecute collected, or whatever the caller passed directly.
type CommandFunc func(ctx context.Context, input string) error

// Base carries the concrete half of the contract: metadata access,
// parameter collection and command dispatch. Embed it and provide
// Execute, DirectExecute and CleanUp to satisfy Plugin.
type Base struct {
	meta     Metadata
	handlers map[string]CommandFunc
	in       InputProvider
	out      OutputEmitter
	logger   *zap.Logger
}

// Option configures a Base.
type Option func(*Base)

// WithCommand binds a handler and declares the command in the metadata.
func WithCommand(name string, fn CommandFunc) Option {
	return func(b *Base) {
		b.handlers[name] = fn
		if !b.meta.HasCommand(name) {
			b.meta.Commands = append(b.meta.Commands, name)
		}
	}
}

// WithIO replaces the ambient console capabilities for every collection
// run on this plugin.
func WithIO(in InputProvider, out OutputEmitter) Option {
	return func(b *Base) {
		b.in = in
		b.out = out
	}
}

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func NewBase(meta Metadata, opts ...Option) (*Base, error) {
	meta.Commands = append([]string(nil), meta.Commands...)
	b := &Base{
		meta:     meta,
		handlers: map[string]CommandFunc{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.meta.Validate(); err != nil {
		return nil, fmt.Errorf("plugin metadata: %w", err)
	}
	b.logger = b.logger.Named(b.meta.Name)
	return b, nil
}

// Meta returns a copy of the metadata record. The Commands slice is
// copied so callers cannot alter the plugin's declaration through it.
func (b *Base) Meta() Metadata {
	meta := b.meta
	meta.Commands = append([]string(nil), meta.Commands...)
	return meta
}

// PrepExecute runs the collection flow: emit the configured prompt,
// read the input value, and, when commands are declared, read the
// command selection and check it against the declared list.
// Cancellation and collection failure both come back as nil, reported
// only through the logger.
func (b *Base) PrepExecute(ctx context.Context, in InputProvider, out OutputEmitter) (args *Args) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("input collection panicked", zap.Any("recover", r))
			args = nil
		}
	}()

	in = b.resolveInput(in)
	out = b.resolveOutput(out)

	if b.meta.Prompt != "" {
		out.Emit(b.meta.Prompt)
	}
	if !b.meta.NeedsArgs {
		return nil
	}

	input, err := in.ReadLine(ctx)
	if err != nil {
		b.reportCollection("input", err)
		return nil
	}
	if len(b.meta.Commands) == 0 {
		return &Args{Input: input}
	}

	command, err := in.ReadLine(ctx)
	if err != nil {
		b.reportCollection("command", err)
		return nil
	}
	if !b.meta.HasCommand(command) {
		out.Emit("Mode not found. Query cancelled")
		b.logger.Warn("unknown command selected", zap.String("command", command))
		return nil
	}
	return &Args{Input: input, Command: command}
}

// RunCommand dispatches to the handler bound for name.
func (b *Base) RunCommand(ctx context.Context, name string, input string) error {
	fn, ok := b.handlers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}
	return fn(ctx, input)
}

func (b *Base) resolveInput(in InputProvider) InputProvider {
	if in != nil {
		return in
	}
	if b.in != nil {
		return b.in
	}
	return console.Stdin()
}

func (b *Base) resolveOutput(out OutputEmitter) OutputEmitter {
	if out != nil {
		return out
	}
	if b.out != nil {
		return b.out
	}
	return console.NamedEmitter(os.Stdout, b.meta.Name)
}

func (b *Base) reportCollection(stage string, err error) {
	if cancelled(err) {
		b.logger.Debug("input collection cancelled", zap.String("stage", stage))
		return
	}
	b.logger.Warn("input collection failed", zap.String("stage", stage), zap.Error(err))
}

func cancelled(err error) bool {
	return errors.Is(err, ErrInputCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF)
}
