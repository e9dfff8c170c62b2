package plugin

import "context"

// InputProvider yields one line of user input per call. Cancellation is
// signalled through the error: ErrInputCancelled, a context error, or
// io.EOF when the source is exhausted.
type InputProvider interface {
	ReadLine(ctx context.Context) (string, error)
}

// OutputEmitter displays one message to the user.
type OutputEmitter interface {
	Emit(text string)
}

// InputFunc adapts a function to an InputProvider.
type InputFunc func(ctx context.Context) (string, error)

func (f InputFunc) ReadLine(ctx context.Context) (string, error) { return f(ctx) }

// EmitFunc adapts a function to an OutputEmitter.
type EmitFunc func(text string)

func (f EmitFunc) Emit(text string) { f(text) }
