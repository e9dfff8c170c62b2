// Package plugin defines the contract between the Ophelia host and its
// plugins: a metadata record, two narrow I/O capabilities, and the four
// lifecycle operations every plugin exposes.
package plugin

import "context"

// Plugin is the capability set a host needs to prepare, execute and tear
// down a plugin uniformly. Implementations usually embed Base, which
// supplies Meta, PrepExecute and RunCommand, and provide the remaining
// three methods themselves.
type Plugin interface {
	Meta() Metadata

	// PrepExecute collects the parameters for an interactive run. A nil
	// result means no arguments are needed, collection was cancelled, or
	// collection failed; cancellation and failure are absorbed here,
	// never propagated. Nil capabilities select the ambient console.
	PrepExecute(ctx context.Context, in InputProvider, out OutputEmitter) *Args

	// Execute runs the plugin interactively. Conforming implementations
	// obtain parameters through PrepExecute and then perform the primary
	// action, conventionally by dispatching through RunCommand.
	Execute(ctx context.Context) error

	// DirectExecute runs the plugin with caller-supplied parameters. It
	// must not touch the input or output capabilities.
	DirectExecute(ctx context.Context, args Args) error

	// CleanUp releases whatever the plugin holds. Idempotent, and safe
	// to call even if the plugin never executed.
	CleanUp(ctx context.Context) error
}

// Args carries the parameters collected for one invocation. Command is
// empty when the plugin declares no commands.
type Args struct {
	Input   string
	Command string
}
