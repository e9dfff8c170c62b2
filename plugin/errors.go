package plugin

import "errors"

var (
	// ErrInputCancelled is what input providers return when the user
	// aborts collection. Context errors and io.EOF are treated the same
	// way by PrepExecute.
	ErrInputCancelled = errors.New("input cancelled")

	ErrCommandNotFound = errors.New("plugin command not found")
)
