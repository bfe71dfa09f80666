package insert

import "errors"

var (
	// ErrBadArgumentCount indicates a command was invoked with the wrong
	// number of brace arguments.
	ErrBadArgumentCount = errors.New("insert: wrong number of arguments")
	// ErrUnknownCommand indicates a command keyword with no registered
	// embedding strategy.
	ErrUnknownCommand = errors.New("insert: unknown command")
	// ErrLiterateDisabled indicates the \literate command was used while the
	// literate feature is switched off.
	ErrLiterateDisabled = errors.New("insert: literate conversion is disabled")
)
