package core

import "errors"

var (
	// ErrNoDateFound means the text contained no recognizable date/time
	// phrase. Recoverable: the assistant answers with a clarification.
	ErrNoDateFound = errors.New("no date or time phrase found")

	// ErrNoRange means neither a relative-range keyword nor a date
	// phrase produced a usable day range.
	ErrNoRange = errors.New("no day range found")
)
