package buffer

import "errors"

var (
	ErrPushAcrossParagraph = errors.New("buffer: paragraph end can only be pushed onto an empty line")
	ErrPullPastParagraph   = errors.New("buffer: cannot pull words past the end of a paragraph")
	ErrNothingToPush       = errors.New("buffer: a line's only word cannot be pushed")
	ErrLastLine            = errors.New("buffer: cannot delete the only line")
	ErrNoSuchLine          = errors.New("buffer: no such line")
	ErrUnknownCommand      = errors.New("buffer: unknown command")
	ErrNotACompletion      = errors.New("buffer: word does not extend the prefix under the cursor")
)
