package mocker

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid config")
	ErrNilSchema        = errors.New("schema is nil")
	ErrUnknownGenerator = errors.New("custom generator does not exist")
	ErrPathConflict     = errors.New("conflicting override paths")
	ErrInvalidCount     = errors.New("count must not be negative")
)
