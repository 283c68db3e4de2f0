package beep

import "github.com/pkg/errors"

var (
	ErrTicksPerBeat = errors.New("ticks per beat must be positive")
	ErrTempo        = errors.New("tempo must be positive")
)
