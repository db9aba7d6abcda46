package loader

import "errors"

// ErrEmptyProgram is returned for ROM files without content.
var ErrEmptyProgram = errors.New("empty program")
