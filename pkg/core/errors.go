package core

import "errors"

// ErrInvalidConfiguration is returned when scene or camera input would make
// the render numerically undefined (zero-length vectors, zero radii, ...)
var ErrInvalidConfiguration = errors.New("invalid configuration")
