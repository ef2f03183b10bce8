package procgen

import "errors"

// ErrInvalidArgument is returned when a geometric parameter is
// non-positive, non-finite or otherwise out of domain.
var ErrInvalidArgument = errors.New("invalid argument")
