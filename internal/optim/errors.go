package optim

import "errors"

// ErrPassNotStarted is returned by Adam when a parameter is visited before
// the first StartPass, which leaves the timestep used for bias correction
// at zero.
var ErrPassNotStarted = errors.New("optimizer pass not started")
