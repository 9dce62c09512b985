package domain

import "errors"

// ErrValidation marks input the engine rejects outright: empty title or
// creator, an unknown status literal, a priority outside 1-5. Callers
// surface it to the user and never retry.
var ErrValidation = errors.New("validation failed")
