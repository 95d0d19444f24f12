package model

import "errors"

// ErrValidation marks caller-contract violations rejected before any
// computation runs. Wrapped errors carry the offending field.
var ErrValidation = errors.New("validation failed")
