package glicko

import "github.com/pkg/errors"

var (
	ErrInvalidConfig      = errors.New("invalid glicko config")
	ErrNoGames            = errors.New("no games in rating period")
	ErrOutcomeMismatch    = errors.New("opponents and outcomes differ in length")
	ErrDegenerateVariance = errors.New("estimated variance is not finite")
	ErrNoConvergence      = errors.New("volatility did not converge")
	ErrNothingPending     = errors.New("no pending rating to apply")
)
