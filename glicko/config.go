// Package glicko implements the Glicko-2 rating update for a single
// competitor: scale conversion, opponent impact, the volatility solver and the
// stage-then-apply transition of a rating period.
//
// See http://www.glicko.net/glicko/glicko2.pdf for the formulas.
package glicko

import (
	"math"

	"github.com/pkg/errors"
)

// --- Glicko-2 system constants (paper values) ---
const (
	DefaultBaseRating    = 1500.0
	DefaultScale         = 173.7178
	DefaultTau           = 0.5
	DefaultEpsilon       = 1e-6
	DefaultVolatility    = 0.06
	DefaultMaxIterations = 100
)

// Config holds the system constants shared by every rating built from it.
type Config struct {
	BaseRating        float64 `env:"GLICKO_BASE_RATING"`        // R0, centre of the external scale
	Scale             float64 `env:"GLICKO_SCALE"`              // external <-> internal divisor
	Tau               float64 `env:"GLICKO_TAU"`                // volatility-change constraint
	Epsilon           float64 `env:"GLICKO_EPSILON"`            // solver tolerance
	DefaultVolatility float64 `env:"GLICKO_DEFAULT_VOLATILITY"` // sigma when the caller omits it
	MaxIterations     int     `env:"GLICKO_MAX_ITERATIONS"`     // cap per solver phase
	Debug             bool    `env:"GLICKO_DEBUG"`              // log solver progress
}

// DefaultConfig returns the constants from the Glicko-2 paper.
func DefaultConfig() Config {
	return Config{
		BaseRating:        DefaultBaseRating,
		Scale:             DefaultScale,
		Tau:               DefaultTau,
		Epsilon:           DefaultEpsilon,
		DefaultVolatility: DefaultVolatility,
		MaxIterations:     DefaultMaxIterations,
	}
}

// Validate reports the first constant that would make the update meaningless.
func (c Config) Validate() error {
	switch {
	case !(c.Scale > 0) || math.IsInf(c.Scale, 0):
		return errors.Wrapf(ErrInvalidConfig, "scale must be positive, got %v", c.Scale)
	case !(c.Tau > 0) || math.IsInf(c.Tau, 0):
		return errors.Wrapf(ErrInvalidConfig, "tau must be positive, got %v", c.Tau)
	case !(c.Epsilon > 0):
		return errors.Wrapf(ErrInvalidConfig, "epsilon must be positive, got %v", c.Epsilon)
	case !(c.DefaultVolatility > 0):
		return errors.Wrapf(ErrInvalidConfig, "default volatility must be positive, got %v", c.DefaultVolatility)
	case c.MaxIterations <= 0:
		return errors.Wrapf(ErrInvalidConfig, "max iterations must be positive, got %d", c.MaxIterations)
	case math.IsNaN(c.BaseRating) || math.IsInf(c.BaseRating, 0):
		return errors.Wrapf(ErrInvalidConfig, "base rating must be finite, got %v", c.BaseRating)
	}
	return nil
}

// --- internal conversions r/RD <-> mu/phi ---

// ToInternal maps an external rating and deviation onto the Glicko-2 scale.
func (c Config) ToInternal(rating, deviation float64) (u, p float64) {
	return (rating - c.BaseRating) / c.Scale, deviation / c.Scale
}

// ToExternal is the inverse of ToInternal.
func (c Config) ToExternal(u, p float64) (rating, deviation float64) {
	return u*c.Scale + c.BaseRating, p * c.Scale
}
