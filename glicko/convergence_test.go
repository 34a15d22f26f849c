package glicko

import (
	"bytes"
	"log"
	"math"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvergenceResidual(t *testing.T) {
	cfg := DefaultConfig()
	tS := cfg.Tau * cfg.Tau

	for _, delta := range []float64{-3, -0.4834, 0, 0.02, 1.5, 6} {
		for _, v := range []float64{0.05, 1.7785, 12} {
			for _, p := range []float64{0.03, 1.1513, 2.01} {
				for _, s := range []float64{0.01, 0.06, 0.4} {
					a, err := cfg.Convergence(delta, v, p, s)
					require.NoError(t, err, "delta=%v v=%v p=%v s=%v", delta, v, p, s)

					residual := F(a, delta*delta, p*p, v, math.Log(s*s), tS)
					assert.Less(t, math.Abs(residual), 1e-4, "delta=%v v=%v p=%v s=%v", delta, v, p, s)
					assert.Greater(t, math.Exp(a/2), 0.0)
				}
			}
		}
	}
}

// Intermediate values of the glicko2.pdf example.
func TestConvergencePaperStep(t *testing.T) {
	cfg := DefaultConfig()
	a, err := cfg.Convergence(-0.4834, 1.7785, 1.1513, 0.06)
	require.NoError(t, err)
	assert.InDelta(t, 0.05999, math.Exp(a/2), 1e-5)
}

// This input lands a secant step exactly on the root.
func TestConvergenceExactRoot(t *testing.T) {
	cfg := DefaultConfig()
	a, err := cfg.Convergence(-0.4329181665838604, 1.6315204620132937, 0.1726938747785201, 0.2)
	require.NoError(t, err)
	assert.InDelta(t, -3.2214842651677, a, 1e-5)
}

func TestConvergenceRootAtStart(t *testing.T) {
	cfg := DefaultConfig()
	s := 0.06
	p, v := 0.5, 1.0
	// dS - pS - v == s^2 makes a = ln(s^2) the root.
	delta := math.Sqrt(s*s + p*p + v)

	a, err := cfg.Convergence(delta, v, p, s)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(s*s), a, 1e-6)
}

func TestConvergenceIterationCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 1

	_, err := cfg.Convergence(-0.4834, 1.7785, 1.1513, 0.06)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoConvergence))

	player := cfg.NewRating(1500, 200)
	err = player.Update([]Rating{
		cfg.NewRating(1400, 30),
		cfg.NewRating(1550, 100),
		cfg.NewRating(1700, 300),
	}, []float64{Win, Loss, Loss})
	assert.Equal(t, ErrNoConvergence, errors.Cause(err))
	assert.False(t, player.HasPending())
}

func TestConvergenceNonFinite(t *testing.T) {
	cfg := DefaultConfig()
	_, err := cfg.Convergence(math.NaN(), 1, 1, 0.06)
	assert.True(t, errors.Is(err, ErrNoConvergence))
}

func TestConvergenceBadVolatility(t *testing.T) {
	cfg := DefaultConfig()
	for _, s := range []float64{0, -0.06, math.NaN(), math.Inf(1)} {
		_, err := cfg.Convergence(-0.4834, 1.7785, 1.1513, s)
		assert.True(t, errors.Is(err, ErrNoConvergence), "s=%v", s)
	}
}

func TestConvergenceDebug(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := DefaultConfig()
	cfg.Debug = true
	quiet := DefaultConfig()

	b, err := quiet.Convergence(-0.4834, 1.7785, 1.1513, 0.06)
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	a, err := cfg.Convergence(-0.4834, 1.7785, 1.1513, 0.06)
	require.NoError(t, err)
	assert.Equal(t, b, a)
	assert.Contains(t, buf.String(), "glicko: convergence it=0")
}
