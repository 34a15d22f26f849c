package glicko

import (
	"log"
	"math"

	"github.com/pkg/errors"
)

// F is the function whose root is ln(sigma'^2), written in terms of
// delta^2, phi^2, v, a = ln(sigma^2) and tau^2.
func F(x, dS, pS, v, a, tS float64) float64 {
	ex := math.Exp(x)
	den := pS + v + ex
	return (ex*(dS-pS-v-ex))/(2.0*den*den) - (x-a)/tS
}

// Convergence solves F(A) = 0 with the Illinois variant of regula falsi and
// returns A = ln(sigma'^2). Both the bracket search and the iteration are
// capped by MaxIterations; running out, or a non-finite step, yields
// ErrNoConvergence.
func (c Config) Convergence(delta, v, p, s float64) (float64, error) {
	if !(s > 0) || math.IsInf(s, 0) {
		return math.NaN(), errors.Wrapf(ErrNoConvergence, "volatility must be positive and finite, got %v", s)
	}

	dS := delta * delta
	pS := p * p
	tS := c.Tau * c.Tau
	a := math.Log(s * s)

	f := func(x float64) float64 { return F(x, dS, pS, v, a, tS) }

	// Bracket: A starts at a, B on the other side of the root.
	A := a
	var B float64
	if bTest := dS - pS - v; bTest > 0 {
		B = math.Log(bTest)
	} else {
		B = a - c.Tau
		steps := 0
		for f(B) < 0 {
			if steps >= c.MaxIterations {
				return A, errors.Wrapf(ErrNoConvergence, "no bracket after %d steps below a=%.6f", steps, a)
			}
			B -= c.Tau
			steps++
		}
	}

	fA := f(A)
	fB := f(B)
	for it := 0; !(math.Abs(B-A) <= c.Epsilon); it++ {
		if it >= c.MaxIterations {
			return A, errors.Wrapf(ErrNoConvergence, "|B-A|=%g after %d iterations", math.Abs(B-A), it)
		}

		C := A + (A-B)*fA/(fB-fA)
		fC := f(C)
		if math.IsNaN(C) || math.IsInf(C, 0) || math.IsNaN(fC) || math.IsInf(fC, 0) {
			return A, errors.Wrapf(ErrNoConvergence, "non-finite step at iteration %d (C=%v f(C)=%v)", it, C, fC)
		}
		// Exact root: fC*fB can never go negative again, so the
		// bracket would stop shrinking.
		if fC == 0 {
			return C, nil
		}

		if fC*fB < 0 {
			A = B
			fA = fB
		} else {
			fA /= 2.0
		}
		B = C
		fB = fC

		if c.Debug {
			log.Printf("glicko: convergence it=%d A=%.9f B=%.9f f(A)=%.3g f(B)=%.3g", it, A, B, fA, fB)
		}
	}

	return A, nil
}
