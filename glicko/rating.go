package glicko

import (
	"math"

	"github.com/pkg/errors"
)

const pi2 = math.Pi * math.Pi

// maxExponent keeps exp() in E finite for absurd rating gaps.
const maxExponent = 700.0

// state is a rating on the internal scale: mu, phi and sigma.
type state struct {
	u, p, s float64
}

// Rating is one competitor's Glicko-2 state. Updates and decay stage a
// pending state which only becomes current after Apply.
//
// A Rating is not safe for concurrent mutation. Opponents are passed by value,
// so a Rating may be used as an opponent by any number of concurrent updates
// as long as nobody mutates it meanwhile.
type Rating struct {
	cfg     Config
	cur     state
	pending *state
}

// NewRating builds a rating with the configured default volatility.
func (c Config) NewRating(rating, deviation float64) Rating {
	return c.NewRatingWithVolatility(rating, deviation, c.DefaultVolatility)
}

// NewRatingWithVolatility seeds all three public values.
func (c Config) NewRatingWithVolatility(rating, deviation, volatility float64) Rating {
	u, p := c.ToInternal(rating, deviation)
	return Rating{cfg: c, cur: state{u: u, p: p, s: volatility}}
}

// Rating returns the current rating on the external scale.
func (r Rating) Rating() float64 {
	rating, _ := r.cfg.ToExternal(r.cur.u, r.cur.p)
	return rating
}

// Deviation returns the current rating deviation on the external scale.
func (r Rating) Deviation() float64 {
	_, deviation := r.cfg.ToExternal(r.cur.u, r.cur.p)
	return deviation
}

// Volatility returns the current volatility.
func (r Rating) Volatility() float64 { return r.cur.s }

// HasPending reports whether an update or decay is waiting for Apply.
func (r Rating) HasPending() bool { return r.pending != nil }

// Pending returns the staged values on the external scale.
func (r Rating) Pending() (rating, deviation, volatility float64, ok bool) {
	if r.pending == nil {
		return 0, 0, 0, false
	}
	rating, deviation = r.cfg.ToExternal(r.pending.u, r.pending.p)
	return rating, deviation, r.pending.s, true
}

// G discounts an opponent's impact by the opponent's own deviation phi.
func G(p float64) float64 { return 1.0 / math.Sqrt(1.0+3.0*p*p/pi2) }

// E is the expected score of a player at u against an opponent at uj whose
// impact is gj.
func E(gj, u, uj float64) float64 {
	return 1.0 / (1.0 + math.Exp(clamp(-gj*(u-uj), -maxExponent, maxExponent)))
}

// Update runs a rating period against every opponent with the matching
// outcome (1 win, 0.5 draw, 0 loss) and stages the result.
func (r *Rating) Update(opponents []Rating, outcomes []float64) error {
	if len(opponents) == 0 {
		return ErrNoGames
	}
	if len(opponents) != len(outcomes) {
		return errors.Wrapf(ErrOutcomeMismatch, "%d opponents, %d outcomes", len(opponents), len(outcomes))
	}

	gs := make([]float64, len(opponents))
	es := make([]float64, len(opponents))
	invV := 0.0
	for j := range opponents {
		opp := opponents[j].cur
		g := G(opp.p)
		e := E(g, r.cur.u, opp.u)
		gs[j], es[j] = g, e
		invV += g * g * e * (1.0 - e)
	}

	dInner := 0.0
	for j := range opponents {
		dInner += gs[j] * (outcomes[j] - es[j])
	}

	return r.stage(invV, dInner)
}

// UpdateOne is Update for a period with a single game.
func (r *Rating) UpdateOne(opponent Rating, outcome float64) error {
	g := G(opponent.cur.p)
	e := E(g, r.cur.u, opponent.cur.u)
	return r.stage(g*g*e*(1.0-e), g*(outcome-e))
}

// stage derives the new values from the aggregated 1/v and sum of
// g*(score-E) and holds them as pending.
func (r *Rating) stage(invV, dInner float64) error {
	if !(invV > 0) || math.IsInf(invV, 0) {
		return errors.Wrapf(ErrDegenerateVariance, "1/v=%v", invV)
	}
	v := 1.0 / invV
	d := v * dInner

	a, err := r.cfg.Convergence(d, v, r.cur.p, r.cur.s)
	if err != nil {
		return err
	}

	sPrime := math.Exp(a / 2.0)
	pPrime := 1.0 / math.Sqrt(1.0/(r.cur.p*r.cur.p+sPrime*sPrime)+invV)
	uPrime := r.cur.u + pPrime*pPrime*dInner

	r.pending = &state{u: uPrime, p: pPrime, s: sPrime}
	return nil
}

// Decay stages a period without games: phi grows by sigma, mu and sigma stay.
func (r *Rating) Decay() {
	c := r.cur
	r.pending = &state{u: c.u, p: math.Sqrt(c.p*c.p + c.s*c.s), s: c.s}
}

// Apply makes the pending state current.
func (r *Rating) Apply() error {
	if r.pending == nil {
		return ErrNothingPending
	}
	r.cur = *r.pending
	r.pending = nil
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
