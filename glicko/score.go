package glicko

import "math"

// Conventional outcomes from the rated player's side.
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

// ScoreFromResult returns the outcome for a plain result: win=1, tie=0.5, loss=0.
func ScoreFromResult(win, tie bool) float64 {
	if tie {
		return Draw
	}
	if win {
		return Win
	}
	return Loss
}

// ScoreFromMargin maps a signed margin (points, chips, goals) onto [0,1]
// with a tanh curve, so a large win counts for more than a narrow one.
// scale normalises the margin and k controls steepness (k=1 mildly
// compresses). A non-positive scale yields a draw.
func ScoreFromMargin(margin, scale, k float64) float64 {
	if scale <= 0 {
		return Draw
	}
	return 0.5 + 0.5*math.Tanh(k*margin/scale)
}
