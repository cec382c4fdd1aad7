package sweep

import "errors"

// ErrEmptyCurve marks selection over a curve with no measured points.
var ErrEmptyCurve = errors.New("cannot select topic count from empty curve")

// SelectK returns the K with minimum perplexity. Ties resolve to the
// smallest K, which the ascending curve order gives for free.
func SelectK(curve Curve) (int, error) {
	if len(curve) == 0 {
		return 0, ErrEmptyCurve
	}
	best := curve[0]
	for _, p := range curve[1:] {
		if p.Perplexity < best.Perplexity {
			best = p
		}
	}
	return best.K, nil
}
