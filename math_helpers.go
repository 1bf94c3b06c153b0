package unirender

import "github.com/chewxy/math32"

// expLog computes x^y via exp(y*ln(x)) for the non-integer-exponent path
// of Socket.Pow.
func expLog(x, y float32) float32 {
	if x == 0 {
		if y == 0 {
			return 1
		}
		return 0
	}
	return math32.Exp(y * math32.Log(x))
}
