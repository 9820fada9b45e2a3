package mapper

import "math"

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// nearest returns the candidate closest to target. Ties keep the earlier one.
func nearest(candidates []Point, target Point) Point {
	best := candidates[0]
	bestDist := distance(best, target)
	for _, c := range candidates[1:] {
		if d := distance(c, target); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
