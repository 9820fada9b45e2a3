package mapper

import (
	"math"

	"window-display-workers/internal/display/taxonomy"
)

type placement struct {
	candidates  []Point
	secondaries []Point
}

type placer func(w, h float64, centroid, ref Point, vr viewerRule) placement

var placers = map[taxonomy.CompositionType]placer{
	taxonomy.Pyramidal:         placePyramidal,
	taxonomy.StepProgression:   placeSteps,
	taxonomy.Radial:            placeRadial,
	taxonomy.Isolation:         placeIsolation,
	taxonomy.Repetition:        placeRepetition,
	taxonomy.TriangularCluster: placeTriangle,
}

func hasPlacement(c taxonomy.CompositionType) bool {
	_, ok := placers[c]
	return ok
}

func placeComposition(c taxonomy.CompositionType, w, h float64, centroid, ref Point, vr viewerRule) placement {
	p := placers[c](w, h, centroid, ref, vr)
	if p.secondaries == nil {
		p.secondaries = []Point{}
	}
	return p
}

// Apex sits above the reference anchor by the gap between the two golden
// lines; the base vertices span the golden width on the reference row.
func placePyramidal(w, h float64, _, ref Point, _ viewerRule) placement {
	half := InvPhi * w / 2
	return placement{
		candidates: []Point{{X: w / 2, Y: ref.Y - (InvPhi-Minor)*h}},
		secondaries: []Point{
			{X: w/2 - half, Y: ref.Y},
			{X: w/2 + half, Y: ref.Y},
		},
	}
}

// Stairs climb left to right.
func placeSteps(w, h float64, _, _ Point, _ viewerRule) placement {
	pts := make([]Point, stepCount)
	for i := range pts {
		f := float64(i)
		pts[i] = Point{X: (0.2 + 0.2*f) * w, Y: (0.75 - 0.15*f) * h}
	}
	return placement{candidates: pts}
}

func placeRadial(w, h float64, centroid, _ Point, _ viewerRule) placement {
	r := radialRadius * math.Min(w, h)
	spokes := make([]Point, radialSpokes)
	for i := range spokes {
		theta := radians(float64(i) * 360 / radialSpokes)
		spokes[i] = Point{X: centroid.X + r*math.Cos(theta), Y: centroid.Y - r*math.Sin(theta)}
	}
	return placement{candidates: []Point{centroid}, secondaries: spokes}
}

func placeIsolation(_, _ float64, centroid, ref Point, _ viewerRule) placement {
	return placement{candidates: []Point{lerp(centroid, ref, isolationPull)}}
}

func placeRepetition(w, h float64, _, _ Point, vr viewerRule) placement {
	y := (1 - vr.optimalFocalHeight) * h
	units := make([]Point, repetitionUnits)
	for i := range units {
		units[i] = Point{X: w * (repetitionStart + float64(i)*repetitionStep), Y: y}
	}
	return placement{candidates: units}
}

// Equilateral triangle with its centroid on the golden vertical, apex up.
func placeTriangle(w, h float64, _, _ Point, _ viewerRule) placement {
	side := triangleSide * math.Min(w, h)
	tall := side * math.Sqrt(3) / 2
	c := Point{X: InvPhi * w, Y: triangleCenterY * h}
	return placement{candidates: []Point{
		{X: c.X - side/2, Y: c.Y + tall/3},
		{X: c.X + side/2, Y: c.Y + tall/3},
		{X: c.X, Y: c.Y - 2*tall/3},
	}}
}
