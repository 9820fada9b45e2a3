// Package mapper turns window dimensions and a composition vocabulary into a
// concrete GeometricSpec: focal point, viewing cone, depth bands, golden-ratio
// anchors and key-light placement.
//
// Mapping is a pure function. The same inputs always produce bit-identical
// output, and a Mapper may be shared freely between goroutines.
//
// All positions use image coordinates: origin at the top-left corner of the
// window, x to the right, y downward, in feet.
package mapper

import (
	"math"

	"window-display-workers/internal/display/taxonomy"
)

// Mapper validates tags against a taxonomy and applies the rule tables.
type Mapper struct {
	taxonomy taxonomy.Membership
}

func New(membership taxonomy.Membership) *Mapper {
	return &Mapper{taxonomy: membership}
}

var defaultMapper = New(taxonomy.NewProvider())

// Map runs the default Mapper backed by the built-in taxonomy.
func Map(width, height float64, composition, depth, lighting, viewer string) (*GeometricSpec, error) {
	return defaultMapper.Map(width, height, composition, depth, lighting, viewer)
}

// Map validates the inputs in order and returns the first failure as an
// *InvalidParameterError. No partial result is ever returned.
func (m *Mapper) Map(width, height float64, composition, depth, lighting, viewer string) (*GeometricSpec, error) {
	if err := m.validate(width, height, composition, depth, lighting, viewer); err != nil {
		return nil, err
	}

	vr := viewerRules[taxonomy.ViewerContext(viewer)]
	bands := depthRules[taxonomy.DepthStaging(depth)]
	lr := lightingRules[taxonomy.LightingFramework(lighting)]

	spec := &GeometricSpec{
		WindowWidthFt:     width,
		WindowHeightFt:    height,
		AspectRatio:       width / height,
		CompositionType:   composition,
		DepthStaging:      depth,
		LightingFramework: lighting,
		ViewerContext:     viewer,
		Centroid:          Point{X: width / 2, Y: height / 2},
	}

	spec.ViewingCone = viewingCone(width, vr)
	spec.SightLine = sightLine(width, height, viewer, vr)

	spec.GoldenAnchors = goldenAnchors(width, height)
	spec.ReferenceAnchor = Point{X: InvPhi * width, Y: InvPhi * height}

	placement := placeComposition(taxonomy.CompositionType(composition), width, height, spec.Centroid, spec.ReferenceAnchor, vr)
	primary := nearest(placement.candidates, spec.ReferenceAnchor)
	spec.Candidates = placement.candidates
	spec.SecondaryPoints = placement.secondaries
	spec.FocalPoint = FocalPoint{
		Absolute:   primary,
		Normalized: Point{X: primary.X / width, Y: primary.Y / height},
	}
	spec.NegativeSpaceRatio = defaultNegative
	if ratio, ok := negativeSpace[taxonomy.CompositionType(composition)]; ok {
		spec.NegativeSpaceRatio = ratio
	}

	spec.DepthBands = depthBands(bands)
	spec.SpatialCompression = spec.DepthBands[0].End - spec.DepthBands[0].Start

	spec.Lighting = keyLight(lighting, lr, spec.ViewingCone.ApexAngleDeg)

	return spec, nil
}

func (m *Mapper) validate(width, height float64, composition, depth, lighting, viewer string) error {
	if !positiveFinite(width) {
		return &InvalidParameterError{Field: FieldWindowWidth, Value: width}
	}
	if !positiveFinite(height) {
		return &InvalidParameterError{Field: FieldWindowHeight, Value: height}
	}

	tags := []struct {
		field string
		set   taxonomy.Set
		value string
		known bool
	}{
		{FieldCompositionType, taxonomy.SetComposition, composition, hasPlacement(taxonomy.CompositionType(composition))},
		{FieldDepthStaging, taxonomy.SetDepth, depth, depthRules[taxonomy.DepthStaging(depth)] != nil},
		{FieldLightingFramework, taxonomy.SetLighting, lighting, hasLightingRule(lighting)},
		{FieldViewerContext, taxonomy.SetViewer, viewer, hasViewerRule(viewer)},
	}
	for _, tag := range tags {
		if !tag.known || !m.taxonomy.Contains(tag.set, tag.value) {
			return &InvalidParameterError{Field: tag.field, Value: tag.value}
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func hasLightingRule(tag string) bool {
	_, ok := lightingRules[taxonomy.LightingFramework(tag)]
	return ok
}

func hasViewerRule(tag string) bool {
	_, ok := viewerRules[taxonomy.ViewerContext(tag)]
	return ok
}

func viewingCone(width float64, vr viewerRule) ViewingCone {
	d := vr.distanceMultiplier * width
	return ViewingCone{
		DistanceFt:   d,
		ApexAngleDeg: degrees(2 * math.Atan(width/(2*d))),
		NearFt:       d * (1 - coneSpread),
		FarFt:        d * (1 + coneSpread),
	}
}

func sightLine(width, height float64, viewer string, vr viewerRule) SightLine {
	impact := ImpactNatural
	if math.Abs(vr.viewingAngle) > compressedViewAngle {
		impact = ImpactCompressed
	}
	return SightLine{
		Context:            viewer,
		ViewingAngleDeg:    vr.viewingAngle,
		NominalDistanceFt:  vr.nominalDistanceFt,
		EyeHeightIn:        vr.eyeHeightIn,
		OptimalFocalHeight: vr.optimalFocalHeight,
		EffectiveHeightFt:  height * math.Cos(radians(vr.viewingAngle)),
		FocalZone: Zone{
			Left:   width * focalZoneLeft,
			Right:  width * focalZoneRight,
			Top:    height * focalZoneTop,
			Bottom: height * focalZoneBottom,
		},
		Impact: impact,
	}
}

func goldenAnchors(width, height float64) []Point {
	return []Point{
		{X: Minor * width, Y: Minor * height},
		{X: InvPhi * width, Y: Minor * height},
		{X: Minor * width, Y: InvPhi * height},
		{X: InvPhi * width, Y: InvPhi * height},
	}
}

func depthBands(rules []bandRule) []DepthBand {
	bands := make([]DepthBand, 0, len(rules))
	start := 0.0
	for i, r := range rules {
		end := start + r.width
		// pin the last edge so the bands always close at exactly 1
		if i == len(rules)-1 {
			end = 1.0
		}
		bands = append(bands, DepthBand{
			Name:       r.name,
			Start:      start,
			End:        end,
			Scale:      r.scale,
			DistanceFt: r.distanceFt,
		})
		start = end
	}
	return bands
}

func keyLight(framework string, lr lightingRule, apexDeg float64) Lighting {
	angle := math.Abs(lr.baseAngle)
	if target := apexDeg/2 + lightRaiseMargin; target > angle {
		angle += math.Min(target-angle, lightRaiseLimit)
	}
	angle = clamp(angle, lightAngleMin, lightAngleMax)

	direction := DirectionAbove
	if lr.baseAngle < 0 {
		direction = DirectionBelow
	}

	return Lighting{
		Framework:         framework,
		BaseAngleDeg:      lr.baseAngle,
		AngleDeg:          angle,
		Direction:         direction,
		KeyFillRatio:      lr.keyFillRatio,
		FillRatio:         lr.fillRatio,
		ColorTemperatureK: lr.colorTemperature,
		Intensity:         clamp(lr.intensityMultiplier*lr.keyFillRatio/(lr.keyFillRatio+1), 0, 1),
	}
}
