package mapper

import (
	"math"
	"testing"

	"window-display-workers/internal/display/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

// ==========================
// Scenario Tests
// ==========================

func TestMap_PyramidalTheatricalStreet(t *testing.T) {
	spec, err := Map(10, 8, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian")
	require.NoError(t, err)

	assert.InDelta(t, 1.25, spec.AspectRatio, tolerance)
	assert.Equal(t, Point{X: 5, Y: 4}, spec.Centroid)

	assert.InDelta(t, 10.0, spec.ViewingCone.DistanceFt, tolerance)
	assert.InDelta(t, 2*math.Atan(0.5)*180/math.Pi, spec.ViewingCone.ApexAngleDeg, tolerance)
	assert.InDelta(t, 7.5, spec.ViewingCone.NearFt, tolerance)
	assert.InDelta(t, 12.5, spec.ViewingCone.FarFt, tolerance)

	require.Len(t, spec.DepthBands, 3)
	assert.Equal(t, "foreground", spec.DepthBands[0].Name)
	assert.Equal(t, "midground", spec.DepthBands[1].Name)
	assert.Equal(t, "background", spec.DepthBands[2].Name)
	assert.InDelta(t, 0.2, spec.SpatialCompression, tolerance)

	assert.Less(t, spec.FocalPoint.Absolute.Y, 0.618*8)
	assert.InDelta(t, 5.0, spec.FocalPoint.Absolute.X, tolerance)
	assert.InDelta(t, 0.5, spec.FocalPoint.Normalized.X, tolerance)
	require.Len(t, spec.SecondaryPoints, 2)
	assert.InDelta(t, spec.ReferenceAnchor.Y, spec.SecondaryPoints[0].Y, tolerance)

	assert.Equal(t, DirectionAbove, spec.Lighting.Direction)
	assert.InDelta(t, spec.ViewingCone.ApexAngleDeg/2+10, spec.Lighting.AngleDeg, tolerance)
	assert.InDelta(t, 0.88, spec.Lighting.Intensity, tolerance)
	assert.Equal(t, 3200, spec.Lighting.ColorTemperatureK)
}

func TestMap_IsolationShallowClose(t *testing.T) {
	spec, err := Map(6, 6, "isolation", "shallow_focus", "soft_luxury", "close_inspection")
	require.NoError(t, err)

	centre := Point{X: 3, Y: 3}
	assert.Less(t, distance(spec.FocalPoint.Absolute, centre), distance(spec.ReferenceAnchor, centre))
	assert.InDelta(t, 0.5+0.2*(InvPhi-0.5), spec.FocalPoint.Normalized.X, tolerance)
	assert.InDelta(t, 0.7, spec.SpatialCompression, tolerance)
	assert.Len(t, spec.DepthBands, 2)
	assert.InDelta(t, 0.70, spec.NegativeSpaceRatio, tolerance)
	assert.Equal(t, ImpactCompressed, spec.SightLine.Impact)
	assert.InDelta(t, 6*math.Cos(math.Pi/4), spec.SightLine.EffectiveHeightFt, tolerance)
}

func TestMap_UplightKeepsDirection(t *testing.T) {
	spec, err := Map(12, 9, "radial", "forced_perspective", "theatrical_uplight", "passing_vehicle")
	require.NoError(t, err)

	assert.Equal(t, DirectionBelow, spec.Lighting.Direction)
	assert.Equal(t, -25.0, spec.Lighting.BaseAngleDeg)
	assert.GreaterOrEqual(t, spec.Lighting.AngleDeg, 25.0)
	assert.InDelta(t, 1.0, spec.Lighting.Intensity, tolerance)
	assert.InDelta(t, 0.1, spec.SpatialCompression, tolerance)
	assert.Len(t, spec.SecondaryPoints, 8)
	assert.Equal(t, spec.Centroid, spec.FocalPoint.Absolute)
}

func TestMap_AmbientAngleIsRaisedIntoRange(t *testing.T) {
	spec, err := Map(10, 8, "repetition", "compressed_2d", "ambient_even", "passing_vehicle")
	require.NoError(t, err)

	// base 0 is raised by at most 20 degrees and then clamped
	assert.GreaterOrEqual(t, spec.Lighting.AngleDeg, 15.0)
	assert.LessOrEqual(t, spec.Lighting.AngleDeg, 20.0)
	assert.InDelta(t, 1.0, spec.SpatialCompression, tolerance)
	assert.InDelta(t, 0.20, spec.NegativeSpaceRatio, tolerance)
	require.Len(t, spec.Candidates, 5)
	for _, c := range spec.Candidates {
		assert.InDelta(t, 0.5*8, c.Y, tolerance)
	}
}

// ==========================
// Composition Placement Tests
// ==========================

func TestMap_PrimaryIsClosestCandidate(t *testing.T) {
	for _, comp := range taxonomy.NewProvider().Tags(taxonomy.SetComposition) {
		t.Run(comp, func(t *testing.T) {
			spec, err := Map(10, 7, comp, "theatrical_depth", "cool_modern", "street_pedestrian")
			require.NoError(t, err)
			require.NotEmpty(t, spec.Candidates)

			best := distance(spec.FocalPoint.Absolute, spec.ReferenceAnchor)
			for _, c := range spec.Candidates {
				assert.GreaterOrEqual(t, distance(c, spec.ReferenceAnchor)+tolerance, best)
			}
			assert.Contains(t, spec.Candidates, spec.FocalPoint.Absolute)
			assert.NotNil(t, spec.SecondaryPoints)
		})
	}
}

func TestMap_StepProgressionPicksUpperRightStair(t *testing.T) {
	spec, err := Map(10, 10, "step_progression", "compressed_2d", "soft_luxury", "street_pedestrian")
	require.NoError(t, err)

	// stairs at x .2 .4 .6 .8; the .6/.45 stair is nearest (0.618, 0.618)
	assert.InDelta(t, 6.0, spec.FocalPoint.Absolute.X, tolerance)
	assert.InDelta(t, 4.5, spec.FocalPoint.Absolute.Y, tolerance)
}

func TestMap_TriangularClusterIsEquilateral(t *testing.T) {
	spec, err := Map(10, 8, "triangular_cluster", "shallow_focus", "soft_luxury", "street_pedestrian")
	require.NoError(t, err)
	require.Len(t, spec.Candidates, 3)

	side := 0.30 * 8
	c := spec.Candidates
	assert.InDelta(t, side, distance(c[0], c[1]), tolerance)
	assert.InDelta(t, side, distance(c[1], c[2]), tolerance)
	assert.InDelta(t, side, distance(c[0], c[2]), tolerance)
	assert.Less(t, c[2].Y, c[0].Y, "apex sits above the base")
}

func TestNearest_TieKeepsFirst(t *testing.T) {
	target := Point{X: 0, Y: 0}
	got := nearest([]Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}}, target)
	assert.Equal(t, Point{X: 1, Y: 0}, got)
}

func TestMap_GoldenAnchors(t *testing.T) {
	spec, err := Map(10, 5, "radial", "compressed_2d", "soft_luxury", "street_pedestrian")
	require.NoError(t, err)

	require.Len(t, spec.GoldenAnchors, 4)
	assert.Equal(t, spec.ReferenceAnchor, spec.GoldenAnchors[3])
	assert.InDelta(t, 6.180339887, spec.ReferenceAnchor.X, 1e-6)
	assert.InDelta(t, 1.909830056, spec.GoldenAnchors[0].Y, 1e-6)
}

// ==========================
// Property Tests
// ==========================

func TestMap_Properties(t *testing.T) {
	p := taxonomy.NewProvider()
	dims := [][2]float64{{10, 8}, {0.5, 12}, {40, 3}, {1e-3, 1e-3}}

	for _, d := range dims {
		for _, comp := range p.Tags(taxonomy.SetComposition) {
			for _, depth := range p.Tags(taxonomy.SetDepth) {
				for _, light := range p.Tags(taxonomy.SetLighting) {
					for _, viewer := range p.Tags(taxonomy.SetViewer) {
						spec, err := Map(d[0], d[1], comp, depth, light, viewer)
						require.NoError(t, err)

						total := 0.0
						for i, b := range spec.DepthBands {
							total += b.End - b.Start
							if i > 0 {
								assert.Equal(t, spec.DepthBands[i-1].End, b.Start)
							}
						}
						assert.InDelta(t, 1.0, total, tolerance)
						assert.Equal(t, 0.0, spec.DepthBands[0].Start)
						assert.Equal(t, 1.0, spec.DepthBands[len(spec.DepthBands)-1].End)

						assert.GreaterOrEqual(t, spec.Lighting.Intensity, 0.0)
						assert.LessOrEqual(t, spec.Lighting.Intensity, 1.0)
						assert.GreaterOrEqual(t, spec.SpatialCompression, 0.0)
						assert.LessOrEqual(t, spec.SpatialCompression, 1.0)
						assert.GreaterOrEqual(t, spec.Lighting.AngleDeg, 15.0)
						assert.LessOrEqual(t, spec.Lighting.AngleDeg, 75.0)
					}
				}
			}
		}
	}
}

func TestMap_Deterministic(t *testing.T) {
	a, err := Map(7.3, 4.1, "triangular_cluster", "forced_perspective", "cool_modern", "elevated_view")
	require.NoError(t, err)
	b, err := Map(7.3, 4.1, "triangular_cluster", "forced_perspective", "cool_modern", "elevated_view")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

// ==========================
// Validation Tests
// ==========================

func TestMap_InvalidParameters(t *testing.T) {
	tests := []struct {
		name        string
		width       float64
		height      float64
		composition string
		depth       string
		lighting    string
		viewer      string
		field       string
		value       interface{}
	}{
		{"zero width", 0, 8, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian", FieldWindowWidth, 0.0},
		{"negative height", 10, -2, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian", FieldWindowHeight, -2.0},
		{"infinite width", math.Inf(1), 8, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian", FieldWindowWidth, math.Inf(1)},
		{"unknown composition", 10, 8, "nonexistent", "theatrical_depth", "accent_dramatic", "street_pedestrian", FieldCompositionType, "nonexistent"},
		{"unknown depth", 10, 8, "pyramidal", "deep", "accent_dramatic", "street_pedestrian", FieldDepthStaging, "deep"},
		{"unknown lighting", 10, 8, "pyramidal", "theatrical_depth", "neon", "street_pedestrian", FieldLightingFramework, "neon"},
		{"unknown viewer", 10, 8, "pyramidal", "theatrical_depth", "accent_dramatic", "drone", FieldViewerContext, "drone"},
		{"width reported before tags", -1, 8, "nonexistent", "deep", "neon", "drone", FieldWindowWidth, -1.0},
		{"first bad tag wins", 10, 8, "pyramidal", "deep", "neon", "drone", FieldDepthStaging, "deep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Map(tt.width, tt.height, tt.composition, tt.depth, tt.lighting, tt.viewer)
			assert.Nil(t, spec)
			require.Error(t, err)

			var ipe *InvalidParameterError
			require.ErrorAs(t, err, &ipe)
			assert.Equal(t, tt.field, ipe.Field)
			assert.Equal(t, tt.value, ipe.Value)
			assert.True(t, IsInvalidParameter(err))
		})
	}
}

func TestMap_NaNWidth(t *testing.T) {
	_, err := Map(math.NaN(), 8, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian")
	var ipe *InvalidParameterError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, FieldWindowWidth, ipe.Field)
}

func TestInvalidParameterError_Message(t *testing.T) {
	_, err := Map(10, 8, "nonexistent", "theatrical_depth", "accent_dramatic", "street_pedestrian")
	assert.EqualError(t, err, `invalid parameter composition_type: "nonexistent"`)

	_, err = Map(-3, 8, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian")
	assert.EqualError(t, err, "invalid parameter window_width_ft: -3")
}

type restrictedTaxonomy struct{ denied string }

func (r restrictedTaxonomy) Contains(set taxonomy.Set, tag string) bool {
	return tag != r.denied && taxonomy.NewProvider().Contains(set, tag)
}

func TestMapper_UsesMembership(t *testing.T) {
	m := New(restrictedTaxonomy{denied: "radial"})

	_, err := m.Map(10, 8, "radial", "theatrical_depth", "accent_dramatic", "street_pedestrian")
	var ipe *InvalidParameterError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, FieldCompositionType, ipe.Field)

	_, err = m.Map(10, 8, "pyramidal", "theatrical_depth", "accent_dramatic", "street_pedestrian")
	assert.NoError(t, err)
}

// ==========================
// Rule Table Tests
// ==========================

func TestRules_AgreeWithTaxonomy(t *testing.T) {
	p := taxonomy.NewProvider()

	for _, tag := range p.Tags(taxonomy.SetViewer) {
		sight, ok := p.SightLine(taxonomy.ViewerContext(tag))
		require.True(t, ok)
		rule, ok := viewerRules[taxonomy.ViewerContext(tag)]
		require.True(t, ok, tag)
		assert.Equal(t, sight.ViewingAngle, rule.viewingAngle, tag)
		assert.Equal(t, sight.ViewingDistanceFt, rule.nominalDistanceFt, tag)
		assert.Equal(t, sight.EyeHeightIn, rule.eyeHeightIn, tag)
		assert.Equal(t, sight.OptimalFocalHeight, rule.optimalFocalHeight, tag)
	}

	for _, tag := range p.Tags(taxonomy.SetLighting) {
		light, _ := p.Lighting(taxonomy.LightingFramework(tag))
		rule, ok := lightingRules[taxonomy.LightingFramework(tag)]
		require.True(t, ok, tag)
		assert.Equal(t, light.KeyAngle, rule.baseAngle, tag)
		assert.Equal(t, light.KeyIntensityRatio, rule.keyFillRatio, tag)
		assert.Equal(t, light.ColorTemperature, rule.colorTemperature, tag)
	}

	for _, tag := range p.Tags(taxonomy.SetDepth) {
		depth, _ := p.DepthStaging(taxonomy.DepthStaging(tag))
		assert.Len(t, depthRules[taxonomy.DepthStaging(tag)], depth.DepthZones, tag)
	}
}
