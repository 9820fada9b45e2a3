// Package taxonomy holds the closed categorical vocabulary of window display
// composition: composition types, depth staging strategies, lighting
// frameworks and viewer contexts, each with its descriptive metadata.
//
// The tables are read-only. Numeric layout rules live in the mapper package;
// this package only answers "is this a known tag" and "what does it mean".
package taxonomy

// CompositionType identifies a structural arrangement of the display.
type CompositionType string

const (
	Pyramidal         CompositionType = "pyramidal"
	StepProgression   CompositionType = "step_progression"
	Radial            CompositionType = "radial"
	Isolation         CompositionType = "isolation"
	Repetition        CompositionType = "repetition"
	TriangularCluster CompositionType = "triangular_cluster"
)

// DepthStaging identifies how the depth axis is partitioned.
type DepthStaging string

const (
	Compressed2D      DepthStaging = "compressed_2d"
	TheatricalDepth   DepthStaging = "theatrical_depth"
	ForcedPerspective DepthStaging = "forced_perspective"
	ShallowFocus      DepthStaging = "shallow_focus"
)

// LightingFramework identifies a lighting approach.
type LightingFramework string

const (
	AccentDramatic    LightingFramework = "accent_dramatic"
	SoftLuxury        LightingFramework = "soft_luxury"
	TheatricalUplight LightingFramework = "theatrical_uplight"
	CoolModern        LightingFramework = "cool_modern"
	AmbientEven       LightingFramework = "ambient_even"
)

// ViewerContext identifies who is looking at the window and from where.
type ViewerContext string

const (
	StreetPedestrian ViewerContext = "street_pedestrian"
	PassingVehicle   ViewerContext = "passing_vehicle"
	CloseInspection  ViewerContext = "close_inspection"
	ElevatedView     ViewerContext = "elevated_view"
)

// Set names one of the closed tag sets.
type Set string

const (
	SetComposition Set = "composition_type"
	SetDepth       Set = "depth_staging"
	SetLighting    Set = "lighting_framework"
	SetViewer      Set = "viewer_context"
)

// CompositionSpec describes a composition type.
type CompositionSpec struct {
	Description    string             `json:"description"`
	EyeMovement    string             `json:"eye_movement"`
	Stability      string             `json:"stability"`
	TypicalRatios  map[string]float64 `json:"typical_ratios"`
	RetailContexts []string           `json:"retail_contexts"`
}

// DepthStagingSpec describes a depth staging strategy.
type DepthStagingSpec struct {
	Description     string `json:"description"`
	DepthZones      int    `json:"depth_zones"`
	ViewingDistance string `json:"viewing_distance"`
}

// LightingSpec describes a lighting framework.
type LightingSpec struct {
	Description       string  `json:"description"`
	KeyAngle          float64 `json:"key_angle"`
	KeyIntensityRatio float64 `json:"key_intensity_ratio"`
	FillRatio         float64 `json:"fill_ratio"`
	ColorTemperature  int     `json:"color_temperature"`
	ShadowQuality     string  `json:"shadow_quality"`
}

// SightLineSpec describes the geometry of a viewer context.
type SightLineSpec struct {
	Description        string  `json:"description"`
	ViewingAngle       float64 `json:"viewing_angle"`
	ViewingDistanceFt  float64 `json:"viewing_distance_ft"`
	EyeHeightIn        float64 `json:"eye_height_in"`
	OptimalFocalHeight float64 `json:"optimal_focal_height"`
}

var compositionOrder = []CompositionType{
	Pyramidal, StepProgression, Radial, Isolation, Repetition, TriangularCluster,
}

var compositions = map[CompositionType]CompositionSpec{
	Pyramidal: {
		Description:    "Stable hierarchical arrangement with apex focal point",
		EyeMovement:    "upward_convergent",
		Stability:      "high",
		TypicalRatios:  map[string]float64{"base_width": 1.0, "apex_height": 0.618},
		RetailContexts: []string{"luxury", "aspirational", "hero_product"},
	},
	StepProgression: {
		Description:    "Zigzag or stair-step creating guided left-to-right scan",
		EyeMovement:    "sequential_horizontal",
		Stability:      "medium",
		TypicalRatios:  map[string]float64{"step_height": 0.15, "step_depth": 0.20},
		RetailContexts: []string{"storytelling", "product_range", "seasonal_narrative"},
	},
	Radial: {
		Description:    "Elements emanating from central focal point",
		EyeMovement:    "outward_from_center",
		Stability:      "dynamic",
		TypicalRatios:  map[string]float64{"center_zone": 0.25, "radiation_angle": 45},
		RetailContexts: []string{"celebration", "abundance", "variety"},
	},
	Isolation: {
		Description:    "Single element in negative space for maximum impact",
		EyeMovement:    "immediate_focal_lock",
		Stability:      "very_high",
		TypicalRatios:  map[string]float64{"negative_space": 0.70, "focal_offset": 0.382},
		RetailContexts: []string{"ultra_luxury", "museum_quality", "iconic_statement"},
	},
	Repetition: {
		Description:    "Rhythmic pattern creating visual momentum",
		EyeMovement:    "scanning_rhythm",
		Stability:      "medium",
		TypicalRatios:  map[string]float64{"unit_spacing": 0.12, "pattern_repeat": 5},
		RetailContexts: []string{"mass_appeal", "variety", "abundance"},
	},
	TriangularCluster: {
		Description:    "Three focal points forming stable triangle composition",
		EyeMovement:    "triangular_scan",
		Stability:      "high",
		TypicalRatios:  map[string]float64{"spacing": 0.30, "vertex_angle": 60},
		RetailContexts: []string{"collection", "coordinated_set", "balanced_variety"},
	},
}

var depthOrder = []DepthStaging{Compressed2D, TheatricalDepth, ForcedPerspective, ShallowFocus}

var depthStagings = map[DepthStaging]DepthStagingSpec{
	Compressed2D: {
		Description:     "Flat graphic composition maximizing window glass plane",
		DepthZones:      1,
		ViewingDistance: "close_inspection",
	},
	TheatricalDepth: {
		Description:     "Strong foreground/midground/background separation",
		DepthZones:      3,
		ViewingDistance: "street_level_15ft",
	},
	ForcedPerspective: {
		Description:     "Exaggerated depth using scale manipulation",
		DepthZones:      4,
		ViewingDistance: "dramatic_distance_20ft",
	},
	ShallowFocus: {
		Description:     "Photography-style depth with clear focal plane",
		DepthZones:      2,
		ViewingDistance: "intimate_6ft",
	},
}

var lightingOrder = []LightingFramework{AccentDramatic, SoftLuxury, TheatricalUplight, CoolModern, AmbientEven}

var lightings = map[LightingFramework]LightingSpec{
	AccentDramatic: {
		Description:       "High-contrast accent spots creating sculptural shadows",
		KeyAngle:          35,
		KeyIntensityRatio: 4.0,
		FillRatio:         0.25,
		ColorTemperature:  3200,
		ShadowQuality:     "hard_defined",
	},
	SoftLuxury: {
		Description:       "Even diffuse lighting with subtle modeling",
		KeyAngle:          45,
		KeyIntensityRatio: 2.0,
		FillRatio:         0.60,
		ColorTemperature:  4500,
		ShadowQuality:     "soft_graduated",
	},
	TheatricalUplight: {
		Description:       "Low-angle uplighting for drama and monumentality",
		KeyAngle:          -25,
		KeyIntensityRatio: 5.0,
		FillRatio:         0.15,
		ColorTemperature:  2900,
		ShadowQuality:     "theatrical_elongated",
	},
	CoolModern: {
		Description:       "Daylight-balanced cross-lighting for dimensionality",
		KeyAngle:          55,
		KeyIntensityRatio: 3.0,
		FillRatio:         0.40,
		ColorTemperature:  5600,
		ShadowQuality:     "crisp_natural",
	},
	AmbientEven: {
		Description:       "Shadowless illumination for pure color and form",
		KeyAngle:          0,
		KeyIntensityRatio: 1.2,
		FillRatio:         0.90,
		ColorTemperature:  4000,
		ShadowQuality:     "minimal",
	},
}

var viewerOrder = []ViewerContext{StreetPedestrian, PassingVehicle, CloseInspection, ElevatedView}

var sightLines = map[ViewerContext]SightLineSpec{
	StreetPedestrian: {
		Description:        "Typical adult walking at sidewalk distance",
		ViewingAngle:       25,
		ViewingDistanceFt:  8,
		EyeHeightIn:        64,
		OptimalFocalHeight: 0.55,
	},
	PassingVehicle: {
		Description:        "Driver or passenger in moving car",
		ViewingAngle:       15,
		ViewingDistanceFt:  20,
		EyeHeightIn:        52,
		OptimalFocalHeight: 0.50,
	},
	CloseInspection: {
		Description:        "Stopped viewer examining details",
		ViewingAngle:       45,
		ViewingDistanceFt:  3,
		EyeHeightIn:        64,
		OptimalFocalHeight: 0.60,
	},
	ElevatedView: {
		Description:        "Second-floor or elevated walkway perspective",
		ViewingAngle:       -20,
		ViewingDistanceFt:  15,
		EyeHeightIn:        120,
		OptimalFocalHeight: 0.35,
	},
}
