package mapper

import (
	"math"

	"window-display-workers/internal/display/taxonomy"
)

// Golden-ratio constants.
var (
	Phi    = (1 + math.Sqrt(5)) / 2
	InvPhi = 1 / Phi    // 0.618...
	Minor  = 1 - InvPhi // 0.382...
)

const (
	coneSpread = 0.25

	focalZoneLeft   = 0.30
	focalZoneRight  = 0.70
	focalZoneTop    = 0.35
	focalZoneBottom = 0.65

	compressedViewAngle = 30.0

	lightRaiseMargin = 10.0
	lightRaiseLimit  = 20.0
	lightAngleMin    = 15.0
	lightAngleMax    = 75.0

	isolationPull      = 0.20
	radialRadius       = 0.25
	radialSpokes       = 8
	repetitionUnits    = 5
	repetitionStart    = 0.12
	repetitionStep     = 0.19
	stepCount          = 4
	triangleSide       = 0.30
	triangleCenterY    = 0.45
	defaultNegative    = 0.40
	isolationNegative  = 0.70
	repetitionNegative = 0.20
)

type viewerRule struct {
	distanceMultiplier float64
	viewingAngle       float64
	nominalDistanceFt  float64
	eyeHeightIn        float64
	optimalFocalHeight float64
}

var viewerRules = map[taxonomy.ViewerContext]viewerRule{
	taxonomy.StreetPedestrian: {distanceMultiplier: 1.0, viewingAngle: 25, nominalDistanceFt: 8, eyeHeightIn: 64, optimalFocalHeight: 0.55},
	taxonomy.PassingVehicle:   {distanceMultiplier: 2.5, viewingAngle: 15, nominalDistanceFt: 20, eyeHeightIn: 52, optimalFocalHeight: 0.50},
	taxonomy.CloseInspection:  {distanceMultiplier: 0.3, viewingAngle: 45, nominalDistanceFt: 3, eyeHeightIn: 64, optimalFocalHeight: 0.60},
	taxonomy.ElevatedView:     {distanceMultiplier: 1.5, viewingAngle: -20, nominalDistanceFt: 15, eyeHeightIn: 120, optimalFocalHeight: 0.35},
}

type bandRule struct {
	name       string
	width      float64
	scale      float64
	distanceFt float64
}

// Band widths per staging must sum to 1.
var depthRules = map[taxonomy.DepthStaging][]bandRule{
	taxonomy.Compressed2D: {
		{name: "single_plane", width: 1.0, scale: 1.0, distanceFt: 0.5},
	},
	taxonomy.ShallowFocus: {
		{name: "foreground", width: 0.7, scale: 1.0, distanceFt: 2.0},
		{name: "background", width: 0.3, scale: 0.70, distanceFt: 5.0},
	},
	taxonomy.TheatricalDepth: {
		{name: "foreground", width: 0.2, scale: 1.0, distanceFt: 1.0},
		{name: "midground", width: 0.3, scale: 0.75, distanceFt: 3.5},
		{name: "background", width: 0.5, scale: 0.50, distanceFt: 6.0},
	},
	taxonomy.ForcedPerspective: {
		{name: "foreground", width: 0.10, scale: 1.0, distanceFt: 1.0},
		{name: "near_midground", width: 0.15, scale: 0.60, distanceFt: 3.0},
		{name: "far_midground", width: 0.25, scale: 0.35, distanceFt: 6.0},
		{name: "background", width: 0.50, scale: 0.20, distanceFt: 10.0},
	},
}

type lightingRule struct {
	baseAngle           float64
	keyFillRatio        float64
	fillRatio           float64
	colorTemperature    int
	intensityMultiplier float64
}

var lightingRules = map[taxonomy.LightingFramework]lightingRule{
	taxonomy.AccentDramatic:    {baseAngle: 35, keyFillRatio: 4.0, fillRatio: 0.25, colorTemperature: 3200, intensityMultiplier: 1.1},
	taxonomy.SoftLuxury:        {baseAngle: 45, keyFillRatio: 2.0, fillRatio: 0.60, colorTemperature: 4500, intensityMultiplier: 0.85},
	taxonomy.TheatricalUplight: {baseAngle: -25, keyFillRatio: 5.0, fillRatio: 0.15, colorTemperature: 2900, intensityMultiplier: 1.2},
	taxonomy.CoolModern:        {baseAngle: 55, keyFillRatio: 3.0, fillRatio: 0.40, colorTemperature: 5600, intensityMultiplier: 1.0},
	taxonomy.AmbientEven:       {baseAngle: 0, keyFillRatio: 1.2, fillRatio: 0.90, colorTemperature: 4000, intensityMultiplier: 0.7},
}

var negativeSpace = map[taxonomy.CompositionType]float64{
	taxonomy.Isolation:  isolationNegative,
	taxonomy.Repetition: repetitionNegative,
}
