package mapper

// Point is a position on the window plane in feet. Origin is the top-left
// corner of the window; x grows rightward and y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FocalPoint carries the primary focal point in feet and as fractions of the
// window width and height.
type FocalPoint struct {
	Absolute   Point `json:"absolute"`
	Normalized Point `json:"normalized"`
}

// ViewingCone is the horizontal cone subtended by the window from the
// modelled viewer position.
type ViewingCone struct {
	DistanceFt   float64 `json:"distanceFt"`
	ApexAngleDeg float64 `json:"apexAngleDeg"`
	NearFt       float64 `json:"nearFt"`
	FarFt        float64 `json:"farFt"`
}

// Zone is a rectangle on the window plane in feet.
type Zone struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// SightLine describes the viewer context as it applies to this window.
type SightLine struct {
	Context            string  `json:"context"`
	ViewingAngleDeg    float64 `json:"viewingAngleDeg"`
	NominalDistanceFt  float64 `json:"nominalDistanceFt"`
	EyeHeightIn        float64 `json:"eyeHeightIn"`
	OptimalFocalHeight float64 `json:"optimalFocalHeight"`
	EffectiveHeightFt  float64 `json:"effectiveHeightFt"`
	FocalZone          Zone    `json:"focalZone"`
	Impact             string  `json:"impact"`
}

// DepthBand is a contiguous slice of the normalized depth axis.
type DepthBand struct {
	Name       string  `json:"name"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Scale      float64 `json:"scale"`
	DistanceFt float64 `json:"distanceFt"`
}

// Lighting is the resolved key light.
type Lighting struct {
	Framework         string  `json:"framework"`
	BaseAngleDeg      float64 `json:"baseAngleDeg"`
	AngleDeg          float64 `json:"angleDeg"`
	Direction         string  `json:"direction"`
	KeyFillRatio      float64 `json:"keyFillRatio"`
	FillRatio         float64 `json:"fillRatio"`
	ColorTemperatureK int     `json:"colorTemperatureK"`
	Intensity         float64 `json:"intensity"`
}

const (
	DirectionAbove = "above_horizontal"
	DirectionBelow = "below_horizontal"

	ImpactNatural    = "natural"
	ImpactCompressed = "compressed"
)

// GeometricSpec is the full result of a mapping, every intermediate value
// included. It is built fresh on each call and never mutated afterwards.
type GeometricSpec struct {
	WindowWidthFt     float64 `json:"windowWidthFt"`
	WindowHeightFt    float64 `json:"windowHeightFt"`
	AspectRatio       float64 `json:"aspectRatio"`
	CompositionType   string  `json:"compositionType"`
	DepthStaging      string  `json:"depthStaging"`
	LightingFramework string  `json:"lightingFramework"`
	ViewerContext     string  `json:"viewerContext"`

	Centroid    Point       `json:"centroid"`
	ViewingCone ViewingCone `json:"viewingCone"`
	SightLine   SightLine   `json:"sightLine"`

	GoldenAnchors   []Point `json:"goldenAnchors"`
	ReferenceAnchor Point   `json:"referenceAnchor"`

	FocalPoint         FocalPoint `json:"focalPoint"`
	Candidates         []Point    `json:"candidates"`
	SecondaryPoints    []Point    `json:"secondaryPoints"`
	NegativeSpaceRatio float64    `json:"negativeSpaceRatio"`

	DepthBands         []DepthBand `json:"depthBands"`
	SpatialCompression float64     `json:"spatialCompression"`

	Lighting Lighting `json:"lighting"`
}
