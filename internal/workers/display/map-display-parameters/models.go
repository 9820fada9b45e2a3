// internal/workers/display/map-display-parameters/models.go
package mapdisplayparameters

import (
	"window-display-workers/internal/display/mapper"
	"window-display-workers/internal/display/taxonomy"
)

type Input struct {
	WindowWidthFt     float64 `json:"windowWidthFt"`
	WindowHeightFt    float64 `json:"windowHeightFt"`
	CompositionType   string  `json:"compositionType"`
	DepthStaging      string  `json:"depthStaging"`
	LightingFramework string  `json:"lightingFramework"`
	ViewerContext     string  `json:"viewerContext"`
}

// Metadata is the taxonomy description of each chosen tag.
type Metadata struct {
	Composition  taxonomy.CompositionSpec  `json:"composition"`
	DepthStaging taxonomy.DepthStagingSpec `json:"depthStaging"`
	Lighting     taxonomy.LightingSpec     `json:"lighting"`
	SightLine    taxonomy.SightLineSpec    `json:"sightLine"`
}

type Output struct {
	GeometricSpec *mapper.GeometricSpec `json:"geometricSpec"`
	Metadata      Metadata              `json:"metadata"`
	Cached        bool                  `json:"cached"`
}
