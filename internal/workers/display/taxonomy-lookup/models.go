// internal/workers/display/taxonomy-lookup/models.go
package taxonomylookup

import "window-display-workers/internal/display/taxonomy"

// Input names a taxonomy set or one of the display_state, rhythmic_preset,
// visual_type and server_info catalogues.
type Input struct {
	Category string `json:"category"`
	Key      string `json:"key,omitempty"`
}

type Output struct {
	Category           string            `json:"category"`
	Entries            []taxonomy.Entry  `json:"entries"`
	Count              int               `json:"count"`
	ParameterNames     []string          `json:"parameterNames,omitempty"`
	ParameterSemantics map[string]string `json:"parameterSemantics,omitempty"`
	Patterns           []string          `json:"availablePatterns,omitempty"`
}
