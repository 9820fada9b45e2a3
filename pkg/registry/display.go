// pkg/registry/display.go
package registry

import (
	"window-display-workers/internal/display/rhythm"
	"window-display-workers/internal/display/taxonomy"
	"window-display-workers/internal/display/vocabulary"
)

const (
	Version           = "1.0.0"
	CategoryDisplay   = "display"
	CategoryDynamics  = "dynamics"
	StatusImplemented = "completed"
)

// Default builds the registry of every window-display activity. Enum lists
// are read from the taxonomy and the rhythm tables so the schemas cannot
// drift from the code that consumes them.
func Default() *ActivityRegistry {
	tax := taxonomy.NewProvider()

	mapperInput := map[string]interface{}{
		"windowWidthFt":     number("Window width in feet, must be positive"),
		"windowHeightFt":    number("Window height in feet, must be positive"),
		"compositionType":   enum("Composition archetype", tax.Tags(taxonomy.SetComposition)),
		"depthStaging":      enum("Depth staging strategy", tax.Tags(taxonomy.SetDepth)),
		"lightingFramework": enum("Lighting framework", tax.Tags(taxonomy.SetLighting)),
		"viewerContext":     enum("Primary viewer context", tax.Tags(taxonomy.SetViewer)),
	}
	mapperRequired := []string{"windowWidthFt", "windowHeightFt", "compositionType", "depthStaging", "lightingFramework", "viewerContext"}

	promptInput := copyProps(mapperInput)
	promptInput["subjectDescription"] = str("What the window displays")
	promptInput["styleModifier"] = str("Optional photographic style")

	states := rhythm.StateNames()
	presetNames := make([]string, 0, len(rhythm.Presets()))
	for _, p := range rhythm.Presets() {
		presetNames = append(presetNames, p.Name)
	}
	patterns := make([]string, 0, len(rhythm.Patterns))
	for _, p := range rhythm.Patterns {
		patterns = append(patterns, string(p))
	}

	customState := map[string]interface{}{}
	for _, param := range rhythm.Parameters {
		customState[param] = unit(rhythm.ParameterSemantics[param])
	}

	visualTypes := make([]string, 0, 5)
	for _, vt := range vocabulary.VisualTypes() {
		visualTypes = append(visualTypes, vt.Name)
	}

	sets := make([]string, 0, 8)
	for _, s := range tax.Sets() {
		sets = append(sets, string(s))
	}
	sets = append(sets, "display_state", "rhythmic_preset", "visual_type", "server_info")

	return &ActivityRegistry{
		Version:     Version,
		LastUpdated: "2026-10-15T00:00:00Z",
		Activities: []Activity{
			{
				ID:                   "taxonomy-lookup",
				DisplayName:          "Taxonomy Lookup",
				Description:          "Lists a display taxonomy, state, preset or visual type category, or returns a single entry",
				Category:             CategoryDisplay,
				Version:              Version,
				TaskType:             "taxonomy-lookup",
				Status:               StatusImplemented,
				InputSchema: object(map[string]interface{}{
					"category": enum("Taxonomy category", sets),
					"key":      str("Optional tag within the category"),
				}, "category"),
				OutputSchema: object(map[string]interface{}{
					"category": str("Requested category"),
					"entries":  array("Category entries"),
					"count":    integer("Number of entries returned"),
				}),
				ErrorCodes: []string{"PARSE_ERROR", "SCHEMA_VALIDATION_FAILED", "INVALID_PARAMETER"},
				Timeout:    "5s",
				Retries:    1,
				Tags:       []string{"taxonomy", "lookup"},
			},
			{
				ID:                   "map-display-parameters",
				DisplayName:          "Map Display Parameters",
				Description:          "Maps window dimensions and design tags onto a geometric specification",
				Category:             CategoryDisplay,
				Version:              Version,
				TaskType:             "map-display-parameters",
				Status:               StatusImplemented,
				InputSchema:          object(mapperInput, mapperRequired...),
				OutputSchema: object(map[string]interface{}{
					"geometricSpec": objectOf("Full geometric specification"),
					"metadata":      objectOf("Taxonomy metadata for the chosen tags"),
					"cached":        boolean("Whether the result was served from cache"),
				}),
				ErrorCodes: []string{"PARSE_ERROR", "SCHEMA_VALIDATION_FAILED", "INVALID_PARAMETER"},
				Timeout:    "10s",
				Retries:    3,
				Tags:       []string{"geometry", "mapper", "cached"},
			},
			{
				ID:                   "generate-display-prompt",
				DisplayName:          "Generate Display Prompt",
				Description:          "Turns mapper inputs and a subject into an image-generation prompt",
				Category:             CategoryDisplay,
				Version:              Version,
				TaskType:             "generate-display-prompt",
				Status:               StatusImplemented,
				InputSchema:          object(promptInput, append(mapperRequired, "subjectDescription")...),
				OutputSchema: object(map[string]interface{}{
					"promptId":       str("Unique prompt id"),
					"prompt":         str("Prompt text"),
					"parameters":     objectOf("Geometric specification used"),
					"generatedAt":    str("RFC3339 timestamp"),
					"promptSections": array("Prompt sections in order"),
				}),
				ErrorCodes: []string{"PARSE_ERROR", "SCHEMA_VALIDATION_FAILED", "INVALID_PARAMETER", "PROMPT_SYNTHESIS_FAILED"},
				Timeout:    "10s",
				Retries:    3,
				Tags:       []string{"prompt", "synthesis"},
			},
			{
				ID:                   "generate-rhythmic-sequence",
				DisplayName:          "Generate Rhythmic Sequence",
				Description:          "Oscillates between two display states over a number of cycles",
				Category:             CategoryDynamics,
				Version:              Version,
				TaskType:             "generate-rhythmic-sequence",
				Status:               StatusImplemented,
				InputSchema: object(map[string]interface{}{
					"presetName":    enum("Preset that fixes every other field", presetNames),
					"stateA":        enum("Starting display state", states),
					"stateB":        enum("Opposite display state", states),
					"pattern":       enum("Oscillation pattern", patterns),
					"numCycles":     bounded(integer("Number of full oscillations"), 1, rhythm.MaxCycles),
					"stepsPerCycle": bounded(integer("Samples per oscillation"), 1, rhythm.MaxStepsPerCycle),
					"phaseOffset":   minimum(number("Fraction of a cycle to rotate by"), 0),
				}),
				OutputSchema: object(map[string]interface{}{
					"sequence":   objectOf("Generated sequence"),
					"totalSteps": integer("Number of steps"),
				}),
				ErrorCodes: []string{"PARSE_ERROR", "SCHEMA_VALIDATION_FAILED", "INVALID_PARAMETER", "UNKNOWN_DISPLAY_STATE", "UNKNOWN_PRESET"},
				Timeout:    "10s",
				Retries:    1,
				Tags:       []string{"rhythm", "sequence"},
			},
			{
				ID:                   "compute-state-distance",
				DisplayName:          "Compute State Distance",
				Description:          "Euclidean distance and per-parameter differences between two display states",
				Category:             CategoryDynamics,
				Version:              Version,
				TaskType:             "compute-state-distance",
				Status:               StatusImplemented,
				InputSchema: object(map[string]interface{}{
					"stateA": enum("First display state", states),
					"stateB": enum("Second display state", states),
				}, "stateA", "stateB"),
				OutputSchema: object(map[string]interface{}{
					"euclideanDistance": number("Distance in parameter space"),
					"differences":       objectOf("stateB minus stateA per parameter"),
				}),
				ErrorCodes: []string{"PARSE_ERROR", "SCHEMA_VALIDATION_FAILED", "UNKNOWN_DISPLAY_STATE"},
				Timeout:    "5s",
				Retries:    1,
				Tags:       []string{"rhythm", "distance"},
			},
			{
				ID:                   "generate-attractor-prompt",
				DisplayName:          "Generate Attractor Prompt",
				Description:          "Extracts visual vocabulary and builds prompts from a display state or keyframes along a preset",
				Category:             CategoryDynamics,
				Version:              Version,
				TaskType:             "generate-attractor-prompt",
				Status:               StatusImplemented,
				InputSchema: object(map[string]interface{}{
					"mode":          enum("composite, sequence or vocabulary", []string{string(vocabulary.ModeComposite), string(vocabulary.ModeSequence), string(vocabulary.ModeVocabulary)}),
					"presetName":    enum("Display state or preset", append(states, presetNames...)),
					"customState":   object(customState),
					"styleModifier": str("Optional style prefix"),
					"keyframeCount": bounded(integer("Keyframes in sequence mode"), 1, vocabulary.MaxKeyframes),
					"strength":      unit("Vocabulary strength"),
				}),
				OutputSchema: object(map[string]interface{}{
					"promptId":    str("Unique prompt id"),
					"attractor":   objectOf("Composite prompt or keyframes"),
					"visualTypes": arrayOfEnum("Known visual types", visualTypes),
				}),
				ErrorCodes: []string{"PARSE_ERROR", "SCHEMA_VALIDATION_FAILED", "INVALID_PARAMETER", "UNKNOWN_PRESET"},
				Timeout:    "10s",
				Retries:    1,
				Tags:       []string{"vocabulary", "prompt"},
			},
		},
	}
}

func object(props map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func objectOf(description string) map[string]interface{} {
	return map[string]interface{}{"type": "object", "description": description}
}

func str(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func number(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func integer(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func boolean(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

func array(description string) map[string]interface{} {
	return map[string]interface{}{"type": "array", "description": description}
}

func arrayOfEnum(description string, values []string) map[string]interface{} {
	s := array(description)
	s["items"] = enum("", values)
	return s
}

func enum(description string, values []string) map[string]interface{} {
	s := str(description)
	s["enum"] = values
	return s
}

func unit(description string) map[string]interface{} {
	s := number(description)
	s["minimum"] = 0
	s["maximum"] = 1
	return s
}

func minimum(s map[string]interface{}, lo float64) map[string]interface{} {
	s["minimum"] = lo
	return s
}

func bounded(s map[string]interface{}, lo, hi float64) map[string]interface{} {
	s["minimum"] = lo
	s["maximum"] = hi
	return s
}

func copyProps(props map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(props)+2)
	for k, v := range props {
		out[k] = v
	}
	return out
}
