package mapper

import (
	"errors"
	"fmt"
)

const (
	FieldWindowWidth       = "window_width_ft"
	FieldWindowHeight      = "window_height_ft"
	FieldCompositionType   = "composition_type"
	FieldDepthStaging      = "depth_staging"
	FieldLightingFramework = "lighting_framework"
	FieldViewerContext     = "viewer_context"
)

// InvalidParameterError reports the first input that failed validation.
type InvalidParameterError struct {
	Field string
	Value interface{}
}

func (e *InvalidParameterError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("invalid parameter %s: %q", e.Field, s)
	}
	return fmt.Sprintf("invalid parameter %s: %v", e.Field, e.Value)
}

// IsInvalidParameter reports whether err wraps an *InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}
