// Package synthesis renders a GeometricSpec into a text prompt for a
// downstream image generator. It is plain templating; nothing here calls a
// model.
package synthesis

import (
	"errors"
	"fmt"
	"strings"

	"window-display-workers/internal/display/mapper"
	"window-display-workers/internal/display/taxonomy"
)

var (
	ErrEmptySubject = errors.New("subject description is required")
	ErrNilSpec      = errors.New("geometric spec is required")
)

// Metadata is the categorical context the mapper does not carry.
type Metadata struct {
	EyeMovement   string `json:"eyeMovement"`
	ShadowQuality string `json:"shadowQuality"`
}

// Prompt is an assembled prompt and the ordered parts it was joined from.
type Prompt struct {
	Text  string   `json:"text"`
	Parts []string `json:"parts"`
}

var depthLeads = map[taxonomy.DepthStaging]string{
	taxonomy.Compressed2D:      "flat composition maximizing window glass plane, minimal depth cues",
	taxonomy.TheatricalDepth:   "strong foreground/midground/background separation",
	taxonomy.ForcedPerspective: "exaggerated depth using scale manipulation",
	taxonomy.ShallowFocus:      "photography-style depth with clear focal plane",
}

// MetadataFor looks up the eye movement and shadow quality for spec.
func MetadataFor(p *taxonomy.Provider, spec *mapper.GeometricSpec) Metadata {
	var meta Metadata
	if comp, ok := p.Composition(taxonomy.CompositionType(spec.CompositionType)); ok {
		meta.EyeMovement = comp.EyeMovement
	}
	if light, ok := p.Lighting(taxonomy.LightingFramework(spec.LightingFramework)); ok {
		meta.ShadowQuality = light.ShadowQuality
	}
	return meta
}

// BuildPrompt assembles the prompt. Style is optional; subject is not.
func BuildPrompt(spec *mapper.GeometricSpec, meta Metadata, subject, style string) (*Prompt, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrEmptySubject
	}

	parts := []string{fmt.Sprintf("Shop window display photograph: %s.", subject)}
	if style = strings.TrimSpace(style); style != "" {
		parts = append(parts, fmt.Sprintf("Style: %s.", style))
	}
	parts = append(parts,
		compositionPart(spec),
		depthPart(spec),
		lightingPart(spec, meta),
		viewingPart(spec),
		closingPart(spec, meta),
	)

	return &Prompt{Text: strings.Join(parts, " "), Parts: parts}, nil
}

func compositionPart(spec *mapper.GeometricSpec) string {
	return fmt.Sprintf("%s composition with primary focal point at %.2f horizontal × %.2f vertical (measured from top-left).",
		capitalize(humanize(spec.CompositionType)), spec.FocalPoint.Normalized.X, spec.FocalPoint.Normalized.Y)
}

func depthPart(spec *mapper.GeometricSpec) string {
	lead, ok := depthLeads[taxonomy.DepthStaging(spec.DepthStaging)]
	if !ok {
		lead = humanize(spec.DepthStaging)
	}
	if len(spec.DepthBands) < 2 {
		return capitalize(lead) + "."
	}

	bands := make([]string, 0, len(spec.DepthBands))
	for _, b := range spec.DepthBands {
		bands = append(bands, fmt.Sprintf("%s at %.1fft and %.2f× scale", humanize(b.Name), b.DistanceFt, b.Scale))
	}
	return fmt.Sprintf("%s with %.0f%% spatial compression, %s.",
		capitalize(lead), spec.SpatialCompression*100, strings.Join(bands, ", "))
}

func lightingPart(spec *mapper.GeometricSpec, meta Metadata) string {
	l := spec.Lighting
	var b strings.Builder
	if l.Direction == mapper.DirectionBelow {
		fmt.Fprintf(&b, "Uplighting from %.0f° below horizontal", l.AngleDeg)
	} else {
		fmt.Fprintf(&b, "Key light from %.0f° above horizontal", l.AngleDeg)
	}
	fmt.Fprintf(&b, ", %.1f:1 intensity ratio to ambient fill, %dK color temperature, key intensity %.2f",
		l.KeyFillRatio, l.ColorTemperatureK, l.Intensity)
	if meta.ShadowQuality != "" {
		fmt.Fprintf(&b, ", %s shadows", humanize(meta.ShadowQuality))
	}
	b.WriteString(".")
	return b.String()
}

func viewingPart(spec *mapper.GeometricSpec) string {
	s := spec.SightLine
	return fmt.Sprintf("Composed for %s perspective at %.0f° viewing angle from %.1fft distance (%.0f° horizontal field), eye height %.0fin.",
		humanize(s.Context), s.ViewingAngleDeg, spec.ViewingCone.DistanceFt, spec.ViewingCone.ApexAngleDeg, s.EyeHeightIn)
}

func closingPart(spec *mapper.GeometricSpec, meta Metadata) string {
	if meta.EyeMovement == "" {
		return fmt.Sprintf("%.0f%% negative space ratio.", spec.NegativeSpaceRatio*100)
	}
	return fmt.Sprintf("%.0f%% negative space ratio, %s eye movement pattern.",
		spec.NegativeSpaceRatio*100, humanize(meta.EyeMovement))
}

func humanize(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
