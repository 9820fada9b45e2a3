package taxonomy

import "fmt"

// Membership answers whether a tag belongs to one of the closed sets.
type Membership interface {
	Contains(set Set, tag string) bool
}

// Entry is one tag together with its metadata record.
type Entry struct {
	Tag         string      `json:"tag"`
	Description string      `json:"description"`
	Metadata    interface{} `json:"metadata"`
}

// Provider serves the static taxonomy tables. The zero value is ready to use
// and safe for concurrent readers.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

// Sets lists the known sets in a stable order.
func (p *Provider) Sets() []Set {
	return []Set{SetComposition, SetDepth, SetLighting, SetViewer}
}

func (p *Provider) Contains(set Set, tag string) bool {
	switch set {
	case SetComposition:
		_, ok := compositions[CompositionType(tag)]
		return ok
	case SetDepth:
		_, ok := depthStagings[DepthStaging(tag)]
		return ok
	case SetLighting:
		_, ok := lightings[LightingFramework(tag)]
		return ok
	case SetViewer:
		_, ok := sightLines[ViewerContext(tag)]
		return ok
	}
	return false
}

// Tags returns the members of set in declaration order. Unknown sets yield nil.
func (p *Provider) Tags(set Set) []string {
	var out []string
	switch set {
	case SetComposition:
		for _, t := range compositionOrder {
			out = append(out, string(t))
		}
	case SetDepth:
		for _, t := range depthOrder {
			out = append(out, string(t))
		}
	case SetLighting:
		for _, t := range lightingOrder {
			out = append(out, string(t))
		}
	case SetViewer:
		for _, t := range viewerOrder {
			out = append(out, string(t))
		}
	}
	return out
}

func (p *Provider) Composition(tag CompositionType) (CompositionSpec, bool) {
	spec, ok := compositions[tag]
	return cloneComposition(spec), ok
}

func (p *Provider) DepthStaging(tag DepthStaging) (DepthStagingSpec, bool) {
	spec, ok := depthStagings[tag]
	return spec, ok
}

func (p *Provider) Lighting(tag LightingFramework) (LightingSpec, bool) {
	spec, ok := lightings[tag]
	return spec, ok
}

func (p *Provider) SightLine(tag ViewerContext) (SightLineSpec, bool) {
	spec, ok := sightLines[tag]
	return spec, ok
}

// Entries returns every member of set with its metadata.
func (p *Provider) Entries(set Set) ([]Entry, error) {
	tags := p.Tags(set)
	if tags == nil {
		return nil, fmt.Errorf("unknown taxonomy set %q", set)
	}
	entries := make([]Entry, 0, len(tags))
	for _, tag := range tags {
		e, err := p.Entry(set, tag)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Entry returns a single member of set with its metadata.
func (p *Provider) Entry(set Set, tag string) (Entry, error) {
	if !p.Contains(set, tag) {
		return Entry{}, fmt.Errorf("unknown %s %q", set, tag)
	}
	switch set {
	case SetComposition:
		spec, _ := p.Composition(CompositionType(tag))
		return Entry{Tag: tag, Description: spec.Description, Metadata: spec}, nil
	case SetDepth:
		spec, _ := p.DepthStaging(DepthStaging(tag))
		return Entry{Tag: tag, Description: spec.Description, Metadata: spec}, nil
	case SetLighting:
		spec, _ := p.Lighting(LightingFramework(tag))
		return Entry{Tag: tag, Description: spec.Description, Metadata: spec}, nil
	default:
		spec, _ := p.SightLine(ViewerContext(tag))
		return Entry{Tag: tag, Description: spec.Description, Metadata: spec}, nil
	}
}

// copies keep callers from mutating the shared tables
func cloneComposition(spec CompositionSpec) CompositionSpec {
	if spec.TypicalRatios != nil {
		ratios := make(map[string]float64, len(spec.TypicalRatios))
		for k, v := range spec.TypicalRatios {
			ratios[k] = v
		}
		spec.TypicalRatios = ratios
	}
	if spec.RetailContexts != nil {
		spec.RetailContexts = append([]string(nil), spec.RetailContexts...)
	}
	return spec
}
