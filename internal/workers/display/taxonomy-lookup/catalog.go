// internal/workers/display/taxonomy-lookup/catalog.go
package taxonomylookup

import (
	"fmt"
	"sort"

	"window-display-workers/internal/display/rhythm"
	"window-display-workers/internal/display/taxonomy"
	"window-display-workers/internal/display/vocabulary"
)

// Categories served alongside the taxonomy sets.
const (
	CategoryDisplayState   = "display_state"
	CategoryRhythmicPreset = "rhythmic_preset"
	CategoryVisualType     = "visual_type"
	CategoryServerInfo     = "server_info"
)

// PresetSummary is the listing form of a rhythmic preset.
type PresetSummary struct {
	Period     int            `json:"period"`
	TotalSteps int            `json:"totalSteps"`
	Pattern    rhythm.Pattern `json:"pattern"`
	StateA     string         `json:"stateA"`
	StateB     string         `json:"stateB"`
}

// ServerInfo describes what this worker fleet knows about.
type ServerInfo struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	TaxonomySets    []string `json:"taxonomySets"`
	ParameterNames  []string `json:"parameterNames"`
	CanonicalStates []string `json:"canonicalStates"`
	Presets         []string `json:"rhythmicPresets"`
	PresetPeriods   []int    `json:"presetPeriods"`
	Patterns        []string `json:"patterns"`
	VisualTypes     []string `json:"visualTypes"`
	PromptModes     []string `json:"promptModes"`
}

func stateEntry(name string) (taxonomy.Entry, error) {
	if !rhythm.IsState(name) {
		return taxonomy.Entry{}, fmt.Errorf("unknown display state %q", name)
	}
	state, err := rhythm.LookupState(name)
	if err != nil {
		return taxonomy.Entry{}, err
	}
	nearest := vocabulary.Extract(state, 1.0).NearestType
	return taxonomy.Entry{
		Tag:         name,
		Description: "nearest visual type " + nearest,
		Metadata:    state,
	}, nil
}

func stateEntries() ([]taxonomy.Entry, error) {
	names := rhythm.StateNames()
	entries := make([]taxonomy.Entry, 0, len(names))
	for _, name := range names {
		e, err := stateEntry(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func summarize(p rhythm.Preset) PresetSummary {
	return PresetSummary{
		Period:     p.StepsPerCycle,
		TotalSteps: p.Cycles * p.StepsPerCycle,
		Pattern:    p.Pattern,
		StateA:     p.StateA,
		StateB:     p.StateB,
	}
}

func presetEntries() []taxonomy.Entry {
	presets := rhythm.Presets()
	entries := make([]taxonomy.Entry, 0, len(presets))
	for _, p := range presets {
		entries = append(entries, taxonomy.Entry{Tag: p.Name, Description: p.Description, Metadata: summarize(p)})
	}
	return entries
}

// presetEntry renders the full trajectory of a single preset.
func presetEntry(name string) (taxonomy.Entry, error) {
	seq, err := rhythm.ApplyPreset(name)
	if err != nil {
		return taxonomy.Entry{}, err
	}
	return taxonomy.Entry{Tag: seq.Name, Description: seq.Description, Metadata: seq}, nil
}

func visualTypeEntries() []taxonomy.Entry {
	types := vocabulary.VisualTypes()
	entries := make([]taxonomy.Entry, 0, len(types))
	for _, vt := range types {
		entries = append(entries, taxonomy.Entry{Tag: vt.Name, Description: vt.Keywords[0], Metadata: vt})
	}
	return entries
}

func visualTypeEntry(name string) (taxonomy.Entry, error) {
	for _, e := range visualTypeEntries() {
		if e.Tag == name {
			return e, nil
		}
	}
	return taxonomy.Entry{}, fmt.Errorf("unknown visual type %q", name)
}

func (h *Handler) serverInfo() ServerInfo {
	info := ServerInfo{
		Name:            h.config.ServiceName,
		Version:         h.config.ServiceVersion,
		ParameterNames:  append([]string(nil), rhythm.Parameters...),
		CanonicalStates: rhythm.StateNames(),
		PromptModes: []string{
			string(vocabulary.ModeComposite),
			string(vocabulary.ModeSequence),
			string(vocabulary.ModeVocabulary),
		},
	}
	for _, s := range h.taxonomy.Sets() {
		info.TaxonomySets = append(info.TaxonomySets, string(s))
	}

	periods := map[int]bool{}
	for _, p := range rhythm.Presets() {
		info.Presets = append(info.Presets, p.Name)
		if !periods[p.StepsPerCycle] {
			periods[p.StepsPerCycle] = true
			info.PresetPeriods = append(info.PresetPeriods, p.StepsPerCycle)
		}
	}
	sort.Ints(info.PresetPeriods)

	for _, p := range rhythm.Patterns {
		info.Patterns = append(info.Patterns, string(p))
	}
	for _, vt := range vocabulary.VisualTypes() {
		info.VisualTypes = append(info.VisualTypes, vt.Name)
	}
	return info
}
