package models

// Item is one wiki page converted to structured form. Field order matters:
// the JSON encoder emits struct fields in declaration order, and export files
// must be byte-stable across runs.
type Item struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Summary         string            `json:"summary,omitempty"`
	GameDescription string            `json:"game_description,omitempty"`
	SourceInfo      string            `json:"source_info,omitempty"`
	UseInfo         string            `json:"use_info,omitempty"`
	ReleaseHistory  string            `json:"release_history,omitempty"`
	AdditionalInfo  string            `json:"additional_info,omitempty"`
	FishingInfo     string            `json:"fishing_info,omitempty"`
	ProgressionInfo string            `json:"progression_info,omitempty"`
	Type            string            `json:"type"`
	Group           Group             `json:"-"`
	Value           *float64          `json:"value,omitempty"`
	Infobox         map[string]string `json:"infobox"`
	Categories      []string          `json:"categories"`
}
