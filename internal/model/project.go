package model

// MaxProjectSize is the largest number of slots a project may hold. It
// matches the largest supported print bracket; AddMembers truncates
// silently at this bound.
const MaxProjectSize = 612

// ProjectFile is the persisted form of a project, stored as
// .mpcproject/project.json.
// Schema changes require a version bump; see internal/version/version.go.
type ProjectFile struct {
	Version         int    `json:"_v"`
	ID              string `json:"id"`
	Name            string `json:"name"`
	Cardback        string `json:"cardback,omitempty"`
	Slots           []Slot `json:"slots"`
	CreatedAtMillis int64  `json:"created_at_millis"`
	UpdatedAtMillis int64  `json:"updated_at_millis"`
}

// SourceSetting is one search source and whether it is enabled. Order in
// the settings file is the order sources are searched in.
type SourceSetting struct {
	Key     string `toml:"key" json:"key"`
	Enabled bool   `toml:"enabled" json:"enabled"`
}

// SearchSettings holds the per-project search configuration.
// Stored at .mpcproject/settings.toml
// Schema changes require a version bump; see internal/version/version.go.
type SearchSettings struct {
	Schema      string          `toml:"schema" json:"schema"`
	BackendURL  string          `toml:"backend_url" json:"backend_url"`
	FuzzySearch bool            `toml:"fuzzy_search" json:"fuzzy_search"`
	Sources     []SourceSetting `toml:"sources" json:"sources"`
	MinDPI      int             `toml:"min_dpi" json:"min_dpi"`
	MaxDPI      int             `toml:"max_dpi" json:"max_dpi"`
	MaxSizeMB   int             `toml:"max_size_mb" json:"max_size_mb"`
	Languages   []string        `toml:"languages,omitempty" json:"languages,omitempty"`
	Grammar     GrammarSettings `toml:"grammar" json:"grammar"`
}

// GrammarSettings configures the decklist grammar's separator tokens.
type GrammarSettings struct {
	// FaceSeparator splits a line into front and back queries.
	FaceSeparator string `toml:"face_separator" json:"face_separator"`
	// PinToken pins an exact image identifier to a query, used when
	// recomposing CSV rows into grammar lines.
	PinToken string `toml:"pin_token" json:"pin_token"`
}

// DefaultSearchSettings returns settings with the stock separator tokens
// and sensible filter bounds.
func DefaultSearchSettings() SearchSettings {
	return SearchSettings{
		MinDPI:    0,
		MaxDPI:    1500,
		MaxSizeMB: 30,
		Grammar: GrammarSettings{
			FaceSeparator: "|",
			PinToken:      "@",
		},
	}
}

// EnabledSources returns the keys of all enabled sources, in order.
func (s SearchSettings) EnabledSources() []string {
	var keys []string
	for _, src := range s.Sources {
		if src.Enabled {
			keys = append(keys, src.Key)
		}
	}
	return keys
}
