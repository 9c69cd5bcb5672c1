package model

// Face identifies which side of a slot a member occupies.
type Face string

const (
	FaceFront Face = "front"
	FaceBack  Face = "back"
)

// Faces lists both faces in processing order. Backs come first so callers
// that iterate in order see back state before front state (the XML importer
// depends on this).
var Faces = []Face{FaceBack, FaceFront}

// CardType classifies what kind of image a query searches for.
type CardType string

const (
	TypeCard     CardType = "card"
	TypeCardback CardType = "cardback"
	TypeToken    CardType = "token"
)

// Prefix returns the canonical query prefix for the card type.
// Plain cards have no prefix.
func (t CardType) Prefix() string {
	switch t {
	case TypeCardback:
		return "b:"
	case TypeToken:
		return "t:"
	default:
		return ""
	}
}

// CardTypes lists all card types in prefix-matching order. Prefixed types
// come first so prefix stripping never mistakes a prefixed query for a
// plain card query.
var CardTypes = []CardType{TypeToken, TypeCardback, TypeCard}

// SearchQuery is a normalized search request for one face of one slot.
// An empty Text on a cardback-type query means "use the default cardback".
type SearchQuery struct {
	Text string   `json:"text"`
	Type CardType `json:"card_type"`
}

// Equal reports whether two queries match on both text and card type.
// Either side may be nil.
func (q *SearchQuery) Equal(other *SearchQuery) bool {
	if q == nil || other == nil {
		return q == other
	}
	return q.Text == other.Text && q.Type == other.Type
}

// ProjectMember is one face of one slot: the query driving it, the image
// currently chosen for it, and a UI multi-select flag. Selected is
// independent of SelectedImage.
type ProjectMember struct {
	Query         *SearchQuery `json:"query,omitempty"`
	SelectedImage string       `json:"selected_image,omitempty"`
	Selected      bool         `json:"selected,omitempty"`
}

// Slot pairs the front and back members of one project slot.
// Either face may be nil, but a meaningful slot has at least one.
type Slot struct {
	Front *ProjectMember `json:"front,omitempty"`
	Back  *ProjectMember `json:"back,omitempty"`
}

// Member returns the member for the given face, or nil.
func (s *Slot) Member(face Face) *ProjectMember {
	if face == FaceBack {
		return s.Back
	}
	return s.Front
}

// SetMember replaces the member for the given face.
func (s *Slot) SetMember(face Face, m *ProjectMember) {
	if face == FaceBack {
		s.Back = m
	} else {
		s.Front = m
	}
}

// Clone returns a deep copy of the member.
func (m *ProjectMember) Clone() *ProjectMember {
	if m == nil {
		return nil
	}
	clone := *m
	if m.Query != nil {
		q := *m.Query
		clone.Query = &q
	}
	return &clone
}

// Clone returns a deep copy of the slot. Expanding one parsed line into N
// copies must not share member pointers between slots.
func (s Slot) Clone() Slot {
	return Slot{Front: s.Front.Clone(), Back: s.Back.Clone()}
}

// SearchResults maps normalized query text to per-card-type ordered
// identifier lists. Ordering is owned by the search backend and must be
// preserved: option numbering and "first result" selection depend on it.
type SearchResults map[string]map[CardType][]string

// For returns the ordered identifier list for a query, and whether the
// backend has answered it at all. A present-but-empty list means "the
// backend answered: nothing matches", which is distinct from not answered.
func (r SearchResults) For(q SearchQuery) ([]string, bool) {
	byType, ok := r[q.Text]
	if !ok {
		return nil, false
	}
	ids, ok := byType[q.Type]
	return ids, ok
}

// Set records the identifier list for a query.
func (r SearchResults) Set(q SearchQuery, ids []string) {
	byType, ok := r[q.Text]
	if !ok {
		byType = make(map[CardType][]string)
		r[q.Text] = byType
	}
	byType[q.Type] = ids
}

// CardRecord is externally-resolved metadata for one card image.
type CardRecord struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Extension  string `json:"extension"`
	Size       int64  `json:"size"`
	SourceID   string `json:"source_id"`
	// SearchName is the searchable form of Name, used as a fallback query
	// string when exporting a member that was hand-picked without a query.
	SearchName string `json:"search_name"`
}

// InvalidIdentifierRecord is a diagnostic: a previously-selected image that
// is no longer a valid option for its slot's query.
type InvalidIdentifierRecord struct {
	Slot       int          `json:"slot"`
	Face       Face         `json:"face"`
	Query      *SearchQuery `json:"query,omitempty"`
	Identifier string       `json:"identifier"`
}
