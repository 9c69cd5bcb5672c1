// Package reconcile keeps project selections consistent with search
// results. It is driven by typed domain events: each event names exactly
// what changed, and its handler repairs the project so that every selected
// image is either unset or a member of the current result set for its
// slot's query.
package reconcile

import (
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

// Target names one slot-face.
type Target struct {
	Slot int
	Face model.Face
}

// Event is a tagged domain event consumed by the reconciler. Payload
// shapes are fixed per event; there is no dynamic dispatch on field
// presence.
type Event interface {
	isEvent()
}

// QueryChanged reports that the queries at the given slot-faces were
// edited (single edit or bulk edit). The targets' members already carry
// their new queries when the event is applied.
type QueryChanged struct {
	Targets []Target
}

// MembersAdded reports that Count new slots were appended starting at
// FirstSlot.
type MembersAdded struct {
	FirstSlot int
	Count     int
}

// ResultsUpdated reports that the backend returned new result lists for
// some queries, superseding whatever was cached for them.
type ResultsUpdated struct {
	Results model.SearchResults
}

// CardbacksUpdated reports that the backend's cardback list changed.
type CardbacksUpdated struct {
	Cardbacks []string
}

// SettingsChanged reports that search settings changed: every cached
// result is stale and must be re-fetched.
type SettingsChanged struct {
	Settings model.SearchSettings
}

func (QueryChanged) isEvent()     {}
func (MembersAdded) isEvent()     {}
func (ResultsUpdated) isEvent()   {}
func (CardbacksUpdated) isEvent() {}
func (SettingsChanged) isEvent()  {}
