package project

import (
	"sort"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

// Selectors are pure, side-effect-free views over project state. They are
// safe to recompute at any time; nothing here mutates the project.

// DistinctQueries returns the distinct non-empty queries present in the
// project, in first-appearance order (slot order, front before back).
func (p *Project) DistinctQueries() []model.SearchQuery {
	var queries []model.SearchQuery
	seen := make(map[model.SearchQuery]bool)
	for i := range p.slots {
		for _, face := range []model.Face{model.FaceFront, model.FaceBack} {
			member := p.slots[i].Member(face)
			if member == nil || member.Query == nil || member.Query.Text == "" {
				continue
			}
			q := *member.Query
			if !seen[q] {
				seen[q] = true
				queries = append(queries, q)
			}
		}
	}
	return queries
}

// QueriesWithoutResults returns the distinct project queries the search
// backend has not answered yet.
func (p *Project) QueriesWithoutResults(results model.SearchResults) []model.SearchQuery {
	var missing []model.SearchQuery
	for _, q := range p.DistinctQueries() {
		if _, ok := results.For(q); !ok {
			missing = append(missing, q)
		}
	}
	return missing
}

// UniqueCardIdentifiers returns every identifier whose metadata the caller
// may need: all known cardbacks plus all result identifiers for queries the
// backend has answered. Sorted for deterministic output.
func (p *Project) UniqueCardIdentifiers(results model.SearchResults, cardbacks []string) []string {
	set := make(map[string]bool)
	for _, id := range cardbacks {
		set[id] = true
	}
	for _, q := range p.DistinctQueries() {
		ids, ok := results.For(q)
		if !ok {
			continue
		}
		for _, id := range ids {
			set[id] = true
		}
	}

	identifiers := make([]string, 0, len(set))
	for id := range set {
		identifiers = append(identifiers, id)
	}
	sort.Strings(identifiers)
	return identifiers
}

// SelectedImages returns the distinct images currently selected anywhere
// in the project, including the project cardback.
func (p *Project) SelectedImages() []string {
	set := make(map[string]bool)
	if p.cardback != "" {
		set[p.cardback] = true
	}
	for i := range p.slots {
		for _, face := range []model.Face{model.FaceFront, model.FaceBack} {
			member := p.slots[i].Member(face)
			if member != nil && member.SelectedImage != "" {
				set[member.SelectedImage] = true
			}
		}
	}

	images := make([]string, 0, len(set))
	for id := range set {
		images = append(images, id)
	}
	sort.Strings(images)
	return images
}

// FileSize sums the sizes of all currently-selected unique images.
// Identifiers with no metadata contribute zero.
func (p *Project) FileSize(metadata map[string]model.CardRecord) int64 {
	var total int64
	for _, id := range p.SelectedImages() {
		total += metadata[id].Size
	}
	return total
}
