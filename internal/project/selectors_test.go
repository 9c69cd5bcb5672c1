package project

import (
	"reflect"
	"testing"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

func TestDistinctQueries_OrderAndDeduplication(t *testing.T) {
	p := New()
	p.AddMembers([]model.Slot{
		slotWithFront("island", ""),
		{
			Front: &model.ProjectMember{Query: cardQuery("forest")},
			Back:  &model.ProjectMember{Query: cardQuery("island")},
		},
		slotWithFront("island", ""),
		{Back: &model.ProjectMember{Query: &model.SearchQuery{Text: "", Type: model.TypeCardback}}},
	})

	got := p.DistinctQueries()
	want := []model.SearchQuery{
		{Text: "island", Type: model.TypeCard},
		{Text: "forest", Type: model.TypeCard},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctQueries() = %v, want %v", got, want)
	}
}

func TestQueriesWithoutResults(t *testing.T) {
	p := New()
	p.AddMembers([]model.Slot{
		slotWithFront("island", ""),
		slotWithFront("forest", ""),
	})

	results := make(model.SearchResults)
	results.Set(model.SearchQuery{Text: "island", Type: model.TypeCard}, []string{"id1"})

	got := p.QueriesWithoutResults(results)
	want := []model.SearchQuery{{Text: "forest", Type: model.TypeCard}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("QueriesWithoutResults() = %v, want %v", got, want)
	}

	// An answered-but-empty result set counts as answered.
	results.Set(model.SearchQuery{Text: "forest", Type: model.TypeCard}, []string{})
	if got := p.QueriesWithoutResults(results); len(got) != 0 {
		t.Errorf("QueriesWithoutResults() = %v, want none", got)
	}
}

func TestUniqueCardIdentifiers(t *testing.T) {
	p := New()
	p.AddMembers([]model.Slot{
		slotWithFront("island", ""),
		slotWithFront("forest", ""),
	})

	results := make(model.SearchResults)
	results.Set(model.SearchQuery{Text: "island", Type: model.TypeCard}, []string{"idB", "idA"})

	got := p.UniqueCardIdentifiers(results, []string{"back1", "idA"})
	want := []string{"back1", "idA", "idB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueCardIdentifiers() = %v, want %v", got, want)
	}
}

func TestFileSize(t *testing.T) {
	p := New()
	p.AddMembers([]model.Slot{
		slotWithFront("a", "id1"),
		slotWithFront("b", "id2"),
		slotWithFront("c", "id1"), // duplicate image counted once
		slotWithFront("d", "unknown"),
	})
	p.SetCardback("back1")

	metadata := map[string]model.CardRecord{
		"id1":   {Identifier: "id1", Size: 100},
		"id2":   {Identifier: "id2", Size: 30},
		"back1": {Identifier: "back1", Size: 5},
	}

	if got := p.FileSize(metadata); got != 135 {
		t.Errorf("FileSize() = %d, want 135", got)
	}
}
