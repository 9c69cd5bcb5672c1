package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/config"
	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

// TestRecord returns card metadata with sensible test defaults.
func TestRecord(id, name string) model.CardRecord {
	return model.CardRecord{
		Identifier: id,
		Name:       name,
		Extension:  "png",
		Size:       1000,
		SourceID:   "test-source",
		SearchName: name,
	}
}

// CardSlot returns a slot with a plain card front query.
func CardSlot(frontText string) model.Slot {
	return model.Slot{
		Front: &model.ProjectMember{
			Query: &model.SearchQuery{Text: frontText, Type: model.TypeCard},
		},
	}
}

// FakeOracle is an in-memory search backend for tests. Results, cardbacks
// and metadata are plain maps mutated directly by tests; Fail makes every
// call return a backend error.
type FakeOracle struct {
	mu        sync.Mutex
	Results   model.SearchResults
	Backs     []string
	Pairs     map[string]string
	Records   map[string]model.CardRecord
	Fail      bool
	Searched  [][]model.SearchQuery // each call's query batch, in call order
	CallCount int
}

// NewFakeOracle creates an empty fake backend.
func NewFakeOracle() *FakeOracle {
	return &FakeOracle{
		Results: make(model.SearchResults),
		Pairs:   make(map[string]string),
		Records: make(map[string]model.CardRecord),
	}
}

// SetResult records the identifier list the fake returns for a query.
func (f *FakeOracle) SetResult(text string, cardType model.CardType, ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Results.Set(model.SearchQuery{Text: text, Type: cardType}, ids)
}

// Search implements oracle.Oracle.
func (f *FakeOracle) Search(ctx context.Context, settings model.SearchSettings, queries []model.SearchQuery) (model.SearchResults, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, &apperr.OracleError{Operation: "search", Err: context.DeadlineExceeded}
	}
	f.CallCount++
	f.Searched = append(f.Searched, queries)

	results := make(model.SearchResults)
	for _, q := range queries {
		if ids, ok := f.Results.For(q); ok {
			results.Set(q, ids)
		} else {
			// The real backend answers every query it is asked, even
			// when nothing matches.
			results.Set(q, []string{})
		}
	}
	return results, nil
}

// Cardbacks implements oracle.Oracle.
func (f *FakeOracle) Cardbacks(ctx context.Context, settings model.SearchSettings) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, &apperr.OracleError{Operation: "cardbacks", Err: context.DeadlineExceeded}
	}
	return append([]string(nil), f.Backs...), nil
}

// DFCPairs implements oracle.Oracle.
func (f *FakeOracle) DFCPairs(ctx context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, &apperr.OracleError{Operation: "dfc_pairs", Err: context.DeadlineExceeded}
	}
	pairs := make(map[string]string, len(f.Pairs))
	for k, v := range f.Pairs {
		pairs[k] = v
	}
	return pairs, nil
}

// Metadata implements oracle.Oracle.
func (f *FakeOracle) Metadata(ctx context.Context, identifiers []string) (map[string]model.CardRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, &apperr.OracleError{Operation: "metadata", Err: context.DeadlineExceeded}
	}
	records := make(map[string]model.CardRecord)
	for _, id := range identifiers {
		if record, ok := f.Records[id]; ok {
			records[id] = record
		}
	}
	return records, nil
}

// TempProjectDir creates a temporary directory with a .mpcproject structure
// for testing. Returns the temp dir path and a cleanup function.
func TempProjectDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "mpcproject-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dataDir := filepath.Join(dir, config.DefaultDataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		os.RemoveAll(dir)
		t.Fatalf("failed to create data dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// NewTestPaths creates a Paths for testing with the given temp directory.
func NewTestPaths(baseDir string) *config.Paths {
	return config.NewPaths(baseDir)
}
