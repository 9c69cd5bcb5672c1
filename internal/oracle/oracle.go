// Package oracle defines the search backend interface. The engine never
// computes search results itself: it treats the backend as an opaque
// oracle mapping queries to ordered identifier lists, and only ever
// consumes its output.
package oracle

import (
	"context"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

// Oracle is the search backend contract. Result ordering is owned by the
// backend (source priority etc.); the engine's "first result" rule always
// means index 0 of whatever the backend returned.
type Oracle interface {
	// Search resolves a batch of queries. The returned results hold an
	// entry per answered query; an empty list is a real answer ("nothing
	// matches"), distinct from an absent entry.
	Search(ctx context.Context, settings model.SearchSettings, queries []model.SearchQuery) (model.SearchResults, error)

	// Cardbacks returns the ordered list of known cardback identifiers.
	Cardbacks(ctx context.Context, settings model.SearchSettings) ([]string, error)

	// DFCPairs returns the double-faced-card pairing table, front name to
	// back name.
	DFCPairs(ctx context.Context) (map[string]string, error)

	// Metadata resolves card records for the given identifiers. Unknown
	// identifiers are simply absent from the result.
	Metadata(ctx context.Context, identifiers []string) (map[string]model.CardRecord, error)
}
