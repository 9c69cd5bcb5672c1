package reconcile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/oracle"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/project"
)

// Reconciler owns the cached search results and cardback list for one
// project, and repairs member selections whenever queries, results or
// settings change. It has no persistent state machine of its own: every
// rule is slot-local and idempotent, so the outcome never depends on the
// order slot-faces are processed in.
//
// All methods must be called from one goroutine; project mutations are
// serialized by the caller.
type Reconciler struct {
	project  *project.Project
	oracle   oracle.Oracle
	settings model.SearchSettings

	results          model.SearchResults
	cardbacks        []string
	cardbacksFetched bool
	invalid          []model.InvalidIdentifierRecord

	// generation tags fetches so a response that raced with a settings
	// change is discarded instead of re-introducing stale results.
	generation uint64
}

// New creates a reconciler over the given project and search backend.
func New(p *project.Project, o oracle.Oracle, settings model.SearchSettings) *Reconciler {
	return &Reconciler{
		project:  p,
		oracle:   o,
		settings: settings,
		results:  make(model.SearchResults),
	}
}

// Results exposes the cached search results.
func (r *Reconciler) Results() model.SearchResults {
	return r.results
}

// Cardbacks exposes the cached cardback list.
func (r *Reconciler) Cardbacks() []string {
	return r.cardbacks
}

// Settings returns the settings the cached results were fetched under.
func (r *Reconciler) Settings() model.SearchSettings {
	return r.settings
}

// InvalidIdentifiers returns the accumulated diagnostics for selections
// invalidated by result changes. Records are cleared per slot-face when
// that slot-face's query changes.
func (r *Reconciler) InvalidIdentifiers() []model.InvalidIdentifierRecord {
	return r.invalid
}

// Apply dispatches one domain event. Oracle failures leave both the
// project and the caches untouched; the affected queries stay pending and
// the event can be retried.
func (r *Reconciler) Apply(ctx context.Context, event Event) error {
	switch ev := event.(type) {
	case QueryChanged:
		return r.handleQueryChanged(ctx, ev)
	case MembersAdded:
		return r.handleMembersAdded(ctx, ev)
	case ResultsUpdated:
		r.handleResultsUpdated(ev)
		return nil
	case CardbacksUpdated:
		r.handleCardbacksUpdated(ev)
		return nil
	case SettingsChanged:
		return r.handleSettingsChanged(ctx, ev)
	default:
		return fmt.Errorf("unknown event type %T", event)
	}
}

// handleQueryChanged repairs selections after one or many query edits.
// The user opted into new queries, so stale invalid-identifier records for
// the affected slot-faces are dropped first. Selection repair waits until
// the backend has answered for every affected query; repairing a subset
// while others are in flight would treat "not answered yet" as "no
// results exist".
func (r *Reconciler) handleQueryChanged(ctx context.Context, ev QueryChanged) error {
	for _, target := range ev.Targets {
		r.clearInvalid(target)
	}

	var affected []model.SearchQuery
	for _, target := range ev.Targets {
		member := r.project.Member(target.Face, target.Slot)
		if member != nil && member.Query != nil && member.Query.Text != "" {
			affected = append(affected, *member.Query)
		}
	}
	if err := r.fetchMissing(ctx, affected); err != nil {
		return err
	}

	for _, target := range ev.Targets {
		member := r.project.Member(target.Face, target.Slot)
		if member == nil {
			continue
		}
		// The old selection belonged to the old query.
		member.SelectedImage = ""
		r.repairMember(target.Slot, target.Face)
	}
	return nil
}

// handleMembersAdded fetches results for any newly-introduced queries and
// selects initial images for the new slots.
func (r *Reconciler) handleMembersAdded(ctx context.Context, ev MembersAdded) error {
	if err := r.fetchMissing(ctx, r.project.QueriesWithoutResults(r.results)); err != nil {
		return err
	}
	for slot := ev.FirstSlot; slot < ev.FirstSlot+ev.Count; slot++ {
		for _, face := range model.Faces {
			r.repairMember(slot, face)
		}
	}
	return nil
}

// handleResultsUpdated merges new result lists into the cache and
// re-validates every slot-face whose query was updated.
func (r *Reconciler) handleResultsUpdated(ev ResultsUpdated) {
	updated := make(map[model.SearchQuery]bool)
	for text, byType := range ev.Results {
		for cardType, ids := range byType {
			q := model.SearchQuery{Text: text, Type: cardType}
			r.results.Set(q, ids)
			updated[q] = true
		}
	}

	for slot := range r.project.Slots() {
		for _, face := range model.Faces {
			member := r.project.Member(face, slot)
			if member == nil || member.Query == nil {
				continue
			}
			if updated[*member.Query] {
				r.repairMember(slot, face)
			}
		}
	}
}

// handleCardbacksUpdated replaces the cardback list, repairs the
// project-wide cardback, and re-applies the fallback for queryless backs.
func (r *Reconciler) handleCardbacksUpdated(ev CardbacksUpdated) {
	r.cardbacks = ev.Cardbacks
	r.cardbacksFetched = true

	if current := r.project.Cardback(); current != "" && !contains(r.cardbacks, current) {
		r.project.SetCardback("")
	}
	if r.project.Cardback() == "" && len(r.cardbacks) > 0 {
		r.project.SetCardback(r.cardbacks[0])
	}

	for slot := range r.project.Slots() {
		r.repairMember(slot, model.FaceBack)
	}
}

// handleSettingsChanged invalidates the whole result cache and re-fetches
// under the new settings. The fetch lands in a fresh cache first: on
// failure nothing is swapped in, so the project and the old cache are left
// exactly as they were.
func (r *Reconciler) handleSettingsChanged(ctx context.Context, ev SettingsChanged) error {
	queries := r.project.DistinctQueries()

	var fresh model.SearchResults
	var backs []string
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		fresh, err = r.oracle.Search(grpCtx, ev.Settings, queries)
		return err
	})
	grp.Go(func() error {
		var err error
		backs, err = r.oracle.Cardbacks(grpCtx, ev.Settings)
		return err
	})
	if err := grp.Wait(); err != nil {
		return err
	}

	r.generation++
	r.settings = ev.Settings
	r.results = make(model.SearchResults)
	r.cardbacksFetched = false

	r.handleResultsUpdated(ResultsUpdated{Results: fresh})
	r.handleCardbacksUpdated(CardbacksUpdated{Cardbacks: backs})
	return nil
}

// Generation returns the current fetch generation. Asynchronous callers
// capture it before starting a fetch and pass it to ApplyIfCurrent when
// the response arrives.
func (r *Reconciler) Generation() uint64 {
	return r.generation
}

// ApplyIfCurrent applies an event only if no settings change superseded
// the fetch that produced it. Returns true when the event was applied.
func (r *Reconciler) ApplyIfCurrent(ctx context.Context, generation uint64, event Event) (bool, error) {
	if generation != r.generation {
		return false, nil
	}
	return true, r.Apply(ctx, event)
}

// fetchMissing is the synchronization barrier: it resolves every given
// query that has no cache entry, plus the cardback list if it was never
// fetched, before any selection logic runs. Both backend calls run
// concurrently; a response from a superseded generation is discarded.
func (r *Reconciler) fetchMissing(ctx context.Context, queries []model.SearchQuery) error {
	var missing []model.SearchQuery
	seen := make(map[model.SearchQuery]bool)
	for _, q := range queries {
		if _, ok := r.results.For(q); !ok && !seen[q] {
			seen[q] = true
			missing = append(missing, q)
		}
	}
	if len(missing) == 0 && r.cardbacksFetched {
		return nil
	}

	generation := r.generation

	var fetched model.SearchResults
	var backs []string
	needBacks := !r.cardbacksFetched
	grp, grpCtx := errgroup.WithContext(ctx)
	if len(missing) > 0 {
		grp.Go(func() error {
			var err error
			fetched, err = r.oracle.Search(grpCtx, r.settings, missing)
			return err
		})
	}
	if needBacks {
		grp.Go(func() error {
			var err error
			backs, err = r.oracle.Cardbacks(grpCtx, r.settings)
			return err
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	if generation != r.generation {
		// A settings change overtook this fetch; its results are stale.
		return nil
	}

	for text, byType := range fetched {
		for cardType, ids := range byType {
			r.results.Set(model.SearchQuery{Text: text, Type: cardType}, ids)
		}
	}
	if needBacks {
		r.cardbacks = backs
		r.cardbacksFetched = true
		if r.project.Cardback() == "" && len(backs) > 0 {
			r.project.SetCardback(backs[0])
		}
	}
	return nil
}

// repairMember restores the selection invariant for one slot-face. The
// rule is slot-local and idempotent: applying it twice with an unchanged
// result set is a no-op.
func (r *Reconciler) repairMember(slot int, face model.Face) {
	member := r.project.Member(face, slot)
	if member == nil {
		return
	}

	// A back with no query defers to the backend's cardback list, or
	// failing that the project cardback.
	if face == model.FaceBack && (member.Query == nil || member.Query.Text == "") {
		r.repairFallbackBack(member)
		return
	}
	if member.Query == nil || member.Query.Text == "" {
		return
	}

	ids, answered := r.results.For(*member.Query)
	if !answered {
		// Pending: never treat "no results yet" as "no results exist".
		return
	}

	if member.SelectedImage != "" && !contains(ids, member.SelectedImage) {
		invalidated := member.SelectedImage
		member.SelectedImage = ""
		// Only diagnose when options remain; if every result vanished
		// there is nothing the user could have picked instead.
		if len(ids) > 0 {
			q := *member.Query
			r.invalid = append(r.invalid, model.InvalidIdentifierRecord{
				Slot:       slot,
				Face:       face,
				Query:      &q,
				Identifier: invalidated,
			})
		}
	}
	if member.SelectedImage == "" && len(ids) > 0 {
		member.SelectedImage = ids[0]
	}
}

// repairFallbackBack applies the cardback fallback to a queryless back
// member: the backend's cardback list wins, then the project cardback.
// An existing selection is left alone; hand-picked backs are not fought.
func (r *Reconciler) repairFallbackBack(member *model.ProjectMember) {
	if member.SelectedImage != "" {
		return
	}
	if len(r.cardbacks) > 0 {
		member.SelectedImage = r.cardbacks[0]
	} else {
		member.SelectedImage = r.project.Cardback()
	}
}

// clearInvalid drops the recorded diagnostics for one slot-face.
func (r *Reconciler) clearInvalid(target Target) {
	kept := r.invalid[:0]
	for _, record := range r.invalid {
		if record.Slot != target.Slot || record.Face != target.Face {
			kept = append(kept, record)
		}
	}
	r.invalid = kept
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
