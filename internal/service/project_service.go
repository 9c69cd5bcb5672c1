// Package service glues the stores, the decklist grammar, the reconciler
// and the search oracle into the operations the CLI and API expose.
package service

import (
	"context"
	"fmt"
	"os"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/export"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/importer"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/oracle"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/project"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/query"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/reconcile"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/resolver"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/store"
)

// ProjectService handles all operations on the loaded project.
type ProjectService struct {
	projectStore  store.ProjectStore
	settingsStore store.SettingsStore
	oracle        oracle.Oracle

	file        *model.ProjectFile
	proj        *project.Project
	parser      *query.Parser
	rec         *reconcile.Reconciler
	subscribers []func()
}

// NewProjectService creates a new project service. Call Load before any
// other operation.
func NewProjectService(projectStore store.ProjectStore, settingsStore store.SettingsStore, o oracle.Oracle) *ProjectService {
	return &ProjectService{
		projectStore:  projectStore,
		settingsStore: settingsStore,
		oracle:        o,
	}
}

// Load reads the project and settings from disk and prepares the grammar
// parser and reconciler. The double-faced pairing table is fetched on a
// best-effort basis; without it lines still parse, they just don't
// auto-pair backs.
func (s *ProjectService) Load(ctx context.Context) error {
	settings, err := s.settingsStore.Load()
	if err != nil {
		return err
	}

	file, err := s.projectStore.Load()
	if err != nil {
		return err
	}

	s.file = file
	s.proj = project.FromSlots(file.Slots, file.Cardback)
	s.parser = query.NewParser(settings.Grammar)
	s.rec = reconcile.New(s.proj, s.oracle, *settings)

	if pairs, err := s.oracle.DFCPairs(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch double-faced pairings: %v\n", err)
	} else {
		s.parser.SetDFCPairs(pairs)
	}

	return nil
}

// Project returns the loaded project.
func (s *ProjectService) Project() *project.Project {
	return s.proj
}

// File returns the loaded project file metadata.
func (s *ProjectService) File() *model.ProjectFile {
	return s.file
}

// Parser returns the grammar parser configured from the loaded settings.
func (s *ProjectService) Parser() *query.Parser {
	return s.parser
}

// Reconciler returns the reconciler driving consistency repair.
func (s *ProjectService) Reconciler() *reconcile.Reconciler {
	return s.rec
}

// Oracle returns the search backend the service was built with.
func (s *ProjectService) Oracle() oracle.Oracle {
	return s.oracle
}

// Settings returns the active search settings.
func (s *ProjectService) Settings() model.SearchSettings {
	return s.rec.Settings()
}

// Subscribe registers a callback invoked after every persisted change.
func (s *ProjectService) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *ProjectService) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

// Save persists the current project state and notifies subscribers.
func (s *ProjectService) Save() error {
	s.file.Slots = s.proj.Slots()
	s.file.Cardback = s.proj.Cardback()
	if err := s.projectStore.Save(s.file); err != nil {
		return err
	}
	s.notify()
	return nil
}

// AddFromText parses decklist text and appends the resulting slots.
// Returns how many slots were added. When the project is full some or all
// parsed slots are dropped and a capacity error accompanies the count;
// the added slots are still persisted.
func (s *ProjectService) AddFromText(ctx context.Context, text string) (int, error) {
	lines := s.parser.ParseLines(text)
	return s.addSlots(ctx, project.SlotsFromLines(lines))
}

// ImportCSV parses a CSV decklist and appends the resulting slots.
func (s *ProjectService) ImportCSV(ctx context.Context, data []byte) (int, error) {
	lines, err := importer.ParseCSV(data, importer.DefaultCSVColumns(), s.parser)
	if err != nil {
		return 0, err
	}
	return s.addSlots(ctx, project.SlotsFromLines(lines))
}

// ImportXML parses an XML order document and appends its slots. The
// document's cardback is adopted when the project doesn't have one yet.
func (s *ProjectService) ImportXML(ctx context.Context, data []byte) (int, error) {
	result, err := importer.ParseXML(data)
	if err != nil {
		return 0, err
	}
	if s.proj.Cardback() == "" && result.Cardback != "" {
		s.proj.SetCardback(result.Cardback)
	}
	return s.addSlots(ctx, result.Slots)
}

func (s *ProjectService) addSlots(ctx context.Context, slots []model.Slot) (int, error) {
	first := s.proj.Size()
	added := s.proj.AddMembers(slots)

	if added > 0 {
		event := reconcile.MembersAdded{FirstSlot: first, Count: added}
		if err := s.rec.Apply(ctx, event); err != nil {
			s.reportReconcileFailure(err)
		}
		if err := s.Save(); err != nil {
			return added, err
		}
	}

	if dropped := len(slots) - added; dropped > 0 {
		return added, &apperr.CapacityExceededError{Dropped: dropped, Max: model.MaxProjectSize}
	}
	return added, nil
}

// SetQuery replaces the query of the referenced member and re-resolves
// its selection.
func (s *ProjectService) SetQuery(ctx context.Context, ref, rawQuery string) error {
	sr, err := resolver.Resolve(ref, s.proj.Size())
	if err != nil {
		return err
	}

	s.proj.SetQuery(sr.Face, sr.Slot, query.ParseQuery(rawQuery))

	event := reconcile.QueryChanged{Targets: []reconcile.Target{{Slot: sr.Slot, Face: sr.Face}}}
	if err := s.rec.Apply(ctx, event); err != nil {
		s.reportReconcileFailure(err)
	}
	return s.Save()
}

// SetImage pins an exact image on the referenced member.
func (s *ProjectService) SetImage(ref, identifier string) error {
	sr, err := resolver.Resolve(ref, s.proj.Size())
	if err != nil {
		return err
	}
	s.proj.SetSelectedImage(sr.Face, sr.Slot, identifier)
	return s.Save()
}

// SetCardback changes the project-wide cardback. Backs that were showing
// the old cardback follow it.
func (s *ProjectService) SetCardback(identifier string) error {
	old := s.proj.Cardback()
	s.proj.SetCardback(identifier)
	if old != "" && old != identifier {
		s.proj.BulkSetSelectedImage(model.FaceBack, old, identifier)
	}
	return s.Save()
}

// DeleteSlot removes the referenced slot; later slots shift left.
func (s *ProjectService) DeleteSlot(ref string) error {
	sr, err := resolver.Resolve(ref, s.proj.Size())
	if err != nil {
		return err
	}
	s.proj.DeleteSlot(sr.Slot)
	return s.Save()
}

// ToggleSelection flips the multi-select flag of the referenced member.
func (s *ProjectService) ToggleSelection(ref string) error {
	sr, err := resolver.Resolve(ref, s.proj.Size())
	if err != nil {
		return err
	}
	s.proj.ToggleMemberSelection(sr.Face, sr.Slot)
	return s.Save()
}

// PropagateSelection copies the referenced member's multi-select flag to
// every same-face member sharing its query.
func (s *ProjectService) PropagateSelection(ref string) error {
	sr, err := resolver.Resolve(ref, s.proj.Size())
	if err != nil {
		return err
	}
	s.proj.BulkSetMemberSelection(sr.Face, sr.Slot)
	return s.Save()
}

// UpdateSettings swaps in new search settings. The reconciler refetches
// and revalidates against the new settings before anything is persisted;
// on oracle failure the old settings stay active.
func (s *ProjectService) UpdateSettings(ctx context.Context, settings model.SearchSettings) error {
	if err := s.rec.Apply(ctx, reconcile.SettingsChanged{Settings: settings}); err != nil {
		return err
	}
	if err := s.settingsStore.Save(&settings); err != nil {
		return err
	}

	s.parser = query.NewParser(settings.Grammar)
	if pairs, err := s.oracle.DFCPairs(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch double-faced pairings: %v\n", err)
	} else {
		s.parser.SetDFCPairs(pairs)
	}

	return s.Save()
}

// Refresh refetches all search results and revalidates every selection
// without changing settings.
func (s *ProjectService) Refresh(ctx context.Context) error {
	if err := s.rec.Apply(ctx, reconcile.SettingsChanged{Settings: s.rec.Settings()}); err != nil {
		return err
	}
	return s.Save()
}

// ExportXML renders the project as an XML order document.
func (s *ProjectService) ExportXML(ctx context.Context, details export.OrderDetails) ([]byte, error) {
	metadata, err := s.selectedMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return export.GenerateXML(s.proj, metadata, details)
}

// ExportDecklist renders the project as decklist text.
func (s *ProjectService) ExportDecklist(ctx context.Context) (string, error) {
	metadata, err := s.selectedMetadata(ctx)
	if err != nil {
		return "", err
	}
	return export.GenerateDecklist(s.proj, metadata, s.parser.FaceSeparator()), nil
}

// FileSize sums the byte size of every selected image.
func (s *ProjectService) FileSize(ctx context.Context) (int64, error) {
	metadata, err := s.selectedMetadata(ctx)
	if err != nil {
		return 0, err
	}
	return s.proj.FileSize(metadata), nil
}

func (s *ProjectService) selectedMetadata(ctx context.Context) (map[string]model.CardRecord, error) {
	ids := s.proj.SelectedImages()
	if len(ids) == 0 {
		return nil, nil
	}
	return s.oracle.Metadata(ctx, ids)
}

// reportReconcileFailure surfaces a failed repair without aborting the
// mutation that triggered it. The project stays consistent; selections
// for unanswered queries simply remain pending until the next repair.
func (s *ProjectService) reportReconcileFailure(err error) {
	fmt.Fprintf(os.Stderr, "Warning: search backend unavailable, selections left pending: %v\n", err)
}
