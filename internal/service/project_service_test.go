package service

import (
	"context"
	"strings"
	"testing"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/export"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/store"
	"github.com/chilli-axe/mpc-autofill-sub000/testutil"
)

func setupTestService(t *testing.T) (*ProjectService, *testutil.FakeOracle, func()) {
	t.Helper()

	dir, cleanup := testutil.TempProjectDir(t)
	paths := testutil.NewTestPaths(dir)
	projectStore := store.NewProjectStore(paths)
	settingsStore := store.NewSettingsStore(paths)

	initService := NewInitService(projectStore, settingsStore)
	if _, err := initService.Initialize(dir, "test-project"); err != nil {
		cleanup()
		t.Fatalf("Initialize failed: %v", err)
	}

	fake := testutil.NewFakeOracle()
	svc := NewProjectService(projectStore, settingsStore, fake)
	if err := svc.Load(context.Background()); err != nil {
		cleanup()
		t.Fatalf("Load failed: %v", err)
	}

	return svc, fake, cleanup
}

func TestInitService_Initialize(t *testing.T) {
	dir, cleanup := testutil.TempProjectDir(t)
	defer cleanup()

	paths := testutil.NewTestPaths(dir)
	projectStore := store.NewProjectStore(paths)
	settingsStore := store.NewSettingsStore(paths)
	initService := NewInitService(projectStore, settingsStore)

	file, err := initService.Initialize(dir, "")
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if file.ID == "" {
		t.Error("Initialize should generate a project ID")
	}
	if file.Name == "" {
		t.Error("Initialize should default the name from the directory")
	}
	if !projectStore.Exists() || !settingsStore.Exists() {
		t.Error("Initialize should write both project and settings files")
	}

	if _, err := initService.Initialize(dir, "again"); !apperr.IsValidationError(err) {
		t.Errorf("second Initialize = %v, want validation error", err)
	}
}

func TestProjectService_AddFromText(t *testing.T) {
	svc, fake, cleanup := setupTestService(t)
	defer cleanup()

	fake.SetResult("island", model.TypeCard, []string{"idIsland"})

	added, err := svc.AddFromText(context.Background(), "2x Island\n1 Opt")
	if err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}
	if added != 3 {
		t.Errorf("added = %d, want 3", added)
	}

	proj := svc.Project()
	if proj.Size() != 3 {
		t.Fatalf("project size = %d, want 3", proj.Size())
	}
	if got := proj.Member(model.FaceFront, 0).SelectedImage; got != "idIsland" {
		t.Errorf("slot 0 front image = %q, want auto-selected idIsland", got)
	}
	// No results for opt: selection stays pending.
	if got := proj.Member(model.FaceFront, 2).SelectedImage; got != "" {
		t.Errorf("slot 2 front image = %q, want empty", got)
	}
}

func TestProjectService_AddPersists(t *testing.T) {
	svc, fake, cleanup := setupTestService(t)
	defer cleanup()

	fake.SetResult("island", model.TypeCard, []string{"idIsland"})
	if _, err := svc.AddFromText(context.Background(), "1x Island"); err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}

	// A fresh service sees the persisted slots.
	svc2 := NewProjectService(svc.projectStore, svc.settingsStore, fake)
	if err := svc2.Load(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if svc2.Project().Size() != 1 {
		t.Errorf("reloaded size = %d, want 1", svc2.Project().Size())
	}
	if got := svc2.Project().Member(model.FaceFront, 0).SelectedImage; got != "idIsland" {
		t.Errorf("reloaded image = %q, want idIsland", got)
	}
}

func TestProjectService_AddTruncatesAtCapacity(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()

	text := strings.TrimSpace(strings.Repeat("1x Filler\n", 1))
	if _, err := svc.AddFromText(context.Background(), text); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}

	added, err := svc.AddFromText(context.Background(), "700x Island")
	if !apperr.IsCapacityExceeded(err) {
		t.Fatalf("got err %v, want capacity exceeded", err)
	}
	if added != model.MaxProjectSize-1 {
		t.Errorf("added = %d, want %d", added, model.MaxProjectSize-1)
	}
	if svc.Project().Size() != model.MaxProjectSize {
		t.Errorf("size = %d, want %d", svc.Project().Size(), model.MaxProjectSize)
	}
}

func TestProjectService_SetQueryRepairsSelection(t *testing.T) {
	svc, fake, cleanup := setupTestService(t)
	defer cleanup()

	fake.SetResult("island", model.TypeCard, []string{"idIsland"})
	fake.SetResult("forest", model.TypeCard, []string{"idForest"})
	if _, err := svc.AddFromText(context.Background(), "1x Island"); err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}

	if err := svc.SetQuery(context.Background(), "0", "Forest"); err != nil {
		t.Fatalf("SetQuery failed: %v", err)
	}
	front := svc.Project().Member(model.FaceFront, 0)
	if front.Query.Text != "forest" {
		t.Errorf("query = %q, want forest", front.Query.Text)
	}
	if front.SelectedImage != "idForest" {
		t.Errorf("image = %q, want idForest", front.SelectedImage)
	}
}

func TestProjectService_SetImageAndDelete(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()

	if _, err := svc.AddFromText(context.Background(), "2x Island"); err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}

	if err := svc.SetImage("1:front", "idCustom"); err != nil {
		t.Fatalf("SetImage failed: %v", err)
	}
	if got := svc.Project().Member(model.FaceFront, 1).SelectedImage; got != "idCustom" {
		t.Errorf("image = %q, want idCustom", got)
	}

	if err := svc.DeleteSlot("0"); err != nil {
		t.Fatalf("DeleteSlot failed: %v", err)
	}
	if svc.Project().Size() != 1 {
		t.Errorf("size = %d, want 1 after delete", svc.Project().Size())
	}
	if got := svc.Project().Member(model.FaceFront, 0).SelectedImage; got != "idCustom" {
		t.Errorf("surviving slot image = %q, want idCustom", got)
	}

	if err := svc.SetImage("5", "x"); !apperr.IsNotFound(err) {
		t.Errorf("SetImage out of range = %v, want not-found", err)
	}
}

func TestProjectService_SetCardbackFollows(t *testing.T) {
	svc, fake, cleanup := setupTestService(t)
	defer cleanup()

	fake.Backs = []string{"backA", "backB"}
	if _, err := svc.AddFromText(context.Background(), "2x Island"); err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}

	// Fallback backs picked up the oracle's first cardback.
	if got := svc.Project().Member(model.FaceBack, 0).SelectedImage; got != "backA" {
		t.Fatalf("back image = %q, want backA", got)
	}

	if err := svc.SetCardback("backB"); err != nil {
		t.Fatalf("SetCardback failed: %v", err)
	}
	if got := svc.Project().Cardback(); got != "backB" {
		t.Errorf("cardback = %q, want backB", got)
	}
	for slot := 0; slot < 2; slot++ {
		if got := svc.Project().Member(model.FaceBack, slot).SelectedImage; got != "backB" {
			t.Errorf("slot %d back = %q, want backB", slot, got)
		}
	}
}

func TestProjectService_ImportCSV(t *testing.T) {
	svc, fake, cleanup := setupTestService(t)
	defer cleanup()

	fake.SetResult("island", model.TypeCard, []string{"idIsland"})
	data := []byte("Quantity,Front\n2,Island\n")

	added, err := svc.ImportCSV(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
}

func TestProjectService_ImportXMLAdoptsCardback(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()

	doc := `<order>
  <fronts><card><id>idA</id><slots>0</slots><query>island</query></card></fronts>
  <cardback>idBack</cardback>
</order>`

	added, err := svc.ImportXML(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("ImportXML failed: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if got := svc.Project().Cardback(); got != "idBack" {
		t.Errorf("cardback = %q, want adopted idBack", got)
	}
}

func TestProjectService_ExportRoundTrip(t *testing.T) {
	svc, fake, cleanup := setupTestService(t)
	defer cleanup()

	fake.SetResult("island", model.TypeCard, []string{"idIsland"})
	fake.Records["idIsland"] = testutil.TestRecord("idIsland", "Island")
	if _, err := svc.AddFromText(context.Background(), "2x Island"); err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}

	out, err := svc.ExportXML(context.Background(), export.OrderDetails{})
	if err != nil {
		t.Fatalf("ExportXML failed: %v", err)
	}
	if !strings.Contains(string(out), "<id>idIsland</id>") {
		t.Errorf("XML output missing selected image: %s", out)
	}

	decklist, err := svc.ExportDecklist(context.Background())
	if err != nil {
		t.Fatalf("ExportDecklist failed: %v", err)
	}
	if decklist != "2x Island\n" {
		t.Errorf("decklist = %q, want 2x Island", decklist)
	}
}

func TestProjectService_UpdateSettingsFailureKeepsOld(t *testing.T) {
	svc, fake, cleanup := setupTestService(t)
	defer cleanup()

	if _, err := svc.AddFromText(context.Background(), "1x Island"); err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}

	before := svc.Settings()
	changed := before
	changed.FuzzySearch = !before.FuzzySearch

	fake.Fail = true
	if err := svc.UpdateSettings(context.Background(), changed); !apperr.IsOracle(err) {
		t.Fatalf("UpdateSettings = %v, want oracle error", err)
	}
	if svc.Settings().FuzzySearch != before.FuzzySearch {
		t.Error("failed settings update must not change active settings")
	}
}

func TestProjectService_SubscribeNotified(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()

	notified := 0
	svc.Subscribe(func() { notified++ })

	if _, err := svc.AddFromText(context.Background(), "1x Island"); err != nil {
		t.Fatalf("AddFromText failed: %v", err)
	}
	if notified == 0 {
		t.Error("subscriber should be notified after a persisted change")
	}
}
