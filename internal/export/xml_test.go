package export

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/project"
)

func TestBracketFor(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 18},
		{1, 18},
		{18, 18},
		{19, 36},
		{100, 108},
		{612, 612},
		{613, 612}, // beyond the table: clamp to the max
	}
	for _, tt := range tests {
		if got := BracketFor(tt.count); got != tt.want {
			t.Errorf("BracketFor(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func testProject() (*project.Project, map[string]model.CardRecord) {
	p := project.New()
	p.AddMembers([]model.Slot{
		{
			Front: &model.ProjectMember{
				Query:         &model.SearchQuery{Text: "island", Type: model.TypeCard},
				SelectedImage: "idIsland",
			},
			Back: &model.ProjectMember{
				Query:         &model.SearchQuery{Type: model.TypeCardback},
				SelectedImage: "idBack",
			},
		},
		{
			Front: &model.ProjectMember{
				Query:         &model.SearchQuery{Text: "island", Type: model.TypeCard},
				SelectedImage: "idIsland",
			},
		},
		{
			Front: &model.ProjectMember{
				Query:         &model.SearchQuery{Text: "goblin", Type: model.TypeToken},
				SelectedImage: "idGoblin",
			},
			Back: &model.ProjectMember{
				Query:         &model.SearchQuery{Text: "dragon", Type: model.TypeCard},
				SelectedImage: "idDragon",
			},
		},
	})
	p.SetCardback("idBack")

	metadata := map[string]model.CardRecord{
		"idIsland": {Identifier: "idIsland", Name: "Island", Extension: "png", SearchName: "island"},
		"idGoblin": {Identifier: "idGoblin", Name: "Goblin", Extension: "jpg", SearchName: "goblin"},
		"idDragon": {Identifier: "idDragon", Name: "Dragon", Extension: "png", SearchName: "dragon"},
		"idBack":   {Identifier: "idBack", Name: "Back", Extension: "png", SearchName: "back"},
	}
	return p, metadata
}

func TestGenerateXML(t *testing.T) {
	p, metadata := testProject()

	out, err := GenerateXML(p, metadata, OrderDetails{Stock: "(S30) Standard Smooth"})
	if err != nil {
		t.Fatalf("GenerateXML failed: %v", err)
	}

	var order Order
	if err := xml.Unmarshal(out, &order); err != nil {
		t.Fatalf("generated XML does not parse: %v", err)
	}

	if order.Details.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", order.Details.Quantity)
	}
	if order.Details.Bracket != 18 {
		t.Errorf("bracket = %d, want 18", order.Details.Bracket)
	}
	if order.Details.Stock != "(S30) Standard Smooth" {
		t.Errorf("stock = %q, want passthrough", order.Details.Stock)
	}
	if order.Cardback != "idBack" {
		t.Errorf("cardback = %q, want idBack", order.Cardback)
	}

	if order.Fronts == nil || len(order.Fronts.Cards) != 2 {
		t.Fatalf("fronts = %+v, want 2 distinct cards", order.Fronts)
	}
	island := order.Fronts.Cards[0]
	if island.ID != "idIsland" || island.Slots != "0,1" {
		t.Errorf("island card = %+v, want idIsland in slots 0,1", island)
	}
	if island.Name != "Island.png" {
		t.Errorf("island name = %q, want Island.png", island.Name)
	}
	if island.Query != "island" {
		t.Errorf("island query = %q, want island", island.Query)
	}
	goblin := order.Fronts.Cards[1]
	if goblin.Query != "t:goblin" {
		t.Errorf("goblin query = %q, want prefixed t:goblin", goblin.Query)
	}

	// The back equal to the project cardback is not listed per-slot.
	if order.Backs == nil || len(order.Backs.Cards) != 1 {
		t.Fatalf("backs = %+v, want only the nonstandard back", order.Backs)
	}
	if order.Backs.Cards[0].ID != "idDragon" || order.Backs.Cards[0].Slots != "2" {
		t.Errorf("back card = %+v, want idDragon in slot 2", order.Backs.Cards[0])
	}
}

func TestGenerateXML_QueryFallbackToSearchName(t *testing.T) {
	p := project.New()
	p.AddMembers([]model.Slot{
		{Front: &model.ProjectMember{SelectedImage: "idPicked"}},
	})
	metadata := map[string]model.CardRecord{
		"idPicked": {Identifier: "idPicked", Name: "Picked Card", Extension: "png", SearchName: "picked card"},
	}

	out, err := GenerateXML(p, metadata, OrderDetails{})
	if err != nil {
		t.Fatalf("GenerateXML failed: %v", err)
	}

	var order Order
	if err := xml.Unmarshal(out, &order); err != nil {
		t.Fatalf("generated XML does not parse: %v", err)
	}
	if got := order.Fronts.Cards[0].Query; got != "picked card" {
		t.Errorf("query = %q, want metadata search name fallback", got)
	}
}

func TestGenerateXML_EmptyProject(t *testing.T) {
	p := project.New()

	out, err := GenerateXML(p, nil, OrderDetails{})
	if err != nil {
		t.Fatalf("GenerateXML failed: %v", err)
	}

	text := string(out)
	if strings.Contains(text, "<fronts>") {
		t.Error("empty project should omit <fronts>")
	}
	if !strings.Contains(text, "<cardback>") {
		t.Error("cardback element is always emitted")
	}
}
