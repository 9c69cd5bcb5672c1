package importer

import (
	"errors"
	"testing"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/query"
)

func newTestParser() *query.Parser {
	return query.NewParser(model.GrammarSettings{})
}

func TestParseCSV(t *testing.T) {
	data := []byte("Quantity,Front,Front ID,Back,Back ID\n" +
		"2,Island,idIsland,,\n" +
		",Delver of Secrets,,Insectile Aberration,idInsect\n")

	lines, err := ParseCSV(data, DefaultCSVColumns(), newTestParser())
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	first := lines[0]
	if first.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", first.Quantity)
	}
	if first.Front == nil || first.Front.Text != "island" {
		t.Errorf("front = %+v, want island", first.Front)
	}
	if first.FrontImage != "idIsland" {
		t.Errorf("front image = %q, want idIsland", first.FrontImage)
	}
	if first.Back != nil {
		t.Errorf("back = %+v, want none", first.Back)
	}

	second := lines[1]
	if second.Quantity != 1 {
		t.Errorf("blank quantity = %d, want default 1", second.Quantity)
	}
	if second.Back == nil || second.Back.Text != "insectile aberration" {
		t.Errorf("back = %+v, want insectile aberration", second.Back)
	}
	if second.BackImage != "idInsect" {
		t.Errorf("back image = %q, want idInsect", second.BackImage)
	}
}

func TestParseCSV_CaseInsensitiveHeaders(t *testing.T) {
	data := []byte("quantity,FRONT\n3,Opt\n")

	lines, err := ParseCSV(data, DefaultCSVColumns(), newTestParser())
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 3 || lines[0].Front.Text != "opt" {
		t.Errorf("lines = %+v, want 3x opt", lines)
	}
}

func TestParseCSV_MissingFrontColumn(t *testing.T) {
	data := []byte("Quantity,Back\n1,Opt\n")

	_, err := ParseCSV(data, DefaultCSVColumns(), newTestParser())
	if !apperr.IsParse(err) {
		t.Fatalf("got %v, want parse error for missing front column", err)
	}
}

func TestParseCSV_BlankFrontCell(t *testing.T) {
	data := []byte("Quantity,Front\n1,Island\n2,\n")

	_, err := ParseCSV(data, DefaultCSVColumns(), newTestParser())
	if !apperr.IsParse(err) {
		t.Fatalf("got %v, want parse error for blank front cell", err)
	}
	var parseErr *apperr.ParseError
	if !errors.As(err, &parseErr) || parseErr.Line != 3 {
		t.Errorf("error = %+v, want line 3", parseErr)
	}
}

func TestParseCSV_PrefixedQueries(t *testing.T) {
	data := []byte("Front,Back\nt:goblin,b:lotus back\n")

	lines, err := ParseCSV(data, DefaultCSVColumns(), newTestParser())
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if lines[0].Front.Type != model.TypeToken {
		t.Errorf("front type = %v, want token", lines[0].Front.Type)
	}
	if lines[0].Back.Type != model.TypeCardback {
		t.Errorf("back type = %v, want cardback", lines[0].Back.Type)
	}
}
