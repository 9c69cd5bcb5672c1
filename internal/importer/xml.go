// Package importer parses the XML order format and tabular CSV decklists
// into project slots. Parse failures reject the whole document; no partial
// state escapes.
package importer

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/export"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/query"
)

// XMLResult is the outcome of parsing an XML order document: a standalone
// slot list (0-based within the document) plus the document's cardback.
type XMLResult struct {
	Slots    []model.Slot
	Cardback string
}

// ParseXML parses an XML order document into project slots.
//
// Backs are populated before fronts: front processing synthesizes a
// default-cardback back for any slot that has none, and that check is only
// correct once every explicit back is in place. The result is truncated to
// one past the highest referenced slot index.
func ParseXML(data []byte) (*XMLResult, error) {
	var order export.Order
	if err := xml.Unmarshal(data, &order); err != nil {
		return nil, &apperr.ParseError{Format: "xml", Message: err.Error()}
	}
	if order.Fronts == nil {
		return nil, &apperr.ParseError{Format: "xml", Message: "missing <fronts> element"}
	}

	slots := make([]model.Slot, model.MaxProjectSize)
	highest := -1

	if order.Backs != nil {
		for _, card := range order.Backs.Cards {
			indices, err := parseSlotList(card.Slots)
			if err != nil {
				return nil, err
			}
			for _, idx := range indices {
				slots[idx].Back = &model.ProjectMember{
					Query:         query.ParseQuery(card.Query),
					SelectedImage: card.ID,
				}
				if idx > highest {
					highest = idx
				}
			}
		}
	}

	for _, card := range order.Fronts.Cards {
		indices, err := parseSlotList(card.Slots)
		if err != nil {
			return nil, err
		}
		for _, idx := range indices {
			slots[idx].Front = &model.ProjectMember{
				Query:         query.ParseQuery(card.Query),
				SelectedImage: card.ID,
			}
			// A slot with no explicit back gets the document's cardback.
			if slots[idx].Back == nil {
				slots[idx].Back = &model.ProjectMember{
					Query:         &model.SearchQuery{Type: model.TypeCardback},
					SelectedImage: order.Cardback,
				}
			}
			if idx > highest {
				highest = idx
			}
		}
	}

	return &XMLResult{
		Slots:    slots[:highest+1],
		Cardback: order.Cardback,
	}, nil
}

// parseSlotList parses a comma-joined ascending slot index list.
func parseSlotList(s string) ([]int, error) {
	var indices []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, &apperr.ParseError{Format: "xml", Message: fmt.Sprintf("invalid slot index %q", part)}
		}
		if idx < 0 || idx >= model.MaxProjectSize {
			return nil, &apperr.ParseError{Format: "xml", Message: fmt.Sprintf("slot index %d out of range", idx)}
		}
		indices = append(indices, idx)
	}
	return indices, nil
}
