// Package export serializes a project to the XML order format and the
// plain decklist format.
package export

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/project"
)

// Brackets are the supported print run sizes, ascending. An order is
// quoted at the smallest bracket that fits its slot count.
var Brackets = []int{18, 36, 55, 72, 90, 108, 126, 144, 162, 180, 198, 216, 234, 396, 504, 612}

// BracketFor returns the smallest bracket that fits the given slot count,
// or the largest bracket if none does.
func BracketFor(count int) int {
	for _, bracket := range Brackets {
		if bracket >= count {
			return bracket
		}
	}
	return Brackets[len(Brackets)-1]
}

// OrderDetails is finish/stock metadata passed through to the document
// unchanged; this engine does not interpret it.
type OrderDetails struct {
	Stock string
	Foil  bool
}

// Order is the XML document root. Element names are the interchange
// format's, case-sensitive.
type Order struct {
	XMLName  xml.Name `xml:"order"`
	Details  Details  `xml:"details"`
	Fronts   *FaceEl  `xml:"fronts,omitempty"`
	Backs    *FaceEl  `xml:"backs,omitempty"`
	Cardback string   `xml:"cardback"`
}

// Details summarizes the order.
type Details struct {
	Quantity int    `xml:"quantity"`
	Bracket  int    `xml:"bracket"`
	Stock    string `xml:"stock"`
	Foil     bool   `xml:"foil"`
}

// FaceEl groups the cards of one face.
type FaceEl struct {
	Cards []Card `xml:"card"`
}

// Card is one distinct image within a face: its identifier, the ascending
// slots using it, its file name, and the query that produced it.
type Card struct {
	ID    string `xml:"id"`
	Slots string `xml:"slots"`
	Name  string `xml:"name"`
	Query string `xml:"query"`
}

// GenerateXML serializes the project to the XML order format. Images equal
// to the project cardback are not listed per-slot; the cardback is emitted
// once in its own element.
func GenerateXML(p *project.Project, metadata map[string]model.CardRecord, details OrderDetails) ([]byte, error) {
	order := Order{
		Details: Details{
			Quantity: p.Size(),
			Bracket:  BracketFor(p.Size()),
			Stock:    details.Stock,
			Foil:     details.Foil,
		},
		Cardback: p.Cardback(),
	}
	order.Fronts = groupFace(p, model.FaceFront, metadata)
	order.Backs = groupFace(p, model.FaceBack, metadata)

	out, err := xml.MarshalIndent(order, "", "    ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// groupFace collects one face's selected images, grouped by identifier.
// Returns nil when the face has no entries so the element is omitted.
func groupFace(p *project.Project, face model.Face, metadata map[string]model.CardRecord) *FaceEl {
	slotsByID := make(map[string][]int)
	queryByID := make(map[string]string)
	for slot := range p.Slots() {
		member := p.Member(face, slot)
		if member == nil || member.SelectedImage == "" || member.SelectedImage == p.Cardback() {
			continue
		}
		id := member.SelectedImage
		slotsByID[id] = append(slotsByID[id], slot)
		if _, ok := queryByID[id]; !ok {
			queryByID[id] = exportQuery(member, metadata[id])
		}
	}
	if len(slotsByID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(slotsByID))
	for id := range slotsByID {
		ids = append(ids, id)
	}
	// Deterministic card order: by first slot using the image.
	sort.Slice(ids, func(i, j int) bool {
		return slotsByID[ids[i]][0] < slotsByID[ids[j]][0]
	})

	el := &FaceEl{}
	for _, id := range ids {
		slots := slotsByID[id]
		sort.Ints(slots)
		record := metadata[id]
		el.Cards = append(el.Cards, Card{
			ID:    id,
			Slots: joinSlots(slots),
			Name:  fileName(record),
			Query: queryByID[id],
		})
	}
	return el
}

// exportQuery returns the prefixed query string that produced a member's
// image. Members with no stored query (picked directly from a version
// picker) fall back to the metadata's own searchable name.
func exportQuery(member *model.ProjectMember, record model.CardRecord) string {
	if member.Query != nil && member.Query.Text != "" {
		return member.Query.Type.Prefix() + member.Query.Text
	}
	return record.SearchName
}

func fileName(record model.CardRecord) string {
	if record.Name == "" {
		return ""
	}
	return fmt.Sprintf("%s.%s", record.Name, record.Extension)
}

func joinSlots(slots []int) string {
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = fmt.Sprintf("%d", slot)
	}
	return strings.Join(parts, ",")
}
