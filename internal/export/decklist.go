package export

import (
	"fmt"
	"strings"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/project"
)

// GenerateDecklist renders the project as plain decklist text: one
// "{quantity}x {name}" line per distinct front. Only plain-card fronts are
// listed — tokens and cardbacks are not part of a decklist. A slot whose
// back is a plain card different from the project default extends its line
// with the face separator and the back's name, so "these N copies have a
// nonstandard back" survives the round trip.
func GenerateDecklist(p *project.Project, metadata map[string]model.CardRecord, faceSeparator string) string {
	type entry struct {
		line  string
		count int
	}
	var order []string
	counts := make(map[string]*entry)

	for slot := range p.Slots() {
		front := p.Member(model.FaceFront, slot)
		if front == nil || front.Query == nil || front.Query.Type != model.TypeCard {
			continue
		}
		name := memberName(front, metadata)
		if name == "" {
			continue
		}

		line := name
		if backName := nonstandardBackName(p, slot, metadata); backName != "" {
			line = fmt.Sprintf("%s %s %s", name, faceSeparator, backName)
		}

		if e, ok := counts[line]; ok {
			e.count++
		} else {
			counts[line] = &entry{line: line, count: 1}
			order = append(order, line)
		}
	}

	var b strings.Builder
	for _, line := range order {
		fmt.Fprintf(&b, "%dx %s\n", counts[line].count, line)
	}
	return b.String()
}

// nonstandardBackName returns the name of a slot's back when it is a plain
// card different from the project default, or "".
func nonstandardBackName(p *project.Project, slot int, metadata map[string]model.CardRecord) string {
	back := p.Member(model.FaceBack, slot)
	if back == nil || back.Query == nil || back.Query.Type != model.TypeCard {
		return ""
	}
	if back.SelectedImage != "" && back.SelectedImage == p.Cardback() {
		return ""
	}
	return memberName(back, metadata)
}

// memberName prefers the selected image's metadata name and falls back to
// the member's query text.
func memberName(member *model.ProjectMember, metadata map[string]model.CardRecord) string {
	if member.SelectedImage != "" {
		if record, ok := metadata[member.SelectedImage]; ok && record.Name != "" {
			return record.Name
		}
	}
	if member.Query != nil {
		return member.Query.Text
	}
	return ""
}
