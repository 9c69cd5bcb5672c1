// Package project holds the in-memory project state: an ordered, gapless
// array of slots plus the project-wide cardback. All mutation goes through
// methods here so the reconciler and services see a single consistent view.
package project

import (
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/query"
)

// Project is the ordered slot array and project-wide cardback selection.
// Slot indices are always 0..Size()-1 with no gaps; deleting a slot shifts
// later slots down.
type Project struct {
	slots    []model.Slot
	cardback string
}

// New creates an empty project.
func New() *Project {
	return &Project{}
}

// FromSlots creates a project from existing slots, e.g. a loaded file.
// Slots beyond MaxProjectSize are dropped.
func FromSlots(slots []model.Slot, cardback string) *Project {
	p := &Project{cardback: cardback}
	p.AddMembers(slots)
	return p
}

// Size returns the number of slots.
func (p *Project) Size() int {
	return len(p.slots)
}

// Slots exposes the slot array for read-only iteration. Callers must not
// reorder or resize it; mutation goes through Project methods.
func (p *Project) Slots() []model.Slot {
	return p.slots
}

// Cardback returns the project-wide default back image, or "".
func (p *Project) Cardback() string {
	return p.cardback
}

// SetCardback sets the project-wide default back image.
func (p *Project) SetCardback(image string) {
	p.cardback = image
}

// Member returns the member at (slot, face), or nil if the slot is out of
// range or the face is unset.
func (p *Project) Member(face model.Face, slot int) *model.ProjectMember {
	if slot < 0 || slot >= len(p.slots) {
		return nil
	}
	return p.slots[slot].Member(face)
}

// AddMembers appends new slots, truncating to respect MaxProjectSize.
// Overflow is dropped without error; callers that care (imports) compare
// the returned count of slots actually added against what they offered.
func (p *Project) AddMembers(slots []model.Slot) int {
	room := model.MaxProjectSize - len(p.slots)
	if room <= 0 {
		return 0
	}
	if len(slots) > room {
		slots = slots[:room]
	}
	p.slots = append(p.slots, slots...)
	return len(slots)
}

// DeleteSlot removes the slot at the given index, shifting later slots
// down by one. Out-of-range indices are a no-op; interactive callers
// validate first so they can report the miss.
func (p *Project) DeleteSlot(slot int) {
	if slot < 0 || slot >= len(p.slots) {
		return
	}
	p.slots = append(p.slots[:slot], p.slots[slot+1:]...)
}

// SetSelectedImage sets the selected image at (slot, face), creating a
// queryless member if the face is unset. Out-of-range slots are a no-op.
func (p *Project) SetSelectedImage(face model.Face, slot int, image string) {
	if slot < 0 || slot >= len(p.slots) {
		return
	}
	member := p.slots[slot].Member(face)
	if member == nil {
		member = &model.ProjectMember{}
		p.slots[slot].SetMember(face, member)
	}
	member.SelectedImage = image
}

// SetQuery replaces the query at (slot, face), creating the member if the
// face is unset. Out-of-range slots are a no-op.
func (p *Project) SetQuery(face model.Face, slot int, q *model.SearchQuery) {
	if slot < 0 || slot >= len(p.slots) {
		return
	}
	member := p.slots[slot].Member(face)
	if member == nil {
		member = &model.ProjectMember{}
		p.slots[slot].SetMember(face, member)
	}
	member.Query = q
}

// BulkSetSelectedImage replaces newImage for every member of the given
// face whose selected image equals currentImage, and returns how many
// members changed. Used when a shared image (e.g. the common cardback)
// changes and every slot using it should follow.
func (p *Project) BulkSetSelectedImage(face model.Face, currentImage, newImage string) int {
	changed := 0
	for i := range p.slots {
		member := p.slots[i].Member(face)
		if member != nil && member.SelectedImage == currentImage {
			member.SelectedImage = newImage
			changed++
		}
	}
	return changed
}

// ToggleMemberSelection flips the multi-select flag at (slot, face).
// Unset members and out-of-range slots are a no-op.
func (p *Project) ToggleMemberSelection(face model.Face, slot int) {
	member := p.Member(face, slot)
	if member == nil {
		return
	}
	member.Selected = !member.Selected
}

// BulkSetMemberSelection propagates the multi-select flag at (slot, face)
// to every other member of the same face with an identical query (text and
// card type both): "select all visually-identical slots".
func (p *Project) BulkSetMemberSelection(face model.Face, slot int) {
	source := p.Member(face, slot)
	if source == nil {
		return
	}
	for i := range p.slots {
		member := p.slots[i].Member(face)
		if member != nil && member.Query.Equal(source.Query) {
			member.Selected = source.Selected
		}
	}
}

// SlotsFromLines expands parsed decklist lines into slots, repeating each
// line by its quantity. Every copy gets its own member pointers.
func SlotsFromLines(lines []query.ParsedLine) []model.Slot {
	var slots []model.Slot
	for _, line := range lines {
		if line.Empty() && line.FrontImage == "" && line.BackImage == "" {
			continue
		}
		template := model.Slot{}
		if line.Front != nil || line.FrontImage != "" {
			template.Front = &model.ProjectMember{Query: line.Front, SelectedImage: line.FrontImage}
		}
		if line.Back != nil || line.BackImage != "" {
			template.Back = &model.ProjectMember{Query: line.Back, SelectedImage: line.BackImage}
		} else {
			// No explicit back: a queryless cardback member, resolved to
			// the shared cardback during repair.
			template.Back = &model.ProjectMember{Query: &model.SearchQuery{Type: model.TypeCardback}}
		}
		for i := 0; i < line.Quantity; i++ {
			slots = append(slots, template.Clone())
		}
	}
	return slots
}
