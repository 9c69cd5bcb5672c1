// Package resolver turns user-facing slot references into slot indices
// and faces. References look like "3" (front of slot 3), "3:front" or
// "3:back".
package resolver

import (
	"fmt"
	"strconv"
	"strings"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

// SlotRef is a resolved slot reference.
type SlotRef struct {
	Slot int
	Face model.Face
}

// Resolve parses a slot reference. size is the current project size;
// out-of-range indices are rejected.
func Resolve(ref string, size int) (SlotRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return SlotRef{}, apperr.InvalidField("slot", "empty slot reference")
	}

	indexPart := ref
	face := model.FaceFront
	if idx := strings.IndexByte(ref, ':'); idx >= 0 {
		indexPart = ref[:idx]
		facePart := strings.ToLower(strings.TrimSpace(ref[idx+1:]))
		switch facePart {
		case "front":
			face = model.FaceFront
		case "back":
			face = model.FaceBack
		default:
			return SlotRef{}, apperr.InvalidField("slot", fmt.Sprintf("unknown face %q (want front or back)", facePart))
		}
	}

	slot, err := strconv.Atoi(strings.TrimSpace(indexPart))
	if err != nil {
		return SlotRef{}, apperr.InvalidField("slot", fmt.Sprintf("invalid slot index %q", indexPart))
	}
	if slot < 0 || slot >= size {
		return SlotRef{}, apperr.SlotNotFound(slot)
	}

	return SlotRef{Slot: slot, Face: face}, nil
}
