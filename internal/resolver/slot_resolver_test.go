package resolver

import (
	"testing"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		ref  string
		want SlotRef
	}{
		{"3", SlotRef{Slot: 3, Face: model.FaceFront}},
		{"0:front", SlotRef{Slot: 0, Face: model.FaceFront}},
		{"7:back", SlotRef{Slot: 7, Face: model.FaceBack}},
		{" 2 : BACK ", SlotRef{Slot: 2, Face: model.FaceBack}},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.ref, 10)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %+v, want %+v", tt.ref, got, tt.want)
		}
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"empty", ""},
		{"non-numeric", "abc"},
		{"unknown face", "3:middle"},
		{"missing index", ":front"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.ref, 10); !apperr.IsValidationError(err) {
				t.Errorf("Resolve(%q) = %v, want validation error", tt.ref, err)
			}
		})
	}
}

func TestResolve_OutOfRange(t *testing.T) {
	for _, ref := range []string{"10", "-1", "99:back"} {
		if _, err := Resolve(ref, 10); !apperr.IsNotFound(err) {
			t.Errorf("Resolve(%q) = %v, want not-found error", ref, err)
		}
	}
}
