package cli

import (
	"strings"
	"testing"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

func TestRenderMember(t *testing.T) {
	tests := []struct {
		name   string
		member *model.ProjectMember
		want   []string
	}{
		{
			name:   "nil member",
			member: nil,
			want:   []string{"(empty)"},
		},
		{
			name:   "query pending",
			member: &model.ProjectMember{Query: &model.SearchQuery{Text: "island", Type: model.TypeCard}},
			want:   []string{"island", "pending"},
		},
		{
			name: "token query with image",
			member: &model.ProjectMember{
				Query:         &model.SearchQuery{Text: "goblin", Type: model.TypeToken},
				SelectedImage: "idGoblin",
			},
			want: []string{"t:goblin", "idGoblin"},
		},
		{
			name:   "no query",
			member: &model.ProjectMember{SelectedImage: "idCustom"},
			want:   []string{"(no query)", "idCustom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderMember(tt.member)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("renderMember() = %q, missing %q", got, want)
				}
			}
		})
	}
}
