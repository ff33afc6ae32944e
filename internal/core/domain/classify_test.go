package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single category",
			text: "A mindfulness practice for busy mornings",
			want: []string{"psychology"},
		},
		{
			name: "multiple categories sorted by name",
			text: "How this founder uses AI to teach investing",
			want: []string{"finance", "founder_story", "tech"},
		},
		{
			name: "case insensitive",
			text: "CRYPTO Markets Today",
			want: []string{"finance"},
		},
		{
			name: "substring over-match is accepted",
			text: "the artist's new exhibition",
			want: []string{"entertainment"},
		},
		{
			name: "no match falls back to general",
			text: "seasonal pumpkin harvest notes",
			want: []string{CategoryGeneral},
		},
		{
			name: "empty text is general",
			text: "",
			want: []string{CategoryGeneral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}
