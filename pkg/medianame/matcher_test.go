package medianame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTitle(t *testing.T) {
	candidates := []string{"The Matrix", "The Matrix Reloaded", "Matrix Revolutions"}

	m := MatchTitle("The Matrix", candidates)
	assert.Equal(t, "The Matrix", m.Title)
	assert.GreaterOrEqual(t, m.Confidence, 95, "exact match should be near 100")
}

func TestMatchTitle_Normalization(t *testing.T) {
	m := MatchTitle("Leon The Professional", []string{"Léon: The Professional"})
	assert.Equal(t, "Léon: The Professional", m.Title)
	assert.GreaterOrEqual(t, m.Confidence, 90)
}

func TestMatchTitle_RomanNumerals(t *testing.T) {
	m := MatchTitle("Rocky 2", []string{"Rocky II", "Rocky"})
	assert.Equal(t, "Rocky II", m.Title)
}

func TestMatchTitle_NoCandidates(t *testing.T) {
	m := MatchTitle("Anything", nil)
	assert.Empty(t, m.Title)
	assert.Zero(t, m.Confidence)
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Matrix", "matrix"},
		{"Léon: The Professional", "leon professional"},
		{"Spider-Man", "spider man"},
		{"Fast & Furious", "fast and furious"},
		{"Rocky II", "rocky 2"},
	}

	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
