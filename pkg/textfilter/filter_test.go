package textfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfanityFilter_FilterText(t *testing.T) {
	filter := NewProfanityFilter()

	tests := []struct {
		input string
		want  string
	}{
		{"The goblin spits: damn you, traveler.", "The goblin spits: dang you, traveler."},
		{"HELL WAITS BELOW", "HECK WAITS BELOW"},
		{"Hell take the king!", "Heck take the king!"},
		{"The sergeant bellows, DaMn it all.", "The sergeant bellows, DaNg it all."},
		{"The bastards fled into the marsh.", "The jerks fled into the marsh."},
		{"What the hells happened here?", "What the hecks happened here?"},
		{"He calls you a douchebag.", "He calls you a jerk."},
		{"BULLSHIT!", "BALONEY!"},
		{"The priestess hisses, whore of the crown.", "The priestess hisses, [censored] of the crown."},
		// Substrings inside longer words are left alone.
		{"A classical bard recites passages by the hearth.", "A classical bard recites passages by the hearth."},
		{"Shellfish crackle over the fire.", "Shellfish crackle over the fire."},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.FilterText(tt.input))
		})
	}
}

func TestProfanityFilter_ContainsProfanity(t *testing.T) {
	filter := NewProfanityFilter()

	assert.True(t, filter.ContainsProfanity("Crap, the bridge is out."))
	assert.True(t, filter.ContainsProfanity("These DAMNS are everywhere"))
	assert.False(t, filter.ContainsProfanity("The assassin waits in the shadows."))
	assert.False(t, filter.ContainsProfanity(""))

	cleaned := filter.FilterText("Damn this hell of a road.")
	assert.False(t, filter.ContainsProfanity(cleaned))
}

func TestShouldFilterContent(t *testing.T) {
	tests := []struct {
		rating string
		want   bool
	}{
		{"G", true},
		{"PG", true},
		{" pg ", true},
		{"PG13", false},
		{"R", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ShouldFilterContent(tt.rating); got != tt.want {
			t.Errorf("ShouldFilterContent(%q) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
