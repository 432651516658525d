package textutil

import "testing"

func TestFoldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pedro Almodóvar", "pedro almodovar"},
		{"  Charlie  Chaplin ", "charlie chaplin"},
		{"Jean-Luc Godard", "jeanluc godard"},
		{"", ""},
		{"Bong Joon-ho", "bong joonho"},
	}
	for _, tt := range tests {
		if got := FoldName(tt.in); got != tt.want {
			t.Errorf("FoldName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeForComparison(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fast & Furious", "fastandfurious"},
		{"Amélie", "amelie"},
		{"2001: A Space Odyssey", "2001aspaceodyssey"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeForComparison(tt.in); got != tt.want {
			t.Errorf("NormalizeForComparison(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSharesSignificantWord(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Killer of Sheep", "Killer's Kiss", true},
		{"Modern Times", "City Lights", false},
		{"The Red Shoes", "Red Desert", true},
		{"Up", "Up", false}, // too short to be significant
		{"", "Jaws", false},
	}
	for _, tt := range tests {
		if got := SharesSignificantWord(tt.a, tt.b); got != tt.want {
			t.Errorf("SharesSignificantWord(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Modern Times", "modern-times"},
		{"Paris, Texas", "paris-texas"},
		{"WALL·E", "wall-e"},
		{"Amélie", "amelie"},
		{"8½", "8"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
