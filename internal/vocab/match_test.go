package vocab

import (
	"reflect"
	"testing"
)

func terms(list ...string) Set {
	s := make(Set, len(list))
	for _, t := range list {
		s[t] = struct{}{}
	}
	return s
}

func TestNormalizeSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"organic_chemistry", "Organic Chemistry"},
		{"Physics", "Physics"},
		{"quantum mechanics", "Quantum Mechanics"},
		{"LINEAR_ALGEBRA", "Linear Algebra"},
	}

	for _, tt := range tests {
		if got := NormalizeSegment(tt.in); got != tt.want {
			t.Errorf("NormalizeSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("Chemistry", "Chemistry"); got != 1 {
		t.Errorf("Similarity of identical strings = %v, want 1", got)
	}
	if got := Similarity("", ""); got != 1 {
		t.Errorf("Similarity of empty strings = %v, want 1", got)
	}
	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("Similarity of disjoint strings = %v, want 0", got)
	}
	// One edit in nine characters
	if got := Similarity("Chemistry", "Chemistny"); got < 0.8 {
		t.Errorf("near-identical strings scored %v", got)
	}
}

func TestMatchTerms(t *testing.T) {
	vocabTerms := terms("Chemistry", "Organic Chemistry", "Physics", "Textbook")

	tests := []struct {
		name     string
		segments []string
		want     []string
	}{
		{
			name:     "exact match after normalization",
			segments: []string{"organic_chemistry"},
			want:     []string{"Organic Chemistry"},
		},
		{
			name:     "fuzzy match survives a typo",
			segments: []string{"Chemisty"},
			want:     []string{"Chemistry"},
		},
		{
			name:     "unmatched segment contributes nothing",
			segments: []string{"Unsorted Stuff"},
			want:     nil,
		},
		{
			name:     "segments keep path order and duplicates",
			segments: []string{"Physics", "physics"},
			want:     []string{"Physics", "Physics"},
		},
		{
			name:     "mixed",
			segments: []string{"Chemistry", "downloads", "organic_chemistry"},
			want:     []string{"Chemistry", "Organic Chemistry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchTerms(tt.segments, vocabTerms)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchTerms(%v) = %v, want %v", tt.segments, got, tt.want)
			}
		})
	}
}

func TestClosestTerm_BelowCutoff(t *testing.T) {
	if _, ok := ClosestTerm("Zoology", terms("Chemistry", "Physics")); ok {
		t.Error("ClosestTerm should reject matches below the cutoff")
	}
}
