package metadata

import (
	"reflect"
	"testing"
)

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Chemistry; Textbook; Acid", []string{"Chemistry", "Textbook", "Acid"}},
		{"Chemistry;;  ; Textbook", []string{"Chemistry", "Textbook"}},
		{"Single", []string{"Single"}},
		{"", nil},
		{"  ;  ", nil},
	}

	for _, tt := range tests {
		if got := SplitKeywords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitKeywords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJoinKeywords(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"Chemistry", "Textbook"}, "Chemistry; Textbook"},
		{[]string{"Chemistry", "", "Chemistry", "Acid"}, "Chemistry; Acid"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := JoinKeywords(tt.in); got != tt.want {
			t.Errorf("JoinKeywords(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	tags := []string{"Organic Chemistry", "Textbook", "Acid"}
	if got := SplitKeywords(JoinKeywords(tags)); !reflect.DeepEqual(got, tags) {
		t.Errorf("round trip = %v, want %v", got, tags)
	}
}

func TestLookup(t *testing.T) {
	fields := map[string]string{
		"Keywords":  "bare",
		"PDF:DOI":   "10.1234/x",
		"XMP:Title": "Full Title",
	}

	if v, ok := Lookup(fields, "XMP-pdf:Keywords"); !ok || v != "bare" {
		t.Errorf("Lookup should fall back to the bare tag name, got %q, %v", v, ok)
	}
	if v, ok := Lookup(fields, "PDF:DOI"); !ok || v != "10.1234/x" {
		t.Errorf("Lookup exact match = %q, %v", v, ok)
	}
	if _, ok := Lookup(fields, "PDF:ISBN"); ok {
		t.Error("Lookup should miss absent fields")
	}
}

func TestParseUserTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "multiline output",
			in: "kMDItemUserTags = (\n    \"Organic Chemistry\",\n    Textbook\n)\n",
			want: []string{"Organic Chemistry", "Textbook"},
		},
		{
			name: "single line",
			in:   `kMDItemUserTags = ("Red", Important)`,
			want: []string{"Red", "Important"},
		},
		{
			name: "null result",
			in:   "kMDItemUserTags = (null)\n",
			want: nil,
		},
		{
			name: "empty list",
			in:   "kMDItemUserTags = ()\n",
			want: nil,
		},
		{
			name: "no assignment",
			in:   "kMDItemUserTags: could not find",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseUserTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseUserTags(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
