package vocab

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testVocab() Vocabulary {
	return Vocabulary{
		Disciplines: map[string]Discipline{
			"Chemistry": {Subfields: map[string][]string{
				"Organic Chemistry": {"Stereochemistry", "Synthesis"},
			}},
		},
		DocumentTypes: []string{"Textbook", "Article"},
		Levels:        []string{"Introductory", "Advanced"},
		Keywords: map[string][]string{
			"Chemistry": {"acid", "Base"},
		},
	}
}

func TestFlatten(t *testing.T) {
	idx := testVocab().Flatten()

	for _, term := range []string{"Chemistry", "Organic Chemistry", "Stereochemistry", "Synthesis"} {
		if !idx.DisciplineTerms.Contains(term) {
			t.Errorf("DisciplineTerms missing %q", term)
		}
	}
	if !idx.DocumentTypes.Contains("Textbook") || !idx.DocumentTypes.Contains("Article") {
		t.Errorf("DocumentTypes = %v, missing entries", idx.DocumentTypes.Terms())
	}
	if !idx.Levels.Contains("Advanced") {
		t.Errorf("Levels missing Advanced")
	}

	// Keywords are lowercased
	if !idx.Keywords.Contains("base") {
		t.Errorf("Keywords should contain lowercased %q, got %v", "base", idx.Keywords.Terms())
	}
	if idx.Keywords.Contains("Base") {
		t.Error("Keywords should not contain original-case entries")
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	v := testVocab()
	a := v.Flatten()
	b := v.Flatten()

	if !reflect.DeepEqual(a.DisciplineTerms.Terms(), b.DisciplineTerms.Terms()) {
		t.Error("Flatten() discipline terms differ across calls")
	}
	if !reflect.DeepEqual(a.Keywords.Terms(), b.Keywords.Terms()) {
		t.Error("Flatten() keywords differ across calls")
	}
}

func TestMerge_ListSectionsUnioned(t *testing.T) {
	def := testVocab()
	custom := Vocabulary{
		DocumentTypes: []string{"Article", "Thesis"},
		Levels:        []string{"Graduate"},
	}

	merged := Merge(def, custom)

	wantTypes := []string{"Article", "Textbook", "Thesis"}
	if !reflect.DeepEqual(merged.DocumentTypes, wantTypes) {
		t.Errorf("DocumentTypes = %v, want %v", merged.DocumentTypes, wantTypes)
	}
	wantLevels := []string{"Advanced", "Graduate", "Introductory"}
	if !reflect.DeepEqual(merged.Levels, wantLevels) {
		t.Errorf("Levels = %v, want %v", merged.Levels, wantLevels)
	}
}

func TestMerge_DisciplinesOverriddenByKey(t *testing.T) {
	def := testVocab()
	custom := Vocabulary{
		Disciplines: map[string]Discipline{
			"Chemistry": {Subfields: map[string][]string{
				"Biochemistry": {"Enzymology"},
			}},
			"Geology": {Subfields: map[string][]string{}},
		},
	}

	merged := Merge(def, custom)

	// Custom Chemistry replaces the default one wholesale.
	chem := merged.Disciplines["Chemistry"]
	if _, ok := chem.Subfields["Organic Chemistry"]; ok {
		t.Error("custom Chemistry should override the default key, not merge into it")
	}
	if _, ok := chem.Subfields["Biochemistry"]; !ok {
		t.Error("merged Chemistry should carry the custom subfields")
	}
	if _, ok := merged.Disciplines["Geology"]; !ok {
		t.Error("unrelated custom disciplines should be added")
	}
}

func TestMerge_KeywordGroupsUnionedPerKey(t *testing.T) {
	def := testVocab()
	custom := Vocabulary{
		Keywords: map[string][]string{
			"Chemistry": {"acid", "buffer"},
			"Physics":   {"entropy"},
		},
	}

	merged := Merge(def, custom)

	want := []string{"Base", "acid", "buffer"}
	if !reflect.DeepEqual(merged.Keywords["Chemistry"], want) {
		t.Errorf("Keywords[Chemistry] = %v, want %v", merged.Keywords["Chemistry"], want)
	}
	if !reflect.DeepEqual(merged.Keywords["Physics"], []string{"entropy"}) {
		t.Errorf("Keywords[Physics] = %v, want [entropy]", merged.Keywords["Physics"])
	}
}

func TestDefault(t *testing.T) {
	v, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(v.Disciplines) == 0 || len(v.DocumentTypes) == 0 || len(v.Levels) == 0 || len(v.Keywords) == 0 {
		t.Error("embedded default vocabulary should populate all four sections")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	yamlPath := filepath.Join(tmpDir, "vocab.yaml")
	yamlContent := "Document_Types:\n  - Textbook\nLevels: []\nDisciplines: {}\nKeywords: {}\n"
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !reflect.DeepEqual(v.DocumentTypes, []string{"Textbook"}) {
		t.Errorf("DocumentTypes = %v, want [Textbook]", v.DocumentTypes)
	}

	jsonPath := filepath.Join(tmpDir, "vocab.json")
	if err := os.WriteFile(jsonPath, []byte(`{"Document_Types":["Article"]}`), 0644); err != nil {
		t.Fatal(err)
	}
	v, err = LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !reflect.DeepEqual(v.DocumentTypes, []string{"Article"}) {
		t.Errorf("DocumentTypes = %v, want [Article]", v.DocumentTypes)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	v, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() on missing file should not error, got %v", err)
	}
	if len(v.DocumentTypes) != 0 {
		t.Error("missing vocabulary file should load as empty")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("Document_Types: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should fail on malformed vocabulary")
	}
}
