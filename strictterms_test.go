package coursesync

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStrictTerms_Missing(t *testing.T) {
	terms, err := LoadStrictTerms(filepath.Join(t.TempDir(), "strict_words.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(terms) != 0 {
		t.Errorf("expected empty table, got %v", terms)
	}
}

func TestLoadStrictTerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strict_words.json")
	os.WriteFile(path, []byte(`{"системное мышление": "systems thinking", "агентность": "agency"}`), 0644)

	terms, err := LoadStrictTerms(path)
	if err != nil {
		t.Fatalf("LoadStrictTerms failed: %v", err)
	}
	if terms["агентность"] != "agency" || len(terms) != 2 {
		t.Errorf("unexpected terms: %v", terms)
	}
}

func TestLoadStrictTerms_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strict_words.json")
	os.WriteFile(path, []byte(`{"broken"`), 0644)

	if _, err := LoadStrictTerms(path); err == nil {
		t.Error("expected parse error for malformed file")
	}
}
