package stoplist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListBasic(t *testing.T) {
	l := New([]string{"the", "A", " and "})

	if !l.IsStop("the") {
		t.Error("'the' should be a stopword")
	}
	if !l.IsStop("THE") {
		t.Error("lookup should be case-insensitive")
	}
	if !l.IsStop("a") || !l.IsStop("and") {
		t.Error("words should be lowercased and trimmed on insert")
	}
	if l.IsStop("receptor") {
		t.Error("'receptor' should not be a stopword")
	}
}

func TestListAll(t *testing.T) {
	l := New([]string{"zebra", "apple", "mango", ""})

	all := l.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 stopwords, got %d", len(all))
	}
	if all[0] != "apple" || all[1] != "mango" || all[2] != "zebra" {
		t.Errorf("expected sorted [apple mango zebra], got %v", all)
	}
}

func TestNilListIsEmpty(t *testing.T) {
	var l *List
	if l.IsStop("the") {
		t.Error("nil list should not report stopwords")
	}
}

func TestDefault(t *testing.T) {
	l := Default()
	for _, w := range []string{"the", "of", "and", "'s"} {
		if !l.IsStop(w) {
			t.Errorf("default list should contain %q", w)
		}
	}
	if l.IsStop("ligament") {
		t.Error("default list should not contain content words")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stoplist.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  - the\n  - of\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if l.Len() != 2 || !l.IsStop("of") {
		t.Errorf("unexpected list %v", l.All())
	}
}

func TestLoadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stoplist.txt")
	if err := os.WriteFile(path, []byte("the\n\nOf\nwith,extra\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 words, got %v", l.All())
	}
	if !l.IsStop("with") {
		t.Error("first CSV column should be used")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("/nonexistent/stoplist.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
