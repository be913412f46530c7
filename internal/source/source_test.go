package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantText  string
	}{
		{"simple paragraph", "<p>Hello world</p>", "", "Hello world"},
		{"paragraphs", "<div><p>Hello</p><p>World</p></div>", "", "Hello\nWorld"},
		{"nested tags", "<p><strong>Bold</strong> and <em>italic</em></p>", "", "Bold and italic"},
		{"title and script", "<html><head><title>Knee </title><script>var x;</script></head><body>ACL tear</body></html>", "Knee", "ACL tear"},
		{"plain text", "No HTML here", "", "No HTML here"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, text := StripHTML(tt.input)
			if title != tt.wantTitle || text != tt.wantText {
				t.Errorf("StripHTML() = (%q, %q), want (%q, %q)", title, text, tt.wantTitle, tt.wantText)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "Second document.")
	writeFile(t, filepath.Join(dir, "a.html"), "<title>First</title><p>First document.</p>")
	writeFile(t, filepath.Join(dir, ".hidden"), "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	docs, err := Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %+v", docs)
	}
	if docs[0] != (Document{ID: "a.html", Title: "First", Text: "First document."}) {
		t.Errorf("unexpected html document %+v", docs[0])
	}
	if docs[1] != (Document{ID: "b.txt", Title: "b.txt", Text: "Second document."}) {
		t.Errorf("unexpected text document %+v", docs[1])
	}
}

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	writeFile(t, path, `{"id":"d1","text":"One."}
not json

{"text":"Two."}
{"id":"d3","text":"  "}
`)
	docs, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %+v", docs)
	}
	if docs[0].ID != "d1" || docs[1].ID != "line-4" {
		t.Errorf("unexpected IDs %q, %q", docs[0].ID, docs[1].ID)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected an error for a missing input")
	}
}
