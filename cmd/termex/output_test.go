package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/termex/pkg/termex"
	"github.com/cognicore/termex/pkg/termex/corpus"
	"github.com/cognicore/termex/pkg/termex/occurrence"
	"github.com/cognicore/termex/pkg/termex/store"
)

func TestWriteTerminology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terminology.csv")
	rows := []termex.Row{
		{TermID: 1, Variant: "retinoic acid receptor", CValue: 3.2958, F: 3, DF: 2, Score: 0.99214},
		{TermID: 1, Variant: "rar", CValue: 3.2958, F: 2, DF: 2, Score: 0.99214},
	}
	if err := writeTerminology(path, rows); err != nil {
		t.Fatalf("writeTerminology: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "id\tvariant\tc\tf\tdf\tc_idf\n" +
		"1\tretinoic acid receptor\t3.2958\t3\t2\t0.992\n" +
		"1\trar\t3.2958\t2\t2\t0.992\n"
	if string(data) != want {
		t.Errorf("got\n%s\nwant\n%s", data, want)
	}
}

func TestWriteAnnotationsUsesCharacterOffsets(t *testing.T) {
	c := &corpus.Corpus{Documents: []corpus.Document{
		{ID: "a", Text: "Über retinoic acid"},
		{ID: "b", Text: "nothing here"},
	}}
	labels := []occurrence.Label{{DocID: "a", Start: 6, Length: 13, TermID: 4}}
	path := filepath.Join(t.TempDir(), "annotations.json")
	if err := writeAnnotations(path, c, labels, map[string]string{"a": "First"}); err != nil {
		t.Fatalf("writeAnnotations: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []annotation
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got))
	}
	if got[0].Title != "First" || got[1].Title != "b" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
	ents := got[0].Ents
	if len(ents) != 1 || ents[0].Start != 5 || ents[0].End != 18 || ents[0].Label != "4" {
		t.Errorf("ents = %+v", ents)
	}
	if text := []rune(got[0].Text); string(text[ents[0].Start:ents[0].End]) != "retinoic acid" {
		t.Errorf("entity covers %q", string(text[ents[0].Start:ents[0].End]))
	}
	if got[1].Ents == nil || len(got[1].Ents) != 0 {
		t.Errorf("expected empty ents for b, got %+v", got[1].Ents)
	}
	if !strings.Contains(string(data), `"settings": {}`) {
		t.Errorf("settings object missing: %s", data)
	}
}

func TestRankStored(t *testing.T) {
	terms := []store.Term{
		{ID: 1, Expanded: "a b", CValue: 2, IDF: 1},
		{ID: 2, Expanded: "c d", CValue: 4, IDF: 1, Variants: []store.Variant{{Text: "c d", Frequency: 2}}},
		{ID: 3, Expanded: "e f", CValue: 4, IDF: 0.5},
	}
	ranked := rankStored(terms)
	if ranked[0].ID != 2 || ranked[1].ID != 3 || ranked[2].ID != 1 {
		t.Errorf("order = %d %d %d", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
	if len(ranked[0].Variants) != 1 || ranked[0].Variants[0].Frequency != 2 {
		t.Errorf("variants = %+v", ranked[0].Variants)
	}
}
