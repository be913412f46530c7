package normalize

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/termex/pkg/termex/candidate"
)

func TestSubstitutions(t *testing.T) {
	tests := []struct {
		name  string
		smin  float64
		vocab []string
		want  map[string]string
	}{
		{"spelling variant", DefaultSmin, []string{"tumour", "tumor", "growth"}, map[string]string{"tumour": "tumor"}},
		{"below threshold", DefaultSmin, []string{"fibre", "fiber"}, map[string]string{}},
		{"digits", 0.5, []string{"il2", "il3"}, map[string]string{}},
		{"length gap", 0.5, []string{"cell", "cellular"}, map[string]string{}},
		{"ligature", DefaultSmin, []string{"oestrogen", "estrogen"}, map[string]string{"oestrogen": "estrogen"}},
		{"second hop", 0.9, []string{"colour", "colors", "color"}, map[string]string{"colors": "color", "colour": "color"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTokenNormalizer(tt.smin, 2, nil).Substitutions(context.Background(), tt.vocab)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Substitutions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	freq := map[string]int{
		"blood pressur":  3,
		"heart rate":     1,
		"cardiovascular": 5,
		"bp x":           4,
		"Acl ligament":   4,
		"2 diabet type":  2,
	}
	got := Select(freq)
	var keys []string
	for _, term := range got {
		keys = append(keys, term.Key)
	}
	want := []string{"2 diabet type", "blood pressur"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Select() keys = %v, want %v", keys, want)
	}
}

func TestNormalizeMergesVariants(t *testing.T) {
	terms := Select(map[string]int{
		"brain tumour": 2,
		"brain tumor":  3,
		"tumor growth": 2,
	})
	tn := NewTermNormalizer(NewTokenNormalizer(DefaultSmin, 2, nil), 0, nil)
	out, err := tn.Normalize(context.Background(), terms)
	if err != nil {
		t.Fatal(err)
	}

	expanded := make(map[string]string)
	for _, term := range out.Terms {
		expanded[term.Key] = term.Expanded
	}
	if expanded["brain tumour"] != "brain tumor" || expanded["brain tumor"] != "brain tumor" {
		t.Errorf("variants not merged: %v", expanded)
	}
	if out.Passes != 2 {
		t.Errorf("expected a renaming pass and a confirming pass, got %d", out.Passes)
	}
	if out.Substitutions["tumour"] != "tumor" {
		t.Errorf("unexpected substitutions: %v", out.Substitutions)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	terms := Select(map[string]int{
		"colour chart":    2,
		"color chart":     2,
		"colors printer":  2,
		"estrogen level":  2,
		"oestrogen level": 2,
	})
	tn := NewTermNormalizer(NewTokenNormalizer(0.9, 2, nil), 3, nil)
	out, err := tn.Normalize(context.Background(), terms)
	if err != nil {
		t.Fatal(err)
	}
	for _, term := range out.Terms {
		again := strings.Join(Expand(strings.Fields(term.Expanded), out.Substitutions), " ")
		if again != term.Expanded {
			t.Errorf("normalizing %q twice gave %q", term.Expanded, again)
		}
	}

	second, err := tn.Normalize(context.Background(), out.Terms)
	if err != nil {
		t.Fatal(err)
	}
	for i, term := range second.Terms {
		if term.Expanded != out.Terms[i].Expanded {
			t.Errorf("second run changed %q to %q", out.Terms[i].Expanded, term.Expanded)
		}
	}
	if second.Passes != 1 {
		t.Errorf("already normalized terms should settle in one pass, got %d", second.Passes)
	}
}

func TestNormalizeNoChanges(t *testing.T) {
	terms := Select(map[string]int{"blood pressur": 2, "heart rate": 2})
	out, err := NewTermNormalizer(NewTokenNormalizer(DefaultSmin, 1, nil), 3, nil).Normalize(context.Background(), terms)
	if err != nil {
		t.Fatal(err)
	}
	if out.Passes != 1 || len(out.Substitutions) != 0 {
		t.Errorf("expected a single pass without substitutions, got %+v", out)
	}
}

func TestMergeTokenization(t *testing.T) {
	set := candidate.NewSet(
		candidate.Candidate{Phrase: "posterolateral corner", Length: 2, Key: "corner posterolater"},
		candidate.Candidate{Phrase: "postero lateral corner", Length: 3, Key: "corner later postero"},
		candidate.Candidate{Phrase: "lateral corner", Length: 2, Key: "corner later"},
	)
	if n := MergeTokenization(set); n != 1 {
		t.Fatalf("expected 1 rekeyed candidate, got %d", n)
	}
	if got := set.All()[0].Key; got != "corner later postero" {
		t.Errorf("Key = %q", got)
	}
	if log := set.Log(); len(log) != 1 || log[0].Reason != ReasonTokenization {
		t.Errorf("unexpected log: %+v", log)
	}
}

func TestMergeTokenizationRepeatedPhrases(t *testing.T) {
	var items []candidate.Candidate
	for i := 0; i < 3000; i++ {
		items = append(items,
			candidate.Candidate{Phrase: "posterolateral corner", Length: 2, Key: "corner posterolater"},
			candidate.Candidate{Phrase: "Postero lateral corner", Length: 3, Key: "corner later postero"},
		)
	}
	set := candidate.NewSet(items...)
	if n := MergeTokenization(set); n != 3000 {
		t.Fatalf("expected 3000 rekeyed candidates, got %d", n)
	}
	if freq := set.KeyFrequency(); len(freq) != 1 || freq["corner later postero"] != 6000 {
		t.Errorf("unexpected keys: %v", freq)
	}
	if log := set.Log(); len(log) != 1 || log[0].Count != 3000 {
		t.Errorf("unexpected log: %+v", log)
	}
}

func TestMergeHyphenation(t *testing.T) {
	set := candidate.NewSet(
		candidate.Candidate{Phrase: "IL-2 receptor", Key: "il-2 receptor"},
		candidate.Candidate{Phrase: "IL 2 receptor", Key: "2 il receptor"},
		candidate.Candidate{Phrase: "co-operation agreement", Key: "agreement co-oper"},
		candidate.Candidate{Phrase: "cooperation agreement", Key: "agreement cooper"},
	)
	MergeHyphenation(set)

	all := set.All()
	if all[0].Key != "2 il receptor" {
		t.Errorf("hyphenated phrase should take the spaced key, got %q", all[0].Key)
	}
	if all[3].Key != "agreement co-oper" {
		t.Errorf("closed phrase should take the hyphenated key, got %q", all[3].Key)
	}
}
