package termhood

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/nested"
	"github.com/cognicore/termex/pkg/termex/normalize"
)

func TestCValue(t *testing.T) {
	got := CValue(3, 10, 2, 4)
	if math.Abs(got-math.Log(3)*8) > 1e-9 || math.Abs(got-8.789) > 1e-3 {
		t.Errorf("CValue(3, 10, 2, 4) = %f, want ~8.789", got)
	}
	if got := CValue(2, 5, 0, 7); math.Abs(got-math.Log(2)*5) > 1e-9 {
		t.Errorf("nesting correction applied without supersets: %f", got)
	}
	if got := CValue(1, 50, 0, 0); got != 0 {
		t.Errorf("single-token term should score 0, got %f", got)
	}
}

func TestCValueMonotonic(t *testing.T) {
	for length := 2; length <= 6; length++ {
		for s := 0; s <= 3; s++ {
			prev := math.Inf(-1)
			for f := 1; f <= 20; f++ {
				c := CValue(length, f, s, 4)
				if c <= prev {
					t.Fatalf("CValue not increasing in f at length=%d s=%d f=%d", length, s, f)
				}
				prev = c
			}
		}
	}
}

func TestIDF(t *testing.T) {
	if got := IDF(100, 10); math.Abs(got-1) > 1e-9 {
		t.Errorf("IDF(100, 10) = %f", got)
	}
	if got := IDF(10, 0); got != 0 {
		t.Errorf("IDF with df 0 = %f", got)
	}
}

func candidates(phrase, key string, n int) []candidate.Candidate {
	out := make([]candidate.Candidate, n)
	for i := range out {
		out[i] = candidate.Candidate{Phrase: phrase, Length: len(strings.Fields(phrase)), Key: key}
	}
	return out
}

func score(t *testing.T, set *candidate.Set, fmin int, cmin float64) []Record {
	t.Helper()
	terms := normalize.Select(set.KeyFrequency())
	g, err := nested.Build(context.Background(), terms, 2)
	if err != nil {
		t.Fatal(err)
	}
	return NewScorer(fmin, cmin, nil).Score(set, terms, g)
}

func TestScore(t *testing.T) {
	set := candidate.NewSet(candidates("retinoic acid receptor", "acid receptor retinoic", 3)...)
	set.Add(candidates("retinoic acid", "acid retinoic", 3)...)
	set.Add(candidates("Retinoic acid", "acid retinoic", 1)...)
	set.Add(candidates("blood pressure", "blood pressur", 2)...)

	records := score(t, set, 2, 1)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %+v", records)
	}

	outer := records[0]
	if outer.ID != 1 || outer.Expanded != "acid receptor retinoic" || outer.F != 3 || outer.Supersets != 0 {
		t.Errorf("unexpected outer record %+v", outer)
	}
	inner := records[1]
	if inner.ID != 2 || inner.Standalone != 4 || inner.Nested != 3 || inner.Supersets != 1 || inner.F != 7 {
		t.Errorf("unexpected inner record %+v", inner)
	}
	if want := math.Log(2) * 4; math.Abs(inner.CValue-want) > 1e-9 {
		t.Errorf("inner CValue = %f, want %f", inner.CValue, want)
	}
	if len(inner.Variants) != 1 || inner.Variants[0] != (Variant{Text: "retinoic acid", Frequency: 4}) {
		t.Errorf("variants should merge case: %+v", inner.Variants)
	}
}

func TestScoreDropsSingleRareVariant(t *testing.T) {
	set := candidate.NewSet(candidates("retinoic acid receptor", "acid receptor retinoic", 3)...)
	set.Add(candidates("retinoic acid", "acid retinoic", 2)...)

	records := score(t, set, 2, 1)
	if len(records) != 1 || records[0].Expanded != "acid receptor retinoic" {
		t.Errorf("nesting-inflated fragment should be dropped, got %+v", records)
	}
}

func TestRank(t *testing.T) {
	records := []Record{
		{ID: 1, Expanded: "a b", CValue: 4},
		{ID: 2, Expanded: "c d", CValue: 3},
		{ID: 3, Expanded: "e f", CValue: 9},
		{ID: 4, Expanded: "g h", CValue: 9},
	}
	records = ApplyDocumentFrequency(records, map[int]int{1: 1, 2: 1, 3: 10, 4: 10}, 100)
	ranked := Rank(records)

	var ids []int
	for _, r := range ranked {
		ids = append(ids, r.ID)
	}
	want := []int{3, 4, 1, 2}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Rank() ids = %v, want %v", ids, want)
		}
	}
}

func TestApplyDocumentFrequencyDropsUnseen(t *testing.T) {
	records := []Record{{ID: 1}, {ID: 2}}
	out := ApplyDocumentFrequency(records, map[int]int{2: 3}, 3)
	if len(out) != 1 || out[0].ID != 2 || out[0].DF != 3 || out[0].IDF != 0 {
		t.Errorf("unexpected records %+v", out)
	}
}
