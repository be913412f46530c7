package acronym

import (
	"reflect"
	"testing"
)

func TestIsValidShortForm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"RAR", true},
		{"IL-2", true},
		{"NFκB", true},
		{"NF kappa B", true},
		{"mRNA", true},
		{"it", false},
		{"a", false},
		{"Abc", false},
		{"A'B", false},
		{"C++", false},
		{"ABCDEFGHIJ", false},
		{"-AB", false},
	}
	for _, tt := range tests {
		if got := IsValidShortForm(tt.in); got != tt.want {
			t.Errorf("IsValidShortForm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFoldGreek(t *testing.T) {
	if got := FoldGreek("NF kappa B"); got != "NF k B" {
		t.Errorf("FoldGreek = %q", got)
	}
	if got := FoldGreek("TNF-α"); got != "TNF-a" {
		t.Errorf("FoldGreek = %q", got)
	}
}

func TestBestLongForm(t *testing.T) {
	tests := []struct {
		short, text string
		want        string
		ok          bool
	}{
		{"RAR", "the retinoic acid receptor", "retinoic acid receptor", true},
		{"HRV", "we measured the heart rate variability", "heart rate variability", true},
		{"GC", "glucocorticoid", "glucocorticoid", true},
		{"XYZ", "retinoic acid", "", false},
	}
	for _, tt := range tests {
		got, ok := BestLongForm(tt.short, tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("BestLongForm(%q, %q) = %q, %v; want %q, %v", tt.short, tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchPair(t *testing.T) {
	if long, ok := MatchPair("RAR", "the retinoic acid receptor"); !ok || long != "retinoic acid receptor" {
		t.Errorf("MatchPair(RAR) = %q, %v", long, ok)
	}
	rejects := []struct {
		name, short, text string
	}{
		{"too short", "AB", "a bc"},
		{"too many tokens", "AB", "alpha and then the other big thing"},
		{"no alignment", "QQ", "retinoic acid receptor"},
	}
	for _, tt := range rejects {
		if long, ok := MatchPair(tt.short, tt.text); ok {
			t.Errorf("%s: expected rejection, got %q", tt.name, long)
		}
	}
}

func TestExtractPairs(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []Pair
	}{
		{
			"long form first",
			"the retinoic acid receptor (RAR) mediates signaling",
			[]Pair{{Short: "RAR", Long: "retinoic acid receptor"}},
		},
		{
			"short form first",
			"The RAR (retinoic acid receptor) binds DNA",
			[]Pair{{Short: "RAR", Long: "retinoic acid receptor"}},
		},
		{
			"clause boundary",
			"In short, heart rate variability (HRV) was low, and blood pressure (BP) was high",
			[]Pair{
				{Short: "HRV", Long: "heart rate variability"},
				{Short: "BP", Long: "blood pressure"},
			},
		},
		{
			"lowercase candidate",
			"the information technology (it) budget grew last year",
			nil,
		},
		{
			"unclosed parenthesis",
			"the retinoic acid receptor (RAR mediates signaling",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPairs(tt.sentence)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPairs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPreferred(t *testing.T) {
	tests := []struct {
		name         string
		short        string
		long1, long2 string
		want         Choice
		rule         string
	}{
		{"subset", "NFKB", "nuclear factor kappa b", "nuclear regulatory factor kappa b", KeepFirst, "subset-left"},
		{"subset initialism", "NRFKB", "nuclear factor kappa b", "nuclear regulatory factor kappa b", KeepSecond, "subset-left"},
		{"nested right", "GR", "glucocorticoid receptor", "gc receptor", KeepFirst, "nested-right"},
		{"nested left", "GR", "gc receptor", "glucocorticoid receptor", KeepSecond, "nested-left"},
		{"dissimilar", "MS", "mass spectrometry", "multiple sclerosis", Ambiguous, "similarity-floor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := Preferred(nil, tt.short, tt.long1, tt.long2)
			if got != tt.want || rule != tt.rule {
				t.Errorf("Preferred() = %v (%s), want %v (%s)", got, rule, tt.want, tt.rule)
			}
		})
	}
}

func TestPreferredShorterSurplus(t *testing.T) {
	// Similar but not nested: the one with fewer surplus characters wins.
	got, rule := Preferred(nil, "HRV", "heart rate variation", "heart rate variability")
	if rule != "shorter-surplus" {
		t.Fatalf("expected shorter-surplus, got %s", rule)
	}
	if got != KeepFirst {
		t.Errorf("expected the first long form, got %v", got)
	}
}

func TestDictionaryAmbiguityIsSticky(t *testing.T) {
	d := NewDictionary()
	d.Put(Acronym{Short: "MS", Long: "mass spectrometry", Key: "mass spectrometri"})
	d.MarkAmbiguous("MS")
	d.Put(Acronym{Short: "MS", Long: "multiple sclerosis", Key: "multipl sclerosi"})

	if _, ok := d.Get("MS"); ok {
		t.Error("ambiguous short form must not be resolved")
	}
	if !reflect.DeepEqual(d.Ambiguous(), []string{"MS"}) {
		t.Errorf("Ambiguous() = %v", d.Ambiguous())
	}
}

func TestIsAcronymToken(t *testing.T) {
	tests := map[string]bool{
		"ACL":    true,
		"HIV1A":  true,
		"AC":     false,
		"ACLRS":  true,
		"ACLRSX": false,
		"A1C":    false,
		"Acl":    false,
		"AC-L":   true,
		"AC.":    false,
	}
	for tok, want := range tests {
		if got := IsAcronymToken(tok); got != want {
			t.Errorf("IsAcronymToken(%q) = %v, want %v", tok, got, want)
		}
	}
}
