package acronym

import (
	"strings"

	"github.com/xrash/smetrics"
)

// Choice is the outcome of comparing two long forms of one short form.
type Choice int

const (
	KeepFirst Choice = iota
	KeepSecond
	Ambiguous
)

func (c Choice) String() string {
	switch c {
	case KeepFirst:
		return "first"
	case KeepSecond:
		return "second"
	default:
		return "ambiguous"
	}
}

// SimilarityFloor is the Jaro-Winkler similarity below which two long forms
// of the same short form are treated as different senses.
const SimilarityFloor = 0.7

// JaroWinkler returns the Jaro-Winkler similarity of a and b with the usual
// 0.7 boost threshold and a four character prefix.
func JaroWinkler(a, b string) float64 {
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}

// comparison carries the lemmatized long forms and their surplus lemmas.
type comparison struct {
	short      string
	lem1, lem2 []string
	d12, d21   string // lemmas of one form absent from the other
}

type preferenceRule struct {
	name  string
	apply func(c comparison) (Choice, bool)
}

// preferenceRules are tried in order; the first that applies decides.
var preferenceRules = []preferenceRule{
	{"subset-left", func(c comparison) (Choice, bool) {
		if c.d12 != "" {
			return 0, false
		}
		if len([]rune(c.short)) == len(c.lem2) {
			return KeepSecond, true
		}
		return KeepFirst, true
	}},
	{"subset-right", func(c comparison) (Choice, bool) {
		if c.d21 != "" {
			return 0, false
		}
		if len([]rune(c.short)) == len(c.lem1) {
			return KeepFirst, true
		}
		return KeepSecond, true
	}},
	{"nested-left", func(c comparison) (Choice, bool) {
		long, ok := BestLongForm(c.d12, c.d21)
		return KeepSecond, ok && long == c.d21
	}},
	{"nested-right", func(c comparison) (Choice, bool) {
		long, ok := BestLongForm(c.d21, c.d12)
		return KeepFirst, ok && long == c.d12
	}},
	{"similarity-floor", func(c comparison) (Choice, bool) {
		sim := JaroWinkler(strings.Join(c.lem1, " "), strings.Join(c.lem2, " "))
		return Ambiguous, sim < SimilarityFloor
	}},
	{"shorter-surplus", func(c comparison) (Choice, bool) {
		if len(c.d12) < len(c.d21) {
			return KeepFirst, true
		}
		return KeepSecond, true
	}},
}

// Preferred decides which of two long forms of short to keep. It returns the
// choice and the name of the rule that made it.
func Preferred(an Analyzer, short, long1, long2 string) (Choice, string) {
	if an == nil {
		an = FieldsAnalyzer{}
	}
	c := comparison{
		short: short,
		lem1:  lowerAll(an.Lemmatize(strings.ReplaceAll(long1, "-", " "))),
		lem2:  lowerAll(an.Lemmatize(strings.ReplaceAll(long2, "-", " "))),
	}
	c.d12 = surplus(c.lem1, c.lem2)
	c.d21 = surplus(c.lem2, c.lem1)

	for _, r := range preferenceRules {
		if choice, ok := r.apply(c); ok {
			return choice, r.name
		}
	}
	return Ambiguous, ""
}

// surplus returns the words of a that do not occur in b, in order.
func surplus(a, b []string) string {
	drop := make(map[string]bool, len(b))
	for _, w := range b {
		drop[w] = true
	}
	var out []string
	for _, w := range a {
		if !drop[w] {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
