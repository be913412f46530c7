package ingest

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

var units = []string{
	"meter", "metre", "mile", "centi", "milli", "kilo", "gram", "sec", "min",
	"hour", "hr", "day", "week", "month", "year", "liter", "litre",
}

var unitAbbreviations = []string{
	"m", "cm", "mm", "kg", "g", "mg", "s", "h", "am", "pm", "l", "ml",
}

// pretagRules run in order over NFC-normalized text.
var pretagRules = func() []rewrite {
	var rules []rewrite
	for _, u := range append(append([]string(nil), units...), unitAbbreviations...) {
		rules = append(rules, rewrite{regexp.MustCompile(`(\d)` + u), "${1} " + u})
	}
	return append(rules,
		rewrite{regexp.MustCompile(`!+`), "!"},
		rewrite{regexp.MustCompile(`\?+`), "?"},
		rewrite{regexp.MustCompile(`\.+`), "."},
		rewrite{regexp.MustCompile(`-+`), "-"},
		rewrite{regexp.MustCompile(`_+`), "_"},
		rewrite{regexp.MustCompile(`~+`), "~"},
		rewrite{regexp.MustCompile(`kappaB`), "kappa B"},
		rewrite{regexp.MustCompile(`(?i)([a-z0-9])/([a-z0-9])`), "${1} / ${2}"},
		rewrite{regexp.MustCompile(`\(`), " ( "},
		rewrite{regexp.MustCompile(`\)`), " ) "},
		rewrite{regexp.MustCompile(`[ACGT ]{6,}`), ""},
		rewrite{regexp.MustCompile(`\s+`), " "},
	)
}()

var letterHyphen = regexp.MustCompile(`(?i)([a-z])-([a-z])`)

// Pretag fixes text the tagger is known to mishandle: numbers glued to
// units, runs of punctuation, slashes between words, parentheses attached
// to words and long nucleotide sequences. Whitespace is collapsed.
func Pretag(text string) string {
	text = norm.NFC.String(text)
	for _, r := range pretagRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}

// Hyphen replaces hyphens between two letters with spaces. The result has
// the same byte length as text, so offsets carry over.
func Hyphen(text string) string {
	// twice, since matches sharing a letter are skipped on the first pass
	text = letterHyphen.ReplaceAllString(text, "${1} ${2}")
	return letterHyphen.ReplaceAllString(text, "${1} ${2}")
}

// CoarseTag generalizes a Penn Treebank tag for pattern matching and applies
// word-specific overrides.
func CoarseTag(word, tag string) string {
	switch {
	case len(tag) <= 1:
		tag = "PUN"
	case tag == "PRP$":
		tag = "PRP"
	case tag == "WP$":
		tag = "WP"
	case strings.HasPrefix(tag, "JJ"):
		tag = "JJ"
	case strings.HasPrefix(tag, "NN"):
		tag = "NN"
	case strings.HasPrefix(tag, "RB"):
		tag = "RB"
	case strings.HasPrefix(tag, "VB"):
		tag = "VB"
	}

	switch strings.ToLower(word) {
	case "%":
		return "SYM"
	case "et", "al", "etc":
		return "XX"
	case "related", "based":
		return "JJ"
	}
	return tag
}

// Prestem prepares a lemma for stemming: edge hyphens go and British
// "-isation" becomes "-ization".
func Prestem(lemma string) string {
	if len(lemma) > 1 {
		lemma = strings.TrimPrefix(lemma, "-")
	}
	if len(lemma) > 1 {
		lemma = strings.TrimSuffix(lemma, "-")
	}
	return strings.ReplaceAll(lemma, "isation", "ization")
}

var auxiliaries = map[string]string{
	"is": "be", "are": "be", "was": "be", "were": "be", "been": "be",
	"being": "be", "am": "be", "'s": "be", "'re": "be", "'m": "be",
	"has": "have", "had": "have", "having": "have", "'ve": "have",
	"does": "do", "did": "do", "done": "do", "doing": "do",
}

// Lemma returns the lowercase base form of a word. Only auxiliary verbs are
// folded; other words keep their lowercase surface form.
func Lemma(word string) string {
	lower := strings.ToLower(word)
	if base, ok := auxiliaries[lower]; ok {
		return base
	}
	return lower
}
