package acronym

import (
	"regexp"
	"strings"
)

// Pair is a short form with the long form found for it in running text.
type Pair struct {
	Short string
	Long  string // lowercase
}

var whitespace = regexp.MustCompile(`\s+`)

// ExtractPairs finds every "long form (SF)" or "SF (long form)" definition
// in a sentence and returns the pairs that pass validation, left to right.
func ExtractPairs(sentence string) []Pair {
	var pairs []Pair

	sentence = strings.ReplaceAll(sentence, `"`, " ")
	sentence = whitespace.ReplaceAllString(sentence, " ")

	o := strings.Index(sentence, " (")
	for o >= 0 {
		o++ // on the '('
		c := strings.Index(sentence[o:], ")")
		if c < 0 {
			sentence = sentence[o+1:]
			o = strings.Index(sentence, " (")
			continue
		}
		c += o

		// The long form starts after the previous clause boundary.
		cutoff := max(strings.LastIndex(sentence[:o], ". "), strings.LastIndex(sentence[:o], ", "))
		if cutoff == -1 {
			cutoff = -2
		}
		definition := strings.TrimSpace(sentence[cutoff+2 : o])
		short := strings.TrimSpace(sentence[o+1 : c])

		if short == "" && definition == "" {
			sentence = sentence[o+1:]
			o = strings.Index(sentence, " (")
			continue
		}

		if len(short) > 1 && len(definition) > 1 {
			// Parentheses nested inside the short form.
			if strings.Contains(short, "(") {
				if next := strings.Index(sentence[c+1:], ")"); next >= 0 {
					next += c + 1
					short = sentence[o+1 : next]
					c = next
				}
			}

			for _, sep := range []string{", ", "; ", " or "} {
				if i := strings.Index(short, sep); i >= 0 {
					short = short[:i]
				}
			}
			short = strings.TrimPrefix(short, "or ")

			if len(strings.Fields(short)) > 3 || len(short) > len(definition) {
				// The definition is inside the parentheses; the short form is
				// the word before them.
				prev := strings.LastIndex(sentence[:max(o-2, 0)], " ")
				word := ""
				if o-1 > prev+1 {
					word = sentence[prev+1 : o-1]
				}
				definition, short = short, word
				if len(strings.Split(strings.ReplaceAll(definition, "-", " "), " ")) > len(short)+2 {
					short = ""
				}
			}
		}

		short = strings.TrimSpace(short)
		definition = strings.TrimSpace(definition)
		if IsValidShortForm(short) {
			if long, ok := MatchPair(short, definition); ok {
				pairs = append(pairs, Pair{Short: short, Long: long})
			}
		}

		sentence = sentence[c+1:]
		o = strings.Index(sentence, " (")
	}
	return pairs
}
