package occurrence

import (
	"strings"

	"github.com/cognicore/termex/pkg/termex/corpus"
	"github.com/cognicore/termex/pkg/termex/termhood"
)

// commonWords are short words that also appear as acronym variants ("OR",
// "IN", "ALL"). Lowercase matches on them are noise.
var commonWords = map[string]bool{
	"all": true, "on": true, "in": true, "at": true, "to": true, "by": true,
	"of": true, "off": true, "so": true, "or": true, "as": true, "and": true,
	"ie": true, "eg": true, "dr": true, "mr": true, "mrs": true, "ms": true,
	"km": true, "mm": true, "old": true, "no": true, "not": true, "pre": true,
	"be": true, "is": true, "are": true, "am": true, "can": true, "for": true,
	"up": true, "has": true, "had": true, "who": true,
}

// Matcher recognizes term variants in token sequences, case-insensitively.
type Matcher struct {
	dict   map[string]int // lowercase variant tokens joined by a space -> term ID
	maxLen int
}

// NewMatcher indexes every variant of records. A variant shared by several
// terms belongs to the one with the smallest ID.
func NewMatcher(records []termhood.Record) *Matcher {
	dict := make(map[string]int)
	maxLen := 1
	for _, r := range records {
		for _, v := range r.Variants {
			tokens := strings.Fields(strings.ToLower(v.Text))
			if len(tokens) == 0 {
				continue
			}
			phrase := strings.Join(tokens, " ")
			if id, ok := dict[phrase]; !ok || r.ID < id {
				dict[phrase] = r.ID
			}
			if len(tokens) > maxLen {
				maxLen = len(tokens)
			}
		}
	}
	return &Matcher{dict: dict, maxLen: maxLen}
}

// Len returns the number of indexed variants.
func (m *Matcher) Len() int {
	return len(m.dict)
}

// Match returns every variant occurrence in a document, of every length at
// every start position, in document order. Occurrences may overlap.
func (m *Matcher) Match(doc *corpus.Document) []Label {
	var out []Label
	for _, s := range doc.Sentences {
		lower := make([]string, len(s.Tokens))
		for i, tok := range s.Tokens {
			lower[i] = strings.ToLower(tok.Text)
		}
		for i := range s.Tokens {
			maxPhrase := m.maxLen
			if remaining := len(s.Tokens) - i; maxPhrase > remaining {
				maxPhrase = remaining
			}
			for n := 1; n <= maxPhrase; n++ {
				id, ok := m.dict[strings.Join(lower[i:i+n], " ")]
				if !ok {
					continue
				}
				start, end := s.Tokens[i].Start, s.Tokens[i+n-1].End
				if start < 0 || end > len(doc.Text) || start >= end {
					continue
				}
				if isCommon(doc.Text[start:end]) {
					continue
				}
				out = append(out, Label{DocID: doc.ID, Start: start, Length: end - start, TermID: id})
			}
		}
	}
	return out
}

func isCommon(text string) bool {
	return commonWords[strings.ToLower(text)] && text != strings.ToUpper(text)
}
