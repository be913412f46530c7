package corpus

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseTagged builds a document from pre-annotated sentences written as
// space-separated "word/TAG" or "word/TAG/lemma" tokens, one sentence per
// line. The stem defaults to the lemma, which defaults to the lowercased
// word. Document text is the sentences joined by a single space.
func ParseTagged(docID string, lines []string) (Document, error) {
	doc := Document{ID: docID}
	var text strings.Builder

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if text.Len() > 0 {
			text.WriteByte(' ')
		}

		pos := len(doc.Sentences)
		sent := Sentence{ID: SentenceID(docID, pos), DocID: docID, Position: pos}
		sentStart := text.Len()
		for i, field := range fields {
			tok, err := parseTaggedToken(field)
			if err != nil {
				return Document{}, fmt.Errorf("doc %s sentence %d: %w", docID, pos, err)
			}
			if i > 0 {
				text.WriteByte(' ')
			}
			tok.SentenceID = sent.ID
			tok.Position = i
			tok.Start = text.Len()
			text.WriteString(tok.Text)
			tok.End = text.Len()
			sent.Tokens = append(sent.Tokens, tok)
		}
		sent.Text = text.String()[sentStart:]
		doc.Sentences = append(doc.Sentences, sent)
	}

	doc.Text = text.String()
	return doc, nil
}

func parseTaggedToken(field string) (Token, error) {
	// The word itself may contain '/', so split from the right. A trailing
	// field is a tag unless it has a lowercase letter, in which case it is
	// a lemma.
	parts := strings.Split(field, "/")
	var word, tag, lemma string
	switch {
	case len(parts) >= 2 && isTag(parts[len(parts)-1]):
		word = strings.Join(parts[:len(parts)-1], "/")
		tag = parts[len(parts)-1]
	case len(parts) >= 3 && isTag(parts[len(parts)-2]):
		word = strings.Join(parts[:len(parts)-2], "/")
		tag = parts[len(parts)-2]
		lemma = parts[len(parts)-1]
	default:
		return Token{}, fmt.Errorf("token %q is not word/TAG", field)
	}
	if word == "" {
		return Token{}, fmt.Errorf("token %q has no text", field)
	}
	if lemma == "" {
		lemma = strings.ToLower(word)
	}
	return Token{Text: word, Tag: tag, Lemma: lemma, Stem: lemma}, nil
}

// isTag accepts PTB-style tags, punctuation tags such as "." and ","
// included.
func isTag(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
