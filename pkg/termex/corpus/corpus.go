// Package corpus defines the token stream the term extractor consumes.
//
// A Corpus is produced by an external annotator (see package ingest for the
// bundled one). It is immutable once built: every phase of the extractor
// reads it, none writes to it.
package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// Token is a single tagged, lemmatized and stemmed token.
type Token struct {
	Text       string
	Tag        string // coarse tag, e.g. NN, JJ, VB, IN, PUN
	Lemma      string
	Stem       string
	SentenceID string
	Position   int // zero-based index within the sentence
	Start      int // byte offset into Document.Text
	End        int // exclusive byte offset into Document.Text
}

// Sentence is an ordered run of tokens.
type Sentence struct {
	ID       string
	DocID    string
	Position int
	Text     string
	Tokens   []Token
}

// Tags returns the space-joined coarse tags used for pattern matching.
func (s Sentence) Tags() string {
	tags := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		tags[i] = tok.Tag
	}
	return strings.Join(tags, " ")
}

// Span returns the tokens in [start, start+length), clamped to the sentence.
func (s Sentence) Span(start, length int) []Token {
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(s.Tokens) {
		end = len(s.Tokens)
	}
	if start >= end {
		return nil
	}
	return s.Tokens[start:end]
}

// Document is one input text with its sentences.
type Document struct {
	ID        string
	Text      string
	Sentences []Sentence
}

// Validate checks if the document has required fields
func (d *Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("doc ID is required")
	}
	if strings.TrimSpace(d.Text) == "" {
		return fmt.Errorf("doc %s: text is required", d.ID)
	}
	for _, s := range d.Sentences {
		for _, tok := range s.Tokens {
			if tok.Start < 0 || tok.End > len(d.Text) || tok.Start > tok.End {
				return fmt.Errorf("doc %s: token %q has offsets [%d,%d) outside text", d.ID, tok.Text, tok.Start, tok.End)
			}
		}
	}
	return nil
}

// Tokens returns all tokens of the document in order.
func (d *Document) Tokens() []Token {
	var out []Token
	for _, s := range d.Sentences {
		out = append(out, s.Tokens...)
	}
	return out
}

// Corpus is the full input collection.
type Corpus struct {
	Documents []Document
}

// Sentences returns every sentence of the corpus in document order.
func (c *Corpus) Sentences() []Sentence {
	var out []Sentence
	for _, d := range c.Documents {
		out = append(out, d.Sentences...)
	}
	return out
}

// SentenceID builds the canonical sentence identifier.
func SentenceID(docID string, position int) string {
	return fmt.Sprintf("%s.%d", docID, position)
}
