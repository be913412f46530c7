// Package ingest turns raw text into an annotated corpus: pretagging fixes,
// sentence segmentation, tokenization and tagging with prose, and snowball
// stemming.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball/english"

	"github.com/cognicore/termex/internal/workerpool"
	"github.com/cognicore/termex/pkg/termex/corpus"
)

// Input is one raw document.
type Input struct {
	ID   string
	Text string
}

// Pipeline annotates raw text. It also serves as the acronym analyzer, so
// long forms are tokenized exactly like the corpus.
type Pipeline struct {
	logger *slog.Logger
}

// New creates a pipeline.
func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// Corpus annotates inputs on workers goroutines. Documents that fail to
// annotate are skipped with a warning; document order is preserved.
func (p *Pipeline) Corpus(ctx context.Context, inputs []Input, workers int) (*corpus.Corpus, error) {
	type annotated struct {
		doc corpus.Document
		err error
	}
	results, err := workerpool.Map(ctx, inputs, workers, func(_ int, in Input) annotated {
		doc, err := p.Document(in.ID, in.Text)
		return annotated{doc: doc, err: err}
	})
	if err != nil {
		return nil, err
	}

	c := &corpus.Corpus{}
	for i, r := range results {
		if r.err != nil {
			p.logger.Warn("skipping document", "id", inputs[i].ID, "err", r.err)
			continue
		}
		c.Documents = append(c.Documents, r.doc)
	}
	return c, nil
}

// Document annotates a single text. Document.Text is the pretagged text and
// every token offset addresses it.
func (p *Pipeline) Document(id, raw string) (corpus.Document, error) {
	text := Pretag(raw)
	tagged := Hyphen(text)
	doc := corpus.Document{ID: id, Text: text}

	segmented, err := prose.NewDocument(tagged,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return corpus.Document{}, fmt.Errorf("segment %s: %w", id, err)
	}

	cursor := 0
	for _, ps := range segmented.Sentences() {
		tokens, err := tag(ps.Text)
		if err != nil {
			return corpus.Document{}, fmt.Errorf("tag %s: %w", id, err)
		}
		if len(tokens) == 0 {
			continue
		}

		pos := len(doc.Sentences)
		sent := corpus.Sentence{ID: corpus.SentenceID(id, pos), DocID: id, Position: pos}
		for i, pt := range tokens {
			start, end := locate(tagged, pt.Text, cursor)
			cursor = end
			stem := baseForm(pt.Text)
			sent.Tokens = append(sent.Tokens, corpus.Token{
				Text:       pt.Text,
				Tag:        CoarseTag(pt.Text, pt.Tag),
				Lemma:      stem,
				Stem:       stem,
				SentenceID: sent.ID,
				Position:   i,
				Start:      start,
				End:        end,
			})
		}
		first, last := sent.Tokens[0], sent.Tokens[len(sent.Tokens)-1]
		sent.Text = text[first.Start:last.End]
		doc.Sentences = append(doc.Sentences, sent)
	}
	p.logger.Debug("document annotated", "id", id, "sentences", len(doc.Sentences))
	return doc, nil
}

// Tokenize splits text into tokens the way documents are tokenized.
func (p *Pipeline) Tokenize(text string) []string {
	tokens, err := tag(Hyphen(text))
	if err != nil {
		p.logger.Warn("tokenize failed", "err", err)
		return strings.Fields(text)
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// Lemmatize returns the base form of every token of text, the same form
// document tokens carry as their lemma.
func (p *Pipeline) Lemmatize(text string) []string {
	tokens := p.Tokenize(text)
	for i, t := range tokens {
		tokens[i] = baseForm(t)
	}
	return tokens
}

// baseForm stands in for a lemma: auxiliaries folded, then the Porter2
// stem, so inflected forms ("receptors", "repaired") meet their base.
func baseForm(word string) string {
	return english.Stem(Prestem(Lemma(word)), false)
}

func tag(sentence string) ([]prose.Token, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, nil
	}
	d, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	return d.Tokens(), nil
}

// locate finds token text in s at or after from. Tokens the tokenizer
// rewrote are given an empty span at from.
func locate(s, token string, from int) (int, int) {
	if from > len(s) {
		from = len(s)
	}
	if i := strings.Index(s[from:], token); i >= 0 {
		start := from + i
		return start, start + len(token)
	}
	return from, from
}
