package extract

import (
	"context"
	"regexp"
	"testing"

	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/config"
	"github.com/cognicore/termex/pkg/termex/corpus"
	"github.com/cognicore/termex/pkg/termex/stoplist"
)

func newExtractor() *Extractor {
	return New(regexp.MustCompile(config.DefaultPattern), stoplist.Default(), 2, nil)
}

func sentence(t *testing.T, line string) corpus.Sentence {
	t.Helper()
	doc, err := corpus.ParseTagged("d", []string{line})
	if err != nil {
		t.Fatalf("ParseTagged: %v", err)
	}
	return doc.Sentences[0]
}

func phrases(cands []candidate.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Phrase
	}
	return out
}

func TestSentenceNounPhrases(t *testing.T) {
	s := sentence(t, "The/DT retinoic/JJ acid/NN receptor/NN mediates/VB the/DT signaling/NN pathway/NN ./PUN")
	got := newExtractor().Sentence(s)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %v", phrases(got))
	}

	first := got[0]
	if first.Phrase != "retinoic acid receptor" || first.Key != "acid receptor retinoic" {
		t.Errorf("unexpected first candidate: %+v", first)
	}
	if first.Start != 1 || first.Length != 3 || first.ID != "d.0.1" {
		t.Errorf("unexpected span: start=%d length=%d id=%s", first.Start, first.Length, first.ID)
	}
	if got[1].Phrase != "signaling pathway" {
		t.Errorf("unexpected second candidate: %+v", got[1])
	}
}

func TestSentenceTrimsStopwords(t *testing.T) {
	s := sentence(t, "Several/JJ other/JJ blood/NN pressure/NN studies/NN/study were/VB done/VB here/RB ./PUN")
	got := newExtractor().Sentence(s)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %v", phrases(got))
	}
	c := got[0]
	if c.Phrase != "blood pressure studies" || c.Start != 2 || c.Length != 3 {
		t.Errorf("unexpected trimmed candidate: %+v", c)
	}
	if c.Key != "blood pressure study" {
		t.Errorf("Key = %q", c.Key)
	}
}

func TestSentencePrepositionalPhrase(t *testing.T) {
	s := sentence(t, "We/PRP measured/VB the/DT rate/NN of/IN change/NN in/IN all/DT patients/NN/patient")
	got := newExtractor().Sentence(s)
	if len(got) == 0 {
		t.Fatal("expected a candidate")
	}
	if got[0].Phrase != "rate of change" || got[0].Key != "change rate" {
		t.Errorf("unexpected candidate: %+v", got[0])
	}
}

func TestSentenceFilters(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"short sentence", "blood/NN pressure/NN"},
		{"too long", "We/PRP saw/VB alpha/NN beta/NN gamma/NN delta/NN epsilon/NN zeta/NN eta/NN theta/NN here/RB"},
		{"web artifact", "Please/VB visit/VB www.example.org/NN home/NN page/NN for/IN details/NN/detail"},
		{"hashtag", "The/DT campaign/NN used/VB #health/NN awareness/NN messages/NN/message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newExtractor().Sentence(sentence(t, tt.line))
			for _, c := range got {
				if tt.name == "hashtag" && c.Phrase == "#health awareness messages" {
					t.Errorf("hashtag phrase should be rejected")
				}
				if tt.name == "web artifact" && IsWebArtifact(c.Phrase) {
					t.Errorf("web phrase should be rejected: %q", c.Phrase)
				}
			}
			if tt.name != "hashtag" && tt.name != "web artifact" && len(got) != 0 {
				t.Errorf("expected no candidates, got %v", phrases(got))
			}
		})
	}
}

func TestKeyStripsPeriods(t *testing.T) {
	s := sentence(t, "The/DT U.K./NN government/NN announced/VB new/JJ rules/NN/rule today/NN")
	got := newExtractor().Sentence(s)
	if len(got) == 0 {
		t.Fatal("expected a candidate")
	}
	if got[0].Key != "government uk" {
		t.Errorf("Key = %q, want %q", got[0].Key, "government uk")
	}
}

func TestKeyIsOrderIndependent(t *testing.T) {
	e := newExtractor()
	a := sentence(t, "x/NN")
	b := sentence(t, "y/NN")
	a.Tokens[0].Stem, b.Tokens[0].Stem = "receptor", "acid"
	k1 := e.Key([]corpus.Token{a.Tokens[0], b.Tokens[0]})
	k2 := e.Key([]corpus.Token{b.Tokens[0], a.Tokens[0], b.Tokens[0]})
	if k1 != k2 || k1 != "acid receptor" {
		t.Errorf("keys differ: %q vs %q", k1, k2)
	}
}

func TestExtractCorpusOrder(t *testing.T) {
	a, _ := corpus.ParseTagged("a", []string{
		"The/DT retinoic/JJ acid/NN receptor/NN mediates/VB the/DT signaling/NN pathway/NN",
	})
	b, _ := corpus.ParseTagged("b", []string{
		"Several/JJ other/JJ blood/NN pressure/NN studies/NN/study were/VB done/VB here/RB",
	})
	c := &corpus.Corpus{Documents: []corpus.Document{a, b}}

	set, err := newExtractor().Extract(context.Background(), c)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	all := set.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 candidates, got %v", phrases(all))
	}
	if all[0].DocID != "a" || all[2].DocID != "b" {
		t.Errorf("candidates out of corpus order: %v", phrases(all))
	}
}
