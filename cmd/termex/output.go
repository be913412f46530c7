package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/cognicore/termex/pkg/termex"
	"github.com/cognicore/termex/pkg/termex/corpus"
	"github.com/cognicore/termex/pkg/termex/occurrence"
)

// writeTerminology writes ranked rows as tab-separated values with a header.
func writeTerminology(path string, rows []termex.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create terminology: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write([]string{"id", "variant", "c", "f", "df", "c_idf"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.TermID),
			r.Variant,
			strconv.FormatFloat(r.CValue, 'f', -1, 64),
			strconv.Itoa(r.F),
			strconv.Itoa(r.DF),
			strconv.FormatFloat(round3(r.Score), 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

type annotation struct {
	Text     string         `json:"text"`
	Ents     []entity       `json:"ents"`
	Title    string         `json:"title"`
	Settings map[string]any `json:"settings"`
}

type entity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// writeAnnotations writes one entry per document with its labels as
// character offsets, the format entity visualizers read.
func writeAnnotations(path string, c *corpus.Corpus, labels []occurrence.Label, titles map[string]string) error {
	byDoc := make(map[string][]occurrence.Label)
	for _, l := range labels {
		byDoc[l.DocID] = append(byDoc[l.DocID], l)
	}

	out := make([]annotation, 0, len(c.Documents))
	for _, d := range c.Documents {
		title := titles[d.ID]
		if title == "" {
			title = d.ID
		}
		ann := annotation{Text: d.Text, Ents: []entity{}, Title: title, Settings: map[string]any{}}
		for _, l := range byDoc[d.ID] {
			ann.Ents = append(ann.Ents, entity{
				Start: runeOffset(d.Text, l.Start),
				End:   runeOffset(d.Text, l.End()),
				Label: strconv.Itoa(l.TermID),
			})
		}
		out = append(out, ann)
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("encode annotations: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func runeOffset(text string, byteOffset int) int {
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	return utf8.RuneCountInString(text[:byteOffset])
}
