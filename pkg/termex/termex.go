// Package termex recognizes multi-word terms in an annotated corpus. It
// extracts noun-phrase candidates, folds acronyms into their long forms,
// merges spelling variants, scores terms by C-value and IDF and locates
// their occurrences.
package termex

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/termex/pkg/termex/acronym"
	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/config"
	"github.com/cognicore/termex/pkg/termex/corpus"
	"github.com/cognicore/termex/pkg/termex/extract"
	"github.com/cognicore/termex/pkg/termex/internalerr"
	"github.com/cognicore/termex/pkg/termex/nested"
	"github.com/cognicore/termex/pkg/termex/normalize"
	"github.com/cognicore/termex/pkg/termex/occurrence"
	"github.com/cognicore/termex/pkg/termex/stoplist"
	"github.com/cognicore/termex/pkg/termex/store"
	"github.com/cognicore/termex/pkg/termex/termhood"
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Settings  config.Settings
	Stoplist  *stoplist.List   // defaults to the built-in list
	Pattern   *regexp.Regexp   // defaults to Settings.CompiledPattern()
	Analyzer  acronym.Analyzer // tokenizer for acronym long forms
	Workers   int              // below 1 means runtime.NumCPU()
	MaxPasses int              // term normalization passes
	Logger    *slog.Logger
	Observer  Observer
	Store     store.Store // optional; every run is saved when set
}

// Engine runs term recognition over corpora.
type Engine struct {
	settings  config.Settings
	stopwords *stoplist.List
	pattern   *regexp.Regexp
	analyzer  acronym.Analyzer
	workers   int
	maxPasses int
	logger    *slog.Logger
	observer  Observer
	store     store.Store
}

// New creates an engine. Invalid settings are replaced by defaults with a
// warning.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	settings := opts.Settings.WithDefaults().Validate(logger)

	e := &Engine{
		settings:  settings,
		stopwords: opts.Stoplist,
		pattern:   opts.Pattern,
		analyzer:  opts.Analyzer,
		workers:   opts.Workers,
		maxPasses: opts.MaxPasses,
		logger:    logger,
		observer:  opts.Observer,
		store:     opts.Store,
	}
	if e.stopwords == nil {
		e.stopwords = stoplist.Default()
	}
	if e.pattern == nil {
		e.pattern = settings.CompiledPattern()
	}
	if e.analyzer == nil {
		e.analyzer = acronym.FieldsAnalyzer{}
	}
	if e.observer == nil {
		e.observer = ObserverFunc(func(PhaseEvent) {})
	}
	return e
}

// Settings returns the validated settings the engine runs with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// Stats counts what each phase produced.
type Stats struct {
	Documents     int
	Skipped       int
	Candidates    int
	Acronyms      int
	Ambiguous     int
	Integration   acronym.IntegrationStats
	Substitutions int
	Passes        int
	Edges         int
	Scored        int
	Labels        int
	Terms         int
}

// Result is the outcome of one run.
type Result struct {
	RunID     string
	CreatedAt time.Time
	Settings  config.Settings
	Terms     []termhood.Record // by ID
	Labels    []occurrence.Label
	Acronyms  []acronym.Acronym
	Ambiguous []string
	Renames   []candidate.Rename
	Stats     Stats
}

// Row is one line of the ranked terminology: a term variant with its term's
// scores.
type Row struct {
	TermID  int
	Variant string
	CValue  float64
	F       int // variant frequency
	DF      int
	Score   float64
}

// Ranked lists every variant of every term, terms ordered by score.
func (r *Result) Ranked() []Row {
	var rows []Row
	for _, t := range termhood.Rank(r.Terms) {
		for _, v := range t.Variants {
			rows = append(rows, Row{
				TermID:  t.ID,
				Variant: v.Text,
				CValue:  t.CValue,
				F:       v.Frequency,
				DF:      t.DF,
				Score:   t.Score(),
			})
		}
	}
	return rows
}

// Run recognizes terms in c. It fails with internalerr.ErrNoInput when c has
// no valid document; invalid documents are skipped with a warning.
func (e *Engine) Run(ctx context.Context, c *corpus.Corpus) (*Result, error) {
	if c == nil || len(c.Documents) == 0 {
		return nil, internalerr.ErrNoInput
	}
	res := &Result{RunID: NewRunID(), CreatedAt: time.Now().UTC(), Settings: e.settings}

	valid := &corpus.Corpus{}
	for i := range c.Documents {
		if err := c.Documents[i].Validate(); err != nil {
			e.logger.Warn("skipping document", "err", err)
			res.Stats.Skipped++
			continue
		}
		valid.Documents = append(valid.Documents, c.Documents[i])
	}
	if len(valid.Documents) == 0 {
		return nil, fmt.Errorf("all %d documents invalid: %w", len(c.Documents), internalerr.ErrNoInput)
	}
	res.Stats.Documents = len(valid.Documents)

	ph := e.phase(PhaseExtract)
	set, err := extract.New(e.pattern, e.stopwords, e.workers, e.logger).Extract(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	res.Stats.Candidates = set.Len()
	ph.done(set.Len())

	ph = e.phase(PhaseTokenization)
	ph.done(normalize.MergeTokenization(set))

	ph = e.phase(PhaseAcronyms)
	dict, err := e.resolver().Resolve(ctx, valid, set)
	if err != nil {
		return nil, fmt.Errorf("acronyms: %w", err)
	}
	ph.done(dict.Len())

	ph = e.phase(PhaseIntegration)
	res.Stats.Integration = acronym.NewIntegrator(e.logger).Integrate(valid, set, dict)
	res.Acronyms = dict.All()
	res.Ambiguous = dict.Ambiguous()
	res.Stats.Acronyms = len(res.Acronyms)
	res.Stats.Ambiguous = len(res.Ambiguous)
	ph.done(res.Stats.Integration.Standalone + res.Stats.Integration.Synthesized)

	ph = e.phase(PhaseHyphenation)
	ph.done(normalize.MergeHyphenation(set))

	ph = e.phase(PhaseNormalize)
	tokens := normalize.NewTokenNormalizer(e.settings.Smin, e.workers, e.logger)
	norm, err := normalize.NewTermNormalizer(tokens, e.maxPasses, e.logger).Normalize(ctx, normalize.Select(set.KeyFrequency()))
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	res.Stats.Substitutions = len(norm.Substitutions)
	res.Stats.Passes = norm.Passes
	ph.done(len(norm.Terms))

	ph = e.phase(PhaseNested)
	graph, err := nested.Build(ctx, norm.Terms, e.workers)
	if err != nil {
		return nil, fmt.Errorf("nested: %w", err)
	}
	res.Stats.Edges = len(graph.Edges())
	ph.done(res.Stats.Edges)

	ph = e.phase(PhaseTermhood)
	records := termhood.NewScorer(e.settings.Fmin, e.settings.Cmin, e.logger).Score(set, norm.Terms, graph)
	res.Stats.Scored = len(records)
	ph.done(len(records))

	ph = e.phase(PhaseOccurrence)
	occ, err := occurrence.NewResolver(e.workers, e.logger).Resolve(ctx, valid, records)
	if err != nil {
		return nil, fmt.Errorf("occurrence: %w", err)
	}
	res.Terms = termhood.ApplyDocumentFrequency(records, occ.DF, len(valid.Documents))
	res.Labels = occ.Labels
	res.Stats.Labels = len(res.Labels)
	res.Stats.Terms = len(res.Terms)
	ph.done(len(res.Labels))

	res.Renames = set.Log()
	e.logger.Info("terms recognized",
		"run", res.RunID,
		"documents", res.Stats.Documents,
		"candidates", res.Stats.Candidates,
		"acronyms", res.Stats.Acronyms,
		"terms", res.Stats.Terms,
		"labels", res.Stats.Labels)

	if e.store != nil {
		run, err := res.storeRun()
		if err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		if err := e.store.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}
	return res, nil
}

func (e *Engine) resolver() acronym.Resolver {
	if e.settings.Acronyms == config.Implicit {
		return acronym.NewImplicit(e.settings.Amin, e.workers, e.logger)
	}
	return acronym.NewExplicit(e.analyzer, e.workers, e.logger)
}

func (r *Result) storeRun() (store.Run, error) {
	settings, err := yaml.Marshal(r.Settings)
	if err != nil {
		return store.Run{}, fmt.Errorf("encode settings: %w", err)
	}

	run := store.Run{
		ID:        r.RunID,
		CreatedAt: r.CreatedAt,
		Settings:  string(settings),
		Documents: r.Stats.Documents,
	}
	for _, t := range r.Terms {
		st := store.Term{ID: t.ID, Expanded: t.Expanded, CValue: t.CValue, F: t.F, DF: t.DF, IDF: t.IDF}
		for _, v := range t.Variants {
			st.Variants = append(st.Variants, store.Variant{Text: v.Text, Frequency: v.Frequency})
		}
		run.Terms = append(run.Terms, st)
	}
	for _, l := range r.Labels {
		run.Labels = append(run.Labels, store.Label{DocID: l.DocID, Start: l.Start, Length: l.Length, TermID: l.TermID})
	}
	for _, a := range r.Acronyms {
		run.Acronyms = append(run.Acronyms, store.Acronym{Short: a.Short, Long: a.Long, Key: a.Key})
	}
	return run, nil
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a new ULID. IDs from one process are strictly increasing.
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}
