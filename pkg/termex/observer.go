package termex

import "time"

// Phase names a step of a run.
type Phase string

const (
	PhaseExtract      Phase = "extract"
	PhaseTokenization Phase = "tokenization-variants"
	PhaseAcronyms     Phase = "acronyms"
	PhaseIntegration  Phase = "acronym-integration"
	PhaseHyphenation  Phase = "hyphenation-variants"
	PhaseNormalize    Phase = "normalize"
	PhaseNested       Phase = "nested"
	PhaseTermhood     Phase = "termhood"
	PhaseOccurrence   Phase = "occurrence"
)

// PhaseEvent reports a finished phase. Items is the phase's main output
// count: candidates, rekeyed candidates, acronyms, terms, edges or labels.
type PhaseEvent struct {
	Phase   Phase
	Items   int
	Elapsed time.Duration
}

// Observer receives phase events in order, on the goroutine calling Run.
type Observer interface {
	PhaseDone(ev PhaseEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev PhaseEvent)

// PhaseDone calls f.
func (f ObserverFunc) PhaseDone(ev PhaseEvent) { f(ev) }

type phaseTimer struct {
	e     *Engine
	phase Phase
	start time.Time
}

func (e *Engine) phase(p Phase) phaseTimer {
	return phaseTimer{e: e, phase: p, start: time.Now()}
}

func (t phaseTimer) done(items int) {
	ev := PhaseEvent{Phase: t.phase, Items: items, Elapsed: time.Since(t.start)}
	t.e.logger.Debug("phase done", "phase", string(ev.Phase), "items", ev.Items, "elapsed", ev.Elapsed)
	t.e.observer.PhaseDone(ev)
}
