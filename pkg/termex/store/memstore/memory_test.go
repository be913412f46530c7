package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/termex/pkg/termex/internalerr"
	"github.com/cognicore/termex/pkg/termex/store"
)

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	s := New()

	run := store.Run{
		ID:        "01A",
		CreatedAt: time.Now(),
		Documents: 2,
		Terms: []store.Term{{
			ID: 1, Expanded: "acid retinoic", CValue: 2.1, F: 4, DF: 2,
			Variants: []store.Variant{{Text: "retinoic acid", Frequency: 4}},
		}},
		Labels: []store.Label{{DocID: "d1", Start: 4, Length: 13, TermID: 1}},
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	// mutating the caller's copy must not leak into the store
	run.Terms[0].Variants[0].Text = "changed"

	got, err := s.GetRun(ctx, "01A")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Terms[0].Variants[0].Text != "retinoic acid" {
		t.Errorf("stored run shares memory with the caller: %+v", got.Terms[0])
	}
	if len(got.Labels) != 1 || got.Documents != 2 {
		t.Errorf("unexpected run %+v", got)
	}
}

func TestGetRunNotFound(t *testing.T) {
	_, err := New().GetRun(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	if err := New().SaveRun(context.Background(), store.Run{}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLatestAndList(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.LatestRun(ctx); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	for _, id := range []string{"01B", "01C", "01A"} {
		if err := s.SaveRun(ctx, store.Run{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	latest, ok, err := s.LatestRun(ctx)
	if err != nil || !ok || latest.ID != "01C" {
		t.Errorf("LatestRun() = %q, %v, %v", latest.ID, ok, err)
	}
	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "01C" || runs[1].ID != "01B" {
		t.Errorf("ListRuns() = %+v", runs)
	}
}
