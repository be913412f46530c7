// Package nested builds the lattice of terms whose token bags are strict
// subsets of other terms' bags.
package nested

import (
	"context"
	"fmt"
	"sort"

	"github.com/cognicore/termex/internal/workerpool"
	"github.com/cognicore/termex/pkg/termex/internalerr"
	"github.com/cognicore/termex/pkg/termex/normalize"
)

// Edge links a term to a term nested in it.
type Edge struct {
	Parent string // expanded form of the superset
	Child  string // expanded form of the strict subset
}

// Graph is the nesting lattice over expanded forms.
type Graph struct {
	edges   []Edge
	parents map[string][]string
}

type form struct {
	expanded string
	tokens   map[string]bool
}

// Build compares every pair of distinct expanded forms sharing a token and
// records an edge wherever one bag is a strict subset of the other. A term
// with an empty bag is a defect and yields internalerr.ErrInvariant.
func Build(ctx context.Context, terms []normalize.Term, workers int) (*Graph, error) {
	seen := make(map[string]bool)
	var forms []form
	for _, t := range terms {
		if len(t.Tokens) == 0 {
			return nil, fmt.Errorf("term %q has no tokens: %w", t.Key, internalerr.ErrInvariant)
		}
		if seen[t.Expanded] {
			continue
		}
		seen[t.Expanded] = true
		bag := make(map[string]bool, len(t.Tokens))
		for _, tok := range t.Tokens {
			bag[tok] = true
		}
		forms = append(forms, form{expanded: t.Expanded, tokens: bag})
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].expanded < forms[j].expanded })

	index := make(map[string][]int)
	for i, f := range forms {
		for tok := range f.tokens {
			index[tok] = append(index[tok], i)
		}
	}

	perForm, err := workerpool.Map(ctx, forms, workers, func(i int, f form) []Edge {
		others := make(map[int]bool)
		for tok := range f.tokens {
			for _, j := range index[tok] {
				if j > i {
					others[j] = true
				}
			}
		}
		var out []Edge
		for j := range others {
			g := forms[j]
			switch {
			case isStrictSubset(f.tokens, g.tokens):
				out = append(out, Edge{Parent: g.expanded, Child: f.expanded})
			case isStrictSubset(g.tokens, f.tokens):
				out = append(out, Edge{Parent: f.expanded, Child: g.expanded})
			}
		}
		return out
	})
	if err != nil {
		return nil, err
	}

	g := &Graph{parents: make(map[string][]string)}
	for _, es := range perForm {
		g.edges = append(g.edges, es...)
	}
	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].Parent != g.edges[j].Parent {
			return g.edges[i].Parent < g.edges[j].Parent
		}
		return g.edges[i].Child < g.edges[j].Child
	})
	for _, e := range g.edges {
		g.parents[e.Child] = append(g.parents[e.Child], e.Parent)
	}
	for _, ps := range g.parents {
		sort.Strings(ps)
	}
	return g, nil
}

func isStrictSubset(a, b map[string]bool) bool {
	if len(a) >= len(b) {
		return false
	}
	for tok := range a {
		if !b[tok] {
			return false
		}
	}
	return true
}

// Edges returns all edges sorted by parent, then child.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Parents returns the supersets of a term, sorted.
func (g *Graph) Parents(expanded string) []string {
	return g.parents[expanded]
}
