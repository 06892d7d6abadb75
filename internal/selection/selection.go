// Package selection materializes a clause into server-side counts.
//
// A Selection is a clause bound to a session, submitted with
// ancestor_counts so the server reports one count per ancestor table of
// the resolve table. The resolve table can be switched afterwards to make
// any of those counts the canonical one, and a selection can be reused as
// a sub-selection clause in further compositions.
package selection

import (
	"context"
	"fmt"

	"github.com/roach88/fathom/internal/api"
	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/wire"
)

// Counter submits queries for counting. Implemented by *api.Client.
type Counter interface {
	CountQuery(ctx context.Context, q wire.Query) (wire.CountsResponse, error)
}

// Selection is a counted clause.
type Selection struct {
	rule         clause.Clause
	resolveTable *tabletree.Table
	limits       *wire.Limits
	counts       map[string]int64
	countTables  []string
}

// Option configures selection creation.
type Option func(*config)

type config struct {
	table  *tabletree.Table
	limits *wire.Limits
}

// WithTable counts the selection on the given resolve table instead of the
// clause's own table, routing the clause there first.
func WithTable(t *tabletree.Table) Option {
	return func(c *config) { c.table = t }
}

// WithLimits applies a limit or sample to the selection before counting.
func WithLimits(limits wire.Limits) Option {
	return func(c *config) { l := limits; c.limits = &l }
}

// RegularSample keeps a regular 1-in-n style sample of the given fraction.
func RegularSample(fraction float64) Option {
	return WithLimits(wire.Limits{Sampling: "Regular", Fraction: fraction})
}

// RandomSample keeps a random sample of the given fraction.
func RandomSample(fraction float64) Option {
	return WithLimits(wire.Limits{Sampling: "Random", Fraction: fraction})
}

// First keeps only the first total records of the selection.
func First(total int64) Option {
	return WithLimits(wire.Limits{Type: "First", Total: total})
}

// TopN keeps the total highest (or lowest) records ranked by a variable.
func TopN(variableName, direction string, total int64) Option {
	return WithLimits(wire.Limits{TopN: &wire.TopN{
		VariableName: variableName,
		Direction:    direction,
		Total:        total,
	}})
}

// New submits the clause for counting and returns the bound selection.
func New(ctx context.Context, counter Counter, rule clause.Clause, opts ...Option) (*Selection, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.table != nil && !cfg.table.IsSame(rule.Table()) {
		routed, err := clause.ChangeTable(rule, cfg.table)
		if err != nil {
			return nil, err
		}
		rule = routed
	}

	sel := &Selection{
		rule:         rule,
		resolveTable: rule.Table(),
		limits:       cfg.limits,
	}

	resp, err := counter.CountQuery(ctx, sel.WireQuery())
	if err != nil {
		return nil, err
	}
	if len(resp.Counts) == 0 {
		return nil, &api.ResultsError{
			Endpoint: "queries",
			Message:  "server returned no counts for the selection",
		}
	}
	sel.counts = make(map[string]int64, len(resp.Counts))
	sel.countTables = make([]string, 0, len(resp.Counts))
	for _, c := range resp.Counts {
		sel.counts[c.TableName] = c.CountValue
		sel.countTables = append(sel.countTables, c.TableName)
	}
	return sel, nil
}

// WireQuery builds the query payload: the resolve table, the rule tree and
// the ancestor-counts flag.
func (s *Selection) WireQuery() wire.Query {
	return wire.Query{Selection: s.WireSelection()}
}

// WireSelection builds the selection payload, reusable verbatim inside
// sub-selection clauses and as a cube or export base query.
func (s *Selection) WireSelection() wire.Selection {
	return wire.Selection{
		TableName:      s.rule.Table().Name(),
		AncestorCounts: true,
		Rule:           &wire.Rule{Clause: s.rule.WireClause()},
		Limits:         s.limits,
	}
}

// Clause returns the counted rule tree.
func (s *Selection) Clause() clause.Clause { return s.rule }

// Table returns the current resolve table.
func (s *Selection) Table() *tabletree.Table { return s.resolveTable }

// Count returns the canonical count: the count of the current resolve
// table.
func (s *Selection) Count() int64 {
	return s.counts[s.resolveTable.Name()]
}

// GetCount returns the count reported for the named table.
func (s *Selection) GetCount(tableName string) (int64, error) {
	n, ok := s.counts[tableName]
	if !ok {
		return 0, fmt.Errorf("no count was returned for table %q"+
			" (counts cover the resolve table and its ancestors: %v)",
			tableName, s.countTables)
	}
	return n, nil
}

// SetTable switches the canonical count to the given table. The table must
// be one the server reported a count for.
func (s *Selection) SetTable(t *tabletree.Table) error {
	if _, ok := s.counts[t.Name()]; !ok {
		return fmt.Errorf("no count was returned for table %q"+
			" (counts cover the resolve table and its ancestors: %v)",
			t.Name(), s.countTables)
	}
	s.resolveTable = t
	return nil
}

// SubSelection wraps this selection as a clause for further composition.
func (s *Selection) SubSelection(label string) clause.Clause {
	return clause.NewSubSelection(s.resolveTable, s.WireSelection(), label)
}
