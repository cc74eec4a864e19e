// Package currency holds the fixed, directed exchange-rate table used to
// convert amounts between account currencies.
package currency

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledgererr"
)

// Pair is a directed conversion rate. Converting an amount from From to To
// multiplies it by Rate.
type Pair struct {
	From Code
	To   Code
	Rate decimal.Decimal
}

type pairKey struct {
	from Code
	to   Code
}

// Table is an immutable set of directed rates. The reverse of a pair is
// never derived; each direction must be listed.
type Table struct {
	rates      map[pairKey]decimal.Decimal
	currencies map[Code]struct{}
}

// NewTable validates pairs and builds a Table.
func NewTable(pairs []Pair) (*Table, error) {
	t := &Table{
		rates:      make(map[pairKey]decimal.Decimal, len(pairs)),
		currencies: make(map[Code]struct{}),
	}
	for _, p := range pairs {
		if p.From == p.To {
			return nil, fmt.Errorf("rate %s->%s: pair must span two currencies", p.From, p.To)
		}
		if !p.Rate.IsPositive() {
			return nil, fmt.Errorf("rate %s->%s: must be positive, got %s", p.From, p.To, p.Rate)
		}
		key := pairKey{from: p.From, to: p.To}
		if _, dup := t.rates[key]; dup {
			return nil, fmt.Errorf("rate %s->%s: duplicate pair", p.From, p.To)
		}
		t.rates[key] = p.Rate
		t.currencies[p.From] = struct{}{}
		t.currencies[p.To] = struct{}{}
	}
	return t, nil
}

// DefaultTable returns the built-in GBP/USD/EUR rates. The rates are not
// mutual inverses and are kept that way.
func DefaultTable() *Table {
	t, err := NewTable([]Pair{
		{From: GBP, To: USD, Rate: decimal.RequireFromString("1.414")},
		{From: GBP, To: EUR, Rate: decimal.RequireFromString("1.124")},
		{From: USD, To: GBP, Rate: decimal.RequireFromString("0.765")},
		{From: USD, To: EUR, Rate: decimal.RequireFromString("0.876")},
		{From: EUR, To: GBP, Rate: decimal.RequireFromString("0.676")},
		{From: EUR, To: USD, Rate: decimal.RequireFromString("1.158")},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Convert converts amount from one currency to another. Same-currency
// conversion returns amount unchanged without a lookup.
func (t *Table) Convert(from, to Code, amount decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, ok := t.Rate(from, to)
	if !ok {
		return decimal.Zero, ledgererr.New(ledgererr.KindUnknownRatePair, string(from)+"->"+string(to))
	}
	return amount.Mul(rate), nil
}

// Rate returns the directed rate for from->to.
func (t *Table) Rate(from, to Code) (decimal.Decimal, bool) {
	rate, ok := t.rates[pairKey{from: from, to: to}]
	return rate, ok
}

// Supports reports whether code appears in any pair of the table.
func (t *Table) Supports(code Code) bool {
	_, ok := t.currencies[code]
	return ok
}

// Pairs returns every rate ordered by From then To.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.rates))
	for k, rate := range t.rates {
		out = append(out, Pair{From: k.from, To: k.to, Rate: rate})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
