package aggregate

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/osler/analysers/pkg/types"
)

// MinFields is the minimum number of comma-separated fields for a data line
// to be considered. Only fields 0, 2 and 3 are read.
const MinFields = 6

// Field positions within a data line.
const (
	fieldName     = 0
	fieldTested   = 2
	fieldPositive = 3
)

// Result is the outcome of one aggregation pass.
type Result struct {
	// Entries maps a name to its running totals.
	Entries map[string]*types.Entry

	// Order lists names in order of first appearance.
	Order []string

	// Diagnostics holds one error per line skipped for a bad numeric field.
	Diagnostics []*ParseError

	Lines    int // lines seen
	Accepted int // lines folded into Entries
	Dropped  int // lines with fewer than MinFields fields
	Expired  int // lines skipped because the name's expiry had passed
}

// ParseLine extracts a Record from one data line. It returns ErrTooFewFields
// for short lines and a *ParseError when tested or positive is not an integer.
func ParseLine(line string) (types.Record, error) {
	return parseLine(0, line)
}

func parseLine(n int, line string) (types.Record, error) {
	fields := splitFields(line)
	if len(fields) < MinFields {
		return types.Record{}, ErrTooFewFields
	}

	tested, err := strconv.ParseInt(trim(fields[fieldTested]), 10, 32)
	if err != nil {
		return types.Record{}, &ParseError{Line: n, Text: line, Field: "tested", Err: err}
	}
	positive, err := strconv.ParseInt(trim(fields[fieldPositive]), 10, 32)
	if err != nil {
		return types.Record{}, &ParseError{Line: n, Text: line, Field: "positive", Err: err}
	}

	return types.Record{
		Name:     trim(fields[fieldName]),
		Tested:   tested,
		Positive: positive,
	}, nil
}

// Aggregate folds lines into per-name totals, skipping records whose name has
// expired at now. It never fails as a whole; per-line problems are counted or
// reported in Result.Diagnostics.
func Aggregate(lines []string, expiry ExpiryTable, now time.Time) *Result {
	res := &Result{Entries: make(map[string]*types.Entry)}

	for i, line := range lines {
		res.Lines++

		rec, err := parseLine(i+1, line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				slog.Warn("aggregate: error parsing line",
					"line", pe.Line, "text", pe.Text, "field", pe.Field, "err", pe.Err)
				res.Diagnostics = append(res.Diagnostics, pe)
				continue
			}
			res.Dropped++
			continue
		}

		if expiry.Expired(rec.Name, now) {
			res.Expired++
			continue
		}

		res.add(rec)
	}

	return res
}

// add creates the entry on first sight of rec.Name and accumulates otherwise.
func (r *Result) add(rec types.Record) {
	r.Accepted++
	if e, ok := r.Entries[rec.Name]; ok {
		e.Tested += rec.Tested
		e.Positive += rec.Positive
		return
	}
	r.Entries[rec.Name] = &types.Entry{
		Name:     rec.Name,
		Tested:   rec.Tested,
		Positive: rec.Positive,
	}
	r.Order = append(r.Order, rec.Name)
}

// List returns a copy of the entries in first-seen order.
func (r *Result) List() []types.Entry {
	out := make([]types.Entry, 0, len(r.Order))
	for _, name := range r.Order {
		out = append(out, *r.Entries[name])
	}
	return out
}

// Get returns a copy of the entry for name.
func (r *Result) Get(name string) (types.Entry, bool) {
	e, ok := r.Entries[name]
	if !ok {
		return types.Entry{}, false
	}
	return *e, true
}
