package aggregate

import (
	"log/slog"
	"strconv"
	"time"
)

// ExpiryTable maps a name to the epoch-millisecond time after which its
// records are no longer counted.
type ExpiryTable map[string]int64

// LoadExpiry parses "name,timestamp" lines. Lines without exactly two fields
// or with a non-integer timestamp are skipped; a later line for the same name
// replaces the earlier one. It never fails.
func LoadExpiry(lines []string) ExpiryTable {
	table := make(ExpiryTable, len(lines))
	for i, line := range lines {
		fields := splitFields(line)
		if len(fields) != 2 {
			continue
		}
		name := trim(fields[0])
		ts, err := strconv.ParseInt(trim(fields[1]), 10, 64)
		if err != nil {
			slog.Debug("aggregate: skipping expiry line", "line", i+1, "err", err)
			continue
		}
		table[name] = ts
	}
	return table
}

// Expired reports whether name has an expiry and now is strictly after it.
// A nil table never expires anything.
func (t ExpiryTable) Expired(name string, now time.Time) bool {
	ts, ok := t[name]
	if !ok {
		return false
	}
	return now.UnixMilli() > ts
}
