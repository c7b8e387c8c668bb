package types

// Record is one accepted input row after field extraction.
type Record struct {
	Name     string
	Tested   int64
	Positive int64
}

// Entry holds the running totals for one name within a load cycle.
// Positive <= Tested is expected but never enforced.
type Entry struct {
	Name     string `json:"name"`
	Tested   int64  `json:"tested"`
	Positive int64  `json:"positive"`
}

// Totals is the sum of all entries plus the integer-truncated percentage
// of the sums.
type Totals struct {
	Tested   int64 `json:"tested"`
	Positive int64 `json:"positive"`
	Percent  int64 `json:"percent"`
}
