// Package compute derives positivity percentages from tested/positive counts.
//
// Two forms exist and both are used:
//
//   - Percentage returns positive/tested*100 as a float64. The report
//     generator sorts and formats with it.
//   - PercentageTruncated returns positive*100/tested using integer
//     division. Aggregate totals and the selection gauge use it.
//
// They disagree for most inputs (33.33 vs 33 for 50/150). Both return 0 when
// tested is 0.
package compute
