// Package threshold classifies entries against configured positivity rules.
//
// A rule is a name, a severity and a condition of the form
// "field operator value", for example "positive_pct > 50". Supported fields
// are positive_pct, tested and positive; operators are > >= < <= ==.
//
// Evaluate returns the most severe matching rule for an entry. With the
// default rule set an entry above 50% positive is critical, which mirrors
// the red/green gauge colouring of the mobile front-end.
package threshold
