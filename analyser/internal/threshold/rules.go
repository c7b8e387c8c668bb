package threshold

import (
	"fmt"
	"log/slog"

	"github.com/osler/analysers/pkg/types"
)

// Severity levels, lowest first.
const (
	SeverityNone     = ""
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Rule is one configured threshold.
type Rule struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition"`
	Severity  string `yaml:"severity"`
}

// DefaultRules flags entries above 50% positive.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "high-positivity", Condition: "positive_pct > 50", Severity: SeverityCritical},
	}
}

// Flag is a rule match for one entry.
type Flag struct {
	Name     string  `json:"name"`
	Rule     string  `json:"rule"`
	Severity string  `json:"severity"`
	Value    float64 `json:"value"`
}

type compiledRule struct {
	Rule
	cond condition
}

// Classifier evaluates entries against a compiled rule set.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules []compiledRule
}

// New compiles rules. An empty rule set is valid; Evaluate never matches.
func New(rules []Rule) (*Classifier, error) {
	c := &Classifier{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if err := Validate(r); err != nil {
			return nil, fmt.Errorf("threshold: rules[%d]: %w", i, err)
		}
		cond, _ := parseCondition(r.Condition)
		if r.Severity == "" {
			r.Severity = SeverityWarning
		}
		c.rules = append(c.rules, compiledRule{Rule: r, cond: cond})
	}
	return c, nil
}

// Validate checks a rule without compiling it.
func Validate(r Rule) error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := parseCondition(r.Condition); err != nil {
		return err
	}
	switch r.Severity {
	case SeverityNone, SeverityInfo, SeverityWarning, SeverityCritical:
	default:
		return fmt.Errorf("%q: unknown severity %q", r.Name, r.Severity)
	}
	return nil
}

// Evaluate returns the most severe matching rule for e. When several rules of
// equal severity match, the first configured wins. ok is false when nothing
// matches.
func (c *Classifier) Evaluate(e types.Entry) (f Flag, ok bool) {
	for _, r := range c.rules {
		fires, v := r.cond.eval(e)
		if !fires {
			continue
		}
		if !ok || rank(r.Severity) > rank(f.Severity) {
			f = Flag{Name: e.Name, Rule: r.Name, Severity: r.Severity, Value: v}
			ok = true
		}
	}
	return f, ok
}

// EvaluateAll returns flags for every matching entry, in input order, and
// logs each one.
func (c *Classifier) EvaluateAll(entries []types.Entry) []Flag {
	var flags []Flag
	for _, e := range entries {
		f, ok := c.Evaluate(e)
		if !ok {
			continue
		}
		slog.Info("threshold: entry flagged",
			"name", f.Name, "rule", f.Rule, "severity", f.Severity, "value", f.Value)
		flags = append(flags, f)
	}
	return flags
}

func rank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}
