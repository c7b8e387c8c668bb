package threshold

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osler/analysers/analyser/internal/compute"
	"github.com/osler/analysers/pkg/types"
)

// condition is a parsed "field op value" expression.
type condition struct {
	field     string
	op        string
	threshold float64
}

// parseCondition parses expressions such as:
//
//	positive_pct > 50
//	tested < 100
//	positive >= 1
func parseCondition(expr string) (condition, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return condition{}, fmt.Errorf("condition %q: want \"field op value\"", expr)
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	switch field {
	case "positive_pct", "tested", "positive":
	default:
		return condition{}, fmt.Errorf("condition %q: unknown field %q", expr, field)
	}
	switch op {
	case ">", ">=", "<", "<=", "==":
	default:
		return condition{}, fmt.Errorf("condition %q: unknown operator %q", expr, op)
	}
	v, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return condition{}, fmt.Errorf("condition %q: value: %w", expr, err)
	}
	return condition{field: field, op: op, threshold: v}, nil
}

// eval returns whether the condition holds for e, and the field value tested.
func (c condition) eval(e types.Entry) (bool, float64) {
	v := fieldValue(c.field, e)
	return compareFloat(v, c.op, c.threshold), v
}

// fieldValue maps a field name to its value for e.
func fieldValue(field string, e types.Entry) float64 {
	switch field {
	case "positive_pct":
		return compute.Percentage(e.Tested, e.Positive)
	case "tested":
		return float64(e.Tested)
	case "positive":
		return float64(e.Positive)
	default:
		return 0
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
