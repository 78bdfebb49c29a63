// Package colorscale maps metric values to display colors and CSS classes.
package colorscale

import (
	"fmt"
	"strings"
)

// Policy selects how heatmap cells are colored.
type Policy string

const (
	// PolicyDynamic normalizes each value against the observed min/max of the grid.
	PolicyDynamic Policy = "dynamic"
	// PolicyFixed buckets raw percentages at fixed breakpoints.
	PolicyFixed Policy = "fixed"
)

// ParsePolicy returns PolicyDynamic for an empty string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyDynamic:
		return PolicyDynamic, nil
	case PolicyFixed:
		return PolicyFixed, nil
	default:
		return "", fmt.Errorf("unknown color policy %q", s)
	}
}

// Direction tells whether a higher risk score is good or bad.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// ParseDirection returns HigherIsBetter for an empty string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", HigherIsBetter:
		return HigherIsBetter, nil
	case LowerIsBetter:
		return LowerIsBetter, nil
	default:
		return "", fmt.Errorf("unknown risk direction %q", s)
	}
}
