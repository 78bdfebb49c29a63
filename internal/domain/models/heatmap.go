package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ReturnMode selects how monthly returns are annualized.
type ReturnMode string

const (
	ModeTrailing ReturnMode = "trailing"
	ModeRolling  ReturnMode = "rolling"
)

// ParseReturnMode returns def for an empty string.
func ParseReturnMode(s string, def ReturnMode) (ReturnMode, error) {
	switch ReturnMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return def, nil
	case ModeTrailing:
		return ModeTrailing, nil
	case ModeRolling:
		return ModeRolling, nil
	default:
		return "", fmt.Errorf("unknown return mode %q", s)
	}
}

// Label is the capitalised mode name used in titles.
func (m ReturnMode) Label() string {
	if m == ModeRolling {
		return "Rolling"
	}
	return "Trailing"
}

// Timeline is a window length in years; fractional windows such as 3.5 are allowed.
type Timeline float64

// ParseTimeline parses a positive number of years.
func ParseTimeline(s string) (Timeline, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("timeline %q: %w", s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("timeline must be positive, got %q", s)
	}
	return Timeline(v), nil
}

func (t Timeline) String() string {
	return strconv.FormatFloat(float64(t), 'f', -1, 64)
}

// UnmarshalJSON accepts both 3 and "3".
func (t *Timeline) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := ParseTimeline(s)
		if err != nil {
			return err
		}
		*t = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	*t = Timeline(f)
	return nil
}

// HeatmapPayload is the /api/heatmap_data response for one index.
// HeatmapData maps year label to month "1".."12" to a percentage; a nil or missing
// month has no computable return.
type HeatmapPayload struct {
	IndexName    string                         `json:"indexName"`
	CAGR         *float64                       `json:"cagr"`
	Volatility   *float64                       `json:"volatility"`
	Risk         *float64                       `json:"risk,omitempty"`
	CurrentPrice *float64                       `json:"currentPrice"`
	LatestReturn *float64                       `json:"latestReturn,omitempty"`
	Mode         ReturnMode                     `json:"mode"`
	Timeline     Timeline                       `json:"timeline"`
	HeatmapData  map[string]map[string]*float64 `json:"heatmapData"`
}

// Month returns the value for year and month (1..12), or nil.
func (p *HeatmapPayload) Month(year string, month int) *float64 {
	months, ok := p.HeatmapData[year]
	if !ok {
		return nil
	}
	return months[strconv.Itoa(month)]
}

// HeatmapQuery holds the parameters of one heatmap fetch.
type HeatmapQuery struct {
	Index    string
	Mode     ReturnMode
	Timeline Timeline
}
