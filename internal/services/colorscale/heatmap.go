package colorscale

import (
	"math"
	"strconv"
)

const (
	NeutralColor = "#f5f5f5"
	AbsentText   = "#999"
	DarkText     = "#333"
	LightText    = "white"
	Placeholder  = "-"

	// MinDynamicRange is the smallest max-min spread the dynamic policy will color.
	MinDynamicRange = 1.0
	// contrastThreshold is the |value| above which text switches to white.
	contrastThreshold = 3.0
)

var dynamicUpper = [...]float64{0.17, 0.33, 0.50, 0.67, 0.83}

var dynamicColors = [...]string{"#ff0000", "#f27474", "#f5ce42", "#d97b00", "#33db00", "#1e8000"}

var fixedUpper = [...]float64{-30, -10, 0, 10, 20, 30}

var fixedColors = [...]string{"#ff0000", "#e04848", "#f27474", "#8fd18a", "#33db00", "#2aa800", "#1e8000"}

// DynamicBands and FixedBands are the number of bands each policy produces.
const (
	DynamicBands = len(dynamicColors)
	FixedBands   = len(fixedColors)
)

// DynamicBand returns the 0-based band of v within [min,max]. ok is false when the
// range is narrower than MinDynamicRange or v is NaN. Values outside the range are clamped.
func DynamicBand(v, min, max float64) (band int, ok bool) {
	rng := max - min
	if math.IsNaN(v) || math.IsNaN(rng) || math.IsInf(rng, 0) || rng < MinDynamicRange {
		return 0, false
	}
	n := (v - min) / rng
	switch {
	case n < 0:
		n = 0
	case n > 1:
		n = 1
	}
	for i, upper := range dynamicUpper {
		if n <= upper {
			return i, true
		}
	}
	return len(dynamicUpper), true
}

// DynamicColor returns the fill for v, or NeutralColor when the range carries no signal.
func DynamicColor(v, min, max float64) string {
	band, ok := DynamicBand(v, min, max)
	if !ok {
		return NeutralColor
	}
	return dynamicColors[band]
}

// FixedBand returns the 0-based band of v; it is defined for every float64 except NaN,
// which lands in band 0 and should be treated as absent by callers.
func FixedBand(v float64) int {
	for i, upper := range fixedUpper {
		if v <= upper {
			return i
		}
	}
	if math.IsNaN(v) {
		return 0
	}
	return len(fixedUpper)
}

// FixedColor returns the fill for v under the fixed policy.
func FixedColor(v float64) string {
	if math.IsNaN(v) {
		return NeutralColor
	}
	return fixedColors[FixedBand(v)]
}

// FormatPercent renders v as a signed percentage with one decimal, "+" for zero.
func FormatPercent(v float64) string {
	if v == 0 {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if v >= 0 && s[0] != '+' {
		s = "+" + s
	}
	return s + "%"
}

// TextColor picks a readable foreground for a filled cell.
func TextColor(v float64) string {
	if math.Abs(v) > contrastThreshold {
		return LightText
	}
	return DarkText
}

// Cell is one colored heatmap cell.
type Cell struct {
	Text       string   `json:"text"`
	Background string   `json:"background"`
	Foreground string   `json:"foreground"`
	Value      *float64 `json:"value"`
}

// Absent reports whether the cell has no value.
func (c Cell) Absent() bool {
	return c.Value == nil
}

// LegendEntry labels one color of a policy.
type LegendEntry struct {
	Label      string `json:"label"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// Scale colors heatmap cells under one policy and an observed range.
type Scale struct {
	policy Policy
	min    float64
	max    float64
}

// NewScale builds a scale. min and max are ignored by the fixed policy.
func NewScale(policy Policy, min, max float64) Scale {
	if policy == "" {
		policy = PolicyDynamic
	}
	return Scale{policy: policy, min: min, max: max}
}

// Color returns the fill for a present value.
func (s Scale) Color(v float64) string {
	if s.policy == PolicyFixed {
		return FixedColor(v)
	}
	return DynamicColor(v, s.min, s.max)
}

// Cell renders v; nil and NaN render as the placeholder on the neutral fill.
func (s Scale) Cell(v *float64) Cell {
	if v == nil || math.IsNaN(*v) {
		return Cell{Text: Placeholder, Background: NeutralColor, Foreground: AbsentText}
	}
	val := *v
	return Cell{
		Text:       FormatPercent(val),
		Background: s.Color(val),
		Foreground: TextColor(val),
		Value:      &val,
	}
}

// Legend lists the policy's colors from highest to lowest.
func (s Scale) Legend() []LegendEntry {
	if s.policy == PolicyFixed {
		return []LegendEntry{
			{Label: "> 30%", Background: fixedColors[6], Foreground: LightText},
			{Label: "20 to 30%", Background: fixedColors[5], Foreground: LightText},
			{Label: "10 to 20%", Background: fixedColors[4], Foreground: LightText},
			{Label: "0 to 10%", Background: fixedColors[3], Foreground: DarkText},
			{Label: "-10 to 0%", Background: fixedColors[2], Foreground: LightText},
			{Label: "-30 to -10%", Background: fixedColors[1], Foreground: LightText},
			{Label: "<= -30%", Background: fixedColors[0], Foreground: LightText},
		}
	}
	return []LegendEntry{
		{Label: "Highest", Background: dynamicColors[5], Foreground: LightText},
		{Label: "High", Background: dynamicColors[4], Foreground: LightText},
		{Label: "Above Mid", Background: dynamicColors[3], Foreground: LightText},
		{Label: "Mid", Background: dynamicColors[2], Foreground: DarkText},
		{Label: "Low", Background: dynamicColors[1], Foreground: LightText},
		{Label: "Lowest", Background: dynamicColors[0], Foreground: LightText},
	}
}
