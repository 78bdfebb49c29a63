package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"RiskView/internal/domain/models"
	"RiskView/internal/services/colorscale"

	"gonum.org/v1/gonum/floats"
)

const AllYears = "all"

var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Renderer builds view trees under one color configuration.
type Renderer struct {
	policy     colorscale.Policy
	classifier colorscale.Classifier
}

func New(policy colorscale.Policy, risk colorscale.Direction) *Renderer {
	if policy == "" {
		policy = colorscale.PolicyDynamic
	}
	return &Renderer{policy: policy, classifier: colorscale.NewClassifier(risk)}
}

// HeatmapTitle is "<Trailing|Rolling> <T>-Year Returns Heatmap".
func HeatmapTitle(mode models.ReturnMode, timeline models.Timeline) string {
	return fmt.Sprintf("%s %s-Year Returns Heatmap", mode.Label(), timeline)
}

// FormulaFor describes the annualization used for mode over timeline years.
func FormulaFor(mode models.ReturnMode, timeline models.Timeline) Formula {
	t := timeline.String()
	if mode == models.ModeRolling {
		return Formula{
			Name:        "Rolling Return (Annualized)",
			Expression:  fmt.Sprintf("((Price_%s_Years_After / Current_Price)^(1/%s) - 1) × 100", t, t),
			Explanation: fmt.Sprintf("Annualized return if you invested at this month for %s years", t),
		}
	}
	return Formula{
		Name:        "Trailing Return (Annualized)",
		Expression:  fmt.Sprintf("((Current_Price / Price_%s_Years_Ago)^(1/%s) - 1) × 100", t, t),
		Explanation: fmt.Sprintf("Annualized return in the last %s years up to this month", t),
	}
}

// Heatmap builds the monthly grid for p. The title follows the requested target; the
// formula follows what the backend says it computed.
func (r *Renderer) Heatmap(p *models.HeatmapPayload, target models.ViewTarget) *HeatmapView {
	years := SortYears(p.HeatmapData)

	lo, hi, ok := observedRange(p, years)
	scale := colorscale.NewScale(r.policy, lo, hi)

	mode := p.Mode
	if mode == "" {
		mode = target.Mode
	}
	timeline := p.Timeline
	if timeline == 0 {
		timeline = target.Timeline
	}

	h := &HeatmapView{
		IndexName: p.IndexName,
		Title:     HeatmapTitle(target.Mode, target.Timeline),
		Mode:      mode,
		Timeline:  timeline.String(),
		Tiles: []Tile{
			{Label: "RETURN (CAGR)", Value: percentOrNA(p.CAGR)},
			{Label: "VOLATILITY", Value: percentOrNA(p.Volatility)},
			{Label: "CURRENT PRICE", Value: fixedOrNA(p.CurrentPrice)},
		},
		Formula:      FormulaFor(mode, timeline),
		Policy:       r.policy,
		Legend:       scale.Legend(),
		Header:       append([]string{"Year"}, MonthNames[:]...),
		Rows:         make([]HeatmapRow, 0, len(years)),
		SelectedYear: AllYears,
	}
	if p.LatestReturn != nil && !math.IsNaN(*p.LatestReturn) {
		h.Tiles = append(h.Tiles, Tile{Label: "LATEST RETURN", Value: colorscale.FormatPercent(*p.LatestReturn)})
	}
	if r.policy == colorscale.PolicyDynamic && ok {
		h.Range = &ValueRange{
			Min:  lo,
			Max:  hi,
			Text: fmt.Sprintf("Colors automatically scale from lowest (%.1f%%) to highest (%.1f%%) in the data", lo, hi),
		}
	}

	for _, year := range years {
		row := HeatmapRow{Year: year, Cells: make([]colorscale.Cell, 12)}
		for m := 1; m <= 12; m++ {
			row.Cells[m-1] = scale.Cell(p.Month(year, m))
		}
		h.Rows = append(h.Rows, row)
	}
	return h
}

// FilterYear returns a copy of h showing only year's row, or every row for "all" or "".
// A year with no row leaves only the header visible.
func FilterYear(h *HeatmapView, year string) *HeatmapView {
	if year == "" {
		year = AllYears
	}
	out := *h
	out.SelectedYear = year
	out.Rows = make([]HeatmapRow, len(h.Rows))
	for i, row := range h.Rows {
		row.Hidden = year != AllYears && row.Year != year
		out.Rows[i] = row
	}
	return &out
}

// SortYears orders year labels descending numerically; labels that are not numbers follow, in reverse lexical order.
func SortYears(data map[string]map[string]*float64) []string {
	years := make([]string, 0, len(data))
	for y := range data {
		years = append(years, y)
	}
	sort.SliceStable(years, func(i, j int) bool {
		a, aerr := strconv.ParseFloat(years[i], 64)
		b, berr := strconv.ParseFloat(years[j], 64)
		switch {
		case aerr == nil && berr == nil:
			if a != b {
				return a > b
			}
			return years[i] > years[j]
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return years[i] > years[j]
		}
	})
	return years
}

// observedRange scans finite month values of the displayed years.
func observedRange(p *models.HeatmapPayload, years []string) (lo, hi float64, ok bool) {
	vals := make([]float64, 0, len(years)*12)
	for _, y := range years {
		for m := 1; m <= 12; m++ {
			if v := p.Month(y, m); v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
				vals = append(vals, *v)
			}
		}
	}
	if len(vals) == 0 {
		return 0, 0, false
	}
	return floats.Min(vals), floats.Max(vals), true
}

func percentOrNA(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "N/A"
	}
	return strconv.FormatFloat(*v*100, 'f', 2, 64) + "%"
}

func fixedOrNA(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
