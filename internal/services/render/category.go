package render

import (
	"math"
	"strconv"

	"RiskView/internal/domain/models"
	"RiskView/internal/services/colorscale"
)

var columnLabels = map[models.SortColumn]string{
	models.ColumnName:     "Index",
	models.ColumnRet:      "Ret",
	models.ColumnV1:       "V1",
	models.ColumnRisk:     "Risk",
	models.ColumnAbsMom:   "AbsMom",
	models.ColumnMomentum: "Momentum",
}

// Category builds the metrics table. rows are drawn in the order given.
func (r *Renderer) Category(category string, rows []models.MetricRow, state models.SortState) *CategoryView {
	v := &CategoryView{
		Category: category,
		Sort:     state,
		Columns:  make([]ColumnHeader, 0, len(models.SortColumns)),
		Rows:     make([]CategoryRow, 0, len(rows)),
	}
	for _, c := range models.SortColumns {
		h := ColumnHeader{Key: c, Label: columnLabels[c]}
		if c == state.Column {
			h.Active = true
			h.Ascending = state.Ascending
		}
		v.Columns = append(v.Columns, h)
	}

	for _, row := range rows {
		risk := row.Risk
		v.Rows = append(v.Rows, CategoryRow{
			Name: row.IndexName,
			Cells: []MetricCell{
				r.metricCell(colorscale.MetricRet, row.Ret, ""),
				r.metricCell(colorscale.MetricV1, row.V1, ""),
				r.metricCell(colorscale.MetricRisk, &risk, "%"),
				r.metricCell(colorscale.MetricAbsMom, row.AbsMom, ""),
				r.metricCell(colorscale.MetricMomentum, row.Momentum, ""),
			},
		})
	}
	return v
}

func (r *Renderer) metricCell(metric colorscale.Metric, v *float64, suffix string) MetricCell {
	return MetricCell{
		Metric: metric,
		Text:   formatMetric(v, suffix),
		Class:  r.classifier.Class(metric, v),
	}
}

// formatMetric prints the shortest representation, like the backend's JSON numbers.
func formatMetric(v *float64, suffix string) string {
	if v == nil || math.IsNaN(*v) {
		return colorscale.Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + suffix
}
