// Package render turns loaded view data into a RenderTree that output adapters draw.
package render

import (
	"RiskView/internal/domain/models"
	"RiskView/internal/services/colorscale"
)

// View names which builder produced a tree.
type View string

const (
	ViewNone     View = ""
	ViewHeatmap  View = "heatmap"
	ViewCategory View = "category"
)

// RenderTree is everything an adapter needs to draw one view.
type RenderTree struct {
	ID       string           `json:"id,omitempty"`
	View     View             `json:"view,omitempty"`
	State    models.ViewState `json:"state"`
	Title    string           `json:"title,omitempty"`
	Message  string           `json:"message,omitempty"`
	Heatmap  *HeatmapView     `json:"heatmap,omitempty"`
	Category *CategoryView    `json:"category,omitempty"`
}

// Tile is one labelled figure in the heatmap metadata panel.
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Formula explains how the grid's returns were computed.
type Formula struct {
	Name        string `json:"name"`
	Expression  string `json:"expression"`
	Explanation string `json:"explanation"`
}

// ValueRange is the observed min/max the dynamic policy scaled against.
type ValueRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Text string  `json:"text"`
}

// HeatmapRow is a year label followed by twelve month cells.
type HeatmapRow struct {
	Year   string            `json:"year"`
	Hidden bool              `json:"hidden,omitempty"`
	Cells  []colorscale.Cell `json:"cells"`
}

type HeatmapView struct {
	IndexName    string                   `json:"indexName"`
	Title        string                   `json:"title"`
	Mode         models.ReturnMode        `json:"mode"`
	Timeline     string                   `json:"timeline"`
	Tiles        []Tile                   `json:"tiles"`
	Formula      Formula                  `json:"formula"`
	Policy       colorscale.Policy        `json:"policy"`
	Legend       []colorscale.LegendEntry `json:"legend"`
	Range        *ValueRange              `json:"range,omitempty"`
	Header       []string                 `json:"header"`
	Rows         []HeatmapRow             `json:"rows"`
	SelectedYear string                   `json:"selectedYear"`
}

// Years lists the row labels in display order.
func (h *HeatmapView) Years() []string {
	out := make([]string, len(h.Rows))
	for i, r := range h.Rows {
		out[i] = r.Year
	}
	return out
}

// VisibleRows returns the rows not hidden by the year filter.
func (h *HeatmapView) VisibleRows() []HeatmapRow {
	out := make([]HeatmapRow, 0, len(h.Rows))
	for _, r := range h.Rows {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}

// ColumnHeader is a sortable table header.
type ColumnHeader struct {
	Key       models.SortColumn `json:"key"`
	Label     string            `json:"label"`
	Active    bool              `json:"active,omitempty"`
	Ascending bool              `json:"ascending,omitempty"`
}

// MetricCell is one table cell with its bucket class.
type MetricCell struct {
	Metric colorscale.Metric `json:"metric"`
	Text   string            `json:"text"`
	Class  colorscale.Class  `json:"class"`
}

type CategoryRow struct {
	Name  string       `json:"name"`
	Cells []MetricCell `json:"cells"`
}

type CategoryView struct {
	Category string           `json:"category"`
	Sort     models.SortState `json:"sort"`
	Columns  []ColumnHeader   `json:"columns"`
	Rows     []CategoryRow    `json:"rows"`
}

// Idle is the tree of a view that has not loaded anything.
func Idle(id string) *RenderTree {
	return &RenderTree{ID: id, State: models.StateIdle}
}

// Loading is shown while a fetch is in flight.
func Loading(id string, target models.ViewTarget) *RenderTree {
	t := &RenderTree{ID: id, State: models.StateLoading, Message: "Loading..."}
	if target.IsHeatmap() {
		t.View = ViewHeatmap
		t.Title = target.Index
	} else if target.Category != "" {
		t.View = ViewCategory
		t.Title = target.Category
	}
	return t
}

// Error carries a terminal load failure message.
func Error(id, message string) *RenderTree {
	return &RenderTree{ID: id, State: models.StateError, Message: message}
}

// HeatmapTree wraps a displayed heatmap.
func HeatmapTree(id string, h *HeatmapView) *RenderTree {
	return &RenderTree{ID: id, View: ViewHeatmap, State: models.StateHeatmapDisplayed, Title: h.IndexName, Heatmap: h}
}

// CategoryTree wraps a displayed category table.
func CategoryTree(id string, c *CategoryView) *RenderTree {
	return &RenderTree{ID: id, View: ViewCategory, State: models.StateCategoryDisplayed, Title: c.Category, Category: c}
}
