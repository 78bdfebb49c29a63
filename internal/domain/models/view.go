package models

import (
	"encoding/json"
	"fmt"
)

// ViewState is the lifecycle of a single view.
type ViewState int

const (
	StateIdle ViewState = iota
	StateLoading
	StateHeatmapDisplayed
	StateCategoryDisplayed
	StateError
)

var viewStateNames = map[ViewState]string{
	StateIdle:              "idle",
	StateLoading:           "loading",
	StateHeatmapDisplayed:  "heatmap",
	StateCategoryDisplayed: "category",
	StateError:             "error",
}

func (s ViewState) String() string {
	if n, ok := viewStateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s ViewState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ViewState) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for k, v := range viewStateNames {
		if v == name {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown view state %q", name)
}

// SortColumn names a sortable column of the category table.
type SortColumn string

const (
	ColumnName     SortColumn = "name"
	ColumnRet      SortColumn = "ret"
	ColumnV1       SortColumn = "v1"
	ColumnRisk     SortColumn = "risk"
	ColumnAbsMom   SortColumn = "absmom"
	ColumnMomentum SortColumn = "momentum"
)

// SortColumns lists the table columns in display order.
var SortColumns = []SortColumn{ColumnName, ColumnRet, ColumnV1, ColumnRisk, ColumnAbsMom, ColumnMomentum}

// DefaultAscending reports the direction a column starts in: names ascending, metrics descending.
func (c SortColumn) DefaultAscending() bool {
	return c == ColumnName
}

// SortState is the active column and direction of a category table.
type SortState struct {
	Column    SortColumn `json:"column"`
	Ascending bool       `json:"ascending"`
}

// DefaultSortState is name ascending, the order rows have right after filtering.
func DefaultSortState() SortState {
	return SortState{Column: ColumnName, Ascending: true}
}

// Toggle flips direction on the same column, otherwise switches to column in its default direction.
func (s SortState) Toggle(column SortColumn) SortState {
	if s.Column == column {
		return SortState{Column: column, Ascending: !s.Ascending}
	}
	return SortState{Column: column, Ascending: column.DefaultAscending()}
}

// ViewTarget is what a view loads: exactly one of Index or Category.
type ViewTarget struct {
	Index    string     `json:"index,omitempty"`
	Category string     `json:"category,omitempty"`
	Mode     ReturnMode `json:"mode"`
	Timeline Timeline   `json:"timeline"`
}

// IsHeatmap reports whether the target is a single index.
func (t ViewTarget) IsHeatmap() bool {
	return t.Index != ""
}

// ViewSnapshot is the serializable state of a view controller. Generation is the load
// generation the state belongs to.
type ViewSnapshot struct {
	ID         string          `json:"id"`
	Generation int64           `json:"generation"`
	State      ViewState       `json:"state"`
	Target     ViewTarget      `json:"target"`
	BasePath   string          `json:"basePath,omitempty"`
	Message    string          `json:"message,omitempty"`
	Heatmap    *HeatmapPayload `json:"heatmap,omitempty"`
	Rows       []MetricRow     `json:"rows,omitempty"`
	Sort       SortState       `json:"sort"`
	Year       string          `json:"year,omitempty"`
}
