package models

import (
	"encoding/json"
	"fmt"
)

// MetricRow is one index's metrics for an evaluation window, as served by /api/metrics.
type MetricRow struct {
	IndexName string   `json:"Index Name"`
	Ret       *float64 `json:"Ret"`
	V1        *float64 `json:"V1"`
	Risk      float64  `json:"Risk"`
	AbsMom    *float64 `json:"AbsMom"`
	Momentum  *float64 `json:"Momentum"`
}

type metricRowWire struct {
	IndexName string   `json:"Index Name"`
	Ret       *float64 `json:"Ret"`
	V1        *float64 `json:"V1"`
	Risk      *float64 `json:"Risk"`
	AbsMom    *float64 `json:"AbsMom"`
	Momentum  *float64 `json:"Momentum"`
	RMom      *float64 `json:"RMom"`
}

// UnmarshalJSON accepts the older RMom key as momentum.
func (m *MetricRow) UnmarshalJSON(b []byte) error {
	var w metricRowWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.IndexName == "" {
		return fmt.Errorf("metric row: missing Index Name")
	}
	*m = MetricRow{
		IndexName: w.IndexName,
		Ret:       w.Ret,
		V1:        w.V1,
		AbsMom:    w.AbsMom,
		Momentum:  w.Momentum,
	}
	if m.Momentum == nil {
		m.Momentum = w.RMom
	}
	if w.Risk != nil {
		m.Risk = *w.Risk
	}
	return nil
}
