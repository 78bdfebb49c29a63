// Package sorter orders category table rows by a column.
package sorter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"RiskView/internal/domain/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrUnknownColumn = errors.New("unknown sort column")

// MissingAbsMom is the value an absent absmom sorts as, so such rows sink in descending order.
const MissingAbsMom = -999.0

// ParseColumn resolves a column key; "mom" is accepted for momentum.
func ParseColumn(s string) (models.SortColumn, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "mom" || key == "rmom" {
		return models.ColumnMomentum, nil
	}
	for _, c := range models.SortColumns {
		if string(c) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
}

// Sorter compares names with English collation and metrics numerically.
// A collate.Collator keeps scratch buffers, so Sort serializes on a mutex.
type Sorter struct {
	mu       sync.Mutex
	collator *collate.Collator
}

func New() *Sorter {
	return &Sorter{collator: collate.New(language.English)}
}

// Sort returns a reordered copy of rows. The sort is stable; with no secondary key,
// ties keep their input order.
func (s *Sorter) Sort(rows []models.MetricRow, state models.SortState) []models.MetricRow {
	out := append([]models.MetricRow(nil), rows...)

	if state.Column == models.ColumnName {
		s.mu.Lock()
		defer s.mu.Unlock()
		sort.SliceStable(out, func(i, j int) bool {
			if state.Ascending {
				return s.collator.CompareString(out[i].IndexName, out[j].IndexName) < 0
			}
			return s.collator.CompareString(out[j].IndexName, out[i].IndexName) < 0
		})
		return out
	}

	key := numericKey(state.Column)
	sort.SliceStable(out, func(i, j int) bool {
		if state.Ascending {
			return key(out[i]) < key(out[j])
		}
		return key(out[j]) < key(out[i])
	})
	return out
}

// ByName orders rows by name ascending, the order a freshly loaded table shows.
func (s *Sorter) ByName(rows []models.MetricRow) []models.MetricRow {
	return s.Sort(rows, models.DefaultSortState())
}

func numericKey(c models.SortColumn) func(models.MetricRow) float64 {
	switch c {
	case models.ColumnRet:
		return func(r models.MetricRow) float64 { return orZero(r.Ret) }
	case models.ColumnV1:
		return func(r models.MetricRow) float64 { return orZero(r.V1) }
	case models.ColumnRisk:
		return func(r models.MetricRow) float64 { return r.Risk }
	case models.ColumnAbsMom:
		return func(r models.MetricRow) float64 {
			if r.AbsMom == nil {
				return MissingAbsMom
			}
			return *r.AbsMom
		}
	case models.ColumnMomentum:
		return func(r models.MetricRow) float64 { return orZero(r.Momentum) }
	default:
		return func(models.MetricRow) float64 { return 0 }
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
