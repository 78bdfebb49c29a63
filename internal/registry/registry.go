// Package registry holds the static category to index mapping used to filter the metrics table.
package registry

import (
	"sort"

	"RiskView/internal/domain/models"
)

// Registry maps category names to ordered index identifiers. It is immutable after New.
type Registry struct {
	order   []string
	members map[string][]string
	sets    map[string]map[string]struct{}
}

// New builds a registry; order fixes the listing order of categories.
func New(order []string, categories map[string][]string) *Registry {
	r := &Registry{
		members: make(map[string][]string, len(categories)),
		sets:    make(map[string]map[string]struct{}, len(categories)),
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if _, ok := categories[name]; ok && !seen[name] {
			r.order = append(r.order, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0)
	for name := range categories {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	r.order = append(r.order, rest...)

	for name, ids := range categories {
		list := append([]string(nil), ids...)
		set := make(map[string]struct{}, len(list))
		for _, id := range list {
			set[id] = struct{}{}
		}
		r.members[name] = list
		r.sets[name] = set
	}
	return r
}

// Default returns the built-in registry.
func Default() *Registry {
	return New(defaultOrder, defaultCategories)
}

// Categories lists category names in display order.
func (r *Registry) Categories() []string {
	return append([]string(nil), r.order...)
}

// Members returns the index identifiers of category. Lookup is case-sensitive.
func (r *Registry) Members(category string) ([]string, bool) {
	ids, ok := r.members[category]
	if !ok {
		return nil, false
	}
	return append([]string(nil), ids...), true
}

// Contains reports whether index belongs to category.
func (r *Registry) Contains(category, index string) bool {
	_, ok := r.sets[category][index]
	return ok
}

// Filter keeps rows whose index is a member of category, preserving input order.
// An unknown category yields no rows.
func (r *Registry) Filter(category string, rows []models.MetricRow) []models.MetricRow {
	if _, ok := r.members[category]; !ok {
		return nil
	}
	out := make([]models.MetricRow, 0, len(r.members[category]))
	for _, row := range rows {
		if r.Contains(category, row.IndexName) {
			out = append(out, row)
		}
	}
	return out
}
