package usecase

import (
	"context"
	"sync"
)

// LocalGenerations keeps generation counters in process memory.
type LocalGenerations struct {
	mu  sync.Mutex
	gen map[string]int64
}

func NewLocalGenerations() *LocalGenerations {
	return &LocalGenerations{gen: make(map[string]int64)}
}

func (g *LocalGenerations) Next(_ context.Context, viewID string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen[viewID]++
	return g.gen[viewID], nil
}

func (g *LocalGenerations) Current(_ context.Context, viewID string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen[viewID], nil
}
