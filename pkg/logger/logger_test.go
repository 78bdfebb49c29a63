package logger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
	done    chan struct{}
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	select {
	case p.done <- struct{}{}:
	default:
	}
	return nil
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskview.log")
	l, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	l.Info("hello", String("view", "heatmap"))
}

func TestCollectorFoldsRepeatedErrors(t *testing.T) {
	pub := &capturePublisher{done: make(chan struct{}, 1)}
	l := Nop()
	l.AddCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "riskview.logs",
		Publisher:      pub,
	})
	defer l.RemoveCollector()

	boom := errors.New("backend down")
	fail := func(endpoint string) {
		l.Error("fetch failed", String("endpoint", endpoint), Error(boom))
	}
	fail("metrics")
	fail("metrics")
	fail("heatmap_data")

	select {
	case <-pub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("collector never published")
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.batches, 1)
	assert.Equal(t, "riskview.logs", pub.topic)

	counts := map[string]int{}
	for _, e := range pub.batches[0] {
		counts[e.Fields["endpoint"].(string)] = e.Count
	}
	assert.Equal(t, map[string]int{"metrics": 2, "heatmap_data": 1}, counts)
}
