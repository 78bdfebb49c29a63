package riskapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"RiskView/internal/domain/models"
	xhttp "RiskView/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchRecorder struct {
	mu     sync.Mutex
	ok     map[string]int
	failed map[string]int
}

func newFetchRecorder() *fetchRecorder {
	return &fetchRecorder{ok: map[string]int{}, failed: map[string]int{}}
}

func (r *fetchRecorder) RecordFetch(endpoint string, _ float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed[endpoint]++
		return
	}
	r.ok[endpoint]++
}
func (r *fetchRecorder) RecordRender(string) {}
func (r *fetchRecorder) RecordStale(string)  {}
func (r *fetchRecorder) RecordError(string)  {}

func TestHeatmapDataRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Risk-Reward/api/heatmap_data", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "NIFTY 50", q.Get("index"))
		assert.Equal(t, "all", q.Get("duration"))
		assert.Equal(t, "rolling", q.Get("mode"))
		assert.Equal(t, "3.5", q.Get("timeline"))
		assert.Equal(t, "1700000000000", q.Get("_"))
		_, _ = w.Write([]byte(`{"indexName":"NIFTY 50","cagr":0.12,"mode":"rolling","timeline":3.5,
			"heatmapData":{"2023":{"1":5.2,"2":null}}}`))
	}))
	defer srv.Close()

	rec := newFetchRecorder()
	c := New(srv.URL+"/", time.Second,
		WithMetrics(rec),
		WithClock(func() time.Time { return time.UnixMilli(1700000000000) }),
	)
	p, err := c.HeatmapData(context.Background(), "/Risk-Reward", models.HeatmapQuery{
		Index: "NIFTY 50", Mode: models.ModeRolling, Timeline: 3.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "NIFTY 50", p.IndexName)
	assert.Equal(t, models.Timeline(3.5), p.Timeline)
	assert.Nil(t, p.Month("2023", 2))
	assert.Equal(t, 1, rec.ok[endpointHeatmap])
}

func TestMetricsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/metrics", r.URL.Path)
		assert.Equal(t, "3years", r.URL.Query().Get("duration"))
		_, _ = w.Write([]byte(`[{"Index Name":"NBANK","Ret":1,"V1":null,"Risk":50,"AbsMom":null,"RMom":2}]`))
	}))
	defer srv.Close()

	rows, err := New(srv.URL, time.Second).Metrics(context.Background(), "", "3years")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Momentum)
	assert.Equal(t, 2.0, *rows[0].Momentum)
}

func TestFetchFailureKeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Index 'X' not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	rec := newFetchRecorder()
	_, err := New(srv.URL, time.Second, WithMetrics(rec)).HeatmapData(context.Background(), "", models.HeatmapQuery{
		Index: "X", Mode: models.ModeTrailing, Timeline: 3,
	})
	require.Error(t, err)

	var se *xhttp.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, 1, rec.failed[endpointHeatmap])
}

func TestFetchHonoursContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL, 5*time.Second).Metrics(ctx, "", "3years")
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	c := New("http://backend:5000/", time.Second)
	assert.Equal(t, "http://backend:5000/api/metrics", c.URL("", "metrics"))
	assert.Equal(t, "http://backend:5000/riskreward/api/metrics", c.URL("/riskreward", "metrics"))
}
