package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())

	r.RecordFetch("metrics", 0.2, nil)
	r.RecordFetch("metrics", 0.1, errors.New("boom"))
	r.RecordStale("heatmap")
	r.RecordStale("heatmap")
	r.RecordRender("category")
	r.RecordError("no_data")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("metrics", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("metrics", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.stale.WithLabelValues("heatmap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.renders.WithLabelValues("category")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("no_data")))
}
