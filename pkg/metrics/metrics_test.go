package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)

	assert.NotNil(t, r.SolvesTotal)
	assert.NotNil(t, r.PreprocessTotal)
	assert.NotNil(t, r.BenchmarkSpeedup)
	assert.NotNil(t, r.HTTPRequestsTotal)
	assert.NotNil(t, r.GetPrometheusRegistry())
}

func TestRecordSolve(t *testing.T) {
	r := NewRegistry()

	r.RecordSolve("dijkstra-optimized", StatusOK, 2*time.Millisecond, 4, 4)
	r.RecordSolve("dijkstra-optimized", StatusOK, 3*time.Millisecond, 4, 4)
	r.RecordSolve("enhanced-sssp", StatusError, 0, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SolvesTotal.WithLabelValues("dijkstra-optimized", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SolvesTotal.WithLabelValues("enhanced-sssp", StatusError)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.SolveDuration))
}

func TestRecordPreprocess(t *testing.T) {
	r := NewRegistry()

	r.RecordPreprocess(true, time.Millisecond, 3, 7)
	r.RecordPreprocess(false, 0, 99, 99)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.PreprocessTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.PreprocessTotal.WithLabelValues(StatusError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.Clusters))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.BoundaryNodes))
}

func TestRecordBenchmark(t *testing.T) {
	r := NewRegistry()
	r.RecordBenchmark(2, 3, 1.5)

	assert.Equal(t, 1.5, testutil.ToFloat64(r.BenchmarkSpeedup))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.BenchmarkMeanMs.WithLabelValues("dijkstra-optimized")))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.RecordSolve("dijkstra-optimized", StatusOK, time.Millisecond, 1, 1)
		r.RecordPreprocess(true, time.Millisecond, 1, 1)
		r.RecordBenchmark(1, 1, 1)
		r.RecordHTTPRequest("GET", "/", "200", time.Millisecond)
	})
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/api/v1/health", "200", time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sssp_http_requests_total")
}
