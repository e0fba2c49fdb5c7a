package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roombooking/internal/metrics"
)

func TestRecorder_Observe(t *testing.T) {
	recorder := metrics.NewRecorder()

	recorder.Observe("createLocation", time.Now(), nil)
	recorder.Observe("createLocation", time.Now(), errors.New("boom"))
	recorder.Observe("allLocations", time.Now(), nil)

	expected := `
# HELP roombooking_graphql_operations_total GraphQL resolver calls by field and outcome.
# TYPE roombooking_graphql_operations_total counter
roombooking_graphql_operations_total{operation="allLocations",outcome="success"} 1
roombooking_graphql_operations_total{operation="createLocation",outcome="error"} 1
roombooking_graphql_operations_total{operation="createLocation",outcome="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected), "roombooking_graphql_operations_total"))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var recorder *metrics.Recorder
	assert.NotPanics(t, func() { recorder.Observe("allLocations", time.Now(), nil) })
}

func TestRecorder_Handler(t *testing.T) {
	recorder := metrics.NewRecorder()
	recorder.Observe("allRooms", time.Now(), nil)

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `roombooking_graphql_operation_duration_seconds_count{operation="allRooms"} 1`)
}
