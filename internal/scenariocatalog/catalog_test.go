package scenariocatalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-engine/internal/model"
)

func newCatalogServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		id := strings.TrimPrefix(r.URL.Path, "/scenarios/")
		switch id {
		case "on_time_billing":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"use_case_id":"on_time_billing","scenarios":{
				"realistic":{"label":"Tenant realistic","frequency_reduction":0.5,"cost_reduction":0.5}}}`))
		case "reduce_exceptions":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"use_case_id":"reduce_exceptions","scenarios":{
				"realistic":{"label":"Too good","frequency_reduction":1.5,"cost_reduction":0.3}}}`))
		case "broken":
			_, _ = w.Write([]byte(`{not json`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOverrides_Disabled(t *testing.T) {
	c := New("")
	assert.False(t, c.Enabled())
	assert.Empty(t, c.Overrides(context.Background(), []string{"on_time_billing"}))
}

func TestOverrides_FetchesAndFallsBack(t *testing.T) {
	var hits atomic.Int32
	srv := newCatalogServer(t, &hits)
	c := New(srv.URL)

	got := c.Overrides(context.Background(), []string{"on_time_billing", "missing", "broken"})

	require.Len(t, got, 1)
	assert.Equal(t, model.ScenarioDefinition{Label: "Tenant realistic", FrequencyReduction: 0.5, CostReduction: 0.5},
		got["on_time_billing"][model.ScenarioRealistic])
	assert.Equal(t, int32(3), hits.Load())
}

func TestOverrides_RejectsReductionsOutOfRange(t *testing.T) {
	var hits atomic.Int32
	srv := newCatalogServer(t, &hits)
	c := New(srv.URL)

	got := c.Overrides(context.Background(), []string{"on_time_billing", "reduce_exceptions"})

	assert.Contains(t, got, "on_time_billing")
	assert.NotContains(t, got, "reduce_exceptions")

	got = c.Overrides(context.Background(), []string{"reduce_exceptions"})
	assert.Empty(t, got)
	assert.Equal(t, int32(2), hits.Load())
}

func TestOverrides_CachesResultsAndFailures(t *testing.T) {
	var hits atomic.Int32
	srv := newCatalogServer(t, &hits)
	c := New(srv.URL)

	ids := []string{"on_time_billing", "missing"}
	first := c.Overrides(context.Background(), ids)
	second := c.Overrides(context.Background(), ids)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(2), hits.Load())

	second["on_time_billing"][model.ScenarioRealistic] = model.ScenarioDefinition{}
	third := c.Overrides(context.Background(), ids)
	assert.Equal(t, 0.5, third["on_time_billing"][model.ScenarioRealistic].CostReduction)
}

func TestOverrides_UnreachableCatalog(t *testing.T) {
	c := New("http://127.0.0.1:1")
	assert.Empty(t, c.Overrides(context.Background(), []string{"on_time_billing"}))
}

func TestStatusError(t *testing.T) {
	err := &StatusError{UseCaseID: "x", Status: http.StatusNotFound}
	assert.Equal(t, "scenario catalog returned Not Found for x", err.Error())
}
