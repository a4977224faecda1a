package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"property-dashboard/models"
)

type stubRunner struct {
	result *models.Result
	err    error
}

func (s *stubRunner) Run(ctx context.Context) (*models.Result, error) {
	return s.result, s.err
}

type panicRunner struct{}

func (panicRunner) Run(ctx context.Context) (*models.Result, error) {
	panic("nil catalog")
}

func serve(t *testing.T, runner Runner, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(runner, nil, zaptest.NewLogger(t).Sugar())

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := serve(t, &stubRunner{}, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestMetricsReport(t *testing.T) {
	report := &models.DashboardReport{
		GeneralMetrics:       models.GeneralMetrics{TotalProperties: 1, AveragePriceUSD: 100000, AverageM2: 50, AveragePricePerM2USD: 2000},
		PropertyTypeAnalysis: []models.PropertyTypeStats{},
		FacilitiesAnalysis:   []models.FacilityCount{},
	}
	rr := serve(t, &stubRunner{result: &models.Result{Report: report}}, "/dashboard/metrics")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	general := body["general_metrics"].(map[string]any)
	assert.Equal(t, 1.0, general["total_properties"])
	assert.Equal(t, 2000.0, general["average_price_per_m2_usd"])
}

func TestMetricsNoData(t *testing.T) {
	rr := serve(t, &stubRunner{result: &models.Result{Message: models.NoDataMessage}}, "/dashboard/metrics")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"No hay propiedades en la base de datos."}`, rr.Body.String())
}

func TestMetricsError(t *testing.T) {
	rr := serve(t, &stubRunner{err: errors.New("table not found")}, "/dashboard/metrics")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, ServerErrorPrefix+"table not found", body["error"])
	assert.NotContains(t, rr.Body.String(), "general_metrics")
}

func TestMetricsPanic(t *testing.T) {
	rr := serve(t, panicRunner{}, "/dashboard/metrics")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, ServerErrorPrefix+"nil catalog", body["error"])
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(&stubRunner{}, []string{"https://dashboard.example.com"}, zaptest.NewLogger(t).Sugar())

	req := httptest.NewRequest(http.MethodOptions, "/dashboard/metrics", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "https://dashboard.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}
