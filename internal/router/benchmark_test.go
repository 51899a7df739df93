package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/report"
	"github.com/DjordjeVuckovic/polybench/internal/bench/runner"
	"github.com/DjordjeVuckovic/polybench/internal/bench/service"
	"github.com/DjordjeVuckovic/polybench/internal/bench/spec"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"github.com/DjordjeVuckovic/polybench/internal/storage/storagetest"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runFunc func(ctx context.Context) (*report.Report, error)

func (f runFunc) Run(ctx context.Context) (*report.Report, error) { return f(ctx) }

func serve(t *testing.T, r BenchmarkRunner) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewBenchmarkRouter(e, r).Bind()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/benchmark", nil))
	return rec
}

func TestBenchmarkHandler_OK(t *testing.T) {
	bs, err := spec.Parse([]byte(`
operations_count:
  write: 20
  read: 4
databases_to_test:
  fake-a: memory
  fake-b: memory
`))
	require.NoError(t, err)

	svc := service.New(bs, []storage.Backend{storagetest.New("fake-a"), storagetest.New("fake-b")}, nil)

	rec := serve(t, svc)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []struct {
			Database         string  `json:"database"`
			Operation        string  `json:"operation"`
			RecordsProcessed int     `json:"records_processed"`
			TotalTime        float64 `json:"total_time"`
		} `json:"results"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Results, 4)
	assert.Equal(t, "fake-a", body.Results[0].Database)
	assert.Equal(t, "Write", body.Results[0].Operation)
	assert.Equal(t, 20, body.Results[0].RecordsProcessed)
	assert.Empty(t, body.Warnings)
}

func TestBenchmarkHandler_ConnectionFailure(t *testing.T) {
	rec := serve(t, runFunc(func(context.Context) (*report.Report, error) {
		rpt := &report.Report{Status: runner.ConnectionCheckFailed, Warnings: []string{"mongo: connection refused"}}
		return rpt, runner.ErrConnectionCheckFailed
	}))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"connection check failed","warnings":["mongo: connection refused"]}`, rec.Body.String())
}

func TestBenchmarkHandler_ValidationError(t *testing.T) {
	rec := serve(t, runFunc(func(context.Context) (*report.Report, error) {
		return nil, apperr.NewValidation("spec has no operations")
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
