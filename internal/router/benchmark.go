package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/polybench/internal/bench/report"
	"github.com/DjordjeVuckovic/polybench/internal/bench/runner"
	"github.com/labstack/echo/v4"
)

type BenchmarkRunner interface {
	Run(ctx context.Context) (*report.Report, error)
}

type BenchmarkRouter struct {
	e      *echo.Echo
	runner BenchmarkRunner
}

func NewBenchmarkRouter(e *echo.Echo, runner BenchmarkRunner) *BenchmarkRouter {
	return &BenchmarkRouter{
		e:      e,
		runner: runner,
	}
}

func (r *BenchmarkRouter) Bind() {
	r.e.GET("/benchmark", r.benchmarkHandler)
}

type BenchmarkResponse struct {
	Results  []runner.Result `json:"results"`
	Warnings []string        `json:"warnings,omitempty"`
}

type BenchmarkErrorResponse struct {
	Error    string   `json:"error"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *BenchmarkRouter) benchmarkHandler(c echo.Context) error {
	rpt, err := r.runner.Run(c.Request().Context())
	if errors.Is(err, runner.ErrConnectionCheckFailed) {
		resp := BenchmarkErrorResponse{Error: runner.ErrConnectionCheckFailed.Error()}
		if rpt != nil {
			resp.Warnings = rpt.Warnings
		}
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	if err != nil {
		return err
	}

	slog.Info("benchmark served", "run_id", rpt.Meta.RunID, "results", len(rpt.Results))

	results := rpt.Results
	if results == nil {
		results = []runner.Result{}
	}
	return c.JSON(http.StatusOK, BenchmarkResponse{Results: results, Warnings: rpt.Warnings})
}
