package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ka2n/yure/api"
	"github.com/ka2n/yure/display"
	"github.com/ka2n/yure/metrics"
	"github.com/ka2n/yure/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	result api.Result
	calls  int
}

func (s *stubGenerator) Generate(_ context.Context) api.Result {
	s.calls++
	return s.result
}

func newTestServer(gen server.ReportGenerator, clock clockwork.Clock) *server.Server {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	return server.New(gen, server.Options{
		Addr:     ":0",
		Stylizer: display.Stylizer{WordWrap: 80, GlamourStyle: "notty"},
		Gatherer: reg,
		Clock:    clock,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestReportPlain(t *testing.T) {
	gen := &stubGenerator{result: api.Result{
		Text:    "<b>Report</b>\n\n<b>Location: </b> El Salvador\n<b>Magnitude: </b> 3.2\n<b>Time: </b> 2022-05-01 00:00:00\n",
		Outcome: api.OutcomeReport,
	}}
	srv := newTestServer(gen, clockwork.NewFakeClock())

	rec := get(t, srv, "/report")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "report", rec.Header().Get("X-Report-Outcome"))
	assert.Equal(t, "Report\n\nLocation:  El Salvador\nMagnitude:  3.2\nTime:  2022-05-01 00:00:00\n", rec.Body.String())
	assert.Equal(t, 1, gen.calls)
}

func TestReportRaw(t *testing.T) {
	gen := &stubGenerator{result: api.Result{Text: "<b>Report</b>\n", Outcome: api.OutcomeReport}}
	srv := newTestServer(gen, clockwork.NewFakeClock())

	rec := get(t, srv, "/report?style=raw")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<b>Report</b>\n", rec.Body.String())
}

func TestReportFetchFailure(t *testing.T) {
	gen := &stubGenerator{result: api.Result{Text: api.MessageFetchFailure, Outcome: api.OutcomeFetchFailure}}
	srv := newTestServer(gen, clockwork.NewFakeClock())

	rec := get(t, srv, "/report")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, api.MessageFetchFailure, rec.Body.String())
}

func TestReportNoData(t *testing.T) {
	gen := &stubGenerator{result: api.Result{Text: api.MessageNoData, Outcome: api.OutcomeNoData}}
	srv := newTestServer(gen, clockwork.NewFakeClock())

	rec := get(t, srv, "/report")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no_data", rec.Header().Get("X-Report-Outcome"))
	assert.Equal(t, api.MessageNoData, rec.Body.String())
}

func TestReportUnknownStyle(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer(gen, clockwork.NewFakeClock())

	rec := get(t, srv, "/report?style=pdf")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, gen.calls, "no fetch for a rejected request")
}

func TestHealthzReportsUptime(t *testing.T) {
	clock := clockwork.NewFakeClock()
	srv := newTestServer(&stubGenerator{}, clock)
	clock.Advance(90 * time.Second)

	rec := get(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1m30s", body["uptime"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubGenerator{}, clockwork.NewFakeClock())

	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "yure_report_generations_total")
}
