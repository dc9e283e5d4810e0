package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akinankarali/upwork-job-api/internal/delivery/http/middleware"
	"github.com/akinankarali/upwork-job-api/internal/domain/job"
	"github.com/akinankarali/upwork-job-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchUsecase struct {
	items []job.Listing
	err   error
	got   usecase.RawParams
}

func (f *fakeSearchUsecase) Search(_ context.Context, raw usecase.RawParams) ([]job.Listing, error) {
	f.got = raw
	return f.items, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(uc usecase.SearchUsecase, health *HealthHandler) *fiber.App {
	logger := log.New(io.Discard, "", 0)
	app := fiber.New()
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	NewSearchHandler(uc).RegisterRoutes(app)
	if health != nil {
		health.RegisterRoutes(app)
	}
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHandleSearch_ReturnsBareArray(t *testing.T) {
	uc := &fakeSearchUsecase{items: []job.Listing{
		{Title: "Go dev", URL: "https://www.upwork.com/jobs/1", Tags: []string{"Go"}},
	}}
	app := newTestApp(uc, nil)

	resp, body := doGet(t, app, "/search?query=golang&rate_min=20&rate_max=50&workload=&unknown=x")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Go dev", items[0]["title"])
	assert.Equal(t, "", items[0]["description"])
	assert.Equal(t, []any{"Go"}, items[0]["tags"])

	assert.Equal(t, usecase.RawParams{
		usecase.ParamQuery:   "golang",
		usecase.ParamRateMin: "20",
		usecase.ParamRateMax: "50",
	}, uc.got)
}

func TestHandleSearch_EmptyResultIsEmptyArray(t *testing.T) {
	app := newTestApp(&fakeSearchUsecase{}, nil)

	resp, body := doGet(t, app, "/search")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHandleSearch_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid input", fmt.Errorf("%w: rate_min must be an integer, got \"abc\"", usecase.ErrInvalidInput), http.StatusBadRequest, "bad request"},
		{"navigation", fmt.Errorf("%w: %w", usecase.ErrNavigation, errors.New("timeout")), http.StatusBadGateway, "search page could not be loaded"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeSearchUsecase{err: tc.err}, nil)

			resp, body := doGet(t, app, "/search?rate_min=abc")
			assert.Equal(t, tc.status, resp.StatusCode)

			var sr semanticResponse
			require.NoError(t, json.Unmarshal(body, &sr))
			assert.Equal(t, tc.status, sr.Status)
			assert.Equal(t, tc.message, sr.Message)
		})
	}
}

func TestHandleSearch_InvalidInputCarriesDetail(t *testing.T) {
	err := fmt.Errorf("%w: rate_max must be an integer, got \"x\"", usecase.ErrInvalidInput)
	app := newTestApp(&fakeSearchUsecase{err: err}, nil)

	_, body := doGet(t, app, "/search?rate_max=x")
	var sr semanticResponse
	require.NoError(t, json.Unmarshal(body, &sr))

	var data map[string]string
	require.NoError(t, json.Unmarshal(sr.Data, &data))
	assert.Contains(t, data["error"], "rate_max")
}

func TestHandleSearch_Unconfigured(t *testing.T) {
	app := newTestApp(nil, nil)

	resp, _ := doGet(t, app, "/search")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleHealth(t *testing.T) {
	health := NewHealthHandler("static", fakePinger{err: errors.New("refused")}, nil)
	app := newTestApp(&fakeSearchUsecase{}, health)

	resp, body := doGet(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sr semanticResponse
	require.NoError(t, json.Unmarshal(body, &sr))
	assert.Equal(t, "ok", sr.Message)

	var data map[string]string
	require.NoError(t, json.Unmarshal(sr.Data, &data))
	assert.Equal(t, map[string]string{"browser_mode": "static", "cache": "down", "database": "disabled"}, data)
}

func TestAccessLog_KeepsCallerRequestID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(middleware.NewAccessLogMiddleware(log.New(&buf, "", 0)).Middleware())
	NewSearchHandler(&fakeSearchUsecase{}).RegisterRoutes(app)

	req := httptest.NewRequest(http.MethodGet, "/search?query=go", nil)
	req.Header.Set(middleware.HeaderRequestID, "rid-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "rid-123", resp.Header.Get(middleware.HeaderRequestID))
	assert.Contains(t, buf.String(), "rid=rid-123")
	assert.Contains(t, buf.String(), "status=200")
}
