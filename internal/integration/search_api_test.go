package integration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/akinankarali/upwork-job-api/internal/app"
	"github.com/akinankarali/upwork-job-api/internal/config"
	"github.com/akinankarali/upwork-job-api/internal/database/migration"
	dbpostgres "github.com/akinankarali/upwork-job-api/internal/database/postgres"
	"github.com/akinankarali/upwork-job-api/internal/domain/job"
	"github.com/akinankarali/upwork-job-api/internal/infrastructure/persistence/postgres"
	"github.com/akinankarali/upwork-job-api/internal/scraper"
	"github.com/akinankarali/upwork-job-api/internal/usecase"
	"github.com/akinankarali/upwork-job-api/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<article data-test="JobTile">
  <a data-test="job-tile-title-link" href="/jobs/~01">Build a Go scraper</a>
  <li data-test="job-type-label">Hourly: $20-$50</li>
  <div data-test="TokenClamp JobAttrs"><span>Go</span></div>
</article>
<article data-test="JobTile"><p>promoted slot without a title</p></article>
<article data-test="JobTile">
  <a data-test="job-tile-title-link" href="https://www.upwork.com/jobs/~02">Fiber API</a>
</article>
</body></html>`

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type pageNavigator struct {
	mu   sync.Mutex
	html string
	err  error
	last string
}

func (n *pageNavigator) Navigate(_ context.Context, u string) (*scraper.Page, error) {
	n.mu.Lock()
	n.last = u
	n.mu.Unlock()
	if n.err != nil {
		return nil, &scraper.NavigationError{URL: u, Cause: n.err}
	}
	return scraper.NewPage(u, n.html)
}

func newTestApp(t *testing.T, nav scraper.Navigator, runs usecase.RunRecorder) *fiber.App {
	t.Helper()

	logger := log.New(io.Discard, "", 0)
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	hub := ws.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	c := &app.Container{
		Config:    cfg,
		Logger:    logger,
		Navigator: nav,
		Hub:       hub,
		Search: usecase.NewSearchService(usecase.SearchDeps{
			Navigator: nav,
			Runs:      runs,
			Notifier:  ws.NewNotifier(hub),
			Logger:    logger,
		}),
	}
	return app.New(c).Fiber
}

func get(t *testing.T, a *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := a.Test(httptest.NewRequest(http.MethodGet, target, nil), fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BROWSER_MODE", "BROWSER_TIMEOUT", "BROWSER_HEADLESS", "HTTP_PORT", "REDIS_TTL", "REDIS_PORT", "DB_HOST"} {
		t.Setenv(k, "")
	}
}

func TestIntegration_SearchEndpoint(t *testing.T) {
	clearConfigEnv(t)
	nav := &pageNavigator{html: searchPage}
	a := newTestApp(t, nav, nil)

	status, body := get(t, a, "/search?query=golang&rate_min=20&rate_max=50")
	require.Equal(t, http.StatusOK, status, string(body))

	u, err := url.Parse(nav.last)
	require.NoError(t, err)
	assert.Equal(t, "www.upwork.com", u.Host)
	assert.Equal(t, "/nx/jobs/search/", u.Path)
	assert.Equal(t, url.Values{"q": {"golang"}, "hourly_rate_min": {"20"}, "hourly_rate_max": {"50"}}, u.Query())

	var items []job.Listing
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Build a Go scraper", items[0].Title)
	assert.Equal(t, "https://www.upwork.com/jobs/~01", items[0].URL)
	assert.Equal(t, "Hourly: $20-$50", items[0].Rate)
	assert.Equal(t, []string{"Go"}, items[0].Tags)
	assert.Equal(t, "Fiber API", items[1].Title)
	assert.Equal(t, "https://www.upwork.com/jobs/~02", items[1].URL)
}

func TestIntegration_SearchErrors(t *testing.T) {
	clearConfigEnv(t)

	a := newTestApp(t, &pageNavigator{html: searchPage}, nil)
	status, body := get(t, a, "/search?rate_min=abc")
	assert.Equal(t, http.StatusBadRequest, status)
	var sr semanticResponse
	require.NoError(t, json.Unmarshal(body, &sr))
	assert.Equal(t, http.StatusBadRequest, sr.Status)

	a = newTestApp(t, &pageNavigator{err: errors.New("net::ERR_CONNECTION_RESET")}, nil)
	status, body = get(t, a, "/search?query=golang")
	assert.Equal(t, http.StatusBadGateway, status)
	require.NoError(t, json.Unmarshal(body, &sr))
	assert.Equal(t, http.StatusBadGateway, sr.Status)
}

func TestIntegration_Health(t *testing.T) {
	clearConfigEnv(t)
	a := newTestApp(t, &pageNavigator{}, nil)

	status, body := get(t, a, "/health")
	require.Equal(t, http.StatusOK, status)

	var sr semanticResponse
	require.NoError(t, json.Unmarshal(body, &sr))
	var data map[string]string
	require.NoError(t, json.Unmarshal(sr.Data, &data))
	assert.Equal(t, "chromedp", data["browser_mode"])
	assert.Equal(t, "disabled", data["cache"])
	assert.Equal(t, "disabled", data["database"])
}

func TestIntegration_SearchRunsRecorded(t *testing.T) {
	host := os.Getenv("UPWORK_TEST_DB_HOST")
	if host == "" {
		t.Skip("missing test DB env vars: set UPWORK_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}
	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     os.Getenv("UPWORK_TEST_DB_PORT"),
		DBName:     os.Getenv("UPWORK_TEST_DB_NAME"),
		DBUser:     os.Getenv("UPWORK_TEST_DB_USER"),
		DBPassword: os.Getenv("UPWORK_TEST_DB_PASSWORD"),
		DBSSLMode:  "disable",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, dbcfg)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, migration.Runner{}.Run(ctx, db.SQLDB()))

	repo := postgres.NewSearchRunRepository(db)
	before, err := repo.CountRuns(ctx, usecase.RunStatusFinished)
	require.NoError(t, err)

	clearConfigEnv(t)
	a := newTestApp(t, &pageNavigator{html: searchPage}, repo)
	status, _ := get(t, a, "/search?query=golang")
	require.Equal(t, http.StatusOK, status)

	after, err := repo.CountRuns(ctx, usecase.RunStatusFinished)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}
