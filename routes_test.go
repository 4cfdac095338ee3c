package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/cache"
	"github.com/Zachkp/showcase/internal/portfolio"
	"github.com/Zachkp/showcase/internal/presence"
)

type stubSource struct {
	projects    []portfolio.Project
	experiences []portfolio.Experience
}

func (s stubSource) Projects(context.Context) ([]portfolio.Project, error) {
	return s.projects, nil
}

func (s stubSource) Experiences(context.Context) ([]portfolio.Experience, error) {
	return s.experiences, nil
}

type stubFetcher struct {
	activities []presence.RawActivity
}

func (f stubFetcher) Fetch(context.Context) ([]presence.RawActivity, error) {
	return f.activities, nil
}

func makeProjects(n int) []portfolio.Project {
	out := make([]portfolio.Project, n)
	for i := range out {
		out[i] = portfolio.Project{ID: int64(i + 1), Title: fmt.Sprintf("Project-%02d", i+1)}
	}
	return out
}

func newTestApp(t *testing.T, projects []portfolio.Project, raws []presence.RawActivity) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loader := portfolio.NewLoader(stubSource{
		projects: projects,
		experiences: []portfolio.Experience{
			{ID: 1, Role: "Backend Intern", Company: "Acme", Type: portfolio.Internship, Period: "2024", Description: "Wrote Go\nShipped APIs"},
		},
	}, cache.NewMemory())
	require.NoError(t, loader.Load(context.Background()))

	poller := presence.NewPoller(stubFetcher{activities: raws}, time.Minute)
	poller.Start(context.Background())
	t.Cleanup(poller.Stop)
	if len(raws) > 0 {
		require.Eventually(t, func() bool { return len(poller.Activities()) > 0 }, time.Second, 5*time.Millisecond)
	}

	return &app{cfg: Config{PresenceInterval: 5 * time.Second}, loader: loader, poller: poller}
}

func get(t *testing.T, a *app, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	a.router().ServeHTTP(w, req)
	return w
}

func TestPresencePartial_EmptyRendersNothing(t *testing.T) {
	a := newTestApp(t, nil, nil)

	w := get(t, a, "/presence")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, strings.TrimSpace(w.Body.String()))
}

func TestPresencePartial_RendersCards(t *testing.T) {
	a := newTestApp(t, nil, []presence.RawActivity{
		{Type: "spotify", Title: "Song A", Artist: "Artist A", Image: "img.png"},
		{Type: "coding", App: "Editor"},
		{Type: "gaming", Name: "Ignored third"},
	})

	body := get(t, a, "/presence").Body.String()
	assert.Contains(t, body, "NOW PLAYING")
	assert.Contains(t, body, `src="img.png"`)
	assert.Contains(t, body, "Artist A")
	assert.Contains(t, body, "CODING")
	assert.Contains(t, body, "Editor")
	assert.Contains(t, body, "<svg")
	assert.NotContains(t, body, "Ignored third")
	assert.Equal(t, 2, strings.Count(body, `class="presence-card`))
}

func TestPresencePartial_SpotifyMarkerIsInline(t *testing.T) {
	a := newTestApp(t, nil, []presence.RawActivity{
		{Type: "spotify", Title: "Song A", Artist: "Artist A", Image: "img.png"},
		{Type: "coding", App: "Editor"},
	})

	body := get(t, a, "/presence").Body.String()
	assert.NotContains(t, body, "/static/")
	assert.Equal(t, 1, strings.Count(body, `text-green-400 opacity-80`))
	assert.Contains(t, body, presence.Glyph(presence.IconSpotify))
}

func TestPortfolioPartial_TechStackIsTextOnly(t *testing.T) {
	a := newTestApp(t, nil, nil)

	body := get(t, a, "/portfolio?tab=2").Body.String()
	assert.NotContains(t, body, "/static/")
	assert.NotContains(t, body, ".svg")
	for _, ts := range portfolio.TechStacks {
		assert.Contains(t, body, ">"+ts.Monogram()+"<", ts.Language)
	}
	assert.Contains(t, body, "PostgreSQL")
}

func TestPortfolioPartial_CollapsedAndExpanded(t *testing.T) {
	a := newTestApp(t, makeProjects(8), nil)

	body := get(t, a, "/portfolio").Body.String()
	assert.Contains(t, body, "Project-06")
	assert.NotContains(t, body, "Project-07")
	assert.Contains(t, body, "See More")

	body = get(t, a, "/portfolio?projects=all").Body.String()
	assert.Contains(t, body, "Project-08")
	assert.Contains(t, body, "See Less")

	body = get(t, a, "/portfolio?vw=500").Body.String()
	assert.Contains(t, body, "Project-04")
	assert.NotContains(t, body, "Project-05")
}

func TestPortfolioPartial_ViewportClientHint(t *testing.T) {
	a := newTestApp(t, makeProjects(8), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.Header.Set("Sec-CH-Viewport-Width", "390")
	a.router().ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "Project-04")
	assert.NotContains(t, w.Body.String(), "Project-05")
}

func TestPortfolioPartial_NoToggleForShortList(t *testing.T) {
	a := newTestApp(t, makeProjects(6), nil)

	body := get(t, a, "/portfolio").Body.String()
	assert.Contains(t, body, "Project-06")
	assert.NotContains(t, body, "See More")
}

func TestPortfolioPartial_AllPanelsRendered(t *testing.T) {
	a := newTestApp(t, makeProjects(2), nil)

	body := get(t, a, "/portfolio?tab=1").Body.String()
	assert.Contains(t, body, "Project-01")
	assert.Contains(t, body, "Backend Intern")
	assert.Contains(t, body, "Shipped APIs")
	assert.Contains(t, body, "Golang")
	assert.Contains(t, body, `id="panel-0" role="tabpanel" aria-labelledby="tab-0" class="p-3" hidden`)
	assert.NotContains(t, body, `aria-labelledby="tab-1" class="p-3" hidden`)
}

func TestIndexPage(t *testing.T) {
	a := newTestApp(t, makeProjects(1), []presence.RawActivity{{Type: "coding", App: "Editor"}})

	w := get(t, a, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sec-CH-Viewport-Width", w.Header().Get("Accept-CH"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	body := w.Body.String()
	assert.Contains(t, body, ShowcaseTitle)
	assert.Contains(t, body, `hx-trigger="every 5000ms"`)
	assert.Contains(t, body, "Project-01")
	assert.Contains(t, body, "CODING")
}

func TestAPIPortfolio(t *testing.T) {
	a := newTestApp(t, makeProjects(3), nil)

	w := get(t, a, "/api/portfolio")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Projects    []portfolio.Project    `json:"projects"`
		Experiences []portfolio.Experience `json:"experiences"`
		TechStack   []portfolio.TechStack  `json:"tech_stack"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, makeProjects(3), body.Projects)
	assert.Len(t, body.Experiences, 1)
	assert.Len(t, body.TechStack, len(portfolio.TechStacks))
}

func TestAPIPresence(t *testing.T) {
	a := newTestApp(t, nil, []presence.RawActivity{{Type: "spotify", Title: "Song A", Artist: "Artist A", Image: "img.png"}})

	w := get(t, a, "/api/presence")
	var body struct {
		Activities []presence.Activity `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Activities, 1)
	assert.Equal(t, presence.Activity{
		Key: "spotify-0", Type: "spotify", Title: "Song A", Subtitle: "Artist A", Image: "img.png", Icon: presence.IconSpotify,
	}, body.Activities[0])
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	a := newTestApp(t, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/presence", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	a.router().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRunPresence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"activities":[{"type":"coding","app":"Editor"},{"type":"spotify","title":"Song A"},{"type":"gaming"}]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	cfg := Config{PresenceURL: srv.URL, FetchTimeout: time.Second}
	require.NoError(t, runPresence(context.Background(), cfg, &out))

	var lines []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &lines))
	require.Len(t, lines, 2)
	assert.Equal(t, "Coding", lines[0]["title"])
	assert.Equal(t, "CODING", lines[0]["label"])
	assert.Equal(t, "NOW PLAYING", lines[1]["label"])
}
