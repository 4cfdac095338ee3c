package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/cache"
	"github.com/Zachkp/showcase/internal/portfolio"
)

func newStatusApp(t *testing.T) *app {
	t.Helper()
	db, err := cache.Open(filepath.Join(t.TempDir(), "showcase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := cache.NewSQLite(db)
	require.NoError(t, err)
	visitors, err := newVisitorLog(db)
	require.NoError(t, err)

	loader := portfolio.NewLoader(stubSource{projects: makeProjects(2)}, store)
	require.NoError(t, loader.Load(context.Background()))

	a := newTestApp(t, nil, nil)
	a.loader = loader
	a.store = store
	a.visitors = visitors
	return a
}

func TestVisitorLog_HashesIP(t *testing.T) {
	a := newStatusApp(t)
	v := a.visitors

	assert.Equal(t, v.hashIP("10.0.0.1"), v.hashIP("10.0.0.1"))
	assert.NotEqual(t, v.hashIP("10.0.0.1"), v.hashIP("10.0.0.2"))
	assert.Len(t, v.hashIP("10.0.0.1"), 16)

	require.NoError(t, v.record("10.0.0.1", "test-agent", "/"))
	require.NoError(t, v.record("10.0.0.1", "test-agent", "/"))
	require.NoError(t, v.record("10.0.0.2", "test-agent", "/"))

	var raw int
	require.NoError(t, v.db.QueryRow(`SELECT COUNT(*) FROM visitors WHERE hashed_ip = ?`, "10.0.0.1").Scan(&raw))
	assert.Zero(t, raw)

	stats, err := v.stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalVisitors)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
}

func TestVisitorLog_Cleanup(t *testing.T) {
	a := newStatusApp(t)
	v := a.visitors

	_, err := v.db.Exec(`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		"old", "ua", "/", time.Now().UTC().AddDate(-2, 0, 0))
	require.NoError(t, err)
	require.NoError(t, v.record("10.0.0.1", "ua", "/"))

	v.cleanup()

	stats, err := v.stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisitors)
}

func TestVisitorMiddleware_RespectsDNT(t *testing.T) {
	a := newStatusApp(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	a.router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Eventually(t, func() bool {
		stats, err := a.visitors.stats()
		return err == nil && stats.TotalVisitors == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStatusAPI(t *testing.T) {
	a := newStatusApp(t)

	w := get(t, a, "/status/api")
	require.Equal(t, http.StatusOK, w.Code)

	var st SiteStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Projects)
	assert.Equal(t, 0, st.Experiences)
	require.Len(t, st.Cache, 2)
	assert.Equal(t, cache.KeyExperiences, st.Cache[0].Key)
	assert.Equal(t, cache.KeyProjects, st.Cache[1].Key)
	assert.Equal(t, 0, st.Presence.Activities)
	assert.Empty(t, st.Presence.LastError)
	require.NotNil(t, st.Visitors)
}

func TestStatusPage(t *testing.T) {
	a := newStatusApp(t)

	w := get(t, a, "/status")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2 projects, 0 experiences")
	assert.Contains(t, w.Body.String(), "0 active")
}
