package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axiom/internal/calendar"
	"axiom/internal/config"
	"axiom/internal/game"
	"axiom/internal/notify"
	"axiom/internal/quest"
	"axiom/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := calendar.NewFakeClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	logger := log.New(io.Discard, "", 0)
	engine := game.New(store, clock, config.Default(), logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, &App{Engine: engine, Log: logger})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestQuestLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var created quest.Quest
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quests", `{"title":"Morning run","linked_stat":"physical"}`, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, quest.CadenceDaily, created.Cadence)

	var completed game.CompleteResult
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/quests/"+created.ID+"/complete", "", &completed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 100, completed.XPGained)

	// Completing again is the user's mistake, not a server fault.
	var body map[string]string
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/quests/"+created.ID+"/complete", "", &body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["error"], "already completed")

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/quests/"+created.ID+"/uncomplete", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/quests/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var quests []quest.Quest
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/quests", "", &quests)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, quests)
}

func TestCreateQuestRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quests", `{"title":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/quests", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionAndWorldEndpoints(t *testing.T) {
	srv := newTestServer(t)

	var session game.SessionResult
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/session/start", "", &session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-01-10", session.World.Day)

	var world map[string]any
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/world", "", &world)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/world/districts/d_ironworks/structures/s_forge/build", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "fresh player cannot afford a forge")
}

func TestNotificationPreview(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/session/start", "", nil)
	doJSON(t, http.MethodPost, srv.URL+"/api/quests", `{"title":"Morning run"}`, nil)

	var d notify.Decision
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/notifications/preview", "", &d)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, d.ShouldNotify)
	assert.NotEmpty(t, d.Title)
}
