package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasb/storyquest/internal/api"
	"github.com/lucasb/storyquest/internal/content"
	"github.com/lucasb/storyquest/internal/repository/sqlite"
	"github.com/lucasb/storyquest/internal/services"
	"github.com/lucasb/storyquest/internal/testutil"
)

const apiTestPack = `{
  "title": "The Crystal Forest",
  "start_scene": "gate",
  "scenes": [
    {
      "id": "gate",
      "text": "A stone gate blocks the path.",
      "choices": [{"label": "Face the keeper", "next": "riddle"}]
    },
    {
      "id": "riddle",
      "text": "The gate keeper asks a question.",
      "puzzle_id": "math-apples",
      "on_solved": "meadow",
      "on_exhausted": "gate"
    },
    {"id": "meadow", "text": "A sunny meadow opens up."}
  ],
  "puzzles": [
    {
      "id": "math-apples",
      "category": "math",
      "tier": "medium",
      "question": "15 + 8 = ?",
      "answer": 23,
      "hints": ["Count up from 15."]
    }
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database := testutil.NewTestDB(t)
	t.Cleanup(func() { database.Close() })

	catalog, err := content.Load(strings.NewReader(apiTestPack))
	require.NoError(t, err)

	profileRepo := sqlite.NewProfileRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	badgeRepo := sqlite.NewBadgeRepository(database.DB)
	eventRepo := sqlite.NewEventRepository(database.DB)

	progress := services.NewProgressService(progressRepo, catalog.StartScene)
	badges := services.NewBadgeService(badgeRepo, progressRepo)
	puzzles := services.NewPuzzleService(services.PuzzleServiceDeps{
		Catalog:     catalog,
		Progress:    progress,
		Badges:      badges,
		MaxAttempts: 3,
	})

	srv := &api.Server{
		Profiles: services.NewProfileService(profileRepo),
		Story:    services.NewStoryService(catalog, progress, puzzles, nil),
		Puzzles:  puzzles,
		Progress: progress,
		Badges:   badges,
		Stats:    services.NewStatsService(profileRepo, progressRepo, badgeRepo, eventRepo),
		DB:       database,
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, cookies []*http.Cookie, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestAPI_FullGameplayFlow(t *testing.T) {
	ts := newTestServer(t)

	// Create a profile; the cookie selects it.
	var profile struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	resp := doJSON(t, ts, http.MethodPost, "/api/profiles", map[string]string{"name": "Maya"}, nil, &profile)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Maya", profile.Name)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	// Fresh save starts at the entry scene.
	var scene struct {
		ID        string `json:"id"`
		HasPuzzle bool   `json:"has_puzzle"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/story/scene", nil, cookies, &scene)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gate", scene.ID)

	// Walk to the riddle scene.
	resp = doJSON(t, ts, http.MethodPost, "/api/story/choose", map[string]string{"next": "riddle"}, cookies, &scene)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "riddle", scene.ID)
	assert.True(t, scene.HasPuzzle)

	// Start the embedded puzzle.
	var view struct {
		SessionID         string `json:"session_id"`
		Question          string `json:"question"`
		AttemptsRemaining int    `json:"attempts_remaining"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/puzzles/start", map[string]string{"scene_id": "riddle"}, cookies, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "15 + 8 = ?", view.Question)
	assert.Equal(t, 3, view.AttemptsRemaining)

	// Wrong answer first.
	var submit struct {
		Correct           bool   `json:"correct"`
		Status            string `json:"status"`
		AttemptsRemaining int    `json:"attempts_remaining"`
		Score             int    `json:"score"`
		NextScene         string `json:"next_scene"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/puzzles/"+view.SessionID+"/answer", map[string]any{"answer": 20}, cookies, &submit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, submit.Correct)
	assert.Equal(t, 2, submit.AttemptsRemaining)

	// Case-insensitive numeric answer solves it.
	resp = doJSON(t, ts, http.MethodPost, "/api/puzzles/"+view.SessionID+"/answer", map[string]any{"answer": "23.0"}, cookies, &submit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, submit.Correct)
	assert.Equal(t, "solved", submit.Status)
	assert.Equal(t, "meadow", submit.NextScene)
	assert.GreaterOrEqual(t, submit.Score, 1)

	// A repeat submission on the finished session is rejected.
	var errBody struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/puzzles/"+view.SessionID+"/answer", map[string]any{"answer": 23}, cookies, &errBody)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody.Error.Code)

	// Dashboard reflects the solve.
	var summary struct {
		SolvedCount     int     `json:"solved_count"`
		AttemptedCount  int     `json:"attempted_count"`
		BadgeCount      int     `json:"badge_count"`
		OverallAccuracy float64 `json:"overall_accuracy"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/dashboard", nil, cookies, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, summary.SolvedCount)
	assert.Equal(t, 1, summary.AttemptedCount)
	assert.Equal(t, 1, summary.BadgeCount, "first solve earns First Spark")
}

func TestAPI_RequiresProfileCookie(t *testing.T) {
	ts := newTestServer(t)

	var errBody struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resp := doJSON(t, ts, http.MethodGet, "/api/story/scene", nil, nil, &errBody)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errBody.Error.Code)
}

func TestAPI_HealthProbes(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = ts.Client().Get(ts.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
