package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fret-focus/game"
	"fret-focus/theme"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	engine := game.NewEngine(game.NewSeededGenerator(17))
	state, err := engine.Start(game.DefaultSettings())
	require.NoError(t, err)

	s := New(engine, state, theme.New(nil))
	return s, s.Handler([]string{"http://localhost:5173"})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, StateView) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	var v StateView
	if res.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &v))
	}
	return res, v
}

func TestGetState(t *testing.T) {
	s, h := newTestServer(t)

	res, v := do(t, h, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))

	st := s.State()
	assert.Equal(t, st.Round.ID, v.Round)
	assert.Equal(t, "guessing", v.Phase)
	assert.Equal(t, game.ModePosition, v.Mode)
	assert.Len(t, v.Targets, 2)
	assert.Equal(t, st.Window(), v.Window)
	assert.Empty(t, v.Correct)
	for _, tv := range v.Targets {
		assert.Zero(t, tv.Octave)
		assert.True(t, strings.HasPrefix(tv.Color, "#"))
	}
}

func TestToggleAndSubmit(t *testing.T) {
	s, h := newTestServer(t)
	st := s.State()

	for _, p := range st.Correct().Sorted() {
		body, _ := json.Marshal(p)
		res, _ := do(t, h, http.MethodPost, "/toggle", string(body))
		require.Equal(t, http.StatusOK, res.Code)
	}

	res, v := do(t, h, http.MethodPost, "/submit", `{"round":"`+st.Round.ID+`"}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "revealed", v.Phase)
	require.NotNil(t, v.Result)
	assert.True(t, v.Result.Correct)
	assert.Equal(t, 1, v.Streak)
	assert.Equal(t, v.Clicked, v.Correct)

	res, v = do(t, h, http.MethodPost, "/next", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "guessing", v.Phase)
	assert.NotEqual(t, st.Round.ID, v.Round)
	assert.Equal(t, 1, v.Streak)
}

func TestSubmitStaleRound(t *testing.T) {
	_, h := newTestServer(t)

	res, _ := do(t, h, http.MethodPost, "/submit", `{"round":"not-this-one"}`)
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Contains(t, res.Body.String(), "replaced")

	_, v := do(t, h, http.MethodGet, "/state", "")
	assert.Equal(t, "guessing", v.Phase)
}

func TestToggleRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing fret", `{"string":1}`},
		{"off the board", `{"string":6,"fret":2}`},
		{"unknown field", `{"string":1,"fret":2,"finger":3}`},
		{"not json", `string=1`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, h := newTestServer(t)
			res, _ := do(t, h, http.MethodPost, "/toggle", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}

func TestModeAndCount(t *testing.T) {
	s, h := newTestServer(t)
	s.mu.Lock()
	s.state.Streak = 4
	s.mu.Unlock()

	res, v := do(t, h, http.MethodPost, "/mode", `{"mode":"octave"}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, game.ModeOctave, v.Mode)
	assert.Equal(t, game.FullBoard, v.Window)
	assert.Zero(t, v.Streak)
	for _, tv := range v.Targets {
		assert.Equal(t, game.Octave(tv.Pitch), tv.Octave)
	}

	res, v = do(t, h, http.MethodPost, "/count", `{"count":12}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, v.Targets, game.MaxTargets)

	res, _ = do(t, h, http.MethodPost, "/mode", `{"mode":"dorian"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDisplay(t *testing.T) {
	s, h := newTestServer(t)
	s.mu.Lock()
	s.state.Streak = 2
	s.mu.Unlock()

	res, v := do(t, h, http.MethodPost, "/display", `{"staff":true,"accidentals":"random"}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.True(t, v.Settings.Staff)
	assert.False(t, v.Settings.Hidden)
	assert.Equal(t, game.RandomAccidentals, v.Settings.Accidentals)
	assert.Equal(t, 2, v.Streak)
	assert.Contains(t, v.Staff, "8vb")

	// repeating the request changes nothing
	_, again := do(t, h, http.MethodPost, "/display", `{"staff":true,"accidentals":"random"}`)
	assert.Equal(t, v, again)
}

func TestCORS(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/toggle", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	assert.Equal(t, "http://localhost:5173", res.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Origin", "http://evil.example")
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)

	assert.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
}

func TestModeAndCountRequireValue(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"mode without body", "/mode", ""},
		{"mode without field", "/mode", `{}`},
		{"mode null", "/mode", `{"mode":null}`},
		{"count without body", "/count", ""},
		{"count without field", "/count", `{}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, h := newTestServer(t)
			s.mu.Lock()
			s.state.Streak = 3
			before := s.state
			s.mu.Unlock()

			res, _ := do(t, h, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, res.Code)

			after := s.State()
			assert.Equal(t, before.Round.ID, after.Round.ID)
			assert.Equal(t, before.Settings, after.Settings)
			assert.Equal(t, 3, after.Streak)
		})
	}
}

func TestSubmitWithoutBody(t *testing.T) {
	// the round guard is optional; an empty body scores the current round
	_, h := newTestServer(t)
	res, v := do(t, h, http.MethodPost, "/submit", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "revealed", v.Phase)
}
