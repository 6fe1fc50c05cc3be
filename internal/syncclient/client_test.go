package syncclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/footprint/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, "abc123")
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://example.com", "")
	assert.Error(t, err)
	_, err = NewClient("::bad", "")
	assert.Error(t, err)
}

func TestFetchTodayMergesDefaults(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/get-today", r.URL.Path)
		ck, err := r.Cookie(SessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "abc123", ck.Value)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		_, _ = w.Write([]byte(`{"success":true,"log":{
			"_id":"x","date":"2026-10-15",
			"travel":{"mode":"bike"},
			"energy":{"acHours":"not a number"},
			"diet":{"evening":{"redMeat":2}},
			"co2":{"travel":0,"energy":"3.5","diet":13.22,"total":null}}}`))
	}))

	got, err := c.FetchToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ModeBike, got.Log.Travel.Mode)
	assert.Equal(t, model.DefaultTravel().Distance, got.Log.Travel.Distance)
	assert.Equal(t, model.DefaultEnergy(), got.Log.Energy, "malformed field falls back to its default")
	assert.Equal(t, 2, got.Log.Diet.Evening.RedMeat)
	assert.Equal(t, model.CO2Score{Diet: 13.22}, got.Score, "numeric strings are not numbers")
}

func TestFetchTodayKeepsValidSiblingFields(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"log":{
			"travel":{"mode":7,"distance":12.5},
			"energy":{"level":"high","location":"rural","season":"winter","acHours":"2"},
			"diet":{"morning":{"dairy":1.5,"plant":3},"night":"skipped"},
			"co2":{"travel":"1","energy":2,"diet":null,"total":"2"}}}`))
	}))

	got, err := c.FetchToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.DefaultTravel().Mode, got.Log.Travel.Mode)
	assert.Equal(t, 12.5, got.Log.Travel.Distance)

	energy := got.Log.Energy
	assert.Equal(t, model.LevelHigh, energy.Level)
	assert.Equal(t, model.LocationRural, energy.Location)
	assert.Equal(t, model.SeasonWinter, energy.Season)
	assert.Equal(t, model.DefaultEnergy().ACHours, energy.ACHours)

	assert.Equal(t, 0, got.Log.Diet.Morning.Dairy)
	assert.Equal(t, 3, got.Log.Diet.Morning.Plant)
	assert.Equal(t, model.Meal{}, got.Log.Diet.Night)

	assert.Equal(t, model.CO2Score{Energy: 2}, got.Score)
}

func TestFetchTodayNoData(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "No data for today"})
	}))

	_, err := c.FetchToday(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRedirectIsUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	}))

	_, err := c.FetchStats(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSaveLogSendsFullLog(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/save-log", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["energy"], "acHours")
		assert.Contains(t, body["energy"], "washingMachine")
		assert.Len(t, body["diet"], 4)

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"co2":     map[string]any{"travel": 2.1, "energy": 1.5, "diet": 0.46, "total": 4.06},
		})
	}))

	score, err := c.SaveLog(context.Background(), model.DefaultDailyLog())
	require.NoError(t, err)
	assert.InDelta(t, 4.06, score.Total, 1e-9)
}

func TestSaveLogRejected(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "nope"})
	}))

	_, err := c.SaveLog(context.Background(), model.DefaultDailyLog())
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "nope")
}

func TestSaveLogServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.SaveLog(context.Background(), model.DefaultDailyLog())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}

func TestFetchWeekly(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"logs":[
			{"date":"2026-10-14","co2":{"total":4.5}},
			{"date":"2026-10-15","co2":{"total":"bad"}},
			{"date":"2026-10-13"}]}`))
	}))

	logs, err := c.FetchWeekly(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2026-10-14", logs[0].Date)
	assert.InDelta(t, 4.5, logs[0].CO2.Total, 1e-9)
	assert.Zero(t, logs[1].CO2.Total)
	assert.Zero(t, logs[2].CO2.Total)
}

func TestFetchStats(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"stats":{"streak":4,"total_days":12,"avg_daily":0}}`))
	}))

	stats, err := c.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Streak: 4, TotalDays: 12}, stats)
}

func TestParseFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))

	_, err := c.FetchWeekly(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing weekly logs")
}

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "fresh", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Login successful"})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	require.NoError(t, err)
	assert.Empty(t, c.SessionCookie())

	err = c.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "Invalid email or password")

	require.NoError(t, c.Login(context.Background(), "a@b.c", "secret"))
	assert.Equal(t, "fresh", c.SessionCookie())
}

func TestRegisterDuplicate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register", r.URL.Path)
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Email already exists"})
	}))

	err := c.Register(context.Background(), "Ana", "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Email already exists", ServerMessage(err))
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "", ServerMessage(nil))
	assert.Equal(t, ErrRejected.Error(), ServerMessage(ErrRejected))
	assert.Equal(t, ErrUnauthorized.Error(), ServerMessage(ErrUnauthorized))
}

func TestLogoutClearsSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	}))
	require.Equal(t, "abc123", c.SessionCookie())

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.SessionCookie())
}
