package provider

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(zaptest.NewLogger(t), Config{BaseURL: srv.URL + "/"}, "secret-token")
	require.NoError(t, err)
	c.RetryDelay = 0
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(nil, Config{}, "")
	assert.Error(t, err)

	c, err := New(nil, Config{BaseURL: "https://data.example.com/v1/"}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://data.example.com/v1", c.BaseURL)
	assert.Equal(t, userAgent, c.UserAgent)
	assert.Equal(t, defaultTimeout, c.HTTPClient.Timeout)
}

func TestGetPlayer(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/42", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))

		writeJSON(t, w, map[string]any{
			"id":            42,
			"name":          " Jane Doe ",
			"position":      "ST",
			"date_of_birth": "2000-05-17",
			"market_value":  "3500000",
			"nationality":   "Brazil",
			"clubs": []map[string]any{
				{"club": "Old FC", "joined": "2017-07-01", "left": "2021-06-30"},
				{"club": "Now FC", "joined": "2021-07-01", "left": nil, "contract_until": "2026-06-30T00:00:00Z"},
			},
		})
	}))

	got, err := c.GetPlayer(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "ST", got.Position)
	assert.Equal(t, "2000-05-17", got.DateOfBirth.String())
	require.NotNil(t, got.MarketValue)
	assert.Equal(t, 3_500_000.0, *got.MarketValue)
	require.Len(t, got.Clubs, 2)

	current := got.CurrentAffiliation()
	require.NotNil(t, current)
	assert.Equal(t, "Now FC", current.Club)
	assert.Equal(t, "2026-06-30", current.ContractUntil.String())
}

func TestGetPlayerMissingFields(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": "p7", "date_of_birth": "sometime", "market_value": nil})
	}))

	got, err := c.GetPlayer(context.Background(), "p7")
	require.NoError(t, err)
	assert.Nil(t, got.DateOfBirth)
	assert.Nil(t, got.MarketValue)
	assert.Empty(t, got.Position)
	assert.Nil(t, got.CurrentAffiliation())
}

func TestGetSquadFollowsPages(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/teams/7/players", r.URL.Path)
		assert.Equal(t, perPage, r.URL.Query().Get("per_page"))

		page := 0
		if p := r.URL.Query().Get("page"); p != "" {
			_, err := fmt.Sscan(p, &page)
			require.NoError(t, err)
		}

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		require.NoError(t, json.NewEncoder(gz).Encode(map[string]any{
			"items": []map[string]any{
				{"id": fmt.Sprintf("p%d-a", page), "position": "CB"},
				{"id": fmt.Sprintf("p%d-b", page), "position": "LB"},
			},
			"page":     page,
			"pages":    3,
			"per_page": 2,
		}))
	}))

	got, err := c.GetSquad(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "p0-a", got[0].ID)
	assert.Equal(t, "p2-b", got[5].ID)
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, map[string]any{"id": "9", "position": "GK"})
	}))

	got, err := c.GetPlayer(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "GK", got.Position)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))

	_, err := c.GetPlayer(context.Background(), "404")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	c.MaxRetries = 2

	_, err := c.GetSquad(context.Background(), "1")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, int32(3), calls.Load())
}

func TestEmptyIDs(t *testing.T) {
	c, err := New(nil, Config{BaseURL: "http://localhost"}, "")
	require.NoError(t, err)

	_, err = c.GetPlayer(context.Background(), " ")
	assert.Error(t, err)
	_, err = c.GetSquad(context.Background(), "")
	assert.Error(t, err)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 2*time.Second, retryAfter("2"))
	assert.Equal(t, time.Duration(0), retryAfter(""))
	assert.Equal(t, time.Duration(0), retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}
