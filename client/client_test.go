package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/itinerary-planner/client"
)

func okEnvelope(data any) []byte {
	raw, _ := json.Marshal(map[string]any{"status": "OK", "data": data})
	return raw
}

func errEnvelope(msg string) []byte {
	raw, _ := json.Marshal(map[string]any{"status": "Error", "error": msg})
	return raw
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		_, _ = w.Write(okEnvelope(map[string]any{
			"user":  map[string]string{"uid": "uid-1", "email": "traveler@example.com", "name": "Traveler"},
			"token": "signed-token",
		}))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	user, err := c.Login(context.Background(), "traveler@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "signed-token", c.Token())
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write(errEnvelope("invalid credentials"))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "traveler@example.com", "wrong")
	assert.ErrorIs(t, err, client.ErrInvalidCredentials)
}

func TestItineraryCachesFetch(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, "Bearer signed-token", r.Header.Get("Authorization"))
		_, _ = w.Write(okEnvelope(map[string]any{
			"itinerary": client.Itinerary{
				StartDate: "2026-09-01",
				Days: map[string]client.DayDetails{
					"2026-09-01": {Notes: "arrival"},
				},
			},
		}))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("signed-token"))
	require.NoError(t, err)

	first, err := c.Itinerary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", first.StartDate)

	second, err := c.Itinerary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second read must come from the local copy")
}

func TestSaveItineraryInvalidatesOnSuccess(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var got client.Itinerary
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "2026-09-01", got.StartDate)
			_, _ = w.Write(okEnvelope(map[string]any{"itinerary": got}))
		case http.MethodGet:
			atomic.AddInt32(&fetches, 1)
			_, _ = w.Write(okEnvelope(map[string]any{
				"itinerary": client.Itinerary{StartDate: "2026-09-01", Days: map[string]client.DayDetails{}},
			}))
		}
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("signed-token"))
	require.NoError(t, err)

	err = c.SaveItinerary(context.Background(), client.Itinerary{
		StartDate: "2026-09-01",
		Days:      map[string]client.DayDetails{},
	})
	require.NoError(t, err)

	_, err = c.Itinerary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches), "read after save must refetch from the server")
}

func TestSaveItineraryRollsBackOnFailure(t *testing.T) {
	var failPut bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write(okEnvelope(map[string]any{
				"itinerary": client.Itinerary{
					StartDate: "2026-09-01",
					Days: map[string]client.DayDetails{
						"2026-09-01": {Notes: "keep me"},
					},
				},
			}))
		case http.MethodPost:
			if failPut {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write(errEnvelope("could not save itinerary"))
				return
			}
			_, _ = w.Write(okEnvelope(nil))
		}
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("signed-token"))
	require.NoError(t, err)

	before, err := c.Itinerary(context.Background())
	require.NoError(t, err)

	failPut = true
	err = c.SaveItinerary(context.Background(), client.Itinerary{
		StartDate: "2030-01-01",
		Days:      map[string]client.DayDetails{},
	})
	require.Error(t, err)

	after, err := c.Itinerary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed save must restore the snapshot exactly")
}

func TestClearItinerarySpeculativeReset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write(errEnvelope("no itinerary to delete"))
		case http.MethodGet:
			_, _ = w.Write(okEnvelope(map[string]any{
				"itinerary": client.Itinerary{
					StartDate: "2026-09-01",
					Days:      map[string]client.DayDetails{"2026-09-01": {Notes: "still here"}},
				},
			}))
		}
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("signed-token"))
	require.NoError(t, err)

	before, err := c.Itinerary(context.Background())
	require.NoError(t, err)

	err = c.ClearItinerary(context.Background())
	assert.ErrorIs(t, err, client.ErrNoItinerary)

	after, err := c.Itinerary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed clear must restore the snapshot exactly")
}

func TestClearItinerarySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			_, _ = w.Write(okEnvelope(nil))
		case http.MethodGet:
			_, _ = w.Write(okEnvelope(map[string]any{
				"itinerary": client.EmptyItinerary(),
			}))
		}
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("signed-token"))
	require.NoError(t, err)

	require.NoError(t, c.ClearItinerary(context.Background()))

	got, err := c.Itinerary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Days)
}

func TestSetDayMergesIntoCurrent(t *testing.T) {
	var saved client.Itinerary
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write(okEnvelope(map[string]any{
				"itinerary": client.Itinerary{
					StartDate: "2026-09-01",
					Days: map[string]client.DayDetails{
						"2026-09-01": {Notes: "arrival"},
					},
				},
			}))
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			_, _ = w.Write(okEnvelope(map[string]any{"itinerary": saved}))
		}
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("signed-token"))
	require.NoError(t, err)

	err = c.SetDay(context.Background(), "2026-09-02", client.DayDetails{
		Event: &client.EventWithCategory{Text: "Museum", Category: "activity"},
	})
	require.NoError(t, err)

	assert.Len(t, saved.Days, 2)
	assert.Equal(t, "arrival", saved.Days["2026-09-01"].Notes)
	assert.Equal(t, "Museum", saved.Days["2026-09-02"].Event.Text)
}

func TestNewRejectsEmptyBaseURL(t *testing.T) {
	_, err := client.New("")
	assert.Error(t, err)

	_, err = client.New("http://localhost:8080", client.WithHTTPTimeout(-time.Second))
	assert.Error(t, err)
}
