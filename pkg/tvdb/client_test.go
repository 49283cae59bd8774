package tvdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTVDB creates a test server that simulates the TVDB API.
func mockTVDB(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

// loginHandler returns a handler that validates the API key and returns a token.
func loginHandler(validAPIKey, token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			APIKey string `json:"apikey"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if body.APIKey != validAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, loginResponse{
			Status: "success",
			Data: struct {
				Token string `json:"token"`
			}{Token: token},
		})
	}
}

// requireAuth wraps a handler with token validation.
func requireAuth(validToken string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}
}

func searchPayload() searchResponse {
	var resp searchResponse
	resp.Status = "success"
	resp.Data = []struct {
		ObjectID     string            `json:"objectID"`
		Name         string            `json:"name"`
		Year         string            `json:"year"`
		Type         string            `json:"type"`
		Overview     string            `json:"overview"`
		TVDBID       string            `json:"tvdb_id"`
		Translations map[string]string `json:"translations"`
	}{
		{
			ObjectID: "series-7777", Name: "Dark", Year: "2017", Type: "series",
			TVDBID: "7777", Translations: map[string]string{"eng": "Dark"},
		},
		{
			ObjectID: "movie-123", Name: "Le Fabuleux Destin", Year: "2001", Type: "movie",
			// No tvdb_id: the client must fall back to objectID.
			Translations: map[string]string{"eng": "Amelie"},
		},
	}
	return resp
}

func TestClient_Search(t *testing.T) {
	srv := mockTVDB(t, map[string]http.HandlerFunc{
		"/login": loginHandler("key", "tok"),
		"/search": requireAuth("tok", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "dark", r.URL.Query().Get("query"))
			assert.Equal(t, "2017", r.URL.Query().Get("year"))
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			writeJSON(w, searchPayload())
		}),
	})
	defer srv.Close()

	c := New("key", WithBaseURL(srv.URL))
	results, err := c.Search(context.Background(), "dark", 2017, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 7777, results[0].ID)
	assert.Equal(t, "series", results[0].Type)
	assert.Equal(t, 2017, results[0].Year)

	// objectID fallback for records without a tvdb_id field.
	assert.Equal(t, 123, results[1].ID)
	assert.Equal(t, "Amelie", results[1].EnglishName())
}

func TestClient_Search_OmitsEmptyParams(t *testing.T) {
	srv := mockTVDB(t, map[string]http.HandlerFunc{
		"/login": loginHandler("key", "tok"),
		"/search": requireAuth("tok", func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("year"))
			writeJSON(w, searchResponse{Status: "success"})
		}),
	})
	defer srv.Close()

	c := New("key", WithBaseURL(srv.URL))
	results, err := c.Search(context.Background(), "dark", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_Search_RefreshesExpiredToken(t *testing.T) {
	var logins atomic.Int32
	var searches atomic.Int32

	srv := mockTVDB(t, map[string]http.HandlerFunc{
		"/login": func(w http.ResponseWriter, r *http.Request) {
			logins.Add(1)
			loginHandler("key", "tok")(w, r)
		},
		"/search": func(w http.ResponseWriter, r *http.Request) {
			// First search request is rejected to force a token refresh.
			if searches.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, searchPayload())
		},
	})
	defer srv.Close()

	c := New("key", WithBaseURL(srv.URL))
	results, err := c.Search(context.Background(), "dark", 0, 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int32(2), logins.Load(), "expected re-login after 401")
}

func TestClient_Search_RateLimited(t *testing.T) {
	srv := mockTVDB(t, map[string]http.HandlerFunc{
		"/login": loginHandler("key", "tok"),
		"/search": requireAuth("tok", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}),
	})
	defer srv.Close()

	c := New("key", WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "dark", 0, 0)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestClient_Search_BadAPIKey(t *testing.T) {
	srv := mockTVDB(t, map[string]http.HandlerFunc{
		"/login": loginHandler("other", "tok"),
	})
	defer srv.Close()

	c := New("key", WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "dark", 0, 0)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
