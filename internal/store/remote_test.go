package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRemoteList(t *testing.T) {
	id := uuid.New()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/todos", r.URL.Path)
		assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"uid": uuid.NewString(),
			"todos": []*Item{
				{ID: id, Title: "Buy milk", CreatedAt: time.Now()},
			},
		})
	}))
	defer ts.Close()

	remote := NewHTTPRemote(ts.URL, StaticToken("test_token"))
	items, err := remote.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Buy milk", items[0].Title)
}

func TestHTTPRemoteCreate(t *testing.T) {
	id := uuid.New()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Buy milk", body["title"])
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		sonic.ConfigDefault.NewEncoder(w).Encode(&Item{ID: id, Title: "Buy milk", CreatedAt: time.Now()})
	}))
	defer ts.Close()

	remote := NewHTTPRemote(ts.URL, StaticToken("test_token"))
	item, err := remote.Create(context.Background(), "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, id, item.ID)
}

func TestHTTPRemoteUpdateCarriesTitleAndCompleted(t *testing.T) {
	id := uuid.New()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/todos/"+id.String(), r.URL.Path)
		var body map[string]any
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["completed"])
		assert.Equal(t, "Buy milk", body["title"])
		w.Header().Set("Content-Type", "application/json")
		sonic.ConfigDefault.NewEncoder(w).Encode(&Item{ID: id, Title: "Buy milk", Completed: true})
	}))
	defer ts.Close()

	remote := NewHTTPRemote(ts.URL, StaticToken("test_token"))
	completed := true
	title := "Buy milk"
	item, err := remote.Update(context.Background(), id, UpdateRequest{Completed: &completed, Title: &title})
	require.NoError(t, err)
	assert.True(t, item.Completed)
}

func TestHTTPRemoteErrorMapping(t *testing.T) {
	testCases := []struct {
		Desc   string
		Status int
		Error  error
	}{
		{Desc: "unauthorized", Status: http.StatusUnauthorized, Error: errorvalues.ErrNoToken},
		{Desc: "forbidden", Status: http.StatusForbidden, Error: errorvalues.ErrNoToken},
		{Desc: "not found", Status: http.StatusNotFound, Error: errorvalues.ErrTodoNotFound},
		{Desc: "server error", Status: http.StatusInternalServerError, Error: errorvalues.ErrRemoteUnavailable},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.Status)
			}))
			defer ts.Close()
			remote := NewHTTPRemote(ts.URL, StaticToken("test_token"))
			_, err := remote.List(context.Background())
			assert.ErrorIs(t, err, tc.Error)
		})
	}
}

func TestHTTPRemoteNoToken(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	remote := NewHTTPRemote(ts.URL, StaticToken(""))
	_, err := remote.List(context.Background())
	assert.ErrorIs(t, err, errorvalues.ErrNoToken)
	// The request is never issued without a credential
	assert.False(t, called)
}

func TestHTTPRemoteNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	remote := NewHTTPRemote(ts.URL, StaticToken("test_token"))
	err := remote.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errorvalues.ErrRemoteUnavailable)
}
