package transactions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/hr-console/internal/client"
	"github.com/and161185/hr-console/internal/config"
)

func TestSubmit_OK(t *testing.T) {
	var got []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transacciones", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		got, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("3 inserted"))
	}))
	defer ts.Close()

	clnt := client.New(&config.Config{ServerAddr: ts.URL, ClientTimeout: 1})
	payload := []byte(`{"departamentos":[{"id":16,"departamento":"Calidad"}]}`)

	result, err := Submit(context.Background(), clnt, payload)
	require.NoError(t, err)
	require.Equal(t, "HTTP 200\n\n3 inserted", result)
	require.JSONEq(t, string(payload), string(got))
}

func TestSubmit_InvalidJSONBlocksLocally(t *testing.T) {
	var requests int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	}))
	defer ts.Close()

	clnt := client.New(&config.Config{ServerAddr: ts.URL, ClientTimeout: 1})
	_, err := Submit(context.Background(), clnt, []byte(`{"broken":`))

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid JSON")
	require.Equal(t, int64(0), atomic.LoadInt64(&requests))
}

func TestSubmit_RemoteFailureDisplayed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("bad rows"))
	}))
	defer ts.Close()

	clnt := client.New(&config.Config{ServerAddr: ts.URL, ClientTimeout: 1})
	result, err := Submit(context.Background(), clnt, []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, "HTTP 422\n\nbad rows", result)
}

func TestSamplePayload(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal(SamplePayload(), &payload))
	require.Contains(t, payload, "departamentos")
	require.Contains(t, payload, "trabajos")
	require.Contains(t, payload, "empleados_contratados")
}
