package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/hr-console/internal/client"
	"github.com/and161185/hr-console/internal/config"
)

func TestFetchDepartments(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/metricas/departamentos_sobre_promedio", r.URL.Path)
		require.Equal(t, "2021", r.URL.Query().Get("anio"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"department":"IT","hired":5},{"id":2,"department":"HR","hired":"10"}]`))
	}))
	defer ts.Close()

	clnt := client.New(&config.Config{ServerAddr: ts.URL, ClientTimeout: 1})
	rows, err := FetchDepartments(context.Background(), clnt, 2021)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 10, rows[1].Hired.Int())
}

func TestFetchDepartments_InvalidYear(t *testing.T) {
	clnt := client.New(&config.Config{ServerAddr: "http://localhost", ClientTimeout: 1})
	_, err := FetchDepartments(context.Background(), clnt, 0)
	require.ErrorIs(t, err, ErrInvalidYear)
}

func TestFetchQuarters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/metricas/contrataciones_por_trimestre", r.URL.Path)
		require.Equal(t, "2021", r.URL.Query().Get("anio"))
		require.Equal(t, "true", r.URL.Query().Get("incluir_nulos"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"department":"IT","job":"Dev","q1":1,"q2":2,"q3":null,"q4":4}]`))
	}))
	defer ts.Close()

	clnt := client.New(&config.Config{ServerAddr: ts.URL, ClientTimeout: 1})
	rows, err := FetchQuarters(context.Background(), clnt, 2021, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 0, rows[0].Q3.Int())
	require.Equal(t, 4, rows[0].Q4.Int())
}

func TestFetchQuarters_RemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"missing key"}`))
	}))
	defer ts.Close()

	clnt := client.New(&config.Config{ServerAddr: ts.URL, ClientTimeout: 1})
	_, err := FetchQuarters(context.Background(), clnt, 2021, false)

	var remoteErr *client.RemoteError
	require.ErrorAs(t, err, &remoteErr)
}
