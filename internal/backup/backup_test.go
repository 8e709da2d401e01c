package backup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/hr-console/internal/client"
	"github.com/and161185/hr-console/internal/config"
	"github.com/and161185/hr-console/model"
)

func newWorkflow(serverURL string) *Workflow {
	return New(client.New(&config.Config{ServerAddr: serverURL, ClientTimeout: 1}))
}

func TestFormatForFile(t *testing.T) {
	require.Equal(t, "avro", FormatForFile("x.avro"))
	require.Equal(t, "avro", FormatForFile("backup_2026.AVRO"))
	require.Equal(t, "parquet", FormatForFile("x.parquet"))
	require.Equal(t, "parquet", FormatForFile("no-extension"))
}

func TestRun_Summary(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/respaldos", r.URL.Path)
		var payload struct {
			Format string   `json:"formato"`
			Dir    string   `json:"directorio"`
			Tables []string `json:"tablas"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "parquet", payload.Format)
		require.Equal(t, []string{"departamentos", "trabajos"}, payload.Tables)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"duracion_ms_total":120,"respaldos":[{"registros":3},{"registros":7}]}`))
	}))
	defer ts.Close()

	wf := newWorkflow(ts.URL)
	result, err := wf.Run(context.Background(), "parquet", "respaldos", []string{"departamentos", "trabajos"})
	require.NoError(t, err)
	require.Equal(t, "Done. Took 120 ms. Records: 10", result.Summary())
}

func TestRun_RawFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("gateway timeout"))
	}))
	defer ts.Close()

	wf := newWorkflow(ts.URL)
	result, err := wf.Run(context.Background(), "parquet", "", []string{"departamentos"})
	require.NoError(t, err)
	require.Equal(t, "HTTP 502 - gateway timeout", result.Summary())
}

func TestRun_NoTables(t *testing.T) {
	wf := newWorkflow("http://localhost")
	_, err := wf.Run(context.Background(), "parquet", "respaldos", nil)
	require.ErrorIs(t, err, ErrNoTables)
}

func TestList_SortedByFilenameDescending(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/respaldos/existe", r.URL.Path)
		require.Equal(t, "false", r.URL.Query().Get("solo_hoy"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"existen":true,"total_archivos":3,"archivos":[
			{"archivo":"dep_20260110.parquet","ruta":"/b/dep_20260110.parquet","formato":"parquet","fecha":"2026-01-10"},
			{"archivo":"dep_20260301.avro","ruta":"/b/dep_20260301.avro","formato":"avro","fecha":"2026-03-01"},
			{"archivo":"dep_20260215.parquet","ruta":"/b/dep_20260215.parquet","formato":"parquet","fecha":"2026-02-15"}
		]}`))
	}))
	defer ts.Close()

	wf := newWorkflow(ts.URL)
	files, err := wf.List(context.Background(), "departamentos", "respaldos")
	require.NoError(t, err)
	require.Equal(t, []string{
		"dep_20260301.avro",
		"dep_20260215.parquet",
		"dep_20260110.parquet",
	}, []string{files[0].Name, files[1].Name, files[2].Name})
}

func TestList_EmptyIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"existen":false,"total_archivos":0,"archivos":[]}`))
	}))
	defer ts.Close()

	wf := newWorkflow(ts.URL)
	files, err := wf.List(context.Background(), "departamentos", "respaldos")
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestList_TableRequired(t *testing.T) {
	wf := newWorkflow("http://localhost")
	_, err := wf.List(context.Background(), "", "respaldos")
	require.ErrorIs(t, err, ErrNoTable)
}

func TestRestore_InfersFormatFromPath(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/restaurar", r.URL.Path)
		var payload struct {
			Format string `json:"formato"`
			Table  string `json:"tabla"`
			File   string `json:"archivo"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "avro", payload.Format)
		require.Equal(t, "/b/dep.avro", payload.File)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"duracion_ms":44,"restaurados":12}`))
	}))
	defer ts.Close()

	wf := newWorkflow(ts.URL)
	result, err := wf.Restore(context.Background(), "departamentos", model.BackupFile{Name: "dep.avro", Path: "/b/dep.avro"})
	require.NoError(t, err)
	require.Equal(t, "Done. Restored: 12. Took 44 ms.", result.Summary())
}

func TestRestore_UpsertCount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"duracion_ms":10,"upsert":5}`))
	}))
	defer ts.Close()

	wf := newWorkflow(ts.URL)
	result, err := wf.Restore(context.Background(), "trabajos", model.BackupFile{Path: "/b/t.parquet"})
	require.NoError(t, err)
	require.Equal(t, 5, result.Restored)
}

func TestRestore_RawFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("restore blew up"))
	}))
	defer ts.Close()

	wf := newWorkflow(ts.URL)
	result, err := wf.Restore(context.Background(), "trabajos", model.BackupFile{Path: "/b/t.parquet"})
	require.NoError(t, err)
	require.Equal(t, "HTTP 500 - restore blew up", result.Summary())
}

func TestRestore_FileRequired(t *testing.T) {
	wf := newWorkflow("http://localhost")
	_, err := wf.Restore(context.Background(), "trabajos", model.BackupFile{})
	require.ErrorIs(t, err, ErrNoFile)
}
