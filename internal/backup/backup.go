// Package backup drives the backup, listing and restore workflows against
// the HR service.
package backup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/and161185/hr-console/internal/client"
	"github.com/and161185/hr-console/model"
)

// Validation errors block the action locally, before any request is sent.
var (
	ErrNoTable  = errors.New("select a table")
	ErrNoTables = errors.New("select at least one table")
	ErrNoFile   = errors.New("select a backup file")
)

// Workflow issues backup operations through the shared HTTP client.
type Workflow struct {
	client *client.Client
}

// New creates a backup workflow.
func New(clnt *client.Client) *Workflow {
	return &Workflow{client: clnt}
}

// FormatForFile infers the restore format from the filename suffix. Anything
// not ending in .avro is treated as parquet.
func FormatForFile(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".avro") {
		return "avro"
	}
	return "parquet"
}

// RunResult summarises one backup run.
type RunResult struct {
	Status     int
	DurationMS int64
	Records    int
	Raw        string // set when the response was not well-formed JSON
}

// Summary returns the user-visible outcome line.
func (r *RunResult) Summary() string {
	if r.Raw != "" {
		return fmt.Sprintf("HTTP %d - %s", r.Status, r.Raw)
	}
	return fmt.Sprintf("Done. Took %d ms. Records: %d", r.DurationMS, r.Records)
}

type runResponse struct {
	DurationMSTotal int64 `json:"duracion_ms_total"`
	DurationMS      int64 `json:"duracion_ms"`
	Backups         []struct {
		Records int `json:"registros"`
	} `json:"respaldos"`
}

// Run triggers a backup of the given tables into directory dir.
func (w *Workflow) Run(ctx context.Context, format, dir string, tables []string) (*RunResult, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	if dir == "" {
		dir = "respaldos"
	}

	payload := map[string]any{"formato": format, "directorio": dir, "tablas": tables}
	resp, err := w.client.Do(ctx, http.MethodPost, "/respaldos", nil, payload)
	if err != nil {
		return nil, err
	}

	var body runResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return &RunResult{Status: resp.Status, Raw: resp.Text()}, nil
	}
	dur := body.DurationMSTotal
	if dur == 0 {
		dur = body.DurationMS
	}
	records := 0
	for _, b := range body.Backups {
		records += b.Records
	}
	return &RunResult{Status: resp.Status, DurationMS: dur, Records: records}, nil
}

type existsResponse struct {
	Exist      bool               `json:"existen"`
	TotalFiles int                `json:"total_archivos"`
	Files      []model.BackupFile `json:"archivos"`
}

// List returns every backup file for the table in directory dir, newest
// first by filename. An empty list is a valid outcome, not a failure.
func (w *Workflow) List(ctx context.Context, table, dir string) ([]model.BackupFile, error) {
	if table == "" {
		return nil, ErrNoTable
	}
	if dir == "" {
		dir = "respaldos"
	}

	query := url.Values{
		"tabla":      {table},
		"directorio": {dir},
		"solo_hoy":   {"false"},
	}
	var body existsResponse
	if err := w.client.GetJSON(ctx, "/respaldos/existe", query, &body); err != nil {
		return nil, err
	}

	files := body.Files
	sort.Slice(files, func(i, j int) bool { return files[i].Name > files[j].Name })
	return files, nil
}

// RestoreResult summarises one restore.
type RestoreResult struct {
	Status     int
	DurationMS int64
	Restored   int
	Raw        string // set when the response was not well-formed JSON
}

// Summary returns the user-visible outcome line.
func (r *RestoreResult) Summary() string {
	if r.Raw != "" {
		return fmt.Sprintf("HTTP %d - %s", r.Status, r.Raw)
	}
	return fmt.Sprintf("Done. Restored: %d. Took %d ms.", r.Restored, r.DurationMS)
}

type restoreResponse struct {
	DurationMS int64 `json:"duracion_ms"`
	Restored   int   `json:"restaurados"`
	Upserted   int   `json:"upsert"`
}

// Restore loads the given backup file into table. The format is inferred
// from the file path, never supplied by the user.
func (w *Workflow) Restore(ctx context.Context, table string, file model.BackupFile) (*RestoreResult, error) {
	if table == "" {
		return nil, ErrNoTable
	}
	path := file.Path
	if path == "" {
		path = file.Name
	}
	if path == "" {
		return nil, ErrNoFile
	}

	payload := map[string]string{
		"formato": FormatForFile(path),
		"tabla":   table,
		"archivo": path,
	}
	resp, err := w.client.Do(ctx, http.MethodPost, "/restaurar", nil, payload)
	if err != nil {
		return nil, err
	}

	var body restoreResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return &RestoreResult{Status: resp.Status, Raw: resp.Text()}, nil
	}
	restored := body.Restored
	if restored == 0 {
		restored = body.Upserted
	}
	return &RestoreResult{Status: resp.Status, DurationMS: body.DurationMS, Restored: restored}, nil
}
