// Package transactions submits bulk record payloads to the HR service.
package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/and161185/hr-console/internal/client"
)

// Submit validates the payload locally and posts it verbatim. Invalid JSON
// blocks the action before any request is sent.
func Submit(ctx context.Context, clnt *client.Client, raw []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	resp, err := clnt.Do(ctx, http.MethodPost, "/transacciones", nil, json.RawMessage(raw))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HTTP %d\n\n%s", resp.Status, resp.Text()), nil
}

// SamplePayload returns a ready-to-send multi-table example.
func SamplePayload() []byte {
	sample := map[string]any{
		"departamentos": []map[string]any{
			{"id": 16, "departamento": "Calidad"},
		},
		"trabajos": []map[string]any{
			{"id": 999, "trabajo": "Developer X"},
		},
		"empleados_contratados": []map[string]any{
			{"id": 501, "nombre": "Ana", "fecha_hora": "2020-01-01T00:00:00", "id_departamento": 16, "id_trabajo": 999},
		},
	}
	b, _ := json.MarshalIndent(sample, "", "  ")
	return b
}
