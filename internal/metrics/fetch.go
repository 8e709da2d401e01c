package metrics

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/and161185/hr-console/internal/client"
	"github.com/and161185/hr-console/model"
)

// ErrInvalidYear rejects a metrics query before any request is sent.
var ErrInvalidYear = errors.New("a valid year is required")

// FetchDepartments retrieves the departments-above-average rows for a year.
func FetchDepartments(ctx context.Context, clnt *client.Client, year int) ([]model.DepartmentRow, error) {
	if year <= 0 {
		return nil, ErrInvalidYear
	}
	query := url.Values{"anio": {strconv.Itoa(year)}}
	var rows []model.DepartmentRow
	if err := clnt.GetJSON(ctx, "/metricas/departamentos_sobre_promedio", query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchQuarters retrieves the hires-per-quarter rows for a year.
func FetchQuarters(ctx context.Context, clnt *client.Client, year int, includeNulls bool) ([]model.QuarterRow, error) {
	if year <= 0 {
		return nil, ErrInvalidYear
	}
	query := url.Values{
		"anio":          {strconv.Itoa(year)},
		"incluir_nulos": {strconv.FormatBool(includeNulls)},
	}
	var rows []model.QuarterRow
	if err := clnt.GetJSON(ctx, "/metricas/contrataciones_por_trimestre", query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
