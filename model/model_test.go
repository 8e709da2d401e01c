package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlexInt_Number(t *testing.T) {
	var row DepartmentRow
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"department":"IT","hired":5}`), &row))
	require.Equal(t, 5, row.Hired.Int())
}

func TestFlexInt_NumericString(t *testing.T) {
	var row DepartmentRow
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"department":"IT","hired":"7"}`), &row))
	require.Equal(t, 7, row.Hired.Int())
}

func TestFlexInt_NullAndMissing(t *testing.T) {
	var row QuarterRow
	require.NoError(t, json.Unmarshal([]byte(`{"department":"IT","job":"Dev","q1":null,"q2":2}`), &row))
	require.Equal(t, 0, row.Q1.Int())
	require.Equal(t, 2, row.Q2.Int())
	require.Equal(t, 0, row.Q3.Int())
	require.Equal(t, 0, row.Q4.Int())
}

func TestFlexInt_Garbage(t *testing.T) {
	var row DepartmentRow
	require.NoError(t, json.Unmarshal([]byte(`{"hired":"lots"}`), &row))
	require.Equal(t, 0, row.Hired.Int())

	require.NoError(t, json.Unmarshal([]byte(`{"hired":{"a":1}}`), &row))
	require.Equal(t, 0, row.Hired.Int())
}

func TestFlexInt_Float(t *testing.T) {
	var row DepartmentRow
	require.NoError(t, json.Unmarshal([]byte(`{"hired":3.0}`), &row))
	require.Equal(t, 3, row.Hired.Int())
}
