package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"acopf/internal/api/models"
	"acopf/internal/opf"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine, err := opf.New()
	require.NoError(t, err)
	h := NewSolveHandler(engine)
	r := gin.New()
	r.POST("/api/v1/solve", h.Solve)
	r.GET("/api/v1/case", h.GetCase)
	return r
}

func TestSolveBuiltInCase(t *testing.T) {
	router := newRouter(t)

	body := bytes.NewBufferString(`{"options":{"include_flows":true}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "five-bus", resp.CaseName)
	assert.True(t, resp.Solved)
	assert.Equal(t, "optimal", resp.Status)
	assert.Len(t, resp.Buses, 5)
	assert.Len(t, resp.Flows, 6)

	// Bus 1 is pinned at its demand by the inflow-less balance.
	require.NotNil(t, resp.Buses[0].PgMW)
	assert.InDelta(t, 100.0, *resp.Buses[0].PgMW, 1e-3)
}

func TestSolveRejectsInvalidBody(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestSolveRejectsInvalidCase(t *testing.T) {
	router := newRouter(t)

	// A line endpoint outside the declared bus set must fail fast.
	body := bytes.NewBufferString(`{
		"case": {
			"name": "broken",
			"sbase_mw": 100,
			"buses": [1, 2],
			"slack": 1,
			"demands": [{"bus": 2, "pd_mw": 50}],
			"lines": [{"from": 1, "to": 9, "r": 0.01, "x": 0.1, "limit_mw": 100}]
		}
	}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CASE", resp.Error.Code)
}

func TestGetCase(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/case", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var spec models.CaseSpec
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spec))
	assert.Equal(t, "five-bus", spec.Name)
	assert.Equal(t, 100.0, spec.SbaseMW)
	assert.Len(t, spec.Buses, 5)
	assert.Len(t, spec.Generators, 4)
	assert.Len(t, spec.Lines, 6)
}
