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

func newLoadingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine, err := opf.New()
	require.NoError(t, err)
	h := NewLoadingHandler(engine)
	r := gin.New()
	r.POST("/api/v1/loading", h.Loading)
	return r
}

func TestLoadingBuiltInCase(t *testing.T) {
	router := newLoadingRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loading", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.LoadingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "five-bus", resp.CaseName)
	assert.True(t, resp.Solved)
	require.Len(t, resp.Lines, 6)

	// Sorted most loaded first, every line inside its limit.
	for i, row := range resp.Lines {
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Lines[i-1].LoadingPct, row.LoadingPct)
		}
		assert.LessOrEqual(t, row.LoadingPct, 100.0+1e-6)
	}

	// Demand is fixed by the case tables; generation covers it.
	assert.InDelta(t, 1600.0, resp.TotalDemandMW, 1e-9)
	assert.InDelta(t, resp.TotalGenMW-resp.TotalDemandMW, resp.LossMW, 1e-9)
}

func TestLoadingRejectsInvalidBody(t *testing.T) {
	router := newLoadingRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loading", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}
