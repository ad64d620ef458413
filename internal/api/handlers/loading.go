package handlers

import (
	"net/http"

	"acopf/internal/analysis"
	"acopf/internal/api/models"
	"acopf/internal/model"
	"acopf/internal/opf"

	"github.com/gin-gonic/gin"
)

// LoadingHandler solves a case and ranks its lines by thermal loading.
type LoadingHandler struct {
	engine *opf.Engine
}

// NewLoadingHandler wires a handler around a ready engine.
func NewLoadingHandler(engine *opf.Engine) *LoadingHandler {
	return &LoadingHandler{engine: engine}
}

// Loading handles POST /api/v1/loading. The request body is the same as
// /solve; the response is the dispatch summary plus lines sorted by how much
// of their thermal limit the solved flow uses.
func (h *LoadingHandler) Loading(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	cs := model.FiveBus()
	if req.Case != nil {
		cs = req.Case.ToCase()
	}
	if err := cs.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CASE", Message: err.Error()},
		})
		return
	}

	res, err := h.engine.Run(cs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SOLVE_ERROR", Message: err.Error()},
		})
		return
	}

	sum := analysis.Summarize(cs, res)
	ranked := analysis.RankByLoading(cs, res)
	c.JSON(http.StatusOK, models.LoadingResponseFrom(res, sum, ranked))
}
