package handlers

import (
	"net/http"

	"acopf/internal/api/models"
	"acopf/internal/model"
	"acopf/internal/opf"

	"github.com/gin-gonic/gin"
)

// SolveHandler runs OPF solves on request.
type SolveHandler struct {
	engine *opf.Engine
}

// NewSolveHandler wires a handler around a ready engine.
func NewSolveHandler(engine *opf.Engine) *SolveHandler {
	return &SolveHandler{engine: engine}
}

// Solve handles POST /api/v1/solve. A request without a case solves the
// built-in 5-bus network; a request with one must supply tables of the same
// shape. A non-optimal termination is still a 200: the status field carries
// the termination condition and values are best-effort, mirroring the CLI.
func (h *SolveHandler) Solve(c *gin.Context) {
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

	c.JSON(http.StatusOK, models.SolveResponseFrom(res, req.Options.IncludeFlows))
}

// GetCase handles GET /api/v1/case, returning the built-in case tables.
func (h *SolveHandler) GetCase(c *gin.Context) {
	c.JSON(http.StatusOK, models.CaseSpecFrom(model.FiveBus()))
}
