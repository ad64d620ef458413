package models

import (
	"acopf/internal/analysis"
	"acopf/internal/opf"
)

// SolveResponse is the body returned by POST /api/v1/solve.
type SolveResponse struct {
	CaseName      string    `json:"case_name"`
	Status        string    `json:"status"`
	Solved        bool      `json:"solved"`
	ObjectiveCost float64   `json:"objective_cost"`
	MaxViolation  float64   `json:"max_violation"`
	Iterations    int       `json:"iterations"`
	Buses         []BusRow  `json:"buses"`
	Flows         []FlowRow `json:"flows,omitempty"`
}

// BusRow reports solved quantities for one bus. Nil fields mean the solver
// returned no value for that variable.
type BusRow struct {
	Bus    int      `json:"bus"`
	PgMW   *float64 `json:"pg_mw,omitempty"`
	QgMVAr *float64 `json:"qg_mvar,omitempty"`
	VaRad  *float64 `json:"va_rad,omitempty"`
	Vpu    *float64 `json:"v_pu,omitempty"`
}

// FlowRow reports the solved flow on one declared line.
type FlowRow struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	PMW   float64 `json:"p_mw"`
	QMVAr float64 `json:"q_mvar"`
}

// SolveResponseFrom converts an engine result to the wire shape.
func SolveResponseFrom(res *opf.Result, includeFlows bool) SolveResponse {
	out := SolveResponse{
		CaseName:      res.CaseName,
		Status:        res.Status.String(),
		Solved:        res.Solved(),
		ObjectiveCost: res.ObjectiveCost,
		MaxViolation:  res.MaxViolation,
		Iterations:    res.Iterations,
	}
	for _, b := range res.Buses {
		row := BusRow{Bus: int(b.Bus)}
		if b.HasPg {
			v := b.PgMW
			row.PgMW = &v
		}
		if b.HasQg {
			v := b.QgMVAr
			row.QgMVAr = &v
		}
		if b.HasVa {
			v := b.VaRad
			row.VaRad = &v
		}
		if b.HasV {
			v := b.Vpu
			row.Vpu = &v
		}
		out.Buses = append(out.Buses, row)
	}
	if includeFlows {
		for _, f := range res.Flows {
			if !f.Has {
				continue
			}
			out.Flows = append(out.Flows, FlowRow{
				From:  int(f.From),
				To:    int(f.To),
				PMW:   f.PMW,
				QMVAr: f.QMVAr,
			})
		}
	}
	return out
}

// LoadingResponse is the body returned by POST /api/v1/loading: a dispatch
// summary plus lines ranked by thermal loading, most constrained first.
type LoadingResponse struct {
	CaseName string `json:"case_name"`
	Status   string `json:"status"`
	Solved   bool   `json:"solved"`

	TotalGenMW     float64 `json:"total_gen_mw"`
	TotalGenMVAr   float64 `json:"total_gen_mvar"`
	TotalDemandMW  float64 `json:"total_demand_mw"`
	LossMW         float64 `json:"loss_mw"`
	GenerationCost float64 `json:"generation_cost"`

	Lines []LoadingRow `json:"lines"`
}

// LoadingRow is one ranked line.
type LoadingRow struct {
	From       int     `json:"from"`
	To         int     `json:"to"`
	PMW        float64 `json:"p_mw"`
	QMVAr      float64 `json:"q_mvar"`
	LimitMW    float64 `json:"limit_mw"`
	LoadingPct float64 `json:"loading_pct"`
}

// LoadingResponseFrom converts a summary and ranked loadings to the wire
// shape.
func LoadingResponseFrom(res *opf.Result, sum analysis.DispatchSummary, ranked []analysis.LineLoading) LoadingResponse {
	out := LoadingResponse{
		CaseName:       sum.CaseName,
		Status:         res.Status.String(),
		Solved:         res.Solved(),
		TotalGenMW:     sum.TotalGenMW,
		TotalGenMVAr:   sum.TotalGenMVAr,
		TotalDemandMW:  sum.TotalDemandMW,
		LossMW:         sum.LossMW,
		GenerationCost: sum.GenerationCost,
	}
	for _, ll := range ranked {
		out.Lines = append(out.Lines, LoadingRow{
			From:       int(ll.From),
			To:         int(ll.To),
			PMW:        ll.PMW,
			QMVAr:      ll.QMVAr,
			LimitMW:    ll.LimitMW,
			LoadingPct: ll.LoadingPct,
		})
	}
	return out
}

// ErrorResponse is the error envelope used by every handler.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
