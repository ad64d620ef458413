package analysis

import (
	"math"

	"acopf/internal/model"
	"acopf/internal/opf"
)

// LineLoading summarizes one declared line of a solved dispatch: the active
// and reactive flow at the sending end and how much of the thermal limit the
// active flow uses.
type LineLoading struct {
	From model.Bus
	To   model.Bus

	PMW   float64
	QMVAr float64

	LimitMW float64

	// LoadingPct is |PMW| / LimitMW * 100. Reactive flow is not limited and
	// does not enter the figure.
	LoadingPct float64
}

// DispatchSummary is a case-level roll-up of a solved dispatch. LossMW is
// total generation minus total demand; for an exact power balance it equals
// the series losses on the network.
type DispatchSummary struct {
	CaseName string

	TotalGenMW    float64
	TotalGenMVAr  float64
	TotalDemandMW float64
	LossMW        float64

	GenerationCost float64
}

// ComputeLoadings pairs each solved flow with its line's thermal limit.
// Flows the solver produced no value for are skipped, as are flows on lines
// the case does not declare.
func ComputeLoadings(c *model.Case, res *opf.Result) []LineLoading {
	out := make([]LineLoading, 0, len(res.Flows))
	for _, f := range res.Flows {
		if !f.Has {
			continue
		}
		line, ok := c.Line(f.From, f.To)
		if !ok {
			continue
		}
		ll := LineLoading{
			From:    f.From,
			To:      f.To,
			PMW:     f.PMW,
			QMVAr:   f.QMVAr,
			LimitMW: line.LimitMW,
		}
		if line.LimitMW > 0 {
			ll.LoadingPct = math.Abs(f.PMW) / line.LimitMW * 100
		}
		out = append(out, ll)
	}
	return out
}

// Summarize totals the bus results of a solve. Buses without solved values
// contribute nothing.
func Summarize(c *model.Case, res *opf.Result) DispatchSummary {
	s := DispatchSummary{
		CaseName:       res.CaseName,
		GenerationCost: res.ObjectiveCost,
	}
	for _, b := range res.Buses {
		if b.HasPg {
			s.TotalGenMW += b.PgMW
		}
		if b.HasQg {
			s.TotalGenMVAr += b.QgMVAr
		}
	}
	for _, d := range c.Demands {
		s.TotalDemandMW += d.PdMW
	}
	s.LossMW = s.TotalGenMW - s.TotalDemandMW
	return s
}
