package models

import "acopf/internal/model"

// SolveRequest is the body of POST /api/v1/solve. Case is optional: when
// omitted, the built-in 5-bus case is solved. A supplied case must have the
// same table shape as the built-in one.
type SolveRequest struct {
	Case    *CaseSpec    `json:"case,omitempty"`
	Options SolveOptions `json:"options"`
}

type SolveOptions struct {
	IncludeFlows bool `json:"include_flows"`
}

// CaseSpec mirrors model.Case in JSON form.
type CaseSpec struct {
	Name       string          `json:"name"`
	SbaseMW    float64         `json:"sbase_mw"`
	Buses      []int           `json:"buses"`
	Slack      int             `json:"slack"`
	Generators []GeneratorSpec `json:"generators"`
	Demands    []DemandSpec    `json:"demands"`
	Lines      []LineSpec      `json:"lines"`
}

type GeneratorSpec struct {
	Bus      int     `json:"bus"`
	PminMW   float64 `json:"pmin_mw"`
	PmaxMW   float64 `json:"pmax_mw"`
	QminMVAr float64 `json:"qmin_mvar"`
	QmaxMVAr float64 `json:"qmax_mvar"`
	CostB    float64 `json:"cost_b"`
}

type DemandSpec struct {
	Bus    int     `json:"bus"`
	PdMW   float64 `json:"pd_mw"`
	QdMVAr float64 `json:"qd_mvar"`
}

type LineSpec struct {
	From    int     `json:"from"`
	To      int     `json:"to"`
	R       float64 `json:"r"`
	X       float64 `json:"x"`
	B       float64 `json:"b"`
	LimitMW float64 `json:"limit_mw"`
}

// ToCase converts the JSON shape into the domain case. Validation happens
// in model.Case.Validate, not here.
func (s *CaseSpec) ToCase() *model.Case {
	c := &model.Case{
		Name:       s.Name,
		SbaseMW:    s.SbaseMW,
		Slack:      model.Bus(s.Slack),
		Generators: make(map[model.Bus]model.Generator, len(s.Generators)),
		Demands:    make(map[model.Bus]model.Demand, len(s.Demands)),
	}
	for _, b := range s.Buses {
		c.Buses = append(c.Buses, model.Bus(b))
	}
	for _, g := range s.Generators {
		c.Generators[model.Bus(g.Bus)] = model.Generator{
			Bus:      model.Bus(g.Bus),
			PminMW:   g.PminMW,
			PmaxMW:   g.PmaxMW,
			QminMVAr: g.QminMVAr,
			QmaxMVAr: g.QmaxMVAr,
			CostB:    g.CostB,
		}
	}
	for _, d := range s.Demands {
		c.Demands[model.Bus(d.Bus)] = model.Demand{PdMW: d.PdMW, QdMVAr: d.QdMVAr}
	}
	for _, l := range s.Lines {
		c.Lines = append(c.Lines, model.Line{
			From:    model.Bus(l.From),
			To:      model.Bus(l.To),
			R:       l.R,
			X:       l.X,
			B:       l.B,
			LimitMW: l.LimitMW,
		})
	}
	return c
}

// CaseSpecFrom builds the JSON shape from a domain case, bus-ordered.
func CaseSpecFrom(c *model.Case) CaseSpec {
	s := CaseSpec{
		Name:    c.Name,
		SbaseMW: c.SbaseMW,
		Slack:   int(c.Slack),
	}
	for _, b := range c.Buses {
		s.Buses = append(s.Buses, int(b))
		if g, ok := c.Generators[b]; ok {
			s.Generators = append(s.Generators, GeneratorSpec{
				Bus:      int(b),
				PminMW:   g.PminMW,
				PmaxMW:   g.PmaxMW,
				QminMVAr: g.QminMVAr,
				QmaxMVAr: g.QmaxMVAr,
				CostB:    g.CostB,
			})
		}
		if d, ok := c.Demands[b]; ok {
			s.Demands = append(s.Demands, DemandSpec{Bus: int(b), PdMW: d.PdMW, QdMVAr: d.QdMVAr})
		}
	}
	for _, l := range c.Lines {
		s.Lines = append(s.Lines, LineSpec{
			From:    int(l.From),
			To:      int(l.To),
			R:       l.R,
			X:       l.X,
			B:       l.B,
			LimitMW: l.LimitMW,
		})
	}
	return s
}
