package model

// FiveBus returns the built-in 5-bus study case. The tables are the fixed
// inputs for the one-shot solve: four generators, loads at every bus, six
// lines declared in a single direction each, slack at bus 1, 100 MW base.
func FiveBus() *Case {
	return &Case{
		Name:    "five-bus",
		SbaseMW: 100,
		Buses:   []Bus{1, 2, 3, 4, 5},
		Slack:   1,
		Generators: map[Bus]Generator{
			1: {Bus: 1, PminMW: 0, PmaxMW: 210, QminMVAr: -157.5, QmaxMVAr: 157.5, CostB: 3},
			3: {Bus: 3, PminMW: 0, PmaxMW: 520, QminMVAr: -390, QmaxMVAr: 390, CostB: 5},
			4: {Bus: 4, PminMW: 0, PmaxMW: 200, QminMVAr: -150, QmaxMVAr: 150, CostB: 2},
			5: {Bus: 5, PminMW: 0, PmaxMW: 600, QminMVAr: -450, QmaxMVAr: 450, CostB: 1},
		},
		Demands: map[Bus]Demand{
			1: {PdMW: 100, QdMVAr: 0},
			2: {PdMW: 300, QdMVAr: 98.61},
			3: {PdMW: 300, QdMVAr: 98.61},
			4: {PdMW: 400, QdMVAr: 131.47},
			5: {PdMW: 500, QdMVAr: 0},
		},
		Lines: []Line{
			{From: 1, To: 2, R: 0.00281, X: 0.0281, B: 0.00712, LimitMW: 400},
			{From: 1, To: 3, R: 0.00304, X: 0.0304, B: 0.00658, LimitMW: 400},
			{From: 1, To: 5, R: 0.00064, X: 0.0064, B: 0.03126, LimitMW: 400},
			{From: 2, To: 3, R: 0.00108, X: 0.0108, B: 0.01852, LimitMW: 400},
			{From: 3, To: 4, R: 0.00297, X: 0.0297, B: 0.00674, LimitMW: 400},
			{From: 4, To: 5, R: 0.00297, X: 0.0297, B: 0.00674, LimitMW: 240},
		},
	}
}
