package report

import (
	"bytes"
	"testing"

	"acopf/internal/nlp"
	"acopf/internal/opf"

	"github.com/stretchr/testify/assert"
)

func TestPrintSolvedReport(t *testing.T) {
	res := &opf.Result{
		CaseName: "five-bus",
		Status:   nlp.StatusOptimal,
		Buses: []opf.BusResult{
			{Bus: 1, PgMW: 100, HasPg: true, QgMVAr: 12.5, HasQg: true, VaRad: 0, HasVa: true},
			{Bus: 2, VaRad: -0.021, HasVa: true},
			{Bus: 3, PgMW: 250.5, HasPg: true, QgMVAr: -30, HasQg: true, VaRad: 0.015, HasVa: true},
		},
	}

	var buf bytes.Buffer
	New(&buf).Print(res)

	want := "Model solved successfully!\n" +
		"Generator 1: Pg = 100\n" +
		"Generator 3: Pg = 250.5\n" +
		"Bus 1: Va = 0\n" +
		"Bus 2: Va = -0.021\n" +
		"Bus 3: Va = 0.015\n" +
		"Active Power Output (Pg) in MW:\n" +
		"Generator 1: Pg = 100 MW\n" +
		"Generator 3: Pg = 250.5 MW\n" +
		"Reactive Power Output (Qg) in MVar:\n" +
		"Generator 1: Qg = 12.5 MVar\n" +
		"Generator 3: Qg = -30 MVar\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintNonOptimalTermination(t *testing.T) {
	res := &opf.Result{
		CaseName: "five-bus",
		Status:   nlp.StatusInfeasible,
		Buses: []opf.BusResult{
			{Bus: 1, PgMW: 42, HasPg: true},
		},
	}

	var buf bytes.Buffer
	New(&buf).Print(res)

	out := buf.String()
	assert.Contains(t, out, "Model could not be solved. Termination condition: infeasible\n")
	// Best-effort values still print.
	assert.Contains(t, out, "Generator 1: Pg = 42\n")
}

func TestPrintSkipsMissingValues(t *testing.T) {
	// A solve that produced no assignment prints only the status and the
	// section headers; no per-bus rows, no errors.
	res := &opf.Result{
		CaseName: "five-bus",
		Status:   nlp.StatusSolverError,
		Buses: []opf.BusResult{
			{Bus: 1}, {Bus: 2}, {Bus: 3}, {Bus: 4}, {Bus: 5},
		},
	}

	var buf bytes.Buffer
	New(&buf).Print(res)

	want := "Model could not be solved. Termination condition: error\n" +
		"Active Power Output (Pg) in MW:\n" +
		"Reactive Power Output (Qg) in MVar:\n"
	assert.Equal(t, want, buf.String())
}
