package report

import (
	"fmt"
	"io"

	"acopf/internal/opf"
)

// Reporter prints solved quantities as plain text. Output shape is stable:
// a status line, per-bus Pg and Va lines, then the MW and MVar sections.
// Rows whose value the solver did not return are skipped without comment.
type Reporter struct {
	w io.Writer
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Print writes the report for one solve.
func (r *Reporter) Print(res *opf.Result) {
	if res.Solved() {
		fmt.Fprintln(r.w, "Model solved successfully!")
	} else {
		fmt.Fprintf(r.w, "Model could not be solved. Termination condition: %s\n", res.Status)
	}

	for _, b := range res.Buses {
		if b.HasPg {
			fmt.Fprintf(r.w, "Generator %d: Pg = %v\n", b.Bus, b.PgMW)
		}
	}
	for _, b := range res.Buses {
		if b.HasVa {
			fmt.Fprintf(r.w, "Bus %d: Va = %v\n", b.Bus, b.VaRad)
		}
	}

	fmt.Fprintln(r.w, "Active Power Output (Pg) in MW:")
	for _, b := range res.Buses {
		if b.HasPg {
			fmt.Fprintf(r.w, "Generator %d: Pg = %v MW\n", b.Bus, b.PgMW)
		}
	}

	fmt.Fprintln(r.w, "Reactive Power Output (Qg) in MVar:")
	for _, b := range res.Buses {
		if b.HasQg {
			fmt.Fprintf(r.w, "Generator %d: Qg = %v MVar\n", b.Bus, b.QgMVAr)
		}
	}
}
