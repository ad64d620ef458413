package main

import (
	"log"
	"os"

	"acopf/internal/model"
	"acopf/internal/opf"
	"acopf/internal/report"
)

// One-shot batch run: build the fixed 5-bus case, solve it once with the
// default solver settings, print the report. No flags, no environment, no
// files. A malformed case or an unconstructible solver is fatal before any
// output; a non-optimal termination is reported and printing proceeds with
// whatever values came back.
func main() {
	engine, err := opf.New()
	if err != nil {
		log.Fatalf("solver unavailable: %v", err)
	}

	res, err := engine.Run(model.FiveBus())
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	report.New(os.Stdout).Print(res)
}
