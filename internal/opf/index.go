package opf

import (
	"fmt"

	"acopf/internal/model"
)

// Index maps every OPF decision variable to its position in the flat
// nlp.Model variable slice. Layout is kind-major and bus-ordered so that a
// given case always produces the same model:
//
//	Pg[b] Qg[b] Va[b] V[b] for each bus, then
//	Pij[i,j] Qij[i,j] for every ordered bus pair.
//
// Flow variables exist for every ordered pair, declared line or not; the
// undeclared ones are free and unreferenced, matching the formulation this
// model reproduces.
type Index struct {
	buses []model.Bus
	slot  map[varKey]int
	n     int
}

type varKind int

const (
	kindPg varKind = iota
	kindQg
	kindVa
	kindV
	kindPij
	kindQij
)

type varKey struct {
	kind varKind
	from model.Bus
	to   model.Bus
}

// NewIndex lays out the variable space for a case.
func NewIndex(c *model.Case) *Index {
	idx := &Index{
		buses: append([]model.Bus(nil), c.Buses...),
		slot:  make(map[varKey]int),
	}
	add := func(k varKey) {
		idx.slot[k] = idx.n
		idx.n++
	}
	for _, kind := range []varKind{kindPg, kindQg, kindVa, kindV} {
		for _, b := range idx.buses {
			add(varKey{kind: kind, from: b})
		}
	}
	for _, kind := range []varKind{kindPij, kindQij} {
		for _, i := range idx.buses {
			for _, j := range idx.buses {
				add(varKey{kind: kind, from: i, to: j})
			}
		}
	}
	return idx
}

// Len is the total number of decision variables.
func (idx *Index) Len() int { return idx.n }

// Buses returns the bus ordering the layout was built over.
func (idx *Index) Buses() []model.Bus { return idx.buses }

func (idx *Index) at(k varKey) int {
	pos, ok := idx.slot[k]
	if !ok {
		panic(fmt.Sprintf("opf: no variable for kind %d pair (%d,%d)", k.kind, k.from, k.to))
	}
	return pos
}

// Pg returns the position of the real power output variable at bus b.
func (idx *Index) Pg(b model.Bus) int { return idx.at(varKey{kind: kindPg, from: b}) }

// Qg returns the position of the reactive power output variable at bus b.
func (idx *Index) Qg(b model.Bus) int { return idx.at(varKey{kind: kindQg, from: b}) }

// Va returns the position of the voltage angle variable at bus b.
func (idx *Index) Va(b model.Bus) int { return idx.at(varKey{kind: kindVa, from: b}) }

// V returns the position of the voltage magnitude variable at bus b.
func (idx *Index) V(b model.Bus) int { return idx.at(varKey{kind: kindV, from: b}) }

// Pij returns the position of the real flow variable for the ordered pair.
func (idx *Index) Pij(i, j model.Bus) int { return idx.at(varKey{kind: kindPij, from: i, to: j}) }

// Qij returns the position of the reactive flow variable for the ordered pair.
func (idx *Index) Qij(i, j model.Bus) int { return idx.at(varKey{kind: kindQij, from: i, to: j}) }
