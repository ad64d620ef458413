package analysis

import (
	"sort"

	"acopf/internal/model"
	"acopf/internal/opf"
)

// RankByLoading computes loadings for a solved case and sorts descending by
// LoadingPct, so the most constrained line comes first. Ties break on the
// (From, To) pair to keep the order stable.
func RankByLoading(c *model.Case, res *opf.Result) []LineLoading {
	out := ComputeLoadings(c, res)
	sort.Slice(out, func(i, j int) bool {
		if out[i].LoadingPct != out[j].LoadingPct {
			return out[i].LoadingPct > out[j].LoadingPct
		}
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
