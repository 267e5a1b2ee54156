package engine

import (
	"github.com/lacquerai/archetype/internal/result"
)

// accumulator keeps the running per-category sums in category order.
type accumulator struct {
	categories []string
	sums       map[string]float64
}

func newAccumulator(categories []string) *accumulator {
	return &accumulator{
		categories: categories,
		sums:       make(map[string]float64, len(categories)),
	}
}

func (a *accumulator) scratch() map[string]float64 {
	return make(map[string]float64, len(a.categories))
}

// add folds one question's points into the sums and returns them in
// category order. Points for undeclared categories are dropped.
func (a *accumulator) add(points map[string]float64) []result.CategoryScore {
	var added []result.CategoryScore
	for _, name := range a.categories {
		p, ok := points[name]
		if !ok {
			continue
		}
		a.sums[name] += p
		added = append(added, result.CategoryScore{Category: name, Score: p})
	}
	return added
}

func (a *accumulator) totals() result.ScoreVector {
	v := result.NewScoreVector(a.categories)
	for i := range v {
		v[i].Score = a.sums[v[i].Category]
	}
	return v
}
