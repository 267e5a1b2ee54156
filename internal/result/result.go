// Package result derives the ranked list and chart data from a score vector.
package result

import (
	"sort"
)

const (
	// axisHeadroom scales the largest score to leave room on the chart.
	axisHeadroom = 1.2
	// axisFloor is the axis ceiling used when every score is zero.
	axisFloor = 10.0
)

// CategoryScore is the accumulated score of one category
type CategoryScore struct {
	Category string  `json:"category" yaml:"category"`
	Score    float64 `json:"score" yaml:"score"`
}

// ScoreVector holds one entry per catalog category in declaration order.
type ScoreVector []CategoryScore

// NewScoreVector returns a zeroed vector over categories
func NewScoreVector(categories []string) ScoreVector {
	v := make(ScoreVector, len(categories))
	for i, name := range categories {
		v[i] = CategoryScore{Category: name}
	}
	return v
}

// Get returns the score of a category
func (v ScoreVector) Get(category string) (float64, bool) {
	for _, cs := range v {
		if cs.Category == category {
			return cs.Score, true
		}
	}
	return 0, false
}

// Clone returns an independent copy
func (v ScoreVector) Clone() ScoreVector {
	out := make(ScoreVector, len(v))
	copy(out, v)
	return out
}

// Map returns the scores keyed by category
func (v ScoreVector) Map() map[string]float64 {
	m := make(map[string]float64, len(v))
	for _, cs := range v {
		m[cs.Category] = cs.Score
	}
	return m
}

// Ranked is a score vector sorted by score descending. Ties keep
// declaration order.
type Ranked []CategoryScore

// Top returns the highest ranked category
func (r Ranked) Top() (CategoryScore, bool) {
	if len(r) == 0 {
		return CategoryScore{}, false
	}
	return r[0], true
}

// Visualization is the radial chart input: raw scores on a shared axis.
type Visualization struct {
	Points  []CategoryScore `json:"points" yaml:"points"`
	AxisMax float64         `json:"axis_max" yaml:"axis_max"`
}

// Derive ranks v and computes the chart axis. v is not modified.
func Derive(v ScoreVector) (Ranked, Visualization) {
	ranked := make(Ranked, len(v))
	copy(ranked, v)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, Visualization{
		Points:  v.Clone(),
		AxisMax: AxisMax(v),
	}
}

// AxisMax returns 1.2 times the largest score, or 10 when no score is
// positive.
func AxisMax(v ScoreVector) float64 {
	highest := 0.0
	for _, cs := range v {
		highest = max(highest, cs.Score)
	}

	axis := highest * axisHeadroom
	if axis == 0 {
		return axisFloor
	}
	return axis
}
