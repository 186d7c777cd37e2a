// Package progress measures improvement between a diagnostic and a final quiz
// attempt and tracks where a topic is in the quiz lifecycle.
package progress

import (
	"errors"

	"sals_backend/internal/concept"
)

// ErrUndefinedProgress is returned when an improvement percentage is asked for
// before both the initial and the final attempt exist.
var ErrUndefinedProgress = errors.New("progress undefined: initial and final attempts are both required")

// Report partitions initial ∪ final weak concepts. The three sets are pairwise
// disjoint and their union is Initial ∪ Final.
type Report struct {
	Improved              concept.Set `json:"improved_concepts"`
	StillWeak             concept.Set `json:"still_weak_concepts"`
	NewlyWeak             concept.Set `json:"new_weak_concepts"`
	Total                 int         `json:"total_concepts"`
	ImprovementPercentage float64     `json:"improvement_percentage"`
}

// Compute diffs the weak concepts of two attempts.
//
// When neither attempt has a weak concept the percentage is 0, meaning no
// improvement was measured, not full mastery.
func Compute(initialWeak, finalWeak concept.Set) Report {
	r := Report{
		Improved:  initialWeak.Difference(finalWeak),
		StillWeak: initialWeak.Intersect(finalWeak),
		NewlyWeak: finalWeak.Difference(initialWeak),
		Total:     initialWeak.Union(finalWeak).Len(),
	}
	if r.Total > 0 {
		r.ImprovementPercentage = float64(r.Improved.Len()) / float64(r.Total) * 100
	}
	return r
}
