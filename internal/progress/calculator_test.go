package progress

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"sals_backend/internal/concept"
)

func TestComputeScenario(t *testing.T) {
	r := Compute(concept.NewSet("BST", "Heap", "Sort"), concept.NewSet("Heap", "Graph"))

	assert.Equal(t, []string{"BST", "Sort"}, r.Improved.Names())
	assert.Equal(t, []string{"Heap"}, r.StillWeak.Names())
	assert.Equal(t, []string{"Graph"}, r.NewlyWeak.Names())
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 50.0, r.ImprovementPercentage)
}

func TestComputeNoChange(t *testing.T) {
	a := concept.NewSet("BST", "Heap")
	r := Compute(a, a)

	assert.True(t, r.Improved.IsEmpty())
	assert.True(t, r.StillWeak.Equal(a))
	assert.True(t, r.NewlyWeak.IsEmpty())
	assert.Equal(t, 0.0, r.ImprovementPercentage)
}

func TestComputeFullImprovement(t *testing.T) {
	a := concept.NewSet("BST", "Heap", "DP")
	r := Compute(a, concept.Set{})

	assert.True(t, r.Improved.Equal(a))
	assert.True(t, r.StillWeak.IsEmpty())
	assert.True(t, r.NewlyWeak.IsEmpty())
	assert.Equal(t, 100.0, r.ImprovementPercentage)
}

func TestComputeBothEmpty(t *testing.T) {
	r := Compute(concept.Set{}, concept.NewSet())

	assert.True(t, r.Improved.IsEmpty())
	assert.True(t, r.StillWeak.IsEmpty())
	assert.True(t, r.NewlyWeak.IsEmpty())
	assert.Equal(t, 0, r.Total)
	assert.Equal(t, 0.0, r.ImprovementPercentage)
}

func TestComputeIgnoresSpelling(t *testing.T) {
	r := Compute(concept.NewSet("Binary Search"), concept.NewSet("binary  search"))
	assert.Equal(t, 1, r.StillWeak.Len())
	assert.Equal(t, 1, r.Total)
}

func TestComputePartitionsInitialUnionFinal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := make([]string, 12)
	for i := range pool {
		pool[i] = fmt.Sprintf("concept-%d", i)
	}
	randomSet := func() concept.Set {
		s := concept.NewSet()
		for _, c := range pool {
			if rng.Intn(2) == 0 {
				_ = s.Add(c)
			}
		}
		return s
	}

	for i := 0; i < 200; i++ {
		a, b := randomSet(), randomSet()
		r := Compute(a, b)

		assert.True(t, r.Improved.Union(r.StillWeak).Union(r.NewlyWeak).Equal(a.Union(b)))
		assert.Zero(t, r.Improved.Intersect(r.StillWeak).Len())
		assert.Zero(t, r.Improved.Intersect(r.NewlyWeak).Len())
		assert.Zero(t, r.StillWeak.Intersect(r.NewlyWeak).Len())
		assert.Equal(t, a.Union(b).Len(), r.Total)
		assert.GreaterOrEqual(t, r.ImprovementPercentage, 0.0)
		assert.LessOrEqual(t, r.ImprovementPercentage, 100.0)
	}
}
