package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateFiltersWithCriteria(t *testing.T) {
	spec := &Specification[int]{
		Criteria: func(n int) bool { return n%2 == 0 },
	}

	result := Evaluate([]int{1, 2, 3, 4, 5, 6}, spec)

	assert.Equal(t, []int{2, 4, 6}, result)
}

func TestEvaluateNilCriteriaPassesEverythingThrough(t *testing.T) {
	spec := &Specification[int]{}

	result := Evaluate([]int{3, 1, 2}, spec)

	assert.Equal(t, []int{3, 1, 2}, result)
}

func TestEvaluateOrdersAscendingAndDescending(t *testing.T) {
	spec := &Specification[int]{}
	spec.OrderBy(func(a, b int) bool { return a < b })

	assert.Equal(t, []int{1, 2, 3}, Evaluate([]int{3, 1, 2}, spec))

	spec.OrderByDescending(func(a, b int) bool { return a < b })

	assert.Equal(t, []int{3, 2, 1}, Evaluate([]int{3, 1, 2}, spec))
}

func TestEvaluateLastOrderingKeyWins(t *testing.T) {
	type pair struct{ a, b int }
	spec := &Specification[pair]{}
	spec.OrderBy(func(x, y pair) bool { return x.a < y.a })
	spec.OrderByDescending(func(x, y pair) bool { return x.b < y.b })

	result := Evaluate([]pair{{1, 1}, {2, 3}, {3, 2}}, spec)

	assert.Equal(t, []pair{{2, 3}, {3, 2}, {1, 1}}, result)
}

func TestEvaluatePagingWindow(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	spec := &Specification[int]{}
	spec.OrderBy(func(a, b int) bool { return a < b })
	// pageIndex=2, pageSize=10
	spec.ApplyPaging(10, 10)

	result := Evaluate(items, spec)

	require.Len(t, result, 10)
	assert.Equal(t, 11, result[0])
	assert.Equal(t, 20, result[9])
	assert.Equal(t, int64(25), Count(items, spec))
}

func TestEvaluatePagingDisabledIgnoresWindow(t *testing.T) {
	spec := &Specification[int]{
		skip: 100,
		take: 1,
	}

	result := Evaluate([]int{1, 2, 3}, spec)

	assert.Len(t, result, 3)
}

func TestEvaluatePagingBeyondEndYieldsEmptyPage(t *testing.T) {
	spec := &Specification[int]{}
	spec.ApplyPaging(10, 10)

	result := Evaluate([]int{1, 2, 3}, spec)

	assert.Empty(t, result)
}

func TestEvaluateIsPure(t *testing.T) {
	items := []int{3, 1, 2}
	spec := &Specification[int]{
		Criteria: func(n int) bool { return n > 1 },
	}
	spec.OrderBy(func(a, b int) bool { return a < b })

	first := Evaluate(items, spec)
	second := Evaluate(items, spec)

	assert.Equal(t, first, second)
	assert.Equal(t, []int{3, 1, 2}, items, "input collection must not be mutated")
}

func TestCountIgnoresPaging(t *testing.T) {
	spec := &Specification[int]{
		Criteria: func(n int) bool { return n > 2 },
	}
	spec.ApplyPaging(0, 1)

	assert.Equal(t, int64(3), Count([]int{1, 2, 3, 4, 5}, spec))
}
