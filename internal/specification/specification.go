// Package specification implements a declarative, composable description of
// "which entities, in what order, with what paging" decoupled from how the
// query executes, plus the evaluator that applies one to a collection.
package specification

import "sort"

// Specification bundles an optional filter predicate, an optional ordering
// key, and an optional paging window for querying a collection of T.
type Specification[T any] struct {
	// Criteria filters the collection. A nil Criteria matches every entity.
	Criteria func(T) bool

	less       func(a, b T) bool
	descending bool

	skip          int
	take          int
	pagingEnabled bool
}

// OrderBy sets an ascending ordering key. Only one ordering key is active
// at a time; the last writer wins.
func (s *Specification[T]) OrderBy(less func(a, b T) bool) {
	s.less = less
	s.descending = false
}

// OrderByDescending sets a descending ordering key, replacing any previous one.
func (s *Specification[T]) OrderByDescending(less func(a, b T) bool) {
	s.less = less
	s.descending = true
}

// ApplyPaging enables the paging window. Skip and take are ignored until
// paging is enabled.
func (s *Specification[T]) ApplyPaging(skip, take int) {
	s.skip = skip
	s.take = take
	s.pagingEnabled = true
}

// Evaluate applies spec to items and returns the filtered, sorted, paged
// result. It is a pure function of its inputs: items is never reordered or
// otherwise mutated, and evaluating the same specification twice against an
// unchanged collection yields the same sequence.
func Evaluate[T any](items []T, spec *Specification[T]) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if spec.Criteria == nil || spec.Criteria(item) {
			result = append(result, item)
		}
	}

	if spec.less != nil {
		less := spec.less
		if spec.descending {
			sort.SliceStable(result, func(i, j int) bool { return less(result[j], result[i]) })
		} else {
			sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
		}
	}

	if spec.pagingEnabled {
		start := spec.skip
		if start > len(result) {
			start = len(result)
		}
		end := start + spec.take
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}

	return result
}

// Count returns how many items satisfy the specification's criteria,
// ignoring ordering and paging.
func Count[T any](items []T, spec *Specification[T]) int64 {
	if spec.Criteria == nil {
		return int64(len(items))
	}
	var n int64
	for _, item := range items {
		if spec.Criteria(item) {
			n++
		}
	}
	return n
}
