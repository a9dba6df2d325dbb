// Package sortengine sorts record slices on a named field using one of four
// algorithms: quicksort, mergesort, heapsort and a stable insertion-order
// preserving sort. Every algorithm uses the same key extraction and the same
// comparator (models.CompareFieldValues), so they agree on the ordering of
// every pair of records; only tie-breaking of equal keys may differ between
// the unstable algorithms.
//
// Sorting never mutates the input slice; a sorted copy is returned.
package sortengine

import (
	"sort"
	"strings"

	"fjacquet/receipt-csv/internal/models"
)

// Algorithm names accepted by the query coordinator.
const (
	AlgorithmQuicksort = "quicksort"
	AlgorithmMergesort = "mergesort"
	AlgorithmHeapsort  = "heapsort"
	AlgorithmStable    = "stable"
)

// Normalize maps an algorithm name to its canonical form. The second return
// value is false for names outside the supported set, letting callers fall
// back to the stable sort.
func Normalize(algorithm string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case AlgorithmQuicksort:
		return AlgorithmQuicksort, true
	case AlgorithmMergesort:
		return AlgorithmMergesort, true
	case AlgorithmHeapsort:
		return AlgorithmHeapsort, true
	case AlgorithmStable, "":
		return AlgorithmStable, true
	default:
		return AlgorithmStable, false
	}
}

// keyed pairs a record with its precomputed sort key so key extraction runs
// once per record rather than once per comparison.
type keyed struct {
	key models.FieldValue
	rec models.Record
}

// Sort returns a copy of records ordered on the named field. Records where
// the field is absent sort to the front in both directions. An unknown field
// name is a caller error and returns it unchanged alongside the error.
func Sort(records []models.Record, field string, descending bool, algorithm string) ([]models.Record, error) {
	// Validate the field even for empty input so callers learn about a bad
	// field name regardless of data.
	var probe models.Record
	if _, err := probe.FieldValueOf(field); err != nil {
		return nil, err
	}

	items := make([]keyed, len(records))
	for i := range records {
		key, err := records[i].FieldValueOf(field)
		if err != nil {
			return nil, err
		}
		items[i] = keyed{key: key, rec: records[i]}
	}

	algorithm, _ = Normalize(algorithm)
	switch algorithm {
	case AlgorithmQuicksort:
		quicksort(items, descending)
	case AlgorithmMergesort:
		mergesort(items, descending)
	case AlgorithmHeapsort:
		heapsort(items, descending)
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return models.CompareFieldValues(items[i].key, items[j].key, descending) < 0
		})
	}

	out := make([]models.Record, len(items))
	for i := range items {
		out[i] = items[i].rec
	}
	return out, nil
}

// quicksort is an iterative three-way partition quicksort driven by an
// explicit stack of subranges. Three-way partitioning keeps duplicate keys
// from degrading to quadratic behavior, which matters here because category
// and vendor fields repeat heavily.
func quicksort(items []keyed, descending bool) {
	type span struct{ lo, hi int }
	if len(items) < 2 {
		return
	}

	stack := []span{{0, len(items) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.lo >= s.hi {
			continue
		}

		pivot := items[s.lo+(s.hi-s.lo)/2].key
		lt, i, gt := s.lo, s.lo, s.hi
		for i <= gt {
			c := models.CompareFieldValues(items[i].key, pivot, descending)
			switch {
			case c < 0:
				items[lt], items[i] = items[i], items[lt]
				lt++
				i++
			case c > 0:
				items[i], items[gt] = items[gt], items[i]
				gt--
			default:
				i++
			}
		}

		// Push the larger side first so the stack depth stays logarithmic.
		left := span{s.lo, lt - 1}
		right := span{gt + 1, s.hi}
		if left.hi-left.lo > right.hi-right.lo {
			stack = append(stack, left, right)
		} else {
			stack = append(stack, right, left)
		}
	}
}

// mergesort is a bottom-up merge sort using one auxiliary buffer. The merge
// keeps left-run elements first on equal keys, so this variant is stable.
func mergesort(items []keyed, descending bool) {
	n := len(items)
	if n < 2 {
		return
	}

	buf := make([]keyed, n)
	src, dst := items, buf
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(src, dst, lo, mid, hi, descending)
		}
		src, dst = dst, src
	}
	if &src[0] != &items[0] {
		copy(items, src)
	}
}

func merge(src, dst []keyed, lo, mid, hi int, descending bool) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		switch {
		case i >= mid:
			dst[k] = src[j]
			j++
		case j >= hi:
			dst[k] = src[i]
			i++
		case models.CompareFieldValues(src[j].key, src[i].key, descending) < 0:
			dst[k] = src[j]
			j++
		default:
			dst[k] = src[i]
			i++
		}
	}
}

// heapsort builds a max-heap in the comparator's order and repeatedly swaps
// the root to the end of the shrinking range.
func heapsort(items []keyed, descending bool) {
	n := len(items)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(items, i, n, descending)
	}
	for end := n - 1; end > 0; end-- {
		items[0], items[end] = items[end], items[0]
		siftDown(items, 0, end, descending)
	}
}

func siftDown(items []keyed, root, end int, descending bool) {
	for {
		child := 2*root + 1
		if child >= end {
			return
		}
		if child+1 < end && models.CompareFieldValues(items[child+1].key, items[child].key, descending) > 0 {
			child++
		}
		if models.CompareFieldValues(items[child].key, items[root].key, descending) <= 0 {
			return
		}
		items[root], items[child] = items[child], items[root]
		root = child
	}
}
