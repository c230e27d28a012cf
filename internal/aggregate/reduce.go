// Package aggregate rolls scored infrastructure units into area blocks and
// locality zones using typed per-field reducers.
package aggregate

import "math"

// group holds one group's members in first-encounter order.
type group[K comparable, T any] struct {
	Key     K
	Members []T
}

// groupBy partitions items by key, preserving the order in which keys are
// first encountered and the input order within each group.
func groupBy[K comparable, T any](items []T, key func(T) K) []group[K, T] {
	index := make(map[K]int, len(items))
	var groups []group[K, T]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K, T]{Key: k})
		}
		groups[i].Members = append(groups[i].Members, it)
	}
	return groups
}

// sumBy reduces a group to the sum of a numeric field.
func sumBy[T any](members []T, field func(T) float64) float64 {
	var total float64
	for _, m := range members {
		total += field(m)
	}
	return total
}

// meanBy reduces a group to the arithmetic mean of a numeric field.
// An empty group yields 0.
func meanBy[T any](members []T, field func(T) float64) float64 {
	if len(members) == 0 {
		return 0
	}
	return sumBy(members, field) / float64(len(members))
}

// firstBy reduces a group to the first member's field value, the reducer for
// fields that are homogeneous (or treated as representative) within a group.
func firstBy[T, V any](members []T, field func(T) V) V {
	var zero V
	if len(members) == 0 {
		return zero
	}
	return field(members[0])
}

// dominant returns the most frequent field value in the group. Ties are
// broken by first occurrence in group order, which is deterministic because
// the loader preserves file order.
func dominant[T any, V comparable](members []T, field func(T) V) V {
	var zero V
	if len(members) == 0 {
		return zero
	}

	counts := make(map[V]int, len(members))
	firstSeen := make(map[V]int, len(members))
	for i, m := range members {
		v := field(m)
		counts[v]++
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
	}

	best := field(members[0])
	for v, n := range counts {
		if n > counts[best] || (n == counts[best] && firstSeen[v] < firstSeen[best]) {
			best = v
		}
	}
	return best
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
