package core

// MatchedPair couples one current and one reference entity sharing a key.
type MatchedPair[T any] struct {
	Current   T
	Reference T
}

// Partition is the outcome of a reconcile pass: a full outer join of two
// collections on an identity key. Added holds entities present only in
// current, Removed entities present only in reference; Matched pairs flow
// to field-level classification.
type Partition[T any] struct {
	Matched []MatchedPair[T]
	Added   []T
	Removed []T
}

// reconcile partitions current and reference by key. Keys are usually
// unique, but duplicates are tolerated as a multiset join: occurrences
// under one key are paired in document order and the surplus spills into
// Added or Removed instead of crashing.
func reconcile[T any](current, reference []T, key func(T) string) Partition[T] {
	refByKey := make(map[string][]int, len(reference))
	for i, r := range reference {
		k := key(r)
		refByKey[k] = append(refByKey[k], i)
	}

	var p Partition[T]
	consumed := make([]bool, len(reference))

	for _, c := range current {
		k := key(c)
		matched := false
		for _, ri := range refByKey[k] {
			if consumed[ri] {
				continue
			}
			consumed[ri] = true
			p.Matched = append(p.Matched, MatchedPair[T]{Current: c, Reference: reference[ri]})
			matched = true
			break
		}
		if !matched {
			p.Added = append(p.Added, c)
		}
	}

	for i, r := range reference {
		if !consumed[i] {
			p.Removed = append(p.Removed, r)
		}
	}

	return p
}
