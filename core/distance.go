package core

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// IncomparableScore is the sentinel returned when two strings cannot be
// measured against each other (either side absent, or both empty). Absence
// of one label must never be silently treated as equal to presence of
// another, so the sentinel sits at the far end of the scale.
const IncomparableScore = 1.0

// Distance is the outcome of one normalized edit-distance computation:
// either a bounded value in [0,1] or an explicit "incomparable" marker.
type Distance struct {
	value      float64
	comparable bool
}

// Comparable reports whether both inputs were measurable.
func (d Distance) Comparable() bool { return d.comparable }

// Score returns the normalized distance, or IncomparableScore when the
// inputs could not be measured.
func (d Distance) Score() float64 {
	if !d.comparable {
		return IncomparableScore
	}
	return d.value
}

// Zero reports whether the inputs were measurable and identical.
func (d Distance) Zero() bool { return d.comparable && d.value == 0 }

// Similarity returns 1 - Score.
func (d Distance) Similarity() float64 { return 1 - d.Score() }

// Compare measures the normalized edit distance between two optional
// strings. A nil on either side is incomparable.
func Compare(a, b *string) Distance {
	if a == nil || b == nil {
		return Distance{}
	}
	return CompareStrings(*a, *b)
}

// CompareStrings measures the character-level edit distance between a and b,
// normalized by the longer rune length. Symmetric; two empty strings are
// incomparable rather than identical, since normalization has no scale.
func CompareStrings(a, b string) Distance {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return Distance{}
	}
	if a == b {
		return Distance{value: 0, comparable: true}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	edits := dmp.DiffLevenshtein(diffs)

	v := float64(edits) / float64(longest)
	if v > 1 {
		v = 1
	}
	return Distance{value: v, comparable: true}
}
