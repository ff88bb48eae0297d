package core

import (
	"sort"

	"github.com/formlens/formlens/schema"
)

// FuzzyMatcher finds the closest label on the opposite side of a
// comparison. It is a diagnostic aid for orphaned entities, never an
// identity decision: statuses are not reclassified on its account.
//
// The optional normalize hook preprocesses labels before measuring, so a
// caller can strip boilerplate (stop words, markup) the way its own
// pipeline does. A nil matcher is valid and matches nothing.
type FuzzyMatcher struct {
	normalize func(string) string
}

// NewFuzzyMatcher returns a matcher with an optional label normalizer.
func NewFuzzyMatcher(normalize func(string) string) *FuzzyMatcher {
	return &FuzzyMatcher{normalize: normalize}
}

func (m *FuzzyMatcher) prep(s string) string {
	if m == nil || m.normalize == nil {
		return s
	}
	return m.normalize(s)
}

// Closest scans the other side's full, unfiltered collection and returns
// the entity whose label is nearest, with the measured distance. Ties go to
// the lowest distance, then to the first candidate in original order. It
// returns nil when the label or the pool is unmeasurable.
func (m *FuzzyMatcher) Closest(label *string, pool []schema.QuestionRecord) *schema.ClosestLabel {
	if m == nil || !present(label) {
		return nil
	}
	needle := m.prep(*label)

	var best *schema.ClosestLabel
	for _, q := range pool {
		if !present(q.Label) {
			continue
		}
		d := CompareStrings(needle, m.prep(*q.Label))
		if !d.Comparable() {
			continue
		}
		if best == nil || d.Score() < best.Distance {
			best = &schema.ClosestLabel{
				Name:     q.Name,
				Label:    *q.Label,
				Distance: d.Score(),
			}
		}
	}
	return best
}

// DetectSimilarLabels cross-joins the two sides' labeled questions and
// keeps pairs whose similarity (1 - distance) is at least the fixed floor,
// sorted by similarity descending then current-side order ascending.
func (m *FuzzyMatcher) DetectSimilarLabels(cur, ref []schema.QuestionRecord) []schema.SimilarLabelPair {
	var pairs []schema.SimilarLabelPair
	for _, c := range cur {
		if !present(c.Label) {
			continue
		}
		cn := m.prep(*c.Label)
		for _, r := range ref {
			if !present(r.Label) {
				continue
			}
			d := CompareStrings(cn, m.prep(*r.Label))
			if !d.Comparable() {
				continue
			}
			if sim := d.Similarity(); sim >= schema.SimilarityFloor {
				pairs = append(pairs, schema.SimilarLabelPair{
					CurrentName:    c.Name,
					CurrentLabel:   *c.Label,
					CurrentOrder:   c.Order,
					ReferenceName:  r.Name,
					ReferenceLabel: *r.Label,
					ReferenceOrder: r.Order,
					Similarity:     sim,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Similarity != pairs[j].Similarity {
			return pairs[i].Similarity > pairs[j].Similarity
		}
		return pairs[i].CurrentOrder < pairs[j].CurrentOrder
	})
	return pairs
}
