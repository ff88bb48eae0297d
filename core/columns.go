package core

import (
	"strings"

	"github.com/formlens/formlens/schema"
)

// taggedColumn is a column name split on its "prefix::language-tag" shape.
type taggedColumn struct {
	prefix string
	tag    string
}

// splitLanguageTag parses a column name of the form "prefix::tag" where the
// prefix is one of the fixed language-taggable column prefixes. Columns of
// any other shape do not participate in the rename heuristic.
func splitLanguageTag(name string) (taggedColumn, bool) {
	prefix, tag, found := strings.Cut(name, "::")
	if !found || tag == "" {
		return taggedColumn{}, false
	}
	for _, p := range schema.LanguageTaggablePrefixes {
		if prefix == p {
			return taggedColumn{prefix: prefix, tag: tag}, true
		}
	}
	return taggedColumn{}, false
}

// classifyColumns reconciles the two ordered column-name lists, then
// resolves language-tag renames: a removed "label::english" and an added
// "label::en" with a name distance under the fixed threshold collapse into
// one likely_modified pair instead of an unrelated add/remove. The distance
// is measured over the whole tagged name with the prefix required to match
// exactly, so the shared prefix anchors short tags like "en".
func classifyColumns(cur, ref []string) []schema.ColumnDiff {
	part := reconcile(cur, ref, func(s string) string { return s })

	curOrder := make(map[string]int, len(cur))
	for i, n := range cur {
		curOrder[n] = i
	}
	refOrder := make(map[string]int, len(ref))
	for i, n := range ref {
		refOrder[n] = i
	}

	rows := make([]schema.ColumnDiff, 0, len(part.Matched)+len(part.Added)+len(part.Removed))
	for _, p := range part.Matched {
		name := p.Current
		rows = append(rows, schema.ColumnDiff{
			CurrentName:   &name,
			ReferenceName: &name,
			Order:         meanOrder(curOrder[name], refOrder[name]),
			Status:        schema.UnchangedStatus,
		})
	}

	// Candidate pairs are collected first and withdrawn afterwards; the
	// added/removed buckets are never mutated mid-scan. Ties resolve to
	// the lowest tag distance, then the first added-side candidate in
	// document order.
	addedUsed := make([]bool, len(part.Added))
	removedUsed := make([]bool, len(part.Removed))
	for ri, removed := range part.Removed {
		rtag, ok := splitLanguageTag(removed)
		if !ok {
			continue
		}
		bestIdx := -1
		bestDist := schema.RenameTagThreshold
		for ai, added := range part.Added {
			if addedUsed[ai] {
				continue
			}
			atag, ok := splitLanguageTag(added)
			if !ok || atag.prefix != rtag.prefix {
				continue
			}
			d := CompareStrings(added, removed)
			if !d.Comparable() {
				continue
			}
			if d.Score() < bestDist {
				bestDist = d.Score()
				bestIdx = ai
			}
		}
		if bestIdx < 0 {
			continue
		}
		addedUsed[bestIdx] = true
		removedUsed[ri] = true
		curName, refName := part.Added[bestIdx], removed
		dist := bestDist
		rows = append(rows, schema.ColumnDiff{
			CurrentName:   &curName,
			ReferenceName: &refName,
			Order:         meanOrder(curOrder[curName], refOrder[refName]),
			Status:        schema.LikelyModifiedStatus,
			TagDistance:   &dist,
		})
	}

	for ai, name := range part.Added {
		if addedUsed[ai] {
			continue
		}
		n := name
		rows = append(rows, schema.ColumnDiff{
			CurrentName: &n,
			Order:       float64(curOrder[n]),
			Status:      schema.AddedStatus,
		})
	}
	for ri, name := range part.Removed {
		if removedUsed[ri] {
			continue
		}
		n := name
		rows = append(rows, schema.ColumnDiff{
			ReferenceName: &n,
			Order:         float64(refOrder[n]),
			Status:        schema.RemovedStatus,
		})
	}

	sortRows(rows, func(r schema.ColumnDiff) (float64, string) {
		name := ""
		if r.CurrentName != nil {
			name = *r.CurrentName
		} else if r.ReferenceName != nil {
			name = *r.ReferenceName
		}
		return r.Order, name
	})
	return rows
}
