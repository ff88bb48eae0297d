package core

import (
	"math"
	"sort"

	"github.com/formlens/formlens/schema"
)

// present reports whether an optional field carries a usable value. The
// classifier folds empty strings into absence; absence on exactly one side
// is always a change, absence on both never is.
func present(s *string) bool { return s != nil && *s != "" }

// meanOrder merges the ordinal positions of a matched pair so that the
// order-sorted output interleaves added/removed/modified rows close to
// their original document position. Rounded to one decimal.
func meanOrder(a, b int) float64 {
	return math.Round((float64(a)+float64(b))/2*10) / 10
}

// exactChange is the change indicator for exact-match fields (types, flags,
// enumerations).
func exactChange(cur, ref *string) bool {
	cp, rp := present(cur), present(ref)
	switch {
	case !cp && !rp:
		return false
	case cp != rp:
		return true
	default:
		return *cur != *ref
	}
}

// textChange is the change indicator for free-text fields: a normalized
// edit distance, with presence asymmetry scored at the sentinel.
func textChange(cur, ref *string) (bool, *float64) {
	cp, rp := present(cur), present(ref)
	switch {
	case !cp && !rp:
		return false, nil
	case cp != rp:
		d := IncomparableScore
		return true, &d
	default:
		d := CompareStrings(*cur, *ref).Score()
		return d > 0, &d
	}
}

// labelChange grades a matched label pair into unchanged/minor/major using
// the fixed MinorLabelThreshold. The boundary value itself is minor.
func labelChange(cur, ref *string) (schema.LabelTier, *float64) {
	changed, dist := textChange(cur, ref)
	if !changed {
		return schema.LabelUnchanged, dist
	}
	if *dist <= schema.MinorLabelThreshold {
		return schema.LabelMinor, dist
	}
	return schema.LabelMajor, dist
}

func classifySettings(cur, ref []schema.SettingRecord) []schema.SettingDiff {
	part := reconcile(cur, ref, func(s schema.SettingRecord) string { return s.Name })

	rows := make([]schema.SettingDiff, 0, len(part.Matched)+len(part.Added)+len(part.Removed))
	for _, p := range part.Matched {
		status := schema.UnchangedStatus
		if exactChange(p.Current.Value, p.Reference.Value) {
			status = schema.ModifiedStatus
		}
		rows = append(rows, schema.SettingDiff{
			Name:           p.Current.Name,
			CurrentValue:   p.Current.Value,
			ReferenceValue: p.Reference.Value,
			Order:          meanOrder(p.Current.Order, p.Reference.Order),
			Status:         status,
		})
	}
	for _, s := range part.Added {
		rows = append(rows, schema.SettingDiff{
			Name:         s.Name,
			CurrentValue: s.Value,
			Order:        float64(s.Order),
			Status:       schema.AddedStatus,
		})
	}
	for _, s := range part.Removed {
		rows = append(rows, schema.SettingDiff{
			Name:           s.Name,
			ReferenceValue: s.Value,
			Order:          float64(s.Order),
			Status:         schema.RemovedStatus,
		})
	}

	sortRows(rows, func(r schema.SettingDiff) (float64, string) { return r.Order, r.Name })
	return rows
}

func classifyGroups(cur, ref *schema.GroupTree) []schema.GroupDiff {
	var curNodes, refNodes []schema.GroupNode
	if cur != nil {
		curNodes = cur.Nodes
	}
	if ref != nil {
		refNodes = ref.Nodes
	}
	part := reconcile(curNodes, refNodes, func(n schema.GroupNode) string { return n.Name })

	rows := make([]schema.GroupDiff, 0, len(part.Matched)+len(part.Added)+len(part.Removed))
	for _, p := range part.Matched {
		c, r := p.Current, p.Reference
		row := schema.GroupDiff{
			Name:            c.Name,
			CurrentKind:     &c.Kind,
			ReferenceKind:   &r.Kind,
			CurrentParent:   c.ParentName,
			ReferenceParent: r.ParentName,
			CurrentDepth:    &c.Depth,
			ReferenceDepth:  &r.Depth,
			Order:           meanOrder(c.ID, r.ID),
			Status:          schema.UnchangedStatus,
			KindChanged:     c.Kind != r.Kind,
			ParentChanged:   exactChange(c.ParentName, r.ParentName),
			DepthChanged:    c.Depth != r.Depth,
		}
		// A name match alone is not enough: a node that moved in the tree
		// or switched kind is a modification.
		if row.KindChanged || row.ParentChanged || row.DepthChanged {
			row.Status = schema.ModifiedStatus
		}
		rows = append(rows, row)
	}
	for _, n := range part.Added {
		kind, depth := n.Kind, n.Depth
		rows = append(rows, schema.GroupDiff{
			Name:          n.Name,
			CurrentKind:   &kind,
			CurrentParent: n.ParentName,
			CurrentDepth:  &depth,
			Order:         float64(n.ID),
			Status:        schema.AddedStatus,
		})
	}
	for _, n := range part.Removed {
		kind, depth := n.Kind, n.Depth
		rows = append(rows, schema.GroupDiff{
			Name:            n.Name,
			ReferenceKind:   &kind,
			ReferenceParent: n.ParentName,
			ReferenceDepth:  &depth,
			Order:           float64(n.ID),
			Status:          schema.RemovedStatus,
		})
	}

	sortRows(rows, func(r schema.GroupDiff) (float64, string) { return r.Order, r.Name })
	return rows
}

// listNames extracts the ordered distinct choice-list names of one side.
func listNames(choices []schema.ChoiceRecord) []string {
	seen := make(map[string]bool, len(choices))
	var names []string
	for _, c := range choices {
		if !seen[c.ListName] {
			seen[c.ListName] = true
			names = append(names, c.ListName)
		}
	}
	return names
}

func classifyLists(cur, ref []schema.ChoiceRecord) []schema.ListDiff {
	curNames, refNames := listNames(cur), listNames(ref)
	part := reconcile(curNames, refNames, func(s string) string { return s })

	curOrder := make(map[string]int, len(curNames))
	for i, n := range curNames {
		curOrder[n] = i
	}
	refOrder := make(map[string]int, len(refNames))
	for i, n := range refNames {
		refOrder[n] = i
	}

	rows := make([]schema.ListDiff, 0, len(part.Matched)+len(part.Added)+len(part.Removed))
	for _, p := range part.Matched {
		rows = append(rows, schema.ListDiff{
			Name:   p.Current,
			Order:  meanOrder(curOrder[p.Current], refOrder[p.Reference]),
			Status: schema.UnchangedStatus,
		})
	}
	for _, n := range part.Added {
		rows = append(rows, schema.ListDiff{Name: n, Order: float64(curOrder[n]), Status: schema.AddedStatus})
	}
	for _, n := range part.Removed {
		rows = append(rows, schema.ListDiff{Name: n, Order: float64(refOrder[n]), Status: schema.RemovedStatus})
	}

	sortRows(rows, func(r schema.ListDiff) (float64, string) { return r.Order, r.Name })
	return rows
}

func classifyChoices(cur, ref []schema.ChoiceRecord, lists []schema.ListDiff) []schema.ChoiceDiff {
	part := reconcile(cur, ref, schema.ChoiceRecord.Key)

	listStatus := make(map[string]schema.Status, len(lists))
	for _, l := range lists {
		listStatus[l.Name] = l.Status
	}

	rows := make([]schema.ChoiceDiff, 0, len(part.Matched)+len(part.Added)+len(part.Removed))
	for _, p := range part.Matched {
		tier, dist := labelChange(p.Current.Label, p.Reference.Label)
		status := schema.UnchangedStatus
		if tier != schema.LabelUnchanged {
			status = schema.ModifiedStatus
		}
		rows = append(rows, schema.ChoiceDiff{
			ListName:       p.Current.ListName,
			Name:           p.Current.Name,
			CurrentLabel:   p.Current.Label,
			ReferenceLabel: p.Reference.Label,
			Order:          meanOrder(p.Current.Order, p.Reference.Order),
			Status:         status,
			LabelTier:      tier,
			LabelDistance:  dist,
		})
	}
	for _, c := range part.Added {
		rows = append(rows, schema.ChoiceDiff{
			ListName:     c.ListName,
			Name:         c.Name,
			CurrentLabel: c.Label,
			Order:        float64(c.Order),
			Status:       schema.AddedStatus,
			// A choice of a brand new list is flagged apart from a new
			// item in a list that already existed.
			ListAdded: listStatus[c.ListName] == schema.AddedStatus,
		})
	}
	for _, c := range part.Removed {
		rows = append(rows, schema.ChoiceDiff{
			ListName:       c.ListName,
			Name:           c.Name,
			ReferenceLabel: c.Label,
			Order:          float64(c.Order),
			Status:         schema.RemovedStatus,
			ListRemoved:    listStatus[c.ListName] == schema.RemovedStatus,
		})
	}

	sortRows(rows, func(r schema.ChoiceDiff) (float64, string) { return r.Order, r.ListName + "/" + r.Name })
	return rows
}

func classifyQuestions(cur, ref []schema.QuestionRecord, matcher *FuzzyMatcher) []schema.QuestionDiff {
	part := reconcile(cur, ref, func(q schema.QuestionRecord) string { return q.Name })

	rows := make([]schema.QuestionDiff, 0, len(part.Matched)+len(part.Added)+len(part.Removed))
	for _, p := range part.Matched {
		c, r := p.Current, p.Reference
		tier, dist := labelChange(c.Label, r.Label)
		relevantChanged, _ := textChange(c.Relevant, r.Relevant)
		calcChanged, _ := textChange(c.Calculation, r.Calculation)
		filterChanged, _ := textChange(c.ChoiceFilter, r.ChoiceFilter)

		ct, rt := c.Type, r.Type
		row := schema.QuestionDiff{
			Name:                c.Name,
			CurrentType:         &ct,
			ReferenceType:       &rt,
			CurrentLabel:        c.Label,
			ReferenceLabel:      r.Label,
			Order:               meanOrder(c.Order, r.Order),
			Status:              schema.UnchangedStatus,
			LabelTier:           tier,
			LabelDistance:       dist,
			TypeChanged:         c.Type != r.Type,
			RelevantChanged:     relevantChanged,
			CalculationChanged:  calcChanged,
			RequiredChanged:     exactChange(c.Required, r.Required),
			ChoiceFilterChanged: filterChanged,
			GroupChanged:        exactChange(c.GroupName, r.GroupName),
		}
		if tier != schema.LabelUnchanged || row.TypeChanged || row.RelevantChanged ||
			row.CalculationChanged || row.RequiredChanged || row.ChoiceFilterChanged ||
			row.GroupChanged {
			row.Status = schema.ModifiedStatus
		}
		rows = append(rows, row)
	}
	for _, q := range part.Added {
		qt := q.Type
		rows = append(rows, schema.QuestionDiff{
			Name:         q.Name,
			CurrentType:  &qt,
			CurrentLabel: q.Label,
			Order:        float64(q.Order),
			Status:       schema.AddedStatus,
			Closest:      matcher.Closest(q.Label, ref),
		})
	}
	for _, q := range part.Removed {
		qt := q.Type
		rows = append(rows, schema.QuestionDiff{
			Name:           q.Name,
			ReferenceType:  &qt,
			ReferenceLabel: q.Label,
			Order:          float64(q.Order),
			Status:         schema.RemovedStatus,
			Closest:        matcher.Closest(q.Label, cur),
		})
	}

	sortRows(rows, func(r schema.QuestionDiff) (float64, string) { return r.Order, r.Name })
	return rows
}

// sortRows orders diff rows by merged document position, names breaking
// ties for determinism.
func sortRows[T any](rows []T, key func(T) (float64, string)) {
	sort.SliceStable(rows, func(i, j int) bool {
		oi, ni := key(rows[i])
		oj, nj := key(rows[j])
		if oi != oj {
			return oi < oj
		}
		return ni < nj
	})
}
