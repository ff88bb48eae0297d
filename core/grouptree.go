package core

import (
	"github.com/formlens/formlens/schema"
)

// BuildSurvey converts the ordered marker-annotated row stream into the
// group/repeat node arena plus the flattened, group-stripped question
// sequence. Each question carries the name of its innermost enclosing scope.
//
// The pass keeps a stack of open scopes rooted at an implicit root. An
// unmatched end-marker is ignored rather than treated as fatal; hand-edited
// survey definitions lose markers all the time.
func BuildSurvey(rows []schema.SurveyRow) (*schema.GroupTree, []schema.QuestionRecord) {
	tree := &schema.GroupTree{}
	stack := []int{schema.RootParent}
	var questions []schema.QuestionRecord

	for _, r := range rows {
		switch r.Type {
		case schema.BeginGroupRow, schema.BeginRepeatRow:
			kind := schema.GroupKindGroup
			if r.Type == schema.BeginRepeatRow {
				kind = schema.GroupKindRepeat
			}
			tree.Nodes = append(tree.Nodes, schema.GroupNode{
				Name:   r.Name,
				Kind:   kind,
				Parent: stack[len(stack)-1],
			})
			stack = append(stack, len(tree.Nodes)-1)

		case schema.EndGroupRow, schema.EndRepeatRow:
			// Pop only above the implicit root.
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		default:
			var groupName *string
			if top := stack[len(stack)-1]; top != schema.RootParent {
				name := tree.Nodes[top].Name
				groupName = &name
			}
			questions = append(questions, schema.QuestionRecord{
				Name:         r.Name,
				Type:         r.Kind,
				Order:        len(questions),
				Label:        r.Label,
				GroupName:    groupName,
				Relevant:     r.Relevant,
				Calculation:  r.Calculation,
				Required:     r.Required,
				ChoiceFilter: r.ChoiceFilter,
			})
		}
	}

	assignTreeMetadata(tree)
	return tree, questions
}

// assignTreeMetadata walks the arena once in pre-order and assigns dense
// ids, depth, sibling order, and parent names. A parent's id always
// precedes its descendants'.
func assignTreeMetadata(t *schema.GroupTree) {
	next := 0
	var walk func(parent, depth int)
	walk = func(parent, depth int) {
		order := 0
		for i := range t.Nodes {
			if t.Nodes[i].Parent != parent {
				continue
			}
			n := &t.Nodes[i]
			n.ID = next
			next++
			n.Depth = depth
			n.Order = order
			order++
			if parent != schema.RootParent {
				name := t.Nodes[parent].Name
				n.ParentName = &name
			}
			walk(i, depth+1)
		}
	}
	walk(schema.RootParent, 0)
}
