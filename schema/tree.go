package schema

// RootParent is the parent index of a top-level group node.
const RootParent = -1

// GroupNode is one group or repeat scope. Nodes live in a GroupTree arena
// and reference their parent by index, never by pointer, so a built tree is
// safe for concurrent reads.
type GroupNode struct {
	ID    int       `json:"id"` // dense pre-order id, stable within one snapshot
	Name  string    `json:"name"`
	Kind  GroupKind `json:"kind"`
	Depth int       `json:"depth"` // 0 for root nodes
	Order int       `json:"order"` // sibling position

	// Parent is the arena index of the enclosing node, RootParent at root.
	Parent int `json:"parent"`

	// ParentName is nil for root nodes.
	ParentName *string `json:"parent_name,omitempty"`
}

// GroupTree is a flat arena of group/repeat nodes in pre-order. A parent's
// index always precedes its descendants'.
type GroupTree struct {
	Nodes []GroupNode `json:"nodes"`
}

// Node returns the node at index i, or nil when i is RootParent or out of
// range.
func (t *GroupTree) Node(i int) *GroupNode {
	if t == nil || i < 0 || i >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[i]
}

// Find returns the first node with the given name in pre-order, or nil.
func (t *GroupTree) Find(name string) *GroupNode {
	if t == nil {
		return nil
	}
	for i := range t.Nodes {
		if t.Nodes[i].Name == name {
			return &t.Nodes[i]
		}
	}
	return nil
}

// Children returns the arena indices of the direct children of parent, in
// sibling order. Pass RootParent for the top level.
func (t *GroupTree) Children(parent int) []int {
	if t == nil {
		return nil
	}
	var out []int
	for i := range t.Nodes {
		if t.Nodes[i].Parent == parent {
			out = append(out, i)
		}
	}
	return out
}
