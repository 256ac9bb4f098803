package domain

// NodeKind identifies the role of a ViewNode.
type NodeKind string

// View node kinds.
const (
	NodeGrid   NodeKind = "grid"
	NodeHeader NodeKind = "header"
	NodeRow    NodeKind = "row"
	NodeCell   NodeKind = "cell"
	NodeInput  NodeKind = "input"
	NodeButton NodeKind = "button"
)

// Action is the operation a button node triggers.
type Action string

// Button actions.
const (
	ActionNone       Action = ""
	ActionAddRow     Action = "add_row"
	ActionDeleteRow  Action = "delete_row"
	ActionAddCell    Action = "add_cell"
	ActionDeleteCell Action = "delete_cell"
)

// ViewNode is a structured, renderer-agnostic description of part of the grid.
// Every node carries the row (and cell) it belongs to, so actions bound to it
// always target that row rather than whichever row was created last.
type ViewNode struct {
	Kind  NodeKind
	ID    string
	Label string

	// Value is the current text of an input node.
	Value string

	// Span is the column span of a header node.
	Span int

	// Field is set on input nodes.
	Field FieldKind

	// Action is set on button nodes.
	Action Action

	Row  RowID
	Cell CellID

	Children []ViewNode
}

// Walk visits n and all of its descendants depth-first.
// Returning false from fn stops the walk.
func (n ViewNode) Walk(fn func(ViewNode) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant (or n itself) with the given ID.
func (n ViewNode) Find(id string) (ViewNode, bool) {
	var found ViewNode
	ok := false
	n.Walk(func(v ViewNode) bool {
		if v.ID == id {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}
