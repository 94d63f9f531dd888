package unist

import "strconv"

// op is the traversal instruction carried by an Action.
type op uint8

const (
	opContinue op = iota
	opSkip
	opExit
)

// Action is returned by a visitor to steer the traversal.
// The zero value is Continue, so a visitor that has nothing to say
// can simply return Action{}.
type Action struct {
	op    op
	index int
	seek  bool
}

// Traversal actions.
//
//nolint:gochecknoglobals // Immutable sentinel values.
var (
	// Continue descends into the node's children and then moves on to the next sibling.
	Continue = Action{}

	// Skip does not descend into the node's children.
	Skip = Action{op: opSkip}

	// Exit stops the whole traversal. No further nodes are visited.
	Exit = Action{op: opExit}
)

// Resume continues the traversal and moves the sibling cursor of the
// current level to index. Use it after inserting or removing siblings
// so the next visited sibling is the intended one.
func Resume(index int) Action {
	return Continue.At(index)
}

// At returns a copy of a that also moves the sibling cursor to index.
// Exit ignores the index.
func (a Action) At(index int) Action {
	a.index = index
	a.seek = true
	return a
}

// IsSkip reports whether the action skips the node's children.
func (a Action) IsSkip() bool {
	return a.op == opSkip
}

// IsExit reports whether the action stops the traversal.
func (a Action) IsExit() bool {
	return a.op == opExit
}

// Index returns the resume index and whether one was set.
func (a Action) Index() (int, bool) {
	return a.index, a.seek
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	var name string
	switch a.op {
	case opSkip:
		name = "skip"
	case opExit:
		name = "exit"
	default:
		name = "continue"
	}
	if a.seek && a.op != opExit {
		return name + "@" + strconv.Itoa(a.index)
	}
	return name
}
