// Package unist provides a generic depth-first visitor for labeled trees.
//
// The package knows nothing about any particular node vocabulary. A tree is
// any type that reports its own type tag and its children; see Node.
// Visitors may mutate the children of the node they are visiting (and of its
// descendants) while the traversal is running: the walker re-reads the child
// count and the child at the cursor before every step instead of iterating
// over a snapshot.
package unist

// Node is the constraint satisfied by traversable tree nodes.
// ChildNodes must return the live children slice (nil for leaves).
type Node[N any] interface {
	NodeType() string
	ChildNodes() []N
}

// ParentsVisitor is called for each matching node with its ancestors,
// ordered root first. The ancestors slice must not be modified or retained.
type ParentsVisitor[N any] func(node N, ancestors []N) Action

// Visitor is called for each matching node with its position in its parent.
// For the root, index is -1 and parent is the zero value.
type Visitor[N any] func(node N, index int, parent N) Action

// VisitParents walks root and its descendants in preorder, calling visitor
// for every node accepted by test. Children of a node are traversed whether
// or not the node itself matched. When reverse is true, children are visited
// last to first (a node is still visited before its children).
//
// An invalid test is reported before any node is visited.
func VisitParents[N Node[N]](root N, test any, visitor ParentsVisitor[N], reverse bool) error {
	check, err := Convert[N](test)
	if err != nil {
		return err
	}

	w := &walker[N]{
		test:    check,
		reverse: reverse,
		visit: func(node N, _ int, ancestors []N) Action {
			return visitor(node, ancestors)
		},
	}
	w.walk(root, -1, nil)

	return nil
}

// Visit is like VisitParents but hands the visitor the node's index and
// immediate parent instead of the full ancestor chain.
func Visit[N Node[N]](root N, test any, visitor Visitor[N], reverse bool) error {
	check, err := Convert[N](test)
	if err != nil {
		return err
	}

	w := &walker[N]{
		test:    check,
		reverse: reverse,
		visit: func(node N, index int, ancestors []N) Action {
			var parent N
			if len(ancestors) > 0 {
				parent = ancestors[len(ancestors)-1]
			}
			return visitor(node, index, parent)
		},
	}
	w.walk(root, -1, nil)

	return nil
}

type walker[N Node[N]] struct {
	test    Test[N]
	visit   func(node N, index int, ancestors []N) Action
	reverse bool
}

// walk visits node and then its children. The returned action is the one
// produced for node itself; its index (if any) positions the caller's cursor.
func (w *walker[N]) walk(node N, index int, ancestors []N) Action {
	var parent N
	if len(ancestors) > 0 {
		parent = ancestors[len(ancestors)-1]
	}

	result := Continue
	if w.test(node, index, parent) {
		result = w.visit(node, index, ancestors)
		if result.IsExit() || result.IsSkip() {
			return result
		}
	}

	if len(node.ChildNodes()) == 0 {
		return result
	}

	// Full slice expression forces a copy on append so sibling subtrees
	// never share a backing array.
	lineage := append(ancestors[:len(ancestors):len(ancestors)], node)

	step := 1
	offset := 0
	if w.reverse {
		step = -1
		offset = len(node.ChildNodes()) - 1
	}

	for {
		children := node.ChildNodes()
		if offset < 0 || offset >= len(children) {
			break
		}

		sub := w.walk(children[offset], offset, lineage)
		if sub.IsExit() {
			return sub
		}

		if next, ok := sub.Index(); ok {
			offset = next
		} else {
			offset += step
		}
	}

	return result
}
