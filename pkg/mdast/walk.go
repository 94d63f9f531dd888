package mdast

import "github.com/yaklabco/admonish/pkg/unist"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the AST starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	var walkErr error
	err := unist.Visit(root, nil, func(node *Node, _ int, _ *Node) unist.Action {
		if node == nil {
			return unist.Skip
		}
		if err := walkFunc(node); err != nil {
			walkErr = err
			return unist.Exit
		}
		return unist.Continue
	}, false)
	if err != nil {
		return err
	}

	return walkErr
}

// Visit runs the generic visitor over a Markdown tree.
// See unist.Visit for the meaning of test and the returned actions.
func Visit(root *Node, test any, visitor unist.Visitor[*Node]) error {
	if root == nil {
		return nil
	}
	return unist.Visit(root, test, visitor, false)
}

// VisitReverse is Visit with children traversed last to first.
func VisitReverse(root *Node, test any, visitor unist.Visitor[*Node]) error {
	if root == nil {
		return nil
	}
	return unist.Visit(root, test, visitor, true)
}

// VisitParents runs the ancestor-aware visitor over a Markdown tree.
func VisitParents(root *Node, test any, visitor unist.ParentsVisitor[*Node]) error {
	if root == nil {
		return nil
	}
	return unist.VisitParents(root, test, visitor, false)
}

// WalkBlocks walks only block-level nodes.
func WalkBlocks(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if n.IsBlock() {
			return fn(n)
		}
		return nil
	})
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	if root == nil {
		return nil
	}

	var found *Node

	//nolint:errcheck // a func test never fails conversion
	unist.Visit(root, func(n *Node) bool { return predicate(n) },
		func(node *Node, _ int, _ *Node) unist.Action {
			found = node
			return unist.Exit
		}, false)

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind Kind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// Ancestors returns the chain of nodes from root down to, but excluding,
// target. It returns nil when target is not in the tree.
func Ancestors(root, target *Node) []*Node {
	if root == nil || target == nil {
		return nil
	}

	var chain []*Node

	//nolint:errcheck // a func test never fails conversion
	unist.VisitParents(root, func(n *Node) bool { return n == target },
		func(_ *Node, ancestors []*Node) unist.Action {
			chain = append([]*Node{}, ancestors...)
			return unist.Exit
		}, false)

	return chain
}
