package unist_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/admonish/pkg/unist"
)

// tnode is a minimal tree used to exercise the engine without any
// markdown vocabulary.
type tnode struct {
	kind     string
	name     string
	children []*tnode
}

func (n *tnode) NodeType() string { return n.kind }
func (n *tnode) ChildNodes() []*tnode { return n.children }
func (n *tnode) Property(key string) (any, bool) {
	if key == "name" {
		return n.name, true
	}
	return nil, false
}

func leaf(kind, name string) *tnode { return &tnode{kind: kind, name: name} }

func branch(kind, name string, children ...*tnode) *tnode {
	return &tnode{kind: kind, name: name, children: children}
}

// sample builds:
//
//	r
//	  a
//	    a1
//	    a2
//	  b
//	  c
//	    c1
func sample() *tnode {
	return branch("root", "r",
		branch("box", "a", leaf("item", "a1"), leaf("item", "a2")),
		leaf("item", "b"),
		branch("box", "c", leaf("item", "c1")),
	)
}

func collect(t *testing.T, root *tnode, test any, reverse bool, act func(n *tnode, index int, parent *tnode) unist.Action) []string {
	t.Helper()

	var names []string
	err := unist.Visit(root, test, func(n *tnode, index int, parent *tnode) unist.Action {
		names = append(names, n.name)
		if act != nil {
			return act(n, index, parent)
		}
		return unist.Continue
	}, reverse)
	require.NoError(t, err)

	return names
}

func TestVisit_Preorder(t *testing.T) {
	t.Parallel()

	got := collect(t, sample(), nil, false, nil)
	assert.Equal(t, []string{"r", "a", "a1", "a2", "b", "c", "c1"}, got)
}

func TestVisit_Reverse(t *testing.T) {
	t.Parallel()

	got := collect(t, sample(), nil, true, nil)
	assert.Equal(t, []string{"r", "c", "c1", "b", "a", "a2", "a1"}, got)
}

func TestVisit_IndexAndParent(t *testing.T) {
	t.Parallel()

	root := sample()
	err := unist.Visit(root, nil, func(n *tnode, index int, parent *tnode) unist.Action {
		if n == root {
			assert.Equal(t, -1, index)
			assert.Nil(t, parent)
			return unist.Continue
		}
		require.NotNil(t, parent)
		assert.Same(t, n, parent.children[index])
		return unist.Continue
	}, false)
	require.NoError(t, err)
}

func TestVisitParents_AncestorsRootFirst(t *testing.T) {
	t.Parallel()

	lineages := map[string]string{}
	err := unist.VisitParents(sample(), "item", func(n *tnode, ancestors []*tnode) unist.Action {
		names := make([]string, 0, len(ancestors))
		for _, a := range ancestors {
			names = append(names, a.name)
		}
		lineages[n.name] = strings.Join(names, "/")
		return unist.Continue
	}, false)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"a1": "r/a",
		"a2": "r/a",
		"b":  "r",
		"c1": "r/c",
	}, lineages)
}

func TestVisit_TestDoesNotPruneChildren(t *testing.T) {
	t.Parallel()

	// Boxes fail the test but their items are still reached.
	got := collect(t, sample(), "item", false, nil)
	assert.Equal(t, []string{"a1", "a2", "b", "c1"}, got)
}

func TestVisit_Skip(t *testing.T) {
	t.Parallel()

	got := collect(t, sample(), nil, false, func(n *tnode, _ int, _ *tnode) unist.Action {
		if n.name == "a" {
			return unist.Skip
		}
		return unist.Continue
	})
	assert.Equal(t, []string{"r", "a", "b", "c", "c1"}, got)
}

func TestVisit_Exit(t *testing.T) {
	t.Parallel()

	got := collect(t, sample(), nil, false, func(n *tnode, _ int, _ *tnode) unist.Action {
		if n.name == "a1" {
			return unist.Exit
		}
		return unist.Continue
	})
	assert.Equal(t, []string{"r", "a", "a1"}, got)
}

func TestVisit_ZeroActionContinues(t *testing.T) {
	t.Parallel()

	got := collect(t, sample(), nil, false, func(*tnode, int, *tnode) unist.Action {
		return unist.Action{}
	})
	assert.Len(t, got, 7)
}

func TestVisit_ResumeIndexAfterRemoval(t *testing.T) {
	t.Parallel()

	root := branch("root", "r", leaf("x", "drop1"), leaf("x", "keep"), leaf("x", "drop2"))

	got := collect(t, root, nil, false, func(n *tnode, index int, parent *tnode) unist.Action {
		if strings.HasPrefix(n.name, "drop") {
			parent.children = append(parent.children[:index], parent.children[index+1:]...)
			return unist.Resume(index)
		}
		return unist.Continue
	})

	assert.Equal(t, []string{"r", "drop1", "keep", "drop2"}, got)
	require.Len(t, root.children, 1)
	assert.Equal(t, "keep", root.children[0].name)
}

func TestVisit_SkipWithIndex(t *testing.T) {
	t.Parallel()

	// Jumping back to 0 once re-visits the first sibling without descending into a.
	jumped := false
	got := collect(t, sample(), nil, false, func(n *tnode, _ int, _ *tnode) unist.Action {
		if n.name == "b" && !jumped {
			jumped = true
			return unist.Skip.At(0)
		}
		if n.name == "a" && jumped {
			return unist.Skip
		}
		return unist.Continue
	})

	assert.Equal(t, []string{"r", "a", "a1", "a2", "b", "a", "b", "c", "c1"}, got)
}

func TestVisit_InsertionBeforeCursorIsSeen(t *testing.T) {
	t.Parallel()

	root := branch("root", "r", leaf("x", "first"), leaf("x", "last"))

	got := collect(t, root, nil, false, func(n *tnode, index int, parent *tnode) unist.Action {
		if n.name == "first" {
			parent.children = append(parent.children[:index+1],
				append([]*tnode{leaf("x", "inserted")}, parent.children[index+1:]...)...)
		}
		return unist.Continue
	})

	assert.Equal(t, []string{"r", "first", "inserted", "last"}, got)
}

func TestVisit_ChildInsertedAtFrontOfCurrentNode(t *testing.T) {
	t.Parallel()

	root := branch("root", "r", branch("box", "q", leaf("x", "body")))

	got := collect(t, root, nil, false, func(n *tnode, _ int, _ *tnode) unist.Action {
		if n.name == "q" {
			n.children = append([]*tnode{leaf("x", "title")}, n.children...)
		}
		return unist.Continue
	})

	assert.Equal(t, []string{"r", "q", "title", "body"}, got)
}

func TestVisit_ReverseRemovalKeepsPendingIndices(t *testing.T) {
	t.Parallel()

	root := branch("root", "r", leaf("x", "1"), leaf("y", "2"), leaf("x", "3"), leaf("y", "4"))

	got := collect(t, root, "y", true, func(_ *tnode, index int, parent *tnode) unist.Action {
		parent.children = append(parent.children[:index], parent.children[index+1:]...)
		return unist.Continue
	})

	assert.Equal(t, []string{"4", "2"}, got)
	require.Len(t, root.children, 2)
	assert.Equal(t, "1", root.children[0].name)
	assert.Equal(t, "3", root.children[1].name)
}

func TestVisit_InvalidTestFailsBeforeTraversal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		test any
	}{
		{"int", 42},
		{"struct", struct{}{}},
		{"nested in list", []any{"item", 3.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			called := false
			err := unist.Visit(sample(), tc.test, func(*tnode, int, *tnode) unist.Action {
				called = true
				return unist.Continue
			}, false)

			require.ErrorIs(t, err, unist.ErrInvalidTest)
			assert.False(t, called)

			err = unist.VisitParents(sample(), tc.test, func(*tnode, []*tnode) unist.Action {
				called = true
				return unist.Continue
			}, false)
			require.ErrorIs(t, err, unist.ErrInvalidTest)
			assert.False(t, called)
		})
	}
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "continue", unist.Continue.String())
	assert.Equal(t, "skip", unist.Skip.String())
	assert.Equal(t, "exit", unist.Exit.String())
	assert.Equal(t, "continue@3", unist.Resume(3).String())
	assert.Equal(t, "skip@1", unist.Skip.At(1).String())
	assert.Equal(t, "exit", unist.Exit.At(2).String())

	idx, ok := unist.Resume(4).Index()
	assert.True(t, ok)
	assert.Equal(t, 4, idx)

	_, ok = unist.Skip.Index()
	assert.False(t, ok)
}
