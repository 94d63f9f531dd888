package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/admonish/pkg/mdast"
	"github.com/yaklabco/admonish/pkg/unist"
)

// buildTestTree returns:
//
//	root
//	  heading
//	    text
//	  paragraph
//	    text
//	    emphasis
//	      text
func buildTestTree() *mdast.Node {
	emphasis := mdast.NewNode(mdast.KindEmphasis)
	mdast.AppendChild(emphasis, mdast.NewText("c"))

	return mdast.NewRoot(
		mdast.NewHeading(1, mdast.NewText("a")),
		mdast.NewParagraph(mdast.NewText("b"), emphasis),
	)
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []mdast.Kind
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []mdast.Kind{
		mdast.KindRoot,
		mdast.KindHeading,
		mdast.KindText,
		mdast.KindParagraph,
		mdast.KindText,
		mdast.KindEmphasis,
		mdast.KindText,
	}, visited)
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Walk(nil, func(_ *mdast.Node) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	count := 0
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.KindParagraph {
			return errStop
		}
		return nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 4, count)
}

func TestWalkBlocks(t *testing.T) {
	t.Parallel()

	var kinds []mdast.Kind
	require.NoError(t, mdast.WalkBlocks(buildTestTree(), func(n *mdast.Node) error {
		kinds = append(kinds, n.Kind)
		return nil
	}))

	assert.Equal(t, []mdast.Kind{mdast.KindRoot, mdast.KindHeading, mdast.KindParagraph}, kinds)
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	root := buildTestTree()

	texts := mdast.FindByKind(root, mdast.KindText)
	assert.Equal(t, []string{"a", "b", "c"}, values(texts))

	first := mdast.FindFirst(root, func(n *mdast.Node) bool { return n.Kind == mdast.KindText })
	require.NotNil(t, first)
	assert.Equal(t, "a", first.Value)

	assert.Nil(t, mdast.FindFirst(root, func(n *mdast.Node) bool { return n.Kind == mdast.KindImage }))
	assert.Nil(t, mdast.FindFirst(nil, func(_ *mdast.Node) bool { return true }))
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	root := buildTestTree()
	para := root.Children[1]
	emphasis := para.Children[1]
	deep := emphasis.Children[0]

	chain := mdast.Ancestors(root, deep)
	require.Len(t, chain, 3)
	assert.Same(t, root, chain[0])
	assert.Same(t, para, chain[1])
	assert.Same(t, emphasis, chain[2])

	assert.Empty(t, mdast.Ancestors(root, root))
	assert.Nil(t, mdast.Ancestors(root, mdast.NewText("stray")))
}

func TestVisit_TypeTest(t *testing.T) {
	t.Parallel()

	var seen []string
	err := mdast.Visit(buildTestTree(), "text", func(n *mdast.Node, index int, parent *mdast.Node) unist.Action {
		require.NotNil(t, parent)
		assert.Same(t, n, parent.Children[index])
		seen = append(seen, n.Value)
		return unist.Continue
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestVisitReverse(t *testing.T) {
	t.Parallel()

	var seen []string
	err := mdast.VisitReverse(buildTestTree(), mdast.KindText.String(), func(n *mdast.Node, _ int, _ *mdast.Node) unist.Action {
		seen = append(seen, n.Value)
		return unist.Continue
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, seen)
}

func TestVisit_PropertyTest(t *testing.T) {
	t.Parallel()

	var seen []string
	err := mdast.Visit(buildTestTree(), map[string]any{"type": "text", "value": "b"},
		func(n *mdast.Node, _ int, _ *mdast.Node) unist.Action {
			seen = append(seen, n.Value)
			return unist.Continue
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, seen)
}

func TestVisit_InvalidTest(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Visit(buildTestTree(), 42, func(_ *mdast.Node, _ int, _ *mdast.Node) unist.Action {
		called = true
		return unist.Continue
	})
	require.ErrorIs(t, err, unist.ErrInvalidTest)
	assert.False(t, called)
}

func TestVisitParents(t *testing.T) {
	t.Parallel()

	var depths []int
	err := mdast.VisitParents(buildTestTree(), "text", func(_ *mdast.Node, ancestors []*mdast.Node) unist.Action {
		depths = append(depths, len(ancestors))
		return unist.Continue
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 3}, depths)
}
