package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/admonish/pkg/mdast"
)

func values(nodes []*mdast.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Value)
	}
	return out
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewParagraph()
	mdast.AppendChild(parent, mdast.NewText("a"))
	mdast.AppendChild(parent, mdast.NewText("b"))
	mdast.AppendChild(parent, nil)
	mdast.AppendChild(nil, mdast.NewText("c"))

	assert.Equal(t, []string{"a", "b"}, values(parent.Children))
}

func TestPrependChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewParagraph(mdast.NewText("b"))
	mdast.PrependChild(parent, mdast.NewText("a"))

	assert.Equal(t, []string{"a", "b"}, values(parent.Children))
}

func TestInsertChild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"front", 0, []string{"x", "a", "b", "c"}},
		{"middle", 1, []string{"a", "x", "b", "c"}},
		{"end", 3, []string{"a", "b", "c", "x"}},
		{"past end", 10, []string{"a", "b", "c", "x"}},
		{"negative", -2, []string{"x", "a", "b", "c"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			parent := mdast.NewParagraph(mdast.NewText("a"), mdast.NewText("b"), mdast.NewText("c"))
			mdast.InsertChild(parent, tc.index, mdast.NewText("x"))
			assert.Equal(t, tc.want, values(parent.Children))
		})
	}
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	a, b, c := mdast.NewText("a"), mdast.NewText("b"), mdast.NewText("c")
	parent := mdast.NewParagraph(a, b, c)

	assert.Same(t, b, mdast.RemoveChild(parent, 1))
	assert.Equal(t, []string{"a", "c"}, values(parent.Children))

	assert.Nil(t, mdast.RemoveChild(parent, 5))
	assert.Nil(t, mdast.RemoveChild(parent, -1))
	assert.Nil(t, mdast.RemoveChild(nil, 0))

	assert.Same(t, a, mdast.RemoveChild(parent, 0))
	assert.Same(t, c, mdast.RemoveChild(parent, 0))
	assert.Empty(t, parent.Children)
}

func TestReplaceChildAndIndexOf(t *testing.T) {
	t.Parallel()

	a, b := mdast.NewText("a"), mdast.NewText("b")
	parent := mdast.NewParagraph(a)

	assert.Equal(t, 0, mdast.IndexOf(parent, a))
	assert.Equal(t, -1, mdast.IndexOf(parent, b))

	assert.Same(t, a, mdast.ReplaceChild(parent, 0, b))
	assert.Equal(t, 0, mdast.IndexOf(parent, b))
	assert.Nil(t, mdast.ReplaceChild(parent, 1, a))
}

func TestClone(t *testing.T) {
	t.Parallel()

	checked := true
	item := mdast.NewNode(mdast.KindListItem)
	item.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{Checked: &checked})
	item.EnsureData().HProperties = map[string]any{mdast.PropClassName: "task"}
	mdast.AppendChild(item, mdast.NewParagraph(mdast.NewText("done")))
	root := mdast.NewRoot(item)

	clone := mdast.Clone(root)
	require.NotNil(t, clone)
	require.Len(t, clone.Children, 1)

	cloneItem := clone.Children[0]
	assert.NotSame(t, item, cloneItem)
	assert.Equal(t, "done", mdast.TextContent(cloneItem))

	*cloneItem.Block.List.Checked = false
	cloneItem.Data.HProperties[mdast.PropClassName] = "changed"
	cloneItem.Children[0].Children[0].Value = "edited"

	assert.True(t, *item.Block.List.Checked)
	assert.Equal(t, "task", item.ClassName())
	assert.Equal(t, "done", mdast.TextContent(item))

	assert.Nil(t, mdast.Clone(nil))
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	emphasis := mdast.NewNode(mdast.KindEmphasis)
	mdast.AppendChild(emphasis, mdast.NewText("world"))
	para := mdast.NewParagraph(
		mdast.NewText("hello "),
		emphasis,
		mdast.NewBreak(),
		mdast.NewHTML("<b>"),
		mdast.NewText("bye"),
	)

	assert.Equal(t, "hello world\nbye", mdast.TextContent(para))
	assert.Empty(t, mdast.TextContent(nil))
}
