package admonition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/admonish/pkg/admonition"
	"github.com/yaklabco/admonish/pkg/mdast"
)

// quote builds a blockquote whose first paragraph holds the given inlines,
// followed by any extra blocks.
func quote(inlines []*mdast.Node, blocks ...*mdast.Node) *mdast.Node {
	bq := mdast.NewBlockquote(mdast.NewParagraph(inlines...))
	for _, b := range blocks {
		mdast.AppendChild(bq, b)
	}
	return bq
}

func text(value string) []*mdast.Node {
	return []*mdast.Node{mdast.NewText(value)}
}

func requireTitle(t *testing.T, bq *mdast.Node, want string) {
	t.Helper()

	require.True(t, bq.HasChildren())
	title := bq.Children[0]
	require.Equal(t, mdast.KindParagraph, title.Kind)
	require.Len(t, title.Children, 2)
	assert.Equal(t, mdast.KindHTML, title.Children[0].Kind)
	assert.Contains(t, title.Children[0].Value, "<span class='icon'><svg")
	assert.Equal(t, mdast.KindText, title.Children[1].Kind)
	assert.Equal(t, want, title.Children[1].Value)
	assert.Equal(t, admonition.DefaultTitleCSSClass, title.ClassName())
}

func TestTransform_NoteWithBody(t *testing.T) {
	t.Parallel()

	bq := quote(text("[!NOTE]\ntest"))
	root := mdast.NewRoot(mdast.NewHeading(1, mdast.NewText("Admonitions")), bq)

	n := admonition.Transform(root, admonition.DefaultConfig())
	assert.Equal(t, 1, n)

	requireTitle(t, bq, "Note")
	assert.Equal(t, admonition.ContainerTag, bq.HName())
	assert.Equal(t, "markdown-alert markdown-alert-type-note", bq.ClassName())

	require.Len(t, bq.Children, 2)
	body := bq.Children[1]
	assert.Equal(t, mdast.KindParagraph, body.Kind)
	assert.Equal(t, "test", mdast.TextContent(body))

	marker, ok := admonition.MarkerOf(bq)
	assert.True(t, ok)
	assert.Equal(t, "[!NOTE]", marker)
}

func TestTransform_SingleLineIsRejected(t *testing.T) {
	t.Parallel()

	bq := quote(text("[!NOTE] test"))
	before := mdast.Clone(bq)

	assert.Equal(t, 0, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
	assert.Equal(t, before, bq)
	assert.Empty(t, bq.HName())
	assert.Empty(t, bq.ClassName())
}

func TestTransform_TrailingWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		title string
	}{
		{"spaces and tab", "[!NOTE]  \t\nbody", "Note"},
		{"two spaces", "[!WARNING]  \nCritical content.", "Warning"},
		{"all gfm whitespace", "[!TIP] \r\t\v\f\nbody", "Tip"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bq := quote(text(tc.value))
			assert.Equal(t, 1, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
			requireTitle(t, bq, tc.title)
		})
	}
}

func TestTransform_ExactMarkerMatch(t *testing.T) {
	t.Parallel()

	for _, title := range []string{
		"[!note]",
		"[!Note]",
		"[!NOTE].",
		"[!NOTE]:",
		" [!NOTE]",
		"[!NOTES]",
		"[NOTE]",
		"!NOTE",
		"[!UNKNOWN]",
		"",
	} {
		t.Run(title, func(t *testing.T) {
			t.Parallel()

			bq := quote(text(title + "\nbody"))
			before := mdast.Clone(bq)

			assert.Equal(t, 0, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
			assert.Equal(t, before, bq)
		})
	}
}

func TestTransform_LegacyBoldTitleIsRejected(t *testing.T) {
	t.Parallel()

	strong := mdast.NewNode(mdast.KindStrong)
	mdast.AppendChild(strong, mdast.NewText("Note"))
	bq := quote([]*mdast.Node{strong, mdast.NewText("\ntest")})
	before := mdast.Clone(bq)

	assert.Equal(t, 0, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
	assert.Equal(t, before, bq)
}

func TestTransform_HardBreakAfterMarker(t *testing.T) {
	t.Parallel()

	bq := quote([]*mdast.Node{
		mdast.NewText("[!WARNING]"),
		mdast.NewBreak(),
		mdast.NewText("Critical content."),
	})

	assert.Equal(t, 1, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
	requireTitle(t, bq, "Warning")

	require.Len(t, bq.Children, 2)
	body := bq.Children[1]
	require.Len(t, body.Children, 1)
	assert.Equal(t, "Critical content.", body.Children[0].Value)
}

func TestTransform_OtherInlineAfterMarkerIsRejected(t *testing.T) {
	t.Parallel()

	emphasis := mdast.NewNode(mdast.KindEmphasis)
	mdast.AppendChild(emphasis, mdast.NewText("x"))
	bq := quote([]*mdast.Node{mdast.NewText("[!NOTE]"), emphasis})
	before := mdast.Clone(bq)

	assert.Equal(t, 0, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
	assert.Equal(t, before, bq)
}

func TestTransform_MarkerAloneBeforeList(t *testing.T) {
	t.Parallel()

	list := mdast.NewNode(mdast.KindList)
	for _, item := range []string{"Here you go", "Here you go again"} {
		li := mdast.NewNode(mdast.KindListItem)
		mdast.AppendChild(li, mdast.NewParagraph(mdast.NewText(item)))
		mdast.AppendChild(list, li)
	}
	bq := quote(text("[!NOTE]"), list)

	assert.Equal(t, 1, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
	requireTitle(t, bq, "Note")

	// The emptied marker paragraph is dropped; the list follows the title.
	require.Len(t, bq.Children, 2)
	assert.Same(t, list, bq.Children[1])
}

func TestTransform_BodyShiftedNotChanged(t *testing.T) {
	t.Parallel()

	second := mdast.NewParagraph(mdast.NewText("second"))
	code := mdast.NewNode(mdast.KindCode)
	code.Value = "x := 1"
	bq := quote(text("[!IMPORTANT]\nfirst\nline"), second, code)

	assert.Equal(t, 1, admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig()))
	requireTitle(t, bq, "Important")

	require.Len(t, bq.Children, 4)
	assert.Equal(t, "first\nline", bq.Children[1].Children[0].Value)
	assert.Same(t, second, bq.Children[2])
	assert.Same(t, code, bq.Children[3])
}

func TestTransform_NestedIsExcludedByDefault(t *testing.T) {
	t.Parallel()

	t.Run("nested matching", func(t *testing.T) {
		t.Parallel()

		inner := quote(text("[!WARNING]\ninner"))
		outer := quote(text("[!NOTE]\nouter"), inner)

		assert.Equal(t, 1, admonition.Transform(mdast.NewRoot(outer), admonition.DefaultConfig()))
		assert.True(t, admonition.IsAdmonition(outer))
		assert.False(t, admonition.IsAdmonition(inner))
		assert.Equal(t, "[!WARNING]\ninner", inner.Children[0].Children[0].Value)
	})

	t.Run("nested non-matching", func(t *testing.T) {
		t.Parallel()

		inner := quote(text("just a quote\nreally"))
		before := mdast.Clone(inner)
		outer := quote(text("[!NOTE]\nouter"), inner)

		assert.Equal(t, 1, admonition.Transform(mdast.NewRoot(outer), admonition.DefaultConfig()))
		assert.Equal(t, before, inner)
	})

	t.Run("marker quote inside plain quote", func(t *testing.T) {
		t.Parallel()

		inner := quote(text("[!TIP]\ninner"))
		outer := quote(text("plain"), inner)

		assert.Equal(t, 0, admonition.Transform(mdast.NewRoot(outer), admonition.DefaultConfig()))
		assert.False(t, admonition.IsAdmonition(inner))
	})

	t.Run("quote inside list inside quote", func(t *testing.T) {
		t.Parallel()

		// Only the immediate parent is checked.
		inner := quote(text("[!TIP]\ninner"))
		item := mdast.NewNode(mdast.KindListItem)
		mdast.AppendChild(item, inner)
		list := mdast.NewNode(mdast.KindList)
		mdast.AppendChild(list, item)
		outer := quote(text("plain"), list)

		assert.Equal(t, 1, admonition.Transform(mdast.NewRoot(outer), admonition.DefaultConfig()))
		assert.True(t, admonition.IsAdmonition(inner))
	})
}

func TestTransform_ThreeLevelsWhenNestingAllowed(t *testing.T) {
	t.Parallel()

	innermost := quote(text("[!WARNING]\ntest"))
	middle := quote(text("[!NOTE]\ntest"), innermost)
	outer := quote(text("[!NOTE]\ntest"), middle)
	root := mdast.NewRoot(mdast.NewHeading(1, mdast.NewText("Admonitions")), outer)

	cfg := admonition.DefaultConfig()
	cfg.AllowNested = true

	assert.Equal(t, 3, admonition.Transform(root, cfg))
	requireTitle(t, outer, "Note")
	requireTitle(t, middle, "Note")
	requireTitle(t, innermost, "Warning")

	assert.Same(t, middle, outer.Children[2])
	assert.Same(t, innermost, middle.Children[2])
	assert.Equal(t, 3, admonition.Count(root))
}

func TestTransform_IdempotentOnNonMatches(t *testing.T) {
	t.Parallel()

	root := mdast.NewRoot(
		mdast.NewHeading(2, mdast.NewText("Heading")),
		quote(text("plain quote\nwith two lines")),
		quote(text("[!NOTE] inline")),
		mdast.NewBlockquote(),
		mdast.NewBlockquote(mdast.NewHeading(3, mdast.NewText("[!NOTE]"))),
		quote([]*mdast.Node{mdast.NewHTML("<b>"), mdast.NewText("[!NOTE]\nx")}),
	)
	original := mdast.Clone(root)

	cfg := admonition.DefaultConfig()
	assert.Equal(t, 0, admonition.Transform(root, cfg))
	assert.Equal(t, original, root)
	assert.Equal(t, 0, admonition.Transform(root, cfg))
	assert.Equal(t, original, root)
}

func TestTransform_SecondPassIsNoop(t *testing.T) {
	t.Parallel()

	root := mdast.NewRoot(quote(text("[!CAUTION]\nDanger")))
	cfg := admonition.DefaultConfig()

	require.Equal(t, 1, admonition.Transform(root, cfg))
	once := mdast.Clone(root)

	assert.Equal(t, 0, admonition.Transform(root, cfg))
	assert.Equal(t, once, root)
}

func TestTransform_FiveGitHubTypes(t *testing.T) {
	t.Parallel()

	want := []string{"Note", "Tip", "Important", "Warning", "Caution"}
	root := mdast.NewRoot()
	for _, marker := range []string{"[!NOTE]", "[!TIP]", "[!IMPORTANT]", "[!WARNING]", "[!CAUTION]"} {
		mdast.AppendChild(root, quote(text(marker+"\nbody")))
	}

	assert.Equal(t, 5, admonition.Transform(root, admonition.DefaultConfig()))
	for i, bq := range root.Children {
		requireTitle(t, bq, want[i])
	}
}

func TestTransform_PreservesExistingData(t *testing.T) {
	t.Parallel()

	bq := quote(text("[!NOTE]\nbody"))
	bq.EnsureData().Ext = map[string]any{"id": "intro"}
	bq.Data.HProperties = map[string]any{mdast.PropClassName: "old"}

	admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig())

	assert.Equal(t, "intro", bq.Data.Ext["id"])
	assert.Equal(t, "markdown-alert markdown-alert-type-note", bq.ClassName())
}

func TestTransform_CustomConfigsCoexist(t *testing.T) {
	t.Parallel()

	custom := admonition.Config{
		BlockCSSClass: "callout",
		TitleCSSClass: "callout-title",
		Types: map[string]admonition.AlertType{
			"[!NOTE]": {Title: "Hinweis", CSSClass: "callout-note"},
		},
	}

	a := quote(text("[!NOTE]\nbody"))
	b := quote(text("[!NOTE]\nbody"))

	admonition.Transform(mdast.NewRoot(a), custom)
	admonition.Transform(mdast.NewRoot(b), admonition.DefaultConfig())

	assert.Equal(t, "callout callout-note", a.ClassName())
	assert.Equal(t, "Hinweis", a.Children[0].Children[1].Value)
	assert.Equal(t, "callout-title", a.Children[0].ClassName())
	assert.Equal(t, "<span class='icon'></span>", a.Children[0].Children[0].Value)

	assert.Equal(t, "markdown-alert markdown-alert-type-note", b.ClassName())
}

func TestNew_CopiesConfig(t *testing.T) {
	t.Parallel()

	cfg := admonition.DefaultConfig()
	rec := admonition.New(cfg)
	delete(cfg.Types, "[!NOTE]")

	bq := quote(text("[!NOTE]\nbody"))
	assert.True(t, rec.Apply(bq, nil))
	assert.Contains(t, rec.Config().Types, "[!NOTE]")
}

func TestApply_IgnoresOtherKinds(t *testing.T) {
	t.Parallel()

	rec := admonition.New(admonition.DefaultConfig())
	para := mdast.NewParagraph(mdast.NewText("[!NOTE]\nbody"))

	assert.False(t, rec.Apply(para, nil))
	assert.False(t, rec.Apply(nil, nil))
	assert.Nil(t, para.Data)
}

func TestTransform_NilRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, admonition.Transform(nil, admonition.DefaultConfig()))
	assert.Equal(t, 0, admonition.Count(nil))
}

func TestTransform_IconIsTrusted(t *testing.T) {
	t.Parallel()

	bq := quote(text("[!NOTE]\nbody"))
	admonition.Transform(mdast.NewRoot(bq), admonition.DefaultConfig())

	assert.True(t, mdast.IsTrusted(bq.Children[0].Children[0]))
	assert.False(t, mdast.IsTrusted(bq.Children[0].Children[1]))
}
