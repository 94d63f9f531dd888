// Package admonition turns GitHub-style alert blockquotes into titled
// admonition blocks.
//
// A blockquote whose first line is a configured marker such as [!NOTE] is
// rewritten in place: a title paragraph holding an icon and the type's
// title becomes its first child, and the blockquote is annotated so the
// renderer emits a div carrying the block and type CSS classes.
// Blockquotes that do not match are left untouched.
package admonition

import (
	"strings"

	"github.com/yaklabco/admonish/pkg/mdast"
	"github.com/yaklabco/admonish/pkg/unist"
)

// ContainerTag is the output tag requested for recognized blockquotes.
const ContainerTag = "div"

// ExtKeyType is the Data.Ext key recording the matched marker.
const ExtKeyType = "admonition"

// gfmTrailingSpace are the GFM whitespace characters trimmed from a title line.
const gfmTrailingSpace = " \t\v\f\r"

// Recognizer rewrites marker blockquotes according to a Config.
// It holds no per-tree state and is safe for concurrent use.
type Recognizer struct {
	cfg Config
}

// New creates a Recognizer. The config is copied; later changes to the
// caller's Types map have no effect.
func New(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg.Clone()}
}

// Config returns a copy of the recognizer's configuration.
func (r *Recognizer) Config() Config {
	return r.cfg.Clone()
}

// Visitor returns the visit callback. It always continues so nested
// blockquotes are still reached.
func (r *Recognizer) Visitor() unist.Visitor[*mdast.Node] {
	return func(node *mdast.Node, _ int, parent *mdast.Node) unist.Action {
		r.Apply(node, parent)
		return unist.Continue
	}
}

// Transform rewrites every marker blockquote under root and returns the
// number of admonitions created.
func (r *Recognizer) Transform(root *mdast.Node) int {
	if root == nil {
		return 0
	}

	count := 0

	//nolint:errcheck // a kind string is always a valid test
	unist.Visit(root, mdast.KindBlockquote.String(), func(node *mdast.Node, _ int, parent *mdast.Node) unist.Action {
		if r.Apply(node, parent) {
			count++
		}
		return unist.Continue
	}, false)

	return count
}

// Transform rewrites root with a recognizer built from cfg.
func Transform(root *mdast.Node, cfg Config) int {
	return New(cfg).Transform(root)
}

// Apply checks a single node and rewrites it when it is a marker
// blockquote. It reports whether the node was rewritten.
func (r *Recognizer) Apply(node, parent *mdast.Node) bool {
	if !node.Is(mdast.KindBlockquote) {
		return false
	}
	if parent.Is(mdast.KindBlockquote) && !r.cfg.AllowNested {
		return false
	}

	paragraph := node.FirstChild()
	if !paragraph.Is(mdast.KindParagraph) {
		return false
	}
	text := paragraph.FirstChild()
	if !text.Is(mdast.KindText) {
		return false
	}

	marker, body, multiline := strings.Cut(text.Value, "\n")
	if !multiline {
		// The title is alone on its line only if nothing else shares the
		// paragraph, or a hard break ends it.
		if paragraph.ChildCount() > 1 && !paragraph.ChildAt(1).Is(mdast.KindBreak) {
			return false
		}
	}

	marker = strings.TrimRight(marker, gfmTrailingSpace)
	alert, ok := r.cfg.Types[marker]
	if !ok {
		return false
	}

	if multiline {
		text.Value = body
	} else {
		mdast.RemoveChild(paragraph, 0)
		if paragraph.FirstChild().Is(mdast.KindBreak) {
			mdast.RemoveChild(paragraph, 0)
		}
		if !paragraph.HasChildren() {
			mdast.RemoveChild(node, 0)
		}
	}

	mdast.PrependChild(node, r.titleParagraph(alert))
	r.annotate(node, marker, alert)

	return true
}

func (r *Recognizer) titleParagraph(alert AlertType) *mdast.Node {
	title := mdast.NewParagraph(
		mdast.MarkTrusted(mdast.NewHTML("<span class='icon'>"+alert.SVGIcon+"</span>")),
		mdast.NewText(alert.Title),
	)
	title.EnsureData().HProperties = map[string]any{
		mdast.PropClassName: r.cfg.TitleCSSClass,
	}
	return title
}

// annotate sets the container hints, keeping any unrelated Data fields.
func (r *Recognizer) annotate(node *mdast.Node, marker string, alert AlertType) {
	data := node.EnsureData()
	data.HName = ContainerTag
	data.HProperties = map[string]any{
		mdast.PropClassName: r.cfg.BlockCSSClass + " " + alert.CSSClass,
	}
	if data.Ext == nil {
		data.Ext = map[string]any{}
	}
	data.Ext[ExtKeyType] = marker
}

// IsAdmonition reports whether node has been rewritten into an admonition.
func IsAdmonition(node *mdast.Node) bool {
	if node == nil || node.Data == nil || node.Data.Ext == nil {
		return false
	}
	_, ok := node.Data.Ext[ExtKeyType]
	return ok
}

// MarkerOf returns the marker an admonition was recognized from.
func MarkerOf(node *mdast.Node) (string, bool) {
	if !IsAdmonition(node) {
		return "", false
	}
	marker, ok := node.Data.Ext[ExtKeyType].(string)
	return marker, ok
}

// Count returns the number of admonitions under root.
func Count(root *mdast.Node) int {
	return len(mdast.FindAll(root, IsAdmonition))
}
