package mdast

import "strings"

// PropClassName is the HProperties key holding CSS classes.
const PropClassName = "className"

// ExtKeyHeader marks the header row of a table.
const ExtKeyHeader = "header"

// Data is the rendering side-channel attached to a node.
// The AST packages never interpret it; renderers do.
type Data struct {
	// HName overrides the output tag name. Empty means the kind's default.
	HName string

	// HProperties are output attributes. PropClassName holds a string
	// or a []string of CSS classes.
	HProperties map[string]any

	// Ext carries arbitrary extension data.
	Ext map[string]any
}

// Clone returns a deep-enough copy of d: maps are copied, values are shared.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	clone := &Data{HName: d.HName}
	if d.HProperties != nil {
		clone.HProperties = make(map[string]any, len(d.HProperties))
		for key, value := range d.HProperties {
			clone.HProperties[key] = value
		}
	}
	if d.Ext != nil {
		clone.Ext = make(map[string]any, len(d.Ext))
		for key, value := range d.Ext {
			clone.Ext[key] = value
		}
	}
	return clone
}

// EnsureData returns n.Data, allocating it first if needed.
func (n *Node) EnsureData() *Data {
	if n.Data == nil {
		n.Data = &Data{}
	}
	return n.Data
}

// HName returns the output tag override, or "".
func (n *Node) HName() string {
	if n.Data == nil {
		return ""
	}
	return n.Data.HName
}

// ClassName returns the node's CSS classes joined by spaces.
func (n *Node) ClassName() string {
	if n.Data == nil {
		return ""
	}
	return ClassString(n.Data.HProperties[PropClassName])
}

// ClassString normalizes a className property value to a space separated string.
func ClassString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case []string:
		return strings.Join(typed, " ")
	case []any:
		parts := make([]string, 0, len(typed))
		for _, part := range typed {
			if s, ok := part.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// ExtKeyTrusted marks an html node produced by a transform rather than by
// the document author. Renderers may keep trusted html when escaping the rest.
const ExtKeyTrusted = "trusted"

// MarkTrusted flags n as trusted html and returns it.
func MarkTrusted(n *Node) *Node {
	data := n.EnsureData()
	if data.Ext == nil {
		data.Ext = map[string]any{}
	}
	data.Ext[ExtKeyTrusted] = true
	return n
}

// IsTrusted reports whether n was flagged with MarkTrusted.
func IsTrusted(n *Node) bool {
	if n == nil || n.Data == nil {
		return false
	}
	trusted, _ := n.Data.Ext[ExtKeyTrusted].(bool)
	return trusted
}
