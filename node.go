package quill

import "strings"

// NodeKind identifies the type of a UI node.
type NodeKind uint8

const (
	NodeRoot NodeKind = iota
	NodeBox
	NodeText
	// NodeVirtualText holds inline text content with no layout box of its
	// own; it delegates layout to the nearest ancestor with a handle.
	NodeVirtualText
)

// Style maps recognized style keys to values. Insertion order is
// irrelevant; unknown keys are ignored by the layout binding.
type Style map[string]any

// Transform rewrites one rendered line. index is the line number within
// the write. Transforms express color, bold or underline at render time
// without mutating tree structure.
type Transform func(line string, index int) string

// Node is one element of the UI tree. Children are owned exclusively by
// their parent and rendered in order; Parent is a back-reference only.
type Node struct {
	Kind       NodeKind
	Style      Style
	Attributes map[string]any
	Children   []*Node
	Parent     *Node

	// Layout is the node's handle into the flexbox engine. Every node
	// except NodeVirtualText owns exactly one.
	Layout LayoutNode

	// Transform, when set, is applied to the node's text at measure and
	// render time.
	Transform Transform

	// Static marks a subtree as rendered once and never revisited.
	Static bool

	// Value is the node's own text content, used by Text and VirtualText.
	Value string
}

// NewRoot creates the root of a rendered tree. Exactly one root exists
// per tree; it has no parent.
func NewRoot() *Node {
	n := &Node{Kind: NodeRoot}
	n.Layout = layoutEngine().NewNode()
	n.Layout.SetFlexShrink(1)
	return n
}

// NewBox creates a container node with the given style.
func NewBox(style Style) *Node {
	n := &Node{Kind: NodeBox, Style: style}
	n.Layout = layoutEngine().NewNode()
	n.Layout.SetFlexShrink(1)
	applyStyle(n.Layout, style)
	return n
}

// NewText creates a text node. Its content is the concatenation of its
// own Value and its text descendants; the node registers a measure
// function so layout can account for wrapped text size.
func NewText(style Style) *Node {
	n := &Node{Kind: NodeText, Style: style}
	n.Layout = layoutEngine().NewNode()
	n.Layout.SetFlexShrink(1)
	applyStyle(n.Layout, style)
	n.Layout.SetMeasureFunc(func(width int) MeasureOutput {
		return measureTextNode(n, width)
	})
	return n
}

// NewVirtualText creates an inline text run with no layout box.
func NewVirtualText(value string) *Node {
	return &Node{Kind: NodeVirtualText, Value: value}
}

// SetStyle replaces the node's style and pushes it into the layout engine.
func (n *Node) SetStyle(style Style) {
	n.Style = style
	applyStyle(n.Layout, style)
}

// SetValue replaces the node's text content and re-measures the owning
// text node.
func (n *Node) SetValue(value string) {
	n.Value = value
	markTextDirty(n)
}

// AppendChild attaches child as the last child of parent, detaching it
// from any previous parent first, and mirrors the operation into the
// layout engine so engine child order matches tree order.
func AppendChild(parent, child *Node) {
	if child == nil || parent == nil || child == parent {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}
	child.Parent = parent
	parent.Children = append(parent.Children, child)

	if child.Layout != nil {
		if host := owningLayout(parent); host != nil {
			host.InsertChild(child.Layout, layoutIndex(parent, child))
		}
	}
	if parent.Kind == NodeText || parent.Kind == NodeVirtualText {
		markTextDirty(parent)
	}
}

// RemoveChild detaches child from parent and from the layout engine.
func RemoveChild(parent, child *Node) {
	if child == nil || parent == nil || child.Parent != parent {
		return
	}
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	child.Parent = nil

	if child.Layout != nil {
		if host := owningLayout(parent); host != nil {
			host.RemoveChild(child.Layout)
		}
	}
	if parent.Kind == NodeText || parent.Kind == NodeVirtualText {
		markTextDirty(parent)
	}
}

// Destroy releases the layout handles owned by the subtree. The node must
// already be detached from any parent.
func Destroy(n *Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		Destroy(c)
	}
	if n.Layout != nil {
		n.Layout.Free()
		n.Layout = nil
	}
}

// owningLayout walks up from n to the nearest node holding a layout
// handle. VirtualText nodes delegate layout to that ancestor.
func owningLayout(n *Node) LayoutNode {
	for ; n != nil; n = n.Parent {
		if n.Layout != nil {
			return n.Layout
		}
	}
	return nil
}

// layoutIndex returns child's position among parent's layout-bearing
// children, which is the engine-side insertion index.
func layoutIndex(parent, child *Node) int {
	idx := 0
	for _, c := range parent.Children {
		if c == child {
			return idx
		}
		if c.Layout != nil {
			idx++
		}
	}
	return idx
}

// markTextDirty forces re-measurement of the text node owning n's content.
func markTextDirty(n *Node) {
	if ln := owningLayout(n); ln != nil {
		ln.MarkDirty()
	}
}

// TextContent concatenates the node's text depth-first: its own value,
// then each text-kind child with that child's transform applied, passing
// the child's position among its siblings.
func TextContent(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Value)
	for i, c := range n.Children {
		if c.Kind != NodeText && c.Kind != NodeVirtualText {
			continue
		}
		text := TextContent(c)
		if c.Transform != nil {
			text = c.Transform(text, i)
		}
		b.WriteString(text)
	}
	return b.String()
}

// measureTextNode is the measure callback registered for text nodes:
// natural size when the content fits the available width, wrapped size
// otherwise.
func measureTextNode(n *Node, width int) MeasureOutput {
	text := TextContent(n)
	if text == "" {
		return MeasureOutput{}
	}
	w, h := measureText(text)
	if width <= 0 || w <= width {
		return MeasureOutput{Width: w, Height: h}
	}
	ww, wh := measureText(wrapForNode(text, width, wrapMode(n)))
	return MeasureOutput{Width: ww, Height: wh}
}

// wrapMode reads the node's configured wrap mode, defaulting to "wrap".
func wrapMode(n *Node) string {
	if m, ok := n.Style["textWrap"].(string); ok && m != "" {
		return m
	}
	return "wrap"
}

// wrapForNode wraps or truncates text to width per the node's wrap mode.
func wrapForNode(text string, width int, mode string) string {
	switch mode {
	case "truncate", "truncate-end":
		return truncateLines(text, width, TruncateEnd)
	case "truncate-middle":
		return truncateLines(text, width, TruncateMiddle)
	case "truncate-start":
		return truncateLines(text, width, TruncateStart)
	default:
		return WrapText(text, width, WrapOptions{Hard: true, WordWrap: true})
	}
}

func truncateLines(text string, width int, pos TruncatePosition) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = Truncate(line, width, TruncateOptions{Position: pos})
	}
	return strings.Join(lines, "\n")
}
