package quill

import "strings"

// RenderOptions control one compositor pass.
type RenderOptions struct {
	// SkipStatic skips subtrees marked Static, for partial repaints where
	// already-painted history must not be revisited.
	SkipStatic bool
}

// Render lays out the tree and composites it into a frame string.
// Returns the frame and its height in lines.
func Render(root *Node, width int) (string, int) {
	return RenderWithOptions(root, width, RenderOptions{})
}

// RenderWithOptions is Render with an explicit options struct.
func RenderWithOptions(root *Node, width int, opts RenderOptions) (string, int) {
	if root == nil || root.Layout == nil {
		return "", 0
	}
	root.Layout.CalculateLayout(width)

	outW := root.Layout.Width()
	if outW <= 0 {
		outW = width
	}
	out := NewOutput(outW, root.Layout.Height())
	renderNode(root, out, 0, 0, nil, opts.SkipStatic)
	return out.Get()
}

// renderNode walks the laid-out tree, writing styled runs into the output
// grid. Offsets and transform chains accumulate down the tree; clip
// regions are pushed for overflow-hidden boxes and popped on exit.
func renderNode(n *Node, out *Output, offsetX, offsetY int, transforms []Transform, skipStatic bool) {
	if n == nil {
		return
	}
	if skipStatic && n.Static {
		return
	}
	if v, ok := n.Style["display"].(string); ok && v == "none" {
		return
	}

	x, y := offsetX, offsetY
	if n.Layout != nil {
		x += n.Layout.Left()
		y += n.Layout.Top()
	}

	if n.Transform != nil {
		chain := make([]Transform, 0, len(transforms)+1)
		chain = append(chain, n.Transform)
		chain = append(chain, transforms...)
		transforms = chain
	}

	switch n.Kind {
	case NodeText:
		text := TextContent(n)
		if text == "" {
			return
		}
		width := n.Layout.Width()
		if w, _ := measureText(text); w > width && width > 0 {
			text = wrapForNode(text, width, wrapMode(n))
		}
		out.Write(x, y, text, transforms...)
		return

	case NodeVirtualText:
		// Inline runs are folded into their owning text node.
		return

	case NodeBox:
		renderBorder(out, n, x, y)
		clipped := pushOverflowClip(out, n, x, y)
		for _, c := range n.Children {
			renderNode(c, out, x, y, transforms, skipStatic)
		}
		if clipped {
			out.Unclip()
		}
		return

	default: // NodeRoot
		for _, c := range n.Children {
			renderNode(c, out, x, y, transforms, skipStatic)
		}
	}
}

// pushOverflowClip pushes a clip region bounded by the box's inner
// content rectangle when overflow is hidden on either axis. Reports
// whether a region was pushed.
func pushOverflowClip(out *Output, n *Node, x, y int) bool {
	overflow, _ := n.Style["overflow"].(string)
	ox, ok := n.Style["overflowX"].(string)
	if !ok {
		ox = overflow
	}
	oy, ok := n.Style["overflowY"].(string)
	if !ok {
		oy = overflow
	}
	if ox != "hidden" && oy != "hidden" {
		return false
	}

	var clip Clip
	if ox == "hidden" {
		x1 := x + n.Layout.Border(EdgeLeft)
		x2 := x + n.Layout.Width() - n.Layout.Border(EdgeRight)
		clip.X1, clip.X2 = &x1, &x2
	}
	if oy == "hidden" {
		y1 := y + n.Layout.Border(EdgeTop)
		y2 := y + n.Layout.Height() - n.Layout.Border(EdgeBottom)
		clip.Y1, clip.Y2 = &y1, &y2
	}
	out.Clip(clip)
	return true
}

// renderBorder paints the box's border edges. Edge presence comes from
// the layout engine so suppressed edges leave no gap in the geometry.
func renderBorder(out *Output, n *Node, x, y int) {
	name, _ := n.Style["borderStyle"].(string)
	if name == "" || n.Layout == nil {
		return
	}
	chars, ok := borderStyles[name]
	if !ok {
		return
	}
	w, h := n.Layout.Width(), n.Layout.Height()
	if w < 1 || h < 1 {
		return
	}

	colorName, _ := n.Style["borderColor"].(string)
	paint := colorize(colorName)

	top := n.Layout.Border(EdgeTop) > 0
	bottom := n.Layout.Border(EdgeBottom) > 0
	left := n.Layout.Border(EdgeLeft) > 0
	right := n.Layout.Border(EdgeRight) > 0

	if top {
		line := chars.Horizontal
		tl, tr := chars.TopLeft, chars.TopRight
		if !left {
			tl = ""
		}
		if !right {
			tr = ""
		}
		span := w - StringWidth(tl) - StringWidth(tr)
		if span < 0 {
			span = 0
		}
		out.Write(x, y, paint(tl+strings.Repeat(line, span)+tr))
	}

	innerH := h
	if top {
		innerH--
	}
	if bottom {
		innerH--
	}
	if innerH > 0 {
		offY := y
		if top {
			offY++
		}
		if left {
			side := strings.TrimSuffix(strings.Repeat(chars.Vertical+"\n", innerH), "\n")
			out.Write(x, offY, side, func(line string, _ int) string { return paint(line) })
		}
		if right {
			side := strings.TrimSuffix(strings.Repeat(chars.Vertical+"\n", innerH), "\n")
			out.Write(x+w-1, offY, side, func(line string, _ int) string { return paint(line) })
		}
	}

	if bottom && h > 1 {
		line := chars.Horizontal
		bl, br := chars.BottomLeft, chars.BottomRight
		if !left {
			bl = ""
		}
		if !right {
			br = ""
		}
		span := w - StringWidth(bl) - StringWidth(br)
		if span < 0 {
			span = 0
		}
		out.Write(x, y+h-1, paint(bl+strings.Repeat(line, span)+br))
	}
}
