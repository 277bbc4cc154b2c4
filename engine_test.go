package quill

import "testing"

// fakeEngine provides deterministic layout geometry for tests without
// exercising the real flexbox engine.
type fakeEngine struct {
	nodes []*fakeNode
}

func (e *fakeEngine) NewNode() LayoutNode {
	n := &fakeNode{}
	e.nodes = append(e.nodes, n)
	return n
}

// useFakeEngine swaps the process-wide engine for the test's duration.
func useFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	prev := engine
	fe := &fakeEngine{}
	engine = fe
	t.Cleanup(func() { engine = prev })
	return fe
}

type fakeNode struct {
	children []*fakeNode
	measure  MeasureFunc
	dirty    int

	// geometry, settable by tests
	x, y, w, h int
	borders    [4]int

	// recorded style calls
	margins     [4]int
	paddings    [4]int
	borderSet   [4]int
	grow        float64
	shrink      float64
	dir         FlexDirection
	justify     Justify
	align       Align
	width       Dimension
	height      Dimension
	displayNone bool
	absolute    bool
	freed       bool

	calculatedWidth int
}

func (n *fakeNode) InsertChild(child LayoutNode, index int) {
	c := child.(*fakeNode)
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children[:index], append([]*fakeNode{c}, n.children[index:]...)...)
}

func (n *fakeNode) RemoveChild(child LayoutNode) {
	c := child.(*fakeNode)
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *fakeNode) SetMeasureFunc(fn MeasureFunc) { n.measure = fn }
func (n *fakeNode) MarkDirty()                    { n.dirty++ }

func (n *fakeNode) CalculateLayout(availableWidth int) {
	n.calculatedWidth = availableWidth
	if n.w == 0 {
		n.w = availableWidth
	}
	n.resolveMeasures(availableWidth)
}

func (n *fakeNode) resolveMeasures(width int) {
	if n.measure != nil && n.w == 0 || n.measure != nil && n.h == 0 {
		out := n.measure(width)
		if n.w == 0 {
			n.w = out.Width
		}
		if n.h == 0 {
			n.h = out.Height
		}
	}
	for _, c := range n.children {
		c.resolveMeasures(width)
	}
}

func (n *fakeNode) Left() int   { return n.x }
func (n *fakeNode) Top() int    { return n.y }
func (n *fakeNode) Width() int  { return n.w }
func (n *fakeNode) Height() int { return n.h }

func (n *fakeNode) Border(edge Edge) int { return n.borders[edge] }

func (n *fakeNode) SetPositionAbsolute(absolute bool) { n.absolute = absolute }
func (n *fakeNode) SetMargin(edge Edge, v int)        { n.margins[edge] = v }
func (n *fakeNode) SetPadding(edge Edge, v int)       { n.paddings[edge] = v }
func (n *fakeNode) SetBorder(edge Edge, v int) {
	n.borderSet[edge] = v
	n.borders[edge] = v
}
func (n *fakeNode) SetFlexGrow(v float64)            { n.grow = v }
func (n *fakeNode) SetFlexShrink(v float64)          { n.shrink = v }
func (n *fakeNode) SetFlexDirection(d FlexDirection) { n.dir = d }
func (n *fakeNode) SetJustifyContent(j Justify)      { n.justify = j }
func (n *fakeNode) SetAlignItems(a Align)            { n.align = a }
func (n *fakeNode) SetWidth(d Dimension)             { n.width = d }
func (n *fakeNode) SetHeight(d Dimension)            { n.height = d }
func (n *fakeNode) SetDisplayNone(none bool)         { n.displayNone = none }
func (n *fakeNode) Free()                            { n.freed = true }

// gapNode adds the optional gap capability on top of fakeNode.
type gapNode struct {
	fakeNode
	gaps map[GapAxis]int
}

func (n *gapNode) SetGap(axis GapAxis, v int) {
	if n.gaps == nil {
		n.gaps = map[GapAxis]int{}
	}
	n.gaps[axis] = v
}
