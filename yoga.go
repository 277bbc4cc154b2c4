package quill

import (
	"math"

	"github.com/kjk/flex"
)

// yogaEngine binds the external flexbox engine (the Go port of Yoga).
// One engine, and one flex.Config, exists per process.
type yogaEngine struct {
	config *flex.Config
}

func newYogaEngine() (Engine, error) {
	return &yogaEngine{config: flex.NewConfig()}, nil
}

func (e *yogaEngine) NewNode() LayoutNode {
	return &yogaNode{n: flex.NewNodeWithConfig(e.config)}
}

// yogaNode adapts one flex.Node to the LayoutNode capability surface.
// It deliberately does not implement GapSetter: this engine predates
// flexbox gap support, so gap keys no-op.
type yogaNode struct {
	n *flex.Node
}

func (y *yogaNode) InsertChild(child LayoutNode, index int) {
	if c, ok := child.(*yogaNode); ok {
		y.n.InsertChild(c.n, index)
	}
}

func (y *yogaNode) RemoveChild(child LayoutNode) {
	if c, ok := child.(*yogaNode); ok {
		y.n.RemoveChild(c.n)
	}
}

func (y *yogaNode) SetMeasureFunc(fn MeasureFunc) {
	if fn == nil {
		y.n.SetMeasureFunc(nil)
		return
	}
	y.n.SetMeasureFunc(func(node *flex.Node, width float32, widthMode flex.MeasureMode, height float32, heightMode flex.MeasureMode) flex.Size {
		avail := 0
		if !math.IsNaN(float64(width)) && width > 0 {
			avail = int(width)
		}
		out := fn(avail)
		return flex.Size{Width: float32(out.Width), Height: float32(out.Height)}
	})
}

func (y *yogaNode) MarkDirty() {
	y.n.MarkDirty()
}

func (y *yogaNode) CalculateLayout(availableWidth int) {
	flex.CalculateLayout(y.n, float32(availableWidth), flex.Undefined, flex.DirectionLTR)
}

func (y *yogaNode) Left() int   { return roundPx(y.n.LayoutGetLeft()) }
func (y *yogaNode) Top() int    { return roundPx(y.n.LayoutGetTop()) }
func (y *yogaNode) Width() int  { return roundPx(y.n.LayoutGetWidth()) }
func (y *yogaNode) Height() int { return roundPx(y.n.LayoutGetHeight()) }

func (y *yogaNode) Border(edge Edge) int {
	return roundPx(y.n.LayoutGetBorder(yogaEdge(edge)))
}

func (y *yogaNode) SetPositionAbsolute(absolute bool) {
	if absolute {
		y.n.StyleSetPositionType(flex.PositionTypeAbsolute)
	} else {
		y.n.StyleSetPositionType(flex.PositionTypeRelative)
	}
}

func (y *yogaNode) SetMargin(edge Edge, v int) {
	y.n.StyleSetMargin(yogaEdge(edge), float32(v))
}

func (y *yogaNode) SetPadding(edge Edge, v int) {
	y.n.StyleSetPadding(yogaEdge(edge), float32(v))
}

func (y *yogaNode) SetBorder(edge Edge, v int) {
	y.n.StyleSetBorder(yogaEdge(edge), float32(v))
}

func (y *yogaNode) SetFlexGrow(v float64)   { y.n.StyleSetFlexGrow(float32(v)) }
func (y *yogaNode) SetFlexShrink(v float64) { y.n.StyleSetFlexShrink(float32(v)) }

func (y *yogaNode) SetFlexDirection(d FlexDirection) {
	switch d {
	case FlexRow:
		y.n.StyleSetFlexDirection(flex.FlexDirectionRow)
	case FlexRowReverse:
		y.n.StyleSetFlexDirection(flex.FlexDirectionRowReverse)
	case FlexColumn:
		y.n.StyleSetFlexDirection(flex.FlexDirectionColumn)
	case FlexColumnReverse:
		y.n.StyleSetFlexDirection(flex.FlexDirectionColumnReverse)
	}
}

func (y *yogaNode) SetJustifyContent(j Justify) {
	switch j {
	case JustifyFlexStart:
		y.n.StyleSetJustifyContent(flex.JustifyFlexStart)
	case JustifyCenter:
		y.n.StyleSetJustifyContent(flex.JustifyCenter)
	case JustifyFlexEnd:
		y.n.StyleSetJustifyContent(flex.JustifyFlexEnd)
	case JustifySpaceBetween:
		y.n.StyleSetJustifyContent(flex.JustifySpaceBetween)
	case JustifySpaceAround:
		y.n.StyleSetJustifyContent(flex.JustifySpaceAround)
	}
}

func (y *yogaNode) SetAlignItems(a Align) {
	switch a {
	case AlignStretch:
		y.n.StyleSetAlignItems(flex.AlignStretch)
	case AlignFlexStart:
		y.n.StyleSetAlignItems(flex.AlignFlexStart)
	case AlignCenter:
		y.n.StyleSetAlignItems(flex.AlignCenter)
	case AlignFlexEnd:
		y.n.StyleSetAlignItems(flex.AlignFlexEnd)
	}
}

func (y *yogaNode) SetWidth(d Dimension) {
	switch d.Mode {
	case DimPoints:
		y.n.StyleSetWidth(float32(d.Points))
	case DimPercent:
		y.n.StyleSetWidthPercent(float32(d.Percent))
	default:
		y.n.StyleSetWidthAuto()
	}
}

func (y *yogaNode) SetHeight(d Dimension) {
	switch d.Mode {
	case DimPoints:
		y.n.StyleSetHeight(float32(d.Points))
	case DimPercent:
		y.n.StyleSetHeightPercent(float32(d.Percent))
	default:
		y.n.StyleSetHeightAuto()
	}
}

func (y *yogaNode) SetDisplayNone(none bool) {
	if none {
		y.n.StyleSetDisplay(flex.DisplayNone)
	} else {
		y.n.StyleSetDisplay(flex.DisplayFlex)
	}
}

// Free is a no-op: the Go port is garbage collected. Detaching the node
// from its parent is handled by the tree operations.
func (y *yogaNode) Free() {}

func yogaEdge(e Edge) flex.Edge {
	switch e {
	case EdgeLeft:
		return flex.EdgeLeft
	case EdgeRight:
		return flex.EdgeRight
	case EdgeTop:
		return flex.EdgeTop
	default:
		return flex.EdgeBottom
	}
}

func roundPx(v float32) int {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return int(math.Round(float64(v)))
}
