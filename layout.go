package quill

import "fmt"

// Edge identifies one side of a box.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// FlexDirection is the main axis of a flex container.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexRowReverse
	FlexColumn
	FlexColumnReverse
)

// Justify distributes children along the main axis.
type Justify uint8

const (
	JustifyFlexStart Justify = iota
	JustifyCenter
	JustifyFlexEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// Align positions children on the cross axis.
type Align uint8

const (
	AlignStretch Align = iota
	AlignFlexStart
	AlignCenter
	AlignFlexEnd
)

// DimensionMode tags a Dimension value.
type DimensionMode uint8

const (
	DimAuto DimensionMode = iota
	DimPoints
	DimPercent
)

// Dimension is a width or height: an absolute cell count, a percentage of
// the parent, or auto.
type Dimension struct {
	Mode    DimensionMode
	Points  int
	Percent float64
}

// MeasureOutput is the natural size a measure function reports.
type MeasureOutput struct {
	Width  int
	Height int
}

// MeasureFunc computes a node's size for a given available width.
type MeasureFunc func(width int) MeasureOutput

// LayoutNode is the capability surface the flexbox engine exposes per
// node. Every concrete engine node implements it; optional capabilities
// (GapSetter) are separate interfaces so absent ones simply aren't
// called.
type LayoutNode interface {
	InsertChild(child LayoutNode, index int)
	RemoveChild(child LayoutNode)
	SetMeasureFunc(fn MeasureFunc)
	MarkDirty()
	CalculateLayout(availableWidth int)

	Left() int
	Top() int
	Width() int
	Height() int
	Border(edge Edge) int

	SetPositionAbsolute(absolute bool)
	SetMargin(edge Edge, v int)
	SetPadding(edge Edge, v int)
	SetBorder(edge Edge, v int)
	SetFlexGrow(v float64)
	SetFlexShrink(v float64)
	SetFlexDirection(d FlexDirection)
	SetJustifyContent(j Justify)
	SetAlignItems(a Align)
	SetWidth(d Dimension)
	SetHeight(d Dimension)
	SetDisplayNone(none bool)

	// Free releases engine-side resources for this node.
	Free()
}

// GapAxis selects which gutter SetGap configures.
type GapAxis uint8

const (
	GapAll GapAxis = iota
	GapColumn
	GapRow
)

// GapSetter is the optional gap capability. Engines predating flexbox gap
// support don't implement it and the keys no-op.
type GapSetter interface {
	SetGap(axis GapAxis, v int)
}

// Engine creates layout nodes.
type Engine interface {
	NewNode() LayoutNode
}

// engine is process-wide state: the flexbox engine is initialized once and
// cached for the process lifetime. The render pipeline is single-threaded
// by contract (callers serialize renders), so a plain guard suffices.
var engine Engine

// InitLayout loads the layout engine eagerly so callers can surface a
// load failure before building trees. Safe to call more than once.
func InitLayout() error {
	if engine != nil {
		return nil
	}
	e, err := newYogaEngine()
	if err != nil {
		return fmt.Errorf("load layout engine: %w", err)
	}
	engine = e
	return nil
}

// layoutEngine returns the cached engine, loading it on first use.
// Failure to load is fatal: there is no degraded fallback.
func layoutEngine() Engine {
	if engine == nil {
		if err := InitLayout(); err != nil {
			panic(err)
		}
	}
	return engine
}

// applyStyle maps the style vocabulary onto layout-engine calls. Each
// category is independent and idempotent; unknown or absent keys are
// no-ops, and missing engine capabilities are skipped silently.
func applyStyle(ln LayoutNode, s Style) {
	if ln == nil || s == nil {
		return
	}

	if v, ok := s["position"].(string); ok {
		ln.SetPositionAbsolute(v == "absolute")
	}

	applyEdges(s, "margin", ln.SetMargin)
	applyEdges(s, "padding", ln.SetPadding)

	if v, ok := styleNumber(s["flexGrow"]); ok {
		ln.SetFlexGrow(v)
	}
	if v, ok := styleNumber(s["flexShrink"]); ok {
		ln.SetFlexShrink(v)
	}
	if v, ok := s["flexDirection"].(string); ok {
		switch v {
		case "row":
			ln.SetFlexDirection(FlexRow)
		case "row-reverse":
			ln.SetFlexDirection(FlexRowReverse)
		case "column":
			ln.SetFlexDirection(FlexColumn)
		case "column-reverse":
			ln.SetFlexDirection(FlexColumnReverse)
		}
	}
	if v, ok := s["justifyContent"].(string); ok {
		switch v {
		case "flex-start":
			ln.SetJustifyContent(JustifyFlexStart)
		case "center":
			ln.SetJustifyContent(JustifyCenter)
		case "flex-end":
			ln.SetJustifyContent(JustifyFlexEnd)
		case "space-between":
			ln.SetJustifyContent(JustifySpaceBetween)
		case "space-around":
			ln.SetJustifyContent(JustifySpaceAround)
		}
	}
	if v, ok := s["alignItems"].(string); ok {
		switch v {
		case "stretch":
			ln.SetAlignItems(AlignStretch)
		case "flex-start":
			ln.SetAlignItems(AlignFlexStart)
		case "center":
			ln.SetAlignItems(AlignCenter)
		case "flex-end":
			ln.SetAlignItems(AlignFlexEnd)
		}
	}

	if v, present := s["width"]; present {
		if d, ok := parseDimension(v); ok {
			ln.SetWidth(d)
		}
	}
	if v, present := s["height"]; present {
		if d, ok := parseDimension(v); ok {
			ln.SetHeight(d)
		}
	}

	if v, ok := s["display"].(string); ok {
		ln.SetDisplayNone(v == "none")
	}

	if bs, ok := s["borderStyle"].(string); ok && bs != "" {
		for edge, key := range borderEdgeKeys {
			w := 1
			if show, ok := s[key].(bool); ok && !show {
				w = 0
			}
			ln.SetBorder(edge, w)
		}
	}

	if gs, ok := ln.(GapSetter); ok {
		if v, ok := styleInt(s["gap"]); ok {
			gs.SetGap(GapAll, v)
		}
		if v, ok := styleInt(s["columnGap"]); ok {
			gs.SetGap(GapColumn, v)
		}
		if v, ok := styleInt(s["rowGap"]); ok {
			gs.SetGap(GapRow, v)
		}
	}
}

var borderEdgeKeys = map[Edge]string{
	EdgeTop:    "borderTop",
	EdgeRight:  "borderRight",
	EdgeBottom: "borderBottom",
	EdgeLeft:   "borderLeft",
}

// applyEdges resolves the aggregate/axis/edge spacing keys for base
// ("margin" or "padding"). Individual edges are applied last so they
// override the aggregates from the same style map.
func applyEdges(s Style, base string, set func(Edge, int)) {
	if v, ok := styleInt(s[base]); ok {
		set(EdgeTop, v)
		set(EdgeRight, v)
		set(EdgeBottom, v)
		set(EdgeLeft, v)
	}
	if v, ok := styleInt(s[base+"X"]); ok {
		set(EdgeLeft, v)
		set(EdgeRight, v)
	}
	if v, ok := styleInt(s[base+"Y"]); ok {
		set(EdgeTop, v)
		set(EdgeBottom, v)
	}
	if v, ok := styleInt(s[base+"Left"]); ok {
		set(EdgeLeft, v)
	}
	if v, ok := styleInt(s[base+"Right"]); ok {
		set(EdgeRight, v)
	}
	if v, ok := styleInt(s[base+"Top"]); ok {
		set(EdgeTop, v)
	}
	if v, ok := styleInt(s[base+"Bottom"]); ok {
		set(EdgeBottom, v)
	}
}

func styleInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

func styleNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// parseDimension accepts an absolute number, a percentage string like
// "50%", or "auto".
func parseDimension(v any) (Dimension, bool) {
	switch d := v.(type) {
	case int:
		return Dimension{Mode: DimPoints, Points: d}, true
	case float64:
		return Dimension{Mode: DimPoints, Points: int(d)}, true
	case string:
		if d == "auto" {
			return Dimension{Mode: DimAuto}, true
		}
		if len(d) > 1 && d[len(d)-1] == '%' {
			var pct float64
			if _, err := fmt.Sscanf(d[:len(d)-1], "%f", &pct); err == nil {
				return Dimension{Mode: DimPercent, Percent: pct}, true
			}
		}
	}
	return Dimension{}, false
}
