package quill

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// StyledChar is one terminal cell: a grapheme cluster (empty for the
// trailing cell of a double-width glyph) plus the style tokens active at
// that cell.
type StyledChar struct {
	Value     string
	FullWidth bool
	Styles    []StyleToken
}

// Clip bounds where writes are visible. A nil bound is unbounded. Regions
// nest via a stack; only the top of stack is in effect.
type Clip struct {
	X1, X2 *int
	Y1, Y2 *int
}

type opKind uint8

const (
	opWrite opKind = iota
	opClip
	opUnclip
)

type outputOp struct {
	kind       opKind
	x, y       int
	text       string
	transforms []Transform
	clip       Clip
}

// Output is an append-only log of write and clip operations, replayed
// once by Get into a height×width grid of styled cells.
type Output struct {
	width  int
	height int
	ops    []outputOp
}

// NewOutput creates an output grid of the given dimensions.
func NewOutput(width, height int) *Output {
	return &Output{width: width, height: height}
}

// Write records text at (x, y). Transforms are applied per line at replay
// time, in slice order: index 0 is the innermost (the writing node's own).
func (o *Output) Write(x, y int, text string, transforms ...Transform) {
	if text == "" {
		return
	}
	o.ops = append(o.ops, outputOp{kind: opWrite, x: x, y: y, text: text, transforms: transforms})
}

// Clip pushes a clip region; subsequent writes are bounded by it.
func (o *Output) Clip(c Clip) {
	o.ops = append(o.ops, outputOp{kind: opClip, clip: c})
}

// Unclip pops the most recent clip region.
func (o *Output) Unclip() {
	o.ops = append(o.ops, outputOp{kind: opUnclip})
}

// Bounded memoization: tokenized lines and serialized rows repeat heavily
// across frames (history lines rarely change), so both steps are cached
// behind LRUs to cap memory in long sessions.
var (
	lineCache, _ = lru.New[string, []ansiToken](1024)
	rowCache, _  = lru.New[string, string](1024)
)

func parseLine(line string) []ansiToken {
	if toks, ok := lineCache.Get(line); ok {
		return toks
	}
	toks := parseANSI(line)
	lineCache.Add(line, toks)
	return toks
}

// Get replays the operation log into a fresh grid and serializes it.
// Returns the frame text and its height in lines.
func (o *Output) Get() (string, int) {
	rows := make([][]StyledChar, o.height)
	for y := range rows {
		row := make([]StyledChar, o.width)
		for x := range row {
			row[x] = StyledChar{Value: " "}
		}
		rows[y] = row
	}

	var clips []Clip
	for _, op := range o.ops {
		switch op.kind {
		case opClip:
			clips = append(clips, op.clip)
		case opUnclip:
			if len(clips) > 0 {
				clips = clips[:len(clips)-1]
			}
		case opWrite:
			var clip *Clip
			if len(clips) > 0 {
				clip = &clips[len(clips)-1]
			}
			o.replayWrite(rows, op, clip)
		}
	}

	var b strings.Builder
	for y, row := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(serializeRow(row))
	}
	return b.String(), len(rows)
}

func (o *Output) replayWrite(rows [][]StyledChar, op outputOp, clip *Clip) {
	for i, line := range strings.Split(op.text, "\n") {
		y := op.y + i
		x := op.x

		if clip != nil {
			if clip.Y1 != nil && y < *clip.Y1 {
				continue
			}
			if clip.Y2 != nil && y >= *clip.Y2 {
				continue
			}
		}
		if y < 0 || y >= o.height {
			continue
		}

		for _, t := range op.transforms {
			line = t(line, i)
		}

		if clip != nil && (clip.X1 != nil || clip.X2 != nil) {
			lineW := StringWidth(line)
			x1, x2 := 0, o.width
			if clip.X1 != nil {
				x1 = *clip.X1
			}
			if clip.X2 != nil {
				x2 = *clip.X2
			}
			// Fully outside the horizontal window: skip entirely.
			if x >= x2 || x+lineW <= x1 {
				continue
			}
			// Straddling a boundary: slice to the visible window.
			if x < x1 || x+lineW > x2 {
				start := 0
				if x < x1 {
					start = x1 - x
				}
				end := lineW
				if x+lineW > x2 {
					end = x2 - x
				}
				line = SliceANSI(line, start, end)
				x += start
			}
		}

		o.placeLine(rows[y], x, line)
	}
}

// placeLine writes one tokenized line into a grid row, tracking the style
// stack and tagging the trailing cell of double-width glyphs so column
// arithmetic stays correct downstream.
func (o *Output) placeLine(row []StyledChar, x int, line string) {
	var st styleStack
	cx := x
	for _, t := range parseLine(line) {
		if t.isStyle {
			st.apply(t.style)
			continue
		}
		if t.width == 0 {
			continue
		}
		if cx >= o.width {
			break
		}
		if cx >= 0 && cx+t.width <= o.width {
			styles := st.snapshot()
			row[cx] = StyledChar{Value: t.char, FullWidth: t.width == 2, Styles: styles}
			if t.width == 2 {
				row[cx+1] = StyledChar{Value: "", Styles: styles}
			}
		}
		cx += t.width
	}
}

// serializeRow converts one row to a string, emitting only the minimal
// style delta between consecutive cells and trimming trailing unstyled
// whitespace.
func serializeRow(row []StyledChar) string {
	var key strings.Builder
	for _, c := range row {
		key.WriteString(c.Value)
		for _, s := range c.Styles {
			key.WriteString(s.Code)
		}
		key.WriteByte(0)
	}
	k := key.String()
	if line, ok := rowCache.Get(k); ok {
		return line
	}

	last := len(row) - 1
	for last >= 0 && len(row[last].Styles) == 0 && (row[last].Value == " " || row[last].Value == "") {
		last--
	}

	var b strings.Builder
	var active []StyleToken
	for i := 0; i <= last; i++ {
		writeStyleDelta(&b, active, row[i].Styles)
		active = row[i].Styles
		b.WriteString(row[i].Value)
	}
	for i := len(active) - 1; i >= 0; i-- {
		b.WriteString(active[i].End)
	}

	line := b.String()
	rowCache.Add(k, line)
	return line
}
