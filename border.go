package quill

// BorderChars defines the characters used to draw one border style.
type BorderChars struct {
	Horizontal  string
	Vertical    string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

// Named border styles recognized by the "borderStyle" key.
var borderStyles = map[string]BorderChars{
	"single": {
		Horizontal:  "─",
		Vertical:    "│",
		TopLeft:     "┌",
		TopRight:    "┐",
		BottomLeft:  "└",
		BottomRight: "┘",
	},
	"round": {
		Horizontal:  "─",
		Vertical:    "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
	},
	"double": {
		Horizontal:  "═",
		Vertical:    "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	},
	"bold": {
		Horizontal:  "━",
		Vertical:    "┃",
		TopLeft:     "┏",
		TopRight:    "┓",
		BottomLeft:  "┗",
		BottomRight: "┛",
	},
	"classic": {
		Horizontal:  "-",
		Vertical:    "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	},
}

// Basic color names mapped to SGR foreground open codes. Backgrounds add
// 10. Unknown names render unstyled rather than erroring.
var colorCodes = map[string]int{
	"black":         30,
	"red":           31,
	"green":         32,
	"yellow":        33,
	"blue":          34,
	"magenta":       35,
	"cyan":          36,
	"white":         37,
	"gray":          90,
	"grey":          90,
	"brightRed":     91,
	"brightGreen":   92,
	"brightYellow":  93,
	"brightBlue":    94,
	"brightMagenta": 95,
	"brightCyan":    96,
	"brightWhite":   97,
}

func sgr(n int) string {
	return "\x1b[" + itoa(n) + "m"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var scratch [4]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	return string(scratch[i:])
}

// colorize wraps a line in the open/close pair for a named foreground
// color; the identity function for unknown names.
func colorize(name string) func(string) string {
	code, ok := colorCodes[name]
	if !ok {
		return func(s string) string { return s }
	}
	open, end := sgr(code), sgr(39)
	return func(s string) string {
		if s == "" {
			return s
		}
		return open + s + end
	}
}

// ColorText returns a transform painting each line in the named
// foreground color.
func ColorText(name string) Transform {
	c := colorize(name)
	return func(line string, _ int) string { return c(line) }
}

// BgColorText returns a transform painting each line's background.
func BgColorText(name string) Transform {
	code, ok := colorCodes[name]
	if !ok {
		return func(line string, _ int) string { return line }
	}
	open, end := sgr(code+10), sgr(49)
	return func(line string, _ int) string {
		if line == "" {
			return line
		}
		return open + line + end
	}
}

func sgrPair(open, end int) Transform {
	o, c := sgr(open), sgr(end)
	return func(line string, _ int) string {
		if line == "" {
			return line
		}
		return o + line + c
	}
}

// Inline styling transforms for the component layer.
var (
	BoldText          = sgrPair(1, 22)
	DimText           = sgrPair(2, 22)
	ItalicText        = sgrPair(3, 23)
	UnderlineText     = sgrPair(4, 24)
	InverseText       = sgrPair(7, 27)
	StrikethroughText = sgrPair(9, 29)
)
