package quill

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// StyleToken is one ANSI SGR open sequence paired with the sequence that
// cancels it. Plain data, no hierarchy: the style stack operates on these
// by value.
type StyleToken struct {
	Code string // full open sequence, e.g. "\x1b[31m"
	End  string // cancelling sequence, e.g. "\x1b[39m"; empty for reset
}

const (
	csiByte  = '\u009b' // single-byte CSI introducer
	csiIntro = "\u009b"
	sgrReset = "\x1b[0m"
)

// ansiToken is one unit of an ANSI-aware character stream: either a style
// token or a single grapheme cluster with its column width.
type ansiToken struct {
	style   StyleToken
	isStyle bool
	char    string
	width   int // 0, 1 or 2 columns
}

// parseANSI tokenizes s with a two-state scanner: escape sequences become
// opaque style tokens, everything else becomes grapheme clusters tagged
// with their width. Malformed or non-SGR sequences are dropped.
func parseANSI(s string) []ansiToken {
	var toks []ansiToken
	for len(s) > 0 {
		esc := escStart(s)
		if esc != 0 {
			// Plain run before the escape.
			toks = appendClusters(toks, s[:esc-1])
			s = s[esc-1:]
			seq, rest := scanEscape(s)
			s = rest
			if seq != "" {
				toks = append(toks, ansiToken{
					style:   StyleToken{Code: seq, End: sgrEndCode(seq)},
					isStyle: true,
				})
			}
			continue
		}
		toks = appendClusters(toks, s)
		break
	}
	return toks
}

// escStart returns 1+index of the first escape introducer, or 0.
func escStart(s string) int {
	i := strings.IndexByte(s, '\x1b')
	j := strings.IndexRune(s, csiByte)
	if i < 0 || (j >= 0 && j < i) {
		i = j
	}
	return i + 1
}

// scanEscape consumes one escape sequence from the front of s. It returns
// the full sequence when it is an SGR ("...m") sequence, "" otherwise,
// plus the remaining input. OSC sequences are skipped through their
// BEL or ST terminator.
func scanEscape(s string) (seq, rest string) {
	start := 1
	if strings.HasPrefix(s, csiIntro) {
		start = len(csiIntro)
	} else if len(s) > 1 && s[0] == '\x1b' && s[1] == '[' {
		start = 2
	} else if len(s) > 1 && s[0] == '\x1b' && s[1] == ']' {
		// OSC: skip to BEL or ESC \.
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' {
				return "", s[i+1:]
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return "", s[i+2:]
			}
		}
		return "", ""
	} else {
		// Bare ESC with an unknown follow byte; drop the ESC only.
		return "", s[1:]
	}
	for i := start; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' || c == ';' {
			continue
		}
		if c == 'm' {
			return s[:i+1], s[i+1:]
		}
		// Some other CSI final byte; not a style, drop it.
		return "", s[i+1:]
	}
	return "", ""
}

func appendClusters(toks []ansiToken, s string) []ansiToken {
	if s == "" {
		return toks
	}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		toks = append(toks, ansiToken{
			char:  cluster,
			width: clusterWidth(cluster, narrowCond),
		})
	}
	return toks
}

// sgrEndCode derives the cancelling sequence for an SGR open sequence from
// its first parameter. Reset maps to an empty end code.
func sgrEndCode(seq string) string {
	params := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(seq, csiIntro), "\x1b["), "m")
	first := params
	if i := strings.IndexByte(params, ';'); i >= 0 {
		first = params[:i]
	}
	n, err := strconv.Atoi(first)
	if err != nil || n == 0 {
		return ""
	}
	switch {
	case n == 1 || n == 2:
		return "\x1b[22m"
	case n >= 3 && n <= 9:
		return "\x1b[" + strconv.Itoa(n+20) + "m"
	case n >= 30 && n <= 38, n >= 90 && n <= 97:
		return "\x1b[39m"
	case n >= 40 && n <= 48, n >= 100 && n <= 107:
		return "\x1b[49m"
	}
	return sgrReset
}

func (t StyleToken) isReset() bool {
	return t.End == ""
}

// sgrClosers are the sequences that cancel a style axis rather than open
// one: attribute-off codes plus the default fore/background colors.
var sgrClosers = map[string]bool{
	"\x1b[22m": true,
	"\x1b[23m": true,
	"\x1b[24m": true,
	"\x1b[25m": true,
	"\x1b[27m": true,
	"\x1b[28m": true,
	"\x1b[29m": true,
	"\x1b[39m": true,
	"\x1b[49m": true,
}

// styleStack tracks the SGR styles in effect at a point in a character
// stream. The reset token clears it; a closer pops every entry it
// cancels; any other token evicts an existing entry sharing its end code,
// then pushes itself.
type styleStack []StyleToken

func (st *styleStack) apply(tok StyleToken) {
	if tok.isReset() {
		*st = (*st)[:0]
		return
	}
	if sgrClosers[tok.Code] {
		keep := (*st)[:0]
		for _, t := range *st {
			if t.End != tok.Code {
				keep = append(keep, t)
			}
		}
		*st = keep
		return
	}
	keep := (*st)[:0]
	for _, t := range *st {
		if t.End != tok.End {
			keep = append(keep, t)
		}
	}
	*st = append(keep, tok)
}

func (st styleStack) snapshot() []StyleToken {
	if len(st) == 0 {
		return nil
	}
	out := make([]StyleToken, len(st))
	copy(out, st)
	return out
}

func containsToken(toks []StyleToken, tok StyleToken) bool {
	for _, t := range toks {
		if t == tok {
			return true
		}
	}
	return false
}

// writeStyleDelta emits the minimal transition between two style stacks:
// end codes for styles no longer active, reversed in push order, then open
// codes for newly active styles.
func writeStyleDelta(b *strings.Builder, prev, next []StyleToken) {
	for i := len(prev) - 1; i >= 0; i-- {
		if !containsToken(next, prev[i]) {
			b.WriteString(prev[i].End)
		}
	}
	for _, t := range next {
		if !containsToken(prev, t) {
			b.WriteString(t.Code)
		}
	}
}

// SliceANSI returns the substring of text whose columns fall in
// [start, end), re-opening the styles in effect at the slice start and
// closing any still active at the slice end, so the result is
// independently valid ANSI text. Clusters are never split; a double-width
// glyph straddling a bound is dropped.
func SliceANSI(text string, start, end int) string {
	if end <= start {
		return ""
	}
	var b strings.Builder
	var st styleStack
	col := 0
	opened := false
	for _, t := range parseANSI(text) {
		if t.isStyle {
			if opened {
				if t.style.isReset() {
					b.WriteString(sgrReset)
				} else {
					b.WriteString(t.style.Code)
				}
			}
			st.apply(t.style)
			continue
		}
		if col >= end {
			break
		}
		if t.width > 0 && col >= start && col+t.width <= end {
			if !opened {
				for _, s := range st {
					b.WriteString(s.Code)
				}
				opened = true
			}
			b.WriteString(t.char)
		}
		col += t.width
	}
	if opened {
		for i := len(st) - 1; i >= 0; i-- {
			b.WriteString(st[i].End)
		}
	}
	return b.String()
}
