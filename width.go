package quill

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// WidthOptions control how StringWidthOpts measures a string.
type WidthOptions struct {
	// AmbiguousIsWide treats East-Asian ambiguous-width clusters as two
	// columns. Off by default, matching most western terminal setups.
	AmbiguousIsWide bool
	// CountANSI measures escape sequences as content instead of stripping
	// them before measuring.
	CountANSI bool
}

var (
	narrowCond = &runewidth.Condition{EastAsianWidth: false}
	wideCond   = &runewidth.Condition{EastAsianWidth: true}
)

// StripANSI removes ANSI CSI and OSC escape sequences. All other bytes
// pass through untouched.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') && !strings.ContainsRune(s, '\u009b') {
		return s
	}
	return ansi.Strip(s)
}

// StringWidth returns the number of terminal columns the string occupies,
// stripping ANSI sequences and treating ambiguous-width clusters as narrow.
func StringWidth(s string) int {
	return StringWidthOpts(s, WidthOptions{})
}

// StringWidthOpts measures the string with explicit options. Iteration is
// by grapheme cluster, not code point; control characters, zero-width
// characters, combining marks and surrogate halves contribute nothing.
func StringWidthOpts(s string, opts WidthOptions) int {
	if s == "" {
		return 0
	}
	if !opts.CountANSI {
		s = StripANSI(s)
	}
	cond := narrowCond
	if opts.AmbiguousIsWide {
		cond = wideCond
	}
	total := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		total += clusterWidth(g.Str(), cond)
	}
	return total
}

// clusterWidth classifies one grapheme cluster as 0, 1 or 2 columns.
func clusterWidth(cluster string, cond *runewidth.Condition) int {
	base, size := utf8.DecodeRuneInString(cluster)
	switch {
	case base <= 31, base >= 0x7f && base <= 0x9f:
		return 0
	case base >= 0x200b && base <= 0x200d, base == 0xfeff:
		return 0
	case base >= 0xd800 && base <= 0xdfff:
		return 0
	}
	w := cond.RuneWidth(base)
	// An emoji presentation selector promotes a narrow base to full width.
	if w == 1 && len(cluster) > size && strings.ContainsRune(cluster[size:], 0xfe0f) {
		w = 2
	}
	return w
}

// firstCluster returns the leading grapheme cluster of s.
func firstCluster(s string) string {
	g := uniseg.NewGraphemes(s)
	if g.Next() {
		return g.Str()
	}
	return ""
}

// SliceToWidth consumes grapheme clusters from the front of s, stopping
// before the cluster that would exceed maxWidth. Clusters are never split.
func SliceToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 || s == "" {
		return ""
	}
	var b strings.Builder
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := clusterWidth(g.Str(), narrowCond)
		if w+cw > maxWidth {
			break
		}
		b.WriteString(g.Str())
		w += cw
	}
	return b.String()
}

// SliceFromEnd consumes grapheme clusters from the back of s, stopping
// before the cluster that would exceed maxWidth.
func SliceFromEnd(s string, maxWidth int) string {
	if maxWidth <= 0 || s == "" {
		return ""
	}
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	w := 0
	start := len(clusters)
	for i := len(clusters) - 1; i >= 0; i-- {
		cw := clusterWidth(clusters[i], narrowCond)
		if w+cw > maxWidth {
			break
		}
		w += cw
		start = i
	}
	return strings.Join(clusters[start:], "")
}

// measureText returns the widest line and the line count of text.
func measureText(text string) (width, height int) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if w := StringWidth(line); w > width {
			width = w
		}
	}
	return width, len(lines)
}
