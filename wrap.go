package quill

import "strings"

// WrapOptions control WrapText.
type WrapOptions struct {
	// Trim removes whitespace introduced at wrap points.
	Trim bool
	// Hard splits words wider than the column limit across lines instead
	// of letting them overflow on a line of their own.
	Hard bool
	// WordWrap wraps overflowing words onto new lines. When false, each
	// input line is truncated at the column limit instead.
	WordWrap bool
}

// WrapText wraps each input line of text to the given column count.
// Words are split on single spaces; a word wider than columns is forced
// onto its own line, or hard-split when opts.Hard is set. An oversized
// single cluster that still exceeds columns is emitted alone.
func WrapText(text string, columns int, opts WrapOptions) string {
	if columns <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		wrapLine(line, columns, opts, &out)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, columns int, opts WrapOptions, out *[]string) {
	if StringWidth(line) <= columns {
		if opts.Trim {
			line = strings.TrimRight(line, " ")
		}
		*out = append(*out, line)
		return
	}

	var cur strings.Builder
	curW := 0
	flush := func() {
		s := cur.String()
		if opts.Trim {
			s = strings.TrimRight(s, " ")
		}
		*out = append(*out, s)
		cur.Reset()
		curW = 0
	}
	add := func(piece string, w int) {
		if curW > 0 {
			cur.WriteString(" ")
			curW++
		}
		cur.WriteString(piece)
		curW += w
	}

	for _, word := range strings.Split(line, " ") {
		wW := StringWidth(word)
		sep := 0
		if curW > 0 {
			sep = 1
		}
		switch {
		case curW+sep+wW <= columns:
			add(word, wW)

		case !opts.WordWrap:
			// Truncate: fill what fits and drop the rest of the line.
			if avail := columns - curW - sep; avail > 0 {
				if piece := SliceToWidth(word, avail); piece != "" {
					add(piece, StringWidth(piece))
				}
			}
			flush()
			return

		case wW > columns && opts.Hard:
			rest := word
			for rest != "" {
				sep = 0
				if curW > 0 {
					sep = 1
				}
				avail := columns - curW - sep
				if avail <= 0 {
					flush()
					continue
				}
				piece := SliceToWidth(rest, avail)
				if piece == "" {
					if curW > 0 {
						flush()
						continue
					}
					// Single cluster wider than the line; emit it alone.
					piece = firstCluster(rest)
				}
				add(piece, StringWidth(piece))
				rest = rest[len(piece):]
			}

		default:
			// Word gets its own line; soft mode lets it overflow there.
			flush()
			add(word, wW)
		}
	}
	flush()
}

// TruncatePosition selects which end of the string Truncate removes.
type TruncatePosition uint8

const (
	TruncateEnd TruncatePosition = iota
	TruncateStart
	TruncateMiddle
)

// TruncateOptions control Truncate.
type TruncateOptions struct {
	Position TruncatePosition
	// Ellipsis replaces the removed span. Defaults to "…".
	Ellipsis string
}

// Truncate shortens s to at most maxWidth columns, reserving room for the
// ellipsis and slicing the remainder according to the position.
func Truncate(s string, maxWidth int, opts TruncateOptions) string {
	if maxWidth <= 0 {
		return ""
	}
	if StringWidth(s) <= maxWidth {
		return s
	}
	ellipsis := opts.Ellipsis
	if ellipsis == "" {
		ellipsis = "…"
	}
	ellW := StringWidth(ellipsis)
	if maxWidth <= ellW {
		return SliceToWidth(s, maxWidth)
	}
	remaining := maxWidth - ellW
	switch opts.Position {
	case TruncateStart:
		return ellipsis + SliceFromEnd(s, remaining)
	case TruncateMiddle:
		tail := remaining / 2
		head := remaining - tail
		return SliceToWidth(s, head) + ellipsis + SliceFromEnd(s, tail)
	default:
		return SliceToWidth(s, remaining) + ellipsis
	}
}
