// Package quill is a terminal rendering engine: a styled node tree laid
// out with flexbox, composited into ANSI frame strings and repainted in
// place.
//
// The pipeline has four stages. Nodes created with NewRoot, NewBox,
// NewText and NewVirtualText form a tree whose styles are mirrored into
// a flexbox engine. Render lays the tree out for a target width and
// walks it, writing styled text runs into an Output grid. The grid
// serializes each row with minimal style transitions between cells.
// A Refresher diffs consecutive frames and erases exactly the lines of
// the previous one before writing the next.
//
// Width arithmetic is grapheme-cluster based throughout: double-width
// East Asian glyphs occupy two columns, zero-width characters none, and
// ANSI escape sequences never count. The helpers StringWidth, WrapText,
// Truncate and SliceANSI are exported for callers composing their own
// text.
//
// Rendering is single-threaded by contract: one logical render loop per
// Refresher, and tree mutation never overlaps a Render call.
package quill
