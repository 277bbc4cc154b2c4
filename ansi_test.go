package quill

import (
	"strings"
	"testing"
)

func TestParseANSI(t *testing.T) {
	t.Run("PlainText", func(t *testing.T) {
		toks := parseANSI("ab")
		if len(toks) != 2 || toks[0].char != "a" || toks[1].char != "b" {
			t.Fatalf("got %+v", toks)
		}
		for _, tok := range toks {
			if tok.isStyle || tok.width != 1 {
				t.Errorf("unexpected token %+v", tok)
			}
		}
	})

	t.Run("StyleTokens", func(t *testing.T) {
		toks := parseANSI("\x1b[31mx\x1b[39m")
		if len(toks) != 3 {
			t.Fatalf("got %d tokens: %+v", len(toks), toks)
		}
		if !toks[0].isStyle || toks[0].style.Code != "\x1b[31m" || toks[0].style.End != "\x1b[39m" {
			t.Errorf("open token = %+v", toks[0])
		}
		if toks[1].char != "x" {
			t.Errorf("char token = %+v", toks[1])
		}
	})

	t.Run("FullWidthTagged", func(t *testing.T) {
		toks := parseANSI("你a")
		if len(toks) != 2 {
			t.Fatalf("got %+v", toks)
		}
		if toks[0].width != 2 || toks[1].width != 1 {
			t.Errorf("widths = %d, %d", toks[0].width, toks[1].width)
		}
	})

	t.Run("NonSGRDropped", func(t *testing.T) {
		toks := parseANSI("a\x1b[2Kb")
		if len(toks) != 2 || toks[0].char != "a" || toks[1].char != "b" {
			t.Fatalf("got %+v", toks)
		}
	})

	t.Run("EndCodes", func(t *testing.T) {
		tests := []struct {
			seq string
			end string
		}{
			{"\x1b[1m", "\x1b[22m"},
			{"\x1b[2m", "\x1b[22m"},
			{"\x1b[3m", "\x1b[23m"},
			{"\x1b[4m", "\x1b[24m"},
			{"\x1b[7m", "\x1b[27m"},
			{"\x1b[9m", "\x1b[29m"},
			{"\x1b[31m", "\x1b[39m"},
			{"\x1b[97m", "\x1b[39m"},
			{"\x1b[41m", "\x1b[49m"},
			{"\x1b[103m", "\x1b[49m"},
			{"\x1b[38;5;196m", "\x1b[39m"},
			{"\x1b[0m", ""},
		}
		for _, tt := range tests {
			if got := sgrEndCode(tt.seq); got != tt.end {
				t.Errorf("sgrEndCode(%q) = %q, want %q", tt.seq, got, tt.end)
			}
		}
	})
}

func TestStyleStack(t *testing.T) {
	red := StyleToken{Code: "\x1b[31m", End: "\x1b[39m"}
	green := StyleToken{Code: "\x1b[32m", End: "\x1b[39m"}
	bold := StyleToken{Code: "\x1b[1m", End: "\x1b[22m"}
	reset := StyleToken{Code: sgrReset}

	t.Run("Push", func(t *testing.T) {
		var st styleStack
		st.apply(red)
		st.apply(bold)
		if len(st) != 2 {
			t.Fatalf("len = %d", len(st))
		}
	})

	t.Run("LastWriterWinsPerAxis", func(t *testing.T) {
		var st styleStack
		st.apply(red)
		st.apply(bold)
		st.apply(green)
		if len(st) != 2 {
			t.Fatalf("len = %d, want 2 (green evicts red)", len(st))
		}
		if st[len(st)-1] != green {
			t.Errorf("top = %+v", st[len(st)-1])
		}
		if containsToken(st, red) {
			t.Error("red should have been evicted")
		}
	})

	t.Run("ResetClears", func(t *testing.T) {
		var st styleStack
		st.apply(red)
		st.apply(bold)
		st.apply(reset)
		if len(st) != 0 {
			t.Fatalf("len = %d after reset", len(st))
		}
	})
}

// Re-parsing a serialized row must yield the same per-cell style stacks.
func TestStyleDeltaRoundTrip(t *testing.T) {
	inputs := []string{
		"\x1b[31mred\x1b[39m plain \x1b[1mbold\x1b[22m",
		"\x1b[31m\x1b[1mrb\x1b[0mplain",
		"\x1b[32mgreen\x1b[31mred\x1b[39m",
		"nostyle",
	}
	for _, in := range inputs {
		out := NewOutput(40, 1)
		out.Write(0, 0, in)
		frame, _ := out.Get()

		wantStyles := lineStyles(in)
		gotStyles := lineStyles(frame)
		if len(gotStyles) < len(wantStyles) {
			t.Fatalf("%q: re-parse lost cells: %d < %d", in, len(gotStyles), len(wantStyles))
		}
		for i := range wantStyles {
			if !sameTokens(wantStyles[i], gotStyles[i]) {
				t.Errorf("%q cell %d: styles %+v != %+v", in, i, gotStyles[i], wantStyles[i])
			}
		}
	}
}

// lineStyles returns the active style stack at each visible cell.
func lineStyles(line string) [][]StyleToken {
	var st styleStack
	var out [][]StyleToken
	for _, tok := range parseANSI(line) {
		if tok.isStyle {
			st.apply(tok.style)
			continue
		}
		if tok.width == 0 {
			continue
		}
		out = append(out, st.snapshot())
		for i := 1; i < tok.width; i++ {
			out = append(out, st.snapshot())
		}
	}
	return out
}

func sameTokens(a, b []StyleToken) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSliceANSI(t *testing.T) {
	t.Run("PlainRange", func(t *testing.T) {
		if got := SliceANSI("hello", 1, 4); got != "ell" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("ReopensStyles", func(t *testing.T) {
		in := "\x1b[31mhello\x1b[39m"
		got := SliceANSI(in, 1, 4)
		if StripANSI(got) != "ell" {
			t.Errorf("content = %q", StripANSI(got))
		}
		if !strings.HasPrefix(got, "\x1b[31m") {
			t.Errorf("slice should reopen red: %q", got)
		}
		if !strings.HasSuffix(got, "\x1b[39m") {
			t.Errorf("slice should close red: %q", got)
		}
	})

	t.Run("NeverSplitsWideCluster", func(t *testing.T) {
		// 你=cols [0,2), 好=[2,4). A slice at [1,3) fits neither.
		if got := SliceANSI("你好", 1, 3); StripANSI(got) != "" {
			t.Errorf("got %q", got)
		}
		if got := SliceANSI("你好", 0, 2); StripANSI(got) != "你" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("EmptyRange", func(t *testing.T) {
		if got := SliceANSI("abc", 2, 2); got != "" {
			t.Errorf("got %q", got)
		}
	})
}
