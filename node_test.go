package quill

import (
	"strings"
	"testing"
)

func TestTreeConstruction(t *testing.T) {
	t.Run("EveryKindButVirtualOwnsLayout", func(t *testing.T) {
		fe := useFakeEngine(t)
		root := NewRoot()
		box := NewBox(nil)
		text := NewText(nil)
		virtual := NewVirtualText("hi")

		if root.Layout == nil || box.Layout == nil || text.Layout == nil {
			t.Fatal("missing layout handle")
		}
		if virtual.Layout != nil {
			t.Error("virtual text must not own a layout handle")
		}
		if len(fe.nodes) != 3 {
			t.Errorf("engine nodes = %d, want 3", len(fe.nodes))
		}
	})

	t.Run("TextRegistersMeasureFunc", func(t *testing.T) {
		useFakeEngine(t)
		text := NewText(nil)
		text.Value = "hello"
		fn := text.Layout.(*fakeNode).measure
		if fn == nil {
			t.Fatal("no measure func registered")
		}
		out := fn(80)
		if out.Width != 5 || out.Height != 1 {
			t.Errorf("measure = %+v", out)
		}
	})
}

func TestAppendChild(t *testing.T) {
	t.Run("MirrorsIntoLayoutTree", func(t *testing.T) {
		useFakeEngine(t)
		parent := NewBox(nil)
		a := NewBox(nil)
		b := NewBox(nil)
		AppendChild(parent, a)
		AppendChild(parent, b)

		pn := parent.Layout.(*fakeNode)
		if len(pn.children) != 2 {
			t.Fatalf("layout children = %d", len(pn.children))
		}
		if pn.children[0] != a.Layout.(*fakeNode) || pn.children[1] != b.Layout.(*fakeNode) {
			t.Error("layout child order does not match tree order")
		}
	})

	t.Run("VirtualTextSkippedInLayoutIndex", func(t *testing.T) {
		useFakeEngine(t)
		parent := NewText(nil)
		AppendChild(parent, NewVirtualText("a"))
		box := NewBox(nil)
		AppendChild(parent, box)

		pn := parent.Layout.(*fakeNode)
		if len(pn.children) != 1 {
			t.Fatalf("layout children = %d, want 1", len(pn.children))
		}
		if pn.children[0] != box.Layout.(*fakeNode) {
			t.Error("box should be layout child 0")
		}
	})

	t.Run("ReparentDetachesFirst", func(t *testing.T) {
		useFakeEngine(t)
		p1 := NewBox(nil)
		p2 := NewBox(nil)
		c := NewBox(nil)
		AppendChild(p1, c)
		AppendChild(p2, c)

		if len(p1.Children) != 0 {
			t.Errorf("old parent still has %d children", len(p1.Children))
		}
		if len(p1.Layout.(*fakeNode).children) != 0 {
			t.Error("old layout parent still has children")
		}
		if c.Parent != p2 || len(p2.Children) != 1 {
			t.Error("child not attached to new parent")
		}
		if len(p2.Layout.(*fakeNode).children) != 1 {
			t.Error("new layout parent missing child")
		}
	})

	t.Run("SelfAppendIgnored", func(t *testing.T) {
		useFakeEngine(t)
		n := NewBox(nil)
		AppendChild(n, n)
		if len(n.Children) != 0 {
			t.Error("node appended to itself")
		}
	})

	t.Run("TextParentMarkedDirty", func(t *testing.T) {
		useFakeEngine(t)
		text := NewText(nil)
		before := text.Layout.(*fakeNode).dirty
		AppendChild(text, NewVirtualText("x"))
		if text.Layout.(*fakeNode).dirty <= before {
			t.Error("appending inline text did not mark the owner dirty")
		}
	})
}

func TestRemoveChild(t *testing.T) {
	useFakeEngine(t)
	parent := NewBox(nil)
	c := NewBox(nil)
	AppendChild(parent, c)
	RemoveChild(parent, c)

	if len(parent.Children) != 0 || c.Parent != nil {
		t.Error("child not detached")
	}
	if len(parent.Layout.(*fakeNode).children) != 0 {
		t.Error("layout child not removed")
	}

	// Removing a non-child is a no-op.
	RemoveChild(parent, NewBox(nil))
}

func TestDestroy(t *testing.T) {
	useFakeEngine(t)
	root := NewBox(nil)
	child := NewText(nil)
	AppendChild(root, child)
	cn := child.Layout.(*fakeNode)
	rn := root.Layout.(*fakeNode)

	Destroy(root)
	if !cn.freed || !rn.freed {
		t.Error("layout handles not freed")
	}
	if root.Layout != nil || child.Layout != nil {
		t.Error("handles not cleared")
	}
}

func TestSetValue(t *testing.T) {
	useFakeEngine(t)
	text := NewText(nil)
	virtual := NewVirtualText("")
	AppendChild(text, virtual)

	// SetValue on the inline run must dirty the owning text node.
	before := text.Layout.(*fakeNode).dirty
	virtual.SetValue("updated")
	if text.Layout.(*fakeNode).dirty <= before {
		t.Error("owner not marked dirty")
	}
	if TextContent(text) != "updated" {
		t.Errorf("content = %q", TextContent(text))
	}
}

func TestTextContent(t *testing.T) {
	t.Run("ConcatenatesDepthFirst", func(t *testing.T) {
		useFakeEngine(t)
		text := NewText(nil)
		text.Value = "a"
		AppendChild(text, NewVirtualText("b"))
		inner := NewVirtualText("")
		AppendChild(inner, NewVirtualText("c"))
		AppendChild(text, inner)

		if got := TextContent(text); got != "abc" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("AppliesChildTransformWithSiblingIndex", func(t *testing.T) {
		useFakeEngine(t)
		text := NewText(nil)
		a := NewVirtualText("a")
		b := NewVirtualText("b")
		b.Transform = func(s string, index int) string {
			return strings.ToUpper(s) + string(rune('0'+index))
		}
		AppendChild(text, a)
		AppendChild(text, b)

		if got := TextContent(text); got != "aB1" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("SkipsBoxChildren", func(t *testing.T) {
		useFakeEngine(t)
		text := NewText(nil)
		text.Value = "x"
		AppendChild(text, NewBox(nil))
		if got := TextContent(text); got != "x" {
			t.Errorf("got %q", got)
		}
	})
}

func TestMeasureTextNode(t *testing.T) {
	useFakeEngine(t)

	t.Run("NaturalSizeWhenFits", func(t *testing.T) {
		n := NewText(nil)
		n.Value = "hello"
		out := measureTextNode(n, 10)
		if out.Width != 5 || out.Height != 1 {
			t.Errorf("got %+v", out)
		}
	})

	t.Run("WrapsWhenTooWide", func(t *testing.T) {
		n := NewText(nil)
		n.Value = "hello world"
		out := measureTextNode(n, 6)
		if out.Height != 2 {
			t.Errorf("height = %d, want 2", out.Height)
		}
		if out.Width > 6 {
			t.Errorf("width = %d, want <= 6", out.Width)
		}
	})

	t.Run("TruncateModeStaysOneLine", func(t *testing.T) {
		n := NewText(Style{"textWrap": "truncate"})
		n.Value = "hello world"
		out := measureTextNode(n, 6)
		if out.Height != 1 {
			t.Errorf("height = %d, want 1", out.Height)
		}
		if out.Width > 6 {
			t.Errorf("width = %d", out.Width)
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		n := NewText(nil)
		out := measureTextNode(n, 10)
		if out != (MeasureOutput{}) {
			t.Errorf("got %+v", out)
		}
	})
}
