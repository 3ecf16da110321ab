package transcript

import "testing"

// testContainer mirrors a rendered message: an injected header, body text,
// and an injected trailing badge.
func testContainer() *Container {
	return NewContainer("m-1",
		OwnedUI("◆ assistant · 10:32"),
		Text("The quick brown fox"),
		OwnedUI(" ★"),
	)
}

func TestVisibleTextExcludesOwnedUI(t *testing.T) {
	c := testContainer()
	if got := c.VisibleText(); got != "The quick brown fox" {
		t.Fatalf("VisibleText = %q", got)
	}
	if got := c.VisibleLen(); got != 19 {
		t.Fatalf("VisibleLen = %d, want 19", got)
	}
}

func TestOffsetAtSkipsOwnedSegments(t *testing.T) {
	c := testContainer()

	// Start of the body segment is visible offset 0 despite the header.
	off, ok := c.OffsetAt(Position{Seg: 1, Off: 0})
	if !ok || off != 0 {
		t.Errorf("OffsetAt(body start) = %d, %v", off, ok)
	}

	// "quick" starts at rune 4 of the body.
	off, ok = c.OffsetAt(Position{Seg: 1, Off: 4})
	if !ok || off != 4 {
		t.Errorf("OffsetAt(body+4) = %d, %v", off, ok)
	}

	// A boundary inside the trailing badge measures at the badge start.
	off, ok = c.OffsetAt(Position{Seg: 2, Off: 1})
	if !ok || off != 19 {
		t.Errorf("OffsetAt(badge interior) = %d, %v", off, ok)
	}

	// Out-of-range positions fail.
	if _, ok := c.OffsetAt(Position{Seg: 5, Off: 0}); ok {
		t.Error("OffsetAt accepted an out-of-range segment")
	}
	if _, ok := c.OffsetAt(Position{Seg: 1, Off: 100}); ok {
		t.Error("OffsetAt accepted an out-of-range rune offset")
	}
}

func TestResolveWalksVisibleSegments(t *testing.T) {
	c := testContainer()

	pos, ok := c.Resolve(4)
	if !ok || pos != (Position{Seg: 1, Off: 4}) {
		t.Errorf("Resolve(4) = %+v, %v", pos, ok)
	}

	// Offset equal to total visible length resolves to the end of the last
	// visible segment, not into the trailing badge.
	pos, ok = c.Resolve(19)
	if !ok || pos != (Position{Seg: 1, Off: 19}) {
		t.Errorf("Resolve(19) = %+v, %v", pos, ok)
	}

	if _, ok := c.Resolve(-1); ok {
		t.Error("Resolve accepted a negative offset")
	}
	if _, ok := c.Resolve(20); ok {
		t.Error("Resolve accepted an out-of-range offset")
	}
}

func TestForwardInverseAgree(t *testing.T) {
	c := NewContainer("m-2",
		OwnedUI("[hdr]"),
		Text("Héllo, "),
		OwnedUI("⚑"),
		Text("wörld"),
	)
	total := c.VisibleLen()
	if total != 12 {
		t.Fatalf("VisibleLen = %d, want 12", total)
	}
	for off := 0; off <= total; off++ {
		pos, ok := c.Resolve(off)
		if !ok {
			t.Fatalf("Resolve(%d) failed", off)
		}
		back, ok := c.OffsetAt(pos)
		if !ok || back != off {
			t.Fatalf("OffsetAt(Resolve(%d)) = %d, %v", off, back, ok)
		}
	}
}

func TestSpanOffsetsRejectsEmptyAndInverted(t *testing.T) {
	c := testContainer()

	s, e, ok := c.SpanOffsets(Position{Seg: 1, Off: 4}, Position{Seg: 1, Off: 9})
	if !ok || s != 4 || e != 9 {
		t.Errorf("SpanOffsets = [%d,%d) %v, want [4,9)", s, e, ok)
	}

	if _, _, ok := c.SpanOffsets(Position{Seg: 1, Off: 9}, Position{Seg: 1, Off: 9}); ok {
		t.Error("SpanOffsets accepted a collapsed span")
	}
	if _, _, ok := c.SpanOffsets(Position{Seg: 1, Off: 9}, Position{Seg: 1, Off: 4}); ok {
		t.Error("SpanOffsets accepted an inverted span")
	}
}

func TestSliceVisible(t *testing.T) {
	c := testContainer()
	if got := c.SliceVisible(4, 9); got != "quick" {
		t.Errorf("SliceVisible(4,9) = %q", got)
	}
	if got := c.SliceVisible(-3, 3); got != "The" {
		t.Errorf("SliceVisible(-3,3) = %q", got)
	}
	if got := c.SliceVisible(25, 30); got != "" {
		t.Errorf("SliceVisible out of range = %q", got)
	}
}

func TestIsOwned(t *testing.T) {
	c := testContainer()
	if !c.IsOwned(Position{Seg: 0, Off: 2}) {
		t.Error("header position not reported as owned")
	}
	if c.IsOwned(Position{Seg: 1, Off: 2}) {
		t.Error("body position reported as owned")
	}
}

func TestResolveNoVisibleText(t *testing.T) {
	c := NewContainer("m-3", OwnedUI("only chrome"))
	if _, ok := c.Resolve(0); ok {
		t.Error("Resolve succeeded on a container with no visible text")
	}
}
