package terminal

import "testing"

func TestTextBufferWriteAtAndRead(t *testing.T) {
	tb := NewTextBuffer(3, 6, Renditions{})
	if _, _, err := tb.WriteAt(1, 0, "hello"); err != nil {
		t.Fatal(err)
	}
	if got := tb.GetRow(1).GetText(); got != "hello " {
		t.Fatalf("row 1 text = %q, want %q", got, "hello ")
	}
	if got := tb.GetRow(0).GetText(); got != "      " {
		t.Fatalf("row 0 should be untouched, got %q", got)
	}
}

func TestTextBufferGetRowClamps(t *testing.T) {
	tb := NewTextBuffer(2, 4, Renditions{})
	if tb.GetRow(-5) != tb.GetRow(0) {
		t.Fatalf("GetRow(-5) should clamp to row 0")
	}
	if tb.GetRow(50) != tb.GetRow(1) {
		t.Fatalf("GetRow(50) should clamp to the last row")
	}
}

func TestTextBufferScrollUp(t *testing.T) {
	tb := NewTextBuffer(3, 4, Renditions{})
	for i := 0; i < 3; i++ {
		if _, _, err := tb.WriteAt(i, 0, string(rune('a'+i))); err != nil {
			t.Fatal(err)
		}
	}
	tb.Scroll(1)
	if got := tb.GetRow(0).GetText(); got != "b   " {
		t.Fatalf("row 0 after Scroll(1) = %q, want %q", got, "b   ")
	}
	if got := tb.GetRow(1).GetText(); got != "c   " {
		t.Fatalf("row 1 after Scroll(1) = %q, want %q", got, "c   ")
	}
	if got := tb.GetRow(2).GetText(); got != "    " {
		t.Fatalf("row 2 after Scroll(1) should be blank, got %q", got)
	}
}

func TestTextBufferScrollDown(t *testing.T) {
	tb := NewTextBuffer(3, 4, Renditions{})
	if _, _, err := tb.WriteAt(0, 0, "a"); err != nil {
		t.Fatal(err)
	}
	tb.Scroll(-1)
	if got := tb.GetRow(0).GetText(); got != "    " {
		t.Fatalf("row 0 after Scroll(-1) should be blank, got %q", got)
	}
	if got := tb.GetRow(1).GetText(); got != "a   " {
		t.Fatalf("row 1 after Scroll(-1) = %q, want %q", got, "a   ")
	}
}

func TestTextBufferInsertLine(t *testing.T) {
	tb := NewTextBuffer(4, 3, Renditions{})
	for i := 0; i < 4; i++ {
		if _, _, err := tb.WriteAt(i, 0, string(rune('a'+i))); err != nil {
			t.Fatal(err)
		}
	}
	if !tb.InsertLine(1, 2) {
		t.Fatalf("InsertLine(1, 2) = false, want true")
	}
	want := []string{"a  ", "   ", "   ", "b  "}
	for i, w := range want {
		if got := tb.GetRow(i).GetText(); got != w {
			t.Fatalf("row %d = %q, want %q", i, got, w)
		}
	}
}

func TestTextBufferInsertLineClampsCount(t *testing.T) {
	tb := NewTextBuffer(3, 2, Renditions{})
	if !tb.InsertLine(2, 10) {
		t.Fatalf("InsertLine at the last row should still succeed")
	}
	if tb.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3 (row count stays fixed)", tb.Rows())
	}
}

func TestTextBufferDeleteLine(t *testing.T) {
	tb := NewTextBuffer(4, 3, Renditions{})
	for i := 0; i < 4; i++ {
		if _, _, err := tb.WriteAt(i, 0, string(rune('a'+i))); err != nil {
			t.Fatal(err)
		}
	}
	if !tb.DeleteLine(1, 2) {
		t.Fatalf("DeleteLine(1, 2) = false, want true")
	}
	want := []string{"a  ", "d  ", "   ", "   "}
	for i, w := range want {
		if got := tb.GetRow(i).GetText(); got != w {
			t.Fatalf("row %d = %q, want %q", i, got, w)
		}
	}
}

func TestTextBufferResizeCols(t *testing.T) {
	tb := NewTextBuffer(2, 4, Renditions{})
	if _, _, err := tb.WriteAt(0, 0, "ab"); err != nil {
		t.Fatal(err)
	}
	tb.Resize(2, 6)
	if got := tb.GetRow(0).GetText(); got != "ab    " {
		t.Fatalf("row 0 after widening = %q, want %q", got, "ab    ")
	}
	if tb.Cols() != 6 {
		t.Fatalf("Cols() = %d, want 6", tb.Cols())
	}
}

func TestTextBufferResizeRows(t *testing.T) {
	tb := NewTextBuffer(2, 3, Renditions{})
	tb.Resize(4, 3)
	if tb.Rows() != 4 {
		t.Fatalf("Rows() = %d, want 4", tb.Rows())
	}
	tb.Resize(1, 3)
	if tb.Rows() != 1 {
		t.Fatalf("Rows() = %d, want 1", tb.Rows())
	}
}

func TestTextBufferReset(t *testing.T) {
	tb := NewTextBuffer(2, 3, Renditions{})
	if _, _, err := tb.WriteAt(0, 0, "ab"); err != nil {
		t.Fatal(err)
	}
	tb.Reset(Renditions{})
	if got := tb.GetRow(0).GetText(); got != "   " {
		t.Fatalf("row 0 after Reset = %q, want blank", got)
	}
}
