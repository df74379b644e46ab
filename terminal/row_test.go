package terminal

import "testing"

// checkRowInvariants asserts the row-wide invariants that must hold after
// every public mutation: offsets bracket the char buffer correctly, are
// monotonic except across trailers, and the attribute store still covers
// exactly the row's width.
func checkRowInvariants(t *testing.T, r *Row) {
	t.Helper()
	w := r.Width()

	if r.offsets[0] != 0 {
		t.Fatalf("offsets[0] = %d, want 0", r.offsets[0])
	}
	if got := int(r.offsets[w] & offsetValueMask); got != len(r.chars) {
		t.Fatalf("offsets[W] = %d, want %d (len(chars))", got, len(r.chars))
	}
	if r.offsets[w]&offsetTrailerBit != 0 {
		t.Fatalf("offsets[W] has TRAILER set")
	}
	for i := 1; i <= w; i++ {
		prev := r.offsets[i-1] & offsetValueMask
		cur := r.offsets[i] & offsetValueMask
		if cur < prev {
			t.Fatalf("offsets not monotonic at column %d: %d < %d", i, cur, prev)
		}
		if cur == prev && r.offsets[i]&offsetTrailerBit == 0 {
			t.Fatalf("offsets[%d] == offsets[%d] without TRAILER set", i, i-1)
		}
	}
	if got := r.attr.totalCount(); got != w {
		t.Fatalf("attribute run total = %d, want %d", got, w)
	}
}

func sumIteratedCols(r *Row) int {
	total := 0
	it := r.Iterator()
	for it.Next() {
		total += it.Cols()
	}
	return total
}

// S1: a plain ASCII write that leaves the row's last column untouched.
func TestReplaceCharactersBasic(t *testing.T) {
	r := NewRow(6, Renditions{})
	end, rest, err := r.ReplaceCharacters(0, 6, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if rest != "" {
		t.Fatalf("rest = %q, want empty", rest)
	}
	if end != 5 {
		t.Fatalf("end = %d, want 5", end)
	}
	if got := r.GetText(); got != "hello " {
		t.Fatalf("text = %q, want %q", got, "hello ")
	}
	checkRowInvariants(t, r)
}

// S2: overwriting the trailing half of one wide glyph and the leading half
// of the next evicts both, padding each side with a single space.
func TestReplaceCharactersEvictsPartiallyOverwrittenWideGlyphs(t *testing.T) {
	r := NewRow(6, Renditions{})
	// Build three wide glyphs spanning columns (0,1) (2,3) (4,5).
	for i, g := range []string{"一", "二", "三"} {
		if _, _, err := r.ReplaceCharacters(i*2, i*2+2, g); err != nil {
			t.Fatal(err)
		}
	}
	checkRowInvariants(t, r)
	if r.DbcsAttrAt(1) != DbcsTrailing || r.DbcsAttrAt(3) != DbcsTrailing {
		t.Fatalf("expected trailers at columns 1 and 3 before the overwrite")
	}

	end, rest, err := r.ReplaceCharacters(1, 3, "中") // a single wide glyph
	if err != nil {
		t.Fatal(err)
	}
	if rest != "" {
		t.Fatalf("rest = %q, want empty", rest)
	}
	checkRowInvariants(t, r)

	if r.WasDoubleBytePadded() {
		t.Fatalf("dbcs_padded should be false, the new glyph fit")
	}
	// column 0 must have been evicted down to a lone space (leading
	// half of the old glyph at columns 0-1).
	if glyph := r.GlyphAt(0); glyph != " " {
		t.Fatalf("GlyphAt(0) = %q, want a single space", glyph)
	}
	// the new wide glyph occupies two adjacent columns starting
	// somewhere in [1,4), and end marks the column just past it plus
	// any right-edge eviction padding.
	if end <= 1 || end > 4 {
		t.Fatalf("end = %d, want in (1,4]", end)
	}
	// the third glyph, entirely to the right of the write, survives.
	if glyph := r.GlyphAt(4); glyph != "三" {
		t.Fatalf("GlyphAt(4) = %q, want the untouched third glyph", glyph)
	}
	if sumIteratedCols(r) != 6 {
		t.Fatalf("iterate() column spans must sum to W")
	}
}

// S3: a base character followed by a combining mark forms one grapheme
// cluster occupying a single column, spanning two code points (three bytes).
func TestReplaceCharactersCombiningMark(t *testing.T) {
	r := NewRow(6, Renditions{})
	text := "a\u0301b" // 'a' + combining acute accent, then 'b'
	end, rest, err := r.ReplaceCharacters(0, 6, text)
	if err != nil {
		t.Fatal(err)
	}
	if rest != "" {
		t.Fatalf("rest = %q, want empty", rest)
	}
	if end != 2 {
		t.Fatalf("end = %d, want 2 (two single-width clusters)", end)
	}
	if got := r.GlyphAt(0); got != "a\u0301" {
		t.Fatalf("GlyphAt(0) = %q, want %q", got, "a\u0301")
	}
	if got := r.GlyphAt(1); got != "b" {
		t.Fatalf("GlyphAt(1) = %q, want %q", got, "b")
	}
	checkRowInvariants(t, r)
}

// S4: a wide glyph offered one column short of the row's right edge is
// rejected; dbcs_padded is set and the column is left as a space.
func TestReplaceCharactersWideGlyphDoesNotFit(t *testing.T) {
	r := NewRow(6, Renditions{})
	end, rest, err := r.ReplaceCharacters(5, 6, "一")
	if err != nil {
		t.Fatal(err)
	}
	if !r.WasDoubleBytePadded() {
		t.Fatalf("expected dbcs_padded to be set")
	}
	if end != 6 {
		t.Fatalf("end = %d, want 6", end)
	}
	if rest != "一" {
		t.Fatalf("rest = %q, want the whole unconsumed glyph", rest)
	}
	if got := r.GlyphAt(5); got != " " {
		t.Fatalf("GlyphAt(5) = %q, want a space", got)
	}
	checkRowInvariants(t, r)
}

// S5: a surrogate-pair-wide emoji between two ASCII letters.
func TestReplaceCharactersWideEmojiBetweenAsciiLetters(t *testing.T) {
	r := NewRow(4, Renditions{})
	end, rest, err := r.ReplaceCharacters(0, 4, "a\U0001F600b")
	if err != nil {
		t.Fatal(err)
	}
	if rest != "" {
		t.Fatalf("rest = %q, want empty", rest)
	}
	if end != 4 {
		t.Fatalf("end = %d, want 4", end)
	}
	if got := r.GlyphAt(0); got != "a" {
		t.Fatalf("GlyphAt(0) = %q, want %q", got, "a")
	}
	if r.DbcsAttrAt(1) != DbcsLeading || r.DbcsAttrAt(2) != DbcsTrailing {
		t.Fatalf("expected the emoji to occupy columns 1-2 as a wide glyph")
	}
	if got := r.GlyphAt(3); got != "b" {
		t.Fatalf("GlyphAt(3) = %q, want %q", got, "b")
	}
	checkRowInvariants(t, r)
}

// S6: measure_right reports one past the last non-space column even when
// that column is the trailing half of a wide glyph.
func TestMeasureRightAccountsForWideTrailer(t *testing.T) {
	r := NewRow(6, Renditions{})
	if _, _, err := r.ReplaceCharacters(0, 2, "一"); err != nil {
		t.Fatal(err)
	}
	if got := r.MeasureRight(); got != 2 {
		t.Fatalf("MeasureRight() = %d, want 2", got)
	}
}

func TestMeasureLeftAllBlank(t *testing.T) {
	r := NewRow(6, Renditions{})
	if got := r.MeasureLeft(); got != 6 {
		t.Fatalf("MeasureLeft() = %d, want 6 (width) on a blank row", got)
	}
	if r.ContainsText() {
		t.Fatalf("ContainsText() should be false on a blank row")
	}
}

func TestReplaceCharactersNoOp(t *testing.T) {
	r := NewRow(6, Renditions{})
	before := r.GetText()
	end, rest, err := r.ReplaceCharacters(3, 3, "x")
	if err != nil {
		t.Fatal(err)
	}
	if end != 3 || rest != "x" {
		t.Fatalf("no-op call should return colBegin and the untouched text")
	}
	if r.GetText() != before {
		t.Fatalf("row text mutated by a no-op call")
	}
}

func TestReplaceCharactersIdempotent(t *testing.T) {
	r := NewRow(8, Renditions{})
	if _, _, err := r.ReplaceCharacters(1, 6, "abc一"); err != nil {
		t.Fatal(err)
	}
	first := r.GetText()
	firstOffsets := append([]uint16{}, r.offsets...)

	if _, _, err := r.ReplaceCharacters(1, 6, "abc一"); err != nil {
		t.Fatal(err)
	}
	if r.GetText() != first {
		t.Fatalf("text changed on an idempotent replay: %q vs %q", r.GetText(), first)
	}
	for i, o := range r.offsets {
		if o != firstOffsets[i] {
			t.Fatalf("offsets changed on an idempotent replay at column %d", i)
		}
	}
	checkRowInvariants(t, r)
}

func TestIteratorTotality(t *testing.T) {
	r := NewRow(10, Renditions{})
	if _, _, err := r.ReplaceCharacters(0, 10, "hi一there二"); err != nil {
		t.Fatal(err)
	}
	if sumIteratedCols(r) != 10 {
		t.Fatalf("iterate() column spans must sum to width")
	}
}

func TestResizeNoOpWhenWidthUnchanged(t *testing.T) {
	r := NewRow(6, Renditions{})
	if _, _, err := r.ReplaceCharacters(0, 6, "abcdef"); err != nil {
		t.Fatal(err)
	}
	before := r.GetText()
	r.Resize(6, Renditions{})
	if r.GetText() != before {
		t.Fatalf("Resize to the same width must be a no-op")
	}
}

func TestResizeGrowPadsWithSpacesAndPreservesAttributes(t *testing.T) {
	r := NewRow(4, Renditions{})
	red := Renditions{}
	red.SetForegroundColor(1)
	r.ReplaceAttributes(0, 4, red)
	if _, _, err := r.ReplaceCharacters(0, 4, "abcd"); err != nil {
		t.Fatal(err)
	}
	r.Resize(6, Renditions{})
	if r.Width() != 6 {
		t.Fatalf("Width() = %d, want 6", r.Width())
	}
	if got := r.GetText(); got != "abcd  " {
		t.Fatalf("text = %q, want %q", got, "abcd  ")
	}
	if got := r.GetAttrByColumn(0); got != red {
		t.Fatalf("attribute at column 0 was not preserved across resize")
	}
	checkRowInvariants(t, r)
}

func TestResizeShrinkDropsTrailingColumns(t *testing.T) {
	r := NewRow(6, Renditions{})
	if _, _, err := r.ReplaceCharacters(0, 6, "abcdef"); err != nil {
		t.Fatal(err)
	}
	r.Resize(4, Renditions{})
	if got := r.GetText(); got != "abcd" {
		t.Fatalf("text = %q, want %q", got, "abcd")
	}
	checkRowInvariants(t, r)
}

func TestHyperlinkRoundTrip(t *testing.T) {
	r := NewRow(4, Renditions{})
	attr := r.AddHyperlink(Renditions{}, "https://example.com")
	r.ReplaceAttributes(0, 2, attr)
	links := r.GetHyperlinks()
	if len(links) != 1 {
		t.Fatalf("GetHyperlinks() = %v, want exactly one ID", links)
	}
	if url := r.HyperlinkURL(links[0]); url != "https://example.com" {
		t.Fatalf("HyperlinkURL() = %q, want the registered URL", url)
	}
}

func TestDelimiterClassAt(t *testing.T) {
	r := NewRow(4, Renditions{})
	if _, _, err := r.ReplaceCharacters(0, 4, "a.b"); err != nil {
		t.Fatal(err)
	}
	if got := r.DelimiterClassAt(0, "."); got != DelimiterRegular {
		t.Fatalf("DelimiterClassAt(0) = %v, want Regular", got)
	}
	if got := r.DelimiterClassAt(1, "."); got != DelimiterDelimiter {
		t.Fatalf("DelimiterClassAt(1) = %v, want Delimiter", got)
	}
	if got := r.DelimiterClassAt(3, "."); got != DelimiterControl {
		t.Fatalf("DelimiterClassAt(3) = %v, want Control (trailing space)", got)
	}
}

func TestPrecedingColumn(t *testing.T) {
	r := NewRow(4, Renditions{})
	if _, _, err := r.ReplaceCharacters(0, 2, "一"); err != nil {
		t.Fatal(err)
	}
	if got := r.PrecedingColumn(1); got != 0 {
		t.Fatalf("PrecedingColumn(1) = %d, want 0 (the wide glyph's leading column)", got)
	}
}

func TestRowEqual(t *testing.T) {
	a := NewRow(5, Renditions{})
	b := NewRow(5, Renditions{})
	if !a.Equal(b) {
		t.Fatalf("two freshly constructed rows of the same width should be equal")
	}
	if _, _, err := a.ReplaceCharacters(0, 5, "hi"); err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Fatalf("rows with different text should not be equal")
	}
}
