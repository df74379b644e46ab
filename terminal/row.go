/*

MIT License

Copyright (c) 2022 wangqi

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

package terminal

import (
	"errors"
	"fmt"
	"strings"
)

// DbcsAttribute labels a column's role in a wide-glyph pair.
type DbcsAttribute uint8

const (
	DbcsSingle DbcsAttribute = iota
	DbcsLeading
	DbcsTrailing
)

// DelimiterClass classifies a column for word-boundary detection.
type DelimiterClass uint8

const (
	DelimiterControl DelimiterClass = iota
	DelimiterDelimiter
	DelimiterRegular
)

// LineRendition selects single/double width and height rendering for a
// whole row. The row engine only stores the value; it has no bearing on
// ReplaceCharacters.
type LineRendition uint8

const (
	LineRenditionSingleWidth LineRendition = iota
	LineRenditionDoubleHeightTop
	LineRenditionDoubleHeightBottom
	LineRenditionDoubleWidth
)

const (
	offsetTrailerBit uint16 = 0x8000
	offsetValueMask  uint16 = 0x7FFF
	// maxCharBufferLen is the largest byte length addressable by the
	// 15-bit offset field once its high bit is reserved for the trailer
	// flag (see the design note on the trailer bit stealing bit 15).
	maxCharBufferLen = int(offsetValueMask)
)

// ErrRowOverflow is returned by ReplaceCharacters when a row's packed text
// would exceed the 15-bit offset field's addressable range. The row is
// reset to its last fill attribute before this error is returned.
var ErrRowOverflow = errors.New("terminal: row character buffer overflow")

var gen_counter uint64

func getGen() uint64 {
	gen_counter++
	return gen_counter
}

// Row is a fixed-width slice of a terminal's text buffer: width columns,
// each holding a narrow glyph, the leading half of a wide glyph, or the
// trailing half of one. Column text is packed into a single growable byte
// buffer (chars) addressed by a parallel column-offset index (offsets), so
// that the text at any column is a slice lookup rather than a per-cell
// allocation. The high bit of each offset entry flags a trailing column.
type Row struct {
	width   uint16
	chars   []byte
	offsets []uint16

	attr  *AttrRun
	links *hyperlinks

	lineRendition LineRendition
	wrapForced    bool
	dbcsPadded    bool

	fillAttr Renditions
	gen      uint64
}

// NewRow builds a row of width columns, filled with spaces under fill.
func NewRow(width uint16, fill Renditions) *Row {
	r := &Row{}
	r.init(width, fill)
	return r
}

func (r *Row) init(width uint16, fill Renditions) {
	r.width = width
	r.chars = make([]byte, width, width)
	for i := range r.chars {
		r.chars[i] = ' '
	}
	r.offsets = make([]uint16, int(width)+1)
	for i := range r.offsets {
		r.offsets[i] = uint16(i)
	}
	r.attr = newAttrRun(width, fill)
	r.links = newHyperlinks()
	r.lineRendition = LineRenditionSingleWidth
	r.wrapForced = false
	r.dbcsPadded = false
	r.fillAttr = fill
	r.gen = getGen()
}

// Reset returns the row to all-spaces under fill, dropping any heap spill.
func (r *Row) Reset(fill Renditions) {
	r.init(r.width, fill)
}

// Width reports the row's column count.
func (r *Row) Width() int { return int(r.width) }

// SetWrapForced records whether this row's content ran off the right edge
// because of automatic wrapping rather than an explicit newline.
func (r *Row) SetWrapForced(v bool) { r.wrapForced = v }

// WasWrapForced reports the flag set by SetWrapForced.
func (r *Row) WasWrapForced() bool { return r.wrapForced }

// SetDoubleBytePadded sets the flag that ReplaceCharacters raises when it
// pads a column because a wide glyph did not fit. ReplaceCharacters never
// clears it; only Reset or SetDoubleBytePadded(false) does.
func (r *Row) SetDoubleBytePadded(v bool) { r.dbcsPadded = v }

// WasDoubleBytePadded reports the flag set by SetDoubleBytePadded.
func (r *Row) WasDoubleBytePadded() bool { return r.dbcsPadded }

// SetLineRendition sets the row's line rendition mode.
func (r *Row) SetLineRendition(lr LineRendition) { r.lineRendition = lr }

// GetLineRendition returns the row's line rendition mode.
func (r *Row) GetLineRendition() LineRendition { return r.lineRendition }

func (r *Row) maskOffset(col int) int {
	return int(r.offsets[col] & offsetValueMask)
}

func (r *Row) isTrailer(col int) bool {
	return r.offsets[col]&offsetTrailerBit != 0
}

func clampColumn(col, width int) int {
	if col < 0 {
		return 0
	}
	if col > width {
		return width
	}
	return col
}

// PrecedingColumn returns col, decremented past any trailer columns it
// lands on, so callers always land on the leading half of a wide glyph.
func (r *Row) PrecedingColumn(col int) int {
	col = clampColumn(col, int(r.width))
	for col > 0 && r.isTrailer(col) {
		col--
	}
	return col
}

// GlyphAt returns the grapheme cluster occupying the cell anchored at col
// (or containing col if col lands on a trailing half).
func (r *Row) GlyphAt(col int) string {
	if int(r.width) == 0 {
		return ""
	}
	col = clampColumn(col, int(r.width)-1)
	begin := r.PrecedingColumn(col)
	end := begin + 1
	for end < int(r.width) && r.isTrailer(end) {
		end++
	}
	return string(r.chars[r.maskOffset(begin):r.maskOffset(end)])
}

// DbcsAttrAt reports whether col is a narrow glyph, or the leading or
// trailing half of a wide one.
func (r *Row) DbcsAttrAt(col int) DbcsAttribute {
	col = clampColumn(col, int(r.width)-1)
	if r.isTrailer(col) {
		return DbcsTrailing
	}
	if col+1 <= int(r.width) && r.isTrailer(col+1) {
		return DbcsLeading
	}
	return DbcsSingle
}

// DelimiterClassAt classifies col by inspecting its first byte: control
// characters (<= U+0020) are Control, bytes present in delims are
// Delimiter, everything else is Regular.
func (r *Row) DelimiterClassAt(col int, delims string) DelimiterClass {
	col = clampColumn(col, int(r.width)-1)
	begin := r.PrecedingColumn(col)
	off := r.maskOffset(begin)
	if off >= len(r.chars) {
		return DelimiterRegular
	}
	b := r.chars[off]
	switch {
	case b <= 0x20:
		return DelimiterControl
	case strings.IndexByte(delims, b) >= 0:
		return DelimiterDelimiter
	default:
		return DelimiterRegular
	}
}

// MeasureLeft returns the column index of the first non-space glyph, or
// width if the row is entirely blank.
func (r *Row) MeasureLeft() int {
	w := int(r.width)
	for col := 0; col < w; col++ {
		if r.isTrailer(col) {
			continue
		}
		off := r.maskOffset(col)
		next := col + 1
		for next < w && r.isTrailer(next) {
			next++
		}
		if !isAllSpaces(r.chars[off:r.maskOffset(next)]) {
			return col
		}
	}
	return w
}

// MeasureRight returns one past the last non-space column, accounting for
// wide trailers so the result is always a cell boundary.
func (r *Row) MeasureRight() int {
	w := int(r.width)
	for col := w - 1; col >= 0; col-- {
		if r.isTrailer(col) {
			continue
		}
		off := r.maskOffset(col)
		next := col + 1
		for next < w && r.isTrailer(next) {
			next++
		}
		if !isAllSpaces(r.chars[off:r.maskOffset(next)]) {
			return next
		}
	}
	return 0
}

// ContainsText reports whether any stored byte is not a plain space.
func (r *Row) ContainsText() bool {
	return !isAllSpaces(r.chars)
}

func isAllSpaces(b []byte) bool {
	for _, c := range b {
		if c != ' ' {
			return false
		}
	}
	return true
}

// GetText returns the row's packed text for all width columns.
func (r *Row) GetText() string {
	return string(r.chars)
}

// ReplaceAttributes overwrites the attributes of columns [begin, end).
func (r *Row) ReplaceAttributes(begin, end int, attr Renditions) {
	r.attr.replace(begin, end, attr)
}

// SetAttrToEnd sets every column from begin to the row's right edge to attr.
func (r *Row) SetAttrToEnd(begin int, attr Renditions) {
	r.attr.replace(begin, int(r.width), attr)
}

// GetAttrByColumn returns the attribute in effect at col.
func (r *Row) GetAttrByColumn(col int) Renditions {
	return r.attr.at(col)
}

// AddHyperlink registers url on this row's hyperlink table and attaches
// its ID to attr, returning the updated attribute.
func (r *Row) AddHyperlink(attr Renditions, url string) Renditions {
	attr.SetHyperlinkID(r.links.add(url))
	return attr
}

// HyperlinkURL resolves a hyperlink ID registered on this row.
func (r *Row) HyperlinkURL(id uint16) string {
	return r.links.url(id)
}

// GetHyperlinks collects the distinct hyperlink IDs referenced by this
// row's attribute runs.
func (r *Row) GetHyperlinks() []uint16 {
	var ids []uint16
	for _, run := range r.attr.iterateRuns() {
		if !run.Attr.IsHyperlink() {
			continue
		}
		id := run.Attr.GetHyperlinkID()
		seen := false
		for _, v := range ids {
			if v == id {
				seen = true
				break
			}
		}
		if !seen {
			ids = append(ids, id)
		}
	}
	return ids
}

// Equal reports whether two rows hold identical text, offsets and
// attributes. It does not compare generation counters.
func (r *Row) Equal(other *Row) bool {
	if r.width != other.width {
		return false
	}
	if string(r.chars) != string(other.chars) {
		return false
	}
	if len(r.offsets) != len(other.offsets) {
		return false
	}
	for i := range r.offsets {
		if r.offsets[i] != other.offsets[i] {
			return false
		}
	}
	return r.attr.totalCount() == other.attr.totalCount() &&
		runsEqual(r.attr.iterateRuns(), other.attr.iterateRuns())
}

func runsEqual(a, b []AttrRunEntry) bool {
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

func (r *Row) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Row[%3d]{%q}", r.gen, r.GetText())
	return b.String()
}

// RowTextIterator yields (text, columns, dbcs) triples covering a row's
// full width exactly once, restartable by calling Row.Iterator again.
type RowTextIterator struct {
	row *Row
	col int
}

// Iterator returns a fresh, forward-only iterator over the row's glyphs.
func (r *Row) Iterator() *RowTextIterator {
	return &RowTextIterator{row: r}
}

// Next reports whether the iterator has more glyphs to visit.
func (it *RowTextIterator) Next() bool {
	return it.col < int(it.row.width)
}

// Text returns the grapheme cluster at the iterator's current column.
func (it *RowTextIterator) Text() string {
	return it.row.GlyphAt(it.col)
}

// Cols returns the column span (1 or 2) of the current glyph and advances
// the iterator past it.
func (it *RowTextIterator) Cols() int {
	begin := it.col
	end := begin + 1
	for end < int(it.row.width) && it.row.isTrailer(end) {
		end++
	}
	it.col = end
	return end - begin
}

// DbcsAttr reports the dbcs role of the glyph the iterator last visited.
func (it *RowTextIterator) DbcsAttr() DbcsAttribute {
	col := it.col - 1
	if col < 0 {
		col = 0
	}
	return it.row.DbcsAttrAt(it.row.PrecedingColumn(col))
}

// Resize changes the column count, preserving as many leading whole
// glyphs as fit and padding the rest with spaces. A wide glyph that would
// straddle the new right edge does not fit, so ReplaceCharacters writes a
// single space in its place.
func (r *Row) Resize(newWidth uint16, fill Renditions) {
	if newWidth == r.width {
		return
	}
	text := r.GetText()
	oldWidth := int(r.width)
	oldAttr := r.attr
	oldLinks := r.links

	r.init(newWidth, fill)
	r.links = oldLinks

	if oldWidth == 0 || newWidth == 0 {
		return
	}

	limit := int(newWidth)
	if oldWidth < limit {
		limit = oldWidth
	}
	if _, _, err := r.ReplaceCharacters(0, limit, text); err != nil {
		return
	}
	for col := 0; col < limit; col++ {
		r.attr.replace(col, col+1, oldAttr.at(col))
	}
}

// ReplaceCharacters is the row's core write primitive. It writes text
// starting at colBegin, stopping at colEnd or when text is exhausted,
// segmenting non-ASCII runs into grapheme clusters and measuring each
// cluster's width before committing it. Any wide glyph left only
// partially covered by the write, on either edge of the affected range,
// is evicted and replaced with a single space.
//
// It returns the first column past the last column written, and the
// unconsumed suffix of text (non-empty when colEnd was reached, or a wide
// glyph did not fit before it, while text remained).
func (r *Row) ReplaceCharacters(colBegin, colEnd int, text string) (endCol int, rest string, err error) {
	w := int(r.width)
	colBegin = clampColumn(colBegin, w)
	colEnd = clampColumn(colEnd, w)
	if colBegin >= colEnd || text == "" {
		return colBegin, text, nil
	}

	colExtBegin := colBegin
	for colExtBegin > 0 && r.isTrailer(colExtBegin) {
		colExtBegin--
	}
	chExtBegin := r.maskOffset(colExtBegin)
	leadingPad := colBegin - colExtBegin // 0 or 1

	// ASCII fast path: one column, one byte, per run of plain bytes.
	pos := 0
	col2 := colBegin
	n := len(text)
	for pos < n && text[pos] < 0x80 && col2 < colEnd {
		pos++
		col2++
	}
	// Conservatively back off one byte: if the ASCII run stopped short of
	// colEnd because it hit a non-ASCII byte, that byte might be a
	// combining mark belonging to the cluster anchored at the preceding
	// ASCII byte. Re-absorbing the byte into the segmenter pass is always
	// correct, just occasionally redundant with the fast path.
	if pos > 0 && pos < n {
		pos--
		col2--
	}

	var written []grapheme
	widthPad := false
	for i := 0; i < pos; i++ {
		written = append(written, grapheme{text: text[i : i+1], width: 1})
	}
	if pos < n {
		for _, cl := range segmentGraphemes(text[pos:]) {
			if col2 >= colEnd {
				break
			}
			if cl.width > colEnd-col2 {
				widthPad = true
				r.dbcsPadded = true
				break
			}
			written = append(written, cl)
			col2 += cl.width
			pos += len(cl.text)
		}
	}

	colAfterPad := col2
	if widthPad {
		colAfterPad = col2 + 1
	}
	colExtEnd := colAfterPad
	for colExtEnd < w && r.isTrailer(colExtEnd) {
		colExtEnd++
	}
	trailingPad := colExtEnd - colAfterPad // 0 or 1, evicted old trailer

	chExtEndOld := r.maskOffset(colExtEnd)
	textBytes := pos
	inserted := leadingPad + textBytes
	if widthPad {
		inserted++
	}
	inserted += trailingPad
	chExtEndNew := chExtBegin + inserted

	if len(r.chars)+chExtEndNew-chExtEndOld > maxCharBufferLen {
		r.Reset(r.fillAttr)
		return colBegin, text, ErrRowOverflow
	}

	r.resizeChars(colExtEnd, chExtBegin, chExtEndOld, chExtEndNew)

	cursorCol := colExtBegin
	cursorByte := chExtBegin

	if leadingPad == 1 {
		r.chars[cursorByte] = ' '
		r.offsets[cursorCol] = uint16(cursorByte)
		cursorCol++
		cursorByte++
	}
	for _, cl := range written {
		r.offsets[cursorCol] = uint16(cursorByte)
		copy(r.chars[cursorByte:], cl.text)
		if cl.width == 2 {
			r.offsets[cursorCol+1] = uint16(cursorByte) | offsetTrailerBit
		}
		cursorCol += cl.width
		cursorByte += len(cl.text)
	}
	if widthPad {
		r.chars[cursorByte] = ' '
		r.offsets[cursorCol] = uint16(cursorByte)
		cursorCol++
		cursorByte++
	}
	if trailingPad == 1 {
		r.chars[cursorByte] = ' '
		r.offsets[cursorCol] = uint16(cursorByte)
		cursorCol++
		cursorByte++
	}

	r.gen = getGen()
	return colExtEnd, text[pos:], nil
}

// resizeChars shifts or reallocates the char buffer so that the gap
// [chExtBegin, chExtEndNew) is available for the caller to fill, and
// additively rewrites every offset at or past colExtEnd by the resulting
// delta so untouched columns keep pointing at their own text.
func (r *Row) resizeChars(colExtEnd, chExtBegin, chExtEndOld, chExtEndNew int) {
	delta := chExtEndNew - chExtEndOld
	oldLen := len(r.chars)
	newLen := oldLen + delta

	if newLen <= cap(r.chars) {
		if delta > 0 {
			r.chars = r.chars[:newLen]
			copy(r.chars[chExtEndNew:], r.chars[chExtEndOld:oldLen])
		} else if delta < 0 {
			copy(r.chars[chExtEndNew:], r.chars[chExtEndOld:oldLen])
			r.chars = r.chars[:newLen]
		}
	} else {
		growCap := cap(r.chars) + cap(r.chars)/2
		if growCap > maxCharBufferLen {
			growCap = maxCharBufferLen
		}
		if growCap < newLen {
			growCap = newLen
		}
		nb := make([]byte, newLen, growCap)
		copy(nb[:chExtBegin], r.chars[:chExtBegin])
		copy(nb[chExtEndNew:], r.chars[chExtEndOld:oldLen])
		r.chars = nb
	}

	if delta == 0 {
		return
	}
	for i := colExtEnd; i < len(r.offsets); i++ {
		trailer := r.offsets[i] & offsetTrailerBit
		val := int(r.offsets[i]&offsetValueMask) + delta
		r.offsets[i] = uint16(val) | trailer
	}
}
