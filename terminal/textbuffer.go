// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// TextBuffer is a thin multi-row aggregate over Row: the minimal
// collaborator a screen, a scrollback, or a search driver needs to get at
// a grid of rows. It owns no cursor, no selection and no rendering state;
// those belong to whatever embeds it.
type TextBuffer struct {
	rows []*Row
	cols uint16
	fill Renditions
}

// NewTextBuffer builds a buffer of rows rows by cols columns, every cell
// filled under fill.
func NewTextBuffer(rows, cols int, fill Renditions) *TextBuffer {
	tb := &TextBuffer{cols: uint16(cols), fill: fill}
	tb.rows = make([]*Row, rows)
	for i := range tb.rows {
		tb.rows[i] = NewRow(tb.cols, fill)
	}
	return tb
}

// Rows reports the buffer's row count.
func (tb *TextBuffer) Rows() int { return len(tb.rows) }

// Cols reports the buffer's column count.
func (tb *TextBuffer) Cols() int { return int(tb.cols) }

// GetRow returns the row at index i, clamped to the buffer's bounds.
func (tb *TextBuffer) GetRow(i int) *Row {
	if i < 0 {
		i = 0
	}
	if i >= len(tb.rows) {
		i = len(tb.rows) - 1
	}
	return tb.rows[i]
}

// RowText implements TextSource.
func (tb *TextBuffer) RowText(i int) string { return tb.GetRow(i).GetText() }

// RowCount implements TextSource.
func (tb *TextBuffer) RowCount() int { return tb.Rows() }

// WriteAt writes text into row starting at column col, returning whatever
// ReplaceCharacters returns for the underlying row.
func (tb *TextBuffer) WriteAt(row, col int, text string) (endCol int, rest string, err error) {
	return tb.GetRow(row).ReplaceCharacters(col, int(tb.cols), text)
}

// Scroll moves every row up by n (n > 0) or down by -n (n < 0), discarding
// rows that scroll off the top or bottom and filling the vacated rows with
// fresh blanks.
func (tb *TextBuffer) Scroll(n int) {
	count := len(tb.rows)
	if count == 0 || n == 0 {
		return
	}
	if n > 0 {
		if n > count {
			n = count
		}
		copy(tb.rows, tb.rows[n:])
		for i := count - n; i < count; i++ {
			tb.rows[i] = NewRow(tb.cols, tb.fill)
		}
		return
	}
	n = -n
	if n > count {
		n = count
	}
	copy(tb.rows[n:], tb.rows[:count-n])
	for i := 0; i < n; i++ {
		tb.rows[i] = NewRow(tb.cols, tb.fill)
	}
}

// InsertLine inserts count fresh blank rows starting at beforeRow, pushing
// the rows below down and dropping however many rows fall off the bottom
// so the buffer's row count stays fixed.
func (tb *TextBuffer) InsertLine(beforeRow, count int) bool {
	n := len(tb.rows)
	if beforeRow < 0 || beforeRow > n || count <= 0 {
		return false
	}
	if count > n-beforeRow {
		count = n - beforeRow
	}
	copy(tb.rows[beforeRow+count:], tb.rows[beforeRow:n-count])
	for i := beforeRow; i < beforeRow+count; i++ {
		tb.rows[i] = NewRow(tb.cols, tb.fill)
	}
	return true
}

// DeleteLine removes count rows starting at row, pulling the rows below up
// and appending fresh blank rows at the bottom.
func (tb *TextBuffer) DeleteLine(row, count int) bool {
	if row < 0 || row >= len(tb.rows) || count <= 0 {
		return false
	}
	if row+count > len(tb.rows) {
		count = len(tb.rows) - row
	}
	tb.rows = append(tb.rows[:row], tb.rows[row+count:]...)
	for i := 0; i < count; i++ {
		tb.rows = append(tb.rows, NewRow(tb.cols, tb.fill))
	}
	return true
}

// Resize changes the buffer's row and column count, resizing every
// surviving row in place via Row.Resize and padding or trimming the row
// list itself.
func (tb *TextBuffer) Resize(rows, cols int) {
	if cols != int(tb.cols) {
		for _, r := range tb.rows {
			r.Resize(uint16(cols), tb.fill)
		}
		tb.cols = uint16(cols)
	}
	switch {
	case rows < len(tb.rows):
		tb.rows = tb.rows[:rows]
	case rows > len(tb.rows):
		for len(tb.rows) < rows {
			tb.rows = append(tb.rows, NewRow(tb.cols, tb.fill))
		}
	}
}

// Reset blanks every row under fill.
func (tb *TextBuffer) Reset(fill Renditions) {
	tb.fill = fill
	for _, r := range tb.rows {
		r.Reset(fill)
	}
}
