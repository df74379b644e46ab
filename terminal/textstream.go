// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// TextSource is the minimal read-only contract a multi-row text buffer
// exposes to RowTextStream: enough to stitch per-row text into one
// randomly addressable character stream for a search driver.
type TextSource interface {
	RowText(i int) string
	RowCount() int
}

// RowTextStream stitches every row's text from a TextSource into a single
// randomly-accessible byte stream, one chunk per row. Because a row
// always stores complete grapheme clusters, every chunk boundary falls on
// a code-point boundary for free. Modeled on ICU's UText provider
// contract: clone, lazy length, access, extract.
//
// RowTextStream assumes its TextSource is not mutated for the stream's
// lifetime; it is not safe for concurrent use.
type RowTextStream struct {
	src TextSource

	chunkRow   int
	chunkStart int
	chunkText  string

	total      int
	totalKnown bool
}

// NewRowTextStream builds a stream positioned at the start of src.
func NewRowTextStream(src TextSource) *RowTextStream {
	ts := &RowTextStream{src: src}
	ts.setChunk(0, 0)
	return ts
}

func (ts *RowTextStream) setChunk(row, start int) {
	ts.chunkRow = row
	ts.chunkStart = start
	ts.chunkText = ts.src.RowText(row)
}

// LengthIsExpensive reports whether Length still has to walk every row to
// compute the total.
func (ts *RowTextStream) LengthIsExpensive() bool { return !ts.totalKnown }

// Length returns the total byte length across all rows.
func (ts *RowTextStream) Length() int {
	if ts.totalKnown {
		return ts.total
	}
	total := 0
	for i, n := 0, ts.src.RowCount(); i < n; i++ {
		total += len(ts.src.RowText(i))
	}
	ts.total = total
	ts.totalKnown = true
	return total
}

// Access positions the stream so its active chunk contains nativeIndex.
// When forward is true the chunk satisfies start <= nativeIndex < limit;
// otherwise start < nativeIndex <= limit. Returns false if no such chunk
// exists (nativeIndex out of range in the requested direction).
func (ts *RowTextStream) Access(nativeIndex int, forward bool) bool {
	if nativeIndex < 0 || ts.src.RowCount() == 0 {
		return false
	}
	n := ts.src.RowCount()
	for {
		limit := ts.chunkStart + len(ts.chunkText)
		if forward && nativeIndex >= ts.chunkStart && nativeIndex < limit {
			return true
		}
		if !forward && nativeIndex > ts.chunkStart && nativeIndex <= limit {
			return true
		}
		switch {
		case nativeIndex < ts.chunkStart || (!forward && nativeIndex == ts.chunkStart):
			if ts.chunkRow == 0 {
				return false
			}
			prev := ts.src.RowText(ts.chunkRow - 1)
			ts.setChunk(ts.chunkRow-1, ts.chunkStart-len(prev))
		case nativeIndex >= limit:
			if ts.chunkRow+1 >= n {
				return !forward && nativeIndex == limit
			}
			ts.setChunk(ts.chunkRow+1, limit)
		default:
			return false
		}
	}
}

// Extract copies the half-open byte range [nativeStart, nativeLimit) into
// dest, returning the number of bytes the range covers (which may exceed
// len(dest), matching ICU's utext_extract truncate-and-report contract).
func (ts *RowTextStream) Extract(nativeStart, nativeLimit int, dest []byte) int {
	if nativeLimit <= nativeStart {
		return 0
	}
	if !ts.Access(nativeStart, true) {
		return 0
	}

	need := 0
	written := 0
	pos := nativeStart
	for pos < nativeLimit {
		limit := ts.chunkStart + len(ts.chunkText)
		end := nativeLimit
		if limit < end {
			end = limit
		}
		seg := ts.chunkText[pos-ts.chunkStart : end-ts.chunkStart]
		need += len(seg)
		if written < len(dest) {
			written += copy(dest[written:], seg)
		}
		pos = end
		if pos < nativeLimit && !ts.Access(pos, true) {
			break
		}
	}
	return need
}

// Clone returns a copy of the stream's cursor state. deep is accepted for
// symmetry with ICU's UText contract but is always shallow here: the row
// engine owns the text, there is nothing to duplicate.
func (ts *RowTextStream) Clone(deep bool) *RowTextStream {
	c := *ts
	return &c
}
