// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// grapheme is one extended grapheme cluster together with the column
// width (1 or 2) it occupies.
type grapheme struct {
	text  string
	width int
}

// segmentGraphemes splits s into its extended grapheme clusters per UAX #29
// default rules. Stateless: every call builds its own uniseg iterator, so
// there is no cross-call memory to corrupt concurrent callers.
func segmentGraphemes(s string) []grapheme {
	if s == "" {
		return nil
	}
	out := make([]grapheme, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		out = append(out, grapheme{text: cluster, width: clusterWidth(cluster)})
	}
	return out
}

// runewidthCond is the go-runewidth Condition behind the row engine's width
// oracle. EastAsianWidth is off, so East Asian ambiguous-width runes
// measure one column.
var runewidthCond = newRunewidthCondition()

func newRunewidthCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.StrictEmojiNeutral = false
	c.EastAsianWidth = false
	return c
}

// clusterWidth is the width oracle (C2): a total function mapping a
// grapheme cluster to the columns it occupies, 1 or 2. It takes the widest
// rune in the cluster, so zero-width combining marks never widen their
// base character and ambiguous-width runes resolve to narrow.
func clusterWidth(cluster string) int {
	w := 0
	for _, r := range cluster {
		if rw := runewidthCond.RuneWidth(r); rw > w {
			w = rw
		}
	}
	switch {
	case w <= 1:
		return 1
	default:
		return 2
	}
}
