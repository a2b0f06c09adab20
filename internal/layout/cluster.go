package layout

import (
	"sort"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// Clustering tolerances, in pixels of the rendered page.
const (
	alignTolerance   = 5  // x edges considered aligned
	sameLineGap      = 5  // y delta for tokens on one text line
	continuationGap  = 50 // max horizontal gap continuing a line
	verticalSpanMult = 1.5
)

// Cluster partitions tokens into text blocks a reader would perceive as one
// visual unit. For every token in (y,x) order it scans all tokens and pulls
// into its group any token that is either edge-aligned within vertical reach
// or a same-line continuation.
//
// Group assignment is last-write-wins over all ordered pairs, not a
// union-find, so the partition is neither symmetric nor transitive. The
// extraction heuristics downstream are tuned against exactly these
// semantics; do not replace this with a proper disjoint-set merge.
func Cluster(tokens []entity.Token) []entity.TextBlock {
	if len(tokens) == 0 {
		return nil
	}

	items := make([]entity.Token, len(tokens))
	copy(items, tokens)

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Y != items[j].Y {
			return items[i].Y < items[j].Y
		}
		return items[i].X < items[j].X
	})

	for i := range items {
		cur := items[i]
		for j := range items {
			blk := &items[j]

			sameX := abs(cur.X-blk.X) < alignTolerance
			sameXPlusW := abs(cur.X-(blk.X+blk.Width)) < alignTolerance
			withinVerticalRange := float64(abs(cur.Y-blk.Y)) < float64(cur.Height)*verticalSpanMult

			closeY := abs(cur.X-(blk.X+blk.Width)) < continuationGap
			sameLine := abs(cur.Y-blk.Y) < sameLineGap

			withinSameXZone := cur.X+cur.Width >= blk.X &&
				cur.X+cur.Width <= blk.X+blk.Width

			if (sameX || sameXPlusW || withinSameXZone) && withinVerticalRange {
				blk.GroupNum = cur.GroupNum
			}
			if (sameX && withinVerticalRange) || (sameLine && closeY) {
				blk.GroupNum = cur.GroupNum
			}
		}
	}

	byGroup := make(map[int]entity.TextBlock)
	for _, t := range items {
		byGroup[t.GroupNum] = append(byGroup[t.GroupNum], t)
	}

	groups := make([]int, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Ints(groups)

	blocks := make([]entity.TextBlock, 0, len(groups))
	for _, g := range groups {
		blocks = append(blocks, byGroup[g])
	}
	return blocks
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
