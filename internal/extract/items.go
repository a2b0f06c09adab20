package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// Row cells map to item fields by position. The layout is coupled to how
// Dutch invoices order their columns; note that the excl-VAT amount sits at
// index 5 with the VAT percentage before it at index 4.
// TODO: drive this from a per-locale profile once a second layout shows up.
var itemColumnMap = map[int]func(*entity.LineItem, string){
	0: func(it *entity.LineItem, s string) { it.ArticleNumber = s },
	1: func(it *entity.LineItem, s string) { it.Name = s },
	2: func(it *entity.LineItem, s string) { it.Quantity = s },
	3: func(it *entity.LineItem, s string) { it.ItemUnitPrice = s },
	4: func(it *entity.LineItem, s string) { it.ItemVATPercentage = s },
	5: func(it *entity.LineItem, s string) { it.ItemAmountExclVAT = s },
}

const rowBucketTolerance = 5 // px

// FindHeaderBlock returns the first block containing a line-item column
// label, or nil when the page has no recognizable item table.
func FindHeaderBlock(blocks []entity.TextBlock) entity.TextBlock {
	for _, block := range blocks {
		for _, tok := range block {
			if containsAny(strings.ToLower(tok.Text), headerKeywords) {
				return block
			}
		}
	}
	return nil
}

// SelectItemBlock picks the block vertically nearest to the header's first
// token, skipping the header itself (distance zero).
func SelectItemBlock(blocks []entity.TextBlock, header entity.TextBlock) entity.TextBlock {
	if len(header) == 0 {
		return nil
	}
	headerY := header[0].Y

	var best entity.TextBlock
	minDistance := math.MaxInt
	for _, block := range blocks {
		if len(block) == 0 {
			continue
		}
		distance := abs(block[0].Y - headerY)
		if distance < minDistance && distance != 0 {
			minDistance = distance
			best = block
		}
	}
	return best
}

// ExtractItems turns the clustered blocks into line items: locate the header,
// take the adjacent block, bucket its tokens into rows by y position, and map
// cells to fields by column index. Single-token rows are discarded as noise.
func ExtractItems(blocks []entity.TextBlock) []entity.LineItem {
	header := FindHeaderBlock(blocks)
	if header == nil {
		return nil
	}
	itemBlock := SelectItemBlock(blocks, header)
	if itemBlock == nil {
		return nil
	}

	tokens := make([]entity.Token, len(itemBlock))
	copy(tokens, itemBlock)
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Y != tokens[j].Y {
			return tokens[i].Y < tokens[j].Y
		}
		return tokens[i].X < tokens[j].X
	})

	rows := bucketRows(tokens)

	var items []entity.LineItem
	for _, row := range rows {
		if len(row) <= 1 {
			continue
		}
		var item entity.LineItem
		for i, tok := range row {
			if set, ok := itemColumnMap[i]; ok {
				set(&item, tok.Text)
			}
		}
		item.Coordinates = entity.CoordinatesOf(row)
		items = append(items, item)
	}
	return items
}

// bucketRows groups tokens into visual rows: a token joins the first bucket
// whose anchor y is within tolerance, otherwise it opens a new bucket.
func bucketRows(tokens []entity.Token) [][]entity.Token {
	var anchors []int
	var rows [][]entity.Token

	for _, tok := range tokens {
		placed := false
		for i, anchor := range anchors {
			if abs(anchor-tok.Y) < rowBucketTolerance {
				rows[i] = append(rows[i], tok)
				placed = true
				break
			}
		}
		if !placed {
			anchors = append(anchors, tok.Y)
			rows = append(rows, []entity.Token{tok})
		}
	}
	return rows
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
