package dsl

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/vellum/deck"
	"github.com/ByLCY/vellum/layout"
)

// Deck lowers the parsed outline into the in-memory deck model.
// Structural rules (column counts, ragged rows) are checked later by
// deck.Validate, not here.
func (d *Document) Deck() (*deck.Deck, error) {
	out := &deck.Deck{Title: string(d.Title)}
	for si, sl := range d.Slides {
		var blocks deck.Slide
		for bi, b := range sl.Blocks {
			blk, err := b.lower()
			if err != nil {
				return nil, fmt.Errorf("幻灯片 %d 第 %d 块: %w", si, bi, err)
			}
			blocks = append(blocks, blk)
		}
		out.Slides = append(out.Slides, blocks)
	}
	return out, nil
}

func (b *BlockNode) lower() (deck.Block, error) {
	switch {
	case b.Title != nil:
		return deck.Title{Text: string(b.Title.Text), Style: b.Title.Style}, nil
	case b.Para != nil:
		return deck.Paragraph{Text: string(b.Para.Text), Style: b.Para.Style}, nil
	case b.Bullets != nil:
		return deck.BulletList{Items: stringsOf(b.Bullets.Items), Style: b.Bullets.Style}, nil
	case b.Columns != nil:
		cols := make([][]string, 0, len(b.Columns.Columns))
		for _, col := range b.Columns.Columns {
			cols = append(cols, stringsOf(col.Items))
		}
		return deck.TwoColumn{Columns: cols, Style: b.Columns.Style}, nil
	case b.Table != nil:
		return b.Table.lower()
	case b.Spacer != nil:
		length, err := layout.ParseLength(b.Spacer.Height)
		if err != nil {
			return nil, fmt.Errorf("spacer 高度非法: %w", err)
		}
		return deck.Spacer{Height: length.ToMM()}, nil
	case b.Break:
		return deck.Break{}, nil
	default:
		return nil, fmt.Errorf("空的内容块")
	}
}

func (t *TableNode) lower() (deck.Block, error) {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, stringsOf(row.Cells))
	}
	var ratios []float64
	for _, raw := range t.Ratios {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("表格比例 %q 不是数字", raw)
		}
		ratios = append(ratios, r)
	}
	return deck.Table{
		Rows:        rows,
		Ratios:      ratios,
		Header:      t.HeaderStyle != "",
		Style:       t.Style,
		HeaderStyle: t.HeaderStyle,
	}, nil
}

func stringsOf(in []StringLiteral) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
