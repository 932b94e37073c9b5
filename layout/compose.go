package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/vellum/binding"
	"github.com/ByLCY/vellum/deck"
	"github.com/ByLCY/vellum/style"
)

const (
	blockSpacing     = 3.0   // 块与块之间的默认纵向间距
	cellPadding      = 1.2   // 表格单元格内边距
	bulletIndent     = 7.0   // 条目缩进
	bulletGap        = 2.8   // 条目之间的间距
	blankGap         = 2.5   // 空字符串条目对应的空行高度
	columnGutter     = 6.0   // 两栏之间的栏间距
	lineHeightFactor = 1.4   // 默认行高倍数
	titleBarHeight   = 20.32 // 画布模式顶部标题条高度
	bodyOffset       = 30.48 // 画布模式正文固定起始偏移
)

// Compose 把一份 Deck 布局为可以直接交给后端的页面序列。
// 先做结构校验，然后按作者顺序逐块放置；样式在放置时才按名字解析，
// 因此注册表只需要在 Compose 之前填充完毕。
func Compose(d *deck.Deck, reg *style.Registry, geom Geometry, opts Options) (*Result, error) {
	if d == nil {
		return nil, fmt.Errorf("deck 为空")
	}
	if reg == nil {
		return nil, fmt.Errorf("layout: 缺少样式注册表")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if geom.Width <= 0 || geom.Height <= 0 {
		return nil, fmt.Errorf("layout: 页面尺寸不合法: %gx%g", geom.Width, geom.Height)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	c := &composer{
		geom: geom,
		reg:  reg,
		ts:   opts.Typesetter,
		data: opts.Data,
		pc:   newPageCollector(geom),
	}
	if err := c.emitBackdrop(); err != nil {
		return nil, err
	}
	for si, slide := range d.Slides {
		if si > 0 {
			if err := c.breakPage(); err != nil {
				return nil, err
			}
		}
		if err := c.composeSlide(slide); err != nil {
			return nil, fmt.Errorf("第 %d 页布局失败: %w", si, err)
		}
	}
	return &Result{Mode: geom.Mode, Pages: c.pc.pages()}, nil
}

type composer struct {
	geom Geometry
	reg  *style.Registry
	ts   Typesetter
	data any
	pc   *pageCollector
}

func (c *composer) breakPage() error {
	c.pc.newPage()
	return c.emitBackdrop()
}

// emitBackdrop 在画布模式下给当前页铺底色；底色同样经由样式注册表解析。
func (c *composer) emitBackdrop() error {
	if c.geom.Mode != ModeCanvas || c.geom.Backdrop == "" {
		return nil
	}
	st, err := c.reg.Resolve(c.geom.Backdrop)
	if err != nil {
		return err
	}
	if st.Background == nil {
		return nil
	}
	c.pc.append(-1, Placement{
		Kind:   KindRect,
		Width:  c.geom.Width,
		Height: c.geom.Height,
		Rect:   &RectBox{Fill: st.Background},
	})
	return nil
}

func (c *composer) composeSlide(slide deck.Slide) error {
	cursor := c.pc.contentTop()
	baseX := c.geom.Margin.Left
	width := c.geom.Width - c.geom.Margin.Left - c.geom.Margin.Right

	for bi, block := range slide {
		switch b := block.(type) {
		case deck.Break:
			if err := c.breakPage(); err != nil {
				return err
			}
			cursor = c.pc.contentTop()
		case deck.Spacer:
			cursor += b.Height
		case deck.Title:
			if c.geom.Mode == ModeCanvas {
				if err := c.composeTitleBar(bi, b); err != nil {
					return err
				}
				continue
			}
			st, err := c.reg.Resolve(b.Style)
			if err != nil {
				return err
			}
			if err := c.place(&cursor, bi, st, func(baseY float64) ([]Placement, float64, error) {
				return c.composeText(b.Text, st, baseX, baseY, width)
			}); err != nil {
				return err
			}
		case deck.Paragraph:
			st, err := c.reg.Resolve(b.Style)
			if err != nil {
				return err
			}
			if err := c.place(&cursor, bi, st, func(baseY float64) ([]Placement, float64, error) {
				return c.composeText(b.Text, st, baseX, baseY, width)
			}); err != nil {
				return err
			}
		case deck.BulletList:
			st, err := c.reg.Resolve(b.Style)
			if err != nil {
				return err
			}
			if err := c.place(&cursor, bi, st, func(baseY float64) ([]Placement, float64, error) {
				return c.composeBullets(b.Items, st, baseX, baseY, width)
			}); err != nil {
				return err
			}
		case deck.TwoColumn:
			st, err := c.reg.Resolve(b.Style)
			if err != nil {
				return err
			}
			if err := c.place(&cursor, bi, st, func(baseY float64) ([]Placement, float64, error) {
				return c.composeTwoColumn(b.Columns, st, baseX, baseY, width)
			}); err != nil {
				return err
			}
		case deck.Table:
			st, err := c.reg.Resolve(b.Style)
			if err != nil {
				return err
			}
			headSt := st
			if b.Header && b.HeaderStyle != "" {
				if headSt, err = c.reg.Resolve(b.HeaderStyle); err != nil {
					return err
				}
			}
			if err := c.place(&cursor, bi, st, func(baseY float64) ([]Placement, float64, error) {
				return c.composeTable(b, st, headSt, baseX, baseY, width)
			}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("未知的内容块类型 %s", deck.Variant(block))
		}
	}
	return nil
}

// place 完成一个块的原子放置：先按当前游标测量构建；流式模式下装不下且
// 当前页已有内容时，整个块推到下一页重建——块永不跨页拆分。
// 画布模式下溢出不换页，只给当前页打 Clipped 标记。
func (c *composer) place(cursor *float64, block int, st style.Style, build func(baseY float64) ([]Placement, float64, error)) error {
	top := *cursor
	if top > c.pc.contentTop() {
		top += st.SpacingBefore
	}
	pls, height, err := build(top)
	if err != nil {
		return err
	}
	if c.geom.Mode == ModeFlow && top+height > c.pc.maxContentY() && *cursor > c.pc.contentTop() {
		if err := c.breakPage(); err != nil {
			return err
		}
		// 新页顶部不再应用 SpacingBefore
		top = c.pc.contentTop()
		if pls, height, err = build(top); err != nil {
			return err
		}
	}
	if c.geom.Mode == ModeCanvas && top+height > c.pc.maxContentY() {
		c.pc.curr().clipped = true
	}
	for _, p := range pls {
		c.pc.append(block, p)
	}
	gap := st.SpacingAfter
	if gap <= 0 {
		gap = blockSpacing
	}
	*cursor = top + height + gap
	return nil
}

// composeTitleBar 在画布模式下把标题放进顶部固定标题条。
func (c *composer) composeTitleBar(block int, t deck.Title) error {
	st, err := c.reg.Resolve(t.Style)
	if err != nil {
		return err
	}
	if st.Background != nil {
		c.pc.append(block, Placement{
			Kind:   KindRect,
			Width:  c.geom.Width,
			Height: titleBarHeight,
			Rect:   &RectBox{Fill: st.Background},
		})
	}
	width := c.geom.Width - c.geom.Margin.Left - c.geom.Margin.Right
	tb, h, err := c.textBox(t.Text, st, width)
	if err != nil {
		return err
	}
	y := (titleBarHeight - h) / 2
	if y < 0 {
		y = 0
	}
	c.pc.append(block, Placement{
		Kind:   KindText,
		X:      c.geom.Margin.Left,
		Y:      y,
		Width:  width,
		Height: h,
		Text:   tb,
	})
	return nil
}

func (c *composer) composeText(content string, st style.Style, x, y, width float64) ([]Placement, float64, error) {
	tb, height, err := c.textBox(content, st, width)
	if err != nil {
		return nil, 0, err
	}
	p := Placement{Kind: KindText, X: x, Y: y, Width: width, Height: height, Text: tb}
	return []Placement{p}, height, nil
}

// composeBullets 逐条排版条目；空字符串条目是空行间隔而不是条目。
func (c *composer) composeBullets(items []string, st style.Style, x, y, width float64) ([]Placement, float64, error) {
	var pls []Placement
	cursor := y
	trailing := 0.0
	for _, item := range items {
		if item == "" {
			cursor += blankGap
			trailing = 0
			continue
		}
		tb, h, err := c.textBox(item, st, width-bulletIndent)
		if err != nil {
			return nil, 0, err
		}
		pls = append(pls, Placement{
			Kind:   KindText,
			X:      x + bulletIndent,
			Y:      cursor,
			Width:  width - bulletIndent,
			Height: h,
			Text:   tb,
		})
		cursor += h + bulletGap
		trailing = bulletGap
	}
	return pls, cursor - trailing - y, nil
}

// composeTwoColumn 把可用宽度去掉栏间距后平分给两栏；
// 左右两栏的纵向游标彼此独立，不做高度配平，总高取较高一栏。
func (c *composer) composeTwoColumn(cols [][]string, st style.Style, x, y, width float64) ([]Placement, float64, error) {
	colWidth := (width - columnGutter) / 2
	left, lh, err := c.composeBullets(cols[0], st, x, y, colWidth)
	if err != nil {
		return nil, 0, err
	}
	right, rh, err := c.composeBullets(cols[1], st, x+colWidth+columnGutter, y, colWidth)
	if err != nil {
		return nil, 0, err
	}
	return append(left, right...), math.Max(lh, rh), nil
}

// composeTable 采用两遍算法：先测量一行内所有单元格的高度，
// 行高取最高者，然后才放置该行——行内所有单元格最终等高。
func (c *composer) composeTable(t deck.Table, st, headSt style.Style, x, y, width float64) ([]Placement, float64, error) {
	cols := t.ColumnCount()
	widths := columnWidths(width, cols, t.Ratios)
	table := &TableBox{
		ColumnWidths: widths,
		BorderColor:  style.Color{R: 200, G: 200, B: 200},
		Inset:        cellPadding,
	}
	if t.Header && headSt.Background != nil {
		table.HeaderFill = headSt.Background
	}

	cursor := y
	for ri, row := range t.Rows {
		isHeader := t.Header && ri == 0
		cellStyle := st
		if isHeader {
			cellStyle = headSt
		}
		boxes := make([]TextBox, len(row))
		maxHeight := 0.0
		for ci, cell := range row {
			tb, h, err := c.textBox(cell, cellStyle, widths[ci]-2*cellPadding)
			if err != nil {
				return nil, 0, err
			}
			boxes[ci] = *tb
			if h > maxHeight {
				maxHeight = h
			}
		}
		rowHeight := maxHeight + 2*cellPadding
		rb := RowBox{Y: cursor, Height: rowHeight, IsHeader: isHeader}
		cx := x
		for ci := range row {
			rb.Cells = append(rb.Cells, CellBox{
				X:      cx,
				Y:      cursor,
				Width:  widths[ci],
				Height: rowHeight,
				Text:   boxes[ci],
			})
			cx += widths[ci]
		}
		table.Rows = append(table.Rows, rb)
		cursor += rowHeight
	}

	height := cursor - y
	p := Placement{Kind: KindTable, X: x, Y: y, Width: width, Height: height, Table: table}
	return []Placement{p}, height, nil
}

// textBox 在放置时才插值绑定数据并做折行测量；字号从 pt 换算到 mm。
func (c *composer) textBox(content string, st style.Style, width float64) (*TextBox, float64, error) {
	content = binding.Interpolate(content, c.data)
	fontSize := st.FontSize * PtToMm
	if fontSize <= 0 {
		fontSize = 12 * PtToMm
	}
	lineHeight := fontSize * lineHeightFactor
	lines, err := c.ts.LayoutLines(content, width, fontSize, lineHeight, st.Bold)
	if err != nil {
		return nil, 0, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Width: 0, Height: fontSize}}
	}
	total := 0.0
	leading := math.Max(lineHeight-fontSize, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = fontSize
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = leading
		}
		total += lines[i].GapBefore + lines[i].Height
	}
	tb := &TextBox{
		Content:    content,
		FontSize:   fontSize,
		LineHeight: lineHeight,
		Color:      st.Color,
		Bold:       st.Bold,
		Align:      st.Align,
		Lines:      lines,
	}
	return tb, total, nil
}

// columnWidths 按比例或平均分配列宽。
func columnWidths(width float64, cols int, ratios []float64) []float64 {
	out := make([]float64, cols)
	if len(ratios) == cols {
		sum := 0.0
		for _, r := range ratios {
			sum += r
		}
		for i, r := range ratios {
			out[i] = width * r / sum
		}
		return out
	}
	for i := range out {
		out[i] = width / float64(cols)
	}
	return out
}
