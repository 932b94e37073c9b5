package deck

import "fmt"

// StructuralError 表示某个内容块的形状违反了其变体的约定。
// Slide/Block 是从 0 开始的序号，Row 仅对表格有效，其余情况为 -1。
// 结构错误立即中止生成，不做部分渲染。
type StructuralError struct {
	Slide  int
	Block  int
	Row    int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("结构校验失败：第 %d 页第 %d 块（第 %d 行）：%s", e.Slide, e.Block, e.Row, e.Reason)
	}
	return fmt.Sprintf("结构校验失败：第 %d 页第 %d 块：%s", e.Slide, e.Block, e.Reason)
}

// Validate 对整份 Deck 做结构校验，返回第一个违反约定的块。
func (d *Deck) Validate() error {
	if d == nil {
		return fmt.Errorf("deck 为空")
	}
	for si, slide := range d.Slides {
		for bi, block := range slide {
			if err := validateBlock(si, bi, block); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateBlock(si, bi int, block Block) error {
	switch b := block.(type) {
	case nil:
		return &StructuralError{Slide: si, Block: bi, Row: -1, Reason: "块不能为 nil"}
	case TwoColumn:
		if len(b.Columns) != 2 {
			return &StructuralError{Slide: si, Block: bi, Row: -1,
				Reason: fmt.Sprintf("两栏块必须恰好有 2 栏，实际 %d 栏", len(b.Columns))}
		}
	case Table:
		return validateTable(si, bi, b)
	case Spacer:
		if b.Height < 0 {
			return &StructuralError{Slide: si, Block: bi, Row: -1, Reason: "间隔高度不能为负"}
		}
	}
	return nil
}

func validateTable(si, bi int, t Table) error {
	cols := t.ColumnCount()
	if cols == 0 || len(t.Rows) == 0 {
		return &StructuralError{Slide: si, Block: bi, Row: -1, Reason: "表格至少需要一行一列"}
	}
	if t.Ratios != nil && len(t.Ratios) != cols {
		return &StructuralError{Slide: si, Block: bi, Row: -1,
			Reason: fmt.Sprintf("列宽比例数 %d 与列数 %d 不一致", len(t.Ratios), cols)}
	}
	for _, r := range t.Ratios {
		if r <= 0 {
			return &StructuralError{Slide: si, Block: bi, Row: -1, Reason: "列宽比例必须为正数"}
		}
	}
	for ri, row := range t.Rows {
		if len(row) != cols {
			return &StructuralError{Slide: si, Block: bi, Row: ri,
				Reason: fmt.Sprintf("单元格数 %d 与声明列数 %d 不一致", len(row), cols)}
		}
	}
	return nil
}
