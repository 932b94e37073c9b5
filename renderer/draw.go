package renderer

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/renderer/typeface"
	"github.com/ByLCY/vellum/style"
)

const tableBorderWidth = 0.2

// DrawPlacements 把一页的几何盒按切片顺序映射为 canvas 原语。
// 两个后端共用同一套映射，阅读顺序即绘制顺序（z 序）。
func DrawPlacements(ctx *canvas.Context, shaper *typeface.Shaper, placements []layout.Placement) error {
	for i := range placements {
		p := &placements[i]
		switch p.Kind {
		case layout.KindRect:
			drawRect(ctx, p)
		case layout.KindText:
			if p.Text == nil {
				continue
			}
			if err := drawTextBox(ctx, shaper, p.X, p.Y, p.Width, *p.Text); err != nil {
				return err
			}
		case layout.KindTable:
			if p.Table == nil {
				continue
			}
			if err := drawTable(ctx, shaper, p.Table); err != nil {
				return err
			}
		}
	}
	return nil
}

func drawRect(ctx *canvas.Context, p *layout.Placement) {
	rc := p.Rect
	if rc == nil {
		return
	}
	w := rc.StrokeWidth
	if w <= 0 {
		w = tableBorderWidth
	}
	if rc.Fill != nil {
		ctx.SetFillColor(typeface.Color(*rc.Fill))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	if rc.Stroke != nil {
		ctx.SetStrokeColor(typeface.Color(*rc.Stroke))
	} else {
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	}
	ctx.SetStrokeWidth(w)
	ctx.DrawPath(p.X, p.Y, canvas.Rectangle(p.Width, p.Height))
}

func drawTextBox(ctx *canvas.Context, shaper *typeface.Shaper, x, y, width float64, tb layout.TextBox) error {
	// TextBox 的坐标/字号/行高均为 mm，字体面创建时在 Shaper 内做 mm→pt。
	face, err := shaper.Face(tb.FontSize, tb.Color, tb.Bold)
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{
			Content: tb.Content,
			Width:   width,
			Height:  tb.LineHeight,
		}}
	}

	// 水平对齐：justify 在单行绘制下与 left 等价。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch tb.Align {
	case style.AlignCenter:
		textAlign = canvas.Center
		anchorX = x + width/2
	default:
		textAlign = canvas.Left
		anchorX = x
	}

	cursorY := y
	for _, line := range lines {
		cursorY += line.GapBefore
		textLine := canvas.NewTextLine(face, line.Content, textAlign)

		lineHeight := line.Height
		if lineHeight <= 0 {
			if tb.FontSize > 0 {
				lineHeight = tb.FontSize
			} else {
				lineHeight = tb.LineHeight
			}
		}

		// 基线位置：行顶部（cursorY，mm）加上字体上升部（Ascent）
		metrics := face.Metrics()
		baseline := cursorY + metrics.Ascent

		ctx.DrawText(anchorX, baseline, textLine)
		cursorY += lineHeight
	}
	return nil
}

func drawTable(ctx *canvas.Context, shaper *typeface.Shaper, table *layout.TableBox) error {
	if len(table.ColumnWidths) == 0 {
		return nil
	}
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			var fill color.Color = canvas.White
			if row.IsHeader && table.HeaderFill != nil {
				fill = typeface.Color(*table.HeaderFill)
			}
			ctx.SetFillColor(fill)
			ctx.SetStrokeColor(typeface.Color(table.BorderColor))
			ctx.SetStrokeWidth(tableBorderWidth)
			ctx.DrawPath(cell.X, row.Y, canvas.Rectangle(cell.Width, row.Height))

			inset := table.Inset
			textWidth := cell.Width - 2*inset
			if err := drawTextBox(ctx, shaper, cell.X+inset, cell.Y+inset, textWidth, cell.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
