// Package flowpdf 是流式文档后端：固定页面尺寸，按布局结果逐页写出 PDF。
package flowpdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/renderer"
	"github.com/ByLCY/vellum/renderer/typeface"
)

// Renderer 把流式布局结果写为多页 PDF。同一个实例可先后执行多次
// 独立生成，BeginDocument 会重置全部可变状态。
type Renderer struct {
	shaper *typeface.Shaper

	buf    *bytes.Buffer
	writer *pdf.PDF
	pages  int
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// New 创建流式后端，使用内置字体做排版度量。
func New() *Renderer {
	return &Renderer{shaper: typeface.NewShaper()}
}

// LayoutLines 实现 layout.Typesetter：后端与布局使用同一套字体度量，
// 布局里算出的折行就是最终画到页面上的折行。
func (r *Renderer) LayoutLines(content string, width float64, fontSize, lineHeight float64, bold bool) ([]layout.TextLine, error) {
	return r.shaper.LayoutLines(content, width, fontSize, lineHeight, bold)
}

// BeginDocument 按配置的页面尺寸与方向打开一个新的 PDF 文档。
func (r *Renderer) BeginDocument(cfg renderer.Config) error {
	w, h := cfg.PageSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("页面尺寸非法: %.2f x %.2f", w, h)
	}
	r.buf = &bytes.Buffer{}
	r.writer = pdf.New(r.buf, w, h, nil)
	r.pages = 0
	applyMeta(r.writer, cfg.Meta)
	return nil
}

// RenderPage 把一页的放置指令按阅读顺序绘制到当前文档。
func (r *Renderer) RenderPage(page layout.Page) error {
	if r.writer == nil {
		return fmt.Errorf("尚未调用 BeginDocument")
	}
	if r.pages > 0 {
		r.writer.NewPage(page.Width, page.Height)
	}
	c := canvas.New(page.Width, page.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if err := renderer.DrawPlacements(ctx, r.shaper, page.Placements); err != nil {
		return err
	}
	c.RenderTo(r.writer)
	r.pages++
	return nil
}

// EndDocument 收尾并返回完整的 PDF 字节流。
func (r *Renderer) EndDocument() ([]byte, error) {
	if r.writer == nil {
		return nil, fmt.Errorf("尚未调用 BeginDocument")
	}
	if err := r.writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	data := r.buf.Bytes()
	r.writer = nil
	r.buf = nil
	return data, nil
}

func applyMeta(writer *pdf.PDF, meta renderer.Meta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}
