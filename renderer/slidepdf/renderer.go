// Package slidepdf 是固定画布后端：每张幻灯片一张画布，绝对定位，
// 超出画布的内容静默裁掉。
package slidepdf

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

// Renderer 把画布布局结果写为每页一张幻灯片的 PDF。
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

// New 创建固定画布后端，使用内置字体做排版度量。
func New() *Renderer {
	return &Renderer{shaper: typeface.NewShaper()}
}

// LayoutLines 实现 layout.Typesetter，与流式后端共享字体度量。
func (r *Renderer) LayoutLines(content string, width float64, fontSize, lineHeight float64, bold bool) ([]layout.TextLine, error) {
	return r.shaper.LayoutLines(content, width, fontSize, lineHeight, bold)
}

// BeginDocument 按画布尺寸打开一个新的 PDF 文档。
func (r *Renderer) BeginDocument(cfg renderer.Config) error {
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return fmt.Errorf("画布尺寸非法: %.2f x %.2f", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	r.buf = &bytes.Buffer{}
	r.writer = pdf.New(r.buf, cfg.CanvasWidth, cfg.CanvasHeight, nil)
	r.pages = 0
	keywords := strings.Join(cfg.Meta.Keywords, ", ")
	r.writer.SetInfo(cfg.Meta.Title, cfg.Meta.Subject, keywords, cfg.Meta.Author, cfg.Meta.Creator)
	return nil
}

// RenderPage 绘制一张幻灯片。画布边界之外的部分由裁剪区静默丢弃，
// 超出不是错误。
func (r *Renderer) RenderPage(page layout.Page) error {
	if r.writer == nil {
		return fmt.Errorf("尚未调用 BeginDocument")
	}
	if r.pages > 0 {
		r.writer.NewPage(page.Width, page.Height)
	}
	c := canvas.New(page.Width, page.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	if err := renderer.DrawPlacements(ctx, r.shaper, page.Placements); err != nil {
		return err
	}
	// 页面媒体框即裁剪边界，超出画布的内容不会出现在产物里
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
