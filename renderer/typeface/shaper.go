package typeface

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/vellum/fonts"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/style"
)

// Shaper 基于 github.com/tdewolff/canvas 的字体度量实现 layout.Typesetter。
// 内置常规与加粗两个字重，字体族懒加载并缓存，可被多个后端共享。
type Shaper struct {
	mu       sync.Mutex
	families map[bool]*canvas.FontFamily // key: bold
}

var _ layout.Typesetter = (*Shaper)(nil)

// NewShaper 创建一个空的字体缓存。
func NewShaper() *Shaper {
	return &Shaper{families: map[bool]*canvas.FontFamily{}}
}

func (s *Shaper) family(bold bool) (*canvas.FontFamily, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fam, ok := s.families[bold]; ok {
		return fam, nil
	}

	load := fonts.Regular
	name := "vellum-regular"
	if bold {
		load = fonts.Bold
		name = "vellum-bold"
	}
	data, err := load()
	if err != nil {
		return nil, err
	}
	fam := canvas.NewFontFamily(name)
	if err := fam.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载内置字体 %s 失败: %w", name, err)
	}
	s.families[bold] = fam
	return fam, nil
}

// Face 按字号（mm）、颜色与字重创建字体面。字体系统内部使用 pt，
// 这里在边界做一次 mm→pt。
func (s *Shaper) Face(fontSize float64, col style.Color, bold bool) (*canvas.FontFace, error) {
	fam, err := s.family(bold)
	if err != nil {
		return nil, err
	}
	return fam.Face(fontSize*layout.MmToPt, Color(col), canvas.FontRegular, canvas.FontNormal), nil
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：width/fontSize/lineHeight 入参均为毫米（mm）。
func (s *Shaper) LayoutLines(content string, width float64, fontSize, lineHeight float64, bold bool) ([]layout.TextLine, error) {
	face, err := s.Face(fontSize, style.Color{R: 30, G: 30, B: 30}, bold)
	if err != nil {
		return nil, err
	}

	lines := greedyWrapTokens(content, width, face)
	metrics := face.Metrics()
	textHeight := metrics.LineHeight
	if textHeight <= 0 {
		textHeight = lineHeight
	}
	leading := math.Max(lineHeight-textHeight, 0)
	if len(lines) == 0 {
		lines = []layout.TextLine{{
			Content: "",
			Width:   0,
			Height:  textHeight,
		}}
	}
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = textHeight
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

// Color 把样式颜色转为 canvas 颜色。
func Color(c style.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
