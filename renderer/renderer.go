package renderer

import (
	"fmt"
	"os"

	"github.com/ByLCY/vellum/layout"
)

// Renderer 是两个后端共享的渲染契约：开始文档、按序渲染每一页、
// 收尾并返回完整的产物字节流。实现必须在 BeginDocument 里重置全部
// 内部状态，先后两次生成之间不共享任何可变状态。
// 后端必须按 Placement 的顺序绘制：阅读顺序即 z 序，
// 这是两个后端之间唯一承诺的等价性。
type Renderer interface {
	BeginDocument(cfg Config) error
	RenderPage(page layout.Page) error
	EndDocument() ([]byte, error)
}

// Meta 保存写入产物的文档元信息。核心不生成时间戳等动态字段，
// 相同输入两次渲染得到逐字节相同的产物。
type Meta struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords []string
}

// Config 枚举渲染后端消费的全部配置；其余视觉参数一律经由样式注册表。
// 尺寸与边距单位均为 mm。
type Config struct {
	// 流式后端的物理页面尺寸与方向。
	PageWidth  float64
	PageHeight float64
	Landscape  bool
	Margin     layout.Margin
	// 固定画布后端的画布尺寸。
	CanvasWidth  float64
	CanvasHeight float64
	Meta         Meta
}

// DefaultConfig 返回横向 Letter 页面加 10×7.5 英寸画布的默认配置。
func DefaultConfig() Config {
	return Config{
		PageWidth:    215.9,
		PageHeight:   279.4,
		Landscape:    true,
		Margin:       layout.Margin{Top: 12.7, Right: 12.7, Bottom: 12.7, Left: 12.7},
		CanvasWidth:  254,
		CanvasHeight: 190.5,
	}
}

// PageSize 返回应用方向后的页面宽高。
func (c Config) PageSize() (float64, float64) {
	w, h := c.PageWidth, c.PageHeight
	if c.Landscape && w < h {
		w, h = h, w
	}
	return w, h
}

// FlowGeometry 返回流式后端对应的布局几何。
func (c Config) FlowGeometry() layout.Geometry {
	w, h := c.PageSize()
	return layout.Geometry{Width: w, Height: h, Margin: c.Margin, Mode: layout.ModeFlow}
}

// CanvasGeometry 返回固定画布后端对应的布局几何。
// backdrop 为可选的底色样式名。
func (c Config) CanvasGeometry(backdrop string) layout.Geometry {
	return layout.Geometry{
		Width:    c.CanvasWidth,
		Height:   c.CanvasHeight,
		Margin:   c.Margin,
		Mode:     layout.ModeCanvas,
		Backdrop: backdrop,
	}
}

// WriteError 表示最终产物无法写入目标位置。单次生成不做重试，
// 重试策略属于调用方。
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("产物写入 %s 失败: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Render 串联一次完整的渲染：BeginDocument、逐页 RenderPage、EndDocument。
func Render(r Renderer, cfg Config, res *layout.Result) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}
	if res == nil || len(res.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	if err := r.BeginDocument(cfg); err != nil {
		return nil, err
	}
	for i := range res.Pages {
		if err := r.RenderPage(res.Pages[i]); err != nil {
			return nil, fmt.Errorf("渲染第 %d 页失败: %w", i, err)
		}
	}
	return r.EndDocument()
}

// WriteArtifact 把产物一次性写入目标文件，失败时包装为 WriteError。
func WriteArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
