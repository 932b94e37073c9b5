package layout

// Options 配置布局阶段的依赖与输入数据。
type Options struct {
	// Typesetter 是必需的排版后端。
	Typesetter Typesetter
	// Data 为可选的 ${path} 绑定数据，在放置阶段插值进文本内容。
	Data any
}

// Typesetter 负责在给定宽度约束下把文本拆成可绘制的行。
// fontSize/lineHeight 单位均为 mm；返回行的 Width/Height 亦为 mm。
type Typesetter interface {
	LayoutLines(content string, width float64, fontSize, lineHeight float64, bold bool) ([]TextLine, error)
}
