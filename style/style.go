package style

// 该包管理一次生成过程中的命名样式表。
// 所有视觉参数（字号、颜色、对齐、间距）都通过注册表按名字解析，
// 渲染后端不接受任何临时的视觉参数。

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Align 表示文本水平对齐方式。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignJustify
)

// String returns the lower-case name used in JSON dumps and the DSL.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Style 描述一个不可变的命名样式。
// FontSize 单位为 pt，SpacingBefore/SpacingAfter 单位为 mm（与布局坐标一致）。
// Background 为可选的填充色：幻灯片标题条与表格表头行使用它，正文样式留空。
type Style struct {
	FontSize      float64 `json:"fontSize"`
	Color         Color   `json:"color"`
	Align         Align   `json:"align"`
	SpacingBefore float64 `json:"spacingBefore"`
	SpacingAfter  float64 `json:"spacingAfter"`
	Bold          bool    `json:"bold"`
	Background    *Color  `json:"background,omitempty"`
}
