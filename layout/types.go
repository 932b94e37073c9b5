package layout

// 该文件定义布局结果与放置指令，供布局计算、两个渲染后端与调试 JSON 共用。

import "github.com/ByLCY/vellum/style"

// Mode 区分两种目标版式。
type Mode int

const (
	// ModeFlow 是流式文档：固定页面尺寸，内容纵向流动，超出时自动换页。
	ModeFlow Mode = iota
	// ModeCanvas 是固定画布幻灯片：每个逻辑页一张画布，绝对定位，永不回流。
	ModeCanvas
)

func (m Mode) String() string {
	if m == ModeCanvas {
		return "canvas"
	}
	return "flow"
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Geometry 描述一次布局计算的目标画布模型。
// Backdrop 仅在 ModeCanvas 下生效：给定样式名时，
// 每张画布先铺一层该样式 Background 颜色的底色。
type Geometry struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Margin   Margin  `json:"margin"`
	Mode     Mode    `json:"mode"`
	Backdrop string  `json:"backdrop,omitempty"`
}

// Kind 标记一条放置指令的原语类型。
type Kind int

const (
	KindText Kind = iota
	KindRect
	KindTable
)

// TextLine 表示排版后的一行文本及其宽高（mm）。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// TextBox 表示一个已解析样式、已折行的文本块。
// FontSize/LineHeight 均为 mm。
type TextBox struct {
	Content    string      `json:"content"`
	FontSize   float64     `json:"fontSize"`
	LineHeight float64     `json:"lineHeight"`
	Color      style.Color `json:"color"`
	Bold       bool        `json:"bold,omitempty"`
	Align      style.Align `json:"align"`
	Lines      []TextLine  `json:"lines"`
}

// RectBox 表示一个纯色矩形（画布底色、标题条）。
type RectBox struct {
	Fill        *style.Color `json:"fill,omitempty"`
	Stroke      *style.Color `json:"stroke,omitempty"`
	StrokeWidth float64      `json:"strokeWidth,omitempty"`
}

// CellBox 是表格单元格：坐标为页面绝对坐标（mm）。
type CellBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   TextBox `json:"text"`
}

// RowBox 记录一行的基线与高度；行内所有单元格等高。
type RowBox struct {
	Y        float64   `json:"y"`
	Height   float64   `json:"height"`
	IsHeader bool      `json:"isHeader,omitempty"`
	Cells    []CellBox `json:"cells"`
}

// TableBox 保存整张表的放置结果。
// Inset 是测量单元格文本时使用的内边距，后端绘制文本时按同一值偏移。
type TableBox struct {
	ColumnWidths []float64    `json:"columnWidths"`
	Rows         []RowBox     `json:"rows"`
	BorderColor  style.Color  `json:"borderColor"`
	HeaderFill   *style.Color `json:"headerFill,omitempty"`
	Inset        float64      `json:"inset"`
}

// Placement 是一条后端无关的放置指令：位置、尺寸与已解析的内容。
// Seq 是页内绘制顺序（等于阅读顺序与 z 序），Block 是来源块在其页序列
// 中的下标（底色等合成元素为 -1）。每次生成重新计算，从不缓存。
type Placement struct {
	Seq    int       `json:"seq"`
	Block  int       `json:"block"`
	Kind   Kind      `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Text   *TextBox  `json:"text,omitempty"`
	Rect   *RectBox  `json:"rect,omitempty"`
	Table  *TableBox `json:"table,omitempty"`
}

// Page 是一个可以直接交给后端绘制的页/幻灯片。
// Clipped 仅在固定画布模式下置位：内容超出画布属于作者侧问题，不是错误。
type Page struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Margin     Margin      `json:"margin"`
	Placements []Placement `json:"placements"`
	Clipped    bool        `json:"clipped,omitempty"`
}

// Result 保存一次布局计算的全部页面。
type Result struct {
	Mode  Mode   `json:"mode"`
	Pages []Page `json:"pages"`
}
