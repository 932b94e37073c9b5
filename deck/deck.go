package deck

// 该包定义与布局无关的内容模型：一份 Deck 由若干逻辑页（幻灯片）组成，
// 每页是顺序排列的内容块。块之间没有引用关系，序列构建后在渲染期间不可变，
// 同一份 Deck 可以先后交给流式文档后端与固定画布后端。

// Block 是内容块的统一接口，variant 只用于校验信息与调试输出。
type Block interface {
	variant() string
}

// Title 是页标题：流式后端按普通大号文本排版，
// 固定画布后端将其放进顶部标题条。
type Title struct {
	Text  string
	Style string
}

// Paragraph 是普通段落文本。
type Paragraph struct {
	Text  string
	Style string
}

// BulletList 是顺序排列的条目列表。
// 空字符串条目表示一个空行间隔而不是一个条目，这一等价关系必须保留。
type BulletList struct {
	Items []string
	Style string
}

// TwoColumn 是并排的两栏条目，栏宽相等，两栏的纵向游标彼此独立。
// Columns 必须恰好包含两栏，否则结构校验失败。
type TwoColumn struct {
	Columns [][]string
	Style   string
}

// Table 是行列结构的多行文本表格。
// Columns 为声明的列数，为 0 时取第一行的单元格数。
// Ratios 为可选的列宽比例，省略时平均分配。
// Header 为真时第一行按 HeaderStyle 渲染。
type Table struct {
	Rows        [][]string
	Columns     int
	Ratios      []float64
	Header      bool
	Style       string
	HeaderStyle string
}

// Spacer 是显式的纵向间隔（mm）。
type Spacer struct {
	Height float64
}

// Break 强制在下一个块之前开始新的页/幻灯片。
type Break struct{}

func (Title) variant() string      { return "title" }
func (Paragraph) variant() string  { return "paragraph" }
func (BulletList) variant() string { return "bullets" }
func (TwoColumn) variant() string  { return "columns" }
func (Table) variant() string      { return "table" }
func (Spacer) variant() string     { return "spacer" }
func (Break) variant() string      { return "break" }

// Variant 返回块的类型名，供错误信息与调试 JSON 使用。
func Variant(b Block) string {
	if b == nil {
		return "nil"
	}
	return b.variant()
}

// Slide 是一个逻辑页的内容块序列。
type Slide []Block

// Deck 是一次生成的完整输入：按页分组的内容块序列。
// 每次生成新建一份，渲染结束即丢弃，不做持久化。
type Deck struct {
	Title  string
	Slides []Slide
}

// ColumnCount 返回表格的有效列数。
func (t Table) ColumnCount() int {
	if t.Columns > 0 {
		return t.Columns
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}
