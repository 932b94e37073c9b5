package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/vellum/deck"
	"github.com/ByLCY/vellum/style"
)

// stubTypesetter 是仅用于测试的最小排版实现：按显式换行划分，
// 每行高度等于字号，避免引入 renderer 造成循环依赖。
type stubTypesetter struct{}

func (stubTypesetter) LayoutLines(content string, width float64, fontSize, lineHeight float64, bold bool) ([]TextLine, error) {
	parts := strings.Split(content, "\n")
	lines := make([]TextLine, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, TextLine{Content: p, Width: float64(len(p)), Height: fontSize})
	}
	return lines, nil
}

func testStyles() *style.Registry {
	bar := style.Color{R: 139, G: 69, B: 255}
	bg := style.Color{R: 15, G: 15, B: 35}
	reg := style.NewRegistry()
	reg.MustRegister("heading", style.Style{FontSize: 32, Bold: true, Background: &bar})
	reg.MustRegister("body", style.Style{FontSize: 14})
	reg.MustRegister("backdrop", style.Style{Background: &bg})
	return reg
}

func flowGeom() Geometry {
	return Geometry{
		Width:  100,
		Height: 40,
		Margin: Margin{Top: 5, Right: 5, Bottom: 5, Left: 5},
		Mode:   ModeFlow,
	}
}

func canvasGeom() Geometry {
	return Geometry{
		Width:    254,
		Height:   190.5,
		Margin:   Margin{Top: 12.7, Right: 12.7, Bottom: 12.7, Left: 12.7},
		Mode:     ModeCanvas,
		Backdrop: "backdrop",
	}
}

func composeDeck(t *testing.T, d *deck.Deck, geom Geometry) *Result {
	t.Helper()
	res, err := Compose(d, testStyles(), geom, Options{Typesetter: stubTypesetter{}})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return res
}

// textHeight 返回 stubTypesetter 下 n 行文本的总高度（mm）。
func textHeight(fontSizePt float64, n int) float64 {
	fs := fontSizePt * PtToMm
	leading := fs*lineHeightFactor - fs
	return float64(n)*fs + float64(n-1)*leading
}

// TestComposeOrderPreserved 验证页内放置顺序等于作者顺序。
func TestComposeOrderPreserved(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Paragraph{Text: "one", Style: "body"},
		deck.BulletList{Items: []string{"a", "b"}, Style: "body"},
		deck.Paragraph{Text: "two", Style: "body"},
	}}}
	geom := flowGeom()
	geom.Height = 500 // 全部放进一页
	res := composeDeck(t, d, geom)
	if len(res.Pages) != 1 {
		t.Fatalf("期望 1 页，实际 %d", len(res.Pages))
	}
	pls := res.Pages[0].Placements
	for i, p := range pls {
		if p.Seq != i {
			t.Fatalf("Seq 应与切片顺序一致: 第 %d 条 Seq=%d", i, p.Seq)
		}
		if i > 0 && pls[i].Block < pls[i-1].Block {
			t.Fatalf("Block 序号不应回退: %d 之后是 %d", pls[i-1].Block, pls[i].Block)
		}
		if i > 0 && pls[i].Y < pls[i-1].Y {
			t.Fatalf("流式页内纵向位置不应回退")
		}
	}
	if len(pls) != 4 { // 段落 + 两条条目 + 段落
		t.Fatalf("期望 4 条放置指令，实际 %d", len(pls))
	}
}

// TestSlideAndBreakStartNewPages 验证幻灯片边界与显式分页都会开新页。
func TestSlideAndBreakStartNewPages(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{
		{
			deck.Paragraph{Text: "a", Style: "body"},
			deck.Break{},
			deck.Paragraph{Text: "b", Style: "body"},
		},
		{deck.Paragraph{Text: "c", Style: "body"}},
	}}
	for _, geom := range []Geometry{flowGeom(), canvasGeom()} {
		res := composeDeck(t, d, geom)
		if len(res.Pages) != 3 {
			t.Fatalf("%s 模式期望 3 页，实际 %d", geom.Mode, len(res.Pages))
		}
	}
}

// TestFlowOverflowPushesWholeBlock 验证装不下的块整体推到下一页，
// 永不跨页拆分，且新页顶部从上边距开始。
func TestFlowOverflowPushesWholeBlock(t *testing.T) {
	tall := strings.Repeat("line\n", 5) + "line" // 6 行
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Paragraph{Text: "short", Style: "body"},
		deck.Paragraph{Text: tall, Style: "body"},
	}}}
	geom := flowGeom()
	res := composeDeck(t, d, geom)
	if len(res.Pages) != 2 {
		t.Fatalf("期望溢出换页成 2 页，实际 %d", len(res.Pages))
	}
	if n := len(res.Pages[0].Placements); n != 1 {
		t.Fatalf("第 0 页应只有短段落，实际 %d 条", n)
	}
	second := res.Pages[1].Placements
	if len(second) != 1 {
		t.Fatalf("高块不应拆分，第 1 页应恰有 1 条，实际 %d", len(second))
	}
	if second[0].Y != geom.Margin.Top {
		t.Fatalf("新页顶部应为上边距 %g，实际 %g", geom.Margin.Top, second[0].Y)
	}
	if want := textHeight(14, 6); math.Abs(second[0].Height-want) > 1e-9 {
		t.Fatalf("块高度应保持完整: got=%g want=%g", second[0].Height, want)
	}
}

// TestCanvasNeverReflows 验证画布模式溢出不换页，只打 Clipped 标记。
func TestCanvasNeverReflows(t *testing.T) {
	tall := strings.Repeat("line\n", 60) + "line"
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Paragraph{Text: "short", Style: "body"},
		deck.Paragraph{Text: tall, Style: "body"},
	}}}
	res := composeDeck(t, d, canvasGeom())
	if len(res.Pages) != 1 {
		t.Fatalf("画布模式不应自动换页，实际 %d 页", len(res.Pages))
	}
	if !res.Pages[0].Clipped {
		t.Fatalf("溢出画布应置 Clipped 标记")
	}
}

// TestCanvasTitleBarAndBackdrop 验证画布页的合成元素：
// 底色最先绘制，标题条矩形在标题文本之前，正文从固定偏移开始。
func TestCanvasTitleBarAndBackdrop(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Title{Text: "Overview", Style: "heading"},
		deck.Paragraph{Text: "body text", Style: "body"},
	}}}
	geom := canvasGeom()
	res := composeDeck(t, d, geom)
	pls := res.Pages[0].Placements

	if len(pls) != 4 {
		t.Fatalf("期望底色+标题条+标题+正文共 4 条，实际 %d", len(pls))
	}
	backdrop := pls[0]
	if backdrop.Kind != KindRect || backdrop.Block != -1 ||
		backdrop.Width != geom.Width || backdrop.Height != geom.Height {
		t.Fatalf("第一条应为整页底色: %+v", backdrop)
	}
	bar := pls[1]
	if bar.Kind != KindRect || bar.Y != 0 || bar.Width != geom.Width || bar.Height != titleBarHeight {
		t.Fatalf("标题条矩形不正确: %+v", bar)
	}
	title := pls[2]
	if title.Kind != KindText || title.Y < 0 || title.Y+title.Height > titleBarHeight {
		t.Fatalf("标题文本应垂直居中于标题条内: %+v", title)
	}
	body := pls[3]
	if body.Y != bodyOffset {
		t.Fatalf("正文应从固定偏移 %g 开始，实际 %g", bodyOffset, body.Y)
	}
}

// TestBulletBlankItem 验证空字符串条目产生空行间隔而不是条目。
func TestBulletBlankItem(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.BulletList{Items: []string{"a", "", "b"}, Style: "body"},
	}}}
	geom := flowGeom()
	geom.Height = 500
	res := composeDeck(t, d, geom)
	pls := res.Pages[0].Placements
	if len(pls) != 2 {
		t.Fatalf("空条目不应有放置指令，期望 2 条，实际 %d", len(pls))
	}
	h := textHeight(14, 1)
	wantGap := h + bulletGap + blankGap
	if got := pls[1].Y - pls[0].Y; math.Abs(got-wantGap) > 1e-9 {
		t.Fatalf("空条目间隔不正确: got=%g want=%g", got, wantGap)
	}
	if pls[0].X != geom.Margin.Left+bulletIndent {
		t.Fatalf("条目应缩进 %g，实际 X=%g", bulletIndent, pls[0].X)
	}
}

// TestTwoColumnIndependentCursors 验证两栏平分宽度、互不影响高度。
func TestTwoColumnIndependentCursors(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.TwoColumn{Columns: [][]string{
			{"l1", "l2", "l3"},
			{"r1"},
		}, Style: "body"},
	}}}
	geom := flowGeom()
	geom.Height = 500
	res := composeDeck(t, d, geom)
	pls := res.Pages[0].Placements
	if len(pls) != 4 {
		t.Fatalf("期望 4 条放置指令，实际 %d", len(pls))
	}
	usable := geom.Width - geom.Margin.Left - geom.Margin.Right
	colWidth := (usable - columnGutter) / 2
	left, right := pls[0], pls[3]
	if math.Abs((right.X-bulletIndent)-(left.X-bulletIndent)-colWidth-columnGutter) > 1e-9 {
		t.Fatalf("右栏起点应偏移一栏宽加栏距: left=%g right=%g", left.X, right.X)
	}
	if left.Y != right.Y {
		t.Fatalf("两栏应从同一高度开始: %g vs %g", left.Y, right.Y)
	}
}

// TestTableRowHeights 验证行高取行内最高单元格，列宽按比例分配。
func TestTableRowHeights(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Table{
			Rows:   [][]string{{"h", "x\ny"}, {"a", "b"}},
			Ratios: []float64{1, 3},
			Style:  "body",
		},
	}}}
	geom := flowGeom()
	geom.Height = 500
	res := composeDeck(t, d, geom)
	pls := res.Pages[0].Placements
	if len(pls) != 1 || pls[0].Kind != KindTable {
		t.Fatalf("期望单条表格放置指令: %+v", pls)
	}
	table := pls[0].Table

	usable := geom.Width - geom.Margin.Left - geom.Margin.Right
	if math.Abs(table.ColumnWidths[0]-usable/4) > 1e-9 || math.Abs(table.ColumnWidths[1]-usable*3/4) > 1e-9 {
		t.Fatalf("列宽未按 1:3 分配: %v", table.ColumnWidths)
	}

	row0 := table.Rows[0]
	wantH := textHeight(14, 2) + 2*cellPadding
	if math.Abs(row0.Height-wantH) > 1e-9 {
		t.Fatalf("首行行高应取两行单元格: got=%g want=%g", row0.Height, wantH)
	}
	for _, cell := range row0.Cells {
		if cell.Height != row0.Height {
			t.Fatalf("行内单元格应等高: %g vs %g", cell.Height, row0.Height)
		}
	}
	if table.Rows[1].Y != row0.Y+row0.Height {
		t.Fatalf("行应连续堆叠")
	}
	totalH := row0.Height + table.Rows[1].Height
	if math.Abs(pls[0].Height-totalH) > 1e-9 {
		t.Fatalf("表格总高应为行高之和: got=%g want=%g", pls[0].Height, totalH)
	}
}

// TestSpacerAdvancesCursor 验证间隔块推进游标但不产生放置指令。
func TestSpacerAdvancesCursor(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Paragraph{Text: "a", Style: "body"},
		deck.Spacer{Height: 10},
		deck.Paragraph{Text: "b", Style: "body"},
	}}}
	geom := flowGeom()
	geom.Height = 500
	res := composeDeck(t, d, geom)
	pls := res.Pages[0].Placements
	if len(pls) != 2 {
		t.Fatalf("间隔块不应有放置指令，期望 2 条，实际 %d", len(pls))
	}
	want := textHeight(14, 1) + blockSpacing + 10
	if got := pls[1].Y - pls[0].Y; math.Abs(got-want) > 1e-9 {
		t.Fatalf("间隔推进不正确: got=%g want=%g", got, want)
	}
}

// TestComposeDeterministic 验证同一输入两次布局结果完全一致。
func TestComposeDeterministic(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{
		{
			deck.Title{Text: "Overview", Style: "heading"},
			deck.BulletList{Items: []string{"a", "", "b"}, Style: "body"},
			deck.Table{Rows: [][]string{{"x", "y"}}, Style: "body"},
		},
		{deck.Paragraph{Text: "second", Style: "body"}},
	}}
	for _, geom := range []Geometry{flowGeom(), canvasGeom()} {
		a := composeDeck(t, d, geom)
		b := composeDeck(t, d, geom)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("%s 模式两次布局不一致 (-first +second):\n%s", geom.Mode, diff)
		}
	}
}

// TestComposeUnknownStyle 验证未注册样式中止布局并携带样式名。
func TestComposeUnknownStyle(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Paragraph{Text: "a", Style: "missing"},
	}}}
	_, err := Compose(d, testStyles(), flowGeom(), Options{Typesetter: stubTypesetter{}})
	var unknown *style.UnknownStyleError
	if !errors.As(err, &unknown) {
		t.Fatalf("期望 UnknownStyleError，实际 %v", err)
	}
	if unknown.Name != "missing" {
		t.Fatalf("错误应携带样式名，实际 %q", unknown.Name)
	}
}

// TestComposeRejectsInvalidDeck 验证结构错误在布局之前被拦下。
func TestComposeRejectsInvalidDeck(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.TwoColumn{Columns: [][]string{{"one"}}, Style: "body"},
	}}}
	_, err := Compose(d, testStyles(), flowGeom(), Options{Typesetter: stubTypesetter{}})
	var se *deck.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("期望 StructuralError，实际 %v", err)
	}
}

// TestInterpolationAtPlacement 验证绑定数据在放置时插值。
func TestInterpolationAtPlacement(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{{
		deck.Paragraph{Text: "Hello, ${user.name}!", Style: "body"},
	}}}
	geom := flowGeom()
	geom.Height = 500
	data := map[string]any{"user": map[string]any{"name": "Ada"}}
	res, err := Compose(d, testStyles(), geom, Options{Typesetter: stubTypesetter{}, Data: data})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	tb := res.Pages[0].Placements[0].Text
	if tb == nil || tb.Content != "Hello, Ada!" {
		t.Fatalf("插值结果不正确: %+v", tb)
	}
}
