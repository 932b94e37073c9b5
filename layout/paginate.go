package layout

// 分页器：维护当前打开的页，吸收放置指令，最后把所有页一次性取出。
// 页边界有三种来源：作者的页分组、显式 Break、以及流式模式下的纵向溢出；
// 固定画布模式永不因溢出换页，只在页上打 Clipped 标记。

type pageAccumulator struct {
	placements []Placement
	clipped    bool
}

type pageCollector struct {
	geom Geometry
	accs []*pageAccumulator
}

func newPageCollector(geom Geometry) *pageCollector {
	pc := &pageCollector{geom: geom}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	return pc.accs[len(pc.accs)-1]
}

// contentTop 返回内容区域顶部：流式为上边距，画布为固定正文偏移。
func (pc *pageCollector) contentTop() float64 {
	if pc.geom.Mode == ModeCanvas {
		return bodyOffset
	}
	return pc.geom.Margin.Top
}

// maxContentY 返回可用内容底部。
func (pc *pageCollector) maxContentY() float64 {
	if pc.geom.Mode == ModeCanvas {
		return pc.geom.Height
	}
	return pc.geom.Height - pc.geom.Margin.Bottom
}

// append 把一条放置指令挂到当前页，并回填页内绘制序号与来源块下标。
func (pc *pageCollector) append(block int, p Placement) {
	acc := pc.curr()
	p.Seq = len(acc.placements)
	p.Block = block
	acc.placements = append(acc.placements, p)
}

// pages 取出全部页面；最后一个打开的页即使只有一个块也会被保留。
func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:      pc.geom.Width,
			Height:     pc.geom.Height,
			Margin:     pc.geom.Margin,
			Placements: acc.placements,
			Clipped:    acc.clipped,
		}
	}
	return out
}
