package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/vellum/deck"
	"github.com/ByLCY/vellum/dsl"
	"github.com/ByLCY/vellum/layout"
	"github.com/ByLCY/vellum/renderer"
	"github.com/ByLCY/vellum/renderer/flowpdf"
	"github.com/ByLCY/vellum/renderer/slidepdf"
	"github.com/ByLCY/vellum/style"
)

func main() {
	input := flag.String("in", "", "deck 大纲文件路径（为空时使用内置示例）")
	outDoc := flag.String("out-doc", "output/deck.pdf", "流式文档输出路径")
	outDeck := flag.String("out-deck", "output/slides.pdf", "幻灯片输出路径")
	debugDoc := flag.String("debug-doc", "", "流式布局调试 JSON 输出路径")
	debugDeck := flag.String("debug-deck", "", "画布布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到内容的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	d, err := loadDeck(*input)
	if err != nil {
		log.Fatalf("读取 deck 失败: %v", err)
	}

	reg := cosmicStyles()
	cfg := renderer.DefaultConfig()
	cfg.Meta = renderer.Meta{Title: d.Title, Creator: "vellum"}

	if err := run(d, reg, cfg, inputData, *outDoc, *debugDoc, flowpdf.New(), cfg.FlowGeometry()); err != nil {
		log.Fatalf("生成文档失败: %v", err)
	}
	fmt.Printf("已生成文档：%s\n", *outDoc)

	if err := run(d, reg, cfg, inputData, *outDeck, *debugDeck, slidepdf.New(), cfg.CanvasGeometry("backdrop")); err != nil {
		log.Fatalf("生成幻灯片失败: %v", err)
	}
	fmt.Printf("已生成幻灯片：%s\n", *outDeck)
}

func loadDeck(path string) (*deck.Deck, error) {
	if path == "" {
		return demoDeck(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开大纲文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析大纲失败: %w", err)
	}
	return doc.Deck()
}

// run 串联布局与渲染：同一份 Deck，按后端对应的几何各自计算一次布局。
func run(d *deck.Deck, reg *style.Registry, cfg renderer.Config, data any, outputPath, debugPath string, r renderer.Renderer, geom layout.Geometry) error {
	ts, ok := r.(layout.Typesetter)
	if !ok {
		return fmt.Errorf("renderer 未实现排版接口")
	}

	result, err := layout.Compose(d, reg, geom, layout.Options{Typesetter: ts, Data: data})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := renderer.Render(r, cfg, result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	return renderer.WriteArtifact(outputPath, pdfBytes)
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// cosmicStyles 注册内置示例使用的配色。
func cosmicStyles() *style.Registry {
	var (
		primary   = style.Color{R: 139, G: 69, B: 255}
		secondary = style.Color{R: 0, G: 255, B: 200}
		dark      = style.Color{R: 15, G: 15, B: 35}
		light     = style.Color{R: 240, G: 240, B: 255}
		textDark  = style.Color{R: 30, G: 30, B: 60}
		headFill  = style.Color{R: 240, G: 235, B: 255}
	)

	reg := style.NewRegistry()
	reg.MustRegister("title", style.Style{FontSize: 48, Color: secondary, Align: style.AlignCenter, SpacingAfter: 10.5, Bold: true, Background: &primary})
	reg.MustRegister("subtitle", style.Style{FontSize: 24, Color: light, Align: style.AlignCenter, SpacingAfter: 7})
	reg.MustRegister("heading", style.Style{FontSize: 32, Color: primary, SpacingAfter: 5.3, Bold: true, Background: &primary})
	reg.MustRegister("heading2", style.Style{FontSize: 20, Color: secondary, SpacingAfter: 4.2, Bold: true})
	reg.MustRegister("body", style.Style{FontSize: 14, Color: textDark, SpacingAfter: 3.5})
	reg.MustRegister("bullet", style.Style{FontSize: 12, Color: textDark, SpacingAfter: 2.8})
	reg.MustRegister("table-head", style.Style{FontSize: 12, Color: primary, Bold: true, Background: &headFill})
	reg.MustRegister("backdrop", style.Style{Background: &dark})
	return reg
}

// demoDeck 返回内置示例，覆盖全部内容块类型。
func demoDeck() *deck.Deck {
	return &deck.Deck{
		Title: "DreamMarket Pitch",
		Slides: []deck.Slide{
			{
				deck.Spacer{Height: 38},
				deck.Title{Text: "DreamMarket", Style: "title"},
				deck.Spacer{Height: 7.6},
				deck.Paragraph{Text: "The Marketplace of Digital Souls", Style: "subtitle"},
				deck.Paragraph{Text: "AI Agents on ${chain.name}", Style: "subtitle"},
			},
			{
				deck.Title{Text: "Team & Project Introduction", Style: "heading"},
				deck.Spacer{Height: 5},
				deck.BulletList{Style: "bullet", Items: []string{
					"Project Name: DreamMarket - The Marketplace of Digital Souls",
					"Track: AI & Agents - AI-driven agents with decentralized infrastructure",
					"",
					"Team Composition:",
					"Full-stack development team with blockchain expertise",
					"AI integration specialists and UI/UX designers",
				}},
			},
			{
				deck.Title{Text: "Judging Criteria: Innovation & Feasibility", Style: "heading"},
				deck.Spacer{Height: 3.8},
				deck.TwoColumn{Style: "bullet", Columns: [][]string{
					{
						"Novel concept: AI personalities as tradeable assets",
						"Dynamic evolution system with personality growth",
						"Enables decentralized AI economies",
					},
					{
						"Working MVP with core features implemented",
						"Fast, low-cost transactions",
						"Clear technical roadmap",
					},
				}},
			},
			{
				deck.Title{Text: "Business Model", Style: "heading"},
				deck.Spacer{Height: 3.8},
				deck.Table{
					Style:       "bullet",
					HeaderStyle: "table-head",
					Header:      true,
					Ratios:      []float64{2, 1, 1},
					Rows: [][]string{
						{"Revenue Stream", "Fee", "Status"},
						{"Marketplace transactions", "2.5%", "Live"},
						{"Soul minting", "Fixed", "Live"},
						{"Premium evolutions", "Variable", "Planned"},
					},
				},
			},
		},
	}
}
