package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"

	"slidegen/outline"
)

func sampleOutline() *outline.PresentationOutline {
	return &outline.PresentationOutline{
		Title:    "數位轉型策略",
		Subtitle: "自動生成簡報",
		Slides: []outline.SlideData{
			{Layout: outline.LayoutTitle, Title: "數位轉型策略", Subtitle: "自動生成簡報"},
			{Layout: outline.LayoutSection, Title: "現況分析", Subtitle: "深入探討關鍵議題"},
			{Layout: outline.LayoutBullets, Title: "三大重點", Bullets: []string{"流程自動化", "資料驅動決策", "客戶體驗優化"}},
			{Layout: outline.LayoutTwoColumn, Title: "雙軌並行", LeftTitle: "方面一", RightTitle: "方面二",
				LeftColumn: []string{"短期調整"}, RightColumn: []string{"長期投資"}},
			{Layout: outline.LayoutImageLeft, Title: "概念圖解", Bullets: []string{"視覺化說明"}, ImagePrompt: "modern workspace"},
			{Layout: outline.LayoutImageRight, Title: "應用場景", Bullets: []string{"實際案例"}, ImagePrompt: "business meeting"},
			{Layout: outline.LayoutKeyStats, Title: "成效指標", Stats: []outline.StatItem{
				{Value: "95%", Label: "達成率"}, {Value: "3x", Label: "效率提升"}, {Value: "50+", Label: "應用場景"}}},
			{Layout: outline.LayoutComparison, Title: "優劣分析", LeftTitle: "優勢", RightTitle: "挑戰",
				LeftColumn: []string{"彈性"}, RightColumn: []string{"成本"}},
			{Layout: outline.LayoutConclusion, Title: "結論與展望", Bullets: []string{"核心要點回顧", "下一步行動計畫"}},
		},
	}
}

// readDeckText opens a rendered deck and flattens all rich text per slide.
func readDeckText(t *testing.T, data []byte) []string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write deck: %v", err)
	}

	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		t.Fatalf("failed to read deck back: %v", err)
	}

	var texts []string
	for _, slide := range pres.GetAllSlides() {
		var sb strings.Builder
		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			for _, para := range rts.GetParagraphs() {
				for _, elem := range para.GetElements() {
					if run, ok := elem.(*ppt.TextRun); ok {
						sb.WriteString(run.GetText())
					}
				}
				sb.WriteString("\n")
			}
		}
		texts = append(texts, sb.String())
	}
	return texts
}

func TestCodeDrawnRendererAllLayouts(t *testing.T) {
	r := NewCodeDrawnRenderer()
	o := sampleOutline()

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("rendered deck is empty")
	}

	texts := readDeckText(t, data)
	if len(texts) != len(o.Slides) {
		t.Fatalf("deck has %d slides, want %d", len(texts), len(o.Slides))
	}
	for i, slide := range o.Slides {
		if !strings.Contains(texts[i], slide.Title) {
			t.Errorf("slide %d is missing its title %q", i, slide.Title)
		}
	}
}

func TestCodeDrawnRendererSlideNumbers(t *testing.T) {
	r := NewCodeDrawnRenderer()
	o := sampleOutline()

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	texts := readDeckText(t, data)

	// Content slides carry "n / total"; the title and conclusion do not.
	if strings.Contains(texts[0], "1 / 9") {
		t.Error("title slide should not carry a slide number")
	}
	if !strings.Contains(texts[2], "3 / 9") {
		t.Errorf("bullets slide missing its page number: %q", texts[2])
	}
}

func TestCodeDrawnRendererSparseSlides(t *testing.T) {
	r := NewCodeDrawnRenderer()
	o := &outline.PresentationOutline{
		Title: "稀疏資料",
		Slides: []outline.SlideData{
			{Layout: outline.LayoutTitle, Title: "稀疏資料"},
			{Layout: outline.LayoutBullets, Title: "無內容"},
			{Layout: outline.LayoutTwoColumn, Title: "空欄位"},
			{Layout: outline.LayoutKeyStats, Title: "無數據"},
			{Layout: outline.LayoutConclusion, Title: "結束"},
		},
	}

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render with absent optional fields failed: %v", err)
	}
	if len(readDeckText(t, data)) != 5 {
		t.Error("sparse outline should still render one slide per entry")
	}
}

func TestCodeDrawnRendererStatsCap(t *testing.T) {
	r := NewCodeDrawnRenderer()
	o := &outline.PresentationOutline{
		Title: "數據",
		Slides: []outline.SlideData{
			{Layout: outline.LayoutKeyStats, Title: "數據", Stats: []outline.StatItem{
				{Value: "1", Label: "a"}, {Value: "2", Label: "b"}, {Value: "3", Label: "c"},
				{Value: "4", Label: "d"}, {Value: "5", Label: "e"},
			}},
		},
	}

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	text := readDeckText(t, data)[0]
	if !strings.Contains(text, "4") {
		t.Error("fourth stat should be drawn")
	}
	if strings.Contains(text, "5") {
		t.Error("fifth stat should be dropped")
	}
}

func TestCodeDrawnRendererUnknownLayoutFallsBack(t *testing.T) {
	r := NewCodeDrawnRenderer()
	o := &outline.PresentationOutline{
		Title: "未知",
		Slides: []outline.SlideData{
			{Layout: "freeform", Title: "未知佈局", Bullets: []string{"仍要呈現"}},
		},
	}

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	text := readDeckText(t, data)[0]
	if !strings.Contains(text, "未知佈局") || !strings.Contains(text, "仍要呈現") {
		t.Errorf("unknown layout not rendered as bullets: %q", text)
	}
}

func TestSelectorForTemplate(t *testing.T) {
	s := NewSelector(NewTemplateStore(t.TempDir()), nil)

	if _, ok := s.ForTemplate("").(*CodeDrawnRenderer); !ok {
		t.Error("empty template key should select the code-drawn renderer")
	}
	if _, ok := s.ForTemplate(CodeDrawnTemplateID).(*CodeDrawnRenderer); !ok {
		t.Error("code_drawn should select the code-drawn renderer")
	}
	if _, ok := s.ForTemplate("ocean_gradient").(*TemplateRenderer); !ok {
		t.Error("named template should select the template renderer")
	}
}
