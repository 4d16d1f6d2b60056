package outline

import (
	"fmt"
	"strings"
)

// demoLayoutRotation is the default layout sequence for content slides. The
// rotation guarantees visual variety without any consecutive-repeat logic.
var demoLayoutRotation = []SlideLayout{
	LayoutBullets,
	LayoutImageRight,
	LayoutTwoColumn,
	LayoutKeyStats,
	LayoutImageLeft,
	LayoutBullets,
	LayoutComparison,
	LayoutSection,
}

const (
	demoTitleMaxRunes = 30
	demoChunkMaxRunes = 25
	demoMaxChunks     = 6
)

// DemoSynthesizer manufactures a structurally valid outline from raw text
// with paragraph-splitting heuristics and no external dependency. Output is
// deterministic for identical input.
type DemoSynthesizer struct {
	rotation []SlideLayout
}

// NewDemoSynthesizer creates a synthesizer with the default layout rotation.
func NewDemoSynthesizer() *DemoSynthesizer {
	return &DemoSynthesizer{rotation: demoLayoutRotation}
}

// NewDemoSynthesizerWithRotation creates a synthesizer with a caller-supplied
// layout rotation. The slice is copied so later mutation by the caller cannot
// change synthesized output.
func NewDemoSynthesizerWithRotation(rotation []SlideLayout) *DemoSynthesizer {
	r := make([]SlideLayout, len(rotation))
	copy(r, rotation)
	return &DemoSynthesizer{rotation: r}
}

// Synthesize builds an outline with exactly req.NumSlides slides: a title
// slide, NumSlides-2 content slides assigned layouts by cycling the rotation,
// and a conclusion slide.
func (d *DemoSynthesizer) Synthesize(req GenerateRequest) (*PresentationOutline, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		paragraphs = []string{text}
	}

	mainTitle := truncateRunes(paragraphs[0], demoTitleMaxRunes, "...")

	slides := make([]SlideData, 0, req.NumSlides)
	slides = append(slides, SlideData{
		Layout:       LayoutTitle,
		Title:        mainTitle,
		Subtitle:     "自動生成簡報",
		SpeakerNotes: "開場白：歡迎大家參加今天的簡報。",
	})

	contentParagraphs := paragraphs
	if len(paragraphs) > 1 {
		contentParagraphs = paragraphs[1:]
	}

	contentSlides := req.NumSlides - 2
	for i := 0; i < contentSlides; i++ {
		layout := d.rotation[i%len(d.rotation)]
		para := contentParagraphs[i%len(contentParagraphs)]
		slides = append(slides, buildContentSlide(layout, para, i))
	}

	slides = append(slides, SlideData{
		Layout: LayoutConclusion,
		Title:  "結論與展望",
		Bullets: []string{
			"核心要點回顧",
			"未來發展方向",
			"下一步行動計畫",
			"歡迎提問與討論",
		},
		SpeakerNotes: "感謝大家的聆聽，現在開放提問。",
	})

	return &PresentationOutline{
		Title:    mainTitle,
		Subtitle: "自動生成簡報",
		Theme:    DefaultStyle,
		Slides:   slides,
	}, nil
}

func buildContentSlide(layout SlideLayout, para string, idx int) SlideData {
	chunks := splitIntoChunks(para, demoChunkMaxRunes)
	for j := 0; len(chunks) < 3; j++ {
		chunks = append(chunks, fmt.Sprintf("要點 %d", j+1))
	}

	title := chunks[0]
	if title == "" {
		title = fmt.Sprintf("主題 %d", idx+1)
	}

	switch layout {
	case LayoutImageLeft, LayoutImageRight:
		return SlideData{
			Layout:      layout,
			Title:       title,
			Bullets:     capChunks(chunks[1:], 3),
			ImagePrompt: "modern technology workspace photo",
		}
	case LayoutTwoColumn, LayoutComparison:
		leftTitle, rightTitle := "方面一", "方面二"
		if layout == LayoutComparison {
			leftTitle, rightTitle = "優勢", "挑戰"
		}
		mid := len(chunks) / 2
		left := []string{"分析要點 A", "分析要點 B"}
		right := []string{"分析要點 C", "分析要點 D"}
		if mid > 1 {
			left = chunks[1 : mid+1]
			right = chunks[mid+1:]
		}
		return SlideData{
			Layout:      layout,
			Title:       title,
			LeftTitle:   leftTitle,
			RightTitle:  rightTitle,
			LeftColumn:  left,
			RightColumn: right,
		}
	case LayoutKeyStats:
		return SlideData{
			Layout: layout,
			Title:  title,
			Stats: []StatItem{
				{Value: "95%", Label: "達成率"},
				{Value: "3x", Label: "效率提升"},
				{Value: "50+", Label: "應用場景"},
			},
		}
	case LayoutSection:
		return SlideData{
			Layout:   layout,
			Title:    title,
			Subtitle: "深入探討關鍵議題",
		}
	default:
		return SlideData{
			Layout:      LayoutBullets,
			Title:       title,
			Bullets:     capChunks(chunks[1:], 4),
			ImagePrompt: "professional business concept illustration",
		}
	}
}

func splitParagraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// chunkDelimiters in priority order: full-width punctuation first, then the
// Latin equivalents.
var chunkDelimiters = []string{"。", "，", "、", "；", ". ", ", ", "; "}

// splitIntoChunks splits text into bullet-sized pieces on the first matching
// delimiter, truncating each piece to maxRunes and capping the result at
// demoMaxChunks. Without a matching delimiter it falls back to fixed-width
// rune chunking.
func splitIntoChunks(text string, maxRunes int) []string {
	for _, delim := range chunkDelimiters {
		if !strings.Contains(text, delim) {
			continue
		}
		var result []string
		for _, part := range strings.Split(text, delim) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			result = append(result, truncateRunes(part, maxRunes, ""))
		}
		return capChunks(result, demoMaxChunks)
	}

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return []string{text}
	}
	var result []string
	for i := 0; i < len(runes); i += maxRunes {
		end := i + maxRunes
		if end > len(runes) {
			end = len(runes)
		}
		result = append(result, string(runes[i:end]))
	}
	return capChunks(result, demoMaxChunks)
}

func capChunks(chunks []string, n int) []string {
	if len(chunks) > n {
		return chunks[:n]
	}
	return chunks
}

// truncateRunes shortens s to at most max runes, appending marker when a cut
// was made.
func truncateRunes(s string, max int, marker string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + marker
}
