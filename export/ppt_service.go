package export

import (
	"bytes"
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"

	"slidegen/outline"
)

// PPT布局常量 - 16:9宽屏比例
const (
	emuPerInch = 914400

	// 画布尺寸 (inch)
	slideW = 10.0
	slideH = 5.625

	// 字体大小 (pt)
	fontTitle      = 36
	fontSection    = 28
	fontHeading    = 24
	fontSideTitle  = 20
	fontSubtitle   = 18
	fontColumnHead = 14
	fontCompTitle  = 13
	fontBody       = 12
	fontColumnBody = 11
	fontStatValue  = 28
	fontStatLabel  = 11
	fontCaption    = 9
	fontFooter     = 8
)

// Ocean Gradient theme palette (ARGB)
const (
	colorPrimary     = "FF065A82"
	colorSecondary   = "FF1C7293"
	colorAccent      = "FF02C39A"
	colorDark        = "FF1E293B"
	colorLightBG     = "FFF8FAFC"
	colorWhite       = "FFFFFFFF"
	colorTextDark    = "FF1E293B"
	colorTextMuted   = "FF64748B"
	colorCardBG      = "FFFFFFFF"
	colorStatBG      = "FFF0FDFA"
	colorLightAccent = "FFCCFBF1"
	colorImageArea   = "FFE2E8F0"
)

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// helper: set paragraph alignment to right
func alignRight(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
}

func inch(v float64) int64 {
	return int64(v * emuPerInch)
}

// CodeDrawnRenderer draws every slide's shapes and text boxes from scratch
// with one builder per layout variant. It touches no filesystem or network;
// Render returns the deck as an in-memory buffer.
type CodeDrawnRenderer struct {
	builders map[outline.SlideLayout]slideBuilder
}

type slideBuilder func(slide *ppt.Slide, data *outline.SlideData, idx, total int)

// NewCodeDrawnRenderer creates the renderer with its layout dispatch table.
func NewCodeDrawnRenderer() *CodeDrawnRenderer {
	r := &CodeDrawnRenderer{}
	r.builders = map[outline.SlideLayout]slideBuilder{
		outline.LayoutTitle:      r.buildTitleSlide,
		outline.LayoutSection:    r.buildSectionHeader,
		outline.LayoutBullets:    r.buildBulletsSlide,
		outline.LayoutTwoColumn:  r.buildTwoColumn,
		outline.LayoutImageLeft:  r.buildImageLeft,
		outline.LayoutImageRight: r.buildImageRight,
		outline.LayoutKeyStats:   r.buildKeyStats,
		outline.LayoutComparison: r.buildComparison,
		outline.LayoutConclusion: r.buildConclusion,
	}
	return r
}

// Render draws one slide per outline entry. Unknown layout values fall back
// to the bullets builder.
func (r *CodeDrawnRenderer) Render(o *outline.PresentationOutline) ([]byte, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = o.Title
	p.GetDocumentProperties().Creator = "slidegen"

	total := len(o.Slides)
	for i := range o.Slides {
		data := &o.Slides[i]

		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}

		builder, ok := r.builders[data.Layout]
		if !ok {
			builder = r.buildBulletsSlide
		}
		builder(slide, data, i+1, total)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	return buf.Bytes(), nil
}

// addBox draws a filled rectangle with no text
func (r *CodeDrawnRenderer) addBox(slide *ppt.Slide, x, y, w, h float64, argb string) *ppt.RichTextShape {
	box := slide.CreateRichTextShape()
	box.SetOffsetX(inch(x)).SetOffsetY(inch(y))
	box.SetWidth(inch(w)).SetHeight(inch(h))
	box.SetFill(solidFill(argb))
	return box
}

// addText draws a text box with one run
func (r *CodeDrawnRenderer) addText(slide *ppt.Slide, text string, x, y, w, h float64, size int, argb string, bold bool) *ppt.RichTextShape {
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(inch(x)).SetOffsetY(inch(y))
	shape.SetWidth(inch(w)).SetHeight(inch(h))
	tr := shape.CreateTextRun(text)
	tr.GetFont().SetSize(size).SetBold(bold).SetColor(ppt.NewColor(argb))
	return shape
}

// addBullets draws a list as one shape with a bullet-marked paragraph per item
func (r *CodeDrawnRenderer) addBullets(slide *ppt.Slide, items []string, x, y, w, h float64, size int, argb string) {
	if len(items) == 0 {
		return
	}
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(inch(x)).SetOffsetY(inch(y))
	shape.SetWidth(inch(w)).SetHeight(inch(h))
	for i, item := range items {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun("● " + item)
		tr.GetFont().SetSize(size).SetColor(ppt.NewColor(argb))
	}
}

// addImagePlaceholder draws a labeled rectangle standing in for an image.
// The label is descriptive only; no image is ever inserted.
func (r *CodeDrawnRenderer) addImagePlaceholder(slide *ppt.Slide, x, y, w, h float64, label string) {
	if label == "" {
		label = "插圖"
	}
	r.addBox(slide, x, y, w, h, colorImageArea)
	caption := r.addText(slide, label, x, y+h/2+0.3, w, 0.3, fontCaption, colorTextMuted, false)
	alignCenter(caption.GetActiveParagraph())
}

// addSlideNumber draws the n / total footer at bottom-right
func (r *CodeDrawnRenderer) addSlideNumber(slide *ppt.Slide, num, total int) {
	shape := r.addText(slide, fmt.Sprintf("%d / %d", num, total),
		8.6, 5.2, 1.0, 0.3, fontFooter, colorTextMuted, false)
	alignRight(shape.GetActiveParagraph())
}

// addTopAccentBar draws the thin accent strip along the slide top
func (r *CodeDrawnRenderer) addTopAccentBar(slide *ppt.Slide) {
	r.addBox(slide, 0, 0, slideW, 0.05, colorAccent)
}

// contentHeader sets the light background, accent bar and slide title shared
// by all card-based layouts
func (r *CodeDrawnRenderer) contentHeader(slide *ppt.Slide, title string) {
	r.addBox(slide, 0, 0, slideW, slideH, colorLightBG)
	r.addTopAccentBar(slide)
	r.addText(slide, title, 0.6, 0.35, 8.8, 0.6, fontHeading, colorTextDark, true)
}

func (r *CodeDrawnRenderer) buildTitleSlide(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.addBox(slide, 0, 0, slideW, slideH, colorDark)
	r.addBox(slide, 0.6, 1.3, 0.05, 2.9, colorAccent)
	r.addText(slide, data.Title, 1.0, 1.5, 8.0, 1.5, fontTitle, colorWhite, true)
	if data.Subtitle != "" {
		r.addText(slide, data.Subtitle, 1.0, 3.2, 8.0, 0.8, fontSubtitle, colorAccent, false)
	}
	r.addBox(slide, 0, 5.1, slideW, 0.525, colorPrimary)
}

func (r *CodeDrawnRenderer) buildSectionHeader(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.addBox(slide, 0, 0, slideW, slideH, colorPrimary)
	title := r.addText(slide, data.Title, 0.75, 1.9, 8.5, 1.1, fontSection, colorWhite, true)
	alignCenter(title.GetActiveParagraph())
	r.addBox(slide, 4.1, 3.0, 1.8, 0.03, colorAccent)
	if data.Subtitle != "" {
		sub := r.addText(slide, data.Subtitle, 1.5, 3.15, 7.0, 0.6, fontColumnHead, colorLightAccent, false)
		alignCenter(sub.GetActiveParagraph())
	}
	r.addSlideNumber(slide, idx, total)
}

func (r *CodeDrawnRenderer) buildBulletsSlide(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.contentHeader(slide, data.Title)

	if len(data.Bullets) > 0 {
		bullets := data.Bullets
		if len(bullets) > 5 {
			bullets = bullets[:5]
		}
		cardY := 1.2
		cardH := 3.6 / float64(len(bullets))
		if cardH > 0.75 {
			cardH = 0.75
		}
		for i, bullet := range bullets {
			by := cardY + float64(i)*(cardH+0.1)
			r.addBox(slide, 0.6, by, 5.6, cardH, colorCardBG)
			r.addBox(slide, 0.85, by+cardH/2-0.075, 0.15, 0.15, colorAccent)
			r.addText(slide, bullet, 1.2, by+0.08, 4.9, cardH-0.16, fontBody, colorTextDark, false)
		}
	}

	r.addImagePlaceholder(slide, 6.7, 1.2, 2.9, 3.6, data.ImagePrompt)
	r.addSlideNumber(slide, idx, total)
}

// buildColumn draws one card of a two-column layout
func (r *CodeDrawnRenderer) buildColumn(slide *ppt.Slide, x float64, accent string, title string, items []string) {
	r.addBox(slide, x, 1.35, 4.2, 3.6, colorCardBG)
	r.addBox(slide, x, 1.35, 0.05, 3.6, accent)
	if title != "" {
		r.addText(slide, title, x+0.3, 1.5, 3.6, 0.4, fontColumnHead, accent, true)
	}
	r.addBullets(slide, items, x+0.3, 2.0, 3.6, 2.6, fontColumnBody, colorTextDark)
}

func (r *CodeDrawnRenderer) buildTwoColumn(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.contentHeader(slide, data.Title)
	r.buildColumn(slide, 0.6, colorPrimary, data.LeftTitle, data.LeftColumn)
	r.buildColumn(slide, 5.2, colorSecondary, data.RightTitle, data.RightColumn)
	r.addSlideNumber(slide, idx, total)
}

func (r *CodeDrawnRenderer) buildImageLeft(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.addBox(slide, 0, 0, slideW, slideH, colorLightBG)
	r.addTopAccentBar(slide)
	r.addImagePlaceholder(slide, 0.6, 0.6, 3.9, 4.35, data.ImagePrompt)
	r.addText(slide, data.Title, 5.0, 0.6, 4.4, 0.6, fontSideTitle, colorTextDark, true)
	r.addBullets(slide, data.Bullets, 5.0, 1.5, 4.4, 3.4, fontBody, colorTextDark)
	r.addSlideNumber(slide, idx, total)
}

func (r *CodeDrawnRenderer) buildImageRight(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.addBox(slide, 0, 0, slideW, slideH, colorLightBG)
	r.addTopAccentBar(slide)
	r.addText(slide, data.Title, 0.6, 0.6, 4.4, 0.6, fontSideTitle, colorTextDark, true)
	r.addBullets(slide, data.Bullets, 0.6, 1.5, 4.4, 3.4, fontBody, colorTextDark)
	r.addImagePlaceholder(slide, 5.5, 0.6, 3.9, 4.35, data.ImagePrompt)
	r.addSlideNumber(slide, idx, total)
}

func (r *CodeDrawnRenderer) buildKeyStats(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.contentHeader(slide, data.Title)

	stats := data.Stats
	if len(stats) > 4 {
		stats = stats[:4]
	}
	if n := len(stats); n > 0 {
		cardW := (8.8 - float64(n-1)*0.3) / float64(n)
		if cardW > 2.4 {
			cardW = 2.4
		}
		totalW := float64(n)*cardW + float64(n-1)*0.3
		startX := (slideW - totalW) / 2

		for i, stat := range stats {
			cx := startX + float64(i)*(cardW+0.3)
			cy := 1.65

			r.addBox(slide, cx, cy, cardW, 2.6, colorCardBG)
			r.addBox(slide, cx, cy, cardW, 0.05, colorAccent)
			r.addBox(slide, cx+cardW/2-0.25, cy+0.3, 0.5, 0.5, colorStatBG)

			value := r.addText(slide, stat.Value, cx, cy+0.95, cardW, 0.8, fontStatValue, colorPrimary, true)
			alignCenter(value.GetActiveParagraph())
			label := r.addText(slide, stat.Label, cx, cy+1.8, cardW, 0.45, fontStatLabel, colorTextMuted, false)
			alignCenter(label.GetActiveParagraph())
		}
	}

	r.addSlideNumber(slide, idx, total)
}

func (r *CodeDrawnRenderer) buildComparison(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.contentHeader(slide, data.Title)

	// Left card with header band
	r.addBox(slide, 0.6, 1.35, 4.05, 3.6, colorCardBG)
	r.addBox(slide, 0.6, 1.35, 4.05, 0.4, colorPrimary)
	if data.LeftTitle != "" {
		lt := r.addText(slide, data.LeftTitle, 0.6, 1.4, 4.05, 0.3, fontCompTitle, colorWhite, true)
		alignCenter(lt.GetActiveParagraph())
	}
	r.addBullets(slide, data.LeftColumn, 0.9, 1.95, 3.45, 2.7, fontColumnBody, colorTextDark)

	// VS badge
	r.addBox(slide, 4.7, 2.7, 0.6, 0.6, colorAccent)
	vs := r.addText(slide, "VS", 4.7, 2.78, 0.6, 0.45, fontBody, colorWhite, true)
	alignCenter(vs.GetActiveParagraph())

	// Right card with header band
	r.addBox(slide, 5.35, 1.35, 4.05, 3.6, colorCardBG)
	r.addBox(slide, 5.35, 1.35, 4.05, 0.4, colorSecondary)
	if data.RightTitle != "" {
		rt := r.addText(slide, data.RightTitle, 5.35, 1.4, 4.05, 0.3, fontCompTitle, colorWhite, true)
		alignCenter(rt.GetActiveParagraph())
	}
	r.addBullets(slide, data.RightColumn, 5.65, 1.95, 3.45, 2.7, fontColumnBody, colorTextDark)

	r.addSlideNumber(slide, idx, total)
}

func (r *CodeDrawnRenderer) buildConclusion(slide *ppt.Slide, data *outline.SlideData, idx, total int) {
	r.addBox(slide, 0, 0, slideW, slideH, colorDark)
	r.addTopAccentBar(slide)
	title := r.addText(slide, data.Title, 0.6, 1.1, 8.8, 0.8, fontSection, colorWhite, true)
	alignCenter(title.GetActiveParagraph())
	r.addBox(slide, 4.1, 2.0, 1.8, 0.03, colorAccent)
	r.addBullets(slide, data.Bullets, 1.9, 2.4, 6.2, 2.3, fontCompTitle, colorWhite)
	r.addBox(slide, 0, 5.1, slideW, 0.525, colorPrimary)
	thanks := r.addText(slide, "Thank You", 0, 5.15, slideW, 0.4, fontColumnBody, colorLightAccent, false)
	alignCenter(thanks.GetActiveParagraph())
}
