package export

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"slidegen/outline"
)

// Placeholder indices shared by every layout of the bundled templates.
// Index 1 doubles as the subtitle slot on the title and section layouts.
const (
	phTitle     = 0
	phBody      = 1
	phBodyRight = 2
	phBodyCol2  = 3
	phBodyCol3  = 4
	phPicture   = 10
	phSlideNum  = 12
)

// maxTemplateStats is the number of stat columns the key-stats layout carries.
const maxTemplateStats = 3

const (
	statValueSizePt = 28
	statLabelSizePt = 11
)

// layoutIndexByKind maps outline layouts to the template's layout collection
// order. Every bundled template declares its layouts in this order.
var layoutIndexByKind = map[outline.SlideLayout]int{
	outline.LayoutTitle:      0,
	outline.LayoutSection:    1,
	outline.LayoutBullets:    2,
	outline.LayoutTwoColumn:  3,
	outline.LayoutImageLeft:  4,
	outline.LayoutImageRight: 5,
	outline.LayoutKeyStats:   6,
	outline.LayoutComparison: 7,
	outline.LayoutConclusion: 8,
}

// TemplateRenderer produces a deck by filling the placeholders of a stored
// template. It keeps the same interface as CodeDrawnRenderer so callers can
// switch per request.
type TemplateRenderer struct {
	store      *TemplateStore
	templateID string
	logger     *zap.Logger
}

func NewTemplateRenderer(store *TemplateStore, templateID string, logger *zap.Logger) *TemplateRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateRenderer{store: store, templateID: templateID, logger: logger}
}

func (r *TemplateRenderer) Render(o *outline.PresentationOutline) ([]byte, error) {
	pkg, fellBack, err := r.store.Load(r.templateID)
	if err != nil {
		return nil, err
	}
	if fellBack {
		r.logger.Warn("template not found, using default",
			zap.String("template", r.templateID),
			zap.String("fallback", DefaultTemplateID))
	}

	layouts, err := discoverLayouts(pkg)
	if err != nil {
		return nil, fmt.Errorf("template %s is unusable: %w", r.templateID, err)
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("template %s declares no slide layouts", r.templateID)
	}

	stripTemplateSlides(pkg)

	presRelsName := "ppt/_rels/presentation.xml.rels"
	presRelsData, ok := pkg.part(presRelsName)
	if !ok {
		return nil, fmt.Errorf("template %s has no presentation relationships", r.templateID)
	}
	presRels, err := parseRelationships(presRelsData)
	if err != nil {
		return nil, err
	}
	kept := presRels.Rels[:0]
	for _, rel := range presRels.Rels {
		if rel.Type != relTypeSlide {
			kept = append(kept, rel)
		}
	}
	nextRID := maxRelID(presRels.Rels) + 1

	total := len(o.Slides)
	relIDs := make([]string, 0, total)
	for i := range o.Slides {
		data := &o.Slides[i]
		layout := layouts[r.layoutFor(data.Layout, len(layouts))]
		fill := r.fillFor(data, i+1, total)

		slidePart := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		pkg.setPart(slidePart, emitSlideXML(layout, fill))
		pkg.setPart(relsPartName(slidePart), writeRelationships([]relationship{{
			ID:     "rId1",
			Type:   relTypeSlideLayout,
			Target: "../" + strings.TrimPrefix(layout.partName, "ppt/"),
		}}))

		rid := fmt.Sprintf("rId%d", nextRID+i)
		relIDs = append(relIDs, rid)
		kept = append(kept, relationship{
			ID:     rid,
			Type:   relTypeSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	pkg.setPart(presRelsName, writeRelationships(kept))

	presData, ok := pkg.part("ppt/presentation.xml")
	if !ok {
		return nil, fmt.Errorf("template %s has no presentation part", r.templateID)
	}
	presData, err = replaceSlideIDList(presData, relIDs)
	if err != nil {
		return nil, err
	}
	pkg.setPart("ppt/presentation.xml", presData)

	if err := r.refreshContentTypes(pkg, total); err != nil {
		return nil, err
	}

	return pkg.bytes()
}

// layoutFor picks the template layout index for an outline layout, falling
// back to the bullets layout when the template is shorter than expected.
func (r *TemplateRenderer) layoutFor(kind outline.SlideLayout, available int) int {
	idx, ok := layoutIndexByKind[kind]
	if !ok {
		idx = layoutIndexByKind[outline.LayoutBullets]
	}
	if idx >= available {
		r.logger.Warn("template lacks layout for slide kind, using first layout",
			zap.String("layout", string(kind)),
			zap.Int("wanted", idx),
			zap.Int("available", available))
		idx = 0
	}
	return idx
}

func (r *TemplateRenderer) fillFor(data *outline.SlideData, num, total int) phFill {
	fill := phFill{}
	setText := func(idx int, text string) {
		if text != "" {
			fill[idx] = []phPara{{runs: []phRun{{text: text}}}}
		}
	}
	setText(phSlideNum, fmt.Sprintf("%d / %d", num, total))

	switch data.Layout {
	case outline.LayoutTitle, outline.LayoutSection:
		setText(phTitle, data.Title)
		setText(phBody, data.Subtitle)

	case outline.LayoutTwoColumn, outline.LayoutComparison:
		setText(phTitle, data.Title)
		if paras := columnParas(data.LeftTitle, data.LeftColumn); len(paras) > 0 {
			fill[phBody] = paras
		}
		if paras := columnParas(data.RightTitle, data.RightColumn); len(paras) > 0 {
			fill[phBodyRight] = paras
		}

	case outline.LayoutKeyStats:
		setText(phBody, data.Title)
		stats := data.Stats
		if len(stats) > maxTemplateStats {
			r.logger.Warn("key stats layout holds three values, dropping extras",
				zap.Int("stats", len(stats)))
			stats = stats[:maxTemplateStats]
		}
		statSlots := []int{phBodyRight, phBodyCol2, phBodyCol3}
		for i, stat := range stats {
			fill[statSlots[i]] = statParas(stat)
		}

	case outline.LayoutConclusion:
		setText(phTitle, data.Title)
		if len(data.Bullets) > 0 {
			fill[phBody] = bulletParas(data.Bullets)
		} else {
			setText(phBody, data.Subtitle)
		}

	default:
		// bullets, image_left, image_right and anything unrecognized:
		// title plus a bulleted body. The picture placeholder stays empty.
		setText(phTitle, data.Title)
		if len(data.Bullets) > 0 {
			fill[phBody] = bulletParas(data.Bullets)
		}
	}
	return fill
}

func bulletParas(items []string) []phPara {
	paras := make([]phPara, 0, len(items))
	for _, item := range items {
		paras = append(paras, phPara{runs: []phRun{{text: item}}})
	}
	return paras
}

func columnParas(title string, items []string) []phPara {
	var paras []phPara
	if title != "" {
		paras = append(paras, phPara{runs: []phRun{{text: title, bold: true}}})
	}
	paras = append(paras, bulletParas(items)...)
	return paras
}

func statParas(stat outline.StatItem) []phPara {
	return []phPara{
		{center: true, runs: []phRun{{text: stat.Value, bold: true, sizePt: statValueSizePt}}},
		{center: true, runs: []phRun{{text: stat.Label, sizePt: statLabelSizePt}}},
	}
}

// stripTemplateSlides drops every slide part the template ships with, along
// with their relationship parts.
func stripTemplateSlides(pkg *templatePackage) {
	for _, name := range pkg.partNames() {
		if strings.HasPrefix(name, "ppt/slides/") {
			pkg.removePart(name)
		}
	}
}

// refreshContentTypes rewrites the content types part so that it declares
// exactly the slide parts written by this render.
func (r *TemplateRenderer) refreshContentTypes(pkg *templatePackage, slideCount int) error {
	data, ok := pkg.part("[Content_Types].xml")
	if !ok {
		return fmt.Errorf("template has no content types part")
	}
	ct, err := parseContentTypes(data)
	if err != nil {
		return err
	}
	overrides := ct.Overrides[:0]
	for _, o := range ct.Overrides {
		if !strings.HasPrefix(o.PartName, "/ppt/slides/") {
			overrides = append(overrides, o)
		}
	}
	for i := 1; i <= slideCount; i++ {
		overrides = append(overrides, ctOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i),
			ContentType: ctSlide,
		})
	}
	ct.Overrides = overrides
	pkg.setPart("[Content_Types].xml", writeContentTypes(ct))
	return nil
}
