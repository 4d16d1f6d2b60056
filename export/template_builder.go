package export

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// The default template is generated rather than shipped as a binary fixture.
// Nine layouts in the order layoutIndexByKind expects, each declaring the
// fixed placeholder indices the template renderer fills.

// Template page size: 16:9 widescreen, 13.333" x 7.5".
var (
	slideWidthEMU  = inch(13.333)
	slideHeightEMU = inch(7.5)
)

type phSpec struct {
	phType string
	idx    int
	x, y   int64
	w, h   int64
}

type layoutSpec struct {
	name string
	phs  []phSpec
}

func defaultLayoutSpecs() []layoutSpec {
	titleBar := phSpec{phType: "title", x: inch(0.6), y: inch(0.35), w: inch(12.1), h: inch(0.9)}
	slideNum := phSpec{phType: "sldNum", idx: phSlideNum, x: inch(12.1), y: inch(6.95), w: inch(1.0), h: inch(0.4)}
	fullBody := phSpec{phType: "body", idx: phBody, x: inch(0.8), y: inch(1.5), w: inch(11.7), h: inch(5.0)}

	return []layoutSpec{
		{name: "Title Slide", phs: []phSpec{
			{phType: "ctrTitle", x: inch(1.2), y: inch(2.6), w: inch(10.9), h: inch(1.4)},
			{phType: "subTitle", idx: phBody, x: inch(1.2), y: inch(4.2), w: inch(10.9), h: inch(0.9)},
			slideNum,
		}},
		{name: "Section Header", phs: []phSpec{
			{phType: "title", x: inch(1.2), y: inch(2.8), w: inch(10.9), h: inch(1.2)},
			{phType: "body", idx: phBody, x: inch(1.2), y: inch(4.1), w: inch(10.9), h: inch(0.8)},
			slideNum,
		}},
		{name: "Title and Body", phs: []phSpec{
			titleBar,
			{phType: "body", idx: phBody, x: inch(0.8), y: inch(1.5), w: inch(6.9), h: inch(4.9)},
			{phType: "pic", idx: phPicture, x: inch(8.1), y: inch(1.5), w: inch(4.6), h: inch(4.9)},
			slideNum,
		}},
		{name: "Two Columns", phs: []phSpec{
			titleBar,
			{phType: "body", idx: phBody, x: inch(0.8), y: inch(1.5), w: inch(5.7), h: inch(4.9)},
			{phType: "body", idx: phBodyRight, x: inch(6.8), y: inch(1.5), w: inch(5.7), h: inch(4.9)},
			slideNum,
		}},
		{name: "Picture Left", phs: []phSpec{
			titleBar,
			{phType: "pic", idx: phPicture, x: inch(0.6), y: inch(1.5), w: inch(4.6), h: inch(4.9)},
			{phType: "body", idx: phBody, x: inch(5.5), y: inch(1.5), w: inch(7.2), h: inch(4.9)},
			slideNum,
		}},
		{name: "Picture Right", phs: []phSpec{
			titleBar,
			{phType: "body", idx: phBody, x: inch(0.8), y: inch(1.5), w: inch(6.9), h: inch(4.9)},
			{phType: "pic", idx: phPicture, x: inch(8.1), y: inch(1.5), w: inch(4.6), h: inch(4.9)},
			slideNum,
		}},
		{name: "Key Stats", phs: []phSpec{
			{phType: "body", idx: phBody, x: inch(0.8), y: inch(0.5), w: inch(11.7), h: inch(0.9)},
			{phType: "body", idx: phBodyRight, x: inch(0.9), y: inch(2.4), w: inch(3.4), h: inch(2.0)},
			{phType: "body", idx: phBodyCol2, x: inch(4.9), y: inch(2.4), w: inch(3.4), h: inch(2.0)},
			{phType: "body", idx: phBodyCol3, x: inch(8.9), y: inch(2.4), w: inch(3.4), h: inch(2.0)},
			slideNum,
		}},
		{name: "Comparison", phs: []phSpec{
			titleBar,
			{phType: "body", idx: phBody, x: inch(0.8), y: inch(1.5), w: inch(5.7), h: inch(4.9)},
			{phType: "body", idx: phBodyRight, x: inch(6.8), y: inch(1.5), w: inch(5.7), h: inch(4.9)},
			slideNum,
		}},
		{name: "Conclusion", phs: []phSpec{
			titleBar,
			fullBody,
			slideNum,
		}},
	}
}

// BuildDefaultTemplate produces the ocean gradient template package.
func BuildDefaultTemplate() ([]byte, error) {
	specs := defaultLayoutSpecs()
	pkg := &templatePackage{parts: make(map[string][]byte)}

	pkg.setPart("[Content_Types].xml", buildTemplateContentTypes(len(specs)))
	pkg.setPart("_rels/.rels", writeRelationships([]relationship{{
		ID:     "rId1",
		Type:   nsRelationships + "/officeDocument",
		Target: "ppt/presentation.xml",
	}}))

	pkg.setPart("ppt/presentation.xml", buildPresentationPart())
	pkg.setPart("ppt/_rels/presentation.xml.rels", writeRelationships([]relationship{{
		ID:     "rId1",
		Type:   relTypeSlideMaster,
		Target: "slideMasters/slideMaster1.xml",
	}}))

	pkg.setPart("ppt/slideMasters/slideMaster1.xml", buildMasterPart(len(specs)))
	masterRels := make([]relationship, 0, len(specs)+1)
	for i := range specs {
		masterRels = append(masterRels, relationship{
			ID:     fmt.Sprintf("rId%d", i+1),
			Type:   relTypeSlideLayout,
			Target: fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i+1),
		})
	}
	masterRels = append(masterRels, relationship{
		ID:     fmt.Sprintf("rId%d", len(specs)+1),
		Type:   nsRelationships + "/theme",
		Target: "../theme/theme1.xml",
	})
	pkg.setPart("ppt/slideMasters/_rels/slideMaster1.xml.rels", writeRelationships(masterRels))

	for i, spec := range specs {
		name := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1)
		pkg.setPart(name, buildLayoutPart(spec))
		pkg.setPart(relsPartName(name), writeRelationships([]relationship{{
			ID:     "rId1",
			Type:   relTypeSlideMaster,
			Target: "../slideMasters/slideMaster1.xml",
		}}))
	}

	pkg.setPart("ppt/theme/theme1.xml", []byte(defaultThemeXML))

	return pkg.bytes()
}

func buildTemplateContentTypes(layoutCount int) []byte {
	ct := &contentTypes{
		Defaults: []ctDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []ctOverride{
			{PartName: "/ppt/presentation.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"},
			{PartName: "/ppt/theme/theme1.xml", ContentType: "application/vnd.openxmlformats-officedocument.theme+xml"},
		},
	}
	for i := 1; i <= layoutCount; i++ {
		ct.Overrides = append(ct.Overrides, ctOverride{
			PartName:    fmt.Sprintf("/ppt/slideLayouts/slideLayout%d.xml", i),
			ContentType: "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml",
		})
	}
	return writeContentTypes(ct)
}

func buildPresentationPart() []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:presentation xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst/>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, slideWidthEMU, slideHeightEMU)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return []byte(b.String())
}

func buildMasterPart(layoutCount int) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:sldMaster xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	b.WriteString(`<p:sldLayoutIdLst>`)
	for i := 1; i <= layoutCount; i++ {
		fmt.Fprintf(&b, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483648+i, i)
	}
	b.WriteString(`</p:sldLayoutIdLst>`)
	b.WriteString(`</p:sldMaster>`)
	return []byte(b.String())
}

func buildLayoutPart(spec layoutSpec) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:sldLayout xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">`)
	b.WriteString(`<p:cSld name="` + xmlEscape(spec.name) + `"><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for i, ph := range spec.phs {
		writeLayoutPlaceholder(&b, i+2, ph)
	}
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sldLayout>`)
	return []byte(b.String())
}

func writeLayoutPlaceholder(b *strings.Builder, shapeID int, ph phSpec) {
	b.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="%s %d"/>`, shapeID, placeholderName(ph.phType), ph.idx)
	b.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`)
	b.WriteString(`<p:nvPr><p:ph type="` + ph.phType + `"`)
	if ph.phType == "sldNum" {
		b.WriteString(` sz="quarter"`)
	}
	if ph.idx > 0 {
		fmt.Fprintf(b, ` idx="%d"`, ph.idx)
	}
	b.WriteString(`/></p:nvPr></p:nvSpPr>`)
	b.WriteString(`<p:spPr><a:xfrm>`)
	fmt.Fprintf(b, `<a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/>`, ph.x, ph.y, ph.w, ph.h)
	b.WriteString(`</a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr/></a:p></p:txBody>`)
	b.WriteString(`</p:sp>`)
}

func placeholderName(phType string) string {
	switch phType {
	case "ctrTitle", "title":
		return "Title"
	case "subTitle":
		return "Subtitle"
	case "pic":
		return "Picture Placeholder"
	case "sldNum":
		return "Slide Number Placeholder"
	default:
		return "Text Placeholder"
	}
}

const defaultThemeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Ocean Gradient"><a:themeElements><a:clrScheme name="Ocean"><a:dk1><a:srgbClr val="1E2A32"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="065A82"/></a:dk2><a:lt2><a:srgbClr val="EAF4F9"/></a:lt2><a:accent1><a:srgbClr val="065A82"/></a:accent1><a:accent2><a:srgbClr val="1C7FA6"/></a:accent2><a:accent3><a:srgbClr val="53A6C7"/></a:accent3><a:accent4><a:srgbClr val="8FC6DC"/></a:accent4><a:accent5><a:srgbClr val="F2B705"/></a:accent5><a:accent6><a:srgbClr val="D95525"/></a:accent6><a:hlink><a:srgbClr val="1C7FA6"/></a:hlink><a:folHlink><a:srgbClr val="53A6C7"/></a:folHlink></a:clrScheme><a:fontScheme name="Ocean"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface="Microsoft JhengHei"/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface="Microsoft JhengHei"/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="Ocean"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`
