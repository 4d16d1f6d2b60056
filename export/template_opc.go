package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

// OOXML namespaces and relationship types used by the template renderer.
// GoPPT writes decks from scratch and cannot instantiate a template's slide
// layouts, so template filling manipulates the package directly at this
// level, the same level the template's offline repair tooling works at.
const (
	nsDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeSlide       = nsRelationships + "/slide"
	relTypeSlideLayout = nsRelationships + "/slideLayout"
	relTypeSlideMaster = nsRelationships + "/slideMaster"

	ctSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

// templatePackage is a PPTX package held as raw parts.
type templatePackage struct {
	parts map[string][]byte
	order []string
}

func openTemplatePackage(data []byte) (*templatePackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a zip package: %w", err)
	}
	pkg := &templatePackage{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", f.Name, err)
		}
		pkg.setPart(f.Name, content)
	}
	return pkg, nil
}

func (p *templatePackage) part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

func (p *templatePackage) setPart(name string, data []byte) {
	if _, exists := p.parts[name]; !exists {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

func (p *templatePackage) removePart(name string) {
	if _, exists := p.parts[name]; !exists {
		return
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *templatePackage) partNames() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// bytes serializes the package back into a zip archive.
func (p *templatePackage) bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range p.order {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry %s: %w", name, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("failed to write zip entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

// ── Relationships ──

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationshipSet struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}

func parseRelationships(data []byte) (*relationshipSet, error) {
	var rels relationshipSet
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("malformed relationships part: %w", err)
	}
	return &rels, nil
}

func writeRelationships(rels []relationship) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="` + nsPackageRels + `">`)
	for _, rel := range rels {
		b.WriteString(`<Relationship Id="` + xmlEscape(rel.ID) +
			`" Type="` + xmlEscape(rel.Type) +
			`" Target="` + xmlEscape(rel.Target) + `"/>`)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

// relsPartName maps a part to its relationships part,
// e.g. ppt/presentation.xml -> ppt/_rels/presentation.xml.rels.
func relsPartName(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// resolveTarget resolves a relationship target relative to the source part's
// directory.
func resolveTarget(sourcePart, target string) string {
	dir := path.Dir(sourcePart)
	return path.Clean(path.Join(dir, target))
}

func maxRelID(rels []relationship) int {
	maxID := 0
	for _, rel := range rels {
		n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId"))
		if err == nil && n > maxID {
			maxID = n
		}
	}
	return maxID
}

// ── Layout discovery ──

// placeholderRef identifies one placeholder slot declared by a slide layout.
type placeholderRef struct {
	phType string
	idx    int
}

// templateLayout is one entry of the template's layout collection, in the
// master's declared order.
type templateLayout struct {
	partName     string
	placeholders map[int]placeholderRef
}

type xmlSlidePart struct {
	CSld struct {
		SpTree struct {
			Sp []struct {
				NvSpPr struct {
					NvPr struct {
						Ph *struct {
							Type string `xml:"type,attr"`
							Idx  string `xml:"idx,attr"`
						} `xml:"ph"`
					} `xml:"nvPr"`
				} `xml:"nvSpPr"`
			} `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type xmlSlideMaster struct {
	SldLayoutIdLst struct {
		Entries []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldLayoutId"`
	} `xml:"sldLayoutIdLst"`
}

// discoverLayouts returns the template's layouts in the order the slide
// master declares them, each with its placeholder index set.
func discoverLayouts(pkg *templatePackage) ([]templateLayout, error) {
	presRelsData, ok := pkg.part("ppt/_rels/presentation.xml.rels")
	if !ok {
		return nil, fmt.Errorf("template has no presentation relationships part")
	}
	presRels, err := parseRelationships(presRelsData)
	if err != nil {
		return nil, err
	}

	masterPart := ""
	for _, rel := range presRels.Rels {
		if rel.Type == relTypeSlideMaster {
			masterPart = resolveTarget("ppt/presentation.xml", rel.Target)
			break
		}
	}
	if masterPart == "" {
		return nil, fmt.Errorf("template has no slide master")
	}

	masterData, ok := pkg.part(masterPart)
	if !ok {
		return nil, fmt.Errorf("template slide master part %s is missing", masterPart)
	}
	var master xmlSlideMaster
	if err := xml.Unmarshal(masterData, &master); err != nil {
		return nil, fmt.Errorf("malformed slide master: %w", err)
	}

	masterRelsData, ok := pkg.part(relsPartName(masterPart))
	if !ok {
		return nil, fmt.Errorf("template slide master has no relationships part")
	}
	masterRels, err := parseRelationships(masterRelsData)
	if err != nil {
		return nil, err
	}
	relByID := make(map[string]relationship, len(masterRels.Rels))
	for _, rel := range masterRels.Rels {
		relByID[rel.ID] = rel
	}

	var layouts []templateLayout
	for _, entry := range master.SldLayoutIdLst.Entries {
		rel, ok := relByID[entry.RID]
		if !ok {
			return nil, fmt.Errorf("slide master references unknown relationship %s", entry.RID)
		}
		partName := resolveTarget(masterPart, rel.Target)
		layoutData, ok := pkg.part(partName)
		if !ok {
			return nil, fmt.Errorf("template layout part %s is missing", partName)
		}
		placeholders, err := parsePlaceholders(layoutData)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", partName, err)
		}
		layouts = append(layouts, templateLayout{partName: partName, placeholders: placeholders})
	}
	return layouts, nil
}

func parsePlaceholders(data []byte) (map[int]placeholderRef, error) {
	var part xmlSlidePart
	if err := xml.Unmarshal(data, &part); err != nil {
		return nil, fmt.Errorf("malformed slide part: %w", err)
	}
	placeholders := make(map[int]placeholderRef)
	for _, sp := range part.CSld.SpTree.Sp {
		ph := sp.NvSpPr.NvPr.Ph
		if ph == nil {
			continue
		}
		idx := 0
		if ph.Idx != "" {
			n, err := strconv.Atoi(ph.Idx)
			if err != nil {
				continue
			}
			idx = n
		}
		placeholders[idx] = placeholderRef{phType: ph.Type, idx: idx}
	}
	return placeholders, nil
}

// ── Slide emission ──

// phRun is one formatted text run inside a filled placeholder paragraph.
// A zero sizePt inherits the layout's size.
type phRun struct {
	text   string
	bold   bool
	sizePt int
}

// phPara is one paragraph of placeholder content.
type phPara struct {
	runs   []phRun
	center bool
}

// phFill maps placeholder indices to the paragraphs to write into them.
type phFill map[int][]phPara

// emitSlideXML builds a slide part filling the subset of fill whose indices
// exist on the layout. Geometry is inherited from the layout placeholder, so
// the slide shape carries only the ph reference and the text body.
func emitSlideXML(layout templateLayout, fill phFill) []byte {
	indices := make([]int, 0, len(fill))
	for idx := range fill {
		if _, ok := layout.placeholders[idx]; ok {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:sld xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	shapeID := 2
	for _, idx := range indices {
		ref := layout.placeholders[idx]
		writePlaceholderShape(&b, shapeID, ref, fill[idx])
		shapeID++
	}

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return []byte(b.String())
}

func writePlaceholderShape(b *strings.Builder, shapeID int, ref placeholderRef, paras []phPara) {
	b.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="Placeholder %d"/>`, shapeID, ref.idx)
	b.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`)
	b.WriteString(`<p:nvPr><p:ph`)
	if ref.phType != "" {
		b.WriteString(` type="` + xmlEscape(ref.phType) + `"`)
	}
	if ref.idx > 0 {
		fmt.Fprintf(b, ` idx="%d"`, ref.idx)
	}
	b.WriteString(`/></p:nvPr></p:nvSpPr>`)
	b.WriteString(`<p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	for _, para := range paras {
		writeParagraph(b, para)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeParagraph(b *strings.Builder, para phPara) {
	b.WriteString(`<a:p>`)
	if para.center {
		b.WriteString(`<a:pPr algn="ctr"/>`)
	}
	for _, run := range para.runs {
		b.WriteString(`<a:r><a:rPr lang="zh-TW" altLang="en-US"`)
		if run.sizePt > 0 {
			fmt.Fprintf(b, ` sz="%d"`, run.sizePt*100)
		}
		if run.bold {
			b.WriteString(` b="1"`)
		}
		b.WriteString(`/><a:t>` + xmlEscape(run.text) + `</a:t></a:r>`)
	}
	if len(para.runs) == 0 {
		b.WriteString(`<a:endParaRPr/>`)
	}
	b.WriteString(`</a:p>`)
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never does.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// ── Presentation part surgery ──

// replaceSlideIDList swaps the presentation part's slide id list for one
// naming the freshly added slides. The list is rebuilt wholesale; the rest of
// the part (masters, slide size, view properties) is left untouched.
func replaceSlideIDList(presXML []byte, relIDs []string) ([]byte, error) {
	var list strings.Builder
	list.WriteString(`<p:sldIdLst>`)
	for i, rid := range relIDs {
		fmt.Fprintf(&list, `<p:sldId id="%d" r:id="%s"/>`, 256+i, rid)
	}
	list.WriteString(`</p:sldIdLst>`)

	content := string(presXML)

	if start := strings.Index(content, "<p:sldIdLst/>"); start >= 0 {
		return []byte(content[:start] + list.String() + content[start+len("<p:sldIdLst/>"):]), nil
	}
	if start := strings.Index(content, "<p:sldIdLst"); start >= 0 {
		endTag := "</p:sldIdLst>"
		end := strings.Index(content[start:], endTag)
		if end < 0 {
			return nil, fmt.Errorf("presentation part has an unterminated slide id list")
		}
		return []byte(content[:start] + list.String() + content[start+end+len(endTag):]), nil
	}

	// No slide list at all: insert right after the master list.
	marker := "</p:sldMasterIdLst>"
	at := strings.Index(content, marker)
	if at < 0 {
		return nil, fmt.Errorf("presentation part has no slide master list")
	}
	at += len(marker)
	return []byte(content[:at] + list.String() + content[at:]), nil
}

// ── Content types ──

type contentTypes struct {
	XMLName   xml.Name     `xml:"Types"`
	Defaults  []ctDefault  `xml:"Default"`
	Overrides []ctOverride `xml:"Override"`
}

type ctDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("malformed content types part: %w", err)
	}
	return &ct, nil
}

func writeContentTypes(ct *contentTypes) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	for _, d := range ct.Defaults {
		b.WriteString(`<Default Extension="` + xmlEscape(d.Extension) +
			`" ContentType="` + xmlEscape(d.ContentType) + `"/>`)
	}
	for _, o := range ct.Overrides {
		b.WriteString(`<Override PartName="` + xmlEscape(o.PartName) +
			`" ContentType="` + xmlEscape(o.ContentType) + `"/>`)
	}
	b.WriteString(`</Types>`)
	return []byte(b.String())
}
