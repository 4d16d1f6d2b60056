package export

import (
	"strings"
	"testing"
)

func TestBuildDefaultTemplateLayouts(t *testing.T) {
	data, err := BuildDefaultTemplate()
	if err != nil {
		t.Fatalf("BuildDefaultTemplate failed: %v", err)
	}
	pkg, err := openTemplatePackage(data)
	if err != nil {
		t.Fatalf("generated template is not a valid package: %v", err)
	}

	layouts, err := discoverLayouts(pkg)
	if err != nil {
		t.Fatalf("discoverLayouts failed: %v", err)
	}
	if len(layouts) != 9 {
		t.Fatalf("got %d layouts, want 9", len(layouts))
	}

	// Placeholder indices each layout must declare, keyed by the layout's
	// position in the master's order.
	wantIdx := map[int][]int{
		0: {phTitle, phBody, phSlideNum},
		2: {phTitle, phBody, phPicture, phSlideNum},
		3: {phTitle, phBody, phBodyRight, phSlideNum},
		6: {phBody, phBodyRight, phBodyCol2, phBodyCol3, phSlideNum},
		8: {phTitle, phBody, phSlideNum},
	}
	for pos, indices := range wantIdx {
		for _, idx := range indices {
			if _, ok := layouts[pos].placeholders[idx]; !ok {
				t.Errorf("layout %d is missing placeholder idx %d", pos, idx)
			}
		}
	}
}

func TestEmitSlideXMLSkipsUnknownPlaceholders(t *testing.T) {
	layout := templateLayout{
		partName: "ppt/slideLayouts/slideLayout1.xml",
		placeholders: map[int]placeholderRef{
			phTitle: {phType: "title"},
		},
	}
	fill := phFill{
		phTitle: []phPara{{runs: []phRun{{text: "有標題"}}}},
		phBody:  []phPara{{runs: []phRun{{text: "孤兒內容"}}}},
	}

	out := string(emitSlideXML(layout, fill))
	if !strings.Contains(out, "有標題") {
		t.Error("declared placeholder was not filled")
	}
	if strings.Contains(out, "孤兒內容") {
		t.Error("content for a missing placeholder must be skipped")
	}
}

func TestReplaceSlideIDList(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"self-closing", `<p:presentation><p:sldMasterIdLst/><p:sldIdLst/><p:sldSz cx="1" cy="1"/></p:presentation>`},
		{"populated", `<p:presentation><p:sldMasterIdLst/><p:sldIdLst><p:sldId id="256" r:id="rId9"/></p:sldIdLst></p:presentation>`},
		{"absent", `<p:presentation><p:sldMasterIdLst><p:sldMasterId id="1" r:id="rId1"/></p:sldMasterIdLst></p:presentation>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := replaceSlideIDList([]byte(tt.in), []string{"rId4", "rId5"})
			if err != nil {
				t.Fatalf("replaceSlideIDList failed: %v", err)
			}
			got := string(out)
			if strings.Count(got, "<p:sldId ") != 2 {
				t.Errorf("slide list has %d entries, want 2: %s", strings.Count(got, "<p:sldId "), got)
			}
			if strings.Contains(got, "rId9") {
				t.Errorf("old slide reference survived: %s", got)
			}
			if !strings.Contains(got, `r:id="rId4"`) || !strings.Contains(got, `r:id="rId5"`) {
				t.Errorf("new references missing: %s", got)
			}
		})
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"ppt/presentation.xml", "slideMasters/slideMaster1.xml", "ppt/slideMasters/slideMaster1.xml"},
		{"ppt/slideMasters/slideMaster1.xml", "../slideLayouts/slideLayout3.xml", "ppt/slideLayouts/slideLayout3.xml"},
		{"ppt/slides/slide1.xml", "../slideLayouts/slideLayout1.xml", "ppt/slideLayouts/slideLayout1.xml"},
	}
	for _, tt := range tests {
		if got := resolveTarget(tt.source, tt.target); got != tt.want {
			t.Errorf("resolveTarget(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestTemplatePackageRoundTrip(t *testing.T) {
	pkg := &templatePackage{parts: make(map[string][]byte)}
	pkg.setPart("a.xml", []byte("first"))
	pkg.setPart("b/c.xml", []byte("second"))
	pkg.setPart("a.xml", []byte("updated"))
	pkg.removePart("b/c.xml")

	data, err := pkg.bytes()
	if err != nil {
		t.Fatalf("bytes failed: %v", err)
	}
	reopened, err := openTemplatePackage(data)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if content, ok := reopened.part("a.xml"); !ok || string(content) != "updated" {
		t.Errorf("a.xml = %q, %v", content, ok)
	}
	if _, ok := reopened.part("b/c.xml"); ok {
		t.Error("removed part resurfaced")
	}
}
