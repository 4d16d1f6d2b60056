package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"slidegen/outline"
)

func newDefaultStore(t *testing.T) *TemplateStore {
	t.Helper()
	store := NewTemplateStore(t.TempDir())
	if err := store.EnsureDefault(); err != nil {
		t.Fatalf("EnsureDefault failed: %v", err)
	}
	return store
}

// readZipParts opens a rendered deck and returns part name -> content.
func readZipParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip package: %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(content)
	}
	return parts
}

func TestTemplateRendererAllLayouts(t *testing.T) {
	store := newDefaultStore(t)
	r := NewTemplateRenderer(store, DefaultTemplateID, zap.NewNop())
	o := sampleOutline()

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	parts := readZipParts(t, data)

	for i := 1; i <= len(o.Slides); i++ {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i)
		if _, ok := parts[name]; !ok {
			t.Errorf("missing slide part %s", name)
		}
		relsName := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i)
		if !strings.Contains(parts[relsName], "slideLayout") {
			t.Errorf("%s does not reference a layout", relsName)
		}
	}

	pres := parts["ppt/presentation.xml"]
	if strings.Count(pres, "<p:sldId ") != len(o.Slides) {
		t.Errorf("presentation part lists %d slides, want %d",
			strings.Count(pres, "<p:sldId "), len(o.Slides))
	}

	ct := parts["[Content_Types].xml"]
	if strings.Count(ct, "/ppt/slides/slide") != len(o.Slides) {
		t.Errorf("content types declare %d slides, want %d",
			strings.Count(ct, "/ppt/slides/slide"), len(o.Slides))
	}
}

func TestTemplateRendererFillsPlaceholders(t *testing.T) {
	store := newDefaultStore(t)
	r := NewTemplateRenderer(store, DefaultTemplateID, zap.NewNop())
	o := sampleOutline()

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	parts := readZipParts(t, data)

	// Slide 3 is the bullets slide.
	bullets := parts["ppt/slides/slide3.xml"]
	if !strings.Contains(bullets, "三大重點") || !strings.Contains(bullets, "流程自動化") {
		t.Errorf("bullets slide missing content: %s", bullets)
	}
	// Slide numbers go into the dedicated placeholder.
	if !strings.Contains(bullets, "3 / 9") {
		t.Error("bullets slide missing its page number")
	}

	// Slide 7 is the key stats slide: big bold centered values.
	stats := parts["ppt/slides/slide7.xml"]
	if !strings.Contains(stats, "95%") || !strings.Contains(stats, "達成率") {
		t.Errorf("stats slide missing stat content: %s", stats)
	}
	if !strings.Contains(stats, `sz="2800"`) || !strings.Contains(stats, `b="1"`) {
		t.Error("stat value lost its formatting")
	}
	if !strings.Contains(stats, `algn="ctr"`) {
		t.Error("stat paragraphs should be centered")
	}

	// Comparison slide: bold column headers.
	comparison := parts["ppt/slides/slide8.xml"]
	if !strings.Contains(comparison, "優勢") || !strings.Contains(comparison, "挑戰") {
		t.Errorf("comparison slide missing column titles: %s", comparison)
	}
}

func TestTemplateRendererEscapesText(t *testing.T) {
	store := newDefaultStore(t)
	r := NewTemplateRenderer(store, DefaultTemplateID, zap.NewNop())
	o := &outline.PresentationOutline{
		Title: "R&D <進展>",
		Slides: []outline.SlideData{
			{Layout: outline.LayoutTitle, Title: "R&D <進展>"},
		},
	}

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	slide := readZipParts(t, data)["ppt/slides/slide1.xml"]
	if !strings.Contains(slide, "R&amp;D &lt;進展&gt;") {
		t.Errorf("title not escaped: %s", slide)
	}
}

func TestTemplateRendererStatCap(t *testing.T) {
	store := newDefaultStore(t)
	r := NewTemplateRenderer(store, DefaultTemplateID, zap.NewNop())
	o := &outline.PresentationOutline{
		Title: "數據",
		Slides: []outline.SlideData{
			{Layout: outline.LayoutKeyStats, Title: "數據", Stats: []outline.StatItem{
				{Value: "第一", Label: "a"}, {Value: "第二", Label: "b"},
				{Value: "第三", Label: "c"}, {Value: "第四", Label: "d"},
			}},
		},
	}

	data, err := r.Render(o)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	slide := readZipParts(t, data)["ppt/slides/slide1.xml"]
	if !strings.Contains(slide, "第三") {
		t.Error("third stat should be filled")
	}
	if strings.Contains(slide, "第四") {
		t.Error("fourth stat exceeds the template's columns and should be dropped")
	}
}

func TestTemplateRendererFallsBackToDefault(t *testing.T) {
	store := newDefaultStore(t)
	r := NewTemplateRenderer(store, "corporate_blue", zap.NewNop())

	data, err := r.Render(sampleOutline())
	if err != nil {
		t.Fatalf("Render with unknown template failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("fallback render produced no output")
	}
}

func TestTemplateRendererMissingDefault(t *testing.T) {
	store := NewTemplateStore(t.TempDir())
	r := NewTemplateRenderer(store, "corporate_blue", zap.NewNop())

	_, err := r.Render(sampleOutline())
	var tErr *TemplateNotFoundError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %v, want TemplateNotFoundError", err)
	}
	if tErr.ID != DefaultTemplateID {
		t.Errorf("error names template %q, want the default", tErr.ID)
	}
}

func TestTemplateStoreResolve(t *testing.T) {
	store := newDefaultStore(t)

	path, fellBack, err := store.Resolve(DefaultTemplateID)
	if err != nil || fellBack {
		t.Fatalf("Resolve(default) = %q, %v, %v", path, fellBack, err)
	}

	_, fellBack, err = store.Resolve("missing")
	if err != nil {
		t.Fatalf("Resolve(missing) failed: %v", err)
	}
	if !fellBack {
		t.Error("Resolve(missing) should report the fallback")
	}
}

func TestTemplateStoreEnsureDefaultIdempotent(t *testing.T) {
	store := NewTemplateStore(t.TempDir())
	if err := store.EnsureDefault(); err != nil {
		t.Fatalf("first EnsureDefault failed: %v", err)
	}
	if err := store.EnsureDefault(); err != nil {
		t.Fatalf("second EnsureDefault failed: %v", err)
	}
}
