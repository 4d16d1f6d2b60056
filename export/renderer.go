// Package export renders validated presentation outlines into PPTX
// artifacts. Two interchangeable strategies implement the same contract: a
// code-drawn renderer that draws every shape from scratch, and a
// template-based renderer that fills placeholders of a pre-built template.
package export

import (
	"slidegen/outline"

	"go.uber.org/zap"
)

// Renderer maps a validated outline to a binary presentation artifact.
type Renderer interface {
	Render(o *outline.PresentationOutline) ([]byte, error)
}

// CodeDrawnTemplateID selects the code-drawn renderer on a generate request.
const CodeDrawnTemplateID = "code_drawn"

// Selector resolves a request's template key to a renderer.
type Selector struct {
	templates *TemplateStore
	logger    *zap.Logger
}

// NewSelector creates a Selector over the given template store.
func NewSelector(templates *TemplateStore, logger *zap.Logger) *Selector {
	return &Selector{templates: templates, logger: logger}
}

// ForTemplate returns the code-drawn renderer for CodeDrawnTemplateID (or an
// empty key), and a template renderer bound to templateID otherwise.
func (s *Selector) ForTemplate(templateID string) Renderer {
	if templateID == "" || templateID == CodeDrawnTemplateID {
		return NewCodeDrawnRenderer()
	}
	return NewTemplateRenderer(s.templates, templateID, s.logger)
}
