package outline

// SlideLayout identifies one of the nine slide archetypes. The value is the
// wire string the generative backend is instructed to emit.
type SlideLayout string

const (
	LayoutTitle      SlideLayout = "title_slide"
	LayoutSection    SlideLayout = "section_header"
	LayoutBullets    SlideLayout = "bullets"
	LayoutTwoColumn  SlideLayout = "two_column"
	LayoutImageLeft  SlideLayout = "image_left"
	LayoutImageRight SlideLayout = "image_right"
	LayoutKeyStats   SlideLayout = "key_stats"
	LayoutComparison SlideLayout = "comparison"
	LayoutConclusion SlideLayout = "conclusion"
)

// AllLayouts lists every valid layout value.
var AllLayouts = []SlideLayout{
	LayoutTitle,
	LayoutSection,
	LayoutBullets,
	LayoutTwoColumn,
	LayoutImageLeft,
	LayoutImageRight,
	LayoutKeyStats,
	LayoutComparison,
	LayoutConclusion,
}

// Valid reports whether l is one of the nine known layouts.
func (l SlideLayout) Valid() bool {
	for _, known := range AllLayouts {
		if l == known {
			return true
		}
	}
	return false
}

// StatItem is a single value/label pair on a key_stats slide.
type StatItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SlideData is the content of one slide. Which optional fields are meaningful
// depends on Layout; renderers omit the visual block for any absent field.
//
// SpeakerNotes carries a soft 50-200 rune quality target from the generation
// prompt. It is advisory only: Validate never rejects a short or empty note,
// and the demo synthesizer's fixed notes are below the target.
type SlideData struct {
	Layout       SlideLayout `json:"layout"`
	Title        string      `json:"title"`
	Subtitle     string      `json:"subtitle,omitempty"`
	Bullets      []string    `json:"bullets,omitempty"`
	LeftColumn   []string    `json:"left_column,omitempty"`
	RightColumn  []string    `json:"right_column,omitempty"`
	LeftTitle    string      `json:"left_title,omitempty"`
	RightTitle   string      `json:"right_title,omitempty"`
	Stats        []StatItem  `json:"stats,omitempty"`
	ImagePrompt  string      `json:"image_prompt,omitempty"`
	SpeakerNotes string      `json:"speaker_notes,omitempty"`
}

// Validate checks the slide's hard constraints.
func (s *SlideData) Validate() error {
	if !s.Layout.Valid() {
		return &ValidationError{Field: "layout", Message: "unknown slide layout: " + string(s.Layout)}
	}
	if err := requireString("title", s.Title); err != nil {
		return err
	}
	for i, stat := range s.Stats {
		if stat.Value == "" {
			return &ValidationError{Field: "stats", Message: indexedMessage(i, "value is required")}
		}
	}
	return nil
}

// PresentationOutline is the intermediate representation between raw text and
// a rendered deck. Constructed once per request, consumed by exactly one
// renderer, never mutated afterwards.
//
// By generation-time convention slides[0] is a title slide and the last slide
// is a conclusion; renderers must not rely on it.
type PresentationOutline struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Theme    string      `json:"theme,omitempty"`
	Slides   []SlideData `json:"slides"`
}

// Validate checks the outline and every slide in it. Construction is
// all-or-nothing: a caller that sees a nil error holds a fully valid outline.
func (o *PresentationOutline) Validate() error {
	if err := requireString("title", o.Title); err != nil {
		return err
	}
	if len(o.Slides) == 0 {
		return &ValidationError{Field: "slides", Message: "at least one slide is required"}
	}
	for i := range o.Slides {
		if err := o.Slides[i].Validate(); err != nil {
			return indexedFieldError(err, i)
		}
	}
	return nil
}

// Request parameter bounds. MinSlides reserves room for the title and
// conclusion slides plus one content slide.
const (
	MaxTextLen = 50000
	MinSlides  = 3
	MaxSlides  = 20

	DefaultNumSlides = 8
	DefaultLanguage  = "zh-TW"
	DefaultStyle     = "professional"
	DefaultTemplate  = "code_drawn"
)

// GenerateRequest is the shape of one generation request.
type GenerateRequest struct {
	Text      string `json:"text"`
	NumSlides int    `json:"num_slides"`
	Language  string `json:"language"`
	Style     string `json:"style"`
	Template  string `json:"template"`
}

// ApplyDefaults fills unset optional fields with their documented defaults.
func (r *GenerateRequest) ApplyDefaults() {
	if r.NumSlides == 0 {
		r.NumSlides = DefaultNumSlides
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.Style == "" {
		r.Style = DefaultStyle
	}
	if r.Template == "" {
		r.Template = DefaultTemplate
	}
}

// Validate checks the request against its documented bounds.
func (r *GenerateRequest) Validate() error {
	if err := requireString("text", r.Text); err != nil {
		return err
	}
	if err := validateRuneLength("text", r.Text, 1, MaxTextLen); err != nil {
		return err
	}
	if err := validateIntRange("num_slides", r.NumSlides, MinSlides, MaxSlides); err != nil {
		return err
	}
	return nil
}

// GenerateResponse is the HTTP response body for a generation request.
type GenerateResponse struct {
	Success  bool                 `json:"success"`
	Filename string               `json:"filename,omitempty"`
	Message  string               `json:"message"`
	Outline  *PresentationOutline `json:"outline,omitempty"`
}
