package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

// Client obtains an outline for a generation request. Implemented by the
// eino-backed LLMClient and by the test fakes the orchestrator is exercised
// with.
type Client interface {
	GenerateOutline(ctx context.Context, req GenerateRequest) (*PresentationOutline, error)
}

const systemPrompt = `你是一位頂級的簡報內容架構師。你的任務是接收使用者簡短的輸入，在完全基於事實、嚴禁編造的前提下，將其內容極大化擴充，並轉換為結構化的 JSON 格式，供自動化簡報系統使用。

1. 核心任務：內容擴充與事實推演
深度擴充：將簡短輸入拆解為以下維度，盡可能豐富內容：
    a. 核心概念與定義
    b. 背景脈絡與重要性
    c. 實際應用案例
    d. 常見挑戰與痛點
    e. 解決方案與最佳實踐
    f. 量化數據與成效指標（可合理推估，使用不確定性措辭）
    g. 未來趨勢與發展方向

2. 內容豐富度要求：
- bullets：每個要點應為完整句子（15-20 字），而非關鍵詞
- speaker_notes：每頁建議 50-100 字的補充說明
- stats：盡可能提供數據支持（可合理推估）

3. 佈局邏輯：根據內容屬性選擇最合適的 layout：
title_slide: 第一頁。
section_header: 用於切換大主題。
bullets: 3-5 點，每點 < 20 字。
two_column / comparison: 用於對照、優劣分析。
image_left / image_right: 用於概念圖解。
key_stats: 用於量化指標（stats 格式為 {"value": "xx", "label": "xx"}）。
conclusion: 最後一頁。

4. 輸出規範：嚴格輸出純 JSON 格式，不得包含 Markdown 標記（如 ` + "```json" + `）。

5. image_prompt 必須以英文撰寫，描述高品質、專業的商業攝影風格。

6. JSON 結構
{
  "title": "標題",
  "subtitle": "副標題",
  "slides": [
    {
      "layout": "佈局類型",
      "title": "分頁標題",
      "bullets": ["擴充點1", "擴充點2"],
      "stats": [{"value": "100%", "label": "範例"}],
      "image_prompt": "English image description",
      "speaker_notes": "詳細的講者補充資訊"
    }
  ]
}`

// LLMConfig configures the generative backend connection.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LLMClient calls an OpenAI-compatible chat endpoint through an eino chat
// model and parses the response into a validated outline.
type LLMClient struct {
	chatModel model.ChatModel
	logger    *zap.Logger
}

// NewLLMClient builds the chat model for cfg.
func NewLLMClient(cfg LLMConfig, logger *zap.Logger) (*LLMClient, error) {
	chatModel, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return &LLMClient{chatModel: chatModel, logger: logger}, nil
}

// NewLLMClientWithModel wires a pre-built chat model. Used by tests.
func NewLLMClientWithModel(chatModel model.ChatModel, logger *zap.Logger) *LLMClient {
	return &LLMClient{chatModel: chatModel, logger: logger}
}

// GenerateOutline sends the fixed system instruction plus the request's user
// message and parses the reply. Every failure path returns a TransportError
// or ParseError; no partial outline is ever returned.
func (c *LLMClient) GenerateOutline(ctx context.Context, req GenerateRequest) (*PresentationOutline, error) {
	userMessage := fmt.Sprintf(`請將以下文字內容擴充為 %d 頁的簡報大綱。
語言：%s
風格：%s
內容要求：深度擴充、盡可能豐富內容，請根據內容選擇最合適的佈局類型。
---
%s
---`, req.NumSlides, req.Language, req.Style, req.Text)

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userMessage},
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		c.logger.Warn("llm request failed", zap.Error(err))
		return nil, &TransportError{Err: err}
	}

	o, err := ParseOutlineResponse(resp.Content)
	if err != nil {
		c.logger.Warn("llm response unusable",
			zap.Int("response_bytes", len(resp.Content)),
			zap.Error(err))
		return nil, err
	}
	return o, nil
}

// ParseOutlineResponse converts a raw model reply into a validated outline.
// The reply may wrap its JSON document in a fenced code block, which is
// stripped before parsing.
func ParseOutlineResponse(content string) (*PresentationOutline, error) {
	content = extractJSON(content)

	var probe any
	if err := json.Unmarshal([]byte(content), &probe); err != nil {
		return nil, &ParseError{Reason: "is not valid JSON", Err: err}
	}
	if _, ok := probe.(map[string]any); !ok {
		return nil, &ParseError{Reason: fmt.Sprintf("is %T instead of an object", probe)}
	}

	var outline PresentationOutline
	if err := json.Unmarshal([]byte(content), &outline); err != nil {
		return nil, &ParseError{Reason: "does not match the outline schema", Err: err}
	}
	if err := outline.Validate(); err != nil {
		return nil, &ParseError{Reason: "failed outline validation", Err: err}
	}
	return &outline, nil
}

// extractJSON strips markdown code fences around a JSON document
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+7:]
		if endIdx := strings.Index(content, "```"); endIdx >= 0 {
			content = content[:endIdx]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+3:]
		if endIdx := strings.Index(content, "```"); endIdx >= 0 {
			content = content[:endIdx]
		}
	}

	return strings.TrimSpace(content)
}
