package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
)

// systemInstruction describes the four violation categories and the
// expected JSON response shape
const systemInstruction = `Bạn là một hệ thống kiểm duyệt nội dung tiếng Việt.
Phân tích tin nhắn và xác định xem có vi phạm các quy định sau không:
1. Ngôn từ thô tục, chửi bậy
2. Quấy rối, gạ gẫm
3. Xúc phạm, lăng mạ
4. Nội dung không phù hợp khác

Trả về kết quả JSON với format:
{
    "is_violation": boolean,
    "violation_type": "string (nếu vi phạm)",
    "confidence": number (0-1),
    "reason": "string giải thích"
}`

// classifierTimeout bounds the external call so a hung classifier can
// never stall the dispatch loop
const classifierTimeout = 15 * time.Second

// Classifier sends message content to the OpenAI chat completions API
// and parses the structured verdict. A failed call returns an error:
// the caller decides to fall back, the classifier never disguises a
// failure as a clean verdict.
type Classifier struct {
	client *openai.Client
	model  string
}

// NewClassifier creates a classifier, or nil when no API key is
// configured. A nil classifier means keyword-only moderation.
func NewClassifier(apiKey, model string) *Classifier {
	if apiKey == "" {
		logger.Warn("OpenAI API key not found, using keyword-based filtering only", "Classifier")
		return nil
	}

	logger.Info(fmt.Sprintf("OpenAI classifier initialized (model: %s)", model), "Classifier")
	return &Classifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// aiResult is the JSON shape the model is instructed to return.
// Confidence is a pointer so an omitted value gets the 0.5 default
// instead of zero.
type aiResult struct {
	IsViolation   bool     `json:"is_violation"`
	ViolationType string   `json:"violation_type"`
	Confidence    *float64 `json:"confidence"`
	Reason        string   `json:"reason"`
}

// Classify asks the model for a verdict on the message content
func (c *Classifier) Classify(ctx context.Context, content string) (models.Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, classifierTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: "Phân tích tin nhắn này: " + content},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens: 200,
	})
	if err != nil {
		return models.Clean(), fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return models.Clean(), fmt.Errorf("openai returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)

	var result aiResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.Clean(), fmt.Errorf("malformed classifier response: %w", err)
	}

	confidence := 0.5
	if result.Confidence != nil {
		confidence = *result.Confidence
	}

	if !result.IsViolation {
		return models.Clean(), nil
	}

	reason := result.Reason
	if reason == "" {
		reason = "Nội dung không phù hợp"
	}

	verdict := models.Verdict{
		IsViolation:   true,
		ViolationType: models.TypeFromLabel(result.ViolationType),
		Confidence:    confidence,
		Reason:        reason,
	}
	verdict.ClampConfidence()
	return verdict, nil
}
