package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

// CoachReply is the structured result of one coach exchange.
type CoachReply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// AIClient is the boundary to the hosted vision/chat model. Implementations
// may fail; callers are expected to substitute degraded payloads rather than
// surface upstream errors.
type AIClient interface {
	CoachReply(ctx context.Context, message string, user *models.User) (*CoachReply, error)
	AnalyzePhoto(ctx context.Context, image []byte, mimeType string) (json.RawMessage, error)
}

type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatCompletionRequest struct {
	Model          string                  `json:"model"`
	Messages       []chatCompletionMessage `json:"messages"`
	ResponseFormat map[string]string       `json:"response_format,omitempty"`
	MaxTokens      int                     `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) CoachReply(ctx context.Context, message string, user *models.User) (*CoachReply, error) {
	content, err := c.complete(ctx, chatCompletionRequest{
		Model: c.model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: coachSystemPrompt(user)},
			{Role: "user", Content: message},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      500,
	})
	if err != nil {
		return nil, err
	}

	var reply CoachReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("decode coach reply: %w", err)
	}
	if reply.Message == "" {
		reply.Message = "I'm here to help with your looksmaxxing journey!"
	}
	if reply.Suggestions == nil {
		reply.Suggestions = []string{}
	}
	return &reply, nil
}

func (c *OpenAIClient) AnalyzePhoto(ctx context.Context, image []byte, mimeType string) (json.RawMessage, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	content, err := c.complete(ctx, chatCompletionRequest{
		Model: c.model,
		Messages: []chatCompletionMessage{
			{
				Role: "user",
				Content: []map[string]any{
					{
						"type": "text",
						"text": "Analyze this progress photo for looksmaxxing purposes. Provide constructive feedback on skin condition, facial features, and improvement suggestions. Format as JSON with fields: skinClarity, overallScore, improvements, suggestions.",
					},
					{
						"type":      "image_url",
						"image_url": map[string]string{"url": dataURL},
					},
				},
			},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      400,
	})
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("analysis response is not valid JSON")
	}
	return json.RawMessage(content), nil
}

func (c *OpenAIClient) complete(ctx context.Context, request chatCompletionRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("completion api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

func coachSystemPrompt(user *models.User) string {
	var b strings.Builder
	b.WriteString("You are an expert AI looksmaxxing coach. You provide personalized advice for physical self-improvement including skincare, fitness, nutrition, grooming, and style.\n\n")
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Age: %s\n", intProfileValue(user.Age))
	fmt.Fprintf(&b, "- Gender: %s\n", stringProfileValue(user.Gender))
	fmt.Fprintf(&b, "- Height: %scm\n", intProfileValue(user.Height))
	fmt.Fprintf(&b, "- Weight: %skg\n", floatProfileValue(user.Weight))
	fmt.Fprintf(&b, "- Skin Type: %s\n", stringProfileValue(user.SkinType))
	fmt.Fprintf(&b, "- Hair Type: %s\n", stringProfileValue(user.HairType))
	fmt.Fprintf(&b, "- Goals: %s\n", goalsProfileValue(user.Goals))
	fmt.Fprintf(&b, "- Current Streak: %d days\n\n", user.CurrentStreak)
	b.WriteString("Provide helpful, evidence-based advice. Be encouraging and supportive. Format your response as JSON with 'message' field and optional 'suggestions' array for actionable tips.")
	return b.String()
}

func stringProfileValue(value *string) string {
	if value == nil || *value == "" {
		return "unknown"
	}
	return *value
}

func intProfileValue(value *int) string {
	if value == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *value)
}

func floatProfileValue(value *float64) string {
	if value == nil {
		return "unknown"
	}
	return fmt.Sprintf("%g", *value)
}

func goalsProfileValue(goals *[]string) string {
	if goals == nil || len(*goals) == 0 {
		return "general improvement"
	}
	return strings.Join(*goals, ", ")
}
