package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/jwebster45206/quest-engine/pkg/chat"
	"github.com/jwebster45206/quest-engine/pkg/narrator"
)

const (
	veniceBaseURL = "https://api.venice.ai/api/v1"

	DefaultVeniceModel       = "venice-uncensored"
	DefaultVeniceTemperature = 0.7
	DefaultVeniceMaxTokens   = 2048
)

// VeniceNarrator implements narrator.Narrator for Venice AI using its
// OpenAI-compatible chat endpoint with a strict JSON schema.
type VeniceNarrator struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type VeniceResponseFormat struct {
	Type       string           `json:"type"`
	JSONSchema VeniceJSONSchema `json:"json_schema"`
}

type VeniceJSONSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type VeniceParameters struct {
	IncludeVeniceSystemPrompt bool   `json:"include_venice_system_prompt"`
	EnableWebSearch           string `json:"enable_web_search"`
}

// VeniceChatRequest represents the request structure for Venice AI chat completions
type VeniceChatRequest struct {
	Model            string                `json:"model"`
	Messages         []chat.ChatMessage    `json:"messages"`
	Temperature      float64               `json:"temperature,omitempty"`
	MaxTokens        int                   `json:"max_tokens,omitempty"`
	Stream           bool                  `json:"stream"`
	ResponseFormat   *VeniceResponseFormat `json:"response_format,omitempty"`
	VeniceParameters VeniceParameters      `json:"venice_parameters"`
}

// VeniceChatChoice represents a single choice in the Venice AI response
type VeniceChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// VeniceChatResponse represents the response structure for Venice AI chat completions
type VeniceChatResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []VeniceChatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewVeniceNarrator creates a new Venice AI narrator
func NewVeniceNarrator(apiKey string, modelName string, logger *slog.Logger) *VeniceNarrator {
	if modelName == "" {
		modelName = DefaultVeniceModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VeniceNarrator{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   veniceBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (v *VeniceNarrator) Narrate(ctx context.Context, req *narrator.Request) (*narrator.Response, error) {
	if v.apiKey == "" {
		return nil, narrator.ErrNotConfigured
	}
	messages, err := req.Builder(false).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}
	content, err := v.chatCompletion(ctx, messages, responseFormat())
	if err != nil {
		return nil, err
	}
	return narrator.Parse(content)
}

// chatCompletion makes a chat completion request to Venice AI
func (v *VeniceNarrator) chatCompletion(ctx context.Context, messages []chat.ChatMessage, format *VeniceResponseFormat) (string, error) {
	veniceReq := VeniceChatRequest{
		Model:          v.modelName,
		Messages:       messages,
		Temperature:    DefaultVeniceTemperature,
		MaxTokens:      DefaultVeniceMaxTokens,
		Stream:         false,
		ResponseFormat: format,
		VeniceParameters: VeniceParameters{
			IncludeVeniceSystemPrompt: false,
			EnableWebSearch:           "off",
		},
	}

	reqBody, err := json.Marshal(veniceReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", v.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if err := statusError(resp.StatusCode, body); err != nil {
		return "", err
	}

	var veniceResp VeniceChatResponse
	if err := json.Unmarshal(body, &veniceResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if veniceResp.Error != nil {
		return "", fmt.Errorf("API error: %s", veniceResp.Error.Message)
	}

	if len(veniceResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", narrator.ErrInvalidResponse)
	}
	v.logger.Debug("Venice response received",
		"model", v.modelName,
		"total_tokens", veniceResp.Usage.TotalTokens)

	return veniceResp.Choices[0].Message.Content, nil
}

func responseFormat() *VeniceResponseFormat {
	return &VeniceResponseFormat{
		Type: "json_schema",
		JSONSchema: VeniceJSONSchema{
			Name:   "turn_outcome",
			Strict: true,
			Schema: strictSchema(narrator.ResponseSchema()),
		},
	}
}

// strictSchema renders a schema in strict JSON Schema form: every property
// is required, optional ones are nullable, and no extra keys are allowed.
func strictSchema(s *narrator.Schema) map[string]interface{} {
	out := map[string]interface{}{}
	if s.Nullable {
		out["type"] = []string{s.Type, "null"}
	} else {
		out["type"] = s.Type
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		enum := make([]interface{}, 0, len(s.Enum)+1)
		for _, e := range s.Enum {
			enum = append(enum, e)
		}
		if s.Nullable {
			enum = append(enum, nil)
		}
		out["enum"] = enum
	}
	if s.Items != nil {
		out["items"] = strictSchema(s.Items)
	}
	if s.Type == narrator.TypeObject {
		props := make(map[string]interface{}, len(s.Properties))
		required := make([]string, 0, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = strictSchema(prop)
			required = append(required, name)
		}
		slices.Sort(required)
		out["properties"] = props
		out["required"] = required
		out["additionalProperties"] = false
	}
	return out
}
