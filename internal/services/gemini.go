package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jwebster45206/quest-engine/pkg/narrator"
	"github.com/jwebster45206/quest-engine/pkg/prompts"
)

const (
	DefaultGeminiModel       = "gemini-2.5-flash"
	DefaultGeminiTemperature = 0.8
)

// GeminiNarrator implements narrator.Narrator with Google's Gemini models.
// The response schema is enforced by the API, so no format prompt is sent.
type GeminiNarrator struct {
	client    *genai.Client
	modelName string
	logger    *slog.Logger
}

// NewGeminiNarrator connects to Gemini. An empty apiKey yields a narrator
// whose calls fail with narrator.ErrNotConfigured.
func NewGeminiNarrator(ctx context.Context, apiKey, modelName string, logger *slog.Logger) (*GeminiNarrator, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := &GeminiNarrator{modelName: modelName, logger: logger}
	if apiKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiNarrator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiNarrator) Narrate(ctx context.Context, req *narrator.Request) (*narrator.Response, error) {
	if g.client == nil {
		return nil, narrator.ErrNotConfigured
	}
	messages, err := req.Builder(false).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}
	system, user := prompts.Flatten(messages)

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(DefaultGeminiTemperature)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = GeminiSchema(narrator.ResponseSchema())

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: gemini returned no candidates", narrator.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	g.logger.Debug("Gemini response received", "model", g.modelName, "length", sb.Len())
	return narrator.Parse(sb.String())
}

func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", narrator.ErrRateLimited, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429") {
		return fmt.Errorf("%w: %v", narrator.ErrRateLimited, err)
	}
	return fmt.Errorf("gemini request failed: %w", err)
}

// GeminiSchema converts a narrator schema into the genai form.
func GeminiSchema(s *narrator.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Nullable:    s.Nullable,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	switch s.Type {
	case narrator.TypeString:
		out.Type = genai.TypeString
		if len(s.Enum) > 0 {
			out.Format = "enum"
		}
	case narrator.TypeInteger:
		out.Type = genai.TypeInteger
	case narrator.TypeNumber:
		out.Type = genai.TypeNumber
	case narrator.TypeBoolean:
		out.Type = genai.TypeBoolean
	case narrator.TypeArray:
		out.Type = genai.TypeArray
		out.Items = GeminiSchema(s.Items)
	case narrator.TypeObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = GeminiSchema(prop)
		}
	}
	return out
}
