package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"faqbot-backend/internal/models"
)

// newGeminiFactory builds generators backed by the Gemini API. The credential
// is checked here, not at startup, so a missing key surfaces on first use.
func newGeminiFactory(apiKey, modelName string, temperature float64) generatorFactory {
	return func(ctx context.Context, systemPrompt string) (generator, error) {
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}

		client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}

		model := client.GenerativeModel(modelName)
		model.SetTemperature(float32(temperature))
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}

		return &geminiGenerator{client: client, model: model}, nil
	}
}

type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func (g *geminiGenerator) Generate(ctx context.Context, history []models.ChatMessage, question string) (string, error) {
	cs := g.model.StartChat()
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(question))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", fmt.Errorf("Gemini returned an empty response")
	}
	return text, nil
}

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
