package services

import (
	"fmt"
	"strings"

	"faqbot-backend/internal/models"
)

const systemPreamble = `You are a helpful FAQ chatbot assistant. You provide accurate, concise, and helpful answers to user questions.

Key guidelines:
1. Be helpful, friendly, and professional
2. Provide clear and accurate information
3. If you're unsure about something, acknowledge it
4. Keep responses concise but comprehensive
5. Use the conversation history to provide contextual responses
`

// buildSystemPrompt layers the most recent training examples onto the fixed
// preamble as literal Q/A pairs.
func buildSystemPrompt(examples []models.TrainingExample) string {
	var b strings.Builder

	b.WriteString(systemPreamble)

	if len(examples) > 0 {
		b.WriteString("\n\nHere are some example Q&A pairs for reference:\n")
		for _, e := range examples {
			b.WriteString(fmt.Sprintf("Q: %s\nA: %s\n\n", e.Question, e.Answer))
		}
	}

	return b.String()
}

// renderBuffer formats memory the way it is replayed to the model, for the
// status endpoint.
func renderBuffer(msgs []models.ChatMessage) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		if m.Role == "assistant" {
			b.WriteString("AI: ")
		} else {
			b.WriteString("Human: ")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}
