package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"faqbot-backend/internal/models"
)

type chatbotService interface {
	Ask(ctx context.Context, question string, sessionID *string) (models.AskResult, error)
	Reset() error
	MemorySummary() models.MemorySummary
}

type conversationStore interface {
	Log(ctx context.Context, question, answer, source string, sessionID *string) (int64, error)
	ListAll(ctx context.Context) ([]models.ConversationLog, error)
	Recent(ctx context.Context, limit int) ([]models.ConversationLog, error)
}

type trainingStore interface {
	Add(ctx context.Context, question, answer string) (int64, error)
	ListAll(ctx context.Context) ([]models.TrainingExample, error)
}

type ChatbotHandler struct {
	chatbot       chatbotService
	conversations conversationStore
	training      trainingStore
}

func NewChatbotHandler(chatbot chatbotService, conversations conversationStore, training trainingStore) *ChatbotHandler {
	return &ChatbotHandler{
		chatbot:       chatbot,
		conversations: conversations,
		training:      training,
	}
}

// Health responds to the root health probe.
func (h *ChatbotHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Message:   "FAQ Chatbot API is running successfully!",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Ask accepts a user question, asks the model, and logs the exchange.
func (h *ChatbotHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Question cannot be empty", r))
		return
	}

	result, err := h.chatbot.Ask(r.Context(), req.Question, req.SessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("INTERNAL_ERROR", fmt.Sprintf("Internal server error: %v", err), r))
		return
	}

	if _, err := h.conversations.Log(r.Context(), req.Question, result.Answer, result.Source, req.SessionID); err != nil {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("INTERNAL_ERROR", fmt.Sprintf("Internal server error: %v", err), r))
		return
	}

	writeJSON(w, http.StatusOK, models.AskResponse{
		Answer:    result.Answer,
		Question:  req.Question,
		Timestamp: time.Now().Format(time.RFC3339),
		SessionID: req.SessionID,
	})
}

// Logs returns saved Q&A logs, newest first. An optional limit query parameter
// bounds the result.
func (h *ChatbotHandler) Logs(w http.ResponseWriter, r *http.Request) {
	var (
		logs []models.ConversationLog
		err  error
	)

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, parseErr := strconv.Atoi(raw)
		if parseErr != nil || limit < 1 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid limit parameter", r))
			return
		}
		logs, err = h.conversations.Recent(r.Context(), limit)
	} else {
		logs, err = h.conversations.ListAll(r.Context())
	}

	if err != nil {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("INTERNAL_ERROR", fmt.Sprintf("Failed to retrieve logs: %v", err), r))
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// Train stores a manual Q&A pair and resets the chatbot so the next request
// rebuilds its system prompt with the new example included.
func (h *ChatbotHandler) Train(w http.ResponseWriter, r *http.Request) {
	var req models.TrainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Both question and answer are required", r))
		return
	}

	id, err := h.training.Add(r.Context(), req.Question, req.Answer)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("INTERNAL_ERROR", fmt.Sprintf("Failed to add training data: %v", err), r))
		return
	}

	if err := h.chatbot.Reset(); err != nil {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("INTERNAL_ERROR", fmt.Sprintf("Failed to add training data: %v", err), r))
		return
	}

	writeJSON(w, http.StatusOK, models.TrainResponse{
		ID:       id,
		Message:  "Training data added successfully",
		Question: req.Question,
		Answer:   req.Answer,
	})
}

// Training returns all training examples, newest first.
func (h *ChatbotHandler) Training(w http.ResponseWriter, r *http.Request) {
	examples, err := h.training.ListAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("INTERNAL_ERROR", fmt.Sprintf("Failed to retrieve training data: %v", err), r))
		return
	}

	writeJSON(w, http.StatusOK, examples)
}

// Reset clears the conversation memory.
func (h *ChatbotHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.chatbot.Reset(); err != nil {
		writeJSON(w, http.StatusInternalServerError,
			errorResp("INTERNAL_ERROR", fmt.Sprintf("Failed to reset conversation: %v", err), r))
		return
	}

	writeJSON(w, http.StatusOK, models.ResetResponse{
		Message: "Conversation memory reset successfully",
	})
}

// Status reports the chatbot memory summary.
func (h *ChatbotHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.StatusResponse{
		Status:     "active",
		MemoryInfo: h.chatbot.MemorySummary(),
		Timestamp:  time.Now().Format(time.RFC3339),
	})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}
