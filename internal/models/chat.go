package models

// ChatMessage represents a single message in the in-process conversation memory.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Answer sources recorded on conversation logs. A fallback answer is the
// apologetic text produced when the model call fails.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// AskResult is the outcome of one chat exchange.
type AskResult struct {
	Answer string
	Source string
}

// MemorySummary describes the current conversation memory.
type MemorySummary struct {
	TotalMessages     int    `json:"total_messages"`
	ConversationPairs int    `json:"conversation_pairs"`
	MemoryBuffer      string `json:"memory_buffer"`
}

// AskRequest is the payload for POST /ask.
type AskRequest struct {
	Question  string  `json:"question"`
	SessionID *string `json:"session_id,omitempty"`
}

// AskResponse is the reply for POST /ask.
type AskResponse struct {
	Answer    string  `json:"answer"`
	Question  string  `json:"question"`
	Timestamp string  `json:"timestamp"`
	SessionID *string `json:"session_id,omitempty"`
}

// TrainRequest is the payload for POST /train.
type TrainRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TrainResponse is the reply for POST /train.
type TrainResponse struct {
	ID       int64  `json:"id"`
	Message  string `json:"message"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type StatusResponse struct {
	Status     string        `json:"status"`
	MemoryInfo MemorySummary `json:"memory_info"`
	Timestamp  string        `json:"timestamp"`
}

type ResetResponse struct {
	Message string `json:"message"`
}
