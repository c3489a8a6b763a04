package models

// ConversationLog is one persisted question/answer exchange. Rows are
// append-only: never updated or deleted after insert.
type ConversationLog struct {
	ID        int64   `json:"id"`
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	Source    string  `json:"source"`
	Timestamp string  `json:"timestamp"`
	SessionID *string `json:"session_id"`
}

// TrainingExample is a manually supplied Q/A pair injected into the system
// prompt of subsequent conversations.
type TrainingExample struct {
	ID        int64  `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
}
