package repository

import (
	"context"
	"database/sql"
	"fmt"

	"faqbot-backend/internal/models"
)

type ConversationRepo struct {
	db *sql.DB
}

func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Log inserts one exchange and returns the assigned id.
func (r *ConversationRepo) Log(ctx context.Context, question, answer, source string, sessionID *string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO conversation_logs (question, answer, source, session_id)
		VALUES (?, ?, ?, ?)
	`, question, answer, source, sessionID)
	if err != nil {
		return 0, fmt.Errorf("logging conversation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading conversation log id: %w", err)
	}
	return id, nil
}

// ListAll returns every log row, newest first.
func (r *ConversationRepo) ListAll(ctx context.Context) ([]models.ConversationLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, answer, source, timestamp, session_id
		FROM conversation_logs
		ORDER BY timestamp DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing conversation logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

// Recent returns up to limit most recent log rows, newest first.
func (r *ConversationRepo) Recent(ctx context.Context, limit int) ([]models.ConversationLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, answer, source, timestamp, session_id
		FROM conversation_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent conversations: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

func scanLogs(rows *sql.Rows) ([]models.ConversationLog, error) {
	logs := []models.ConversationLog{}
	for rows.Next() {
		var l models.ConversationLog
		if err := rows.Scan(&l.ID, &l.Question, &l.Answer, &l.Source, &l.Timestamp, &l.SessionID); err != nil {
			return nil, fmt.Errorf("scanning conversation log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
