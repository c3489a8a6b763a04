package repository

import (
	"context"
	"database/sql"
	"fmt"

	"faqbot-backend/internal/models"
)

type TrainingRepo struct {
	db *sql.DB
}

func NewTrainingRepo(db *sql.DB) *TrainingRepo {
	return &TrainingRepo{db: db}
}

// Add inserts one training example and returns the assigned id.
func (r *TrainingRepo) Add(ctx context.Context, question, answer string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO training_data (question, answer)
		VALUES (?, ?)
	`, question, answer)
	if err != nil {
		return 0, fmt.Errorf("adding training data: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading training data id: %w", err)
	}
	return id, nil
}

// ListAll returns every training example, newest first.
func (r *TrainingRepo) ListAll(ctx context.Context) ([]models.TrainingExample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, answer, created_at
		FROM training_data
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing training data: %w", err)
	}
	defer rows.Close()

	return scanExamples(rows)
}

// Recent returns up to n most recently created examples, newest first.
func (r *TrainingRepo) Recent(ctx context.Context, n int) ([]models.TrainingExample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, answer, created_at
		FROM training_data
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("listing recent training data: %w", err)
	}
	defer rows.Close()

	return scanExamples(rows)
}

func scanExamples(rows *sql.Rows) ([]models.TrainingExample, error) {
	examples := []models.TrainingExample{}
	for rows.Next() {
		var e models.TrainingExample
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning training example: %w", err)
		}
		examples = append(examples, e)
	}
	return examples, rows.Err()
}
