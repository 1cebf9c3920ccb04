package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"battle-royale-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads the question pool from Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

// LoadQuestions returns every question at or below maxDifficulty; 0 means any.
func (l *QuestionLoader) LoadQuestions(ctx context.Context, maxDifficulty int) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, text, options, correct_option, difficulty
		FROM battle_questions
		WHERE $1::int = 0 OR difficulty <= $1::int
		ORDER BY id`, maxDifficulty)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q       domain.Question
			options []byte
		)
		if err := rows.Scan(&q.ID, &q.Text, &options, &q.CorrectOption, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options of %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
