package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"battle-royale-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SeedQuestions upserts questions into battle_questions in a single batch.
func SeedQuestions(ctx context.Context, pool *pgxpool.Pool, questions []domain.Question) error {
	batch := &pgx.Batch{}
	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options of %s: %w", q.ID, err)
		}
		batch.Queue(`
			INSERT INTO battle_questions (id, text, options, correct_option, difficulty)
			VALUES ($1, $2, $3::jsonb, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET text = EXCLUDED.text, options = EXCLUDED.options,
			    correct_option = EXCLUDED.correct_option, difficulty = EXCLUDED.difficulty`,
			q.ID, q.Text, string(options), q.CorrectOption, q.Difficulty)
	}

	br := pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, q := range questions {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}
	return nil
}
