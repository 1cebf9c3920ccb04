package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"battle-royale-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultStore writes completed battles and reads the winners leaderboard.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

// SaveResult writes the battle and its winners in one transaction. Saving a room twice is a no-op.
func (s *ResultStore) SaveResult(ctx context.Context, result domain.BattleResult) error {
	participants, err := json.Marshal(result.Participants)
	if err != nil {
		return fmt.Errorf("marshal participants: %w", err)
	}

	return s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO battles (room_id, participants, start_time, end_time)
			VALUES ($1, $2::jsonb, $3, $4)
			ON CONFLICT (room_id) DO NOTHING`,
			result.RoomID, string(participants), result.StartTime, result.EndTime)
		if err != nil {
			return fmt.Errorf("insert battle: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		for _, w := range result.Winners {
			if _, err := tx.Exec(ctx, `
				INSERT INTO battle_winners (room_id, position, player_id, display_name, score, reward)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				result.RoomID, w.Position, w.PlayerID, w.DisplayName, w.Score, w.Reward); err != nil {
				return fmt.Errorf("insert winner %d: %w", w.Position, err)
			}
		}
		return nil
	})
}

// Leaderboard flattens the winners of the most recent battles, newest battle first.
func (s *ResultStore) Leaderboard(ctx context.Context, battles int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT w.room_id, w.player_id, w.display_name, w.position, w.reward, w.score, b.end_time
		FROM (SELECT room_id, end_time FROM battles ORDER BY end_time DESC LIMIT $1) b
		JOIN battle_winners w ON w.room_id = b.room_id
		ORDER BY b.end_time DESC, w.position`, battles)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.RoomID, &e.PlayerID, &e.DisplayName, &e.Position, &e.Reward, &e.Score, &e.Date); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
