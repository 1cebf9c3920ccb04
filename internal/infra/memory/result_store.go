package memory

import (
	"context"
	"sort"
	"sync"

	"battle-royale-service/internal/domain"
)

// ResultStore keeps completed battles in process. Results are lost on restart.
type ResultStore struct {
	mu      sync.RWMutex
	battles []domain.BattleResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) SaveResult(_ context.Context, result domain.BattleResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battles = append(s.battles, result)
	return nil
}

// Leaderboard flattens the winners of the most recent battles, newest battle first.
func (s *ResultStore) Leaderboard(_ context.Context, battles int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	recent := append([]domain.BattleResult(nil), s.battles...)
	s.mu.RUnlock()

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].EndTime.After(recent[j].EndTime)
	})
	if battles > 0 && len(recent) > battles {
		recent = recent[:battles]
	}

	var entries []domain.LeaderboardEntry
	for _, b := range recent {
		for _, w := range b.Winners {
			entries = append(entries, domain.LeaderboardEntry{
				RoomID:      b.RoomID,
				PlayerID:    w.PlayerID,
				DisplayName: w.DisplayName,
				Position:    w.Position,
				Reward:      w.Reward,
				Score:       w.Score,
				Date:        b.EndTime,
			})
		}
	}
	return entries, nil
}
