package app

import (
	"sort"

	"battle-royale-service/internal/domain"
)

// WinnerSlots is how many survivors are ranked at completion.
const WinnerSlots = 3

// RewardTable maps a 1-based finishing position to a reward. Positions past the end earn 0.
type RewardTable []int

// DefaultRewards is used when no table is configured.
var DefaultRewards = RewardTable{100, 50, 25}

// Reward returns the reward for position.
func (t RewardTable) Reward(position int) int {
	if position < 1 || position > len(t) {
		return 0
	}
	return t[position-1]
}

// RankWinners orders survivors by score, keeping join order for ties, and keeps the top three.
// participants must already be in join order.
func RankWinners(participants []domain.Participant, rewards RewardTable) []domain.Winner {
	survivors := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		if !p.Eliminated {
			survivors = append(survivors, p)
		}
	}
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].Score > survivors[j].Score
	})
	if len(survivors) > WinnerSlots {
		survivors = survivors[:WinnerSlots]
	}

	winners := make([]domain.Winner, 0, len(survivors))
	for i, p := range survivors {
		winners = append(winners, domain.Winner{
			PlayerID:    p.PlayerID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			Position:    i + 1,
			Reward:      rewards.Reward(i + 1),
		})
	}
	return winners
}
