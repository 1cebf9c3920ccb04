package app_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"battle-royale-service/internal/app"
	"battle-royale-service/internal/domain"
	"battle-royale-service/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomValidatesConfiguration(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), nil)

	_, err := service.CreateRoom(ctx, app.CreateRoomRequest{Capacity: 11})
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = service.CreateRoom(ctx, app.CreateRoomRequest{Capacity: 3})
	require.ErrorIs(t, err, domain.ErrConfiguration, "capacity must exceed the survivor limit")

	empty, _ := newTestService(nil, nil)
	_, err = empty.CreateRoom(ctx, app.CreateRoomRequest{})
	require.ErrorIs(t, err, domain.ErrConfiguration)
	require.ErrorIs(t, err, domain.ErrNoQuestions)

	snap, err := service.CreateRoom(ctx, app.CreateRoomRequest{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusWaiting, snap.Status)
	require.Equal(t, app.MaxCapacity, snap.Capacity)
	require.Equal(t, 4, snap.TotalQuestions)
	require.Empty(t, snap.Participants)
}

func TestCreateRoomWithHostJoinsCreator(t *testing.T) {
	service, _ := newTestService(testQuestions(4), nil)

	snap, err := service.CreateRoom(context.Background(), app.CreateRoomRequest{
		Capacity: 5,
		Host:     &app.PlayerRef{PlayerID: "host", DisplayName: "Host"},
	})
	require.NoError(t, err)
	require.Len(t, snap.Participants, 1)
	require.Equal(t, "host", snap.Participants[0].PlayerID)
}

func TestJoinRules(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})

	_, err := service.Join(ctx, "missing", "p1", "P1")
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	roomID := createRoom(t, service, 4)
	participants, err := service.Join(ctx, roomID, "p1", "Ana")
	require.NoError(t, err)
	require.Len(t, participants, 1)

	_, err = service.Join(ctx, roomID, "p1", "Ana")
	require.ErrorIs(t, err, domain.ErrDuplicateParticipant)

	fill(t, service, roomID, "p2", "p3", "p4")
	snap, err := service.Room(ctx, roomID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, snap.Status)
	require.NotNil(t, snap.StartTime)

	_, err = service.Join(ctx, roomID, "p5", "P5")
	require.ErrorIs(t, err, domain.ErrRoomNotJoinable)

	service.RemoveRoom(roomID)
}

func TestBattleStartsExactlyOnceUnderConcurrentJoins(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, app.MaxCapacity)

	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()

	var wg sync.WaitGroup
	for i := 1; i <= app.MaxCapacity+3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = service.Join(ctx, roomID, fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i))
		}(i)
	}
	wg.Wait()

	snap, err := service.Room(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, snap.Participants, app.MaxCapacity)
	require.Equal(t, domain.StatusActive, snap.Status)

	service.RemoveRoom(roomID)
	got := drain(t, events)
	require.Equal(t, app.MaxCapacity, count(got, domain.EventPlayerJoined))
	require.Equal(t, 1, count(got, domain.EventQuestionStart))
}

func TestRoomStaysWaitingUntilFull(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, app.MaxCapacity)
	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()

	for i := 1; i < app.MaxCapacity; i++ {
		fill(t, service, roomID, fmt.Sprintf("p%d", i))
	}
	snap, err := service.Room(ctx, roomID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusWaiting, snap.Status)
	require.Nil(t, snap.StartTime)

	fill(t, service, roomID, fmt.Sprintf("p%d", app.MaxCapacity))
	snap, err = service.Room(ctx, roomID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, snap.Status)

	service.RemoveRoom(roomID)
	got := drain(t, events)
	require.Equal(t, 1, count(got, domain.EventQuestionStart))
	for i, ev := range got {
		if ev.Type == domain.EventQuestionStart {
			require.Equal(t, 1+app.MaxCapacity, i, "the battle starts only after the last join")
		}
	}
}

func TestQuestionStartHidesAnswer(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, 4)
	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()

	first := <-events
	require.Equal(t, domain.EventRoomState, first.Type)

	fill(t, service, roomID, "p1", "p2", "p3", "p4")
	service.RemoveRoom(roomID)

	for _, ev := range drain(t, events) {
		if ev.Type != domain.EventQuestionStart {
			continue
		}
		payload, ok := ev.Payload.(domain.QuestionStartPayload)
		require.True(t, ok)
		require.Equal(t, 0, payload.Index)
		require.Equal(t, 4, payload.Total)
		require.Len(t, payload.Question.Options, 4)
	}
}

func TestScoreUsesResponseTime(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, 4)
	fill(t, service, roomID, "p1", "p2", "p3", "p4")
	defer service.RemoveRoom(roomID)

	cases := []struct {
		player   string
		response float64
		want     int
	}{
		{"p1", 2.5, 17},
		{"p2", 0, 20},
		{"p3", 25, 10},
		{"p4", -3, 20},
	}
	for _, tc := range cases {
		res, err := service.SubmitAnswer(ctx, roomID, tc.player, domain.AnswerSubmission{
			QuestionIndex:       0,
			OptionIndex:         0,
			ResponseTimeSeconds: tc.response,
		})
		require.NoError(t, err)
		assert.True(t, res.Correct)
		assert.Equal(t, tc.want, res.Score, tc.player)
	}
}

func TestSubmitAnswerErrors(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})

	_, err := service.SubmitAnswer(ctx, "missing", "p1", domain.AnswerSubmission{})
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	roomID := createRoom(t, service, 4)
	fill(t, service, roomID, "p1")
	_, err = service.SubmitAnswer(ctx, roomID, "p1", domain.AnswerSubmission{})
	require.ErrorIs(t, err, domain.ErrRoomNotActive)

	fill(t, service, roomID, "p2", "p3", "p4")
	defer service.RemoveRoom(roomID)

	_, err = service.SubmitAnswer(ctx, roomID, "p1", domain.AnswerSubmission{QuestionIndex: 1})
	require.ErrorIs(t, err, domain.ErrStaleQuestion)

	_, err = service.SubmitAnswer(ctx, roomID, "stranger", domain.AnswerSubmission{QuestionIndex: 0})
	require.ErrorIs(t, err, domain.ErrUnknownParticipant)
}

func TestRepeatedAnswerIsIgnored(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, 4)
	fill(t, service, roomID, "p1", "p2", "p3", "p4")
	defer service.RemoveRoom(roomID)

	first, err := service.SubmitAnswer(ctx, roomID, "p1", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 0, ResponseTimeSeconds: 1})
	require.NoError(t, err)
	require.Equal(t, 19, first.Score)

	again, err := service.SubmitAnswer(ctx, roomID, "p1", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 2})
	require.NoError(t, err)
	require.True(t, again.Correct)
	require.False(t, again.Eliminated)
	require.Equal(t, 19, again.Score)
}

func TestWrongAnswerEliminatesOnce(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
		s.SurvivorLimit = 1
	})
	roomID := createRoom(t, service, 4)
	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()
	fill(t, service, roomID, "p1", "p2", "p3", "p4")

	res, err := service.SubmitAnswer(ctx, roomID, "p2", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 3})
	require.NoError(t, err)
	require.False(t, res.Correct)
	require.True(t, res.Eliminated)
	require.Equal(t, 0, res.Score)

	res, err = service.SubmitAnswer(ctx, roomID, "p2", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 0})
	require.NoError(t, err)
	require.True(t, res.Eliminated)
	require.Equal(t, 0, res.Score)

	_, err = service.SubmitAnswer(ctx, roomID, "p3", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 99})
	require.NoError(t, err)

	service.RemoveRoom(roomID)
	var eliminated []string
	for _, ev := range drain(t, events) {
		if ev.Type == domain.EventPlayerEliminated {
			payload := ev.Payload.(domain.PlayerEliminatedPayload)
			require.Equal(t, domain.ReasonWrongAnswer, payload.Reason)
			eliminated = append(eliminated, payload.PlayerID)
		}
	}
	require.Equal(t, []string{"p2", "p3"}, eliminated)
}

func TestEliminatedPlayerScoreIsFrozen(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(6), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, 5)
	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()
	players := []string{"p1", "p2", "p3", "p4", "p5"}
	fill(t, service, roomID, players...)

	answerAll := func(q int, wrong string) {
		for _, p := range players {
			option := 0
			if p == wrong {
				option = 1
			}
			_, err := service.SubmitAnswer(ctx, roomID, p, domain.AnswerSubmission{QuestionIndex: q, OptionIndex: option, ResponseTimeSeconds: 4})
			require.NoError(t, err)
		}
	}
	answerAll(0, "")
	answerAll(1, "")

	res, err := service.SubmitAnswer(ctx, roomID, "p5", domain.AnswerSubmission{QuestionIndex: 2, OptionIndex: 1})
	require.NoError(t, err)
	require.True(t, res.Eliminated)
	require.Equal(t, 32, res.Score)
	for _, p := range players[:4] {
		_, err := service.SubmitAnswer(ctx, roomID, p, domain.AnswerSubmission{QuestionIndex: 2, OptionIndex: 0, ResponseTimeSeconds: 4})
		require.NoError(t, err)
	}

	snap, err := service.Room(ctx, roomID)
	require.NoError(t, err)
	require.Equal(t, 3, snap.CurrentQuestionIndex)

	res, err = service.SubmitAnswer(ctx, roomID, "p5", domain.AnswerSubmission{QuestionIndex: 3, OptionIndex: 0})
	require.NoError(t, err)
	require.False(t, res.Correct)
	require.True(t, res.Eliminated)
	require.Equal(t, 32, res.Score)

	snap, err = service.Room(ctx, roomID)
	require.NoError(t, err)
	require.Equal(t, 3, snap.CurrentQuestionIndex, "an eliminated answer does not move the battle on")
	for _, p := range snap.Participants {
		if p.PlayerID == "p5" {
			require.True(t, p.Eliminated)
			require.Equal(t, 32, p.Score)
		} else {
			require.Equal(t, 48, p.Score)
		}
	}

	service.RemoveRoom(roomID)
	got := drain(t, events)
	require.Equal(t, 1, count(got, domain.EventPlayerEliminated))
	require.Equal(t, 4, count(got, domain.EventQuestionStart))
}

func TestEliminationToSurvivorLimitCompletesBattle(t *testing.T) {
	ctx := context.Background()
	service, results := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, 4)
	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()
	fill(t, service, roomID, "p1", "p2", "p3", "p4")

	_, err = service.SubmitAnswer(ctx, roomID, "p1", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 0, ResponseTimeSeconds: 1})
	require.NoError(t, err)
	_, err = service.SubmitAnswer(ctx, roomID, "p4", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 1})
	require.NoError(t, err)

	_, err = service.Room(ctx, roomID)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	got := drain(t, events)
	require.Equal(t, 1, count(got, domain.EventQuestionStart), "no question follows the elimination that ends the battle")
	require.Equal(t, 1, count(got, domain.EventBattleEnd))
	require.Equal(t, domain.EventBattleEnd, got[len(got)-1].Type)
	winners := got[len(got)-1].Payload.(domain.BattleEndPayload).Winners
	require.Len(t, winners, 3)
	require.Equal(t, "p1", winners[0].PlayerID)
	require.Equal(t, 19, winners[0].Score)
	require.Equal(t, []int{100, 50, 25}, []int{winners[0].Reward, winners[1].Reward, winners[2].Reward})

	board, err := results.Leaderboard(ctx, 50)
	require.NoError(t, err)
	require.Len(t, board, 3)
	require.Equal(t, roomID, board[0].RoomID)
}

func TestBattleRunsOutOfQuestions(t *testing.T) {
	ctx := context.Background()
	service, results := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})
	roomID := createRoom(t, service, 5)
	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()
	players := []string{"p1", "p2", "p3", "p4", "p5"}
	fill(t, service, roomID, players...)

	for q := 0; q < 4; q++ {
		for i, p := range players {
			res, err := service.SubmitAnswer(ctx, roomID, p, domain.AnswerSubmission{
				QuestionIndex:       q,
				OptionIndex:         0,
				ResponseTimeSeconds: float64(i),
			})
			require.NoError(t, err)
			require.True(t, res.Correct)
		}
	}

	_, err = service.Room(ctx, roomID)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	got := drain(t, events)
	require.Equal(t, 4, count(got, domain.EventQuestionStart))
	require.Equal(t, 0, count(got, domain.EventPlayerEliminated))
	require.Equal(t, 1, count(got, domain.EventBattleEnd))

	board, err := results.Leaderboard(ctx, 50)
	require.NoError(t, err)
	require.Len(t, board, 3)
	require.Equal(t, "p1", board[0].PlayerID)
	require.Equal(t, 80, board[0].Score)
	require.Equal(t, "p2", board[1].PlayerID)
	require.Equal(t, 76, board[1].Score)
	require.Equal(t, "p3", board[2].PlayerID)
	require.Equal(t, 72, board[2].Score)
}

func TestSilentPlayersTimeOut(t *testing.T) {
	ctx := context.Background()
	service, results := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 50 * time.Millisecond
		s.SurvivorLimit = 1
	})
	roomID := createRoom(t, service, 4)
	events, cancel, err := service.Subscribe(ctx, roomID)
	require.NoError(t, err)
	defer cancel()
	fill(t, service, roomID, "p1", "p2", "p3", "p4")

	_, err = service.SubmitAnswer(ctx, roomID, "p1", domain.AnswerSubmission{QuestionIndex: 0, OptionIndex: 0})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := service.Room(ctx, roomID)
		return errors.Is(err, domain.ErrRoomNotFound)
	}, 2*time.Second, 10*time.Millisecond)

	timeouts := 0
	for _, ev := range drain(t, events) {
		if ev.Type == domain.EventPlayerEliminated {
			require.Equal(t, domain.ReasonTimeout, ev.Payload.(domain.PlayerEliminatedPayload).Reason)
			timeouts++
		}
	}
	require.Equal(t, 3, timeouts)

	board, err := results.Leaderboard(ctx, 50)
	require.NoError(t, err)
	require.Len(t, board, 1)
	require.Equal(t, "p1", board[0].PlayerID)
}

func TestRemovedRoomIgnoresCountdown(t *testing.T) {
	ctx := context.Background()
	service, results := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 20 * time.Millisecond
	})
	roomID := createRoom(t, service, 4)
	fill(t, service, roomID, "p1", "p2", "p3", "p4")
	service.RemoveRoom(roomID)

	time.Sleep(80 * time.Millisecond)
	board, err := results.Leaderboard(ctx, 50)
	require.NoError(t, err)
	require.Empty(t, board)

	service.RemoveRoom(roomID)
}

func TestCompleteRules(t *testing.T) {
	ctx := context.Background()
	service, results := newTestService(testQuestions(4), func(s *app.Settings) {
		s.QuestionWindow = 10 * time.Second
	})

	require.ErrorIs(t, service.Complete(ctx, "missing"), domain.ErrRoomNotFound)

	roomID := createRoom(t, service, 4)
	fill(t, service, roomID, "p1")
	require.ErrorIs(t, service.Complete(ctx, roomID), domain.ErrRoomNotActive)

	fill(t, service, roomID, "p2", "p3", "p4")
	require.NoError(t, service.Complete(ctx, roomID))
	require.ErrorIs(t, service.Complete(ctx, roomID), domain.ErrRoomNotFound)

	board, err := results.Leaderboard(ctx, 50)
	require.NoError(t, err)
	require.Len(t, board, 3)
	for _, entry := range board {
		require.Equal(t, 0, entry.Score)
	}
}

func TestQuickMatch(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(testQuestions(4), nil)

	first, err := service.QuickMatch(ctx, app.PlayerRef{PlayerID: "p1", DisplayName: "Ana"}, 0)
	require.NoError(t, err)
	require.Len(t, first.Participants, 1)

	second, err := service.QuickMatch(ctx, app.PlayerRef{PlayerID: "p2", DisplayName: "Ben"}, 0)
	require.NoError(t, err)
	require.Equal(t, first.RoomID, second.RoomID)
	require.Len(t, second.Participants, 2)

	again, err := service.QuickMatch(ctx, app.PlayerRef{PlayerID: "p1", DisplayName: "Ana"}, 0)
	require.NoError(t, err)
	require.Equal(t, first.RoomID, again.RoomID)
	require.Len(t, again.Participants, 2)

	other, err := service.QuickMatch(ctx, app.PlayerRef{PlayerID: "p3", DisplayName: "Cy"}, 2)
	require.NoError(t, err)
	require.NotEqual(t, first.RoomID, other.RoomID)

	require.Len(t, service.OpenRooms(ctx), 2)
}

func TestRankWinners(t *testing.T) {
	participants := []domain.Participant{
		{PlayerID: "p1", Score: 30},
		{PlayerID: "p2", Score: 50},
		{PlayerID: "p3", Score: 50},
		{PlayerID: "p4", Score: 10},
		{PlayerID: "p5", Score: 90, Eliminated: true},
	}

	winners := app.RankWinners(participants, app.DefaultRewards)
	require.Len(t, winners, 3)
	require.Equal(t, []string{"p2", "p3", "p1"}, []string{winners[0].PlayerID, winners[1].PlayerID, winners[2].PlayerID})
	require.Equal(t, []int{1, 2, 3}, []int{winners[0].Position, winners[1].Position, winners[2].Position})
	require.Equal(t, []int{100, 50, 25}, []int{winners[0].Reward, winners[1].Reward, winners[2].Reward})

	require.Len(t, app.RankWinners(participants[:1], app.RewardTable{7}), 1)
	require.Empty(t, app.RankWinners(nil, app.DefaultRewards))
	require.Equal(t, 0, app.RewardTable{7}.Reward(2))
}

func newTestService(questions []domain.Question, tune func(*app.Settings)) (*app.BattleService, *memory.ResultStore) {
	settings := app.DefaultSettings()
	settings.Rand = rand.New(rand.NewSource(1))
	if tune != nil {
		tune(&settings)
	}
	results := memory.NewResultStore()
	bank := memory.NewQuestionBank(memory.NewStaticQuestionLoader(questions), time.Minute)
	return app.NewBattleService(memory.NewRoomStore(), bank, results, settings), results
}

// testQuestions builds n questions whose correct option is always 0.
func testQuestions(n int) []domain.Question {
	out := make([]domain.Question, n)
	for i := range out {
		out[i] = domain.Question{
			ID:            fmt.Sprintf("q%d", i),
			Text:          fmt.Sprintf("Question %d", i),
			Options:       []string{"right", "wrong", "wronger", "wrongest"},
			CorrectOption: 0,
			Difficulty:    1,
		}
	}
	return out
}

func createRoom(t *testing.T, service *app.BattleService, capacity int) string {
	t.Helper()
	snap, err := service.CreateRoom(context.Background(), app.CreateRoomRequest{Capacity: capacity})
	require.NoError(t, err)
	return snap.RoomID
}

func fill(t *testing.T, service *app.BattleService, roomID string, players ...string) {
	t.Helper()
	for _, p := range players {
		_, err := service.Join(context.Background(), roomID, p, "Player "+p)
		require.NoError(t, err)
	}
}

// drain reads until the room closes the channel.
func drain(t *testing.T, ch <-chan domain.Event) []domain.Event {
	t.Helper()
	var out []domain.Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("subscriber channel was not closed, got %d events", len(out))
		}
	}
}

func count(events []domain.Event, typ domain.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestOpenRoomValidatesQuestionSet(t *testing.T) {
	service, _ := newTestService(testQuestions(4), nil)

	_, err := service.OpenRoom(3, 0, testQuestions(2))
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = service.OpenRoom(5, 0, nil)
	require.ErrorIs(t, err, domain.ErrConfiguration)

	bad := testQuestions(1)
	bad[0].CorrectOption = 7
	_, err = service.OpenRoom(5, 0, bad)
	require.ErrorIs(t, err, domain.ErrConfiguration)

	room, err := service.OpenRoom(5, 0, testQuestions(2))
	require.NoError(t, err)
	snap, err := service.Room(context.Background(), room.ID())
	require.NoError(t, err)
	require.Equal(t, 2, snap.TotalQuestions)
	service.RemoveRoom(room.ID())
}
