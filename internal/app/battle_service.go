package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"battle-royale-service/internal/domain"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RoomRepository is the registry of live rooms (in-memory, Redis-mirrored, etc).
type RoomRepository interface {
	Add(room *Room) error
	Get(roomID string) (*Room, bool)
	Remove(roomID string)
	List() []*Room
	// Touch refreshes the entry of a registered room after its state changed.
	Touch(room *Room)
}

// QuestionBank returns the pool of questions at or below a difficulty (0 means any).
type QuestionBank interface {
	Questions(ctx context.Context, maxDifficulty int) ([]domain.Question, error)
}

// ResultStore keeps completed battles.
type ResultStore interface {
	SaveResult(ctx context.Context, result domain.BattleResult) error
	Leaderboard(ctx context.Context, battles int) ([]domain.LeaderboardEntry, error)
}

// EventPublisher fans room events out beyond this process.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

const (
	basePoints   = 10
	maxTimeBonus = 10
)

// Settings tune the battle rules.
type Settings struct {
	Capacity       int
	SurvivorLimit  int
	QuestionCount  int
	QuestionWindow time.Duration
	Rewards        RewardTable
	PersistTimeout time.Duration
	Clock          func() time.Time
	Rand           *rand.Rand
}

// DefaultSettings mirrors the production rules: ten players, three survivors end the battle,
// ten questions with a ten second window each.
func DefaultSettings() Settings {
	return Settings{
		Capacity:       MaxCapacity,
		SurvivorLimit:  3,
		QuestionCount:  10,
		QuestionWindow: 10 * time.Second,
		Rewards:        DefaultRewards,
		PersistTimeout: 5 * time.Second,
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.Capacity == 0 {
		s.Capacity = def.Capacity
	}
	if s.QuestionCount <= 0 {
		s.QuestionCount = def.QuestionCount
	}
	if s.QuestionWindow <= 0 {
		s.QuestionWindow = def.QuestionWindow
	}
	if s.Rewards == nil {
		s.Rewards = def.Rewards
	}
	if s.PersistTimeout <= 0 {
		s.PersistTimeout = def.PersistTimeout
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// PlayerRef identifies a player.
type PlayerRef struct {
	PlayerID    string
	DisplayName string
}

// CreateRoomRequest carries the optional knobs of room creation.
type CreateRoomRequest struct {
	Capacity   int
	Difficulty int
	Host       *PlayerRef
}

// BattleService owns the lifecycle of every live battle room.
type BattleService struct {
	rooms     RoomRepository
	questions QuestionBank
	results   ResultStore
	publisher EventPublisher
	settings  Settings

	rndMu sync.Mutex
}

func NewBattleService(rooms RoomRepository, questions QuestionBank, results ResultStore, settings Settings) *BattleService {
	return &BattleService{
		rooms:     rooms,
		questions: questions,
		results:   results,
		settings:  settings.withDefaults(),
	}
}

// SetPublisher attaches a cross-process fan-out for rooms created afterwards.
func (s *BattleService) SetPublisher(p EventPublisher) {
	s.publisher = p
}

// Settings returns the effective rules.
func (s *BattleService) Settings() Settings {
	return s.settings
}

// CreateRoom draws a question set and registers a waiting room. When a host is given they join first.
func (s *BattleService) CreateRoom(ctx context.Context, req CreateRoomRequest) (domain.RoomSnapshot, error) {
	capacity := req.Capacity
	if capacity == 0 {
		capacity = s.settings.Capacity
	}
	if err := s.checkCapacity(capacity); err != nil {
		return domain.RoomSnapshot{}, err
	}

	pool, err := s.questions.Questions(ctx, req.Difficulty)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestions) {
			return domain.RoomSnapshot{}, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
		}
		return domain.RoomSnapshot{}, fmt.Errorf("load questions: %w", err)
	}

	room, err := s.OpenRoom(capacity, req.Difficulty, s.draw(pool, s.settings.QuestionCount))
	if err != nil {
		return domain.RoomSnapshot{}, err
	}

	if req.Host != nil {
		if _, err := s.Join(ctx, room.ID(), req.Host.PlayerID, req.Host.DisplayName); err != nil {
			s.RemoveRoom(room.ID())
			return domain.RoomSnapshot{}, err
		}
	}
	return room.Snapshot(), nil
}

// OpenRoom registers a waiting room over an already drawn question set.
func (s *BattleService) OpenRoom(capacity, difficulty int, questions []domain.Question) (*Room, error) {
	if err := s.checkCapacity(capacity); err != nil {
		return nil, err
	}
	room, err := NewRoom(uuid.NewString(), capacity, questions, s.settings.Clock)
	if err != nil {
		return nil, err
	}
	room.difficulty = difficulty
	room.attachPublisher(s.publisher)
	if err := s.rooms.Add(room); err != nil {
		room.shutdown()
		return nil, err
	}
	log.WithFields(log.Fields{"room": room.ID(), "capacity": capacity, "questions": len(questions)}).Info("battle room created")
	return room, nil
}

func (s *BattleService) checkCapacity(capacity int) error {
	if capacity <= s.settings.SurvivorLimit || capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", domain.ErrConfiguration, s.settings.SurvivorLimit+1, MaxCapacity)
	}
	return nil
}

// draw shuffles a copy of pool (Fisher-Yates) and keeps the first n.
func (s *BattleService) draw(pool []domain.Question, n int) []domain.Question {
	set := append([]domain.Question(nil), pool...)
	s.rndMu.Lock()
	s.settings.Rand.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })
	s.rndMu.Unlock()
	if len(set) > n {
		set = set[:n]
	}
	return set
}

// Join admits a player to a waiting room. The join that fills the room starts the battle.
func (s *BattleService) Join(_ context.Context, roomID, playerID, displayName string) ([]domain.Participant, error) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	room.mu.Lock()
	if room.status != domain.StatusWaiting {
		room.mu.Unlock()
		return nil, domain.ErrRoomNotJoinable
	}
	if len(room.order) >= room.capacity {
		room.mu.Unlock()
		return nil, domain.ErrRoomFull
	}
	if _, exists := room.participants[playerID]; exists {
		room.mu.Unlock()
		return nil, domain.ErrDuplicateParticipant
	}

	room.participants[playerID] = &domain.Participant{
		PlayerID:    playerID,
		DisplayName: displayName,
		JoinedAt:    room.now(),
	}
	room.order = append(room.order, playerID)
	participants := room.participantsLocked()
	room.broadcastLocked(domain.EventPlayerJoined, domain.PlayerJoinedPayload{Participants: participants})

	var result *domain.BattleResult
	if len(room.order) == room.capacity {
		room.status = domain.StatusActive
		room.startTime = room.now()
		room.current = 0
		log.WithFields(log.Fields{"room": room.id, "players": len(room.order)}).Info("battle started")
		result = s.advanceLocked(room)
	}
	room.mu.Unlock()

	s.settle(room, result)
	return participants, nil
}

// QuickMatch seats the player in the oldest open room of the same difficulty, or creates one.
func (s *BattleService) QuickMatch(ctx context.Context, player PlayerRef, difficulty int) (domain.RoomSnapshot, error) {
	for _, room := range s.openRooms() {
		if room.Difficulty() != difficulty {
			continue
		}
		if room.HasParticipant(player.PlayerID) {
			return room.Snapshot(), nil
		}
		if _, err := s.Join(ctx, room.ID(), player.PlayerID, player.DisplayName); err != nil {
			// lost a race for the last seat
			continue
		}
		return room.Snapshot(), nil
	}
	return s.CreateRoom(ctx, CreateRoomRequest{Difficulty: difficulty, Host: &player})
}

func (s *BattleService) openRooms() []*Room {
	var open []*Room
	for _, room := range s.rooms.List() {
		if room.Status() == domain.StatusWaiting {
			open = append(open, room)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].CreatedAt().Before(open[j].CreatedAt())
	})
	return open
}

// OpenRooms lists waiting rooms, oldest first.
func (s *BattleService) OpenRooms(_ context.Context) []domain.RoomSnapshot {
	open := s.openRooms()
	out := make([]domain.RoomSnapshot, 0, len(open))
	for _, room := range open {
		out = append(out, room.Snapshot())
	}
	return out
}

// Room returns a snapshot of a live room.
func (s *BattleService) Room(_ context.Context, roomID string) (domain.RoomSnapshot, error) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.RoomSnapshot{}, domain.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

// IsParticipant reports whether the player holds a seat in a live room.
func (s *BattleService) IsParticipant(_ context.Context, roomID, playerID string) (bool, error) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return false, domain.ErrRoomNotFound
	}
	return room.HasParticipant(playerID), nil
}

// SubmitAnswer scores one answer to the live question.
// ErrStaleQuestion means the answer arrived for a question already advanced past; callers drop it.
func (s *BattleService) SubmitAnswer(_ context.Context, roomID, playerID string, sub domain.AnswerSubmission) (domain.AnswerResult, error) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrRoomNotFound
	}

	room.mu.Lock()
	if room.status != domain.StatusActive {
		room.mu.Unlock()
		return domain.AnswerResult{}, domain.ErrRoomNotActive
	}
	if sub.QuestionIndex != room.current {
		room.mu.Unlock()
		return domain.AnswerResult{}, domain.ErrStaleQuestion
	}
	p, ok := room.participants[playerID]
	if !ok {
		room.mu.Unlock()
		return domain.AnswerResult{}, domain.ErrUnknownParticipant
	}

	res := domain.AnswerResult{QuestionIndex: sub.QuestionIndex}
	if previous, answered := room.answered[playerID]; p.Eliminated || answered {
		res.Correct = answered && previous
		res.Eliminated = p.Eliminated
		res.Score = p.Score
		room.mu.Unlock()
		return res, nil
	}

	question := room.questions[room.current]
	correct := sub.OptionIndex == question.CorrectOption
	room.answered[playerID] = correct
	if correct {
		p.Score += s.points(sub.ResponseTimeSeconds)
	} else {
		room.eliminateLocked(p, domain.ReasonWrongAnswer)
	}
	res.Correct = correct
	res.Eliminated = p.Eliminated
	res.Score = p.Score

	result := s.resolveLocked(room)
	room.mu.Unlock()

	s.settle(room, result)
	return res, nil
}

// points is the base award plus a bonus for answering fast. The response time is clamped to the window.
func (s *BattleService) points(responseSeconds float64) int {
	window := s.settings.QuestionWindow.Seconds()
	if math.IsNaN(responseSeconds) || responseSeconds < 0 {
		responseSeconds = 0
	}
	if responseSeconds > window {
		responseSeconds = window
	}
	bonus := math.Max(0, maxTimeBonus-responseSeconds)
	return basePoints + int(math.Floor(bonus))
}

// resolveLocked ends the battle once survivors drop to the limit, or moves on
// when every survivor has answered the live question.
func (s *BattleService) resolveLocked(room *Room) *domain.BattleResult {
	if room.survivorsLocked() <= s.settings.SurvivorLimit {
		return s.completeLocked(room)
	}
	if room.allAnsweredLocked() {
		return s.nextQuestionLocked(room)
	}
	return nil
}

func (s *BattleService) nextQuestionLocked(room *Room) *domain.BattleResult {
	room.stopTimerLocked()
	room.current++
	return s.advanceLocked(room)
}

// advanceLocked broadcasts the current question and arms its countdown,
// or completes the room when the questions ran out.
func (s *BattleService) advanceLocked(room *Room) *domain.BattleResult {
	if room.current >= len(room.questions) {
		return s.completeLocked(room)
	}

	room.round++
	room.answered = make(map[string]bool)
	question := room.questions[room.current]
	room.broadcastLocked(domain.EventQuestionStart, domain.QuestionStartPayload{
		Question: question.View(),
		Index:    room.current,
		Total:    len(room.questions),
		Deadline: room.now().Add(s.settings.QuestionWindow),
	})

	roomID, round := room.id, room.round
	room.timer = time.AfterFunc(s.settings.QuestionWindow, func() {
		s.onDeadline(roomID, round)
	})
	return nil
}

// onDeadline runs when a question's window elapses. Survivors who stayed silent are eliminated.
func (s *BattleService) onDeadline(roomID string, round int) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		log.WithField("room", roomID).Debug("countdown fired for removed room")
		return
	}

	room.mu.Lock()
	if room.status != domain.StatusActive || room.round != round {
		room.mu.Unlock()
		log.WithFields(log.Fields{"room": roomID, "round": round}).Debug("stale countdown ignored")
		return
	}
	room.timer = nil
	for _, id := range room.order {
		p := room.participants[id]
		if _, answered := room.answered[id]; !answered && !p.Eliminated {
			room.eliminateLocked(p, domain.ReasonTimeout)
		}
	}

	var result *domain.BattleResult
	if room.survivorsLocked() <= s.settings.SurvivorLimit {
		result = s.completeLocked(room)
	} else {
		result = s.nextQuestionLocked(room)
	}
	room.mu.Unlock()

	s.settle(room, result)
}

// Complete force-ends an active room through the regular completion path.
func (s *BattleService) Complete(_ context.Context, roomID string) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.mu.Lock()
	if room.status == domain.StatusWaiting {
		room.mu.Unlock()
		return domain.ErrRoomNotActive
	}
	result := s.completeLocked(room)
	room.mu.Unlock()

	s.finish(room, result)
	return nil
}

// completeLocked ranks survivors and broadcasts battle-end. It returns nil when the room
// was already completed, so persistence and teardown happen exactly once.
func (s *BattleService) completeLocked(room *Room) *domain.BattleResult {
	if room.status == domain.StatusCompleted {
		return nil
	}
	room.stopTimerLocked()
	room.status = domain.StatusCompleted
	room.endTime = room.now()

	participants := room.participantsLocked()
	winners := RankWinners(participants, s.settings.Rewards)
	room.broadcastLocked(domain.EventBattleEnd, domain.BattleEndPayload{Winners: winners})

	log.WithFields(log.Fields{
		"room":      room.id,
		"winners":   len(winners),
		"questions": room.current,
	}).Info("battle completed")

	return &domain.BattleResult{
		RoomID:       room.id,
		Participants: participants,
		Winners:      winners,
		StartTime:    room.startTime,
		EndTime:      room.endTime,
	}
}

// settle finishes a completed battle, otherwise refreshes the room's registry entry.
func (s *BattleService) settle(room *Room, result *domain.BattleResult) {
	if result != nil {
		s.finish(room, result)
		return
	}
	s.rooms.Touch(room)
}

// finish persists a completed battle and tears the room down. Must be called without room.mu held.
func (s *BattleService) finish(room *Room, result *domain.BattleResult) {
	if result == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.settings.PersistTimeout)
	defer cancel()
	if err := s.results.SaveResult(ctx, *result); err != nil {
		log.WithError(err).WithField("room", room.id).Error("persist battle result")
	}
	s.RemoveRoom(room.id)
}

// RemoveRoom drops a room from the registry, cancelling its countdown. Unknown ids are ignored.
func (s *BattleService) RemoveRoom(roomID string) {
	room, ok := s.rooms.Get(roomID)
	s.rooms.Remove(roomID)
	if ok {
		room.shutdown()
	}
}

// Subscribe returns a channel of room events, starting with a room-state snapshot.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *BattleService) Subscribe(_ context.Context, roomID string) (<-chan domain.Event, func(), error) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, nil, domain.ErrRoomNotFound
	}
	ch, cancel := room.subscribe()
	return ch, cancel, nil
}

// Leaderboard returns the winners of recently completed battles.
func (s *BattleService) Leaderboard(ctx context.Context, battles int) ([]domain.LeaderboardEntry, error) {
	return s.results.Leaderboard(ctx, battles)
}
