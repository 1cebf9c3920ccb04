package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"battle-royale-service/internal/domain"
	log "github.com/sirupsen/logrus"
)

// MaxCapacity is the largest number of players a room admits.
const MaxCapacity = 10

const (
	subscriberBuffer = 64
	outboxBuffer     = 256
	publishTimeout   = 2 * time.Second
)

// Room is the in-memory state of one battle. Every field below mu is guarded by it;
// the service holds mu for the whole of a join, answer, advance or completion.
type Room struct {
	id         string
	capacity   int
	difficulty int
	questions  []domain.Question
	createdAt  time.Time
	now        func() time.Time

	mu           sync.Mutex
	status       domain.RoomStatus
	current      int
	participants map[string]*domain.Participant
	order        []string
	answered     map[string]bool // playerID -> correct, for the live question only
	startTime    time.Time
	endTime      time.Time
	round        int
	timer        *time.Timer
	subscribers  map[chan domain.Event]struct{}
	outbox       chan domain.Event // drained by relay, nil without a publisher
	closed       bool
}

// NewRoom validates the question set and builds a waiting room.
// Questions are copied so nothing is shared with other rooms.
func NewRoom(id string, capacity int, questions []domain.Question, now func() time.Time) (*Room, error) {
	if capacity < 1 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d outside 1..%d", domain.ErrConfiguration, capacity, MaxCapacity)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question set", domain.ErrConfiguration)
	}
	owned := make([]domain.Question, len(questions))
	for i, q := range questions {
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d has %d options", domain.ErrConfiguration, i, len(q.Options))
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d correct option %d out of range", domain.ErrConfiguration, i, q.CorrectOption)
		}
		q.Options = append([]string(nil), q.Options...)
		owned[i] = q
	}
	if now == nil {
		now = time.Now
	}
	return &Room{
		id:           id,
		capacity:     capacity,
		questions:    owned,
		createdAt:    now(),
		now:          now,
		status:       domain.StatusWaiting,
		participants: make(map[string]*domain.Participant),
		answered:     make(map[string]bool),
		subscribers:  make(map[chan domain.Event]struct{}),
	}, nil
}

// ID returns the room id.
func (r *Room) ID() string { return r.id }

// Difficulty returns the difficulty the question set was drawn with.
func (r *Room) Difficulty() int { return r.difficulty }

// CreatedAt returns the creation timestamp.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// Status returns the current lifecycle phase.
func (r *Room) Status() domain.RoomStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Snapshot returns a consistent copy of the room.
func (r *Room) Snapshot() domain.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() domain.RoomSnapshot {
	snap := domain.RoomSnapshot{
		RoomID:               r.id,
		Status:               r.status,
		Capacity:             r.capacity,
		CurrentQuestionIndex: r.current,
		TotalQuestions:       len(r.questions),
		Participants:         r.participantsLocked(),
		CreatedAt:            r.createdAt,
	}
	if !r.startTime.IsZero() {
		start := r.startTime
		snap.StartTime = &start
	}
	if !r.endTime.IsZero() {
		end := r.endTime
		snap.EndTime = &end
	}
	return snap
}

// participantsLocked copies participants in join order.
func (r *Room) participantsLocked() []domain.Participant {
	out := make([]domain.Participant, 0, len(r.order))
	for _, id := range r.order {
		p := *r.participants[id]
		if p.EliminatedAt != nil {
			at := *p.EliminatedAt
			p.EliminatedAt = &at
		}
		out = append(out, p)
	}
	return out
}

// HasParticipant reports whether the player holds a seat, in any phase of the battle.
func (r *Room) HasParticipant(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.participants[playerID]
	return ok
}

func (r *Room) survivorsLocked() int {
	n := 0
	for _, p := range r.participants {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

func (r *Room) allAnsweredLocked() bool {
	for id, p := range r.participants {
		if p.Eliminated {
			continue
		}
		if _, ok := r.answered[id]; !ok {
			return false
		}
	}
	return true
}

func (r *Room) eliminateLocked(p *domain.Participant, reason string) {
	if p.Eliminated {
		return
	}
	at := r.now()
	p.Eliminated = true
	p.EliminatedAt = &at
	r.broadcastLocked(domain.EventPlayerEliminated, domain.PlayerEliminatedPayload{
		PlayerID:      p.PlayerID,
		DisplayName:   p.DisplayName,
		QuestionIndex: r.current,
		Reason:        reason,
	})
}

func (r *Room) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// subscribe registers a listener. The first event is always a room-state snapshot.
// The returned cancel func is safe to call after the room closed the channel.
func (r *Room) subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, subscriberBuffer)

	r.mu.Lock()
	ch <- domain.Event{Type: domain.EventRoomState, RoomID: r.id, Payload: r.snapshotLocked(), At: r.now()}
	if r.closed {
		close(ch)
		r.mu.Unlock()
		return ch, func() {}
	}
	r.subscribers[ch] = struct{}{}
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subscribers[ch]; ok {
			delete(r.subscribers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel
}

// broadcastLocked delivers an event to every subscriber in production order.
// A subscriber that cannot keep up is disconnected instead of silently missing events.
func (r *Room) broadcastLocked(typ domain.EventType, payload any) {
	ev := domain.Event{Type: typ, RoomID: r.id, Payload: payload, At: r.now()}
	for ch := range r.subscribers {
		select {
		case ch <- ev:
		default:
			log.WithFields(log.Fields{"room": r.id, "event": typ}).Warn("subscriber too slow, disconnecting")
			delete(r.subscribers, ch)
			close(ch)
		}
	}
	if r.outbox != nil {
		select {
		case r.outbox <- ev:
		default:
			log.WithFields(log.Fields{"room": r.id, "event": typ}).Warn("publish queue full, dropping event")
		}
	}
}

// attachPublisher starts the relay that forwards broadcasts to p in production order.
func (r *Room) attachPublisher(p EventPublisher) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outbox != nil || r.closed {
		return
	}
	r.outbox = make(chan domain.Event, outboxBuffer)
	go r.relay(p, r.outbox)
}

// relay publishes outside the room lock so a slow broker never stalls the battle.
func (r *Room) relay(p EventPublisher, outbox <-chan domain.Event) {
	for ev := range outbox {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := p.Publish(ctx, ev); err != nil {
			log.WithError(err).WithFields(log.Fields{"room": r.id, "event": ev.Type}).Warn("publish room event")
		}
		cancel()
	}
}

// shutdown stops the countdown and closes every subscriber channel.
func (r *Room) shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked()
	r.closed = true
	for ch := range r.subscribers {
		delete(r.subscribers, ch)
		close(ch)
	}
	if r.outbox != nil {
		close(r.outbox)
		r.outbox = nil
	}
}
