package domain

import "time"

// EventType names a message broadcast on a room channel.
type EventType string

const (
	EventRoomState        EventType = "room-state"
	EventPlayerJoined     EventType = "player-joined"
	EventQuestionStart    EventType = "question-start"
	EventPlayerEliminated EventType = "player-eliminated"
	EventBattleEnd        EventType = "battle-end"
)

// Event is a server-to-subscriber message scoped to one room.
type Event struct {
	Type    EventType `json:"type"`
	RoomID  string    `json:"roomId"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

type PlayerJoinedPayload struct {
	Participants []Participant `json:"participants"`
}

type QuestionStartPayload struct {
	Question QuestionView `json:"question"`
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	Deadline time.Time    `json:"deadline"`
}

// Elimination reasons.
const (
	ReasonWrongAnswer = "wrong-answer"
	ReasonTimeout     = "timeout"
)

type PlayerEliminatedPayload struct {
	PlayerID      string `json:"playerId"`
	DisplayName   string `json:"displayName"`
	QuestionIndex int    `json:"questionIndex"`
	Reason        string `json:"reason"`
}

type BattleEndPayload struct {
	Winners []Winner `json:"winners"`
}
