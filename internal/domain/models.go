package domain

import "time"

// RoomStatus is the lifecycle phase of a battle room.
type RoomStatus string

const (
	StatusWaiting   RoomStatus = "waiting"
	StatusActive    RoomStatus = "active"
	StatusCompleted RoomStatus = "completed"
)

// Question is a multiple-choice item. It is shared read-only by every participant of a room.
type Question struct {
	ID            string   `json:"id,omitempty"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	Difficulty    int      `json:"difficulty"`
}

// QuestionView is what clients see while a question is live.
type QuestionView struct {
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty int      `json:"difficulty"`
}

// View strips the answer key.
func (q Question) View() QuestionView {
	return QuestionView{Text: q.Text, Options: q.Options, Difficulty: q.Difficulty}
}

// Participant is a player's live state inside one room.
type Participant struct {
	PlayerID     string     `json:"playerId"`
	DisplayName  string     `json:"displayName"`
	Score        int        `json:"score"`
	Eliminated   bool       `json:"eliminated"`
	EliminatedAt *time.Time `json:"eliminatedAt,omitempty"`
	JoinedAt     time.Time  `json:"joinedAt"`
}

// Winner is a ranked survivor at completion.
type Winner struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
	Position    int    `json:"position"`
	Reward      int    `json:"reward"`
}

// RoomSnapshot is a consistent copy of a room's state.
type RoomSnapshot struct {
	RoomID               string        `json:"roomId"`
	Status               RoomStatus    `json:"status"`
	Capacity             int           `json:"capacity"`
	CurrentQuestionIndex int           `json:"currentQuestionIndex"`
	TotalQuestions       int           `json:"totalQuestions"`
	Participants         []Participant `json:"participants"`
	CreatedAt            time.Time     `json:"createdAt"`
	StartTime            *time.Time    `json:"startTime,omitempty"`
	EndTime              *time.Time    `json:"endTime,omitempty"`
}

// BattleResult is handed to the result store when a room completes.
type BattleResult struct {
	RoomID       string        `json:"roomId"`
	Participants []Participant `json:"participants"`
	Winners      []Winner      `json:"winners"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
}

// LeaderboardEntry is one winner row of a completed battle.
type LeaderboardEntry struct {
	RoomID      string    `json:"roomId"`
	PlayerID    string    `json:"playerId"`
	DisplayName string    `json:"displayName"`
	Position    int       `json:"position"`
	Reward      int       `json:"reward"`
	Score       int       `json:"score"`
	Date        time.Time `json:"date"`
}

// AnswerSubmission is one player's answer to the live question.
type AnswerSubmission struct {
	QuestionIndex       int
	OptionIndex         int
	ResponseTimeSeconds float64
}

// AnswerResult summarizes the outcome of a submission.
type AnswerResult struct {
	QuestionIndex int  `json:"questionIndex"`
	Correct       bool `json:"correct"`
	Eliminated    bool `json:"eliminated"`
	Score         int  `json:"score"`
}
