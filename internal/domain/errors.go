package domain

import "errors"

var (
	// ErrRoomNotFound is returned when no live room has the given id.
	ErrRoomNotFound = errors.New("battle room not found")
	// ErrRoomNotJoinable is returned when a join targets a room that already started or finished.
	ErrRoomNotJoinable = errors.New("battle room is not accepting players")
	// ErrRoomFull is returned when the room has reached its capacity.
	ErrRoomFull = errors.New("battle room is full")
	// ErrDuplicateParticipant is returned when a player joins the same room twice.
	ErrDuplicateParticipant = errors.New("player already joined this room")
	// ErrUnknownParticipant is returned when a non-member submits an answer.
	ErrUnknownParticipant = errors.New("player is not a participant of this room")
	// ErrRoomNotActive is returned when answers arrive outside the active phase.
	ErrRoomNotActive = errors.New("battle room is not active")
	// ErrStaleQuestion marks an answer for a question that is no longer live. Callers swallow it.
	ErrStaleQuestion = errors.New("answer is for a question that is no longer live")
	// ErrConfiguration is returned when a room cannot be built from the given settings or questions.
	ErrConfiguration = errors.New("invalid battle configuration")
	// ErrNoQuestions indicates the question bank has nothing for the requested difficulty.
	ErrNoQuestions = errors.New("no questions available")
)
