package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"battle-royale-service/internal/app"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RoomStore is a Redis-aware implementation of app.RoomRepository.
// Notes:
//   - Rooms stay in a local map; their timers and subscribers cannot leave the process.
//   - Redis holds a liveness key per room, valued with its status, so other instances and operators
//     can see what is running. The TTL restarts on every state change.
//   - Cross-instance delivery of room events goes through EventPublisher.
type RoomStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.RWMutex
	rooms map[string]*app.Room
}

func NewRoomStore(client *redis.Client, ttl time.Duration) *RoomStore {
	return &RoomStore{
		client: client,
		ttl:    ttl,
		rooms:  make(map[string]*app.Room),
	}
}

func (s *RoomStore) Add(room *app.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID()]; ok {
		return fmt.Errorf("room %s already registered", room.ID())
	}
	s.rooms[room.ID()] = room
	s.markLive(room)
	return nil
}

func (s *RoomStore) Touch(room *app.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[room.ID()] != room {
		return
	}
	s.markLive(room)
}

// markLive is best-effort; callers hold s.mu so a removed room is never re-marked.
func (s *RoomStore) markLive(room *app.Room) {
	if err := s.client.Set(context.Background(), s.key(room.ID()), string(room.Status()), s.ttl).Err(); err != nil {
		log.WithError(err).WithField("room", room.ID()).Warn("mark room live")
	}
}

func (s *RoomStore) Get(roomID string) (*app.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	return room, ok
}

func (s *RoomStore) Remove(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; !ok {
		return
	}
	delete(s.rooms, roomID)
	if err := s.client.Del(context.Background(), s.key(roomID)).Err(); err != nil {
		log.WithError(err).WithField("room", roomID).Warn("clear room liveness")
	}
}

func (s *RoomStore) List() []*app.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*app.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		out = append(out, room)
	}
	return out
}

func (s *RoomStore) key(roomID string) string {
	return "battle:room:" + roomID
}
