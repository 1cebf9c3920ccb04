package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"battle-royale-service/internal/domain"
	"battle-royale-service/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// QuestionBank caches question pools in Redis and falls back to a loader on cache miss.
// Pools are stored as JSON: SET battle:questions:{maxDifficulty} [...]
type QuestionBank struct {
	client *redis.Client
	loader memory.QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader memory.QuestionLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *QuestionBank) Questions(ctx context.Context, maxDifficulty int) ([]domain.Question, error) {
	key := b.key(maxDifficulty)
	if pool, ok := b.cached(ctx, key); ok {
		return pool, nil
	}

	result, err, _ := b.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another caller filled it.
		if pool, ok := b.cached(ctx, key); ok {
			return pool, nil
		}

		pool, err := b.loader.LoadQuestions(ctx, maxDifficulty)
		if err != nil {
			return nil, err
		}
		if len(pool) == 0 {
			return nil, domain.ErrNoQuestions
		}

		raw, err := json.Marshal(pool)
		if err != nil {
			return nil, fmt.Errorf("encode question pool: %w", err)
		}
		if err := b.client.Set(ctx, key, raw, b.ttlWithJitter()).Err(); err != nil {
			log.WithError(err).WithField("key", key).Warn("cache question pool")
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (b *QuestionBank) cached(ctx context.Context, key string) ([]domain.Question, bool) {
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).WithField("key", key).Warn("read cached question pool")
		}
		return nil, false
	}
	var pool []domain.Question
	if err := json.Unmarshal(raw, &pool); err != nil || len(pool) == 0 {
		return nil, false
	}
	return pool, true
}

// Invalidate drops every cached pool, e.g. after seeding new questions.
func (b *QuestionBank) Invalidate(ctx context.Context) error {
	iter := b.client.Scan(ctx, 0, "battle:questions:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := b.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (b *QuestionBank) key(maxDifficulty int) string {
	return "battle:questions:" + strconv.Itoa(maxDifficulty)
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	jitterMax := int64(b.ttl) / 10
	b.rndMu.Lock()
	defer b.rndMu.Unlock()
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}
