package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"battle-royale-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches the question pool from a backing store (e.g., Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, maxDifficulty int) ([]domain.Question, error)
}

// QuestionBank caches question pools per difficulty with TTL to avoid repeated DB hits.
type QuestionBank struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[int]cachedPool
}

type cachedPool struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionBank(loader QuestionLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int]cachedPool),
	}
}

func (b *QuestionBank) Questions(ctx context.Context, maxDifficulty int) ([]domain.Question, error) {
	if pool, ok := b.cached(maxDifficulty); ok {
		return pool, nil
	}

	result, err, _ := b.sf.Do(strconv.Itoa(maxDifficulty), func() (interface{}, error) {
		if pool, ok := b.cached(maxDifficulty); ok {
			return pool, nil
		}

		pool, err := b.loader.LoadQuestions(ctx, maxDifficulty)
		if err != nil {
			return nil, err
		}
		if len(pool) == 0 {
			return nil, domain.ErrNoQuestions
		}

		expiresAt := b.clock().Add(b.ttlWithJitter())
		b.mu.Lock()
		b.cache[maxDifficulty] = cachedPool{
			questions: pool,
			expiresAt: expiresAt,
		}
		b.mu.Unlock()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (b *QuestionBank) cached(maxDifficulty int) ([]domain.Question, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.cache[maxDifficulty]
	if !ok || !entry.expiresAt.After(b.clock()) {
		return nil, false
	}
	return entry.questions, true
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(b.ttl) / 10
	b.rndMu.Lock()
	defer b.rndMu.Unlock()
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}

// StaticQuestionLoader is a loader backed by a fixed slice (useful for tests/demos).
type StaticQuestionLoader struct {
	questions []domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{questions: questions}
}

// LoadQuestions returns the questions at or below maxDifficulty; 0 means any.
func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, maxDifficulty int) ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(l.questions))
	for _, q := range l.questions {
		if maxDifficulty > 0 && q.Difficulty > maxDifficulty {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}
