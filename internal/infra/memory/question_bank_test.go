package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"battle-royale-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionBankCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(SampleQuestions())}
	bank := NewQuestionBank(loader, time.Minute)

	pool, err := bank.Questions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, pool, 10)
	require.EqualValues(t, 1, loader.calls.Load())

	_, err = bank.Questions(context.Background(), 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, loader.calls.Load(), "expected cache hit")
}

func TestQuestionBankExpires(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(SampleQuestions())}
	bank := NewQuestionBank(loader, time.Minute)
	now := time.Now()
	bank.clock = func() time.Time { return now }

	_, err := bank.Questions(context.Background(), 1)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = bank.Questions(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, loader.calls.Load())
}

func TestQuestionBankCollapsesConcurrentLoads(t *testing.T) {
	release := make(chan struct{})
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(SampleQuestions()), gate: release}
	bank := NewQuestionBank(loader, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := bank.Questions(context.Background(), 2)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, loader.calls.Load())
}

func TestQuestionBankFiltersByDifficulty(t *testing.T) {
	bank := NewQuestionBank(NewStaticQuestionLoader(SampleQuestions()), time.Minute)

	pool, err := bank.Questions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, pool, 5)
	for _, q := range pool {
		require.LessOrEqual(t, q.Difficulty, 1)
	}
}

func TestQuestionBankEmptyPool(t *testing.T) {
	bank := NewQuestionBank(NewStaticQuestionLoader(nil), time.Minute)

	_, err := bank.Questions(context.Background(), 0)
	require.True(t, errors.Is(err, domain.ErrNoQuestions))
}

type countingLoader struct {
	QuestionLoader
	gate  chan struct{}
	calls atomic.Int32
}

func (l *countingLoader) LoadQuestions(ctx context.Context, maxDifficulty int) ([]domain.Question, error) {
	l.calls.Add(1)
	if l.gate != nil {
		<-l.gate
	}
	return l.QuestionLoader.LoadQuestions(ctx, maxDifficulty)
}
