package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/config"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAuditStore struct {
	mu       sync.Mutex
	copyErr  error
	failOnce map[int]bool // student IDs whose first insert fails
	attempts map[int]int
	saved    []model.AttendanceEvent
	copies   int
}

func (s *memoryAuditStore) CopyEvents(_ context.Context, events []model.AttendanceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copies++
	if s.copyErr != nil {
		return s.copyErr
	}
	s.saved = append(s.saved, events...)
	return nil
}

func (s *memoryAuditStore) InsertEvent(_ context.Context, e model.AttendanceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempts == nil {
		s.attempts = map[int]int{}
	}
	s.attempts[e.StudentID]++
	if s.failOnce[e.StudentID] && s.attempts[e.StudentID] == 1 {
		return errors.New("connection reset")
	}
	s.saved = append(s.saved, e)
	return nil
}

func (s *memoryAuditStore) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func newTestWorker(t *testing.T, store AuditStore) (*AuditWorker, *redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	w := NewAuditWorker(store, rdb, zerolog.Nop())
	w.batchSize = 2
	w.batchTimeout = 50 * time.Millisecond
	w.retryBackoff = 10 * time.Millisecond
	return w, rdb, mr
}

func push(t *testing.T, rdb *redis.Client, events ...model.AttendanceEvent) {
	t.Helper()
	for _, e := range events {
		data, err := json.Marshal(e)
		require.NoError(t, err)
		require.NoError(t, rdb.RPush(context.Background(), config.RedisKey.AuditQueue, data).Err())
	}
}

func run(w *AuditWorker) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func marked(studentID int) model.AttendanceEvent {
	return model.AttendanceEvent{
		Type:       model.EventMarked,
		StudentID:  studentID,
		Date:       model.NewDate(2024, 3, 1),
		Status:     model.AttendancePresent,
		OccurredAt: time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC),
	}
}

func TestAuditWorkerPersistsBatches(t *testing.T) {
	store := &memoryAuditStore{}
	w, rdb, _ := newTestWorker(t, store)
	push(t, rdb, marked(1), marked(2), marked(3))

	stop := run(w)
	require.Eventually(t, func() bool { return store.savedCount() == 3 }, 5*time.Second, 20*time.Millisecond)
	stop()

	assert.Equal(t, []int{1, 2, 3}, []int{store.saved[0].StudentID, store.saved[1].StudentID, store.saved[2].StudentID})
	assert.Equal(t, "2024-03-01", store.saved[0].Date.String())
}

func TestAuditWorkerFallsBackAndRequeues(t *testing.T) {
	store := &memoryAuditStore{
		copyErr:  errors.New("copy failed"),
		failOnce: map[int]bool{2: true},
	}
	w, rdb, _ := newTestWorker(t, store)
	push(t, rdb, marked(1), marked(2))

	stop := run(w)
	require.Eventually(t, func() bool { return store.savedCount() == 2 }, 5*time.Second, 20*time.Millisecond)
	stop()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 1, store.attempts[1])
	assert.Equal(t, 2, store.attempts[2], "failed event is retried after requeue")
	assert.GreaterOrEqual(t, store.copies, 2)
}

func TestAuditWorkerDiscardsMalformed(t *testing.T) {
	store := &memoryAuditStore{}
	w, rdb, mr := newTestWorker(t, store)
	require.NoError(t, rdb.RPush(context.Background(), config.RedisKey.AuditQueue, "{broken").Err())
	push(t, rdb, marked(5))

	stop := run(w)
	require.Eventually(t, func() bool { return store.savedCount() == 1 }, 5*time.Second, 20*time.Millisecond)
	stop()

	assert.False(t, mr.Exists(config.RedisKey.AuditQueue))
}

func TestAuditWorkerFlushesOnShutdown(t *testing.T) {
	store := &memoryAuditStore{}
	w, rdb, _ := newTestWorker(t, store)
	w.batchSize = 100
	w.batchTimeout = time.Hour
	push(t, rdb, marked(1))

	stop := run(w)
	// Give the worker time to pop the event into its buffer.
	require.Eventually(t, func() bool {
		n, err := rdb.LLen(context.Background(), config.RedisKey.AuditQueue).Result()
		return err == nil && n == 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Zero(t, store.savedCount())
	stop()

	assert.Equal(t, 1, store.savedCount())
}
