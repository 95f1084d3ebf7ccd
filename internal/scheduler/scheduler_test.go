package scheduler

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/diary-helper/internal/logger"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithConfig(logger.Config{
		Level:      logger.LevelError,
		OutputPath: "stdout",
		Format:     "text",
	}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeStore struct {
	mu            sync.Mutex
	candidates    []repository.ReminderCandidate
	candidatesErr error
	entries       map[uint]bool
	entryErr      map[uint]error
	calls         int
}

func (s *fakeStore) ReminderCandidates(ctx context.Context) ([]repository.ReminderCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.candidatesErr != nil {
		return nil, s.candidatesErr
	}
	return s.candidates, nil
}

func (s *fakeStore) HasEntryForDate(ctx context.Context, userID uint, dateKey time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.entryErr[userID]; err != nil {
		return false, err
	}
	return s.entries[userID], nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []int64
	failFor map[int64]error
}

func (n *fakeNotifier) SendReminder(ctx context.Context, telegramID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.failFor[telegramID]; err != nil {
		return err
	}
	n.sent = append(n.sent, telegramID)
	return nil
}

func (n *fakeNotifier) sentTo() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64(nil), n.sent...)
}

func newTestScheduler(store *fakeStore, notifier *fakeNotifier, now time.Time) *Scheduler {
	s := New(store, notifier)
	s.now = func() time.Time { return now }
	return s
}

func warsawCandidate() repository.ReminderCandidate {
	return repository.ReminderCandidate{
		UserID:         1,
		TelegramID:     100,
		Timezone:       "Europe/Warsaw",
		ReminderHour:   21,
		ReminderMinute: 0,
	}
}

func TestTick_SendsAtExactReminderMinute(t *testing.T) {
	// Warsaw is CEST (+2) in June: 21:00 local is 19:00 UTC.
	tests := []struct {
		name     string
		instant  time.Time
		wantSent bool
	}{
		{"minute before", time.Date(2024, 6, 15, 18, 59, 30, 0, time.UTC), false},
		{"exact minute", time.Date(2024, 6, 15, 19, 0, 30, 0, time.UTC), true},
		{"minute after", time.Date(2024, 6, 15, 19, 1, 30, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{candidates: []repository.ReminderCandidate{warsawCandidate()}}
			notifier := &fakeNotifier{}
			s := newTestScheduler(store, notifier, tt.instant)

			s.tick(context.Background())

			if tt.wantSent {
				assert.Equal(t, []int64{100}, notifier.sentTo())
			} else {
				assert.Empty(t, notifier.sentTo())
			}
		})
	}
}

func TestTick_SuppressedWhenTodayEntryExists(t *testing.T) {
	store := &fakeStore{
		candidates: []repository.ReminderCandidate{warsawCandidate()},
		entries:    map[uint]bool{1: true},
	}
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC))

	s.tick(context.Background())

	assert.Empty(t, notifier.sentTo())
}

func TestTick_EachUserEvaluatedInOwnTimezone(t *testing.T) {
	// 19:00 UTC is 21:00 in Warsaw but 15:00 in New York: only the Warsaw
	// user is due.
	newYork := repository.ReminderCandidate{
		UserID:         2,
		TelegramID:     200,
		Timezone:       "America/New_York",
		ReminderHour:   21,
		ReminderMinute: 0,
	}
	store := &fakeStore{candidates: []repository.ReminderCandidate{warsawCandidate(), newYork}}
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC))

	s.tick(context.Background())

	assert.Equal(t, []int64{100}, notifier.sentTo())
}

func TestTick_FailureForOneUserDoesNotAbortOthers(t *testing.T) {
	second := warsawCandidate()
	second.UserID = 2
	second.TelegramID = 200
	third := warsawCandidate()
	third.UserID = 3
	third.TelegramID = 300

	store := &fakeStore{
		candidates: []repository.ReminderCandidate{warsawCandidate(), second, third},
		entryErr:   map[uint]error{2: errors.New("db down")},
	}
	notifier := &fakeNotifier{failFor: map[int64]error{100: errors.New("blocked by user")}}
	s := newTestScheduler(store, notifier, time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC))

	s.tick(context.Background())

	// User 100 fails to send, user 200 fails its entry check, user 300
	// still gets the reminder.
	assert.Equal(t, []int64{300}, notifier.sentTo())
}

func TestTick_CandidateFetchErrorIsNonFatal(t *testing.T) {
	store := &fakeStore{candidatesErr: errors.New("db down")}
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC))

	require.NotPanics(t, func() { s.tick(context.Background()) })
	assert.Empty(t, notifier.sentTo())
}

func TestStartIsIdempotentAndStopWaits(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	s.interval = 5 * time.Millisecond

	ctx := context.Background()
	s.Start(ctx)
	s.Start(ctx) // no-op, must not spawn a second loop

	assert.Eventually(t, func() bool { return store.callCount() > 0 },
		time.Second, time.Millisecond)

	s.Stop()
	calls := store.callCount()
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, calls, store.callCount(), "ticks must stop after Stop")

	// Stop on a stopped scheduler is a no-op.
	require.NotPanics(t, s.Stop)
}

func TestSchedulerRestartsAfterStop(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	s := newTestScheduler(store, notifier, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	s.interval = 5 * time.Millisecond

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return store.callCount() > 0 },
		time.Second, time.Millisecond)
	s.Stop()

	stopped := store.callCount()
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return store.callCount() > stopped },
		time.Second, time.Millisecond)
	s.Stop()
}
