package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	"github.com/vladimiradmaev/diary-helper/internal/logger"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
)

const defaultInterval = time.Minute

const reminderMessage = `🔔 Напоминание о дневнике

Вы ещё не добавили запись на сегодня.

Добавьте запись: /add [оценка] текст

Отключить напоминания: /reminder_off`

// EntryStore is the slice of the entry store the scheduler needs.
type EntryStore interface {
	ReminderCandidates(ctx context.Context) ([]repository.ReminderCandidate, error)
	HasEntryForDate(ctx context.Context, userID uint, dateKey time.Time) (bool, error)
}

// Notifier delivers a reminder to a telegram user. Failures are the
// notifier's own problem; the scheduler only logs them.
type Notifier interface {
	SendReminder(ctx context.Context, telegramID int64, text string) error
}

// Scheduler runs the once-per-minute reminder scan. It is constructed and
// owned by the process composition root; Start while running is a no-op.
type Scheduler struct {
	store    EntryStore
	notifier Notifier
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped scheduler.
func New(store EntryStore, notifier Notifier) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		interval: defaultInterval,
		now:      time.Now,
	}
}

// Start launches the recurring scan. Calling Start on a running scheduler
// logs a warning and changes nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		logger.Warn("Reminder scheduler is already running")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(runCtx, s.done)
	logger.Info("Reminder scheduler started")
}

// Stop prevents any future tick and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	logger.Info("Reminder scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick evaluates every candidate against their own local clock. A failure
// for one user never aborts the scan for the rest, and a failed tick never
// stops the loop.
func (s *Scheduler) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Reminder tick panicked: %v", r)
		}
	}()

	candidates, err := s.store.ReminderCandidates(ctx)
	if err != nil {
		logger.Errorf("Error fetching reminder candidates: %v", err)
		return
	}

	now := s.now()
	for _, c := range candidates {
		hour, minute := dateutil.LocalClock(now, c.Timezone)
		if hour != c.ReminderHour || minute != c.ReminderMinute {
			continue
		}

		today := dateutil.DateKey(now, c.Timezone)
		hasEntry, err := s.store.HasEntryForDate(ctx, c.UserID, today)
		if err != nil {
			logger.Errorf("Error checking today's entry for user %d: %v", c.TelegramID, err)
			continue
		}
		if hasEntry {
			continue
		}

		if err := s.notifier.SendReminder(ctx, c.TelegramID, reminderMessage); err != nil {
			logger.Errorf("Failed to send reminder to user %d: %v", c.TelegramID, err)
			continue
		}
		logger.Infof("Reminder sent to user %d", c.TelegramID)
	}
}
