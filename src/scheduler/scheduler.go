// Package scheduler periodically scans the repository for due, unshown
// reminders and fires each of them exactly once.
package scheduler

import (
	"sync"
	"time"

	"keep-notes/src/domain"
	"keep-notes/src/notification"

	"github.com/sirupsen/logrus"
)

// DefaultInterval is the reminder scan interval. The firing window has
// the same width: a reminder is fired when it became due within the last
// interval, so a missed window is never fired retroactively.
const DefaultInterval = 60 * time.Second

// ReminderScheduler runs the periodic reminder scan.
type ReminderScheduler struct {
	repo     domain.NoteRepository
	notifier notification.Notifier
	logger   *logrus.Logger
	interval time.Duration
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Option configures a ReminderScheduler.
type Option func(*ReminderScheduler)

// WithInterval overrides the scan interval (and the firing window width).
func WithInterval(d time.Duration) Option {
	return func(s *ReminderScheduler) { s.interval = d }
}

// WithClock overrides the scheduler clock. テスト用
func WithClock(now func() time.Time) Option {
	return func(s *ReminderScheduler) { s.now = now }
}

// NewReminderScheduler creates a reminder scheduler.
func NewReminderScheduler(repo domain.NoteRepository, notifier notification.Notifier, logger *logrus.Logger, opts ...Option) *ReminderScheduler {
	s := &ReminderScheduler{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		interval: DefaultInterval,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs one immediate scan and then scans on every interval tick
// until Stop is called.
func (s *ReminderScheduler) Start() {
	s.Scan()

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		defer close(s.done)
		for {
			select {
			case <-ticker.C:
				s.Scan()
			case <-s.stop:
				return
			}
		}
	}()

	s.logger.WithField("interval", s.interval).Info("リマインダースキャンを開始しました")
}

// Stop halts the periodic scan and waits for the loop to exit. Safe to
// call more than once.
func (s *ReminderScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// Scan fires every armed reminder that became due within the last
// interval. Without notification capability the scan has no side effects
// and remains safe to call repeatedly.
func (s *ReminderScheduler) Scan() {
	if !s.notifier.Available() {
		return
	}

	now := s.now()
	windowStart := now.Add(-s.interval)

	for _, note := range s.repo.GetAll() {
		if !note.HasArmedReminder() {
			continue
		}
		due, ok := note.ReminderTime()
		if !ok {
			s.logger.WithField("note_id", note.ID).Warn("リマインダーの日時を解析できません")
			continue
		}
		if due.After(now) {
			continue
		}
		if !due.After(windowStart) {
			// ウィンドウを過ぎたリマインダーは発火させない
			s.logger.WithFields(logrus.Fields{
				"note_id":  note.ID,
				"reminder": due,
			}).Debug("期限切れのリマインダーをスキップ")
			continue
		}

		s.fire(note)
	}
}

// fire emits the notification, then marks the reminder as shown so it can
// never fire again.
func (s *ReminderScheduler) fire(note domain.Note) {
	if err := s.notifier.Notify(note); err != nil {
		s.logger.WithError(err).WithField("note_id", note.ID).Error("通知の送信に失敗")
		return
	}

	shown := true
	if _, err := s.repo.Update(note.ID, domain.NotePatch{ReminderShown: &shown}); err != nil {
		s.logger.WithError(err).WithField("note_id", note.ID).Error("通知済みフラグの更新に失敗")
		return
	}

	s.logger.WithField("note_id", note.ID).Info("リマインダーを通知しました")
}
