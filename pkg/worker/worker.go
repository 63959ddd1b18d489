package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pershin-daniil/BoardMeetings/pkg/metrics"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

type Store interface {
	GetMeetings(ctx context.Context) ([]models.Meeting, error)
}

type Notifier interface {
	Notify(ctx context.Context, message string, meeting models.Meeting) error
}

// Worker reminds about published, active meetings that start within the lead time.
type Worker struct {
	log      *logrus.Entry
	store    Store
	notifier Notifier
	lead     time.Duration
	interval time.Duration
	now      func() time.Time
	reminded map[string]time.Time
}

func New(log *logrus.Logger, store Store, notifier Notifier, lead, interval time.Duration) *Worker {
	return &Worker{
		log:      log.WithField("component", "worker"),
		store:    store,
		notifier: notifier,
		lead:     lead,
		interval: interval,
		now:      time.Now,
		reminded: make(map[string]time.Time),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if err := w.SendReminders(ctx); err != nil {
			w.log.Warnf("err sending reminders: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// SendReminders notifies once per meeting start. A failed delivery is not
// retried, so one broken channel cannot repeat reminders on the others.
func (w *Worker) SendReminders(ctx context.Context) error {
	meetings, err := w.store.GetMeetings(ctx)
	if err != nil {
		return fmt.Errorf("worker send reminders failed: %w", err)
	}
	now := w.now()
	for id, start := range w.reminded {
		if start.Before(now) {
			delete(w.reminded, id)
		}
	}
	var errs []error
	for _, m := range meetings {
		if m.Draft || m.Archived {
			continue
		}
		if m.Start.Before(now) || m.Start.Sub(now) > w.lead {
			continue
		}
		if start, ok := w.reminded[m.Reference.ID]; ok && start.Equal(m.Start) {
			continue
		}
		w.reminded[m.Reference.ID] = m.Start
		msg := fmt.Sprintf("%s starter %s", m.Title, m.Start.Format("15:04"))
		if err = w.notifier.Notify(ctx, msg, m); err != nil {
			w.log.Warnf("err reminding about meeting %s: %v", m.Reference.ID, err)
			errs = append(errs, fmt.Errorf("meeting %s: %w", m.Reference.ID, err))
			continue
		}
		metrics.RemindersSent.Inc()
	}
	if len(errs) > 0 {
		return fmt.Errorf("worker send reminders failed: %w", errors.Join(errs...))
	}
	return nil
}
