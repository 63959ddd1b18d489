package notifier

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

type Notifier interface {
	Notify(ctx context.Context, message string, meeting models.Meeting) error
}

type DummyNotifier struct {
	log *logrus.Entry
}

func NewDummyNotifier(log *logrus.Logger) *DummyNotifier {
	return &DummyNotifier{
		log: log.WithField("component", "notifier"),
	}
}

func (n *DummyNotifier) Notify(_ context.Context, message string, meeting models.Meeting) error {
	n.log.Infof("meeting %s (%s): %s", meeting.Reference.ID, meeting.Title, message)
	return nil
}

// Fanout delivers every notification to all of its notifiers.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, message string, meeting models.Meeting) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, message, meeting); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
