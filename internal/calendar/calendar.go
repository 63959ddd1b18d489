package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/pershin-daniil/BoardMeetings/pkg/icalfeed"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

const referenceProperty = "referenceId"

// Calendar publishes saved meetings to a Google calendar.
type Calendar struct {
	log        *logrus.Entry
	srv        *calendar.Service
	calendarID string
}

// New authenticates with the service account key at credentialsPath.
func New(ctx context.Context, log *logrus.Logger, credentialsPath, calendarID string) (*Calendar, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("err reading credentials: %w", err)
	}
	config, err := google.JWTConfigFromJSON(b, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("err parsing credentials: %w", err)
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("err creating calendar client: %w", err)
	}
	return NewWithService(log, srv, calendarID), nil
}

func NewWithService(log *logrus.Logger, srv *calendar.Service, calendarID string) *Calendar {
	return &Calendar{
		log:        log.WithField("module", "calendar"),
		srv:        srv,
		calendarID: calendarID,
	}
}

func (c *Calendar) Publish(ctx context.Context, meeting models.Meeting) error {
	created, err := c.srv.Events.Insert(c.calendarID, toEvent(meeting)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("err inserting calendar event: %w", err)
	}
	c.log.Infof("meeting %s published as event %s", meeting.Reference.ID, created.Id)
	return nil
}

func toEvent(m models.Meeting) *calendar.Event {
	status := "confirmed"
	if m.Draft {
		status = "tentative"
	}
	return &calendar.Event{
		Summary:     m.Title,
		Description: m.Comment,
		Location:    icalfeed.Location(m.Address),
		Status:      status,
		Start:       &calendar.EventDateTime{DateTime: m.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: m.End.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{referenceProperty: m.Reference.ID},
		},
	}
}
