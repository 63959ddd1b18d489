package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pershin-daniil/BoardMeetings/pkg/meetingform"
	"github.com/pershin-daniil/BoardMeetings/pkg/meetinglist"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

type Notifier interface {
	Notify(ctx context.Context, message string, meeting models.Meeting) error
}

// Publisher mirrors saved meetings into an external calendar.
type Publisher interface {
	Publish(ctx context.Context, meeting models.Meeting) error
}

type Store interface {
	GetMeetings(ctx context.Context) ([]models.Meeting, error)
	GetMeeting(ctx context.Context, id string) (models.Meeting, error)
	CreateMeeting(ctx context.Context, meeting models.Meeting) (models.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting models.Meeting) (models.Meeting, error)
	DeleteMeeting(ctx context.Context, id string) (models.Meeting, error)
	GetParticipants(ctx context.Context) ([]models.Participant, error)
}

type MeetingService struct {
	log       *logrus.Entry
	store     Store
	notifier  Notifier
	publisher Publisher
	loc       *time.Location
	newID     func() string
}

type Option func(*MeetingService)

func WithPublisher(p Publisher) Option {
	return func(s *MeetingService) {
		s.publisher = p
	}
}

// WithLocation sets where form dates and times are placed. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *MeetingService) {
		s.loc = loc
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *MeetingService) {
		s.newID = newID
	}
}

func NewMeetingService(log *logrus.Logger, store Store, notifier Notifier, opts ...Option) *MeetingService {
	s := MeetingService{
		log:      log.WithField("component", "service"),
		store:    store,
		notifier: notifier,
		loc:      time.Local,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

func (s *MeetingService) Location() *time.Location {
	return s.loc
}

func (s *MeetingService) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	meetings, err := s.store.GetMeetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("err getting meetings from store: %w", err)
	}
	return meetings, nil
}

func (s *MeetingService) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.store.GetParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("err getting participants from store: %w", err)
	}
	return participants, nil
}

// SaveMeeting stores the submitted form as a draft meeting. The form must pass
// the submission gate.
func (s *MeetingService) SaveMeeting(ctx context.Context, state meetingform.State) (models.Meeting, error) {
	if !state.CanSubmit() {
		return models.Meeting{}, models.ErrInvalidForm
	}
	meeting, err := state.Values.Meeting(s.newID(), s.loc)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("%w: %v", models.ErrInvalidForm, err)
	}
	meeting, err = s.store.CreateMeeting(ctx, meeting)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("err creating meeting: %w", err)
	}
	if err = s.notifier.Notify(ctx, "meeting created", meeting); err != nil {
		s.log.Errorf("err notifying about meeting %s: %v", meeting.Reference.ID, err)
	}
	if s.publisher != nil {
		if err = s.publisher.Publish(ctx, meeting); err != nil {
			s.log.Errorf("err publishing meeting %s: %v", meeting.Reference.ID, err)
		}
	}
	return meeting, nil
}

// RunAction performs the action menu entry of the meeting: drafts are
// deleted, published meetings are archived.
func (s *MeetingService) RunAction(ctx context.Context, id string) (meetinglist.Action, error) {
	meeting, err := s.store.GetMeeting(ctx, id)
	if err != nil {
		return meetinglist.Action{}, err
	}
	action := meetinglist.ActionFor(meeting)
	switch action.Kind {
	case meetinglist.ActionDeleteDraft:
		_, err = s.store.DeleteMeeting(ctx, id)
	case meetinglist.ActionArchive:
		meeting.Archived = true
		_, err = s.store.UpdateMeeting(ctx, meeting)
	}
	if err != nil {
		return meetinglist.Action{}, fmt.Errorf("err running %s on meeting %s: %w", action.Kind, id, err)
	}
	s.log.Infof("meeting %s: %s", id, action.Kind)
	return action, nil
}
