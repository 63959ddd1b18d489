// Package memstore is the in-memory meeting source used when no database is
// configured. It is seeded with sample meetings and participants.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

type Store struct {
	log          *logrus.Entry
	mu           sync.RWMutex
	meetings     []models.Meeting
	participants []models.Participant
}

func New(log *logrus.Logger, meetings []models.Meeting, participants []models.Participant) *Store {
	return &Store{
		log:          log.WithField("component", "memstore"),
		meetings:     append([]models.Meeting(nil), meetings...),
		participants: append([]models.Participant(nil), participants...),
	}
}

// SampleMeetings returns twelve board meetings: every odd one is a draft and
// the last six are archived.
func SampleMeetings(now time.Time) []models.Meeting {
	meetings := make([]models.Meeting, 0, 12)
	for i := 0; i < 12; i++ {
		meetings = append(meetings, models.Meeting{
			Title:     fmt.Sprintf("%s %d", models.DefaultTitle, i),
			Draft:     i%2 != 0,
			Archived:  i > 5,
			Start:     now,
			End:       now,
			Reference: models.Reference{ID: uuid.NewString()},
		})
	}
	return meetings
}

func SampleParticipants() []models.Participant {
	return []models.Participant{
		{FullName: "Oscar Wold", Status: models.StatusAttending},
		{FullName: "Oscar", Status: models.StatusUnknown},
		{FullName: "Oscar Wold Halland", Status: models.StatusNotAttending},
	}
}

func (s *Store) GetMeetings(_ context.Context) ([]models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Meeting(nil), s.meetings...), nil
}

func (s *Store) GetMeeting(_ context.Context, id string) (models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.meetings[i], nil
	}
	return models.Meeting{}, models.ErrMeetingNotFound
}

func (s *Store) CreateMeeting(_ context.Context, meeting models.Meeting) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(meeting.Reference.ID) >= 0 {
		return models.Meeting{}, fmt.Errorf("meeting %s already exists", meeting.Reference.ID)
	}
	s.meetings = append(s.meetings, meeting)
	s.log.Debugf("meeting %s created", meeting.Reference.ID)
	return meeting, nil
}

func (s *Store) UpdateMeeting(_ context.Context, meeting models.Meeting) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(meeting.Reference.ID)
	if i < 0 {
		return models.Meeting{}, models.ErrMeetingNotFound
	}
	s.meetings[i] = meeting
	return meeting, nil
}

func (s *Store) DeleteMeeting(_ context.Context, id string) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Meeting{}, models.ErrMeetingNotFound
	}
	deleted := s.meetings[i]
	s.meetings = append(s.meetings[:i], s.meetings[i+1:]...)
	return deleted, nil
}

func (s *Store) GetParticipants(_ context.Context) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Participant(nil), s.participants...), nil
}

func (s *Store) index(id string) int {
	for i, m := range s.meetings {
		if m.Reference.ID == id {
			return i
		}
	}
	return -1
}
