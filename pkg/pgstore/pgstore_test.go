package pgstore

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/suite"

	"github.com/pershin-daniil/BoardMeetings/pkg/logger"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

type PgStoreSuite struct {
	suite.Suite
	store *Store
}

func TestPgStore(t *testing.T) {
	if os.Getenv("PG_DSN") == "" {
		t.Skip("PG_DSN not set")
	}
	suite.Run(t, new(PgStoreSuite))
}

func (s *PgStoreSuite) SetupSuite() {
	var err error
	s.store, err = NewStore(context.Background(), logger.New(), os.Getenv("PG_DSN"))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Migrate(migrate.Up))
}

func (s *PgStoreSuite) SetupTest() {
	s.Require().NoError(s.store.ResetTables(context.Background(), []string{"meetings", "participants"}))
}

func (s *PgStoreSuite) TearDownSuite() {
	s.Require().NoError(s.store.Close())
}

func (s *PgStoreSuite) TestMeetingLifecycle() {
	ctx := context.Background()
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	meeting := models.Meeting{
		Title:     "Styremøte",
		Draft:     true,
		Start:     start,
		End:       start.Add(time.Hour),
		Reference: models.Reference{ID: "ref-1"},
		Address:   models.Address{Address: "Storgata 1", PostCode: "0155", City: "Oslo"},
	}

	created, err := s.store.CreateMeeting(ctx, meeting)
	s.Require().NoError(err)
	s.Require().Equal(meeting.Reference, created.Reference)
	s.Require().Equal(meeting.Address, created.Address)
	s.Require().True(created.Start.Equal(start))

	created.Archived = true
	updated, err := s.store.UpdateMeeting(ctx, created)
	s.Require().NoError(err)
	s.Require().True(updated.Archived)

	meetings, err := s.store.GetMeetings(ctx)
	s.Require().NoError(err)
	s.Require().Len(meetings, 1)

	_, err = s.store.DeleteMeeting(ctx, "ref-1")
	s.Require().NoError(err)
	_, err = s.store.GetMeeting(ctx, "ref-1")
	s.Require().ErrorIs(err, models.ErrMeetingNotFound)
}

func (s *PgStoreSuite) TestSeedKeepsOrder() {
	ctx := context.Background()
	participants := []models.Participant{
		{FullName: "Oscar Wold", Status: models.StatusAttending},
		{FullName: "Oscar", Status: models.StatusUnknown},
	}
	meetings := []models.Meeting{
		{Title: "a", Reference: models.Reference{ID: "a"}, Start: time.Now(), End: time.Now()},
		{Title: "b", Reference: models.Reference{ID: "b"}, Start: time.Now(), End: time.Now()},
	}
	s.Require().NoError(s.store.Seed(ctx, meetings, participants))

	got, err := s.store.GetParticipants(ctx)
	s.Require().NoError(err)
	s.Require().Equal(participants, got)

	stored, err := s.store.GetMeetings(ctx)
	s.Require().NoError(err)
	s.Require().Len(stored, 2)
	s.Require().Equal("a", stored[0].Reference.ID)
	s.Require().Equal("b", stored[1].Reference.ID)
}
