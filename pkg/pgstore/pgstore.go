package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"

	"github.com/pershin-daniil/BoardMeetings/pkg/metrics"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

//go:embed migrations
var migrations embed.FS

const retries = 3

const meetingColumns = `reference_id, title, draft, archived, start_at, end_at, address, post_code, city, comment`

type Store struct {
	log *logrus.Entry
	db  *sqlx.DB
}

type meetingRow struct {
	ReferenceID string    `db:"reference_id"`
	Title       string    `db:"title"`
	Draft       bool      `db:"draft"`
	Archived    bool      `db:"archived"`
	StartAt     time.Time `db:"start_at"`
	EndAt       time.Time `db:"end_at"`
	Address     string    `db:"address"`
	PostCode    string    `db:"post_code"`
	City        string    `db:"city"`
	Comment     string    `db:"comment"`
}

func (r meetingRow) meeting() models.Meeting {
	return models.Meeting{
		Title:     r.Title,
		Draft:     r.Draft,
		Archived:  r.Archived,
		Start:     r.StartAt,
		End:       r.EndAt,
		Reference: models.Reference{ID: r.ReferenceID},
		Address:   models.Address{Address: r.Address, PostCode: r.PostCode, City: r.City},
		Comment:   r.Comment,
	}
}

func NewStore(ctx context.Context, log *logrus.Logger, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &Store{
		log: log.WithField("component", "pgstore"),
		db:  db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(direction migrate.MigrationDirection) error {
	assetDir := func(path string) ([]string, error) {
		dirEntry, err := migrations.ReadDir(path)
		if err != nil {
			return nil, err
		}
		entries := make([]string, 0, len(dirEntry))
		for _, e := range dirEntry {
			entries = append(entries, e.Name())
		}
		return entries, nil
	}
	asset := migrate.AssetMigrationSource{
		Asset:    migrations.ReadFile,
		AssetDir: assetDir,
		Dir:      "migrations",
	}
	n, err := migrate.Exec(s.db.DB, "postgres", asset, direction)
	if err != nil {
		return fmt.Errorf("err applying migrations: %w", err)
	}
	s.log.Infof("applied %d migrations", n)
	return nil
}

func observe(method string, started time.Time, err error) {
	metrics.PgDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
	if err != nil && !errors.Is(err, models.ErrMeetingNotFound) {
		metrics.PgErrCount.WithLabelValues(method).Inc()
	}
}

func (s *Store) GetMeetings(ctx context.Context) (_ []models.Meeting, err error) {
	defer func(started time.Time) { observe("GetMeetings", started, err) }(time.Now())
	var rows []meetingRow
	query := `SELECT ` + meetingColumns + ` FROM meetings ORDER BY id`
	for i := 0; i < retries; i++ {
		if err = s.db.SelectContext(ctx, &rows, query); err != nil {
			continue
		}
		meetings := make([]models.Meeting, 0, len(rows))
		for _, r := range rows {
			meetings = append(meetings, r.meeting())
		}
		return meetings, nil
	}
	return nil, fmt.Errorf("err getting meetings: %w", err)
}

func (s *Store) GetMeeting(ctx context.Context, id string) (_ models.Meeting, err error) {
	defer func(started time.Time) { observe("GetMeeting", started, err) }(time.Now())
	var row meetingRow
	query := `
SELECT ` + meetingColumns + ` FROM meetings
WHERE reference_id = $1;`
	for i := 0; i < retries; i++ {
		err = s.db.GetContext(ctx, &row, query, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			err = models.ErrMeetingNotFound
			return models.Meeting{}, err
		case err != nil:
			continue
		}
		return row.meeting(), nil
	}
	return models.Meeting{}, fmt.Errorf("err getting meeting %s: %w", id, err)
}

func (s *Store) CreateMeeting(ctx context.Context, meeting models.Meeting) (_ models.Meeting, err error) {
	defer func(started time.Time) { observe("CreateMeeting", started, err) }(time.Now())
	var row meetingRow
	query := `
INSERT INTO meetings (` + meetingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + meetingColumns + `;`
	for i := 0; i < retries; i++ {
		if err = s.db.GetContext(ctx, &row, query,
			meeting.Reference.ID, meeting.Title, meeting.Draft, meeting.Archived, meeting.Start, meeting.End,
			meeting.Address.Address, meeting.Address.PostCode, meeting.Address.City, meeting.Comment); err != nil {
			continue
		}
		return row.meeting(), nil
	}
	return models.Meeting{}, fmt.Errorf("err creating meeting: %w", err)
}

func (s *Store) UpdateMeeting(ctx context.Context, meeting models.Meeting) (_ models.Meeting, err error) {
	defer func(started time.Time) { observe("UpdateMeeting", started, err) }(time.Now())
	var row meetingRow
	query := `
UPDATE meetings
SET title = $2,
	draft = $3,
	archived = $4,
	start_at = $5,
	end_at = $6,
	address = $7,
	post_code = $8,
	city = $9,
	comment = $10
WHERE reference_id = $1
RETURNING ` + meetingColumns + `;`
	for i := 0; i < retries; i++ {
		err = s.db.GetContext(ctx, &row, query,
			meeting.Reference.ID, meeting.Title, meeting.Draft, meeting.Archived, meeting.Start, meeting.End,
			meeting.Address.Address, meeting.Address.PostCode, meeting.Address.City, meeting.Comment)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			err = models.ErrMeetingNotFound
			return models.Meeting{}, err
		case err != nil:
			continue
		}
		return row.meeting(), nil
	}
	return models.Meeting{}, fmt.Errorf("err updating meeting %s: %w", meeting.Reference.ID, err)
}

func (s *Store) DeleteMeeting(ctx context.Context, id string) (_ models.Meeting, err error) {
	defer func(started time.Time) { observe("DeleteMeeting", started, err) }(time.Now())
	var row meetingRow
	query := `
DELETE FROM meetings
WHERE reference_id = $1
RETURNING ` + meetingColumns + `;`
	for i := 0; i < retries; i++ {
		err = s.db.GetContext(ctx, &row, query, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			err = models.ErrMeetingNotFound
			return models.Meeting{}, err
		case err != nil:
			continue
		}
		return row.meeting(), nil
	}
	return models.Meeting{}, fmt.Errorf("err deleting meeting %s: %w", id, err)
}

func (s *Store) GetParticipants(ctx context.Context) (_ []models.Participant, err error) {
	defer func(started time.Time) { observe("GetParticipants", started, err) }(time.Now())
	var participants []models.Participant
	for i := 0; i < retries; i++ {
		if err = s.db.SelectContext(ctx, &participants, `SELECT full_name, status FROM participants ORDER BY id`); err != nil {
			continue
		}
		return participants, nil
	}
	return nil, fmt.Errorf("err getting participants: %w", err)
}

// Seed inserts meetings and participants, used to bootstrap an empty database.
func (s *Store) Seed(ctx context.Context, meetings []models.Meeting, participants []models.Participant) error {
	for _, m := range meetings {
		if _, err := s.CreateMeeting(ctx, m); err != nil {
			return err
		}
	}
	for _, p := range participants {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO participants (full_name, status) VALUES ($1, $2)`, p.FullName, p.Status); err != nil {
			return fmt.Errorf("err seeding participant: %w", err)
		}
	}
	return nil
}

func (s *Store) ResetTables(ctx context.Context, tables []string) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE TABLE `+strings.Join(tables, `, `)); err != nil {
		return err
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`ALTER SEQUENCE %s_id_seq RESTART`, table)); err != nil {
			return err
		}
	}
	return nil
}
