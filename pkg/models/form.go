package models

import (
	"fmt"
	"time"
)

const (
	DefaultTitle = "Styremøte"
	TimeLayout   = "15:04"
	DateLayout   = "2006-01-02"
)

type Address struct {
	Address  string `json:"address" schema:"address"`
	PostCode string `json:"postCode" schema:"postCode"`
	City     string `json:"city" schema:"city"`
}

// CreateMeetingForm holds the values of the meeting creation view.
// StartTime and EndTime are "HH:mm" strings.
type CreateMeetingForm struct {
	Title     string    `json:"title" schema:"title"`
	Date      time.Time `json:"date" schema:"date"`
	StartTime string    `json:"startTime" schema:"startTime"`
	EndTime   string    `json:"endTime" schema:"endTime"`
	Address   Address   `json:"address" schema:"address"`
	Comment   string    `json:"comment" schema:"comment"`
}

// NewCreateMeetingForm returns the defaults the creation view mounts with.
func NewCreateMeetingForm(now time.Time) CreateMeetingForm {
	now = now.Truncate(time.Minute)
	return CreateMeetingForm{
		Title:     DefaultTitle,
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		StartTime: now.Format(TimeLayout),
		EndTime:   now.Format(TimeLayout),
	}
}

// Meeting converts the form into a draft meeting placed on the form date in loc.
func (f CreateMeetingForm) Meeting(id string, loc *time.Location) (Meeting, error) {
	start, err := f.at(f.StartTime, loc)
	if err != nil {
		return Meeting{}, fmt.Errorf("err parsing start time: %w", err)
	}
	end, err := f.at(f.EndTime, loc)
	if err != nil {
		return Meeting{}, fmt.Errorf("err parsing end time: %w", err)
	}
	return Meeting{
		Title:     f.Title,
		Draft:     true,
		Start:     start,
		End:       end,
		Reference: Reference{ID: id},
		Address:   f.Address,
		Comment:   f.Comment,
	}, nil
}

func (f CreateMeetingForm) at(clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
