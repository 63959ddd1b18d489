// Package icalfeed encodes meetings as an iCalendar feed. The meeting
// reference id is the event UID.
package icalfeed

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

const productID = "-//BoardMeetings//Meetings//NB"

// ErrEmpty is returned for a feed without meetings; a VCALENDAR needs at
// least one component.
var ErrEmpty = errors.New("no meetings to encode")

func Calendar(meetings []models.Meeting, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	for _, m := range meetings {
		cal.Children = append(cal.Children, event(m, stamp).Component)
	}
	return cal
}

func event(m models.Meeting, stamp time.Time) *ical.Event {
	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, m.Reference.ID)
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ev.Props.SetText(ical.PropSummary, m.Title)
	ev.Props.SetDateTime(ical.PropDateTimeStart, m.Start.UTC())
	ev.Props.SetDateTime(ical.PropDateTimeEnd, m.End.UTC())
	if m.Draft {
		ev.Props.SetText(ical.PropStatus, "TENTATIVE")
	} else {
		ev.Props.SetText(ical.PropStatus, "CONFIRMED")
	}
	if loc := Location(m.Address); loc != "" {
		ev.Props.SetText(ical.PropLocation, loc)
	}
	if m.Comment != "" {
		ev.Props.SetText(ical.PropDescription, m.Comment)
	}
	return ev
}

// Location joins the address parts as "address, postCode city".
func Location(a models.Address) string {
	place := strings.TrimSpace(a.PostCode + " " + a.City)
	parts := make([]string, 0, 2)
	for _, p := range []string{strings.TrimSpace(a.Address), place} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func Encode(w io.Writer, meetings []models.Meeting, stamp time.Time) error {
	if len(meetings) == 0 {
		return ErrEmpty
	}
	return ical.NewEncoder(w).Encode(Calendar(meetings, stamp))
}
