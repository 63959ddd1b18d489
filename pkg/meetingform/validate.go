// Package meetingform holds the derived state of the meeting creation form:
// field validation, the submission gate and the header preview. Everything
// here is a pure function of a form snapshot.
package meetingform

import (
	"strconv"
	"strings"

	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

const (
	FieldEndTime = "endTime"

	// KindMin marks a value that must be greater than another field's value.
	KindMin = "min"

	msgEndBeforeStart = "Sluttidspunktet må være etter starttidspunktet"
)

type FieldError struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
}

// Errors maps a field name to the error attached to it. A field without an
// entry is ok.
type Errors map[string]FieldError

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Message(field string) string {
	return e[field].Message
}

// TimeToDecimal turns "HH:mm" into hours as a decimal, so "09:30" is 9.5.
// Input is expected to be well formed.
func TimeToDecimal(clock string) float64 {
	hour, minute, _ := strings.Cut(clock, ":")
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	return float64(h) + float64(m)/60
}

// ValidateTimeRange rejects a range ending before it starts. A zero length
// range is accepted.
func ValidateTimeRange(start, end string) *FieldError {
	if TimeToDecimal(start) > TimeToDecimal(end) {
		return &FieldError{Kind: KindMin, Message: msgEndBeforeStart}
	}
	return nil
}

func Validate(form models.CreateMeetingForm) Errors {
	errs := Errors{}
	if err := ValidateTimeRange(form.StartTime, form.EndTime); err != nil {
		errs[FieldEndTime] = *err
	}
	return errs
}
