package models

import "errors"

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrInvalidForm     = errors.New("meeting form is not submittable")
)
