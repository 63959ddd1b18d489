package models

type ResponseStatus int

const (
	StatusUnknown ResponseStatus = iota
	StatusAttending
	StatusNotAttending
)

type Participant struct {
	FullName string         `json:"fullName" db:"full_name"`
	Status   ResponseStatus `json:"status" db:"status"`
}
