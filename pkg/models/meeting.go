package models

import "time"

type Reference struct {
	ID string `json:"id"`
}

type Meeting struct {
	Title     string    `json:"title"`
	Draft     bool      `json:"draft"`
	Archived  bool      `json:"archived"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Reference Reference `json:"reference"`
	Address   Address   `json:"address"`
	Comment   string    `json:"comment"`
}

// Anchor is the in-page link target of the meeting.
func (m Meeting) Anchor() string {
	return "#" + m.Reference.ID
}
