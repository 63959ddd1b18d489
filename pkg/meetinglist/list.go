// Package meetinglist partitions meetings into the active and archived views
// and splits a view into the always shown head and the expandable rest.
package meetinglist

import "github.com/pershin-daniil/BoardMeetings/pkg/models"

type View int

const (
	ViewActive View = iota
	ViewArchived
)

// PageSize is how many meetings of a view are shown before expanding.
const PageSize = 5

func ParseView(s string) View {
	if s == "archived" {
		return ViewArchived
	}
	return ViewActive
}

func (v View) String() string {
	if v == ViewArchived {
		return "archived"
	}
	return "active"
}

func (v View) Title() string {
	if v == ViewArchived {
		return "Arkiverte møter"
	}
	return "Aktive møter"
}

func (v View) Includes(m models.Meeting) bool {
	switch v {
	case ViewActive:
		return !m.Archived
	case ViewArchived:
		return m.Archived
	}
	return false
}

// Filter keeps the meetings of view in their original order.
func Filter(meetings []models.Meeting, view View) []models.Meeting {
	filtered := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if view.Includes(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// Split returns the first PageSize meetings and the remainder.
func Split(meetings []models.Meeting) (visible, hidden []models.Meeting) {
	if len(meetings) <= PageSize {
		return meetings, nil
	}
	return meetings[:PageSize:PageSize], meetings[PageSize:]
}

type State struct {
	View    View
	ShowAll bool
}

// SwitchView selects view and collapses the expanded rest.
func (s State) SwitchView(view View) State {
	return State{View: view}
}

func (s State) Toggle() State {
	s.ShowAll = !s.ShowAll
	return s
}

func (s State) ToggleLabel() string {
	if s.ShowAll {
		return "Skjul resten av møtene"
	}
	return "Vis resten av møtene"
}

type ActionKind string

const (
	ActionDeleteDraft ActionKind = "delete-draft"
	ActionArchive     ActionKind = "archive"
)

type Action struct {
	Kind  ActionKind
	Label string
}

// ActionFor is the single entry of a meeting's action menu.
func ActionFor(m models.Meeting) Action {
	if m.Draft {
		return Action{Kind: ActionDeleteDraft, Label: "Slett utkast"}
	}
	return Action{Kind: ActionArchive, Label: "Arkiver møtet"}
}

type Page struct {
	State   State
	Visible []models.Meeting
	Hidden  []models.Meeting
}

func (p Page) Total() int {
	return len(p.Visible) + len(p.Hidden)
}

func NewPage(meetings []models.Meeting, state State) Page {
	visible, hidden := Split(Filter(meetings, state.View))
	return Page{State: state, Visible: visible, Hidden: hidden}
}
