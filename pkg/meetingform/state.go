package meetingform

import "github.com/pershin-daniil/BoardMeetings/pkg/models"

// State is a snapshot of the creation form next to the defaults it was
// mounted with.
type State struct {
	Defaults models.CreateMeetingForm
	Values   models.CreateMeetingForm
}

func NewState(defaults models.CreateMeetingForm) State {
	return State{Defaults: defaults, Values: defaults}
}

func (s State) Dirty() bool {
	return len(DirtyFields(s.Defaults, s.Values)) > 0
}

func (s State) Errors() Errors {
	return Validate(s.Values)
}

func (s State) Valid() bool {
	return len(s.Errors()) == 0
}

// CanSubmit gates the save action.
func (s State) CanSubmit() bool {
	return s.Dirty() && s.Valid()
}

func (s State) Preview() Preview {
	return PreviewOf(s.Values)
}

// DirtyFields lists the fields of values that differ from defaults, in form order.
func DirtyFields(defaults, values models.CreateMeetingForm) []string {
	var fields []string
	add := func(name string, changed bool) {
		if changed {
			fields = append(fields, name)
		}
	}
	add("title", defaults.Title != values.Title)
	add("date", defaults.Date.Format(models.DateLayout) != values.Date.Format(models.DateLayout))
	add("startTime", defaults.StartTime != values.StartTime)
	add(FieldEndTime, defaults.EndTime != values.EndTime)
	add("address.address", defaults.Address.Address != values.Address.Address)
	add("address.postCode", defaults.Address.PostCode != values.Address.PostCode)
	add("address.city", defaults.Address.City != values.Address.City)
	add("comment", defaults.Comment != values.Comment)
	return fields
}
