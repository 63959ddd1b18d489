package rest

import (
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/pershin-daniil/BoardMeetings/pkg/meetingform"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

// initialPrefix marks the hidden fields carrying the defaults the form was mounted with.
const initialPrefix = "initial."

func newFormDecoder(loc *time.Location) *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, func(s string) reflect.Value {
		t, err := time.ParseInLocation(models.DateLayout, s, loc)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}

// decodeState reads the current values and the initial defaults of the
// creation form.
func (s *Server) decodeState(values url.Values) (meetingform.State, error) {
	var state meetingform.State
	current := url.Values{}
	initial := url.Values{}
	for key, v := range values {
		if name, ok := strings.CutPrefix(key, initialPrefix); ok {
			initial[name] = v
			continue
		}
		current[key] = v
	}
	// A cleared date input keeps the date the form was mounted with.
	if current.Get("date") == "" {
		current.Del("date")
		if date := initial.Get("date"); date != "" {
			current.Set("date", date)
		}
	}
	if initial.Get("date") == "" {
		initial.Del("date")
	}
	if err := s.decoder.Decode(&state.Values, current); err != nil {
		return meetingform.State{}, err
	}
	if err := s.decoder.Decode(&state.Defaults, initial); err != nil {
		return meetingform.State{}, err
	}
	return state, nil
}
