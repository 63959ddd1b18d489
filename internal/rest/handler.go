package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pershin-daniil/BoardMeetings/pkg/icalfeed"
	"github.com/pershin-daniil/BoardMeetings/pkg/meetingform"
	"github.com/pershin-daniil/BoardMeetings/pkg/meetinglist"
	"github.com/pershin-daniil/BoardMeetings/pkg/metrics"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
	"github.com/pershin-daniil/BoardMeetings/pkg/participant"
)

type App interface {
	ListMeetings(ctx context.Context) ([]models.Meeting, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	SaveMeeting(ctx context.Context, state meetingform.State) (models.Meeting, error)
	RunAction(ctx context.Context, id string) (meetinglist.Action, error)
	Location() *time.Location
}

type viewLink struct {
	Title    string
	URL      string
	Selected bool
}

type listPage struct {
	Page      meetinglist.Page
	Views     []viewLink
	ToggleURL string
}

type createPage struct {
	State        meetingform.State
	Errors       meetingform.Errors
	Preview      meetingform.Preview
	CanSubmit    bool
	Participants []participant.Badge
}

type previewResponse struct {
	meetingform.Preview
	Errors    meetingform.Errors `json:"errors"`
	Dirty     bool               `json:"dirty"`
	CanSubmit bool               `json:"canSubmit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func listURL(state meetinglist.State) string {
	q := url.Values{}
	if state.View != meetinglist.ViewActive {
		q.Set("view", state.View.String())
	}
	if state.ShowAll {
		q.Set("all", "1")
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func (s *Server) versionHandler(w http.ResponseWriter, _ *http.Request) {
	_, err := fmt.Fprintf(w, "%s\n", s.version)
	if err != nil {
		s.log.Warnf("err during writing to connection: %v", err)
	}
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := meetinglist.State{
		View:    meetinglist.ParseView(r.URL.Query().Get("view")),
		ShowAll: r.URL.Query().Get("all") == "1",
	}
	meetings, err := s.app.ListMeetings(ctx)
	if err != nil {
		s.log.Warnf("err during listing meetings: %v", err)
		http.Error(w, "could not load meetings", http.StatusInternalServerError)
		return
	}
	data := listPage{
		Page:      meetinglist.NewPage(meetings, state),
		ToggleURL: listURL(state.Toggle()),
	}
	for _, v := range []meetinglist.View{meetinglist.ViewActive, meetinglist.ViewArchived} {
		data.Views = append(data.Views, viewLink{
			Title:    v.Title(),
			URL:      listURL(state.SwitchView(v)),
			Selected: v == state.View,
		})
	}
	s.render(w, http.StatusOK, "list.html", data)
}

func (s *Server) createPageHandler(w http.ResponseWriter, r *http.Request) {
	defaults := models.NewCreateMeetingForm(s.now().In(s.app.Location()))
	s.renderCreate(w, r, http.StatusOK, meetingform.NewState(defaults))
}

func (s *Server) renderCreate(w http.ResponseWriter, r *http.Request, status int, state meetingform.State) {
	participants, err := s.app.ListParticipants(r.Context())
	if err != nil {
		s.log.Warnf("err during listing participants: %v", err)
		http.Error(w, "could not load participants", http.StatusInternalServerError)
		return
	}
	s.render(w, status, "create.html", createPage{
		State:        state,
		Errors:       state.Errors(),
		Preview:      state.Preview(),
		CanSubmit:    state.CanSubmit(),
		Participants: participant.Badges(participants),
	})
}

func (s *Server) parseState(r *http.Request) (meetingform.State, error) {
	if err := r.ParseForm(); err != nil {
		return meetingform.State{}, err
	}
	return s.decodeState(r.PostForm)
}

func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.parseState(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !state.CanSubmit() {
		metrics.FormSubmissions.WithLabelValues("rejected").Inc()
		s.renderCreate(w, r, http.StatusUnprocessableEntity, state)
		return
	}
	meeting, err := s.app.SaveMeeting(r.Context(), state)
	switch {
	case errors.Is(err, models.ErrInvalidForm):
		metrics.FormSubmissions.WithLabelValues("rejected").Inc()
		s.renderCreate(w, r, http.StatusUnprocessableEntity, state)
		return
	case err != nil:
		metrics.FormSubmissions.WithLabelValues("failed").Inc()
		s.log.Warnf("err during saving meeting: %v", err)
		http.Error(w, "could not save meeting", http.StatusInternalServerError)
		return
	}
	metrics.FormSubmissions.WithLabelValues("saved").Inc()
	s.log.Infof("meeting %s saved", meeting.Reference.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) previewHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.parseState(r)
	if err != nil {
		s.writeResponse(w, http.StatusBadRequest, err)
		return
	}
	s.writeResponse(w, http.StatusOK, previewResponse{
		Preview:   state.Preview(),
		Errors:    state.Errors(),
		Dirty:     state.Dirty(),
		CanSubmit: state.CanSubmit(),
	})
}

func (s *Server) actionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, err := s.app.RunAction(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrMeetingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		s.log.Warnf("err during meeting action: %v", err)
		http.Error(w, "could not update meeting", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) icsHandler(w http.ResponseWriter, r *http.Request) {
	meetings, err := s.app.ListMeetings(r.Context())
	if err != nil {
		s.log.Warnf("err during listing meetings: %v", err)
		http.Error(w, "could not load meetings", http.StatusInternalServerError)
		return
	}
	active := meetinglist.Filter(meetings, meetinglist.ViewActive)
	if len(active) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if err = icalfeed.Encode(w, active, s.now()); err != nil {
		s.log.Warnf("err during encoding calendar: %v", err)
	}
}

func (s *Server) writeResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if x, ok := data.(error); ok {
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: x.Error()}); err != nil {
			s.log.Warnf("err during encoding error: %v", err)
		}
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warnf("err during encoding response: %v", err)
	}
}
