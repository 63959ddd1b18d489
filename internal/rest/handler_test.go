package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/pershin-daniil/BoardMeetings/pkg/memstore"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
	"github.com/pershin-daniil/BoardMeetings/pkg/notifier"
	"github.com/pershin-daniil/BoardMeetings/pkg/service"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type HandlerSuite struct {
	suite.Suite
	store   *memstore.Store
	server  *Server
	handler http.Handler
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	log, _ := test.NewNullLogger()
	meetings := memstore.SampleMeetings(fixedNow)
	for i := range meetings {
		meetings[i].Reference.ID = "m" + string(rune('a'+i))
	}
	s.store = memstore.New(log, meetings, memstore.SampleParticipants())
	app := service.NewMeetingService(log, s.store, notifier.NewDummyNotifier(log), service.WithLocation(time.UTC))
	s.server = NewServer(log, app, ":0", "test")
	s.server.now = func() time.Time { return fixedNow }
	s.handler = s.server.Handler()
}

func (s *HandlerSuite) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	s.T().Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func createForm(endTime string) url.Values {
	return url.Values{
		"title":                    {"Styremøte"},
		"date":                     {"2026-10-17"},
		"startTime":                {"09:00"},
		"endTime":                  {endTime},
		"address.address":          {"Storgata 1"},
		"address.postCode":         {"0155"},
		"address.city":             {"Oslo"},
		"comment":                  {""},
		"initial.title":            {"Styremøte"},
		"initial.date":             {"2026-10-17"},
		"initial.startTime":        {"09:00"},
		"initial.endTime":          {"09:00"},
		"initial.address.address":  {""},
		"initial.address.postCode": {""},
		"initial.address.city":     {""},
		"initial.comment":          {""},
	}
}

func (s *HandlerSuite) TestVersion() {
	rr := s.do(http.MethodGet, "/version", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().Equal("test\n", rr.Body.String())
}

func (s *HandlerSuite) TestListActive() {
	rr := s.do(http.MethodGet, "/", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	body := rr.Body.String()
	s.Require().Contains(body, "Styremøte 4")
	s.Require().NotContains(body, "Styremøte 5")
	s.Require().NotContains(body, "Styremøte 6")
	s.Require().Contains(body, "Vis resten av møtene")
	s.Require().Contains(body, `href="/?all=1"`)
	s.Require().Contains(body, "Slett utkast")
	s.Require().Contains(body, "Arkiver møtet")
	s.Require().Contains(body, "2026-10-17T09:00:00.000Z")
}

func (s *HandlerSuite) TestListExpandedAndSwitch() {
	rr := s.do(http.MethodGet, "/?all=1", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	body := rr.Body.String()
	s.Require().Contains(body, "Styremøte 5")
	s.Require().Contains(body, "Skjul resten av møtene")
	s.Require().Contains(body, `href="/?view=archived"`)

	rr = s.do(http.MethodGet, "/?view=archived", nil)
	body = rr.Body.String()
	s.Require().Contains(body, "Styremøte 6")
	s.Require().NotContains(body, "Styremøte 0<")
}

func (s *HandlerSuite) TestCreatePage() {
	rr := s.do(http.MethodGet, "/create", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	body := rr.Body.String()
	s.Require().Contains(body, "17. oktober 2026 09:00 - 09:00")
	s.Require().Contains(body, `id="submit" disabled`)
	s.Require().Contains(body, ">OW<")
	s.Require().Contains(body, ">OS<")
	s.Require().Contains(body, ">OH<")
	s.Require().Contains(body, "bg-success")
	s.Require().Contains(body, "bg-danger")
	s.Require().Contains(body, "bg-warning")
}

func (s *HandlerSuite) TestPreview() {
	rr := s.do(http.MethodPost, "/create/preview", createForm("08:00"))
	s.Require().Equal(http.StatusOK, rr.Code)
	var resp struct {
		Title     string `json:"title"`
		Subtitle  string `json:"subtitle"`
		Dirty     bool   `json:"dirty"`
		CanSubmit bool   `json:"canSubmit"`
		Errors    map[string]struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&resp))
	s.Require().Equal("Styremøte", resp.Title)
	s.Require().Equal("17. oktober 2026 09:00 - 08:00", resp.Subtitle)
	s.Require().True(resp.Dirty)
	s.Require().False(resp.CanSubmit)
	s.Require().Equal("min", resp.Errors["endTime"].Type)
	s.Require().Equal("Sluttidspunktet må være etter starttidspunktet", resp.Errors["endTime"].Message)
}

func (s *HandlerSuite) TestPreviewBadDate() {
	form := createForm("10:00")
	form.Set("date", "not-a-date")
	rr := s.do(http.MethodPost, "/create/preview", form)
	s.Require().Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerSuite) TestPreviewClearedDate() {
	form := createForm("10:00")
	form.Set("date", "")
	rr := s.do(http.MethodPost, "/create/preview", form)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().Contains(rr.Body.String(), "17. oktober 2026 09:00 - 10:00")

	rr = s.do(http.MethodPost, "/create", form)
	s.Require().Equal(http.StatusSeeOther, rr.Code)
}

func (s *HandlerSuite) TestCreateInvalid() {
	rr := s.do(http.MethodPost, "/create", createForm("08:00"))
	s.Require().Equal(http.StatusUnprocessableEntity, rr.Code)
	body := rr.Body.String()
	s.Require().Contains(body, "is-invalid")
	s.Require().Contains(body, "Sluttidspunktet må være etter starttidspunktet")
}

func (s *HandlerSuite) TestCreatePristineRejected() {
	form := createForm("09:00")
	form.Set("address.address", "")
	form.Set("address.postCode", "")
	form.Set("address.city", "")
	rr := s.do(http.MethodPost, "/create", form)
	s.Require().Equal(http.StatusUnprocessableEntity, rr.Code)
}

func (s *HandlerSuite) TestCreateSaves() {
	rr := s.do(http.MethodPost, "/create", createForm("10:00"))
	s.Require().Equal(http.StatusSeeOther, rr.Code)
	s.Require().Equal("/", rr.Header().Get("Location"))

	meetings, err := s.store.GetMeetings(context.Background())
	s.Require().NoError(err)
	s.Require().Len(meetings, 13)
	created := meetings[12]
	s.Require().True(created.Draft)
	s.Require().Equal(time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC), created.End)
	s.Require().Equal(models.Address{Address: "Storgata 1", PostCode: "0155", City: "Oslo"}, created.Address)
}

func (s *HandlerSuite) TestAction() {
	rr := s.do(http.MethodPost, "/meetings/ma/action", url.Values{})
	s.Require().Equal(http.StatusSeeOther, rr.Code)
	m, err := s.store.GetMeeting(context.Background(), "ma")
	s.Require().NoError(err)
	s.Require().True(m.Archived)

	rr = s.do(http.MethodPost, "/meetings/mb/action", url.Values{})
	s.Require().Equal(http.StatusSeeOther, rr.Code)
	_, err = s.store.GetMeeting(context.Background(), "mb")
	s.Require().ErrorIs(err, models.ErrMeetingNotFound)

	rr = s.do(http.MethodPost, "/meetings/missing/action", url.Values{})
	s.Require().Equal(http.StatusNotFound, rr.Code)
}

func (s *HandlerSuite) TestICS() {
	rr := s.do(http.MethodGet, "/meetings.ics", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().Contains(rr.Header().Get("Content-Type"), "text/calendar")
	body := rr.Body.String()
	s.Require().Contains(body, "BEGIN:VCALENDAR")
	s.Require().Equal(6, strings.Count(body, "BEGIN:VEVENT"))
}

func (s *HandlerSuite) TestMetrics() {
	s.do(http.MethodGet, "/version", nil)
	rr := s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().Contains(rr.Body.String(), "boardmeetings_http_requests_total")
}
