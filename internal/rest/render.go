package rest

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/pershin-daniil/BoardMeetings/pkg/meetinglist"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

//go:embed templates
var templatesFS embed.FS

// isoLayout matches what browsers print for Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

var funcMap = template.FuncMap{
	"action": meetinglist.ActionFor,
	"iso": func(t time.Time) string {
		return t.UTC().Format(isoLayout)
	},
	"dateValue": func(t time.Time) string {
		return t.Format(models.DateLayout)
	},
}

func mustLoadPages() map[string]*template.Template {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"list.html", "create.html"} {
		pages[name] = template.Must(template.New(name).Funcs(funcMap).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name))
	}
	return pages
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	tmpl, ok := s.pages[name]
	if !ok {
		s.log.Warnf("template %s not found", name)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		s.log.Warnf("err executing template %s: %v", name, err)
	}
}
