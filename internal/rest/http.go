package rest

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	log     *logrus.Entry
	app     App
	address string
	version string
	decoder *schema.Decoder
	limiter *RateLimiter
	pages   map[string]*template.Template
	now     func() time.Time
}

func NewServer(log *logrus.Logger, app App, address, version string) *Server {
	s := Server{
		log:     log.WithField("component", "rest"),
		app:     app,
		address: address,
		version: version,
		decoder: newFormDecoder(app.Location()),
		limiter: NewRateLimiter(5, 10),
		pages:   mustLoadPages(),
		now:     time.Now,
	}
	return &s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Get("/version", s.versionHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.listHandler)
	r.Get("/meetings.ics", s.icsHandler)
	r.Route("/create", func(r chi.Router) {
		r.Get("/", s.createPageHandler)
		r.With(s.rateLimit).Post("/", s.createHandler)
		r.Post("/preview", s.previewHandler)
	})
	r.With(s.rateLimit).Post("/meetings/{id}/action", s.actionHandler)
	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warnf("err during shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
