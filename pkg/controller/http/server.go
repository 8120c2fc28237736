package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	locale model.Locale
}

type Options func(*Server)

// WithLocale sets the tokens used for rendered reports
func WithLocale(locale model.Locale) Options {
	return func(s *Server) {
		s.locale = locale
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
		locale: model.DefaultLocale(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Get("/", s.listCases)
			r.Post("/", s.createCase)
			r.Route("/{caseID}", func(r chi.Router) {
				r.Get("/", s.getCase)
				r.Delete("/", s.deleteCase)
				r.Patch("/sections/{section}", s.updateSection)
				r.Post("/derive", s.refreshDerived)
				r.Post("/summary", s.generateSummary)
				r.Get("/report", s.getReport)
				r.Get("/completion", s.getCompletion)
			})
		})

		r.Route("/active", func(r chi.Router) {
			r.Get("/", s.getActive)
			r.Put("/", s.selectActive)
			r.Delete("/", s.clearActive)
		})

		r.Get("/dashboard", s.getDashboard)
		r.Get("/suggestions", s.getSuggestions)
		r.Get("/status", s.getStatus)

		r.Route("/branding", func(r chi.Router) {
			r.Get("/", s.getBranding)
			r.Put("/", s.saveBranding)
			r.Post("/logo", s.uploadLogo)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger binds a logger carrying the request ID to the request
// context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logging.With(r.Context(), logger)))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
