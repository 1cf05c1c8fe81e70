package web

import (
	"context"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vbonduro/rubysdiner/internal/assets"
	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/site"
	"github.com/vbonduro/rubysdiner/internal/web/static"
)

// requestTimeout bounds every route except the long-lived /live socket.
const requestTimeout = 30 * time.Second

type Options struct {
	Site        site.Options
	CORSOrigins []string
	// Live serves /live; nil disables live sessions.
	Live http.Handler
}

type Server struct {
	catalog    *catalog.Catalog
	opts       Options
	templates  fs.FS
	images     assets.ImageStore
	router     chi.Router
	tmplFuncs  template.FuncMap
	logger     *slog.Logger
	httpServer *http.Server
}

func NewServer(cat *catalog.Catalog, tmpl fs.FS, images assets.ImageStore, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		catalog:   cat,
		opts:      opts,
		templates: tmpl,
		images:    images,
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"year": func() int { return time.Now().Year() },
		},
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler { return requestLogger(s.logger, next) })
	r.Use(securityHeaders)

	if s.opts.Live != nil {
		r.Method(http.MethodGet, "/live", s.opts.Live)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/", s.handleIndex)
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get(site.PartialMenuPath+"{category}", s.handleMenuPartial)
		r.Post(site.ReservationPath, s.handleReservation)

		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))
		r.Get("/assets/images/*", s.handleImage)

		r.Group(func(r chi.Router) {
			origins := s.opts.CORSOrigins
			if len(origins) == 0 {
				origins = []string{"*"}
			}
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
			r.Get("/api/menu", s.handleMenuAPI)
			r.Get("/api/menu/{category}", s.handleMenuCategoryAPI)
		})
	})

	return r
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com https://cdnjs.cloudflare.com; "+
				"font-src https://fonts.gstatic.com https://cdnjs.cloudflare.com; "+
				"img-src 'self' data: https:; "+
				"connect-src 'self' ws: wss:")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs every request once it has been served. The wrapped
// writer keeps http.Hijacker so websocket upgrades still work.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w io.Writer, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		return err
	}
	if rw, ok := w.(http.ResponseWriter); ok {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses and executes a single named partial template.
// The file must contain exactly one {{define "name"}}...{{end}} block.
func (s *Server) renderPartial(w http.ResponseWriter, file string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	basename := file
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		basename = file[idx+1:]
	}
	for _, t := range tmpl.Templates() {
		if n := t.Name(); n != "" && n != basename {
			return t.Execute(w, data)
		}
	}
	return tmpl.ExecuteTemplate(w, basename, data)
}
