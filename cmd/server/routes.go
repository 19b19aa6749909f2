package main

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/cotizador/internal/format"
	"github.com/Simplici0/cotizador/web"
)

type baseViewData struct {
	Authenticated  bool
	ErrorMessage   string
	SuccessMessage string
	WarningMessage string
}

var templateFuncs = template.FuncMap{
	"mxn":      format.MXN,
	"num":      format.Number,
	"integer":  format.Integer,
	"date":     format.Date,
	"dateLong": format.DateLong,
	"inks":     format.Inks,
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.authMiddleware)

	static, err := fs.Sub(web.Files, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/healthz", s.handleHealth)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/cotizaciones", http.StatusSeeOther)
	})

	r.Route("/cotizaciones", func(r chi.Router) {
		r.Get("/", s.handleQuotesList)
		r.Post("/", s.handleQuoteCreate)
		r.Get("/nueva", s.handleQuoteNew)
		r.Post("/calcular", s.handleQuoteCalculate)
		r.Get("/export.xlsx", s.handleQuotesExport)
		r.Get("/{id}", s.handleQuoteDetail)
		r.Post("/{id}/eliminar", s.handleQuoteDelete)
		r.Get("/{id}/pdf", s.handleQuotePDF)
		r.Get("/{id}/plano.pdf", s.handleDrawingPDF)
		r.Get("/{id}/plano.svg", s.handleDrawingSVG)
	})

	r.Get("/configuracion", s.handleSettingsForm)
	r.Post("/configuracion/empresa", s.handleCompanySubmit)
	r.Post("/configuracion/precios", s.handlePricesSubmit)

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" || r.URL.Path == "/healthz" || strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		if !s.auth.isAuthenticated(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.log.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.auth.isAuthenticated(r) {
		http.Redirect(w, r, "/cotizaciones", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, r, http.StatusOK, "login.html", &baseViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if !s.auth.validatePIN(r.FormValue("pin")) {
		s.log.Warn("rejected login attempt", zap.String("remote", r.RemoteAddr))
		s.renderTemplate(w, r, http.StatusUnauthorized, "login.html", &baseViewData{ErrorMessage: "PIN incorrecto. Intenta de nuevo."})
		return
	}

	s.auth.setSessionCookie(w)
	http.Redirect(w, r, "/cotizaciones", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// viewData is implemented by every page model through its embedded baseViewData.
type viewData interface {
	base() *baseViewData
}

func (b *baseViewData) base() *baseViewData { return b }

func (s *server) renderTemplate(w http.ResponseWriter, r *http.Request, status int, page string, data viewData) {
	data.base().Authenticated = s.auth.isAuthenticated(r)

	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(web.Files,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		s.log.Error("failed to parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
