// Package httpapi serves form documents over HTTP: rendered forms, form
// posts decoded with the widget rules, and the JSON and websocket endpoints
// interactive widgets call back into.
package httpapi

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets/checkbox"
)

const maxMemory = 32 << 20

// Option configures a Server.
type Option func(*Server)

// WithLogger records requests and failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithClock fixes "today" for calendar grids.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTickInterval overrides the one second countdown step.
func WithTickInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithHidden adds hidden fields, such as a CSRF token, to every rendered
// form.
func WithHidden(fn func(*http.Request) []form.HiddenField) Option {
	return func(s *Server) {
		s.hidden = fn
	}
}

// WithOriginPatterns lists the hosts allowed to open websockets from
// another origin.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) {
		s.origins = append([]string(nil), patterns...)
	}
}

// Server holds the registered documents and the renderer they share.
type Server struct {
	mu   sync.RWMutex
	docs map[string]*schema.Document

	renderer *render.Renderer
	log      zerolog.Logger
	now      func() time.Time
	tick     time.Duration
	hidden   func(*http.Request) []form.HiddenField
	origins  []string
}

// New constructs a Server rendering with renderer.
func New(renderer *render.Renderer, opts ...Option) (*Server, error) {
	if renderer == nil {
		return nil, errors.New("httpapi: renderer is nil")
	}
	s := &Server{
		docs:     make(map[string]*schema.Document),
		renderer: renderer,
		log:      zerolog.Nop(),
		now:      time.Now,
		tick:     time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Register makes doc available under its name, replacing any previous
// document of that name.
func (s *Server) Register(doc *schema.Document) error {
	if doc == nil {
		return errors.New("httpapi: document is nil")
	}
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return errors.New("httpapi: document name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; ok {
		s.log.Debug().Str("form", name).Msg("replacing form document")
	}
	s.docs[name] = doc
	return nil
}

// Names lists the registered documents, sorted.
func (s *Server) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) document(name string) (*schema.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[name]
	return doc, ok
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recovery(s.log))
	r.Use(RequestLogging(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/forms", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"forms": s.Names()})
	})
	r.Get("/forms/{name}", s.handleForm)
	r.Post("/forms/{name}", s.handleSubmit)

	r.Route("/widgets", func(r chi.Router) {
		r.Get("/dropdown/{form}/{field}", s.handleDropdown)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/otp/countdown", s.handleCountdown)
	})
	return r
}

// handleForm renders a document, or returns it as JSON with format=json.
// The fields, tags and sections parameters select a subset.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}
	doc = subsetOf(doc, r)

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, doc)
		return
	}
	s.renderForm(w, r, http.StatusOK, doc, form.NewMemoryControl(nil), form.ErrorMapping{})
}

// handleSubmit decodes a post. Valid posts answer with the typed values;
// invalid ones re-render the form with errors, or answer JSON errors when
// the client asks for JSON.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid form body: %v", err))
		return
	}

	fields := doc.Fields()
	var files map[string][]*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File
	}
	sub := form.Decode(fields, r.PostForm, files)

	if sub.Valid() {
		s.log.Info().Str("form", doc.Name).Int("values", len(sub.Values)).Msg("form accepted")
		writeJSON(w, http.StatusOK, submitResponse{Form: doc.Name, Values: sub.Values})
		return
	}

	s.log.Debug().Str("form", doc.Name).Interface("errors", sub.Errors.Fields).Msg("form rejected")
	if wantsJSON(r) {
		writeJSON(w, http.StatusUnprocessableEntity, submitResponse{Form: doc.Name, Errors: &sub.Errors})
		return
	}
	control := form.NewMemoryControl(submittedValues(fields, r))
	s.renderForm(w, r, http.StatusUnprocessableEntity, doc, control, sub.Errors)
}

type submitResponse struct {
	Form   string             `json:"form"`
	Values map[string]any     `json:"values,omitempty"`
	Errors *form.ErrorMapping `json:"errors,omitempty"`
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, doc *schema.Document, control form.Control, errs form.ErrorMapping) {
	opts := schema.BuildOptions{
		Renderer: s.renderer,
		Control:  control,
		Errors:   errs,
	}
	if s.hidden != nil {
		opts.Hidden = s.hidden(r)
	}
	f := doc.Build(opts)
	f.Logger = s.log
	if f.Action == "" {
		f.Action = r.URL.Path
	}

	html, err := f.Render(r.Context())
	if err != nil {
		s.log.Error().Err(err).Str("form", doc.Name).Msg("render form")
		writeError(w, http.StatusInternalServerError, "could not render form")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*schema.Document, bool) {
	name := chi.URLParam(r, "name")
	doc, ok := s.document(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("form %q not found", name))
		return nil, false
	}
	return doc, true
}

// subsetOf applies the subset query parameters to a shallow copy so the
// registered document is left untouched.
func subsetOf(doc *schema.Document, r *http.Request) *schema.Document {
	q := r.URL.Query()
	subset := schema.ParseSubset(q.Get("fields"), q.Get("tags"), q.Get("sections"))
	if subset.Empty() {
		return doc
	}
	clone := *doc
	schema.ApplySubset(&clone, subset)
	return &clone
}

// submittedValues rebuilds the control state from a post so a rejected form
// shows what the user typed.
func submittedValues(fields []model.Field, r *http.Request) map[string]any {
	values := make(map[string]any, len(fields))
	for _, field := range fields {
		raw := r.PostForm.Get(field.Name)
		switch field.Kind() {
		case model.KindCheckbox:
			values[field.Name] = checkbox.ParseBool(raw)
		case model.KindFile:
		default:
			if raw != "" {
				values[field.Name] = raw
			}
		}
	}
	return values
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
