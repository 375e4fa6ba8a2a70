// Package file implements the upload picker: accept and size rules, the
// drop zone drag state and the committed file list.
package file

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Reason classifies a rejected file.
type Reason string

const (
	ReasonSize Reason = "size"
	ReasonType Reason = "type"
)

// ValidationError describes why a candidate file was rejected.
type ValidationError struct {
	File    model.File
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("file %q: %s", e.File.Name, e.Message)
}

// Rules are the constraints a candidate must satisfy.
type Rules struct {
	Accept  string
	MaxSize int64
}

// RulesFor reads the rules of a file input.
func RulesFor(input *model.FileInput) Rules {
	if input == nil {
		return Rules{}
	}
	return Rules{Accept: input.Accept, MaxSize: input.MaxSize}
}

// Validate checks size first, then the accept list. It returns nil when the
// file is acceptable.
func Validate(f model.File, rules Rules) *ValidationError {
	if rules.MaxSize > 0 && f.Size > rules.MaxSize {
		return &ValidationError{
			File:    f,
			Reason:  ReasonSize,
			Message: fmt.Sprintf("File size exceeds %sMB", megabytes(rules.MaxSize)),
		}
	}
	if !Accepts(rules.Accept, f) {
		return &ValidationError{
			File:    f,
			Reason:  ReasonType,
			Message: "File type not accepted. Allowed: " + rules.Accept,
		}
	}
	return nil
}

// Accepts matches a file against a comma separated accept list of MIME
// types, "type/*" groups, ".ext" extensions and "*". An empty list accepts
// everything.
func Accepts(accept string, f model.File) bool {
	if strings.TrimSpace(accept) == "" {
		return true
	}
	mime := strings.ToLower(strings.TrimSpace(f.Type))
	ext := strings.ToLower(Extension(f.Name))
	for _, entry := range strings.Split(accept, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "":
			continue
		case entry == "*" || entry == "*/*":
			return true
		case strings.HasPrefix(entry, "."):
			if ext != "" && entry == ext {
				return true
			}
		case strings.HasSuffix(entry, "/*"):
			if mime != "" && strings.HasPrefix(mime, strings.TrimSuffix(entry, "*")) {
				return true
			}
		case entry == mime:
			return true
		}
	}
	return false
}

// Extension returns "." plus the text after the last dot of name, or ""
// when the name has no dot.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx:]
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger used to report rejected files.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Selector) { s.log = logger }
}

// Selector is the state of one file field.
type Selector struct {
	input *model.FileInput
	value *binding.Value[[]model.File]
	log   zerolog.Logger

	dragging   bool
	rejections []*ValidationError
}

// New constructs a selector committing to value.
func New(input *model.FileInput, value *binding.Value[[]model.File], opts ...Option) *Selector {
	if input == nil {
		input = &model.FileInput{}
	}
	if value == nil {
		value = binding.NewUncontrolled[[]model.File](nil, nil)
	}
	s := &Selector{input: input, value: value, log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Files returns the committed files.
func (s *Selector) Files() []model.File {
	return s.value.Get()
}

// Dragging reports whether a drag hovers the drop zone.
func (s *Selector) Dragging() bool {
	return s.dragging
}

// Error returns the first rejection message of the latest selection.
func (s *Selector) Error() string {
	if len(s.rejections) == 0 {
		return ""
	}
	return s.rejections[0].Message
}

// Rejections returns every rejection of the latest selection.
func (s *Selector) Rejections() []*ValidationError {
	return append([]*ValidationError(nil), s.rejections...)
}

// DragEnter marks the drop zone active.
func (s *Selector) DragEnter() {
	if !s.input.Disabled {
		s.dragging = true
	}
}

// DragOver keeps the drop zone active.
func (s *Selector) DragOver() {
	s.DragEnter()
}

// DragLeave clears the active state.
func (s *Selector) DragLeave() {
	s.dragging = false
}

// Drop ends a drag and selects the dropped files.
func (s *Selector) Drop(files []model.File) []model.File {
	s.dragging = false
	return s.Select(files)
}

// Select validates candidates and commits the accepted ones. Multiple mode
// commits every valid file, or nil when none passed. Single mode commits
// the first candidate only when it is valid. It returns what was committed.
func (s *Selector) Select(files []model.File) []model.File {
	if s.input.Disabled || len(files) == 0 {
		return nil
	}
	s.rejections = nil
	rules := RulesFor(s.input)

	if !s.input.Multiple {
		first := files[0]
		if err := Validate(first, rules); err != nil {
			s.reject(err)
			return nil
		}
		committed := []model.File{first}
		s.value.Set(committed)
		return committed
	}

	var valid []model.File
	for _, f := range files {
		if err := Validate(f, rules); err != nil {
			s.reject(err)
			continue
		}
		valid = append(valid, f)
	}
	s.value.Set(valid)
	return valid
}

// Remove drops the file at index i, keeping order. An emptied list commits
// nil.
func (s *Selector) Remove(i int) {
	current := s.value.Get()
	if i < 0 || i >= len(current) {
		return
	}
	next := make([]model.File, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	if len(next) == 0 {
		next = nil
	}
	s.value.Set(next)
}

func (s *Selector) reject(err *ValidationError) {
	s.rejections = append(s.rejections, err)
	s.log.Debug().
		Str("file", err.File.Name).
		Str("reason", string(err.Reason)).
		Msg("file rejected")
}

// Hint renders the drop zone footer: "Accepted: x" or "Any file type",
// followed by " (Max: N.NNMB)" when a size limit applies.
func Hint(input *model.FileInput) string {
	if input == nil {
		input = &model.FileInput{}
	}
	hint := "Any file type"
	if strings.TrimSpace(input.Accept) != "" {
		hint = "Accepted: " + input.Accept
	}
	if input.MaxSize > 0 {
		hint += fmt.Sprintf(" (Max: %sMB)", megabytes(input.MaxSize))
	}
	return hint
}

// Prompt is the drop zone call to action.
func Prompt(input *model.FileInput) string {
	if input != nil && input.Label != "" {
		return input.Label
	}
	return "Click to upload or drag and drop"
}

// FormatSize renders a byte count as kilobytes for the file list.
func FormatSize(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}

func megabytes(size int64) string {
	return fmt.Sprintf("%.2f", float64(size)/1024/1024)
}
