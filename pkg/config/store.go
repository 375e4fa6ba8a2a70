package config

import (
	"sync"

	"github.com/goliatone/go-formkit/pkg/style"
)

// Store is the mutable settings holder shared by renderers. It is created
// explicitly and lives until the caller drops or resets it.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore constructs a store seeded with the optional initial settings.
func NewStore(initial ...Settings) *Store {
	store := &Store{}
	for _, patch := range initial {
		store.Set(patch)
	}
	return store
}

// Set merges the non-nil sections of patch into the current settings. A
// supplied section replaces the stored one wholesale. Sections are copied,
// so later changes to patch do not reach the store.
func (s *Store) Set(patch Settings) {
	if s == nil {
		return
	}
	next := patch.clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if next.Defaults != nil {
		s.settings.Defaults = next.Defaults
	}
	if next.Button != nil {
		s.settings.Button = next.Button
	}
	if next.Label != nil {
		s.settings.Label = next.Label
	}
	if next.Validation != nil {
		s.settings.Validation = next.Validation
	}
	if next.Layout != nil {
		s.settings.Layout = next.Layout
	}
	if next.ClassNames != nil {
		s.settings.ClassNames = next.ClassNames
	}
}

// Get returns a copy of the current settings. Mutating the copy does not
// affect the store.
func (s *Store) Get() Settings {
	if s == nil {
		return Settings{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.clone()
}

// Reset clears every section.
func (s *Store) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.settings = Settings{}
	s.mu.Unlock()
}

func (s Settings) clone() Settings {
	out := Settings{}
	if s.Defaults != nil {
		section := *s.Defaults
		section.FullWidth = clonePtr(section.FullWidth)
		section.Size = cloneResponsive(section.Size)
		out.Defaults = &section
	}
	if s.Button != nil {
		section := *s.Button
		section.Size = cloneResponsive(section.Size)
		out.Button = &section
	}
	if s.Label != nil {
		section := *s.Label
		section.Show = clonePtr(section.Show)
		section.Required = clonePtr(section.Required)
		out.Label = &section
	}
	if s.Validation != nil {
		section := *s.Validation
		section.ShowError = clonePtr(section.ShowError)
		section.ShowSuccess = clonePtr(section.ShowSuccess)
		out.Validation = &section
	}
	if s.Layout != nil {
		section := *s.Layout
		section.Gap = cloneResponsive(section.Gap)
		section.Columns = cloneResponsive(section.Columns)
		out.Layout = &section
	}
	if s.ClassNames != nil {
		section := *s.ClassNames
		out.ClassNames = &section
	}
	return out
}

func cloneResponsive[T comparable](r style.Responsive[T]) style.Responsive[T] {
	return style.Responsive[T]{
		Base: clonePtr(r.Base),
		SM:   clonePtr(r.SM),
		MD:   clonePtr(r.MD),
		LG:   clonePtr(r.LG),
		XL:   clonePtr(r.XL),
		XXL:  clonePtr(r.XXL),
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
