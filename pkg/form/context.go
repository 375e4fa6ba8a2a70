// Package form composes fields into a form. A Form installs a Context in
// the request context so nested sections and inputs resolve the control,
// the error mapping and the renderer without threading them through every
// node.
package form

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/render"
)

// ErrOutsideForm reports a form component rendered without an enclosing
// Form.
var ErrOutsideForm = errors.New("form: components must be rendered within a Form")

// Context is the state shared by the nodes of one form render.
type Context struct {
	Control  Control
	Errors   ErrorMapping
	Renderer *render.Renderer
	Settings config.Settings
	Logger   zerolog.Logger
}

type contextKey struct{}

// WithContext returns ctx carrying fc.
func WithContext(ctx context.Context, fc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, fc)
}

// FromContext returns the enclosing form context.
func FromContext(ctx context.Context) (*Context, bool) {
	if ctx == nil {
		return nil, false
	}
	fc, ok := ctx.Value(contextKey{}).(*Context)
	return fc, ok && fc != nil
}

// MustFromContext returns the enclosing form context and panics with
// ErrOutsideForm when there is none.
func MustFromContext(ctx context.Context) *Context {
	fc, ok := FromContext(ctx)
	if !ok {
		panic(ErrOutsideForm)
	}
	return fc
}
