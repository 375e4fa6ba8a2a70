package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle. Template names are
// relative to its root, e.g. "templates/input.tmpl".
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
