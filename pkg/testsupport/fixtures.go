// Package testsupport holds helpers shared by package tests: template
// bundles, output capture and HTML fragment assertions.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/fstest"
)

// TemplatesFS builds an in-memory template bundle from name/content pairs.
func TemplatesFS(files map[string]string) fs.FS {
	bundle := make(fstest.MapFS, len(files))
	for name, content := range files {
		bundle[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return bundle
}

// MustReadFixture reads a fixture file and returns its content.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

// AssertContains fails when any fragment is missing from html.
func AssertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

// AssertNotContains fails when any fragment is present in html.
func AssertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("unexpected %q in output:\n%s", fragment, html)
		}
	}
}

// HasClass reports whether the class attribute following marker in html
// contains token. marker is usually an id attribute.
func HasClass(html, marker, token string) bool {
	idx := strings.Index(html, marker)
	if idx < 0 {
		return false
	}
	rest := html[idx:]
	start := strings.Index(rest, `class="`)
	if start < 0 {
		return false
	}
	rest = rest[start+len(`class="`):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return false
	}
	for _, field := range strings.Fields(rest[:end]) {
		if field == token {
			return true
		}
	}
	return false
}
