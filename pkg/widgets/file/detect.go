package file

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/goliatone/go-formkit/pkg/model"
)

// DetectType sniffs the MIME type of content, without parameters.
func DetectType(content []byte) string {
	return baseType(mimetype.Detect(content).String())
}

// DetectReader sniffs the MIME type from the head of r.
func DetectReader(r io.Reader) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("file: detect type: %w", err)
	}
	return baseType(mtype.String()), nil
}

// FromHeader builds the metadata of an uploaded part. The type comes from
// the content rather than the client supplied header.
func FromHeader(header *multipart.FileHeader) (model.File, error) {
	if header == nil {
		return model.File{}, fmt.Errorf("file: nil header")
	}
	f, err := header.Open()
	if err != nil {
		return model.File{}, fmt.Errorf("file: open %q: %w", header.Filename, err)
	}
	defer f.Close()

	mtype, err := DetectReader(f)
	if err != nil {
		return model.File{}, err
	}
	return model.File{Name: header.Filename, Size: header.Size, Type: mtype}, nil
}

func baseType(raw string) string {
	if idx := strings.Index(raw, ";"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}
