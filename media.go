package videogen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EncodedMedia is a user-supplied file normalized for transport: the raw
// bytes base64-encoded, with no data-URL framing.
type EncodedMedia struct {
	// Name is the originating file name, kept for preview rendering
	// and MIME inference.
	Name string

	// MIMEType of the underlying media (e.g., "image/png", "video/mp4")
	MIMEType string

	// Payload is the standard base64 encoding of the raw bytes.
	// It never carries a data-URI scheme/mime prefix.
	Payload string
}

// Empty reports whether the media carries no payload.
func (m EncodedMedia) Empty() bool {
	return m.Payload == ""
}

// Bytes decodes the payload back to the original raw bytes.
func (m EncodedMedia) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(m.Payload)
	if err != nil {
		return nil, &ReadError{Name: m.Name, Err: fmt.Errorf("invalid base64 payload: %w", err)}
	}
	return data, nil
}

// Ingest reads r to completion and returns the transport-ready encoding.
// It fails with a ReadError if the read is aborted, errors, or yields no
// bytes. The reader is not retained.
func Ingest(ctx context.Context, r io.Reader, name string) (EncodedMedia, error) {
	if err := ctx.Err(); err != nil {
		return EncodedMedia{}, &ReadError{Name: name, Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return EncodedMedia{}, &ReadError{Name: name, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return EncodedMedia{}, &ReadError{Name: name, Err: err}
	}
	if len(data) == 0 {
		return EncodedMedia{}, &ReadError{Name: name, Err: errors.New("empty media content")}
	}

	return EncodedMedia{
		Name:     name,
		MIMEType: MIMETypeForName(name),
		Payload:  base64.StdEncoding.EncodeToString(data),
	}, nil
}

// IngestFile reads a local file and returns the transport-ready encoding.
func IngestFile(ctx context.Context, path string) (EncodedMedia, error) {
	f, err := os.Open(path)
	if err != nil {
		return EncodedMedia{}, &ReadError{Name: filepath.Base(path), Err: err}
	}
	defer f.Close()

	return Ingest(ctx, f, filepath.Base(path))
}

// ParseDataURL strips data-URI framing ("data:<mime>;base64,<payload>")
// from media arriving in data-URL form, such as a canvas export handed
// over by a web front end. The returned payload is the bare base64 body.
func ParseDataURL(s string) (EncodedMedia, error) {
	const scheme = "data:"
	if !strings.HasPrefix(s, scheme) {
		return EncodedMedia{}, &ReadError{Err: errors.New("not a data URL")}
	}

	meta, payload, ok := strings.Cut(s[len(scheme):], ",")
	if !ok {
		return EncodedMedia{}, &ReadError{Err: errors.New("malformed data URL: missing payload separator")}
	}

	mimeType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return EncodedMedia{}, &ReadError{Err: fmt.Errorf("unsupported data URL encoding %q", encoding)}
	}
	if payload == "" {
		return EncodedMedia{}, &ReadError{Err: errors.New("empty media content")}
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return EncodedMedia{}, &ReadError{Err: fmt.Errorf("invalid base64 payload: %w", err)}
	}

	return EncodedMedia{
		MIMEType: mimeType,
		Payload:  payload,
	}, nil
}

// MIMETypeForName infers a media MIME type from a file name's extension.
func MIMETypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}
