package videogen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestIngest_RoundTrip(t *testing.T) {
	original := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0xFF, 0xFE}

	media, err := Ingest(context.Background(), bytes.NewReader(original), "frame.png")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if media.MIMEType != "image/png" {
		t.Errorf("expected image/png, got %q", media.MIMEType)
	}
	if strings.HasPrefix(media.Payload, "data:") {
		t.Error("payload must not carry a data-URL prefix")
	}

	decoded, err := media.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip mismatch: got %v, want %v", decoded, original)
	}
}

func TestIngest_Failures(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		run  func(ctx context.Context) error
	}{
		{
			name: "empty content",
			ctx:  context.Background(),
			run: func(ctx context.Context) error {
				_, err := Ingest(ctx, bytes.NewReader(nil), "empty.png")
				return err
			},
		},
		{
			name: "reader error",
			ctx:  context.Background(),
			run: func(ctx context.Context) error {
				_, err := Ingest(ctx, iotest.ErrReader(errors.New("disk gone")), "broken.png")
				return err
			},
		},
		{
			name: "aborted context",
			ctx:  cancelled,
			run: func(ctx context.Context) error {
				_, err := Ingest(ctx, bytes.NewReader([]byte("data")), "late.png")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(tt.ctx); !IsReadError(err) {
				t.Errorf("want ReadError, got %v", err)
			}
		})
	}
}

func TestIngestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	content := []byte("not really an mp4 but good enough")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	media, err := IngestFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if media.Name != "clip.mp4" {
		t.Errorf("expected base name, got %q", media.Name)
	}
	if media.MIMEType != "video/mp4" {
		t.Errorf("expected video/mp4, got %q", media.MIMEType)
	}

	decoded, err := media.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(decoded, content) {
		t.Error("file round trip mismatch")
	}

	if _, err := IngestFile(context.Background(), filepath.Join(dir, "missing.png")); !IsReadError(err) {
		t.Errorf("missing file: want ReadError, got %v", err)
	}
}

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		mime    string
	}{
		{
			name:  "valid png data URL",
			input: "data:image/png;base64,ZmFrZS1pbWFnZQ==",
			mime:  "image/png",
		},
		{
			name:    "missing scheme",
			input:   "image/png;base64,ZmFrZQ==",
			wantErr: true,
		},
		{
			name:    "missing payload separator",
			input:   "data:image/png;base64",
			wantErr: true,
		},
		{
			name:    "not base64 encoded",
			input:   "data:text/plain,hello",
			wantErr: true,
		},
		{
			name:    "invalid base64 payload",
			input:   "data:image/png;base64,%%%",
			wantErr: true,
		},
		{
			name:    "empty payload",
			input:   "data:image/png;base64,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media, err := ParseDataURL(tt.input)
			if tt.wantErr {
				if !IsReadError(err) {
					t.Errorf("want ReadError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDataURL: %v", err)
			}
			if media.MIMEType != tt.mime {
				t.Errorf("mime: got %q, want %q", media.MIMEType, tt.mime)
			}
			if strings.Contains(media.Payload, ",") || strings.HasPrefix(media.Payload, "data:") {
				t.Error("payload must be the bare base64 body")
			}
		})
	}
}

func TestMIMETypeForName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.JPG", "image/jpeg"},
		{"frame.png", "image/png"},
		{"anim.webp", "image/webp"},
		{"clip.mp4", "video/mp4"},
		{"clip.mov", "video/quicktime"},
		{"mystery.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := MIMETypeForName(tt.name); got != tt.want {
			t.Errorf("MIMETypeForName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
