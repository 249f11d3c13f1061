package vision

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestParseDataURL(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	b64 := base64.StdEncoding.EncodeToString(payload)

	t.Run("png payload", func(t *testing.T) {
		img, err := ParseDataURL("data:image/png;base64," + b64)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Ext != "png" || img.MIMEType != "image/png" {
			t.Errorf("ext=%q mime=%q", img.Ext, img.MIMEType)
		}
		if !bytes.Equal(img.Bytes, payload) {
			t.Errorf("bytes = %v, want %v", img.Bytes, payload)
		}
	})

	t.Run("unrecognizable subtype falls back to jpeg", func(t *testing.T) {
		img, err := ParseDataURL("data:image/svg+xml;base64," + b64)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Ext != "jpeg" || img.MIMEType != "image/jpeg" {
			t.Errorf("ext=%q mime=%q, want jpeg fallback", img.Ext, img.MIMEType)
		}
	})

	t.Run("rejects non-image data urls", func(t *testing.T) {
		if _, err := ParseDataURL("data:text/plain;base64," + b64); !errors.Is(err, ErrInvalidImagePayload) {
			t.Errorf("err = %v, want ErrInvalidImagePayload", err)
		}
	})

	t.Run("rejects empty string", func(t *testing.T) {
		if _, err := ParseDataURL(""); !errors.Is(err, ErrInvalidImagePayload) {
			t.Errorf("err = %v, want ErrInvalidImagePayload", err)
		}
	})

	t.Run("rejects missing comma separator", func(t *testing.T) {
		if _, err := ParseDataURL("data:image/png;base64"); !errors.Is(err, ErrInvalidImagePayload) {
			t.Errorf("err = %v, want ErrInvalidImagePayload", err)
		}
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		if _, err := ParseDataURL("data:image/png;base64,!!not-base64!!"); !errors.Is(err, ErrInvalidImagePayload) {
			t.Errorf("err = %v, want ErrInvalidImagePayload", err)
		}
	})
}
