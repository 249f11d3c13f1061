package gcs

import "testing"

func TestPathFromURL(t *testing.T) {
	s := NewStorage(nil, "car-images")

	t.Run("round trips through PublicURL", func(t *testing.T) {
		url := s.PublicURL("cars/abc/image-1-0.png")
		path, ok := s.PathFromURL(url)
		if !ok || path != "cars/abc/image-1-0.png" {
			t.Errorf("path=%q ok=%v", path, ok)
		}
	})

	t.Run("foreign urls are rejected", func(t *testing.T) {
		if _, ok := s.PathFromURL("https://storage.googleapis.com/other-bucket/cars/x.png"); ok {
			t.Error("expected rejection for other bucket")
		}
	})

	t.Run("bucket url without object path", func(t *testing.T) {
		if _, ok := s.PathFromURL("https://storage.googleapis.com/car-images/"); ok {
			t.Error("expected rejection for empty object path")
		}
	})
}
