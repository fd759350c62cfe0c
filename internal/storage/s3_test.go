package storage

import (
	"testing"

	"github.com/BruksfildServices01/studio-booking/internal/config"
)

func TestS3StoreURLs(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "aws",
			cfg:  config.Config{S3Bucket: "studio", S3Region: "us-east-1"},
			want: "https://studio.s3.us-east-1.amazonaws.com/equipment/a.webp",
		},
		{
			name: "compatible endpoint",
			cfg:  config.Config{S3Bucket: "studio", S3Region: "auto", S3Endpoint: "http://localhost:9000/"},
			want: "http://localhost:9000/studio/equipment/a.webp",
		},
		{
			name: "cdn",
			cfg:  config.Config{S3Bucket: "studio", S3Region: "us-east-1", S3PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/equipment/a.webp",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewS3Store(&tc.cfg)
			got := s.URL("equipment/a.webp")
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			key, ok := s.KeyFromURL(got)
			if !ok || key != "equipment/a.webp" {
				t.Fatalf("round trip failed: %q %v", key, ok)
			}
		})
	}

	s := NewS3Store(&config.Config{S3Bucket: "studio", S3Region: "us-east-1"})
	if _, ok := s.KeyFromURL("https://elsewhere.example.com/x.png"); ok {
		t.Fatalf("foreign urls must not map to keys")
	}
}
