package storage

import (
	"context"
	"testing"
)

func TestJoinPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"bare host", "https://cdn.example.com", "players/1/a.png", "https://cdn.example.com/players/1/a.png"},
		{"path without slash", "https://cdn.example.com/media", "players/1/a.png", "https://cdn.example.com/media/players/1/a.png"},
		{"path with slash", "https://cdn.example.com/media/", "/players/1/a.png", "https://cdn.example.com/media/players/1/a.png"},
		{"empty key", "https://cdn.example.com", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := parsePublicBaseURL(tt.base)
			if err != nil {
				t.Fatalf("parse base: %v", err)
			}
			if got := joinPublicURL(base, tt.key); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParsePublicBaseURL_RejectsRelative(t *testing.T) {
	if _, err := parsePublicBaseURL("cdn.example.com/media"); err == nil {
		t.Error("Expected error for URL without scheme")
	}
}

func TestNewR2Uploader_RequiresAllFields(t *testing.T) {
	_, err := NewR2Uploader(context.Background(), R2Config{AccountID: "acc", BucketName: "bucket"})
	if err == nil {
		t.Error("Expected error for incomplete configuration")
	}
}
