package storage

import (
	"context"
	"testing"
)

func TestExtractAssetID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "well-formed url",
			url:  "https://cdn.example.com/him-articles/abc123-cover.jpg",
			want: "him-articles/abc123-cover",
		},
		{
			name: "nested path before folder",
			url:  "https://cdn.example.com/v1/bucket/him-articles/x.png",
			want: "him-articles/x",
		},
		{
			name: "filename with multiple dots keeps all but last segment",
			url:  "https://cdn.example.com/him-articles/a.b.c.jpg",
			want: "him-articles/a.b.c",
		},
		{name: "folder missing", url: "https://cdn.example.com/other/abc.jpg", want: ""},
		{name: "no extension dot after folder", url: "https://host/him-articles/abc", want: ""},
		{name: "empty", url: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractAssetID(tt.url); got != tt.want {
				t.Fatalf("ExtractAssetID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	c, err := New("", "", "", "", "bucket", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil client without endpoint/credentials")
	}

	url, err := c.Upload(context.Background(), []byte("x"), "a.png", "image/png")
	if err != nil || url != "" {
		t.Fatalf("nil upload = (%q, %v), want empty no-op", url, err)
	}
	if err := c.Delete(context.Background(), "whatever"); err != nil {
		t.Fatalf("nil delete: %v", err)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"cover image.png", "cover-image.png"},
		{"../../etc/passwd", "passwd"},
		{"C:\\photos\\pic.jpg", "pic.jpg"},
		{"", "image"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Fatalf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
