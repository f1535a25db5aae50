package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosterURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		size string
		want string
	}{
		{name: "explicit size", path: "/abc.jpg", size: "w92", want: "https://image.tmdb.org/t/p/w92/abc.jpg"},
		{name: "default size", path: "/abc.jpg", size: "", want: "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{name: "original", path: "/abc.jpg", size: "original", want: "https://image.tmdb.org/t/p/original/abc.jpg"},
		{name: "backdrop-only size falls back", path: "/abc.jpg", size: "w1280", want: "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{name: "empty path", path: "", size: "w92", want: PlaceholderImage},
		{name: "path without slash", path: "abc.jpg", size: "w185", want: "https://image.tmdb.org/t/p/w185/abc.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PosterURL(tt.path, tt.size))
		})
	}
}

func TestBackdropURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		size string
		want string
	}{
		{name: "default size", path: "/bg.jpg", size: "", want: "https://image.tmdb.org/t/p/w1280/bg.jpg"},
		{name: "w300", path: "/bg.jpg", size: "w300", want: "https://image.tmdb.org/t/p/w300/bg.jpg"},
		{name: "poster-only size falls back", path: "/bg.jpg", size: "w92", want: "https://image.tmdb.org/t/p/w1280/bg.jpg"},
		{name: "empty path", path: "", size: "", want: PlaceholderImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BackdropURL(tt.path, tt.size))
		})
	}
}
