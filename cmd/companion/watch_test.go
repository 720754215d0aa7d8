package main

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestShouldIgnoreEvent(t *testing.T) {
	logPath := "/vault/memories.md"

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "write to log",
			event: fsnotify.Event{Name: "/vault/memories.md", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "create log",
			event: fsnotify.Event{Name: "/vault/memories.md", Op: fsnotify.Create},
			want:  false,
		},
		{
			name:  "write to cache file",
			event: fsnotify.Event{Name: "/vault/memories.index.json", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "chmod on log ignored",
			event: fsnotify.Event{Name: "/vault/memories.md", Op: fsnotify.Chmod},
			want:  true,
		},
		{
			name:  "write elsewhere",
			event: fsnotify.Event{Name: "/vault/config.yaml", Op: fsnotify.Write},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldIgnoreEvent(tt.event, logPath)
			if got != tt.want {
				t.Errorf("shouldIgnoreEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}
