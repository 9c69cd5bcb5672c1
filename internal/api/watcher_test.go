package api

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestClassifyChange(t *testing.T) {
	fw := &FileWatcher{dataDir: "/project/.mpcproject"}

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		wantKind FileChangeKind
		wantType FileChangeType
	}{
		{
			name:     "project created",
			path:     "/project/.mpcproject/project.json",
			op:       fsnotify.Create,
			wantKind: FileChangeKindProject,
			wantType: FileChangeCreated,
		},
		{
			name:     "project modified",
			path:     "/project/.mpcproject/project.json",
			op:       fsnotify.Write,
			wantKind: FileChangeKindProject,
			wantType: FileChangeModified,
		},
		{
			name:     "project deleted",
			path:     "/project/.mpcproject/project.json",
			op:       fsnotify.Remove,
			wantKind: FileChangeKindProject,
			wantType: FileChangeDeleted,
		},
		{
			name:     "project renamed (treated as deleted)",
			path:     "/project/.mpcproject/project.json",
			op:       fsnotify.Rename,
			wantKind: FileChangeKindProject,
			wantType: FileChangeDeleted,
		},
		{
			name:     "settings modified",
			path:     "/project/.mpcproject/settings.toml",
			op:       fsnotify.Write,
			wantKind: FileChangeKindSettings,
			wantType: FileChangeModified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: tt.path, Op: tt.op}
			change := fw.classifyChange(event)

			if change.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", change.Kind, tt.wantKind)
			}
			if change.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", change.Type, tt.wantType)
			}
		})
	}
}

func TestClassifyChange_Unknown(t *testing.T) {
	fw := &FileWatcher{dataDir: "/project/.mpcproject"}

	tests := []struct {
		name string
		path string
	}{
		{"random file", "/project/.mpcproject/random.txt"},
		{"nested file", "/project/.mpcproject/sub/project.json"},
		{"data dir itself", "/project/.mpcproject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: tt.path, Op: fsnotify.Write}
			change := fw.classifyChange(event)

			if change.Kind != FileChangeKindUnknown {
				t.Errorf("Kind = %q, want %q", change.Kind, FileChangeKindUnknown)
			}
		})
	}
}

func TestClassifyChange_CrossPlatform(t *testing.T) {
	dataDir := filepath.Join("/project", ".mpcproject")
	fw := &FileWatcher{dataDir: dataDir}

	event := fsnotify.Event{
		Name: filepath.Join(dataDir, "project.json"),
		Op:   fsnotify.Create,
	}
	change := fw.classifyChange(event)

	if change.Kind != FileChangeKindProject {
		t.Errorf("Kind = %q, want %q", change.Kind, FileChangeKindProject)
	}
}

// mockSubscriber implements FileWatcherSubscriber for testing
type mockSubscriber struct {
	changes []FileChange
}

func (m *mockSubscriber) OnFileChange(change FileChange) {
	m.changes = append(m.changes, change)
}

func TestFileWatcher_Subscribe(t *testing.T) {
	fw := &FileWatcher{
		subscribers: []FileWatcherSubscriber{},
	}

	sub1 := &mockSubscriber{}
	sub2 := &mockSubscriber{}

	fw.Subscribe(sub1)
	fw.Subscribe(sub2)

	if len(fw.subscribers) != 2 {
		t.Errorf("Expected 2 subscribers, got %d", len(fw.subscribers))
	}
}

func TestFileWatcher_Unsubscribe(t *testing.T) {
	sub1 := &mockSubscriber{}
	sub2 := &mockSubscriber{}

	fw := &FileWatcher{
		subscribers: []FileWatcherSubscriber{sub1, sub2},
	}

	fw.Unsubscribe(sub1)

	if len(fw.subscribers) != 1 {
		t.Errorf("Expected 1 subscriber, got %d", len(fw.subscribers))
	}
	if fw.subscribers[0] != sub2 {
		t.Error("Wrong subscriber remained")
	}
}

func TestFileWatcher_StoppedPreventsRestart(t *testing.T) {
	fw := &FileWatcher{
		stopped: true,
	}

	err := fw.Start()
	if err == nil {
		t.Error("Expected error when starting stopped watcher")
	}
}
