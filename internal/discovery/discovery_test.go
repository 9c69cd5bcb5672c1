package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/config"
)

func TestDiscoverProjectFrom_FindsDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "myproject")
	dataDir := filepath.Join(projectDir, config.DefaultDataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(projectDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.ProjectRoot != projectDir {
		t.Errorf("expected ProjectRoot %q, got %q", projectDir, result.ProjectRoot)
	}
}

func TestDiscoverProjectFrom_WalksUpDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "myproject")
	dataDir := filepath.Join(projectDir, config.DefaultDataDir)
	deepDir := filepath.Join(projectDir, "src", "deep", "nested")

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(deepDir, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(deepDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.ProjectRoot != projectDir {
		t.Errorf("expected ProjectRoot %q, got %q", projectDir, result.ProjectRoot)
	}
}

func TestDiscoverProjectFrom_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	emptyDir := filepath.Join(tmpDir, "empty")
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(emptyDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for uninitialized directory, got %+v", result)
	}
}

func TestDiscoverProjectFrom_IgnoresRegularFile(t *testing.T) {
	// A plain file named like the data directory does not mark a project.
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "myproject")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, config.DefaultDataDir), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(projectDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
}

func TestDiscoverProjectFrom_NestedProjects(t *testing.T) {
	// Inner project should be found first when starting from within it
	tmpDir := t.TempDir()
	outerProject := filepath.Join(tmpDir, "outer")
	innerProject := filepath.Join(outerProject, "inner")

	if err := os.MkdirAll(filepath.Join(outerProject, config.DefaultDataDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(innerProject, config.DefaultDataDir), 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(innerProject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.ProjectRoot != innerProject {
		t.Errorf("expected inner project %q, got %q", innerProject, result.ProjectRoot)
	}
}
