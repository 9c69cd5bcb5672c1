package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/config"
)

// Result contains the discovered project root.
type Result struct {
	ProjectRoot string // Absolute path to project root
}

// DiscoverProject finds the project root by walking up from cwd, looking
// for a directory containing .mpcproject/.
//
// Returns nil if no project found (not initialized).
func DiscoverProject() (*Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return DiscoverProjectFrom(cwd)
}

// DiscoverProjectFrom finds the project root starting from a given directory.
func DiscoverProjectFrom(startDir string) (*Result, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir := absStart
	for {
		dataDir := filepath.Join(dir, config.DefaultDataDir)
		if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
			return &Result{ProjectRoot: dir}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, no project found
			return nil, nil
		}
		dir = parent
	}
}
