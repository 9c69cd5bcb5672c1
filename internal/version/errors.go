package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem during file read/write.
type SchemaVersionError struct {
	FileType string // "project", "settings"
	FilePath string // Path to the problematic file
	Found    string // What was found (e.g., "missing", "2", "settings/2")
	Expected string // What was expected (e.g., "1", "settings/1")
}

func (e *SchemaVersionError) Error() string {
	if e.Found == "missing" {
		return fmt.Sprintf("%s has no schema version (file: %s)", e.FileType, e.FilePath)
	}
	return fmt.Sprintf(
		"%s has invalid schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// MissingProjectVersion creates an error for a project file missing the _v field.
func MissingProjectVersion(path string) error {
	return &SchemaVersionError{
		FileType: "project",
		FilePath: path,
		Found:    "missing",
		Expected: fmt.Sprintf("%d", CurrentProjectVersion),
	}
}

// InvalidProjectVersion creates an error for a project file with an unsupported version.
func InvalidProjectVersion(path string, found, expected int) error {
	return &SchemaVersionError{
		FileType: "project",
		FilePath: path,
		Found:    fmt.Sprintf("%d", found),
		Expected: fmt.Sprintf("%d", expected),
	}
}

// MissingSettingsSchema creates an error for a settings file missing its schema field.
func MissingSettingsSchema(path string) error {
	return &SchemaVersionError{
		FileType: "settings",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentSettingsSchema(),
	}
}

// InvalidSettingsSchema creates an error for a settings file with an unsupported schema.
func InvalidSettingsSchema(path, found string) error {
	return &SchemaVersionError{
		FileType: "settings",
		FilePath: path,
		Found:    found,
		Expected: CurrentSettingsSchema(),
	}
}
