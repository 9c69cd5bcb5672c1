package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

// Project IDs travel inside exported order documents, so they need to be
// unique across machines, not just within one data dir.
var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(4)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique project ID.
func Generate() string {
	return generator.MustGenerate()
}
