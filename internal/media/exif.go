// Package media holds the two image leaves of the ingestion pipeline:
// capture-time extraction and thumbnail generation. Both degrade gracefully;
// neither failure is allowed to abort an upload.
package media

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ExtractTakenAt reads the embedded capture timestamp (DateTimeOriginal,
// falling back to DateTime). Returns nil when metadata is absent or
// malformed; callers sort such photos by upload time instead.
func ExtractTakenAt(data []byte) *time.Time {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	t, err := x.DateTime()
	if err != nil {
		return nil
	}
	return &t
}
