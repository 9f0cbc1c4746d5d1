package fetch

import (
	"os"
	"strings"
)

// MarkerName is the checksum marker written next to the extracted tree and
// copied through to the destination unchanged.
const MarkerName = "archive.sha256"

// ReadMarker returns the recorded archive checksum, or "" when no marker
// exists yet.
func ReadMarker(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// WriteMarker records the archive checksum for the next run's skip check.
func WriteMarker(path, sum string) error {
	return os.WriteFile(path, []byte(sum+"\n"), 0o644)
}
