package merge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteReport persists the run report as indented JSON at path.
func WriteReport(rep Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
