package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go-bdjobs-e2e/internal/models"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func safeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// SaveResult writes res to <dir>/<test>_<YYYYmmdd_HHMMSS>.json and returns
// the path.
func SaveResult(dir string, res models.TestResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create results directory: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode result: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", safeName(res.Name), res.FinishedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}
	return path, nil
}
