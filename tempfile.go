package pdfmill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// writeTempHTML writes inline markup to a collision-resistant file under
// the platform temp directory and returns its path. The caller owns the
// file and must remove it via removeTempHTML once the submission attempt
// finishes, whichever way it finishes.
func writeTempHTML(html string) (string, error) {
	name := "pdfmill-" + strings.ReplaceAll(uuid.NewString(), "-", "") + ".html"
	path := filepath.Join(os.TempDir(), name)

	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		return "", fmt.Errorf("write temp html: %w", err)
	}

	return path, nil
}

// removeTempHTML deletes a temp artifact. Best effort: a leftover file
// in the temp directory must not mask the submission outcome.
func removeTempHTML(path string) {
	_ = os.Remove(path)
}
