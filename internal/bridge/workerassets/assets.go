// Package workerassets ships the Python worker script inside the binary so
// the service has no loose-file deployment dependency.
package workerassets

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"webbridge/internal/shared/utils"
)

//go:embed bridge.py
var script []byte

// Script returns the embedded worker script bytes.
func Script() []byte {
	out := make([]byte, len(script))
	copy(out, script)
	return out
}

// Hash returns the sha256 hex digest of the embedded script.
func Hash() string {
	return utils.DefaultHasher().Hash(script)
}

// Materialize writes the embedded worker script into dir (the OS temp dir
// when empty) and returns its path. The filename carries a content hash, so
// concurrent processes converge on the same file and a changed embed lands
// at a fresh path instead of racing an old one.
func Materialize(dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	target := filepath.Join(dir, fmt.Sprintf("webbridge-worker-%s.py", utils.ShortHash(Hash())))
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create worker script dir: %w", err)
	}

	// Write-then-rename keeps a concurrent reader from seeing a half-written
	// script.
	tmp, err := os.CreateTemp(dir, "webbridge-worker-*.py.tmp")
	if err != nil {
		return "", fmt.Errorf("create worker script temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(script); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write worker script: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close worker script: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("install worker script: %w", err)
	}

	return target, nil
}
