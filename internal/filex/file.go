// Package filex holds file helpers: locating the data directory and turning
// an image file into a data: URI for the avatar field.
package filex

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxAvatarBytes bounds avatar files. The whole account collection is
// rewritten on every change, so a large inline image slows every write.
const MaxAvatarBytes = 1 << 20

var (
	ErrTooLarge = errors.New("file too large")
	ErrNotImage = errors.New("not an image")
)

// EnsureDir resolves dir (relative paths against the working directory),
// creates it with 0700 and returns the absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// DefaultDataDir is ~/.profilekeeper, or ./.profilekeeper when the home
// directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".profilekeeper"
	}
	return filepath.Join(home, ".profilekeeper")
}

// ReadDataURI reads an image file and encodes it as
// "data:<mime>;base64,<payload>".
func ReadDataURI(path string, maxBytes int64) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, fi.Size(), maxBytes)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(b)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
