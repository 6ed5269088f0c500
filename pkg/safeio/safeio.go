// Package safeio contains the whole-file read and write helpers used at the
// pipeline boundary. Files are read fully and written fully; nothing streams.
package safeio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// MaxInputSize bounds how much a single input file may hold.
const MaxInputSize int64 = 32 * 1024 * 1024

// ErrTooLarge is returned for inputs above MaxInputSize.
var ErrTooLarge = errors.New("input file too large")

// ReadInput reads a whole input file. Missing files surface as an error
// wrapping fs.ErrNotExist so callers can classify them.
func ReadInput(path string) ([]byte, error) {
	clean := filepath.Clean(path)
	st, err := os.Stat(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file does not exist: %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory, expected a file", path)
	}
	if st.Size() > MaxInputSize {
		return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrTooLarge, st.Size(), MaxInputSize)
	}
	// #nosec G304 -- path is operator-supplied on the command line
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteOutput writes data to path, creating the parent directory when needed
// and keeping the mode of an existing file.
func WriteOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := WriteFilePreservePerms(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteFilePreservePerms writes data to path preserving existing file mode when possible.
// When the file does not exist, it uses a sane default of 0644.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	return os.WriteFile(path, data, mode)
}
