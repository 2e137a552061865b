// Package textfile provides the flat-file implementation of storage.Store.
//
// The file holds one student per line:
//
//	id,name,gender,className,score1,score2,score3
//
// There is no header and no escaping.
package textfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/storage"
)

// maxLineSize is the longest line Load accepts.
const maxLineSize = 1 << 20

// Ensure FileStore implements storage.Store
var _ storage.Store = (*FileStore)(nil)

// FileStore implements storage.Store on a delimited text file.
// The file is only open while loading or saving.
type FileStore struct {
	path string
}

// New creates a FileStore for the given path. The file is not touched until
// Load or Save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads all students from the file.
//
// A missing file is created empty and yields no students. Blank lines are
// skipped. The first malformed line aborts the load with a *LineError
// wrapping ErrMalformedLine; nothing is returned for the lines before it.
func (f *FileStore) Load(ctx context.Context) ([]*models.Student, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Data file not found, creating an empty one", "path", f.path)
		if err := f.Save(ctx, nil); err != nil {
			return nil, err
		}
		return []*models.Student{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	students := []*models.Student{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		student, err := ParseLine(line)
		if err != nil {
			return nil, &LineError{Line: lineNo, Text: line, Err: err}
		}
		students = append(students, student)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan data file: %w", err)
	}

	slog.Debug("Data file loaded", "path", f.path, "students", len(students))
	return students, nil
}

// Save replaces the file with one line per student, creating parent
// directories as needed. The lines are written to a temporary file in the
// same directory and renamed over the target, so a failed save leaves the
// previous file intact.
func (f *FileStore) Save(ctx context.Context, students []*models.Student) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var buf bytes.Buffer
	for _, s := range students {
		buf.WriteString(FormatLine(s))
		buf.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary data file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close data file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set data file mode: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	committed = true

	slog.Debug("Data file saved", "path", f.path, "students", len(students))
	return nil
}

// Close is a no-op; the file is never held open.
func (f *FileStore) Close() error {
	return nil
}
