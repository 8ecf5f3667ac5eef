package note

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxIDAttempts bounds how far Create moves a taken ID forward.
const maxIDAttempts = 60

// Entry is a note found in a directory.
type Entry struct {
	Path    string
	Note    *Note
	Content []byte
}

// Create writes n into dir. When n's ID is already used by a note in dir the
// ID moves forward one second at a time. Existing files are never overwritten.
func Create(dir string, n *Note) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating notes directory %s: %w", dir, err)
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		taken, err := idTaken(dir, n.ID)
		if err != nil {
			return "", err
		}
		if !taken {
			path := filepath.Join(dir, n.Filename())
			err = writeExclusive(path, n)
			if err == nil {
				return path, nil
			}
			if !errors.Is(err, fs.ErrExist) {
				return "", err
			}
		}
		n.Created = n.Created.Add(time.Second)
		n.ID = NewID(n.Created)
	}
	return "", fmt.Errorf("no free note id in %s after %d attempts", dir, maxIDAttempts)
}

// List reads every note in dir, sorted by ID. Files that cannot be read or
// parsed are skipped and reported together in the returned error; the slice
// is nil only when dir itself cannot be read.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading notes directory %s: %w", dir, err)
	}

	entries := []Entry{}
	var problems []error
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != Ext {
			continue
		}
		path := filepath.Join(dir, de.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, fmt.Errorf("reading %s: %w", path, err))
			continue
		}
		n, err := Parse(content)
		if err != nil {
			problems = append(problems, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}
		entries = append(entries, Entry{Path: path, Note: n, Content: content})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Note.ID == entries[j].Note.ID {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Note.ID < entries[j].Note.ID
	})
	return entries, errors.Join(problems...)
}

// Find returns the path of the note file whose name starts with id.
func Find(dir, id string) (string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading notes directory %s: %w", dir, err)
	}
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != Ext {
			continue
		}
		if fileID(de.Name()) == id {
			return filepath.Join(dir, de.Name()), nil
		}
	}
	return "", fmt.Errorf("note %s: %w", id, fs.ErrNotExist)
}

func idTaken(dir, id string) (bool, error) {
	_, err := Find(dir, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// fileID is the part of a note file name before the first dash or the extension.
func fileID(name string) string {
	base := strings.TrimSuffix(name, Ext)
	if i := strings.IndexByte(base, '-'); i >= 0 {
		return base[:i]
	}
	return base
}

func writeExclusive(path string, n *Note) error {
	data, err := n.Marshal()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
