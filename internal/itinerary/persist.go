package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jeanpaul/itinerary/internal/destination"
	"github.com/jeanpaul/itinerary/internal/schema"
)

// Save writes the whole itinerary to path, replacing any previous file. The
// data goes to a temp file in the same directory first and is renamed into
// place, so readers never see a half-written file.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	records := make([]destination.Record, len(s.items))
	for i, d := range s.items {
		records[i] = d.Record()
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	if err := writeFileAtomic(path, data); err != nil {
		s.log.Error("save failed", "path", path, "error", err)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	s.log.Info("itinerary saved", "path", path, "count", len(records))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Backup moves the file at path aside to path+".corrupt", or to
// path+".corrupt.N" when earlier backups exist, and returns the new name.
// A missing file is not an error and returns "".
func Backup(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", &PersistenceError{Op: "backup", Path: path, Err: err}
	}

	target := path + ".corrupt"
	for n := 1; ; n++ {
		_, err := os.Stat(target)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return "", &PersistenceError{Op: "backup", Path: path, Err: err}
		}
		target = fmt.Sprintf("%s.corrupt.%d", path, n)
	}

	if err := os.Rename(path, target); err != nil {
		return "", &PersistenceError{Op: "backup", Path: path, Err: err}
	}
	return target, nil
}

// Load replaces the itinerary with the contents of path. A missing file
// returns ErrNoData; a file that is not a destination list returns a
// *PersistenceError wrapping ErrCorrupt. In both cases the store is left as
// it was.
func (s *Store) Load(path string) error {
	records, err := s.readFile(path)
	if err != nil {
		if !errors.Is(err, ErrNoData) {
			s.log.Error("load failed", "path", path, "error", err)
		}
		return err
	}

	items := make([]*destination.Destination, len(records))
	for i, r := range records {
		items[i] = destination.FromRecord(r)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.log.Info("itinerary loaded", "path", path, "count", len(items))
	return nil
}

// Import appends the destinations from every file matching pattern, which
// may use ** globs. If any file is unreadable or corrupt nothing is added.
func (s *Store) Import(pattern string) (int, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return 0, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("%w: nothing matches %s", ErrNoData, pattern)
	}

	var incoming []*destination.Destination
	for _, p := range paths {
		records, err := s.readFile(p)
		if err != nil {
			return 0, err
		}
		for _, r := range records {
			incoming = append(incoming, destination.FromRecord(r))
		}
	}

	s.mu.Lock()
	s.items = append(s.items, incoming...)
	s.mu.Unlock()
	s.log.Info("itinerary imported", "pattern", pattern, "files", len(paths), "count", len(incoming))
	return len(incoming), nil
}

func (s *Store) readFile(path string) ([]destination.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNoData, path)
		}
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}

	if !json.Valid(data) {
		return nil, &PersistenceError{Op: "load", Path: path, Err: fmt.Errorf("%w: invalid JSON", ErrCorrupt)}
	}
	if err := s.validator.Validate(schema.Destinations, data); err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}

	var records []destination.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	return records, nil
}
