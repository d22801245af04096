package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps values in a JSON file readable only by the current user.
// Every write replaces the whole file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

type storeFile struct {
	Values map[string]string `json:"values"`
}

// NewFileStore returns a FileStore backed by path. The file is created on
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := sf.Values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := f.load()
	if err != nil {
		return err
	}
	sf.Values[key] = value
	return f.save(sf)
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sf, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := sf.Values[key]; !ok {
		return ErrNotFound
	}
	delete(sf.Values, key)
	return f.save(sf)
}

func (f *FileStore) load() (storeFile, error) {
	sf := storeFile{Values: map[string]string{}}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return sf, nil
	}
	if err != nil {
		return sf, fmt.Errorf("reading token store: %w", err)
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parsing token store %s: %w", f.path, err)
	}
	if sf.Values == nil {
		sf.Values = map[string]string{}
	}
	return sf, nil
}

func (f *FileStore) save(sf storeFile) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating token store dir: %w", err)
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling token store: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing token store: %w", err)
	}
	return nil
}
