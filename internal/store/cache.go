package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/nmorel/habitude/internal/ledger"
)

// Cache is the durable offline fallback. One logical slot per collection,
// written after every successful in-memory mutation and read once at startup.
type Cache interface {
	LoadTodos() ([]*Item, error)
	SaveTodos(items []*Item) error
	LoadDays() ([]ledger.Day, error)
	SaveDays(days []ledger.Day) error
}

type cacheFile struct {
	Todos         []*Item      `json:"todos"`
	ActivityDates []ledger.Day `json:"activityDates"`
}

// FileCache keeps both collections in a single JSON file. Writes go to a
// temporary file first and are renamed over the target, so a crash mid-write
// never leaves a truncated cache behind.
type FileCache struct {
	mu    sync.Mutex
	path  string
	state cacheFile
}

func NewFileCache(path string) (*FileCache, error) {
	fc := &FileCache{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return nil, errors.New("reading cache file: " + err.Error())
	}
	if err = sonic.Unmarshal(data, &fc.state); err != nil {
		return nil, errors.New("parsing cache file: " + err.Error())
	}
	return fc, nil
}

func (fc *FileCache) LoadTodos() ([]*Item, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	items := make([]*Item, 0, len(fc.state.Todos))
	for _, item := range fc.state.Todos {
		items = append(items, item.clone())
	}
	return items, nil
}

func (fc *FileCache) SaveTodos(items []*Item) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.state.Todos = make([]*Item, 0, len(items))
	for _, item := range items {
		fc.state.Todos = append(fc.state.Todos, item.clone())
	}
	return fc.flush()
}

func (fc *FileCache) LoadDays() ([]ledger.Day, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]ledger.Day(nil), fc.state.ActivityDates...), nil
}

func (fc *FileCache) SaveDays(days []ledger.Day) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.state.ActivityDates = append([]ledger.Day(nil), days...)
	return fc.flush()
}

func (fc *FileCache) flush() error {
	data, err := sonic.ConfigDefault.MarshalIndent(fc.state, "", "  ")
	if err != nil {
		return errors.New("encoding cache: " + err.Error())
	}
	tmp, err := os.CreateTemp(filepath.Dir(fc.path), filepath.Base(fc.path)+".tmp-*")
	if err != nil {
		return errors.New("creating temp cache file: " + err.Error())
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.New("writing cache: " + err.Error())
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.New("closing temp cache file: " + err.Error())
	}
	if err = os.Rename(tmp.Name(), fc.path); err != nil {
		os.Remove(tmp.Name())
		return errors.New("replacing cache file: " + err.Error())
	}
	return nil
}
