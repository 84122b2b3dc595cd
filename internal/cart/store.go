package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alebedeva/cardforge/internal/domain"
)

// Store is the durable slot a cart is persisted into under its fixed key.
// Update is the mutation path: it runs fn over the current items and persists
// the result as one serialized step per key, so concurrent requests against
// the same cart never interleave their load-modify-save cycles.
type Store interface {
	Load(key string) ([]domain.LineItem, error)
	Save(key string, items []domain.LineItem) error
	Update(key string, fn func(items []domain.LineItem) []domain.LineItem) ([]domain.LineItem, error)
}

// FileStore keeps one JSON file per cart key and a mutex per key to guard it.
type FileStore struct {
	dir   string
	locks sync.Map
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) keyLock(key string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *FileStore) Load(key string) ([]domain.LineItem, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()
	return s.read(key)
}

func (s *FileStore) Save(key string, items []domain.LineItem) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()
	return s.write(key, items)
}

func (s *FileStore) Update(key string, fn func(items []domain.LineItem) []domain.LineItem) ([]domain.LineItem, error) {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.read(key)
	if err != nil {
		return nil, err
	}
	items = fn(items)
	if err := s.write(key, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStore) read(key string) ([]domain.LineItem, error) {
	file, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var items []domain.LineItem
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", key, err)
	}
	return items, nil
}

func (s *FileStore) write(key string, items []domain.LineItem) error {
	file, err := os.Create(s.path(key))
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}
