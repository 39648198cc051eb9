// Package journal keeps an append-only local copy of ledger events in an
// embedded key-value store.
package journal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// DB is the key-value surface the journal needs.
type DB interface {
	Put(key, value []byte) error
	// ForEach visits keys with prefix in ascending byte order.
	// Returning ErrStop from fn ends the walk without error.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}

// ErrStop ends a ForEach walk early.
var ErrStop = errors.New("journal: stop iteration")

// BadgerDB implements DB using Badger.
type BadgerDB struct {
	db *badger.DB
}

// OpenBadger opens or creates a Badger database at path.
func OpenBadger(path string) (*BadgerDB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, fmt.Errorf("journal at %s is locked by another process: %w", path, err)
		}
		return nil, fmt.Errorf("open journal at %s: %w", path, err)
	}
	return &BadgerDB{db: db}, nil
}

// Put stores a key-value pair.
func (b *BadgerDB) Put(key, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("badger put: %w", err)
	}
	return nil
}

// ForEach iterates over all keys with the given prefix.
func (b *BadgerDB) ForEach(prefix []byte, fn func(key, value []byte) error) error {
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			if err := item.Value(func(val []byte) error {
				return fn(key, val)
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// Close closes the database.
func (b *BadgerDB) Close() error {
	return b.db.Close()
}

// MemoryDB implements DB over a map. Contents are lost on exit.
type MemoryDB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryDB creates an empty MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{data: make(map[string][]byte)}
}

// Put stores a copy of value under key.
func (m *MemoryDB) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = slices.Clone(value)
	return nil
}

// ForEach iterates over all keys with the given prefix in sorted order.
func (m *MemoryDB) ForEach(prefix []byte, fn func(key, value []byte) error) error {
	m.mu.RLock()
	p := string(prefix)
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, p) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = m.data[k]
	}
	m.mu.RUnlock()

	for i, k := range keys {
		if err := fn([]byte(k), values[i]); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Close is a no-op.
func (m *MemoryDB) Close() error {
	return nil
}
