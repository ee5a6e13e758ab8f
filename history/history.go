// Package history keeps a local record of completed dictations so users can
// recover text that was injected into the wrong window. Entries are stored
// in a badger database under the user config directory and expire after a
// retention period.
package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// DefaultTTL is how long entries are retained.
const DefaultTTL = 30 * 24 * time.Hour

var keyPrefix = []byte("t:")

// Entry is one completed dictation.
type Entry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a transcript history backed by badger.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// New opens (or creates) the history database at path.
func New(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &Store{db: db, ttl: DefaultTTL}, nil
}

// Append records a completed dictation and returns the stored entry.
func (s *Store) Append(text, language string) (Entry, error) {
	entry := Entry{
		ID:        uuid.NewString(),
		Text:      text,
		Language:  language,
		CreatedAt: time.Now(),
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(entryKey(entry.CreatedAt, entry.ID), value).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("store entry: %w", err)
	}
	return entry, nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = keyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the highest timestamped key.
		seek := append(append([]byte{}, keyPrefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
		for it.Seek(seek); it.Valid() && len(entries) < n; it.Next() {
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// entryKey orders entries chronologically: prefix + big-endian nanos + id
// to break same-nanosecond ties.
func entryKey(at time.Time, id string) []byte {
	key := make([]byte, 0, len(keyPrefix)+8+len(id))
	key = append(key, keyPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(at.UnixNano()))
	return append(key, id...)
}
