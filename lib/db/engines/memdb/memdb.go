package memdb

import (
	"encoding/gob"
	"io"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/ralekv/ralekv/lib/db"
)

// memDB is an in-memory engine backed by a lock-free concurrent map.
type memDB struct {
	entries *xsync.MapOf[string, []byte]
}

// New creates a new in-memory database engine.
func New() db.KVDB {
	return &memDB{
		entries: xsync.NewMapOf[string, []byte](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see db.KVDB)
// --------------------------------------------------------------------------

func (m *memDB) Set(key string, value []byte) {
	// Copy the value so later mutations of the caller's slice can not
	// change stored state.
	buf := make([]byte, len(value))
	copy(buf, value)
	m.entries.Store(key, buf)
}

func (m *memDB) Get(key string) ([]byte, bool) {
	return m.entries.Load(key)
}

func (m *memDB) Delete(key string) {
	m.entries.Delete(key)
}

func (m *memDB) Len() int {
	return m.entries.Size()
}

// Save writes a gob-encoded snapshot of all entries. The snapshot is fuzzy:
// writes concurrent with Save may or may not be included.
func (m *memDB) Save(w io.Writer) error {
	snapshot := make(map[string][]byte, m.entries.Size())
	m.entries.Range(func(key string, value []byte) bool {
		snapshot[key] = value
		return true
	})
	return gob.NewEncoder(w).Encode(snapshot)
}

// Load replaces the current contents with a snapshot written by Save.
func (m *memDB) Load(r io.Reader) error {
	var snapshot map[string][]byte
	if err := gob.NewDecoder(r).Decode(&snapshot); err != nil {
		return err
	}
	m.entries.Clear()
	for key, value := range snapshot {
		m.entries.Store(key, value)
	}
	return nil
}

func (m *memDB) Close() error {
	m.entries.Clear()
	return nil
}
