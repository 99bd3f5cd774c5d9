package lstore

import (
	"github.com/ralekv/ralekv/lib/db"
	"github.com/ralekv/ralekv/lib/store"
)

type storeImpl struct {
	db db.KVDB
}

// NewLocalStore creates a new local store instance.
// This store implementation is not distributed and only works on a single
// node. Mutations are applied directly to the injected engine.
func NewLocalStore(factory store.DBFactory) store.IStore {
	return &storeImpl{
		db: factory(),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Get(key string) (string, error) {
	value, loaded := s.db.Get(key)
	if !loaded {
		return "", store.NewError(store.RetCKeyNotFound, "key not found")
	}
	return string(value), nil
}

func (s *storeImpl) Submit(command string) error {
	mutation, err := store.ParseMutation(command)
	if err != nil {
		return err
	}

	switch mutation.Op {
	case store.OpPut:
		s.db.Set(mutation.Key, []byte(mutation.Value))
	case store.OpDelete:
		s.db.Delete(mutation.Key)
	default:
		return store.NewErrorf(store.RetCInvalidOperation, "unsupported mutation %s", mutation.Op)
	}
	return nil
}
