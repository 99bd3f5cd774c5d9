package lstore

import (
	"errors"
	"testing"

	"github.com/ralekv/ralekv/lib/db"
	"github.com/ralekv/ralekv/lib/db/engines/memdb"
	"github.com/ralekv/ralekv/lib/store"
)

func newTestStore() store.IStore {
	return NewLocalStore(func() db.KVDB { return memdb.New() })
}

func TestSubmitAndGet(t *testing.T) {
	s := newTestStore()

	if err := s.Submit("PUT k1 hello world"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	value, err := s.Get("k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "hello world" {
		t.Errorf("Get(k1) = %q, want %q", value, "hello world")
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore()

	_, err := s.Get("nope")
	if err == nil {
		t.Fatalf("Get() on missing key returned nil error")
	}

	var serr *store.Error
	if !errors.As(err, &serr) {
		t.Fatalf("Get() error type = %T, want *store.Error", err)
	}
	if serr.Code != store.RetCKeyNotFound {
		t.Errorf("error code = %d, want RetCKeyNotFound", serr.Code)
	}
	if serr.Error() != "key not found" {
		t.Errorf("error text = %q, want %q", serr.Error(), "key not found")
	}
}

func TestSubmitDelete(t *testing.T) {
	s := newTestStore()

	if err := s.Submit("PUT k1 v1"); err != nil {
		t.Fatalf("Submit(PUT) error = %v", err)
	}
	if err := s.Submit("DELETE k1"); err != nil {
		t.Fatalf("Submit(DELETE) error = %v", err)
	}
	if _, err := s.Get("k1"); err == nil {
		t.Errorf("Get() after DELETE returned nil error")
	}
}

func TestSubmitInvalidCommands(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{name: "empty", command: ""},
		{name: "unknown verb", command: "FROB k1 v1"},
		{name: "put without key", command: "PUT"},
		{name: "delete without key", command: "DELETE"},
	}

	s := newTestStore()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Submit(tt.command); err == nil {
				t.Errorf("Submit(%q) returned nil error", tt.command)
			}
		})
	}
}

func TestPutOverwrites(t *testing.T) {
	s := newTestStore()

	for _, value := range []string{"first", "second"} {
		if err := s.Submit("PUT k1 " + value); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	value, err := s.Get("k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "second" {
		t.Errorf("Get(k1) = %q, want %q", value, "second")
	}
}
