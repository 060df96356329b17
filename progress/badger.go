package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

const (
	unlockedPrefix = "unlocked:"
	bestPrefix     = "best:"
	ghostPrefix    = "ghost:"
)

// BadgerStore persists progress in a badger database. Records are JSON;
// ghost traces are JSON compressed with zstd.
type BadgerStore struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// OpenBadger opens (or creates) a store under dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("progress: open %q: %w", dir, err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("progress: zstd writer: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("progress: zstd reader: %w", err)
	}
	return &BadgerStore{db: db, enc: enc, dec: dec}, nil
}

func (s *BadgerStore) Unlocked() ([]int, error) {
	levels := []int{0}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(unlockedPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			lvl, err := strconv.Atoi(strings.TrimPrefix(key, unlockedPrefix))
			if err != nil {
				return fmt.Errorf("bad key %q: %w", key, err)
			}
			if lvl != 0 {
				levels = append(levels, lvl)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("progress: unlocked: %w", err)
	}
	sort.Ints(levels)
	return levels, nil
}

func (s *BadgerStore) Unlock(level int) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(levelKey(unlockedPrefix, level), []byte{1})
	})
	if err != nil {
		return fmt.Errorf("progress: unlock %d: %w", level, err)
	}
	return nil
}

func (s *BadgerStore) Best(level int) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		data, err := getValue(txn, levelKey(bestPrefix, level))
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return Record{}, wrapLookup("best", level, err)
	}
	return rec, nil
}

func (s *BadgerStore) SubmitResult(level int, rec Record) (bool, error) {
	improved := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := levelKey(bestPrefix, level)
		data, err := getValue(txn, key)
		switch {
		case err == nil:
			var prev Record
			if err := json.Unmarshal(data, &prev); err != nil {
				return err
			}
			if !rec.Better(prev) {
				return nil
			}
		case !errors.Is(err, ErrNotFound):
			return err
		}
		out, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		improved = true
		return txn.Set(key, out)
	})
	if err != nil {
		return false, fmt.Errorf("progress: submit %d: %w", level, err)
	}
	return improved, nil
}

func (s *BadgerStore) SaveGhost(level int, tr Trace) error {
	raw, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("progress: encode ghost %d: %w", level, err)
	}
	packed := s.enc.EncodeAll(raw, nil)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(levelKey(ghostPrefix, level), packed)
	})
	if err != nil {
		return fmt.Errorf("progress: save ghost %d: %w", level, err)
	}
	return nil
}

func (s *BadgerStore) Ghost(level int) (Trace, error) {
	var packed []byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		packed, err = getValue(txn, levelKey(ghostPrefix, level))
		return err
	})
	if err != nil {
		return Trace{}, wrapLookup("ghost", level, err)
	}
	raw, err := s.dec.DecodeAll(packed, nil)
	if err != nil {
		return Trace{}, fmt.Errorf("progress: decompress ghost %d: %w", level, err)
	}
	var tr Trace
	if err := json.Unmarshal(raw, &tr); err != nil {
		return Trace{}, fmt.Errorf("progress: decode ghost %d: %w", level, err)
	}
	return tr, nil
}

func (s *BadgerStore) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}

func levelKey(prefix string, level int) []byte {
	return []byte(prefix + strconv.Itoa(level))
}

func getValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func wrapLookup(what string, level int, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("progress: %s %d: %w", what, level, err)
}
