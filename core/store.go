package core

// store.go is a reference StateStore implementation: a write-ahead-logged,
// snapshot-backed key/value store, trimmed to pure key/value semantics —
// this processor has no blocks, UTXOs or contracts of its own; the
// collaborator's consensus layer owns that. What survives is a familiar
// durability shape: an append-only WAL replayed at startup, with periodic
// snapshots truncating it.
//
// Production deployments plug in their own StateStore (the validator's
// global state merkle trie, typically); this implementation exists so the
// core, the CLI demo and the test suite have something concrete to run
// against without a consensus layer.

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// StoreConfig configures a durable Store.
type StoreConfig struct {
	WALPath          string
	SnapshotPath     string
	SnapshotInterval int // write a snapshot every N committed batches; 0 disables
}

// Store is an in-process, WAL-backed StateStore.
type Store struct {
	mu               sync.RWMutex
	data             map[string][]byte
	walFile          *os.File
	snapshotPath     string
	snapshotInterval int
	commits          int
}

type walEntry struct {
	Entries map[string][]byte `json:"entries"`
}

// NewStore opens (creating if absent) the WAL at cfg.WALPath and replays it
// to rebuild in-memory state. The WAL is closed if initialisation fails.
func NewStore(cfg StoreConfig) (s *Store, err error) {
	wal, err := os.OpenFile(cfg.WALPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open WAL: %w", err)
	}
	defer func() {
		if err != nil {
			_ = wal.Close()
		}
	}()

	s = &Store{
		data:             make(map[string][]byte),
		walFile:          wal,
		snapshotPath:     cfg.SnapshotPath,
		snapshotInterval: cfg.SnapshotInterval,
	}

	if cfg.SnapshotPath != "" {
		if f, openErr := os.Open(cfg.SnapshotPath); openErr == nil {
			decErr := json.NewDecoder(f).Decode(&s.data)
			f.Close()
			if decErr != nil {
				return nil, fmt.Errorf("decode snapshot: %w", decErr)
			}
		} else if !os.IsNotExist(openErr) {
			return nil, fmt.Errorf("open snapshot: %w", openErr)
		}
	}

	scanner := bufio.NewScanner(wal)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var entry walEntry
		if err = json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("WAL unmarshal: %w", err)
		}
		for addr, val := range entry.Entries {
			s.data[addr] = val
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("WAL scan: %w", err)
	}
	return s, nil
}

// OpenStore loads a store rooted at a directory containing registry.snap and
// registry.wal, creating them on first use.
func OpenStore(dir string) (*Store, error) {
	return NewStore(StoreConfig{
		WALPath:          dir + "/registry.wal",
		SnapshotPath:     dir + "/registry.snap",
		SnapshotInterval: 500,
	})
}

func (s *Store) Get(address string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[address]
	if !ok {
		return nil, false, nil
	}
	cpy := make([]byte, len(v))
	copy(cpy, v)
	return cpy, true, nil
}

// SetMany commits every entry atomically: the in-memory map is updated and
// the WAL line written under a single lock, so a concurrent Get/PrefixScan
// never observes a partial batch.
func (s *Store) SetMany(entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(walEntry{Entries: entries})
	if err != nil {
		return fmt.Errorf("marshal WAL entry: %w", err)
	}
	if _, err := s.walFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write WAL: %w", err)
	}
	if err := s.walFile.Sync(); err != nil {
		return fmt.Errorf("sync WAL: %w", err)
	}

	for addr, val := range entries {
		cpy := make([]byte, len(val))
		copy(cpy, val)
		s.data[addr] = cpy
	}

	s.commits++
	if s.snapshotInterval > 0 && s.commits%s.snapshotInterval == 0 {
		if err := s.snapshotLocked(); err != nil {
			logrus.WithError(err).Warn("registry store: snapshot failed")
		}
	}
	return nil
}

func (s *Store) PrefixScan(prefix string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte)
	for addr, val := range s.data {
		if strings.HasPrefix(addr, prefix) {
			cpy := make([]byte, len(val))
			copy(cpy, val)
			out[addr] = cpy
		}
	}
	return out, nil
}

// Snapshot writes the full key/value state to disk and truncates the WAL.
func (s *Store) Snapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() error {
	if s.snapshotPath == "" {
		return nil
	}
	f, err := os.Create(s.snapshotPath)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(s.data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := s.walFile.Close(); err != nil {
		return err
	}
	wal, err := os.Create(s.walFile.Name())
	if err != nil {
		return err
	}
	s.walFile = wal
	logrus.WithField("path", s.snapshotPath).Info("registry store: snapshot written, WAL truncated")
	return nil
}

// Close releases the WAL file handle.
func (s *Store) Close() error {
	if s == nil || s.walFile == nil {
		return nil
	}
	return s.walFile.Close()
}
