package core

import (
	"os"
	"testing"

	"github.com/synnergy-registry/registry/internal/testutil"
)

func tmpStoreConfig(t *testing.T) StoreConfig {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	t.Cleanup(func() { _ = sb.Cleanup() })
	return StoreConfig{
		WALPath:          sb.Path("wal.log"),
		SnapshotPath:     sb.Path("snap.json"),
		SnapshotInterval: 1000,
	}
}

func TestStoreGetSetMany(t *testing.T) {
	s, err := NewStore(tmpStoreConfig(t))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if err := s.SetMany(map[string][]byte{"aa": []byte("1"), "bb": []byte("2")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	v, ok, err := s.Get("aa")
	if err != nil || !ok || string(v) != "1" {
		t.Fatalf("Get(aa) = %q, %v, %v", v, ok, err)
	}
	if _, ok, _ := s.Get("zz"); ok {
		t.Fatalf("expected zz absent")
	}
}

func TestStorePrefixScan(t *testing.T) {
	s, err := NewStore(tmpStoreConfig(t))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if err := s.SetMany(map[string][]byte{
		"aa01": []byte("x"),
		"aa02": []byte("y"),
		"bb01": []byte("z"),
	}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	found, err := s.PrefixScan("aa")
	if err != nil {
		t.Fatalf("PrefixScan: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 entries under prefix aa, got %d", len(found))
	}
}

func TestStoreReplaysWAL(t *testing.T) {
	cfg := tmpStoreConfig(t)

	s1, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s1.SetMany(map[string][]byte{"addr": []byte("value")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("reopen NewStore: %v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Get("addr")
	if err != nil || !ok || string(v) != "value" {
		t.Fatalf("replayed Get(addr) = %q, %v, %v", v, ok, err)
	}
}

func TestStoreSnapshotTruncatesWAL(t *testing.T) {
	cfg := tmpStoreConfig(t)
	cfg.SnapshotInterval = 1

	s, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if err := s.SetMany(map[string][]byte{"addr": []byte("v1")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	if fi, err := os.Stat(cfg.WALPath); err != nil || fi.Size() != 0 {
		t.Fatalf("WAL after snapshot = %v, %v; want an empty file", fi, err)
	}

	reopened, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("reopen after snapshot: %v", err)
	}
	defer reopened.Close()
	v, ok, err := reopened.Get("addr")
	if err != nil || !ok || string(v) != "v1" {
		t.Fatalf("post-snapshot Get(addr) = %q, %v, %v", v, ok, err)
	}
}

func TestOpenStoreCreatesDirFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer s.Close()
	if err := s.SetMany(map[string][]byte{"x": []byte("1")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
}
