package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempFile(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return f
}

func TestWriteAndRead(t *testing.T) {
	s := tempFile(t)
	content := []byte(`{"pets": []}`)
	if err := s.Write(content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestNewFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "db.json")
	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := s.Write([]byte("{}")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestRead_Missing(t *testing.T) {
	s := tempFile(t)
	_, err := s.Read()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestStat_ChecksumTracksContent(t *testing.T) {
	s := tempFile(t)
	_ = s.Write([]byte("one"))
	m1, err := s.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	_ = s.Write([]byte("two"))
	m2, err := s.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if m1.Checksum == "" || m1.Checksum == m2.Checksum {
		t.Errorf("checksums = %q, %q", m1.Checksum, m2.Checksum)
	}
	if m2.UpdatedAt.IsZero() {
		t.Error("zero modification time")
	}
}

func TestAtomicWriteNoCorruption(t *testing.T) {
	s := tempFile(t)
	_ = s.Write([]byte("original content"))

	updated := []byte("updated content")
	if err := s.Write(updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read()
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	// Confirm no leftover temp files.
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(s.Path()), ".petdesk-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFile_DirectoryRejected(t *testing.T) {
	if _, err := NewFile(t.TempDir()); err == nil {
		t.Error("expected error when path is a directory")
	}
}

func TestNewFile_EmptyPath(t *testing.T) {
	if _, err := NewFile(""); err == nil {
		t.Error("expected error for empty path")
	}
}
