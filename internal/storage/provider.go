// Package storage defines the database file abstraction.
package storage

import "time"

// Meta describes the current file contents.
type Meta struct {
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for database file operations.
type Provider interface {
	// Path returns the absolute path of the file.
	Path() string
	// Read returns the raw bytes of the file. A missing file yields an error
	// matching os.ErrNotExist.
	Read() ([]byte, error)
	// Write atomically replaces the file content.
	Write(content []byte) error
	// Stat returns the checksum and modification time of the file.
	Stat() (Meta, error)
}
