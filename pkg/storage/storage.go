package storage

import "io"

// Storage abstracts where uploaded files live. Keys are relative paths
// like "artworks/original/<name>" or "payment/<name>"; Save returns the
// public reference stored in the database.
type Storage interface {
	Save(key string, r io.Reader, contentType string) (string, error)
	Open(key string) (io.ReadCloser, error)
	Exists(key string) (bool, error)
	Delete(key string) error
}
