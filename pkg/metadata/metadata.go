// Package metadata provides provenance details for capture files.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Source describes one capture file that was ingested.
type Source struct {
	LoadedAt time.Time
	Path     string
	Hash     string
	Size     int
	Records  int
}

// CalculateHash computes the SHA-256 hash of the content.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}

// Describe builds the provenance entry of a file read from path.
func Describe(path string, content []byte) Source {
	return Source{
		LoadedAt: time.Now().UTC(),
		Path:     path,
		Hash:     CalculateHash(content),
		Size:     len(content),
	}
}

// ShortHash returns the first 12 hex characters of the hash.
func (s Source) ShortHash() string {
	if len(s.Hash) < 12 {
		return s.Hash
	}

	return s.Hash[:12]
}

// String returns a string representation of the source.
func (s Source) String() string {
	return fmt.Sprintf("Source{Path: %s, Records: %d, SHA256: %s}", s.Path, s.Records, s.ShortHash())
}
