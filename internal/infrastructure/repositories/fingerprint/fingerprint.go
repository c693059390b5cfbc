// Package fingerprint computes content identities for updated lockfiles.
package fingerprint

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Bytes returns the xxhash64 of data as 16 lowercase hex digits.
func Bytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// File returns the fingerprint of the file at path.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return Bytes(data), nil
}
