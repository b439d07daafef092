// Package auth provides authentication and authorization functionality.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PASETO v4.local wants a 256-bit symmetric key, stored on disk as hex.
const symmetricKeyBytes = 32

// LoadOrGenerateKey returns the access-token key from <dataPath>/auth.key,
// creating a fresh random key on first run. The file holds the key
// hex-encoded with owner-only permissions.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, "auth.key")

	//#nosec G304 -- key path is derived from the configured data path
	raw, err := os.ReadFile(keyPath)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("auth key is not valid hex: %w", err)
		}
		if len(key) != symmetricKeyBytes {
			return nil, fmt.Errorf("auth key is %d bytes, want %d", len(key), symmetricKeyBytes)
		}
		return key, nil
	}

	key := make([]byte, symmetricKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("save auth key: %w", err)
	}

	return key, nil
}
