package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters following the OWASP interactive-login guidance.
// The encoded hash carries its own parameters, so these can be raised
// later without invalidating stored hashes.
const (
	hashMemoryKiB  = 64 * 1024
	hashIterations = 3
	hashThreads    = 4
	saltBytes      = 16
	keyBytes       = 32

	// Hashing cost scales with input size; cap it so a huge password
	// body can't burn CPU.
	maxPasswordBytes = 1024
)

// hashParams are the cost parameters recovered from an encoded hash.
type hashParams struct {
	memoryKiB  uint32
	iterations uint32
	threads    uint8
	keyLen     uint32
}

// HashPassword derives an argon2id hash of password and returns it in
// the standard "$argon2id$v=..$m=..,t=..,p=..$salt$hash" encoding.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", errors.New("password exceeds maximum length")
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, hashIterations, hashMemoryKiB, hashThreads, keyBytes)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hashMemoryKiB, hashIterations, hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword reports whether password matches the encoded hash.
// Malformed hashes verify as false rather than returning an error, so
// callers can't distinguish a bad hash from a wrong password.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if len(password) > maxPasswordBytes {
		return false, nil
	}

	salt, want, params, err := parseEncodedHash(encodedHash)
	if err != nil {
		return false, nil
	}

	got := argon2.IDKey([]byte(password), salt, params.iterations, params.memoryKiB, params.threads, params.keyLen)

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// parseEncodedHash splits an encoded argon2id hash into its salt, key
// and cost parameters.
func parseEncodedHash(encoded string) (salt, key []byte, params *hashParams, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, errors.New("not an argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible argon2 version %d", version)
	}

	params = &hashParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memoryKiB, &params.iterations, &params.threads); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt: %w", err)
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid key: %w", err)
	}
	params.keyLen = uint32(len(key)) //nolint:gosec // key length is bounded by the encoding

	return salt, key, params, nil
}
