// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2id parameters sized for interactive login latency.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16
)

var (
	errHashFormat    = errors.New("invalid hash format")
	bcryptPrefixes   = []string{"$2a$", "$2b$", "$2y$"}
	b64              = base64.RawStdEncoding
	timingDummyValue = "articlehub-timing-equalizer"
)

// passwordHash is the parsed form of a PHC-style argon2id string:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
type passwordHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (h passwordHash) String() string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.threads,
		b64.EncodeToString(h.salt),
		b64.EncodeToString(h.key),
	)
}

func (h passwordHash) derive(password string) []byte {
	//nolint:gosec // G115: key length is bounded by the stored hash
	return argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
}

func (h passwordHash) current() bool {
	return h.memory == argonMemory &&
		h.time == argonTime &&
		h.threads == argonThreads &&
		len(h.key) == argonKeyLen
}

func parsePasswordHash(encoded string) (passwordHash, error) {
	var h passwordHash

	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" {
		return h, errHashFormat
	}
	if fields[1] != "argon2id" {
		return h, fmt.Errorf("unsupported algorithm: %s", fields[1])
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return h, fmt.Errorf("%w: version: %w", errHashFormat, err)
	}
	if version != argon2.Version {
		return h, fmt.Errorf("incompatible argon2 version: %d", version)
	}

	_, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads)
	if err != nil {
		return h, fmt.Errorf("%w: params: %w", errHashFormat, err)
	}

	if h.salt, err = b64.DecodeString(fields[4]); err != nil {
		return h, fmt.Errorf("%w: salt: %w", errHashFormat, err)
	}
	if h.key, err = b64.DecodeString(fields[5]); err != nil {
		return h, fmt.Errorf("%w: key: %w", errHashFormat, err)
	}
	if len(h.key) == 0 {
		return h, errHashFormat
	}

	return h, nil
}

func isBcryptHash(encoded string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}

// HashPassword produces an argon2id hash with a fresh random salt.
func HashPassword(password string) (string, error) {
	h := passwordHash{
		memory:  argonMemory,
		time:    argonTime,
		threads: argonThreads,
		salt:    make([]byte, saltLength),
		key:     make([]byte, argonKeyLen),
	}
	if _, err := rand.Read(h.salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	h.key = h.derive(password)

	return h.String(), nil
}

// VerifyPassword checks a plaintext against an argon2id hash or a bcrypt hash
// carried over from an earlier deployment.
func VerifyPassword(password, encoded string) (bool, error) {
	if isBcryptHash(encoded) {
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("verify bcrypt hash: %w", err)
		}
	}

	h, err := parsePasswordHash(encoded)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(h.key, h.derive(password)) == 1, nil
}

// VerifyPasswordWithRehash verifies like VerifyPassword and, on success,
// returns a replacement hash when the stored one is bcrypt or was made with
// outdated parameters. An empty replacement means keep what is stored.
func VerifyPasswordWithRehash(password, encoded string) (bool, string, error) {
	valid, err := VerifyPassword(password, encoded)
	if err != nil || !valid {
		return false, "", err
	}

	if !isBcryptHash(encoded) {
		if h, parseErr := parsePasswordHash(encoded); parseErr == nil && h.current() {
			return true, "", nil
		}
	}

	upgraded, err := HashPassword(password)
	if err != nil {
		//nolint:nilerr // the login itself succeeded
		return true, "", nil
	}
	return true, upgraded, nil
}

var timingDummyHash = sync.OnceValue(func() string {
	hash, err := HashPassword(timingDummyValue)
	if err != nil {
		panic(fmt.Sprintf("security: generate timing hash: %v", err))
	}
	return hash
})

// VerifyPasswordTimingSafe spends the same work whether or not the account
// exists. A nil or empty hash always fails.
func VerifyPasswordTimingSafe(password string, encoded *string) (bool, string, error) {
	if encoded == nil || *encoded == "" {
		_, _, _ = VerifyPasswordWithRehash(password, timingDummyHash())
		return false, "", nil
	}

	return VerifyPasswordWithRehash(password, *encoded)
}

// NewTokenID returns a random URL-safe identifier for token jti claims.
func NewTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
