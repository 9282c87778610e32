package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/server/config"
	"golang.org/x/crypto/argon2"
)

const argon2idPrefix = "argon2id"

// Hasher produces and verifies password digests.
//
// The default scheme is an unsalted hex-encoded SHA-256 digest, kept for
// compatibility with existing stored credentials. The argon2id scheme is an
// opt-in hardening: salted, memory-hard, stored in a self-describing
// "argon2id$<salt>$<hash>" form. Verify inspects the stored digest, so both
// schemes verify correctly regardless of which one is configured for new
// passwords.
type Hasher struct {
	scheme string
}

func NewHasher(scheme string) *Hasher {
	return &Hasher{scheme: scheme}
}

// Hash computes the digest of password using the configured scheme.
func (h *Hasher) Hash(password string) string {
	if h.scheme == config.HashSchemeArgon2id {
		salt := common.GenerateRandByteArray(16)
		return hashArgon2id(password, salt)
	}
	return HashSHA256(password)
}

// Verify reports whether password matches the stored digest. Comparison is
// constant-time.
func (h *Hasher) Verify(digest, password string) bool {
	if strings.HasPrefix(digest, argon2idPrefix+"$") {
		return verifyArgon2id(digest, password)
	}
	candidate := HashSHA256(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1
}

// HashSHA256 returns the hex-encoded SHA-256 digest of password. Deterministic
// and unsalted: same input always yields the same 64-character output.
func HashSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func hashArgon2id(password string, salt []byte) string {
	key := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return argon2idPrefix + "$" +
		base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(key)
}

func verifyArgon2id(digest, password string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 3 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	candidate := hashArgon2id(password, salt)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1
}
