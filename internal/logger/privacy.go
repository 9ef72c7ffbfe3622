package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinHashSaltLength is the shortest LOG_HASH_SALT accepted at startup.
const MinHashSaltLength = 32

var hashSalt string

// InitHashSalt loads the salt used for privacy-preserving identifiers from
// LOG_HASH_SALT. It panics when the salt is missing or too short, so call it
// once during startup.
func InitHashSalt() {
	salt := os.Getenv("LOG_HASH_SALT")
	if salt == "" {
		panic("LOG_HASH_SALT is required")
	}
	if len(salt) < MinHashSaltLength {
		panic(fmt.Sprintf("LOG_HASH_SALT must be at least %d characters", MinHashSaltLength))
	}
	hashSalt = salt
}

// InitHashSaltForTesting sets the salt without validation.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

// HashUserID creates a privacy-preserving hash of a user ID.
// This allows tracking user actions without exposing actual user IDs.
func HashUserID(userID uuid.UUID) string {
	return hashValue(userID.String())
}

// HashEmail creates a privacy-preserving hash of an email address.
// Emails are lower-cased first so log lines for one account correlate.
func HashEmail(email string) string {
	return hashValue(strings.ToLower(strings.TrimSpace(email)))
}

func hashValue(v string) string {
	data := fmt.Sprintf("%s:%s", v, hashSalt)
	hash := sha256.Sum256([]byte(data))
	// First 8 hex characters are enough to correlate log lines.
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeDescription removes or truncates sensitive information from descriptions.
// This redacts the description but preserves length information for debugging.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}

	words := strings.Fields(desc)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), utf8.RuneCountInString(desc))
}

// SanitizeText is a general-purpose sanitizer for any user-provided text.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	runes := []rune(text)
	if len(runes) <= 10 {
		return fmt.Sprintf("<%d chars>", len(runes))
	}

	return fmt.Sprintf("%s...<%d chars>", string(runes[:3]), len(runes))
}
