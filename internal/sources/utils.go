package sources

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
)

// GenerateHash returns the hex sha256 of the raw content.
func GenerateHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}

// NormalizedHash hashes content after case-folding, stripping punctuation
// and collapsing whitespace, so the same story phrased with trivial
// differences by two queries still collides to one key.
func NormalizedHash(content string) string {
	normalized := strings.ToLower(content)
	normalized = punctuation.ReplaceAllString(normalized, " ")
	normalized = whitespace.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(normalized)
	return GenerateHash(normalized)
}
