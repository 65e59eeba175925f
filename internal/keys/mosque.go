package keys

import (
	"fmt"
	"strings"
)

// sanitizeKey replaces spaces with hyphens, drops apostrophes and lowercases the string.
func sanitizeKey(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "'", "")
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// Dataset returns the canonical S3 key for a full mosque collection.
func Dataset(name string) string {
	return fmt.Sprintf("datasets/%s.json", sanitizeKey(name))
}

// District returns the S3 key of one district's slice of a collection.
func District(dataset, district string) string {
	return fmt.Sprintf("datasets/%s/%s.json", sanitizeKey(dataset), sanitizeKey(district))
}

// IsDataset reports whether key names a full collection written by Dataset.
func IsDataset(key string) bool {
	rest, ok := strings.CutPrefix(key, "datasets/")
	return ok && strings.HasSuffix(rest, ".json") && !strings.Contains(rest, "/")
}
