package document

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// ProvisionalRef generates the reference of a draft document.
// Format: PROV-YYYYMM-XXXX (e.g., PROV-202602-A7K2)
func ProvisionalRef(now time.Time) (string, error) {
	return provisionalRef(now, rand.Reader)
}

func provisionalRef(now time.Time, random io.Reader) (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	b := make([]byte, 4)
	if _, err := io.ReadFull(random, b); err != nil {
		return "", fmt.Errorf("failed to generate provisional ref: %w", err)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}

	return fmt.Sprintf("PROV-%d%02d-%s", now.Year(), now.Month(), string(b)), nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._()-]+`)

// SanitizeFileName maps a document reference to a name usable as both a
// directory and a file name.
func SanitizeFileName(ref string) string {
	s := unsafeFileChars.ReplaceAllString(strings.TrimSpace(ref), "_")
	s = strings.Trim(s, "._")
	if s == "" {
		return "document"
	}
	return s
}
