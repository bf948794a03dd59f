// Package gravatar derives default avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// URL returns the gravatar URL for the given email: 200px, PG-rated, with the
// "mystery man" fallback for addresses without a gravatar.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
