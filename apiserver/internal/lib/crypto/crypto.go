package crypto

import (
	"crypto/sha256"
	"fmt"
)

// ShortSHA returns a salted SHA-256 hash of the input, truncated to 54
// characters. The API server uses it so that secrets like the shared API token
// never sit in memory in the clear.
func ShortSHA(salt, input string) string {
	if salt != "" {
		input = fmt.Sprintf("%s:%s", salt, input)
	}
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", sum)[0:54]
}
