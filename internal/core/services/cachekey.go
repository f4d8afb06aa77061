package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// embeddingCacheKey derives the content address for a cached vector.
// The key binds the provider, model, and dimensionality to the exact
// text, so changing any part of the embedder configuration can never
// surface a stale vector. Fields are joined with NUL so no two
// configurations can collide by concatenation.
func embeddingCacheKey(provider, model string, dims int, text string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00", provider, model, dims)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
