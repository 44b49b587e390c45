package coursesync

import (
	"crypto/sha256"
	"encoding/hex"
)

// CacheKey derives the cache key for a (text, target language) pair.
// Both inputs are hashed byte for byte: any change, including trailing
// whitespace or letter case, yields a different key.
func CacheKey(text, targetLang string) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(targetLang))
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup fetches a memoized translation for text in targetLang.
func Lookup(cache TranslationCache, text, targetLang string) (string, bool) {
	return cache.Get(CacheKey(text, targetLang))
}

// Store memoizes a translation for text in targetLang.
func Store(cache TranslationCache, text, targetLang, translation string) error {
	return cache.Set(CacheKey(text, targetLang), translation)
}
