package coursesync

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Translator is the translation engine: a cache-aside wrapper around a
// single AI provider call.
type Translator struct {
	provider     AIProvider
	cache        TranslationCache
	strictTerms  map[string]string
	instructions string
	stats        Stats
}

// AIProvider is the interface for AI translation backends.
type AIProvider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// CacheLoader is implemented by caches that load their storage lazily and
// can fail doing so. The Translator loads such a cache before its first
// lookup so that a corrupted store is reported instead of treated as empty.
type CacheLoader interface {
	Load() error
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithStrictTerms sets mandated translations for specific terms.
func WithStrictTerms(terms map[string]string) TranslatorOption {
	return func(t *Translator) {
		t.strictTerms = terms
	}
}

// WithInstructions sets default additional instructions for every call.
func WithInstructions(instructions string) TranslatorOption {
	return func(t *Translator) {
		t.instructions = instructions
	}
}

// NewTranslator creates a new Translator backed by provider.
func NewTranslator(provider AIProvider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider:    provider,
		strictTerms: map[string]string{},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// CallOption adjusts a single Translate call.
type CallOption func(*callOptions)

type callOptions struct {
	instructions string
	skipCache    bool
}

// Instructions appends extra instructions to the system prompt of one call.
func Instructions(s string) CallOption {
	return func(o *callOptions) {
		o.instructions = s
	}
}

// NoCache bypasses the cache for one call, in both directions.
func NoCache() CallOption {
	return func(o *callOptions) {
		o.skipCache = true
	}
}

// Translate translates text into targetLang.
//
// A cached translation is returned without calling the provider. On a miss
// exactly one provider request is issued, its result is cleaned up, stored
// in the cache and returned.
func (t *Translator) Translate(ctx context.Context, text, targetLang string, opts ...CallOption) (string, error) {
	co := callOptions{instructions: t.instructions}
	for _, opt := range opts {
		opt(&co)
	}

	useCache := t.cache != nil && !co.skipCache
	if useCache {
		if loader, ok := t.cache.(CacheLoader); ok {
			if err := loader.Load(); err != nil {
				return "", err
			}
		}
		if cached, ok := Lookup(t.cache, text, targetLang); ok {
			t.stats.CacheHits++
			return cached, nil
		}
	}

	if t.provider == nil {
		return "", &TranslationError{Lang: targetLang, Message: "no provider configured"}
	}

	t.stats.ProviderCalls++
	raw, err := t.provider.Translate(ctx, TranslateRequest{
		Text:         text,
		TargetLang:   targetLang,
		StrictTerms:  t.strictTerms,
		Instructions: co.instructions,
	})
	if err != nil {
		return "", &TranslationError{Lang: targetLang, Cause: err}
	}

	translation := CleanTranslation(raw)

	if useCache {
		if err := Store(t.cache, text, targetLang, translation); err != nil {
			return "", err
		}
	}

	return translation, nil
}

// Stats returns how calls have been resolved so far.
func (t *Translator) Stats() Stats {
	return t.stats
}

// StrictTerms returns the strict-term table.
func (t *Translator) StrictTerms() map[string]string {
	return t.strictTerms
}

// inputLabel frames the source text in the user message; backends sometimes echo it.
const inputLabel = "Text:"

// BuildSystemPrompt builds the system instruction for a translation request.
func BuildSystemPrompt(req TranslateRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Translate the following text to %s, ensuring the translation is exact and concise. ", GetLanguageName(req.TargetLang))
	b.WriteString("Only provide the translated text, without any explanations, introductions, or additional phrases.")

	if len(req.StrictTerms) > 0 {
		terms := make([]string, 0, len(req.StrictTerms))
		for term := range req.StrictTerms {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		b.WriteString(" Use the following translations for specific words:")
		for i, term := range terms {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " '%s': '%s'", term, req.StrictTerms[term])
		}
		b.WriteString(".")
	}

	if req.Instructions != "" {
		b.WriteString(" ")
		b.WriteString(req.Instructions)
	}

	return b.String()
}

// BuildUserMessage frames the source text for the backend.
func BuildUserMessage(req TranslateRequest) string {
	return inputLabel + " " + req.Text + "\n\nTranslated Text:"
}

// CleanTranslation trims the raw backend output and drops an echoed input label.
func CleanTranslation(raw string) string {
	out := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(out), strings.ToLower(inputLabel)) {
		out = strings.TrimSpace(out[len(inputLabel):])
	}
	return out
}
