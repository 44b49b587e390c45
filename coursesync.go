// Package coursesync extracts Aisystant courses into Markdown trees and
// translates them incrementally with an LLM backend.
//
// The root package holds the translation engine and the shared domain types.
// Subpackages provide the pieces around it:
//
//	cache     persistent translation memo (JSON file, Redis, SQLite)
//	provider  LLM backends
//	markup    HTML to Markdown normalization
//	content   Aisystant content service client
//	course    section list to chapter/section tree
//	mirror    per-language mirror of a source tree
//	vcs       changed files of a git commit
//
// Basic usage:
//
//	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//
//	t := coursesync.NewTranslator(p,
//	    coursesync.WithCache(cache.NewFileCache("_/translations_cache.json")),
//	)
//
//	out, err := t.Translate(ctx, "Привет, мир", "en")
package coursesync
