// Package markup converts section HTML from the content service into Markdown.
//
// Normalization runs in a fixed order:
//
//  1. images under /text/ are downloaded next to the document and their
//     references rewritten to the local file name (raw markup);
//  2. pre-conversion rules (the footnote popup idiom becomes placeholders);
//  3. the Converter turns HTML into Markdown;
//  4. post-conversion rules (placeholders become ^[...] footnotes, footnote
//     definitions get a blank line between them, fenced div markers go away).
//
// The rule lists are part of the contract and exported so callers can see
// and extend them.
package markup

import (
	"context"

	"github.com/aisystant/coursesync"
)

// DefaultBaseURL is where relative /text/ assets are served from.
const DefaultBaseURL = "https://aisystant.system-school.ru"

// Rule is one named rewrite step.
type Rule struct {
	Name  string
	Apply func(string) (string, error)
}

// Converter turns HTML into Markdown.
type Converter interface {
	Convert(ctx context.Context, html string) (string, error)
}

// Fetcher downloads a remote asset.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Normalizer turns one section's markup into a Markdown body.
type Normalizer struct {
	converter Converter
	fetcher   Fetcher
	baseURL   string
	pre       []Rule
	post      []Rule
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithBaseURL sets the URL that /text/ image paths are resolved against.
func WithBaseURL(u string) Option {
	return func(n *Normalizer) {
		n.baseURL = u
	}
}

// WithPreRules replaces the rules applied before conversion.
func WithPreRules(rules ...Rule) Option {
	return func(n *Normalizer) {
		n.pre = rules
	}
}

// WithPostRules replaces the rules applied after conversion.
func WithPostRules(rules ...Rule) Option {
	return func(n *Normalizer) {
		n.post = rules
	}
}

// NewNormalizer creates a Normalizer. A nil fetcher disables image localization.
func NewNormalizer(converter Converter, fetcher Fetcher, opts ...Option) *Normalizer {
	n := &Normalizer{
		converter: converter,
		fetcher:   fetcher,
		baseURL:   DefaultBaseURL,
		pre:       DefaultPreRules(),
		post:      DefaultPostRules(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts markup into Markdown. Images are stored in imageDir
// under names starting with prefix. Failed image downloads are logged and
// leave the original reference in place.
func (n *Normalizer) Normalize(ctx context.Context, markup, imageDir, prefix string) (string, error) {
	if n.fetcher != nil {
		markup = LocalizeImages(ctx, n.fetcher, markup, n.baseURL, imageDir, prefix)
	}

	html, err := applyRules(n.pre, markup)
	if err != nil {
		return "", err
	}

	md, err := n.converter.Convert(ctx, html)
	if err != nil {
		return "", &coursesync.NormalizeError{Stage: "convert", Cause: err}
	}

	return applyRules(n.post, md)
}

func applyRules(rules []Rule, s string) (string, error) {
	for _, r := range rules {
		out, err := r.Apply(s)
		if err != nil {
			return "", &coursesync.NormalizeError{Stage: r.Name, Cause: err}
		}
		s = out
	}
	return s, nil
}
