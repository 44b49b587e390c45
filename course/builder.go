package course

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aisystant/coursesync"
	"github.com/gofiber/fiber/v2/log"
)

// Titler translates section titles. *coursesync.Translator satisfies it.
type Titler interface {
	Translate(ctx context.Context, text, targetLang string, opts ...coursesync.CallOption) (string, error)
}

// TextSource returns a section's raw markup.
type TextSource interface {
	SectionText(ctx context.Context, sectionID, passingID string) (string, error)
}

// Normalizer converts raw markup into a Markdown body, storing images in
// imageDir under names starting with prefix.
type Normalizer interface {
	Normalize(ctx context.Context, markup, imageDir, prefix string) (string, error)
}

// Builder writes the source document tree for a course version.
type Builder struct {
	source     TextSource
	titles     Titler
	normalizer Normalizer
	root       string
	language   string
	clean      bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRoot sets the tree root (default "ru").
func WithRoot(dir string) BuilderOption {
	return func(b *Builder) {
		b.root = dir
	}
}

// WithNamingLanguage sets the language titles are translated into for slugs.
func WithNamingLanguage(lang string) BuilderOption {
	return func(b *Builder) {
		b.language = lang
	}
}

// WithClean removes the tree root before building.
func WithClean(clean bool) BuilderOption {
	return func(b *Builder) {
		b.clean = clean
	}
}

// NewBuilder creates a Builder.
func NewBuilder(source TextSource, titles Titler, normalizer Normalizer, opts ...BuilderOption) *Builder {
	b := &Builder{
		source:     source,
		titles:     titles,
		normalizer: normalizer,
		root:       coursesync.DefaultSourceDir,
		language:   coursesync.DefaultNamingLanguage,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Root returns the tree root.
func (b *Builder) Root() string {
	return b.root
}

// Result lists what a build produced.
type Result struct {
	Chapters  int
	Documents []Entry
}

// TitleSlugs translates every chapter and TEXT title once and returns the
// slugs keyed by section ID. Ignored section types are not translated.
func (b *Builder) TitleSlugs(ctx context.Context, sections []coursesync.Section) (map[string]string, error) {
	slugs := make(map[string]string)
	var s State
	for _, sec := range sections {
		if StartsChapter(s, sec) || sec.Type == coursesync.SectionText {
			title, err := b.titles.Translate(ctx, sec.Title, b.language)
			if err != nil {
				return nil, fmt.Errorf("translating title %q: %w", sec.Title, err)
			}
			log.Debugf("Title %q -> %q", sec.Title, title)
			slugs[sec.ID] = Slugify(title)
		}
		s = Step(s, sec, slugs[sec.ID])
	}
	return slugs, nil
}

// Build fetches, normalizes and writes every TEXT section.
func (b *Builder) Build(ctx context.Context, sections []coursesync.Section, passingID string) (*Result, error) {
	if b.clean {
		if _, err := os.Stat(b.root); err == nil {
			log.Infof("Removing directory: %s", b.root)
			if err := os.RemoveAll(b.root); err != nil {
				return nil, fmt.Errorf("cleaning %s: %w", b.root, err)
			}
		}
	}

	slugs, err := b.TitleSlugs(ctx, sections)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, e := range Plan(sections, slugs) {
		if err := b.write(ctx, e, passingID); err != nil {
			return res, err
		}
		res.Documents = append(res.Documents, e)
		res.Chapters = e.Chapter
	}
	return res, nil
}

func (b *Builder) write(ctx context.Context, e Entry, passingID string) error {
	markup, err := b.source.SectionText(ctx, e.Section.ID, passingID)
	if err != nil {
		return fmt.Errorf("loading section %s: %w", e.Section.ID, err)
	}

	dir := filepath.Join(b.root, filepath.FromSlash(e.Dir))
	body, err := b.normalizer.Normalize(ctx, markup, dir, e.Name)
	if err != nil {
		return fmt.Errorf("normalizing section %s: %w", e.Section.ID, err)
	}

	path := filepath.Join(b.root, filepath.FromSlash(e.Path()))
	log.Infof("Saving markdown file: %s", path)
	return WriteDocument(path, Frontmatter{Title: e.Section.Title}, body)
}
