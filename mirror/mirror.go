// Package mirror keeps a per-language copy of the source document tree in
// step with upstream changes.
package mirror

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aisystant/coursesync"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Translator translates whole documents. *coursesync.Translator satisfies it.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string, opts ...coursesync.CallOption) (string, error)
}

// Syncer applies changes under the source root to a language tree.
type Syncer struct {
	translator Translator
	language   string
	sourceRoot string
	destRoot   string
	base       string
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithSourceRoot sets the source tree root (default "ru").
func WithSourceRoot(dir string) Option {
	return func(s *Syncer) {
		s.sourceRoot = dir
	}
}

// WithDestRoot sets the destination root (default: the language identifier).
func WithDestRoot(dir string) Option {
	return func(s *Syncer) {
		s.destRoot = dir
	}
}

// WithBaseDir resolves change paths and roots against dir instead of the
// working directory.
func WithBaseDir(dir string) Option {
	return func(s *Syncer) {
		s.base = dir
	}
}

// NewSyncer creates a Syncer translating into language.
func NewSyncer(translator Translator, language string, opts ...Option) *Syncer {
	s := &Syncer{
		translator: translator,
		language:   language,
		sourceRoot: coursesync.DefaultSourceDir,
		destRoot:   language,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Action is what happened to one path.
type Action string

const (
	// ActionTranslated: a Markdown document was translated into the mirror.
	ActionTranslated Action = "translated"
	// ActionCopied: a non-Markdown file was copied byte for byte.
	ActionCopied Action = "copied"
	// ActionDeleted: the mirrored file was removed after an upstream deletion.
	ActionDeleted Action = "deleted"
	// ActionSkipped: the path is unchanged or outside the source root.
	ActionSkipped Action = "skipped"
	// ActionFailed: reading, translating or writing the path failed.
	ActionFailed Action = "failed"
)

// Report summarizes one Sync run.
type Report struct {
	RunID      string
	Translated int
	Copied     int
	Deleted    int
	Skipped    int
	Failed     []string
}

func (r *Report) record(a Action, p string) {
	switch a {
	case ActionTranslated:
		r.Translated++
	case ActionCopied:
		r.Copied++
	case ActionDeleted:
		r.Deleted++
	case ActionSkipped:
		r.Skipped++
	case ActionFailed:
		r.Failed = append(r.Failed, p)
	}
}

// OK reports whether every path was handled.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// Sync applies every change. Paths outside the source root are skipped.
// A failure on one path is logged and the rest of the batch continues.
func (s *Syncer) Sync(ctx context.Context, changes []coursesync.Change) *Report {
	r := &Report{RunID: uuid.NewString()}
	log.Infof("sync %s: %d paths into %s", r.RunID, len(changes), s.destRoot)

	for _, ch := range changes {
		if err := ctx.Err(); err != nil {
			log.Errorf("sync %s: %v", r.RunID, err)
			r.record(ActionFailed, ch.Path)
			continue
		}

		a, err := s.apply(ctx, ch)
		if err != nil {
			log.Errorf("Failed to process %s: %v", ch.Path, err)
			a = ActionFailed
		}
		r.record(a, ch.Path)
	}

	log.Infof("sync %s: %d translated, %d copied, %d deleted, %d skipped, %d failed",
		r.RunID, r.Translated, r.Copied, r.Deleted, r.Skipped, len(r.Failed))
	return r
}

// DestPath maps a source path to its mirrored destination. ok is false for
// paths outside the source root.
func (s *Syncer) DestPath(p string) (string, bool) {
	p = path.Clean(filepath.ToSlash(p))
	root := path.Clean(filepath.ToSlash(s.sourceRoot))
	rel, found := strings.CutPrefix(p, root+"/")
	if !found || rel == "" {
		return "", false
	}
	return path.Join(filepath.ToSlash(s.destRoot), rel), true
}

func (s *Syncer) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.base, p)
}

func (s *Syncer) apply(ctx context.Context, ch coursesync.Change) (Action, error) {
	dest, ok := s.DestPath(ch.Path)
	if !ok || ch.Status == coursesync.Unchanged {
		return ActionSkipped, nil
	}

	src := s.resolve(ch.Path)
	dst := s.resolve(dest)

	if ch.Status == coursesync.Deleted {
		log.Infof("Deleting %s", dest)
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("removing %s: %w", dest, err)
		}
		return ActionDeleted, nil
	}

	if strings.EqualFold(path.Ext(ch.Path), ".md") {
		return ActionTranslated, s.translate(ctx, src, dst)
	}
	return ActionCopied, copyFile(src, dst)
}

func (s *Syncer) translate(ctx context.Context, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	text := string(data)
	log.Debugf("Translating %s: %.50q", src, text)

	out, err := s.translator.Translate(ctx, text, s.language,
		coursesync.Instructions(coursesync.MarkdownInstructions))
	if err != nil {
		return err
	}

	return writeFile(dst, []byte(out))
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	return writeFile(dst, data)
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
