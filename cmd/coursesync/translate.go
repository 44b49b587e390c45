package main

import (
	"fmt"
	"strings"

	"github.com/aisystant/coursesync"
	"github.com/aisystant/coursesync/cache"
	"github.com/aisystant/coursesync/mirror"
	"github.com/aisystant/coursesync/vcs"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

func (a *app) translateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <lang> [commit]",
		Short: "Mirror the source tree into a language directory",
		Long: `Translate writes a translated copy of the source tree into a directory named
after the target language. Markdown documents are translated, other files are
copied as is.

With a commit, only the files that commit touched are processed and files it
deleted are removed from the mirror. Without one, every file under the source
directory is processed; cached translations make unchanged documents free.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: a.runTranslate,
	}
}

func (a *app) runTranslate(cmd *cobra.Command, args []string) error {
	cfg := a.cfg
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	ctx := cmd.Context()
	lang := args[0]

	terms, err := coursesync.LoadStrictTerms(cfg.StrictTermsFile)
	if err != nil {
		return err
	}

	docs, err := cache.Open(cfg.Cache.Options(), cache.DocumentsNamespace)
	if err != nil {
		return err
	}
	defer docs.Close()
	if loader, ok := docs.(coursesync.CacheLoader); ok {
		if err := loader.Load(); err != nil {
			return err
		}
	}

	base := "."
	var changes *coursesync.ChangeSet
	if len(args) == 2 {
		src, err := vcs.Open(base)
		if err != nil {
			return err
		}
		base = src.Root()
		if changes, err = src.Changes(ctx, args[1]); err != nil {
			return err
		}
	} else {
		if changes, err = vcs.WalkTree(base, cfg.SourceDir); err != nil {
			return err
		}
	}

	if !changes.HasChanges() {
		log.Warn("No changes to translate")
		return nil
	}

	tr := coursesync.NewTranslator(a.newProvider(cfg),
		coursesync.WithCache(docs),
		coursesync.WithStrictTerms(terms))
	s := mirror.NewSyncer(tr, lang,
		mirror.WithSourceRoot(cfg.SourceDir),
		mirror.WithBaseDir(base))

	fmt.Fprintf(a.stderr, "Translating %s to %s...\n", changes.Stats(), coursesync.GetLanguageName(lang))
	r := s.Sync(ctx, changes.Changes)
	stats := tr.Stats()

	fmt.Fprintf(a.stderr, "\nDone (run %s)\n", r.RunID)
	fmt.Fprintf(a.stderr, "  Translated:   %d\n", r.Translated)
	fmt.Fprintf(a.stderr, "  Copied:       %d\n", r.Copied)
	fmt.Fprintf(a.stderr, "  Deleted:      %d\n", r.Deleted)
	fmt.Fprintf(a.stderr, "  Skipped:      %d\n", r.Skipped)
	fmt.Fprintf(a.stderr, "  From cache:   %d\n", stats.CacheHits)
	fmt.Fprintf(a.stderr, "  Backend calls: %d\n", stats.ProviderCalls)

	if !r.OK() {
		return fmt.Errorf("%d file(s) failed: %s", len(r.Failed), strings.Join(r.Failed, ", "))
	}
	return nil
}
