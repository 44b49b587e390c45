package main

import (
	"fmt"
	"path/filepath"

	"github.com/aisystant/coursesync"
	"github.com/aisystant/coursesync/cache"
	"github.com/aisystant/coursesync/content"
	"github.com/aisystant/coursesync/course"
	"github.com/aisystant/coursesync/markup"
	"github.com/spf13/cobra"
)

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <course-code>",
		Short: "Download a course into the source document tree",
		Long: `Import looks the course up by product code, enrolls in its active version,
and writes every TEXT section as Markdown under the source directory. Chapter
and file names come from titles translated into the naming language.

The source directory is removed first unless --no-clean is given.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runImport,
	}
	cmd.Flags().Bool("dry-run", false, "print the planned tree without downloading section text")
	cmd.Flags().Bool("no-clean", false, "keep the existing source directory")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, args []string) error {
	cfg := a.cfg
	if err := cfg.RequireSessionToken(); err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noClean, _ := cmd.Flags().GetBool("no-clean")
	ctx := cmd.Context()
	code := args[0]

	client := content.NewClient(cfg.SessionToken, content.WithBaseURL(cfg.BaseURL))

	titles, err := cache.Open(cfg.Cache.Options(), cache.TitlesNamespace)
	if err != nil {
		return err
	}
	defer titles.Close()

	terms, err := coursesync.LoadStrictTerms(cfg.StrictTermsFile)
	if err != nil {
		return err
	}
	tr := coursesync.NewTranslator(a.newProvider(cfg),
		coursesync.WithCache(titles),
		coursesync.WithStrictTerms(terms))

	conv, err := markup.NewConverter(cfg.Converter)
	if err != nil {
		return err
	}
	norm := markup.NewNormalizer(conv, client, markup.WithBaseURL(cfg.ImageBaseURL))

	b := course.NewBuilder(client, tr, norm,
		course.WithRoot(cfg.SourceDir),
		course.WithNamingLanguage(cfg.NamingLanguage),
		course.WithClean(!noClean))

	if dryRun {
		c, err := client.FindCourse(ctx, code)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: %s", course.ErrCourseNotFound, code)
		}
		v, err := client.CourseVersion(ctx, c.ActiveVersionID)
		if err != nil {
			return err
		}
		slugs, err := b.TitleSlugs(ctx, v.Sections)
		if err != nil {
			return err
		}
		for _, e := range course.Plan(v.Sections, slugs) {
			fmt.Fprintln(a.stdout, filepath.Join(cfg.SourceDir, filepath.FromSlash(e.Path())))
		}
		return nil
	}

	fmt.Fprintf(a.stderr, "Importing %s into %s...\n", code, cfg.SourceDir)
	res, err := course.Import(ctx, client, b, code)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	stats := tr.Stats()
	fmt.Fprintf(a.stderr, "\nDone\n")
	fmt.Fprintf(a.stderr, "  Chapters:     %d\n", res.Chapters)
	fmt.Fprintf(a.stderr, "  Documents:    %d\n", len(res.Documents))
	fmt.Fprintf(a.stderr, "  From cache:   %d\n", stats.CacheHits)
	fmt.Fprintf(a.stderr, "  Backend calls: %d\n", stats.ProviderCalls)
	return nil
}
