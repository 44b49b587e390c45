// Command coursesync imports Aisystant courses as Markdown and keeps
// translated copies of them up to date.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aisystant/coursesync"
	"github.com/aisystant/coursesync/config"
	"github.com/aisystant/coursesync/logging"
	"github.com/aisystant/coursesync/provider"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer

	// newProvider builds the translation backend from the configuration.
	newProvider func(cfg *config.Config) coursesync.AIProvider
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{
		v:           config.New(),
		stdout:      stdout,
		stderr:      stderr,
		newProvider: openAIProvider,
	}
	root := a.rootCmd()
	root.SetArgs(args)
	return root.Execute()
}

// openAIProvider wraps the OpenAI backend with request pacing and retries.
func openAIProvider(cfg *config.Config) coursesync.AIProvider {
	var p coursesync.AIProvider = provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	})
	if cfg.RequestsPerMinute > 0 {
		p = coursesync.NewPacedProvider(p, cfg.RequestsPerMinute)
	}

	rc := coursesync.DefaultRetryConfig()
	rc.MaxRetries = cfg.MaxRetries
	return coursesync.NewRetryableProvider(p, rc)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   coursesync.Name,
		Short: coursesync.Description,
		Long: `coursesync downloads an Aisystant course into a numbered chapter/section
tree of Markdown documents (ru/) and mirrors that tree into one directory per
target language, translating documents with an LLM.

Translations are memoized in a persistent cache, so re-running only pays for
new or changed text.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./coursesync.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn or error (default: LOG_LEVEL or info)")
	pf.String("source-dir", "", "root of the untranslated document tree (default: ru)")
	pf.String("cache-backend", "", "cache backend: file, memory, redis or sqlite")
	pf.String("cache-dir", "", "directory for file caches (default: _)")
	pf.String("model", "", "OpenAI model")

	bind := map[string]string{
		"log_level":     "log-level",
		"source_dir":    "source-dir",
		"cache.backend": "cache-backend",
		"cache.dir":     "cache-dir",
		"model":         "model",
	}
	for key, flag := range bind {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(a.importCmd(), a.translateCmd(), a.cacheCmd(), a.versionCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.ReadFile(a.v, cfgFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logging.Setup(cfg.LogLevel, a.stderr); err != nil {
		log.Warn(err)
	}
	if used != "" {
		log.Infof("Using config file: %s", used)
	}
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of coursesync",
		Run: func(cmd *cobra.Command, args []string) {
			b := coursesync.Build()
			fmt.Fprintf(a.stdout, "%s %s\n", coursesync.Name, b)
			if b.Date != "" {
				fmt.Fprintf(a.stdout, "  built: %s\n", b.Date)
			}
		},
	}
}
