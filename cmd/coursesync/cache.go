package main

import (
	"fmt"
	"os"

	"github.com/aisystant/coursesync"
	"github.com/aisystant/coursesync/cache"
	"github.com/spf13/cobra"
)

// namespaceAliases maps short names onto cache namespaces.
var namespaceAliases = map[string]string{
	"titles":       cache.TitlesNamespace,
	"translations": cache.DocumentsNamespace,
	"documents":    cache.DocumentsNamespace,
}

func resolveNamespace(name string) string {
	if ns, ok := namespaceAliases[name]; ok {
		return ns
	}
	return name
}

func (a *app) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Move translation cache entries between backends",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <namespace> [file]",
		Short: "Write a cache namespace as JSON (stdout when no file is given)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := resolveNamespace(args[0])
			c, err := cache.Open(a.cfg.Cache.Options(), ns)
			if err != nil {
				return err
			}
			defer c.Close()

			meta := map[string]string{"tool": coursesync.UserAgent()}
			if len(args) == 1 {
				return cache.Export(a.stdout, c, ns, meta)
			}

			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := cache.Export(f, c, ns, meta); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Exported %s to %s\n", ns, args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <namespace> <file>",
		Short: "Load exported entries into a cache namespace",
		Long: `Import adds entries from an export file. Keys already present keep their
value.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := resolveNamespace(args[0])
			c, err := cache.Open(a.cfg.Cache.Options(), ns)
			if err != nil {
				return err
			}
			defer c.Close()

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := cache.Import(f, c, ns)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Imported %d, skipped %d, failed %d\n", res.Imported, res.Skipped, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d entries could not be written", res.Failed)
			}
			return nil
		},
	})

	return cmd
}
