package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdserve/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite, update bool
	cmd := &cobra.Command{
		Use:         "generate",
		Short:       "Generate a default config.toml",
		Annotations: map[string]string{annotSkipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := config.WriteNew
			switch {
			case overwrite && update:
				return fmt.Errorf("choose either --overwrite or --update")
			case overwrite:
				mode = config.WriteOverwrite
			case update:
				mode = config.WriteUpdate
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}

			res, err := config.WriteFile(out, mode, time.Now())
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w; use --overwrite to replace it or --update to merge defaults", err)
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if res.UpToDate {
				_, _ = fmt.Fprintf(w, "Config already up to date: %s\n", res.Path)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Wrote %s\n", res.Path)
			if res.Backup != "" {
				_, _ = fmt.Fprintf(w, "Backup: %s\n", res.Backup)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for config.toml")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing config (keeps a backup)")
	cmd.Flags().BoolVar(&update, "update", false, "merge new defaults into an existing config (keeps a backup)")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the default config file location",
		Annotations: map[string]string{annotSkipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
			return err
		},
	}
}
