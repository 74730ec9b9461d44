package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/mdserve/internal/present"
	"github.com/mithrel/mdserve/internal/util"
)

func newSegmentsCmd() *cobra.Command {
	var output string
	var indent, noHeaders bool
	cmd := &cobra.Command{
		Use:   "segments [markdown-file]",
		Short: "List the text and diagram blocks of the markdown file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := present.ParseMode(output)
			if !ok {
				return fmt.Errorf("unknown output %q (want plain, pretty, json or ndjson)%s",
					output, util.DidYouMean(output, present.Modes))
			}
			app := getApp(cmd)
			path, err := markdownFile(cmd, args)
			if err != nil {
				return err
			}
			doc, blocks, err := app.Load(path)
			if err != nil {
				return err
			}
			width := app.Cfg.GetInt("terminal.width")
			if width == 0 {
				width = terminalWidth(cmd.OutOrStdout())
			}
			return present.RenderBlocks(cmd.OutOrStdout(), doc, blocks, present.Options{
				Mode:       mode,
				JSONIndent: indent,
				Headers:    !noHeaders,
				Width:      width,
				Style:      app.Cfg.GetString("terminal.style"),
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output format: plain, pretty, json, ndjson")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row in plain output")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return present.Modes, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
