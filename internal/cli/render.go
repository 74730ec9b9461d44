package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/mdserve/internal/present"
	"github.com/mithrel/mdserve/internal/render"
)

const fallbackWidth = 80

func newRenderCmd() *cobra.Command {
	var tui bool
	cmd := &cobra.Command{
		Use:   "render [markdown-file]",
		Short: "Render the markdown file in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			out, err := render.Terminal(blocks, render.TerminalOptions{
				Style:        app.Cfg.GetString("terminal.style"),
				Width:        width,
				Lang:         app.Cfg.GetString("segment.lang"),
				LiveLinks:    app.Cfg.GetBool("render.live_links"),
				MermaidTheme: app.Cfg.GetString("render.mermaid_theme"),
			})
			if err != nil {
				return err
			}
			if tui {
				return present.View(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), doc.Title(), out)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				_, err := io.WriteString(w, out)
				return err
			})
		},
	}
	cmd.Flags().String("style", "dark", "glamour style (dark, light, dracula, notty, auto)")
	cmd.Flags().Int("width", 0, "word wrap column; 0 uses the terminal width")
	cmd.Flags().BoolVar(&tui, "tui", false, "show in a scrollable full-screen viewer")
	return cmd
}

// terminalWidth reports the width of out when it is a terminal.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallbackWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
