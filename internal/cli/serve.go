package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/mdserve/internal/server"
)

// openBrowser is swapped in tests.
var openBrowser = browser.OpenURL

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

// addServeFlags registers flags the root pre-run folds into the config.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("listen", "", "listen address (override config http_addr)")
	cmd.Flags().Bool("no-browser", false, "do not open a browser window")
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "serve [markdown-file]",
		Short:       "Serve the rendered markdown file and open it in a browser",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotLogTo: "stdout"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args)
		},
	}
	addServeFlags(cmd)
	return cmd
}

// runServe reads and segments the document once, then serves it until
// SIGINT/SIGTERM or the command context ends.
func runServe(cmd *cobra.Command, args []string) error {
	app := getApp(cmd)
	path, err := markdownFile(cmd, args)
	if err != nil {
		return err
	}
	app.Log.Info("Starting Markdown Server: " + time.Now().Format("2006-01-02"))

	doc, blocks, err := app.Load(path)
	if err != nil {
		return err
	}
	srv, err := server.New(app.Log.Logger, doc, blocks, app.HTML(),
		app.Cfg.GetString("page.title"), app.Cfg.GetString("render.mermaid_theme"))
	if err != nil {
		return err
	}

	l, err := net.Listen("tcp", app.Cfg.GetString("http_addr"))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	url := browseURL(l.Addr())
	app.Log.Info("serving", zap.String("file", doc.Path), zap.String("url", url))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n", bannerStyle.Render("Serving"), doc.Path, url)

	if app.Cfg.GetBool("open_browser") {
		if err := openBrowser(url); err != nil {
			app.Log.Warn("could not open browser", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, l)
}

// browseURL turns a listener address into a URL a local browser can open.
func browseURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
