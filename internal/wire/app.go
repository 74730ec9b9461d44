package wire

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/mdserve/internal/document"
	"github.com/mithrel/mdserve/internal/logging"
	"github.com/mithrel/mdserve/internal/render"
	"github.com/mithrel/mdserve/internal/segment"
)

// App aggregates the configured services for easy injection.
type App struct {
	Cfg *viper.Viper
	Log *logging.Logger
}

// BuildApp wires dependencies with the provided config. opts adjust the
// logger options, e.g. to capture console output.
func BuildApp(ctx context.Context, cfg *viper.Viper, opts ...func(*logging.Options)) (*App, error) {
	lopts := logging.Options{
		Level: cfg.GetString("log.level"),
		Dir:   cfg.GetString("log.dir"),
	}
	for _, o := range opts {
		o(&lopts)
	}
	logger, err := logging.New(lopts)
	if err != nil {
		return nil, err
	}
	return &App{Cfg: cfg, Log: logger}, nil
}

// Close flushes the logger.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Log.Close()
}

// Segmenter builds a Segmenter from segment.* settings.
func (a *App) Segmenter() (*segment.Segmenter, error) {
	policy, err := segment.ParsePolicy(a.Cfg.GetString("segment.unterminated"))
	if err != nil {
		return nil, err
	}
	return segment.New(a.Cfg.GetString("segment.lang"), policy), nil
}

// HTML builds the page renderer from render.* settings.
func (a *App) HTML() *render.HTML {
	return render.NewHTML(render.Options{
		MermaidURL:   a.Cfg.GetString("render.mermaid_url"),
		MermaidTheme: a.Cfg.GetString("render.mermaid_theme"),
		CodeStyle:    a.Cfg.GetString("render.code_style"),
		Sanitize:     !a.Cfg.GetBool("render.unsafe_html"),
		LiveLinks:    a.Cfg.GetBool("render.live_links"),
	})
}

// Load reads path once and segments it.
func (a *App) Load(path string) (*document.Document, []segment.Block, error) {
	doc, err := document.Read(path)
	if err != nil {
		return nil, nil, err
	}
	seg, err := a.Segmenter()
	if err != nil {
		return nil, nil, err
	}
	blocks, err := seg.Segment(doc.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("segment %s: %w", path, err)
	}
	a.Log.Debug("segmented document",
		zap.String("path", path),
		zap.Int("blocks", len(blocks)),
		zap.Int("diagrams", len(segment.Diagrams(blocks))))
	return doc, blocks, nil
}
