package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/manojaccellor/langflow/internal/api"
	"github.com/manojaccellor/langflow/internal/archive"
	"github.com/manojaccellor/langflow/internal/config"
	"github.com/manojaccellor/langflow/internal/trace"
	"github.com/manojaccellor/langflow/internal/ui"
)

var version = "dev"

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Server    string           `short:"s" help:"Langflow API base URL (default: ${default_server})"`
	Flow      string           `short:"f" help:"Flow id to preselect"`
	APIKey    string           `name:"api-key" help:"API key sent as x-api-key" env:"FLOWDEPLOY_API_KEY"`
	Config    string           `short:"c" help:"Path to config file" type:"path"`
	Downloads string           `short:"d" help:"Directory for archives and deploy scripts" type:"path"`
	Version   kong.VersionFlag `short:"v" help:"Show version information"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("flowdeploy"),
		kong.Description("Deploy Langflow flows as standalone apps or container images."),
		kong.Vars{
			"version":        version,
			"default_server": config.DefaultServer,
		},
	)

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "flowdeploy: %v\n", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("flowdeploy is interactive; run it in a terminal")
	}

	cfgPath := cli.Config
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cli.Server != "" {
		cfg.Server = cli.Server
	}
	if cli.APIKey != "" {
		cfg.APIKey = cli.APIKey
	}
	if cli.Downloads != "" {
		cfg.DownloadsDir = cli.Downloads
	}

	ctx := context.Background()
	shutdown, err := trace.Init(ctx)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdown(ctx) }()

	client, err := api.New(api.Options{
		BaseURL: cfg.Server,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		return err
	}

	downloads, err := archive.NewStore(cfg.DownloadsDir)
	if err != nil {
		return fmt.Errorf("downloads dir: %w", err)
	}

	app := ui.NewAppModel(client, downloads)
	if cli.Flow != "" {
		app.Flows.Preselect(cli.Flow)
	}
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen())
	app.Alerts.SetOnChange(func() { p.Send(ui.AlertsChangedMsg{}) })
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
