// Package main provides the CLI entry point for the HR console.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/hr-console/internal/chart"
	"github.com/and161185/hr-console/internal/client"
	"github.com/and161185/hr-console/internal/config"
	"github.com/and161185/hr-console/internal/credentials"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the wired dependencies shared by every subcommand.
type app struct {
	cfg    *config.Config
	client *client.Client
	store  *credentials.Store
	engine *chart.Engine
	logger *zap.SugaredLogger
}

type rootFlags struct {
	address     string
	apiKey      string
	credentials string
	timeout     int
	out         string
	viewer      string
	configFile  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	application := &app{}

	rootCmd := &cobra.Command{
		Use:   "hrconsole",
		Short: "Console for the HR data-management service",
		Long: `hrconsole submits bulk record transactions, manages table backups and
restores, runs guarded table cleanup and renders hiring dashboards from the
remote HR service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return application.setup(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.address, "address", "a", "", "HR service address (must include http(s)://)")
	pf.StringVarP(&flags.apiKey, "api-key", "k", "", "API key, overrides the cached credential")
	pf.StringVar(&flags.credentials, "credentials", "", "Path to the cached credential file")
	pf.IntVarP(&flags.timeout, "timeout", "t", 0, "HTTP client timeout (seconds)")
	pf.StringVar(&flags.out, "out", "", "Directory for rendered chart snapshots")
	pf.StringVar(&flags.viewer, "viewer", "", "Listen address of the local dashboard viewer")
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to JSON config file")

	rootCmd.AddCommand(
		newTxCmd(application),
		newBackupCmd(application),
		newBackupsCmd(application),
		newRestoreCmd(application),
		newCleanCmd(application),
		newMetricsCmd(application),
		newRegisterCmd(application),
	)
	return rootCmd
}

// setup assembles the configuration in the usual order: defaults, then the
// JSON config file for anything not set on the command line, then
// environment variables on top.
func (a *app) setup(cmd *cobra.Command, flags *rootFlags) error {
	cfg := config.Default()

	changed := cmd.Flags().Changed
	if changed("address") {
		cfg.ServerAddr = flags.address
	}
	if changed("api-key") {
		cfg.APIKey = flags.apiKey
	}
	if changed("credentials") {
		cfg.CredentialsFile = flags.credentials
	}
	if changed("timeout") {
		cfg.ClientTimeout = flags.timeout
	}
	if changed("out") {
		cfg.OutputDir = flags.out
	}
	if changed("viewer") {
		cfg.ViewerAddr = flags.viewer
	}

	configPath := flags.configFile
	if configPath == "" {
		configPath = os.Getenv("CONFIG")
	}
	if configPath != "" {
		fileCfg, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		fileCfg.Apply(cfg, changed)
	}

	config.ApplyEnvironment(cfg)
	config.Normalize(cfg)

	a.logger = config.NewLogger()
	cfg.Logger = a.logger
	a.cfg = cfg

	a.store = credentials.NewStore(cfg.CredentialsFile)
	a.client = client.New(cfg)
	if cfg.APIKey == "" {
		token, err := a.store.Load()
		if err != nil {
			return err
		}
		a.client.SetToken(token)
	}

	a.engine = chart.New()
	return nil
}
