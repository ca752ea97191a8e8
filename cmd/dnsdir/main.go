package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zinrai/dns-directory-go/internal/config"
	"github.com/zinrai/dns-directory-go/internal/domain"
	"github.com/zinrai/dns-directory-go/internal/infrastructure/db"
	"github.com/zinrai/dns-directory-go/internal/infrastructure/logger"
	"github.com/zinrai/dns-directory-go/internal/infrastructure/persistence"
	"github.com/zinrai/dns-directory-go/internal/interface/console"
	"github.com/zinrai/dns-directory-go/internal/usecase"
)

type globalFlags struct {
	configPath string
	dbPath     string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "dnsdir",
		Short: "Interactive name/address directory",
		Long: `dnsdir maintains a bidirectional mapping between fully-qualified
domain names and IPv4 addresses, stored in a flat text file.

Commands accepted at the prompt:
  <fqdn>             print the address of a name
  <ip>               print the name of an address
  ls [-a] <domain>   list a domain, by name or with -a by address
  add <ip> <fqdn>    add an entry
  quit | exit        leave
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, cleanup, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer cleanup()
			cmd.SilenceUsage = true

			err = console.NewREPL(cmd.InOrStdin(), cmd.OutOrStdout(), dispatcher).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				// Interrupted at the prompt.
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"Path to a YAML config file (optional)")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "",
		"Path of the directory file, overrides store.path")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"Log level (debug, info, warn, error), overrides log.level")

	cmd.AddCommand(newExecCommand(&flags))
	return cmd
}

func newExecCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <command...>",
		Short:   "Run a single directory command and print its result",
		Example: "  dnsdir exec add 193.51.31.90 www.uvsq.fr\n  dnsdir exec -- ls -a uvsq.fr",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, cleanup, err := setup(cmd.Context(), *flags)
			if err != nil {
				return err
			}
			defer cleanup()
			cmd.SilenceUsage = true

			out, _ := dispatcher.Execute(cmd.Context(), console.Parse(strings.Join(args, " ")))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// setup resolves the configuration, builds the logger and loads the
// directory. A directory that fails to load is fatal.
func setup(ctx context.Context, flags globalFlags) (*console.Dispatcher, func(), error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if flags.dbPath != "" {
		cfg.Store.Driver = config.DriverFile
		cfg.Store.Path = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Error("opening store", zap.Error(err))
		_ = log.Sync()
		return nil, nil, err
	}

	dir, err := usecase.NewDirectory(ctx, store, log)
	if err != nil {
		log.Error("loading directory", zap.Error(err))
		closeStore()
		_ = log.Sync()
		return nil, nil, err
	}

	cleanup := func() {
		closeStore()
		_ = log.Sync()
	}
	return console.NewDispatcher(dir), cleanup, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (domain.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		conn, err := db.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return persistence.NewPostgresStore(conn), func() { conn.Close() }, nil
	default:
		return persistence.NewFileStore(cfg.Path), func() {}, nil
	}
}
