// Command techmentorai runs table queries, the auth stub and the remote
// function shim against the configured store and prints the result
// envelopes as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jassmeen122/techmentorai/client"
	"github.com/jassmeen122/techmentorai/config"
	"github.com/jassmeen122/techmentorai/core"
	"github.com/jassmeen122/techmentorai/driver/memory"
	"github.com/jassmeen122/techmentorai/driver/mongo"
	"github.com/jassmeen122/techmentorai/driver/postgres"
	"github.com/jassmeen122/techmentorai/logger"
	"github.com/jassmeen122/techmentorai/tables"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by the subcommands. client is built in the
// root pre-run unless it was set beforehand.
type app struct {
	configFile string
	verbose    bool

	logger   *zap.Logger
	registry *core.Registry
	client   *client.Client
	owned    bool
	out      io.Writer
}

func main() {
	a := &app{out: os.Stdout}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "techmentorai",
		Short:         "Query the TechMentorAI tables through the relational facade",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.out == nil {
				a.out = cmd.OutOrStdout()
			}
			if a.client != nil {
				return nil
			}
			return a.connect(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newSelectCmd(a),
		newSingleCmd(a),
		newCountCmd(a),
		newInsertCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newInvokeCmd(a),
		newSessionCmd(a),
		newTablesCmd(a),
	)
	return rootCmd
}

// connect loads the configuration and opens the configured driver.
func (a *app) connect(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.logger, err = logger.New(cfg.Log); err != nil {
		return err
	}

	driver, err := openDriver(ctx, cfg)
	if err != nil {
		return err
	}
	a.logger.Debug("driver opened", zap.String("driver", cfg.Driver))

	a.registry = tables.Registry()
	a.client = client.New(driver,
		client.WithLogger(a.logger),
		client.WithRegistry(a.registry),
		client.WithStrictSchemas(cfg.StrictSchemas),
	)
	a.owned = true
	return nil
}

// close releases a client opened by connect.
func (a *app) close() {
	if !a.owned {
		return
	}
	if err := a.client.Close(context.Background()); err != nil {
		a.logger.Warn("closing driver", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func openDriver(ctx context.Context, cfg *config.Config) (core.Driver, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return mongo.NewMongoDriver(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case config.DriverPostgres:
		return postgres.NewPostgresDriver(ctx, cfg.Postgres.URL)
	case config.DriverMemory:
		return memory.NewMemoryDriver(), nil
	}
	return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
}

// print writes v as indented JSON.
func (a *app) print(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(raw))
	return err
}

// failed turns an envelope error into the command error so the exit code
// reflects it. The envelope itself has already been printed.
func failed(info *core.ErrorInfo) error {
	if info == nil {
		return nil
	}
	return fmt.Errorf("%s: %s", info.Kind, info.Message)
}
