package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dni-registry/internal/config"
	"dni-registry/internal/metrics"
	"dni-registry/internal/repository"
	"dni-registry/internal/usecase"
)

type app struct {
	logger  *logrus.Logger
	cfgFile string
}

// NewRoot builds the users command tree. Commands log through logger and
// print results to the command's output stream.
func NewRoot(logger *logrus.Logger) *cobra.Command {
	a := &app{logger: logger}

	cmd := &cobra.Command{
		Use:           "users",
		Short:         "Manage users identified by their DNI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./config.{yaml,json,toml})")
	flags.String("backend", "", "store backend: file, memory, sqlite, postgres, s3, redis")
	flags.String("path", "", "JSON file used by the file backend")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newCreateCmd(a),
		newFindCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newSeedCmd(a),
		newCheckCmd(),
	)
	return cmd
}

// withUsers loads configuration, opens the configured repository and runs fn
// against the use cases built over it.
func (a *app) withUsers(cmd *cobra.Command, fn func(ctx context.Context, users *usecase.Users) error) (err error) {
	cfg, err := config.Load(config.Options{ConfigFile: a.cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.logger.SetLevel(level)
	log := a.logger.WithField("backend", cfg.Store.Backend)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openRepository(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	reg := prometheus.NewRegistry()
	repo, err := instrument(store, reg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := repo.Close(); cerr != nil {
			log.WithError(cerr).Warn("close store")
		}
		if cfg.Metrics.Textfile == "" {
			return
		}
		if merr := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); merr != nil {
			err = errors.Join(err, merr)
		}
	}()

	return fn(ctx, usecase.New(repo))
}

// instrument wraps store with repository metrics registered on reg. On
// failure store is closed, since the caller never receives it.
func instrument(store repository.UserRepository, reg prometheus.Registerer, log logrus.FieldLogger) (*metrics.Repository, error) {
	repo, err := metrics.NewRepository(store, reg)
	if err != nil {
		if cerr := store.Close(); cerr != nil {
			log.WithError(cerr).Warn("close store")
		}
		return nil, err
	}
	return repo, nil
}
