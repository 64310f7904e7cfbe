package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hackgods/appointment-agenda/internal/appointment"
	"github.com/hackgods/appointment-agenda/internal/config"
	"github.com/hackgods/appointment-agenda/internal/console"
	"github.com/hackgods/appointment-agenda/internal/logging"
	"github.com/hackgods/appointment-agenda/internal/seed"
	"github.com/hackgods/appointment-agenda/internal/storage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "agenda",
		Short:         "Book and report medical appointments from the console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context())
		},
	}

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(migrateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	// a second signal gets the default behaviour and kills the process
	context.AfterFunc(ctx, stop)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func setup(ctx context.Context) (zerolog.Logger, *storage.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		log := logging.New(os.Stderr, "error", "console")
		log.Error().Err(err).Msg("config load error")
		return log, nil, err
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	log.Info().Str("env", cfg.Env).Str("backend", cfg.Backend).Msg("agenda starting up")

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("storage open error")
		return log, nil, err
	}
	return log, backend, nil
}

func runConsole(ctx context.Context) error {
	log, backend, err := setup(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	svc := appointment.NewService(backend, log)
	if err := svc.Load(ctx); err != nil {
		log.Error().Err(err).Msg("reference data could not be loaded")
		return err
	}

	if err := console.New(os.Stdin, os.Stdout, svc, log).Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("agenda closed")
	return nil
}

func seedCmd() *cobra.Command {
	var (
		medics   int
		patients int
		seedVal  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write fake medics and patients to the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log, backend, err := setup(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			if seedVal == 0 {
				seedVal = uint64(time.Now().UnixNano())
			}
			gen := seed.NewGenerator(seedVal)

			if err := seed.Write(ctx, backend, log, gen.Medics(medics), gen.Patients(patients)); err != nil {
				log.Error().Err(err).Msg("seed failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&medics, "medics", 20, "number of medics to generate")
	cmd.Flags().IntVar(&patients, "patients", 200, "number of patients to generate")
	cmd.Flags().Uint64Var(&seedVal, "seed", 0, "random seed (0 picks one from the clock)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres tables used by STORAGE_BACKEND=postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log, backend, err := setup(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			if err := backend.EnsureSchema(ctx); err != nil {
				log.Error().Err(err).Str("backend", backend.Name).Msg("migrate failed")
				return err
			}
			log.Info().Msg("schema ready")
			return nil
		},
	}
}
