// Command seed inserts a mock dataset owned by the first registered user.
// Without any users it only prints a hint and exits successfully.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/internal/store"
)

func main() {
	log := logger.NewLogger("dataset-hub-seed")
	cfg, err := config.GetStorageConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	if err = run(context.Background(), cfg.Storage, log, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const msgNoUsers = "No user found. Please create a user first."

func run(ctx context.Context, cfg config.Storage, log *logger.Logger, out io.Writer) error {
	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	datasets := service.NewDatasetService(storages.UserRepository, storages.DatasetRepository, storages.FileStorage, log)

	dataset, err := datasets.CreateMockDataset(ctx)
	if errors.Is(err, service.ErrNoUsers) {
		fmt.Fprintln(out, msgNoUsers)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error creating mock dataset: %w", err)
	}

	fmt.Fprintf(out, "Successfully created mock dataset: %s\n", dataset.Title)
	return nil
}
