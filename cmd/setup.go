package cmd

import (
	"context"
	"fmt"
	"os"

	"profile-store/core/config"
	"profile-store/core/logger"
	"profile-store/core/storage"
	"profile-store/feature/image"

	"go.uber.org/zap"
)

// newService loads configuration and wires up the image service with all of
// its dependencies. Commands exit on any setup failure.
func newService(ctx context.Context) (*image.Service, *zap.Logger, *config.Config) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if !cfg.Image.IsValidProvisioning() {
		logg.Fatal("Invalid provisioning policy", zap.String("provisioning", cfg.Image.Provisioning))
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	svc, err := image.NewService(ctx, store, cfg.Storage, cfg.Image, logg)
	if err != nil {
		logg.Fatal("Failed to initialize image service", zap.Error(err))
	}

	return svc, logg, cfg
}
