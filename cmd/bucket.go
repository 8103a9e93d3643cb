package cmd

import (
	"fmt"
	"os"

	"profile-store/core/config"
	"profile-store/core/logger"
	"profile-store/core/storage"
	"profile-store/feature/image"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bucketCmd represents the bucket command
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage the image bucket",
}

// bucketEnsureCmd represents the bucket ensure command
var bucketEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create the bucket if it does not exist",
	Long:  `Provisions the configured bucket idempotently; running it against an existing bucket is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, logg, cfg := newService(ctx)

		if err := svc.EnsureBucket(ctx); err != nil {
			logg.Error("Bucket provisioning failed", zap.Error(err))
			return err
		}

		logg.Info("Bucket ready", zap.String("bucket", cfg.Storage.Bucket))
		return nil
	},
}

// bucketCheckCmd represents the bucket check command
var bucketCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the bucket exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

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

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		// A check must not create the bucket, so eager provisioning is
		// overridden here.
		cfg.Image.Provisioning = image.ProvisioningLazy
		svc, err := image.NewService(ctx, store, cfg.Storage, cfg.Image, logg)
		if err != nil {
			return fmt.Errorf("failed to initialize image service: %w", err)
		}

		exists, err := svc.BucketReady(ctx)
		if err != nil {
			return fmt.Errorf("bucket check failed: %w", err)
		}

		if exists {
			fmt.Printf("Bucket %q exists\n", cfg.Storage.Bucket)
		} else {
			fmt.Printf("Bucket %q does not exist\n", cfg.Storage.Bucket)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(bucketCmd)
	bucketCmd.AddCommand(bucketEnsureCmd, bucketCheckCmd)
}
