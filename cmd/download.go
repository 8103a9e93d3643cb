package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var downloadOutput string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download [object]",
	Short: "Download a stored image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, logg, _ := newService(ctx)

		obj, err := svc.FetchImage(ctx, args[0])
		if err != nil {
			logg.Error("Download failed", zap.String("object", args[0]), zap.Error(err))
			return err
		}
		defer obj.Close()

		out := downloadOutput
		if out == "" {
			out = filepath.Base(args[0])
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		n, err := io.Copy(f, obj)
		if err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		logg.Info("Image downloaded",
			zap.String("object", args[0]),
			zap.String("file", out),
			zap.Int64("bytes", n),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output file path (defaults to the object's base name)")
}
